// Package author imports <author> elements into author records attached to
// the deployment submission's current publication.
package author

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/nativeimport/deployment"
	"github.com/lehigh-university-libraries/nativeimport/metrics"
	"github.com/lehigh-university-libraries/nativeimport/model"
	"github.com/lehigh-university-libraries/nativeimport/native"
	"github.com/lehigh-university-libraries/nativeimport/store"
)

// Message keys.
const (
	keyDisplayName      = "plugins.importexport.native.authorImport"
	keyUnknownUserGroup = "plugins.importexport.common.error.unknownUserGroup"
	keyMissingGivenName = "plugins.importexport.common.error.missingGivenName"
)

// Localizer renders messages and names locales.
type Localizer interface {
	Translate(key string, params map[string]string) string
	AllLocales() map[string]string
	UILocale() string
}

// Filter maps <author> elements to persisted authors.
type Filter struct {
	authors store.AuthorStore
	groups  store.UserGroupStore
	l10n    Localizer
	logger  *slog.Logger
}

var _ native.Filter = (*Filter)(nil)

// New creates an author filter.
func New(authors store.AuthorStore, groups store.UserGroupStore, l10n Localizer, logger *slog.Logger) *Filter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Filter{
		authors: authors,
		groups:  groups,
		l10n:    l10n,
		logger:  logger,
	}
}

// DisplayName returns the translated filter name.
func (f *Filter) DisplayName() string {
	return f.l10n.Translate(keyDisplayName, nil)
}

// PluralElementName returns "authors".
func (f *Filter) PluralElementName() string {
	return "authors"
}

// SingularElementName returns "author".
func (f *Filter) SingularElementName() string {
	return "author"
}

// HandleElement implements native.Filter.
func (f *Filter) HandleElement(ctx context.Context, d *deployment.Deployment, el *etree.Element) (any, error) {
	return f.MapAndPersist(ctx, d, el)
}

// MapAndPersist builds an author from el and inserts it. An unresolved
// user_group_ref or a missing given name in the submission locale is
// recorded on d; neither stops the insert. Store errors are returned.
func (f *Filter) MapAndPersist(ctx context.Context, d *deployment.Deployment, el *etree.Element) (*model.Author, error) {
	submission := d.Submission
	if submission == nil {
		return nil, errors.New("deployment has no submission")
	}

	a := f.authors.NewDataObject()
	a.PublicationID = submission.CurrentPublicationID()
	a.Seq = d.NextAuthorSeq()
	if attrTrue(el, "primary_contact") {
		a.PrimaryContact = true
	}
	if attrTrue(el, "include_in_browse") {
		a.IncludeInBrowse = true
	}

	ref := el.SelectAttrValue("user_group_ref", "")
	group, err := f.findUserGroup(ctx, d, ref)
	if err != nil {
		return nil, err
	}
	if group != nil {
		a.SetUserGroupID(group.ID)
	} else {
		f.addError(d, deployment.CodeUnknownUserGroup, keyUnknownUserGroup, map[string]string{"param": ref})
	}

	for _, child := range el.ChildElements() {
		h, ok := childHandlers[child.Tag]
		if !ok {
			continue
		}
		locale := ""
		if h.localized {
			locale = child.SelectAttrValue("locale", "")
			if locale == "" {
				locale = submission.Locale
			}
		}
		h.set(a, locale, textContent(child))
	}

	if a.GivenName.Get(submission.Locale) == "" {
		localeName, ok := f.l10n.AllLocales()[submission.Locale]
		if !ok {
			localeName = submission.Locale
		}
		f.addError(d, deployment.CodeMissingGivenName, keyMissingGivenName, map[string]string{
			"authorName": a.LocalizedGivenName(f.l10n.UILocale(), submission.Locale),
			"localeName": localeName,
		})
	}

	id, err := f.authors.InsertAuthor(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("inserting author: %w", err)
	}
	d.AddProcessedObject(deployment.AssocTypeAuthor, id)
	metrics.AuthorsImported.Inc()

	f.logger.Debug("imported author",
		"deployment", d.ID.String(),
		"author_id", id,
		"publication_id", a.PublicationID,
	)

	return a, nil
}

// findUserGroup returns the first group of the deployment's context with a
// name equal to ref in any locale, or nil.
func (f *Filter) findUserGroup(ctx context.Context, d *deployment.Deployment, ref string) (*model.UserGroup, error) {
	contextID := d.Submission.ContextID
	if d.Context != nil {
		contextID = d.Context.ID
	}

	groups, err := f.groups.UserGroupsByContextID(ctx, contextID)
	if err != nil {
		return nil, fmt.Errorf("loading user groups for context %d: %w", contextID, err)
	}
	for _, g := range groups {
		if g.HasName(ref) {
			return g, nil
		}
	}
	return nil, nil
}

func (f *Filter) addError(d *deployment.Deployment, code deployment.Code, key string, params map[string]string) {
	msg := f.l10n.Translate(key, params)
	d.AddError(deployment.AssocTypeSubmission, d.SubmissionID(), code, msg)
	metrics.Problems.WithLabelValues(string(code)).Inc()
	f.logger.Warn("author import problem",
		"deployment", d.ID.String(),
		"submission_id", d.SubmissionID(),
		"code", string(code),
		"message", msg,
	)
}

// attrTrue treats any non-empty attribute value as true, including "0".
func attrTrue(el *etree.Element, key string) bool {
	return el.SelectAttrValue(key, "") != ""
}
