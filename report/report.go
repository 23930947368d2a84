// Package report summarizes the outcome of a native import.
package report

import (
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/lehigh-university-libraries/nativeimport/deployment"
	"github.com/lehigh-university-libraries/nativeimport/model"
)

// Summary describes one import run.
type Summary struct {
	DeploymentID string
	SubmissionID int64
	DryRun       bool
	Authors      []*model.Author
	Problems     []deployment.Problem
}

// Build collects the imported authors and recorded problems of d.
func Build(d *deployment.Deployment, objects []any, dryRun bool) *Summary {
	s := &Summary{
		DeploymentID: d.ID.String(),
		SubmissionID: d.SubmissionID(),
		DryRun:       dryRun,
		Problems:     d.Errors(),
	}
	for _, obj := range objects {
		if a, ok := obj.(*model.Author); ok {
			s.Authors = append(s.Authors, a)
		}
	}
	return s
}

// Struct converts the summary to a protobuf Struct.
func (s *Summary) Struct() (*structpb.Struct, error) {
	authors := make([]any, 0, len(s.Authors))
	for _, a := range s.Authors {
		entry := map[string]any{
			"id":                a.ID,
			"publication_id":    a.PublicationID,
			"seq":               a.Seq,
			"primary_contact":   a.PrimaryContact,
			"include_in_browse": a.IncludeInBrowse,
			"given_name":        localizedMap(a.GivenName),
			"family_name":       localizedMap(a.FamilyName),
		}
		if a.UserGroupID != nil {
			entry["user_group_id"] = *a.UserGroupID
		}
		if a.Email != "" {
			entry["email"] = a.Email
		}
		if a.ORCID != "" {
			entry["orcid"] = a.ORCID
		}
		authors = append(authors, entry)
	}

	problems := make([]any, 0, len(s.Problems))
	for _, p := range s.Problems {
		problems = append(problems, map[string]any{
			"assoc_type": p.AssocType.String(),
			"assoc_id":   p.AssocID,
			"code":       string(p.Code),
			"message":    p.Message,
		})
	}

	st, err := structpb.NewStruct(map[string]any{
		"deployment_id": s.DeploymentID,
		"submission_id": s.SubmissionID,
		"dry_run":       s.DryRun,
		"authors":       authors,
		"problems":      problems,
	})
	if err != nil {
		return nil, fmt.Errorf("building report: %w", err)
	}
	return st, nil
}

func localizedMap(l model.Localized) map[string]any {
	m := make(map[string]any, len(l))
	for loc, v := range l {
		m[loc] = v
	}
	return m
}

// WriteJSON writes the summary as JSON.
func (s *Summary) WriteJSON(w io.Writer, pretty bool) error {
	st, err := s.Struct()
	if err != nil {
		return err
	}
	opts := protojson.MarshalOptions{}
	if pretty {
		opts.Multiline = true
		opts.Indent = "  "
	}
	data, err := opts.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// WriteText writes a human-readable summary.
func (s *Summary) WriteText(w io.Writer) error {
	verb := "Imported"
	if s.DryRun {
		verb = "Validated"
	}
	if _, err := fmt.Fprintf(w, "%s %d authors into submission %d (deployment %s)\n",
		verb, len(s.Authors), s.SubmissionID, s.DeploymentID); err != nil {
		return err
	}
	for _, a := range s.Authors {
		group := "-"
		if a.UserGroupID != nil {
			group = fmt.Sprint(*a.UserGroupID)
		}
		if _, err := fmt.Fprintf(w, "  #%d %s (user group %s)\n", a.Seq+1, a.FullName(), group); err != nil {
			return err
		}
	}
	if len(s.Problems) > 0 {
		if _, err := fmt.Fprintf(w, "%d problems:\n", len(s.Problems)); err != nil {
			return err
		}
		for _, p := range s.Problems {
			if _, err := fmt.Fprintf(w, "  [%s] %s\n", p.Code, p.Message); err != nil {
				return err
			}
		}
	}
	return nil
}
