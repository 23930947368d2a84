package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lehigh-university-libraries/nativeimport/model"
	"github.com/lehigh-university-libraries/nativeimport/store"
)

// UserGroupsByContextID returns the context's user groups with their names,
// ordered by user_group_id.
func (s *Store) UserGroupsByContextID(ctx context.Context, contextID int64) ([]*model.UserGroup, error) {
	rows, err := s.db.Query(ctx, `
		SELECT ug.user_group_id, ug.context_id, ugs.locale, ugs.setting_value
		FROM user_groups ug
		LEFT JOIN user_group_settings ugs
			ON ugs.user_group_id = ug.user_group_id AND ugs.setting_name = 'name'
		WHERE ug.context_id = $1
		ORDER BY ug.user_group_id, ugs.locale`, contextID)
	if err != nil {
		return nil, fmt.Errorf("querying user groups: %w", err)
	}
	defer rows.Close()

	var groups []*model.UserGroup
	var current *model.UserGroup
	for rows.Next() {
		var id, ctxID int64
		var locale, name *string
		if err := rows.Scan(&id, &ctxID, &locale, &name); err != nil {
			return nil, fmt.Errorf("scanning user group: %w", err)
		}
		if current == nil || current.ID != id {
			current = &model.UserGroup{ID: id, ContextID: ctxID, Name: model.Localized{}}
			groups = append(groups, current)
		}
		if locale != nil && name != nil {
			current.Name.Set(*locale, *name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading user groups: %w", err)
	}

	return groups, nil
}

// Submission loads a submission with its current publication.
func (s *Store) Submission(ctx context.Context, id int64) (*model.Submission, error) {
	sub := &model.Submission{}
	var publicationID *int64
	err := s.db.QueryRow(ctx, `
		SELECT submission_id, context_id, locale, current_publication_id
		FROM submissions WHERE submission_id = $1`, id,
	).Scan(&sub.ID, &sub.ContextID, &sub.Locale, &publicationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("submission %d: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("loading submission %d: %w", id, err)
	}
	if publicationID != nil {
		sub.CurrentPublication = &model.Publication{ID: *publicationID, SubmissionID: sub.ID}
	}
	return sub, nil
}

// Context loads a journal.
func (s *Store) Context(ctx context.Context, id int64) (*model.Context, error) {
	c := &model.Context{}
	err := s.db.QueryRow(ctx, `
		SELECT journal_id, path, primary_locale
		FROM journals WHERE journal_id = $1`, id,
	).Scan(&c.ID, &c.Path, &c.PrimaryLocale)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("context %d: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("loading context %d: %w", id, err)
	}
	return c, nil
}
