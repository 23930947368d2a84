package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lehigh-university-libraries/nativeimport/model"
	"github.com/lehigh-university-libraries/nativeimport/store"
)

// Setting names stored in author_settings.
const (
	settingGivenName   = "givenName"
	settingFamilyName  = "familyName"
	settingAffiliation = "affiliation"
	settingBiography   = "biography"
	settingCountry     = "country"
	settingURL         = "url"
	settingORCID       = "orcid"
)

// NewDataObject returns an empty author.
func (s *Store) NewDataObject() *model.Author {
	return model.NewAuthor()
}

// InsertAuthor writes the author row and its settings in one transaction.
func (s *Store) InsertAuthor(ctx context.Context, a *model.Author) (int64, error) {
	var id int64
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO authors (publication_id, email, include_in_browse, primary_contact, seq, user_group_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING author_id`,
			a.PublicationID, a.Email, a.IncludeInBrowse, a.PrimaryContact, a.Seq, a.UserGroupID,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("inserting author: %w", err)
		}

		batch := &pgx.Batch{}
		queue := func(locale, name, value string) {
			batch.Queue(`
				INSERT INTO author_settings (author_id, locale, setting_name, setting_value)
				VALUES ($1, $2, $3, $4)`,
				id, locale, name, value,
			)
		}
		for name, values := range map[string]model.Localized{
			settingGivenName:   a.GivenName,
			settingFamilyName:  a.FamilyName,
			settingAffiliation: a.Affiliation,
			settingBiography:   a.Biography,
		} {
			for _, locale := range values.Locales() {
				queue(locale, name, values[locale])
			}
		}
		for name, value := range map[string]string{
			settingCountry: a.Country,
			settingURL:     a.URL,
			settingORCID:   a.ORCID,
		} {
			if value != "" {
				queue("", name, value)
			}
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting author settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	a.ID = id
	return id, nil
}

// Author loads an author and its settings.
func (s *Store) Author(ctx context.Context, id int64) (*model.Author, error) {
	a := model.NewAuthor()
	err := s.db.QueryRow(ctx, `
		SELECT author_id, publication_id, email, include_in_browse, primary_contact, seq, user_group_id
		FROM authors WHERE author_id = $1`, id,
	).Scan(&a.ID, &a.PublicationID, &a.Email, &a.IncludeInBrowse, &a.PrimaryContact, &a.Seq, &a.UserGroupID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("author %d: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("loading author %d: %w", id, err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT locale, setting_name, setting_value
		FROM author_settings WHERE author_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("loading author %d settings: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var locale, name string
		var value *string
		if err := rows.Scan(&locale, &name, &value); err != nil {
			return nil, fmt.Errorf("scanning author setting: %w", err)
		}
		v := ""
		if value != nil {
			v = *value
		}
		switch name {
		case settingGivenName:
			a.GivenName.Set(locale, v)
		case settingFamilyName:
			a.FamilyName.Set(locale, v)
		case settingAffiliation:
			a.Affiliation.Set(locale, v)
		case settingBiography:
			a.Biography.Set(locale, v)
		case settingCountry:
			a.Country = v
		case settingURL:
			a.URL = v
		case settingORCID:
			a.ORCID = v
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading author settings: %w", err)
	}

	return a, nil
}
