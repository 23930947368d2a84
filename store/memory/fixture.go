package memory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/nativeimport/model"
)

// Fixture describes the contexts, submissions and user groups to preload.
type Fixture struct {
	Contexts []struct {
		ID            int64  `yaml:"id"`
		Path          string `yaml:"path"`
		PrimaryLocale string `yaml:"primary_locale"`
	} `yaml:"contexts"`

	Submissions []struct {
		ID                   int64  `yaml:"id"`
		ContextID            int64  `yaml:"context_id"`
		Locale               string `yaml:"locale"`
		CurrentPublicationID int64  `yaml:"current_publication_id"`
	} `yaml:"submissions"`

	UserGroups []struct {
		ID        int64             `yaml:"id"`
		ContextID int64             `yaml:"context_id"`
		Name      map[string]string `yaml:"name"`
	} `yaml:"user_groups"`
}

// LoadFixture reads a YAML fixture file into a new store.
func LoadFixture(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture file: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture builds a store from YAML fixture content.
func ParseFixture(data []byte) (*Store, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture YAML: %w", err)
	}

	s := New()
	for _, c := range f.Contexts {
		s.AddContext(&model.Context{ID: c.ID, Path: c.Path, PrimaryLocale: c.PrimaryLocale})
	}
	for _, sub := range f.Submissions {
		if _, ok := s.contexts[sub.ContextID]; !ok {
			return nil, fmt.Errorf("submission %d references unknown context %d", sub.ID, sub.ContextID)
		}
		submission := &model.Submission{ID: sub.ID, ContextID: sub.ContextID, Locale: sub.Locale}
		if sub.CurrentPublicationID != 0 {
			submission.CurrentPublication = &model.Publication{ID: sub.CurrentPublicationID, SubmissionID: sub.ID}
		}
		s.AddSubmission(submission)
	}
	for _, g := range f.UserGroups {
		s.AddUserGroup(&model.UserGroup{ID: g.ID, ContextID: g.ContextID, Name: model.Localized(g.Name)})
	}
	return s, nil
}
