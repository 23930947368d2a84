// Package memory provides map-backed stores for tests and fixture-driven runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lehigh-university-libraries/nativeimport/model"
	"github.com/lehigh-university-libraries/nativeimport/store"
)

// Store implements the store interfaces in memory. It is safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	contexts    map[int64]*model.Context
	submissions map[int64]*model.Submission
	userGroups  map[int64]*model.UserGroup
	authors     map[int64]*model.Author
	nextAuthor  int64
}

var (
	_ store.AuthorStore     = (*Store)(nil)
	_ store.UserGroupStore  = (*Store)(nil)
	_ store.SubmissionStore = (*Store)(nil)
)

// New returns an empty store.
func New() *Store {
	return &Store{
		contexts:    make(map[int64]*model.Context),
		submissions: make(map[int64]*model.Submission),
		userGroups:  make(map[int64]*model.UserGroup),
		authors:     make(map[int64]*model.Author),
		nextAuthor:  1,
	}
}

// AddContext adds or replaces a context.
func (s *Store) AddContext(c *model.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[c.ID] = c
}

// AddSubmission adds or replaces a submission.
func (s *Store) AddSubmission(sub *model.Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[sub.ID] = sub
}

// AddUserGroup adds or replaces a user group.
func (s *Store) AddUserGroup(g *model.UserGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userGroups[g.ID] = g
}

// Context returns a context by id.
func (s *Store) Context(_ context.Context, id int64) (*model.Context, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contexts[id]
	if !ok {
		return nil, fmt.Errorf("context %d: %w", id, store.ErrNotFound)
	}
	return c, nil
}

// Submission returns a submission by id.
func (s *Store) Submission(_ context.Context, id int64) (*model.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.submissions[id]
	if !ok {
		return nil, fmt.Errorf("submission %d: %w", id, store.ErrNotFound)
	}
	return sub, nil
}

// UserGroupsByContextID returns the context's groups ordered by id.
func (s *Store) UserGroupsByContextID(_ context.Context, contextID int64) ([]*model.UserGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var groups []*model.UserGroup
	for _, g := range s.userGroups {
		if g.ContextID == contextID {
			groups = append(groups, g)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

// NewDataObject returns an empty author.
func (s *Store) NewDataObject() *model.Author {
	return model.NewAuthor()
}

// InsertAuthor assigns the next id and stores the author.
func (s *Store) InsertAuthor(_ context.Context, a *model.Author) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.nextAuthor
	s.nextAuthor++
	s.authors[a.ID] = a
	return a.ID, nil
}

// Author returns a stored author by id.
func (s *Store) Author(id int64) (*model.Author, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.authors[id]
	return a, ok
}

// Authors returns all stored authors ordered by id.
func (s *Store) Authors() []*model.Author {
	s.mu.RLock()
	defer s.mu.RUnlock()
	authors := make([]*model.Author, 0, len(s.authors))
	for _, a := range s.authors {
		authors = append(authors, a)
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i].ID < authors[j].ID })
	return authors
}
