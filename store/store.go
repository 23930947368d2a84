// Package store defines the persistence collaborators used by native imports.
package store

import (
	"context"
	"errors"

	"github.com/lehigh-university-libraries/nativeimport/model"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// AuthorStore persists author records.
type AuthorStore interface {
	// NewDataObject returns an empty author ready to be populated.
	NewDataObject() *model.Author

	// InsertAuthor stores a new author, sets its ID and returns it.
	InsertAuthor(ctx context.Context, author *model.Author) (int64, error)
}

// UserGroupStore looks up user groups.
type UserGroupStore interface {
	// UserGroupsByContextID returns the context's groups in ascending id order.
	UserGroupsByContextID(ctx context.Context, contextID int64) ([]*model.UserGroup, error)
}

// SubmissionStore loads the import targets.
type SubmissionStore interface {
	Submission(ctx context.Context, id int64) (*model.Submission, error)
	Context(ctx context.Context, id int64) (*model.Context, error)
}

// DryRun wraps an AuthorStore and never writes. InsertAuthor leaves the
// author's ID at zero.
type DryRun struct {
	AuthorStore
}

// InsertAuthor discards the author.
func (DryRun) InsertAuthor(_ context.Context, _ *model.Author) (int64, error) {
	return 0, nil
}
