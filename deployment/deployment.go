// Package deployment tracks the state of one import session: the target
// context and submission, recorded problems, and the objects it created.
package deployment

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/lehigh-university-libraries/nativeimport/model"
)

// AssocType identifies the kind of object a problem or processed id refers to.
type AssocType int

// Association types shared with the publishing platform.
const (
	AssocTypeSubmission AssocType = 0x0100009
	AssocTypeAuthor     AssocType = 0x0100010
)

func (t AssocType) String() string {
	switch t {
	case AssocTypeSubmission:
		return "submission"
	case AssocTypeAuthor:
		return "author"
	default:
		return fmt.Sprintf("assoc(%#x)", int(t))
	}
}

// Code classifies a recorded problem.
type Code string

// Problem codes.
const (
	CodeUnknownUserGroup Code = "unknown_user_group"
	CodeMissingGivenName Code = "missing_given_name"
)

// Problem is a non-fatal diagnostic recorded during an import.
type Problem struct {
	AssocType AssocType
	AssocID   int64
	Code      Code
	Message   string
}

func (p Problem) Error() string {
	return fmt.Sprintf("%s %d: %s", p.AssocType, p.AssocID, p.Message)
}

// Deployment is the ambient state of one import session.
// It is safe for concurrent use.
type Deployment struct {
	ID         uuid.UUID
	Context    *model.Context
	Submission *model.Submission

	mu        sync.Mutex
	problems  []Problem
	processed map[AssocType][]int64
	seq       int
}

// New creates a deployment importing into submission within ctx.
func New(ctx *model.Context, submission *model.Submission) *Deployment {
	return &Deployment{
		ID:         uuid.New(),
		Context:    ctx,
		Submission: submission,
		processed:  make(map[AssocType][]int64),
	}
}

// AddError records a problem against an object. Recording never fails.
func (d *Deployment) AddError(assocType AssocType, assocID int64, code Code, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.problems = append(d.problems, Problem{
		AssocType: assocType,
		AssocID:   assocID,
		Code:      code,
		Message:   message,
	})
}

// Errors returns a copy of all recorded problems in recording order.
func (d *Deployment) Errors() []Problem {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Problem, len(d.problems))
	copy(out, d.problems)
	return out
}

// ErrorsFor returns the problems recorded against one object.
func (d *Deployment) ErrorsFor(assocType AssocType, assocID int64) []Problem {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []Problem
	for _, p := range d.problems {
		if p.AssocType == assocType && p.AssocID == assocID {
			out = append(out, p)
		}
	}
	return out
}

// HasErrors reports whether any problem was recorded.
func (d *Deployment) HasErrors() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.problems) > 0
}

// Count returns how many problems carry code.
func (d *Deployment) Count(code Code) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, p := range d.problems {
		if p.Code == code {
			n++
		}
	}
	return n
}

// AddProcessedObject records the id of an object created by the import.
func (d *Deployment) AddProcessedObject(assocType AssocType, id int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.processed[assocType] = append(d.processed[assocType], id)
}

// ProcessedObjects returns the ids created for assocType, in creation order.
func (d *Deployment) ProcessedObjects(assocType AssocType) []int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	ids := d.processed[assocType]
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}

// NextAuthorSeq returns the next author sequence number, starting at 0.
func (d *Deployment) NextAuthorSeq() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	seq := d.seq
	d.seq++
	return seq
}

// SubmissionID returns the target submission's id, or 0.
func (d *Deployment) SubmissionID() int64 {
	if d.Submission == nil {
		return 0
	}
	return d.Submission.ID
}
