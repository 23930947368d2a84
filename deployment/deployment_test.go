package deployment

import (
	"sync"
	"testing"

	"github.com/lehigh-university-libraries/nativeimport/model"
)

func newTestDeployment() *Deployment {
	return New(
		&model.Context{ID: 1, Path: "jpk", PrimaryLocale: "en_US"},
		&model.Submission{ID: 42, ContextID: 1, Locale: "en_US", CurrentPublication: &model.Publication{ID: 7, SubmissionID: 42}},
	)
}

func TestAddErrorConcurrent(t *testing.T) {
	d := newTestDeployment()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.AddError(AssocTypeSubmission, d.SubmissionID(), CodeUnknownUserGroup, "unknown")
		}()
	}
	wg.Wait()

	if got := len(d.Errors()); got != 50 {
		t.Errorf("recorded %d problems, want 50", got)
	}
	if got := d.Count(CodeUnknownUserGroup); got != 50 {
		t.Errorf("Count(unknown) = %d, want 50", got)
	}
	if got := d.Count(CodeMissingGivenName); got != 0 {
		t.Errorf("Count(missing) = %d, want 0", got)
	}
}

func TestErrorsFor(t *testing.T) {
	d := newTestDeployment()
	d.AddError(AssocTypeSubmission, 42, CodeMissingGivenName, "a")
	d.AddError(AssocTypeSubmission, 43, CodeMissingGivenName, "b")
	d.AddError(AssocTypeAuthor, 42, CodeMissingGivenName, "c")

	got := d.ErrorsFor(AssocTypeSubmission, 42)
	if len(got) != 1 || got[0].Message != "a" {
		t.Errorf("ErrorsFor(submission, 42) = %v", got)
	}
	if !d.HasErrors() {
		t.Error("HasErrors() = false")
	}
}

func TestErrorsReturnsCopy(t *testing.T) {
	d := newTestDeployment()
	d.AddError(AssocTypeSubmission, 42, CodeMissingGivenName, "a")

	errs := d.Errors()
	errs[0].Message = "changed"

	if d.Errors()[0].Message != "a" {
		t.Error("Errors() must not expose internal storage")
	}
}

func TestProcessedObjectsAndSeq(t *testing.T) {
	d := newTestDeployment()
	d.AddProcessedObject(AssocTypeAuthor, 5)
	d.AddProcessedObject(AssocTypeAuthor, 6)

	ids := d.ProcessedObjects(AssocTypeAuthor)
	if len(ids) != 2 || ids[0] != 5 || ids[1] != 6 {
		t.Errorf("ProcessedObjects = %v, want [5 6]", ids)
	}
	if got := d.ProcessedObjects(AssocTypeSubmission); len(got) != 0 {
		t.Errorf("ProcessedObjects(submission) = %v, want empty", got)
	}

	for want := 0; want < 3; want++ {
		if got := d.NextAuthorSeq(); got != want {
			t.Errorf("NextAuthorSeq() = %d, want %d", got, want)
		}
	}
}

func TestProblemError(t *testing.T) {
	p := Problem{AssocType: AssocTypeSubmission, AssocID: 42, Message: "boom"}
	if got, want := p.Error(), "submission 42: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
