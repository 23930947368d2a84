package model

// Context is a publishing context (journal, press or server).
type Context struct {
	ID            int64
	Path          string
	PrimaryLocale string
}

// Publication is one version of a submission's content.
type Publication struct {
	ID           int64
	SubmissionID int64
}

// Submission is a work under editorial processing.
type Submission struct {
	ID                 int64
	ContextID          int64
	Locale             string
	CurrentPublication *Publication
}

// CurrentPublicationID returns the current publication's id, or 0.
func (s *Submission) CurrentPublicationID() int64 {
	if s == nil || s.CurrentPublication == nil {
		return 0
	}
	return s.CurrentPublication.ID
}

// UserGroup is a named role scoped to a context.
type UserGroup struct {
	ID        int64
	ContextID int64
	Name      Localized
}

// Names returns the group's names across all locales.
func (g *UserGroup) Names() []string {
	return g.Name.Values()
}

// HasName reports whether name matches the group's name in any locale.
func (g *UserGroup) HasName(name string) bool {
	for _, loc := range g.Name.Locales() {
		if g.Name[loc] == name {
			return true
		}
	}
	return false
}
