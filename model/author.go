package model

// Author is a contributor attached to a publication.
type Author struct {
	ID            int64
	PublicationID int64
	Seq           int

	PrimaryContact  bool
	IncludeInBrowse bool

	// UserGroupID is nil when no user group was resolved.
	UserGroupID *int64

	GivenName   Localized
	FamilyName  Localized
	Affiliation Localized
	Biography   Localized

	Country string
	Email   string
	URL     string
	ORCID   string
}

// NewAuthor returns an empty author with initialized localized fields.
func NewAuthor() *Author {
	return &Author{
		GivenName:   Localized{},
		FamilyName:  Localized{},
		Affiliation: Localized{},
		Biography:   Localized{},
	}
}

// SetUserGroupID records the resolved user group.
func (a *Author) SetUserGroupID(id int64) {
	a.UserGroupID = &id
}

// HasUserGroup reports whether a user group was resolved.
func (a *Author) HasUserGroup() bool {
	return a.UserGroupID != nil
}

// LocalizedGivenName returns the given name in the first preferred locale
// that has one, or any available given name.
func (a *Author) LocalizedGivenName(preferred ...string) string {
	return a.GivenName.Best(preferred...)
}

// FullName returns "Given Family" using the preferred locales.
func (a *Author) FullName(preferred ...string) string {
	given := a.GivenName.Best(preferred...)
	family := a.FamilyName.Best(preferred...)
	switch {
	case given == "":
		return family
	case family == "":
		return given
	}
	return given + " " + family
}
