package author

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/nativeimport/model"
)

type childHandler struct {
	// localized fields honour the child's locale attribute
	localized bool
	set       func(a *model.Author, locale, value string)
}

var childHandlers = map[string]childHandler{
	"givenname": {
		localized: true,
		set:       func(a *model.Author, locale, v string) { a.GivenName.Set(locale, v) },
	},
	"familyname": {
		localized: true,
		set:       func(a *model.Author, locale, v string) { a.FamilyName.Set(locale, v) },
	},
	"affiliation": {
		localized: true,
		set:       func(a *model.Author, locale, v string) { a.Affiliation.Set(locale, v) },
	},
	"biography": {
		localized: true,
		set:       func(a *model.Author, locale, v string) { a.Biography.Set(locale, v) },
	},
	"country": {set: func(a *model.Author, _, v string) { a.Country = v }},
	"email":   {set: func(a *model.Author, _, v string) { a.Email = v }},
	"url":     {set: func(a *model.Author, _, v string) { a.URL = v }},
	"orcid":   {set: func(a *model.Author, _, v string) { a.ORCID = v }},
}

// textContent returns the concatenated character data of el and all of its
// descendants, untrimmed.
func textContent(el *etree.Element) string {
	var b strings.Builder
	writeText(&b, el)
	return b.String()
}

func writeText(b *strings.Builder, el *etree.Element) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			writeText(b, t)
		}
	}
}
