// Package model defines the records produced and consumed by native imports.
package model

import "sort"

// Localized holds one value per locale code (e.g. "en_US").
type Localized map[string]string

// Get returns the value for locale, or "" when absent.
func (l Localized) Get(locale string) string {
	if l == nil {
		return ""
	}
	return l[locale]
}

// Set stores value under locale. The map must be non-nil.
func (l Localized) Set(locale, value string) {
	l[locale] = value
}

// Locales returns the locale codes present, sorted.
func (l Localized) Locales() []string {
	locales := make([]string, 0, len(l))
	for loc := range l {
		locales = append(locales, loc)
	}
	sort.Strings(locales)
	return locales
}

// Values returns every non-empty value in sorted-locale order.
func (l Localized) Values() []string {
	var values []string
	for _, loc := range l.Locales() {
		if v := l[loc]; v != "" {
			values = append(values, v)
		}
	}
	return values
}

// Best returns the first non-empty value among the preferred locales,
// falling back to the first non-empty value in sorted-locale order.
func (l Localized) Best(preferred ...string) string {
	for _, loc := range preferred {
		if v := l.Get(loc); v != "" {
			return v
		}
	}
	if values := l.Values(); len(values) > 0 {
		return values[0]
	}
	return ""
}
