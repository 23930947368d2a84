// Package native drives imports of the platform's native XML documents.
// Each entity type is handled by a Filter registered under its element names.
package native

import (
	"context"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/nativeimport/deployment"
)

// Filter converts one native XML element into a persisted object.
type Filter interface {
	// DisplayName returns a human-readable filter description
	DisplayName() string

	// PluralElementName returns the wrapper element name (e.g., "authors")
	PluralElementName() string

	// SingularElementName returns the element name handled (e.g., "author")
	SingularElementName() string

	// HandleElement converts and persists a single element.
	// Problems that do not prevent the import are recorded on d.
	HandleElement(ctx context.Context, d *deployment.Deployment, el *etree.Element) (any, error)
}
