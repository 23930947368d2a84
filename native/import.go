package native

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/nativeimport/deployment"
)

// ErrUnsupportedRoot is returned when no filter handles the document root.
var ErrUnsupportedRoot = errors.New("unsupported root element")

// Importer reads native XML documents and dispatches their elements to filters.
type Importer struct {
	registry *Registry
	logger   *slog.Logger
}

// NewImporter creates an importer over the registry's filters.
func NewImporter(registry *Registry, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{registry: registry, logger: logger}
}

// Import parses a document and imports every element its root describes.
func (im *Importer) Import(ctx context.Context, d *deployment.Deployment, r io.Reader) ([]any, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}

	return im.ImportElement(ctx, d, root)
}

// ImportElement imports a parsed element. A plural element (e.g. <authors>)
// has each matching child handled in document order; a singular element is
// handled directly.
func (im *Importer) ImportElement(ctx context.Context, d *deployment.Deployment, el *etree.Element) ([]any, error) {
	f, ok := im.registry.Get(el.Tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRoot, el.Tag)
	}

	logger := im.logger.With("deployment", d.ID.String(), "filter", f.DisplayName())

	if strings.EqualFold(el.Tag, f.SingularElementName()) {
		obj, err := f.HandleElement(ctx, d, el)
		if err != nil {
			return nil, fmt.Errorf("handling <%s>: %w", el.Tag, err)
		}
		return []any{obj}, nil
	}

	var objects []any
	for i, child := range el.ChildElements() {
		if child.Tag != f.SingularElementName() {
			logger.Debug("skipping element", "tag", child.Tag)
			continue
		}
		if err := ctx.Err(); err != nil {
			return objects, err
		}
		obj, err := f.HandleElement(ctx, d, child)
		if err != nil {
			return objects, fmt.Errorf("handling <%s> %d: %w", child.Tag, i, err)
		}
		objects = append(objects, obj)
	}

	logger.Info("imported elements", "element", el.Tag, "count", len(objects))
	return objects, nil
}
