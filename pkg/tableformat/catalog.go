// Package tableformat holds the named column layouts used by table mode.
// A Catalog is built once and is read-only afterwards, so a single instance
// can be shared by any number of parsers.
package tableformat

import (
	"github.com/arthur-debert/outparse/pkg/errors"
	"github.com/arthur-debert/outparse/pkg/registry"
	"github.com/arthur-debert/outparse/pkg/rules"
)

// Catalog maps format names to table layouts
type Catalog struct {
	formats registry.Registry[rules.TableFormat]
}

// New builds a sealed catalog. Header slices are copied so later changes to
// formats do not leak into the catalog.
func New(formats map[string]rules.TableFormat) (*Catalog, error) {
	copied := make(map[string]rules.TableFormat, len(formats))
	for name, f := range formats {
		if f.SkipLines < 0 {
			return nil, errors.Newf(errors.ErrInvalidRule, "table format '%s': skip_lines cannot be negative", name).
				WithDetail("format", name)
		}
		f.Headers = append([]string(nil), f.Headers...)
		copied[name] = f
	}

	reg, err := registry.FromMap(copied)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "invalid table format catalog")
	}
	return &Catalog{formats: reg}, nil
}

// Lookup returns the named format. A nil catalog knows no formats.
func (c *Catalog) Lookup(name string) (rules.TableFormat, bool) {
	if c == nil {
		return rules.TableFormat{}, false
	}
	f, err := c.formats.Get(name)
	if err != nil {
		return rules.TableFormat{}, false
	}
	f.Headers = append([]string(nil), f.Headers...)
	return f, true
}

// Has reports whether name is registered
func (c *Catalog) Has(name string) bool {
	return c != nil && c.formats.Has(name)
}

// Names returns the registered names, sorted
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	return c.formats.List()
}

// Len returns the number of formats
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return c.formats.Count()
}
