package rules

import (
	"strings"

	"github.com/arthur-debert/outparse/pkg/errors"
)

// Mode selects the extraction strategy of a RuleSet
type Mode string

const (
	ModeObject     Mode = "object"
	ModeArray      Mode = "array"
	ModeProperties Mode = "properties"
	ModeTable      Mode = "table"
)

// Modes lists the recognised modes in documentation order
func Modes() []Mode {
	return []Mode{ModeObject, ModeArray, ModeProperties, ModeTable}
}

// UnsupportedMode reports a mode outside Modes
func UnsupportedMode(m Mode) *errors.ParseError {
	names := make([]string, 0, len(Modes()))
	for _, known := range Modes() {
		names = append(names, string(known))
	}
	return errors.Newf(errors.ErrUnsupportedMode, "unsupported parse type %q", m).
		WithDetail("mode", string(m)).
		WithDetail("supported", strings.Join(names, ", "))
}

// Valid reports whether m is one of the recognised modes. Matching is case-sensitive.
func (m Mode) Valid() bool {
	switch m {
	case ModeObject, ModeArray, ModeProperties, ModeTable:
		return true
	}
	return false
}

const (
	// DefaultSeparator splits array-mode input into blocks
	DefaultSeparator = "\n\n"

	// DefaultPropertyPattern matches key="value" lines
	DefaultPropertyPattern = `^([^=]+)="(.*)"$`

	// DefaultGroup is the capture group used when a pattern does not name one
	DefaultGroup = 1

	// SimpleValue is the simple field kind that copies the gathered value
	SimpleValue = "value"

	// KeyBackreference is the placeholder replaced by the first capture group
	// of a key pattern match inside a key template
	KeyBackreference = `\1`
)

// RuleSet is the root parsing configuration for one action
type RuleSet struct {
	Mode            Mode                    `koanf:"mode" json:"mode" yaml:"mode"`
	Separator       string                  `koanf:"separator" json:"separator,omitempty" yaml:"separator,omitempty"`
	Patterns        map[string]PatternRule  `koanf:"patterns" json:"patterns,omitempty" yaml:"patterns,omitempty"`
	PropertyPattern string                  `koanf:"property_pattern" json:"property_pattern,omitempty" yaml:"property_pattern,omitempty"`
	ArrayPatterns   map[string]ArrayPattern `koanf:"array_patterns" json:"array_patterns,omitempty" yaml:"array_patterns,omitempty"`
	Mappings        map[string]MappingRule  `koanf:"mappings" json:"mappings,omitempty" yaml:"mappings,omitempty"`
	FormatName      string                  `koanf:"format_name" json:"format_name,omitempty" yaml:"format_name,omitempty"`
	Transformers    map[string]string       `koanf:"transformers" json:"transformers,omitempty" yaml:"transformers,omitempty"`
}

// EffectiveSeparator returns the configured separator or DefaultSeparator
func (rs *RuleSet) EffectiveSeparator() string {
	if rs.Separator == "" {
		return DefaultSeparator
	}
	return rs.Separator
}

// EffectivePropertyPattern returns the configured property pattern or DefaultPropertyPattern
func (rs *RuleSet) EffectivePropertyPattern() string {
	if rs.PropertyPattern == "" {
		return DefaultPropertyPattern
	}
	return rs.PropertyPattern
}

// PatternRule extracts one object-mode field
type PatternRule struct {
	Regex      string                     `koanf:"regex" json:"regex" yaml:"regex"`
	Group      *int                       `koanf:"group" json:"group,omitempty" yaml:"group,omitempty"`
	Transform  string                     `koanf:"transform" json:"transform,omitempty" yaml:"transform,omitempty"`
	MultiMatch bool                       `koanf:"multi_match" json:"multi_match,omitempty" yaml:"multi_match,omitempty"`
	Object     map[string]ObjectFieldRule `koanf:"object" json:"object,omitempty" yaml:"object,omitempty"`
	Optional   bool                       `koanf:"optional" json:"optional,omitempty" yaml:"optional,omitempty"`
}

// CaptureGroup returns the configured group or DefaultGroup
func (p PatternRule) CaptureGroup() int {
	if p.Group == nil {
		return DefaultGroup
	}
	return *p.Group
}

// ObjectFieldRule builds one field of a multi-match element from a capture group
type ObjectFieldRule struct {
	Group     int    `koanf:"group" json:"group" yaml:"group"`
	Transform string `koanf:"transform" json:"transform,omitempty" yaml:"transform,omitempty"`
	Optional  bool   `koanf:"optional" json:"optional,omitempty" yaml:"optional,omitempty"`
}

// ArrayPattern correlates gathered properties whose keys match KeyPattern
// into a list of objects
type ArrayPattern struct {
	KeyPattern string               `koanf:"key_pattern" json:"key_pattern" yaml:"key_pattern"`
	Fields     map[string]FieldRule `koanf:"fields" json:"fields" yaml:"fields"`
}

// MappingRule copies one gathered property into the result
type MappingRule struct {
	Key       string `koanf:"key" json:"key,omitempty" yaml:"key,omitempty"`
	Transform string `koanf:"transform" json:"transform,omitempty" yaml:"transform,omitempty"`
}

// TableFormat is a named column layout used by table mode
type TableFormat struct {
	Headers   []string `koanf:"headers" json:"headers" yaml:"headers"`
	Delimiter string   `koanf:"delimiter" json:"delimiter" yaml:"delimiter"`
	SkipLines int      `koanf:"skip_lines" json:"skip_lines" yaml:"skip_lines"`
}

// IntPtr is a small helper for building rules in code
func IntPtr(v int) *int {
	return &v
}
