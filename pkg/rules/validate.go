package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/arthur-debert/outparse/pkg/errors"
	"github.com/arthur-debert/outparse/pkg/transform"
)

// FormatLookup resolves table format names during validation
type FormatLookup interface {
	Lookup(name string) (TableFormat, bool)
}

// Report collects the problems found by Validate. Errors make a rule set
// unusable; warnings point at configuration that parses but probably does not
// do what its author meant.
type Report struct {
	Errors   []error
	Warnings []string
}

// OK reports whether no errors were found
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Err joins all errors, or returns nil
func (r *Report) Err() error {
	return errors.Join(r.Errors...)
}

func (r *Report) addError(err error) {
	r.Errors = append(r.Errors, err)
}

func (r *Report) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks the rule set without running it. formats may be nil, in
// which case table format names are not resolved.
func (rs *RuleSet) Validate(formats FormatLookup) *Report {
	report := &Report{}

	switch rs.Mode {
	case ModeObject, ModeArray:
		rs.validatePatterns(report)
		rs.warnUnused(report, "property_pattern", rs.PropertyPattern != "")
		rs.warnUnused(report, "array_patterns", len(rs.ArrayPatterns) > 0)
		rs.warnUnused(report, "mappings", len(rs.Mappings) > 0)
		rs.warnUnused(report, "format_name", rs.FormatName != "")
	case ModeProperties:
		rs.validateProperties(report)
		rs.warnUnused(report, "patterns", len(rs.Patterns) > 0)
		rs.warnUnused(report, "format_name", rs.FormatName != "")
	case ModeTable:
		rs.validateTable(report, formats)
		rs.warnUnused(report, "patterns", len(rs.Patterns) > 0)
		rs.warnUnused(report, "array_patterns", len(rs.ArrayPatterns) > 0)
		rs.warnUnused(report, "mappings", len(rs.Mappings) > 0)
	default:
		report.addError(UnsupportedMode(rs.Mode))
	}

	if rs.Mode != ModeArray && rs.Separator != "" {
		report.warnf("separator is only used by array mode")
	}

	return report
}

func (rs *RuleSet) warnUnused(report *Report, key string, set bool) {
	if set {
		report.warnf("%s is ignored in %s mode", key, rs.Mode)
	}
}

func (rs *RuleSet) validatePatterns(report *Report) {
	if len(rs.Patterns) == 0 {
		report.warnf("%s mode without patterns always yields empty objects", rs.Mode)
	}

	for _, name := range sortedKeys(rs.Patterns) {
		p := rs.Patterns[name]
		re, err := compile(p.Regex, name)
		if err != nil {
			report.addError(err)
			continue
		}
		checkTransform(report, name, p.Transform)

		if !p.MultiMatch {
			group := p.CaptureGroup()
			if group < 0 {
				report.addError(invalidRule(name, "group %d is negative", group))
			} else if group > re.NumSubexp() {
				report.warnf("field %s: group %d exceeds the %d groups of its regex", name, group, re.NumSubexp())
			}
			if len(p.Object) > 0 {
				report.warnf("field %s: object is only used with multi_match", name)
			}
			continue
		}

		if p.Object == nil {
			report.warnf("field %s: multi_match without object yields an empty array", name)
		}
		for _, sub := range sortedKeys(p.Object) {
			rule := p.Object[sub]
			qualified := name + "." + sub
			if rule.Group < 0 {
				report.addError(invalidRule(qualified, "group %d is negative", rule.Group))
			} else if rule.Group > re.NumSubexp() {
				report.warnf("field %s: group %d exceeds the %d groups of its regex", qualified, rule.Group, re.NumSubexp())
			}
			checkTransform(report, qualified, rule.Transform)
		}
	}
}

func (rs *RuleSet) validateProperties(report *Report) {
	re, err := compile(rs.EffectivePropertyPattern(), "property_pattern")
	if err != nil {
		report.addError(err)
	} else if re.NumSubexp() < 2 {
		report.warnf("property_pattern has %d groups, at least 2 are needed to gather anything", re.NumSubexp())
	}

	for _, name := range sortedKeys(rs.ArrayPatterns) {
		ap := rs.ArrayPatterns[name]
		keyRe, err := compile(ap.KeyPattern, name)
		if err != nil {
			report.addError(err)
			continue
		}
		if keyRe.NumSubexp() < 1 {
			report.addError(invalidRule(name, "key_pattern %q needs at least one capture group", ap.KeyPattern))
		}
		for _, fieldName := range sortedKeys(ap.Fields) {
			field := ap.Fields[fieldName]
			qualified := name + "." + fieldName
			if field.IsSimple() {
				if field.Simple != SimpleValue {
					report.warnf("field %s: simple kind %q is ignored, only %q is supported", qualified, field.Simple, SimpleValue)
				}
				continue
			}
			c := field.Complex
			if c.Key == "" && c.Group == nil {
				report.warnf("field %s: neither key nor group is set, the field is never populated", qualified)
			}
			if c.Key == "" && c.Group != nil && *c.Group > keyRe.NumSubexp() {
				report.warnf("field %s: group %d exceeds the %d groups of key_pattern", qualified, *c.Group, keyRe.NumSubexp())
			}
			checkTransform(report, qualified, c.Transform)
		}
	}

	for _, name := range sortedKeys(rs.Mappings) {
		m := rs.Mappings[name]
		if m.Key == "" {
			report.warnf("mapping %s has no key and is never populated", name)
		}
		checkTransform(report, name, m.Transform)
	}
}

func (rs *RuleSet) validateTable(report *Report, formats FormatLookup) {
	if rs.FormatName == "" {
		report.addError(errors.New(errors.ErrMissingFormatName, "format name required for table parsing"))
		return
	}
	if formats == nil {
		return
	}

	format, ok := formats.Lookup(rs.FormatName)
	if !ok {
		report.addError(errors.Newf(errors.ErrTableFormatNotFound, "table format '%s' not found", rs.FormatName).
			WithDetail("format", rs.FormatName))
		return
	}

	headers := make(map[string]bool, len(format.Headers))
	for _, h := range format.Headers {
		headers[h] = true
	}
	for _, header := range sortedKeys(rs.Transformers) {
		if !headers[header] {
			report.warnf("transformer for %q does not match any header of format %s", header, rs.FormatName)
		}
		checkTransform(report, header, rs.Transformers[header])
	}
}

func compile(pattern, field string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRegexCompile, "invalid regex for field %s", field).
			WithDetail("field", field).
			WithDetail("pattern", pattern)
	}
	return re, nil
}

func checkTransform(report *Report, field, kind string) {
	if !transform.IsKnown(kind) {
		report.warnf("field %s: unknown transform %q passes values through unchanged (known: %s)",
			field, kind, strings.Join(transform.Kinds(), ", "))
	}
}

func invalidRule(field, format string, args ...interface{}) error {
	return errors.Newf(errors.ErrInvalidRule, "field %s: %s", field, fmt.Sprintf(format, args...)).
		WithDetail("field", field)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
