package parser

import (
	"strings"

	"github.com/arthur-debert/outparse/pkg/errors"
	"github.com/arthur-debert/outparse/pkg/rules"
)

// properties are gathered key/value pairs. keys keeps first-appearance order,
// values keeps the last value seen for each key.
type properties struct {
	keys   []string
	values map[string]string
}

func (ps *properties) set(key, value string) {
	if _, seen := ps.values[key]; !seen {
		ps.keys = append(ps.keys, key)
	}
	ps.values[key] = value
}

func (ps *properties) get(key string) (string, bool) {
	v, ok := ps.values[key]
	return v, ok
}

func (p *Parser) parseProperties(text string, rs *rules.RuleSet) (Object, error) {
	gathered, err := p.gather(text, rs.EffectivePropertyPattern())
	if err != nil {
		return nil, err
	}
	p.logger.Trace().Int("properties", len(gathered.keys)).Msg("gathered properties")

	result := Object{}

	for _, name := range sortedNames(rs.ArrayPatterns) {
		items, err := p.correlate(name, rs.ArrayPatterns[name], gathered)
		if err != nil {
			return nil, err
		}
		result[name] = items
	}

	for _, name := range sortedNames(rs.Mappings) {
		mapping := rs.Mappings[name]
		if mapping.Key == "" {
			continue
		}
		raw, ok := gathered.get(mapping.Key)
		if !ok {
			continue
		}
		value, err := convert(raw, mapping.Transform, name)
		if err != nil {
			return nil, err
		}
		result[name] = value
	}

	return result, nil
}

// gather records group 1 as key and group 2 as value for every non-blank line
// matching pattern. Patterns with fewer than two groups gather nothing.
func (p *Parser) gather(text, pattern string) (*properties, error) {
	re, err := p.compile(pattern, "property_pattern")
	if err != nil {
		return nil, err
	}

	gathered := &properties{values: make(map[string]string)}
	if re.NumSubexp() < 2 {
		return gathered, nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		loc := re.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		key, keyOK := submatch(line, loc, 1)
		value, valueOK := submatch(line, loc, 2)
		if !keyOK || !valueOK {
			continue
		}
		gathered.set(key, value)
	}

	return gathered, nil
}

// correlate builds one element per gathered key matching the key pattern, in
// gathered order
func (p *Parser) correlate(name string, pattern rules.ArrayPattern, gathered *properties) (Array, error) {
	re, err := p.compile(pattern.KeyPattern, name)
	if err != nil {
		return nil, err
	}
	if re.NumSubexp() < 1 {
		return nil, errors.Newf(errors.ErrInvalidRule, "key_pattern for field %s needs at least one capture group", name).
			WithDetail("field", name).
			WithDetail("pattern", pattern.KeyPattern)
	}

	fieldNames := sortedNames(pattern.Fields)
	items := Array{}

	for _, key := range gathered.keys {
		loc := re.FindStringSubmatchIndex(key)
		if loc == nil {
			continue
		}
		value, _ := gathered.get(key)
		// a non-participating first group substitutes as empty text
		index, _ := submatch(key, loc, 1)

		item := Object{}
		for _, fieldName := range fieldNames {
			rule := pattern.Fields[fieldName]
			if rule.IsSimple() {
				if rule.Simple == rules.SimpleValue {
					item[fieldName] = value
				}
				continue
			}

			c := rule.Complex
			var (
				raw   string
				found bool
			)
			switch {
			case c.Key != "":
				raw, found = gathered.get(strings.ReplaceAll(c.Key, rules.KeyBackreference, index))
				if !found && c.Optional {
					item[fieldName] = nil
				}
			case c.Group != nil:
				raw, found = submatch(key, loc, *c.Group)
			}
			if !found {
				continue
			}

			converted, err := convert(raw, c.Transform, fieldName)
			if err != nil {
				return nil, err
			}
			item[fieldName] = converted
		}
		items = append(items, item)
	}

	return items, nil
}
