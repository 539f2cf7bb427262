package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/arthur-debert/outparse/pkg/rules"
)

// parseObject applies every pattern to text. Patterns run in name order so
// the first reported failure does not depend on map iteration.
func (p *Parser) parseObject(text string, patterns map[string]rules.PatternRule) (Object, error) {
	result := Object{}

	for _, name := range sortedNames(patterns) {
		pattern := patterns[name]
		re, err := p.compile(pattern.Regex, name)
		if err != nil {
			return nil, err
		}

		if pattern.MultiMatch {
			items, err := collectMatches(text, re, pattern.Object)
			if err != nil {
				return nil, err
			}
			result[name] = items
			continue
		}

		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			// no match leaves the field out
			continue
		}

		raw, ok := submatch(text, loc, pattern.CaptureGroup())
		if !ok {
			if pattern.Optional {
				result[name] = nil
				continue
			}
			return nil, missingField(name)
		}

		value, err := convert(raw, pattern.Transform, name)
		if err != nil {
			return nil, err
		}
		result[name] = value
	}

	return result, nil
}

// collectMatches builds one element per non-overlapping match of re. A nil
// field map yields an empty array; an empty one yields an empty object per
// match.
func collectMatches(text string, re *regexp.Regexp, fields map[string]rules.ObjectFieldRule) (Array, error) {
	items := Array{}
	if fields == nil {
		return items, nil
	}

	names := sortedNames(fields)
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		item := Object{}
		for _, name := range names {
			rule := fields[name]
			raw, ok := submatch(text, loc, rule.Group)
			if !ok {
				if rule.Optional {
					item[name] = nil
					continue
				}
				return nil, missingField(name)
			}

			value, err := convert(raw, rule.Transform, name)
			if err != nil {
				return nil, err
			}
			item[name] = value
		}
		items = append(items, item)
	}

	return items, nil
}

// parseArray splits text into blocks and parses each one as an object
func (p *Parser) parseArray(text string, rs *rules.RuleSet) (Array, error) {
	items := Array{}
	for i, block := range strings.Split(text, rs.EffectiveSeparator()) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		item, err := p.parseObject(block, rs.Patterns)
		if err != nil {
			p.logger.Debug().Int("block", i).Msg("block failed to parse")
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
