package parser

import (
	"regexp"
	"sync"

	"github.com/arthur-debert/outparse/pkg/errors"
)

// regexCache holds compiled expressions keyed by their source
type regexCache struct {
	entries sync.Map
}

func newRegexCache() *regexCache {
	return &regexCache{}
}

func (c *regexCache) get(pattern string) (*regexp.Regexp, bool) {
	v, ok := c.entries.Load(pattern)
	if !ok {
		return nil, false
	}
	return v.(*regexp.Regexp), true
}

func (c *regexCache) put(pattern string, re *regexp.Regexp) *regexp.Regexp {
	actual, _ := c.entries.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp)
}

// compile returns the compiled expression for pattern. field names the rule
// the pattern belongs to and only shows up in errors.
func (p *Parser) compile(pattern, field string) (*regexp.Regexp, error) {
	if p.regexps != nil {
		if re, ok := p.regexps.get(pattern); ok {
			return re, nil
		}
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRegexCompile, "invalid regex for field %s", field).
			WithDetail("field", field).
			WithDetail("pattern", pattern)
	}
	p.logger.Trace().Str("pattern", pattern).Msg("compiled regex")

	if p.regexps != nil {
		re = p.regexps.put(pattern, re)
	}
	return re, nil
}

// submatch returns capture group n of a match located by loc. The second
// result is false when the group did not take part in the match or does not
// exist, which is distinct from a group that matched empty text.
func submatch(text string, loc []int, n int) (string, bool) {
	if n < 0 || 2*n+1 >= len(loc) {
		return "", false
	}
	start, end := loc[2*n], loc[2*n+1]
	if start < 0 {
		return "", false
	}
	return text[start:end], true
}
