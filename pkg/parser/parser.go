package parser

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/outparse/pkg/actions"
	"github.com/arthur-debert/outparse/pkg/errors"
	"github.com/arthur-debert/outparse/pkg/logging"
	"github.com/arthur-debert/outparse/pkg/rules"
	"github.com/arthur-debert/outparse/pkg/tableformat"
	"github.com/arthur-debert/outparse/pkg/transform"
)

// Object is a parsed object value
type Object = map[string]interface{}

// Array is a parsed array value
type Array = []interface{}

// Parser interprets rule sets against raw command output
type Parser struct {
	formats *tableformat.Catalog
	regexps *regexCache
	logger  zerolog.Logger
}

// Option configures a Parser
type Option func(*Parser)

// WithRegexCache turns caching of compiled expressions on or off. Caching is
// on by default and never changes match results.
func WithRegexCache(enabled bool) Option {
	return func(p *Parser) {
		if enabled {
			p.regexps = newRegexCache()
		} else {
			p.regexps = nil
		}
	}
}

// WithLogger replaces the component logger
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New creates a parser resolving table formats from formats, which may be nil
// when no rule set uses table mode.
func New(formats *tableformat.Catalog, opts ...Option) *Parser {
	p := &Parser{
		formats: formats,
		regexps: newRegexCache(),
		logger:  logging.GetLogger("parser"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse interprets text with the rule set of def. Legacy definitions are not
// parsed; a diagnostic object is returned instead.
func (p *Parser) Parse(text string, def *actions.Definition) (interface{}, error) {
	rs, ok := actions.SelectRuleSet(def)
	if !ok {
		p.logger.Debug().Str("action", actionName(def)).Msg("legacy action, returning diagnostic")
		return legacyDiagnostic(text, def), nil
	}

	result, err := p.ParseRules(text, rs)
	if err != nil {
		p.logger.Debug().Err(err).Str("action", actionName(def)).Msg("parse failed")
	}
	return result, err
}

// ParseRules interprets text with rs directly
func (p *Parser) ParseRules(text string, rs *rules.RuleSet) (interface{}, error) {
	if rs == nil {
		return nil, errors.New(errors.ErrInvalidInput, "rule set is required")
	}

	done := logging.LogOperationStart(p.logger, "parse_"+string(rs.Mode))
	defer done()

	var (
		result interface{}
		err    error
	)
	switch rs.Mode {
	case rules.ModeObject:
		result, err = p.parseObject(text, rs.Patterns)
	case rules.ModeArray:
		result, err = p.parseArray(text, rs)
	case rules.ModeProperties:
		result, err = p.parseProperties(text, rs)
	case rules.ModeTable:
		result, err = p.parseTable(text, rs)
	default:
		err = rules.UnsupportedMode(rs.Mode)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// convert applies a transform and ties failures to the field name
func convert(raw, kind, field string) (interface{}, error) {
	value, err := transform.Value(raw, kind)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrValueConversion, "invalid value for field %s", field).
			WithDetails(errors.GetErrorDetails(err)).
			WithDetail("field", field)
	}
	return value, nil
}

func missingField(field string) error {
	return errors.Newf(errors.ErrMissingRequiredField, "required group not found for field %s", field).
		WithDetail("field", field)
}

func actionName(def *actions.Definition) string {
	if def == nil {
		return ""
	}
	return def.Name
}
