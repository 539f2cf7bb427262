package config

import (
	"sort"

	"github.com/arthur-debert/outparse/pkg/actions"
	"github.com/arthur-debert/outparse/pkg/errors"
	"github.com/arthur-debert/outparse/pkg/parser"
	"github.com/arthur-debert/outparse/pkg/rules"
	"github.com/arthur-debert/outparse/pkg/tableformat"
)

// Config is a loaded configuration document. It is not modified after Load
// returns.
type Config struct {
	Parser       ParserSettings                 `koanf:"parser"`
	TableFormats map[string]rules.TableFormat   `koanf:"table_formats"`
	Actions      map[string]*actions.Definition `koanf:"actions"`

	catalog *tableformat.Catalog
	sources []string
}

// ParserSettings tunes the parser built from a Config
type ParserSettings struct {
	CacheRegex bool `koanf:"cache_regex"`
	Strict     bool `koanf:"strict"`
}

// Action returns the named definition
func (c *Config) Action(name string) (*actions.Definition, error) {
	def, ok := c.Actions[name]
	if !ok || def == nil {
		return nil, errors.Newf(errors.ErrActionNotFound, "action '%s' not found", name).
			WithDetail("action", name)
	}
	return def, nil
}

// ActionNames returns the defined action names, sorted
func (c *Config) ActionNames() []string {
	names := make([]string, 0, len(c.Actions))
	for name := range c.Actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalog returns the table formats as a sealed catalog
func (c *Config) Catalog() *tableformat.Catalog {
	return c.catalog
}

// Sources lists the documents that were loaded, in load order. Embedded
// defaults show up as "<defaults>".
func (c *Config) Sources() []string {
	return append([]string(nil), c.sources...)
}

// ParserOptions returns the parser options implied by the settings
func (c *Config) ParserOptions() []parser.Option {
	return []parser.Option{parser.WithRegexCache(c.Parser.CacheRegex)}
}

// NewParser builds a parser using the catalog and settings of c
func (c *Config) NewParser(opts ...parser.Option) *parser.Parser {
	return parser.New(c.catalog, append(c.ParserOptions(), opts...)...)
}

// Validate checks the rule set of every modern action. Legacy actions have
// nothing to check and are left out.
func (c *Config) Validate() map[string]*rules.Report {
	reports := make(map[string]*rules.Report)
	for _, name := range c.ActionNames() {
		rs, ok := actions.SelectRuleSet(c.Actions[name])
		if !ok {
			continue
		}
		reports[name] = rs.Validate(c.catalog)
	}
	return reports
}

// validationError joins the errors of every failing report
func validationError(reports map[string]*rules.Report) error {
	names := make([]string, 0, len(reports))
	for name := range reports {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := reports[name].Err(); err != nil {
			errs = append(errs, errors.Wrapf(err, errors.ErrConfigValid, "action %s", name).
				WithDetail("action", name))
		}
	}
	return errors.Join(errs...)
}
