package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/outparse/pkg/actions"
	"github.com/arthur-debert/outparse/pkg/errors"
	"github.com/arthur-debert/outparse/pkg/logging"
	"github.com/arthur-debert/outparse/pkg/rules"
	"github.com/arthur-debert/outparse/pkg/tableformat"
)

const (
	appName = "outparse"

	// DefaultEnvPrefix prefixes environment overrides
	DefaultEnvPrefix = "OUTPARSE_"

	// keyDelim separates koanf key paths. Header names and action names may
	// contain dots, so "." cannot be used.
	keyDelim = "::"

	defaultsSource = "<defaults>"
)

// searchNames are tried in order under each XDG config directory
var searchNames = []string{"config.toml", "config.yaml", "config.yml", "config.json"}

// Options controls which sources Load reads
type Options struct {
	// Path is an explicit document. When empty the XDG config dirs are searched.
	Path string

	// NoSearch skips the XDG search when Path is empty
	NoSearch bool

	// EnvPrefix overrides DefaultEnvPrefix. Set NoEnv to skip the environment.
	EnvPrefix string
	NoEnv     bool
}

// Load reads the embedded defaults, the user document and the environment
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(keyDelim)
	sources := []string{defaultsSource}

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User document
	path := opts.Path
	if path == "" && !opts.NoSearch {
		path = searchConfigFile()
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read configuration %s", path).
				WithDetail("path", path)
		}
		if err := loadDocument(k, file.Provider(path), path); err != nil {
			return nil, err
		}
		sources = append(sources, path)
		logger.Debug().Str("path", path).Msg("loaded configuration document")
	}

	// 3. Environment
	if !opts.NoEnv {
		prefix := opts.EnvPrefix
		if prefix == "" {
			prefix = DefaultEnvPrefix
		}
		if err := k.Load(env.Provider(prefix, keyDelim, envKey(prefix)), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
		}
	}

	return build(k, sources)
}

// LoadFile reads the embedded defaults and the document at path only
func LoadFile(path string) (*Config, error) {
	return Load(Options{Path: path, NoEnv: true})
}

// LoadBytes reads the embedded defaults and a document held in memory. format
// is one of toml, yaml or json.
func LoadBytes(data []byte, format string) (*Config, error) {
	k := koanf.New(keyDelim)
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	if err := loadDocument(k, &rawBytesProvider{bytes: data}, "."+format); err != nil {
		return nil, err
	}
	return build(k, []string{defaultsSource, "<" + format + ">"})
}

// loadDocument parses one user document into a scratch instance, rewrites
// legacy key names and merges the result into k
func loadDocument(k *koanf.Koanf, provider koanf.Provider, name string) error {
	p, err := parserFor(name)
	if err != nil {
		return err
	}

	doc := koanf.New(keyDelim)
	if err := doc.Load(provider, p); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to parse configuration %s", name).
			WithDetail("path", name)
	}

	normalized := normalizeDocument(doc.Raw())
	if err := k.Load(confmap.Provider(normalized, ""), nil); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to merge configuration %s", name)
	}
	return nil
}

func parserFor(name string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported configuration format %q", filepath.Ext(name)).
			WithDetail("path", name)
	}
}

// envKey maps OUTPARSE_PARSER_CACHE_REGEX to parser::cache_regex. Only the
// first underscore separates the section from the setting.
func envKey(prefix string) func(string) string {
	return func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, prefix))
		return strings.Replace(key, "_", keyDelim, 1)
	}
}

func searchConfigFile() string {
	for _, name := range searchNames {
		path, err := xdg.SearchConfigFile(filepath.Join(appName, name))
		if err == nil {
			return path
		}
	}
	return ""
}

// build decodes k, names the actions, seals the catalog and applies strict
// validation
func build(k *koanf.Koanf, sources []string) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				rules.FieldRuleHookFunc("koanf"),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	for name, def := range cfg.Actions {
		if def == nil {
			def = &actions.Definition{}
			cfg.Actions[name] = def
		}
		def.Name = name
	}

	catalog, err := tableformat.New(cfg.TableFormats)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "invalid table formats")
	}
	cfg.catalog = catalog
	cfg.sources = sources

	if cfg.Parser.Strict {
		if err := validationError(cfg.Validate()); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

var ruleSetAliases = map[string]string{
	"type":        "mode",
	"format_type": "format_name",
}

// normalizeDocument rewrites the older key names of action definitions. A
// document setting both the old and the new name keeps the new one.
func normalizeDocument(doc map[string]interface{}) map[string]interface{} {
	defs, ok := doc["actions"].(map[string]interface{})
	if !ok {
		return doc
	}

	for _, raw := range defs {
		def, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		renameKey(def, "parse_rules", "rule_set")

		rs, ok := def["rule_set"].(map[string]interface{})
		if !ok {
			continue
		}
		for alias, key := range ruleSetAliases {
			renameKey(rs, alias, key)
		}
	}
	return doc
}

func renameKey(m map[string]interface{}, from, to string) {
	v, ok := m[from]
	if !ok {
		return
	}
	delete(m, from)
	if _, exists := m[to]; !exists {
		m[to] = v
	}
}
