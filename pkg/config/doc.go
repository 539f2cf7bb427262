// Package config loads action definitions and table formats for outparse.
//
// Sources are layered, later ones overriding earlier ones:
//
//  1. embedded defaults (parser settings and built-in table formats)
//  2. a user document, either the path given explicitly or the first
//     outparse/config.{toml,yaml,yml,json} found in the XDG config dirs
//  3. OUTPARSE_* environment variables, e.g. OUTPARSE_PARSER_STRICT=true
//
// Documents may use the older key names parse_rules, type and format_type;
// they are read as rule_set, mode and format_name.
package config
