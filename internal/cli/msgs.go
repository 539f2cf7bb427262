package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Turn command-line output into structured data"
	MsgParseShort      = "Parse command output with the rules of an action"
	MsgActionsShort    = "List configured actions"
	MsgDescribeShort   = "Describe how an action's output is parsed"
	MsgValidateShort   = "Check every action's parse rules"
	MsgValidateLong    = "Validate checks the parse rules of every modern action: regular expressions\nmust compile and table formats must exist. Suspicious settings are reported\nas warnings. FILE replaces the configuration given with --config."
	MsgFormatsShort    = "List table formats"
	MsgGenConfigShort  = "Generate a starter configuration file"
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	// Status messages
	MsgNoActions        = "No actions configured."
	MsgNoFormats        = "No table formats configured."
	MsgValidationOK     = "%s: ok"
	MsgValidationFailed = "%s: %d error(s)"
	MsgValidationWarned = "%s: ok, %d warning(s)"
	MsgValidationItem   = "  - %s"
	MsgConfigWritten    = "Wrote configuration to %s"

	// Error messages
	MsgErrReadInput    = "failed to read input %s"
	MsgErrInvalidCount = "%d action(s) failed validation"
	MsgErrConfigExists = "configuration %s already exists, use --force to overwrite"
	MsgErrWriteConfig  = "failed to write configuration %s"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Configuration file (default: search $XDG_CONFIG_HOME/outparse)"
	MsgFlagFormat  = "Output format: auto, term, text, json, yaml, toml or xml"
	MsgFlagNoCache = "Compile regular expressions on every use"
	MsgFlagWrite   = "Write the configuration file instead of printing it"
	MsgFlagPath    = "Path written by --write (default: $XDG_CONFIG_HOME/outparse/config.toml)"
	MsgFlagForce   = "Overwrite an existing configuration file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/parse-long.txt
	msgParseLongRaw string
	MsgParseLong    = strings.TrimSpace(msgParseLongRaw)

	//go:embed msgs/parse-example.txt
	msgParseExampleRaw string
	MsgParseExample    = strings.TrimSpace(msgParseExampleRaw)

	//go:embed msgs/genconfig-example.txt
	msgGenConfigExampleRaw string
	MsgGenConfigExample    = strings.TrimSpace(msgGenConfigExampleRaw)
)
