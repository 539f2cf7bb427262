package parser

import (
	"github.com/arthur-debert/outparse/pkg/actions"
)

// Diagnostic messages returned for legacy actions
const (
	MsgLegacyExitCode = "Legacy CPI action does not support output parsing via API. Success/failure is determined by exit code only."
	MsgLegacyGrep     = "Legacy CPI action uses grep-based output parsing which is not supported via API. Please update to new parse_rules format."
	MsgLegacyRaw      = "Legacy CPI action does not support output parsing via API."
)

// Diagnostic object keys
const (
	KeyError            = "error"
	KeyExitCodeRequired = "exit_code_required"
	KeyGrepCommand      = "grep_command"
	KeyRawOutput        = "raw_output"
)

// legacyDiagnostic explains why a legacy action was not parsed. An exit code
// takes precedence over a grep directive, which takes precedence over echoing
// the raw text.
func legacyDiagnostic(text string, def *actions.Definition) Object {
	switch {
	case def != nil && def.SuccessExitCode != nil:
		return Object{
			KeyError:            MsgLegacyExitCode,
			KeyExitCodeRequired: *def.SuccessExitCode,
		}
	case def != nil && def.ParseOutput != nil:
		return Object{
			KeyError:       MsgLegacyGrep,
			KeyGrepCommand: *def.ParseOutput,
		}
	default:
		return Object{
			KeyError:     MsgLegacyRaw,
			KeyRawOutput: text,
		}
	}
}
