// Package actions describes the commands whose output gets parsed. A
// Definition carrying a rule set is modern and is parsed structurally. One
// without a rule set is legacy: its output is never parsed, the parser only
// reports why.
package actions

import (
	"github.com/arthur-debert/outparse/pkg/rules"
)

// Definition is one named external command and the rules used to read its
// output. The command itself is executed by a collaborator, never here.
type Definition struct {
	Name     string         `koanf:"name" json:"name,omitempty" yaml:"name,omitempty"`
	Command  string         `koanf:"command" json:"command" yaml:"command"`
	Params   []string       `koanf:"params" json:"params,omitempty" yaml:"params,omitempty"`
	RuleSet  *rules.RuleSet `koanf:"rule_set" json:"rule_set,omitempty" yaml:"rule_set,omitempty"`
	PreExec  []string       `koanf:"pre_exec" json:"pre_exec,omitempty" yaml:"pre_exec,omitempty"`
	PostExec []string       `koanf:"post_exec" json:"post_exec,omitempty" yaml:"post_exec,omitempty"`

	// Legacy only
	SuccessExitCode *int    `koanf:"success_exit_code" json:"success_exit_code,omitempty" yaml:"success_exit_code,omitempty"`
	ParseOutput     *string `koanf:"parse_output" json:"parse_output,omitempty" yaml:"parse_output,omitempty"`
}

// IsLegacy reports whether the definition has no rule set
func (d *Definition) IsLegacy() bool {
	return d == nil || d.RuleSet == nil
}

// Kind returns "modern" or "legacy"
func (d *Definition) Kind() string {
	if d.IsLegacy() {
		return "legacy"
	}
	return "modern"
}

// SelectRuleSet returns the rule set of a modern definition, or false for a
// legacy one.
func SelectRuleSet(d *Definition) (*rules.RuleSet, bool) {
	if d.IsLegacy() {
		return nil, false
	}
	return d.RuleSet, true
}

// Modern builds a definition with a rule set
func Modern(name, command string, rs *rules.RuleSet) *Definition {
	return &Definition{Name: name, Command: command, RuleSet: rs}
}

// Legacy builds a definition without a rule set. exitCode and grep may be nil.
func Legacy(name, command string, exitCode *int, grep *string) *Definition {
	return &Definition{Name: name, Command: command, SuccessExitCode: exitCode, ParseOutput: grep}
}
