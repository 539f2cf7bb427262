// Package describe renders action definitions as markdown, for people reading
// a configuration rather than for the parser.
package describe

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/outparse/pkg/actions"
	"github.com/arthur-debert/outparse/pkg/rules"
)

// Action returns a markdown description of def. formats resolves table
// format names and may be nil.
func Action(def *actions.Definition, formats rules.FormatLookup) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", def.Name)
	if def.Command != "" {
		fmt.Fprintf(&b, "Command: `%s`\n\n", def.Command)
	}
	if len(def.Params) > 0 {
		fmt.Fprintf(&b, "Parameters: %s\n\n", codeList(def.Params))
	}

	rs, ok := actions.SelectRuleSet(def)
	if !ok {
		writeLegacy(&b, def)
		return b.String()
	}

	fmt.Fprintf(&b, "Mode: **%s**\n\n", rs.Mode)
	switch rs.Mode {
	case rules.ModeObject:
		writePatterns(&b, rs.Patterns)
	case rules.ModeArray:
		fmt.Fprintf(&b, "Blocks are separated by `%s`.\n\n", quoted(rs.EffectiveSeparator()))
		writePatterns(&b, rs.Patterns)
	case rules.ModeProperties:
		writeProperties(&b, rs)
	case rules.ModeTable:
		writeTable(&b, rs, formats)
	}

	writeReport(&b, rs.Validate(formats))
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeLegacy(b *strings.Builder, def *actions.Definition) {
	b.WriteString("Legacy action: its output is not parsed.\n\n")
	if def.SuccessExitCode != nil {
		fmt.Fprintf(b, "- Succeeds with exit code %d\n", *def.SuccessExitCode)
	}
	if def.ParseOutput != nil {
		fmt.Fprintf(b, "- Output was checked with `%s`\n", *def.ParseOutput)
	}
}

func writePatterns(b *strings.Builder, patterns map[string]rules.PatternRule) {
	if len(patterns) == 0 {
		b.WriteString("No fields are extracted.\n\n")
		return
	}

	b.WriteString("## Fields\n\n")
	b.WriteString("| Field | Regex | Group | Transform | Notes |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, name := range sortedKeys(patterns) {
		p := patterns[name]
		var notes []string
		if p.MultiMatch {
			notes = append(notes, "all matches")
		}
		if p.Optional {
			notes = append(notes, "optional")
		}
		group := strconv.Itoa(p.CaptureGroup())
		if p.MultiMatch {
			group = "-"
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			name, code(p.Regex), group, orDash(p.Transform), orDash(strings.Join(notes, ", ")))
	}
	b.WriteString("\n")

	for _, name := range sortedKeys(patterns) {
		p := patterns[name]
		if !p.MultiMatch || len(p.Object) == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s elements\n\n", name)
		b.WriteString("| Field | Group | Transform | Optional |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, field := range sortedKeys(p.Object) {
			rule := p.Object[field]
			fmt.Fprintf(b, "| %s | %d | %s | %s |\n", field, rule.Group, orDash(rule.Transform), yesNo(rule.Optional))
		}
		b.WriteString("\n")
	}
}

func writeProperties(b *strings.Builder, rs *rules.RuleSet) {
	fmt.Fprintf(b, "Properties are read with %s.\n\n", code(rs.EffectivePropertyPattern()))

	if len(rs.Mappings) > 0 {
		b.WriteString("## Fields\n\n")
		b.WriteString("| Field | Property | Transform |\n")
		b.WriteString("|---|---|---|\n")
		for _, name := range sortedKeys(rs.Mappings) {
			m := rs.Mappings[name]
			fmt.Fprintf(b, "| %s | %s | %s |\n", name, orDash(m.Key), orDash(m.Transform))
		}
		b.WriteString("\n")
	}

	for _, name := range sortedKeys(rs.ArrayPatterns) {
		ap := rs.ArrayPatterns[name]
		fmt.Fprintf(b, "## %s\n\n", name)
		fmt.Fprintf(b, "One element per property matching %s.\n\n", code(ap.KeyPattern))
		b.WriteString("| Field | Source | Transform | Optional |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, field := range sortedKeys(ap.Fields) {
			rule := ap.Fields[field]
			if rule.IsSimple() {
				fmt.Fprintf(b, "| %s | %s | - | no |\n", field, orDash(rule.Simple))
				continue
			}
			fmt.Fprintf(b, "| %s | %s | %s | %s |\n",
				field, code(rule.String()), orDash(rule.Complex.Transform), yesNo(rule.Complex.Optional))
		}
		b.WriteString("\n")
	}
}

func writeTable(b *strings.Builder, rs *rules.RuleSet, formats rules.FormatLookup) {
	fmt.Fprintf(b, "Table format: `%s`\n\n", rs.FormatName)

	if formats != nil {
		if format, ok := formats.Lookup(rs.FormatName); ok {
			delimiter := "whitespace"
			if format.Delimiter != "" {
				delimiter = code(quoted(format.Delimiter))
			}
			fmt.Fprintf(b, "- Columns: %s\n", codeList(format.Headers))
			fmt.Fprintf(b, "- Delimiter: %s\n", delimiter)
			fmt.Fprintf(b, "- Skipped lines: %d\n\n", format.SkipLines)
		}
	}

	if len(rs.Transformers) > 0 {
		b.WriteString("## Transformers\n\n")
		b.WriteString("| Column | Transform |\n")
		b.WriteString("|---|---|\n")
		for _, header := range sortedKeys(rs.Transformers) {
			fmt.Fprintf(b, "| %s | %s |\n", header, rs.Transformers[header])
		}
		b.WriteString("\n")
	}
}

func writeReport(b *strings.Builder, report *rules.Report) {
	if len(report.Errors) == 0 && len(report.Warnings) == 0 {
		return
	}
	b.WriteString("## Problems\n\n")
	for _, err := range report.Errors {
		fmt.Fprintf(b, "- error: %s\n", err)
	}
	for _, warning := range report.Warnings {
		fmt.Fprintf(b, "- warning: %s\n", warning)
	}
	b.WriteString("\n")
}

// code formats s as inline code, escaping the table cell separator
func code(s string) string {
	if s == "" {
		return "-"
	}
	return "`" + strings.ReplaceAll(s, "|", `\|`) + "`"
}

func codeList(items []string) string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = code(item)
	}
	return strings.Join(out, ", ")
}

// quoted shows escape sequences such as \n literally
func quoted(s string) string {
	q := strconv.Quote(s)
	return q[1 : len(q)-1]
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
