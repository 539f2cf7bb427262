// Package rules defines the declarative schema that drives output parsing.
//
// A RuleSet describes how to turn the text printed by an external tool into a
// structured value. Its Mode selects one of four extraction strategies, and
// only the rule group belonging to that mode is consulted:
//
//   - object: Patterns, one regular expression per output field
//   - array: Patterns applied to every Separator-delimited block
//   - properties: PropertyPattern gathers key/value lines, ArrayPatterns and
//     Mappings build the result from the gathered pairs
//   - table: FormatName selects a TableFormat, Transformers coerce columns
//
// # Configuration
//
// Rule sets are usually loaded from a definition document:
//
//	[actions.get_vm.rule_set]
//	mode = "object"
//
//	[actions.get_vm.rule_set.patterns.memory_mb]
//	regex = 'Memory size:\s+(\d+)MB'
//	transform = "number"
//
//	[actions.get_vm.rule_set.patterns.networks]
//	regex = 'NIC (\d+):\s+(.+)'
//	multi_match = true
//	object = { index = { group = 1, transform = "number" }, type = { group = 2 } }
//
// Field rules inside array patterns are either a bare string ("value") or a
// table with key, group, transform and optional entries.
//
// Rule sets are plain data. Once loaded they are never mutated, so a single
// RuleSet may be shared by concurrent parsers.
package rules
