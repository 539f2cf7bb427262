// Package parser turns the text printed by a command into structured values,
// driven by a rules.RuleSet.
//
// Four modes are supported:
//
//   - object: every named pattern extracts one field from the text
//   - array: the text is split into blocks and each block is parsed as an object
//   - properties: key="value" lines are gathered first, then correlated into
//     arrays and mapped into fields
//   - table: lines are split into columns named by a tableformat.Catalog entry
//
// Results use the generic JSON data model: Object, Array, string, float64,
// bool and nil. A Parser never mutates its inputs and is safe for concurrent
// use.
//
// Legacy action definitions, those without a rule set, are not parsed. Parse
// returns a diagnostic object explaining why instead of failing.
//
// Matching uses Go's RE2 engine, which runs in time linear to the input, but
// very large inputs combined with broad patterns can still be slow. Callers
// own their patterns.
package parser
