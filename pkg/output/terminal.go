package output

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/pterm/pterm"
)

// terminal renders arrays of objects as tables and objects as styled
// key: value lines
func (r *Renderer) terminal(value interface{}) string {
	if rows, ok := objectRows(value); ok {
		return r.table(rows)
	}

	obj, ok := value.(map[string]interface{})
	if !ok || len(obj) == 0 {
		return r.styledLeafOrText(value)
	}

	keyStyle := r.styles.Get("Key")
	var b strings.Builder
	for i, key := range sortedKeys(obj) {
		if i > 0 {
			b.WriteString("\n")
		}
		item := obj[key]
		if isLeaf(item) {
			b.WriteString(keyStyle.Render(key) + ": " + r.styledLeafOrText(item))
			continue
		}
		b.WriteString(keyStyle.Render(key) + ":\n")
		b.WriteString(strings.Join(indent(strings.Split(r.terminal(item), "\n"), "  "), "\n"))
	}
	return b.String()
}

func (r *Renderer) styledLeafOrText(value interface{}) string {
	if !isLeaf(value) {
		return textBlock(value)
	}
	if value == nil {
		return r.styles.Get("Null").Render("null")
	}
	return r.styles.Get("Value").Render(formatLeaf(value))
}

// table renders rows with one column per key found in any row
func (r *Renderer) table(rows []map[string]interface{}) string {
	headerSet := make(map[string]bool)
	for _, row := range rows {
		for key := range row {
			headerSet[key] = true
		}
	}
	headers := make([]string, 0, len(headerSet))
	for key := range headerSet {
		headers = append(headers, key)
	}
	sort.Strings(headers)

	data := pterm.TableData{headers}
	for _, row := range rows {
		cells := make([]string, len(headers))
		for i, header := range headers {
			value, present := row[header]
			if !present {
				continue
			}
			cells[i] = cell(value)
		}
		data = append(data, cells)
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		r.logger.Debug().Err(err).Msg("table rendering failed, using text")
		return textBlock(toInterfaces(rows))
	}
	return strings.TrimRight(out, "\n")
}

// cell renders nested values as compact JSON so each row stays on one line
func cell(value interface{}) string {
	if isLeaf(value) {
		return formatLeaf(value)
	}
	out, err := json.Marshal(value)
	if err != nil {
		return formatScalar(value)
	}
	return string(out)
}

// objectRows returns the elements of a non-empty array whose elements are
// all objects
func objectRows(value interface{}) ([]map[string]interface{}, bool) {
	items, ok := value.([]interface{})
	if !ok || len(items) == 0 {
		return nil, false
	}
	rows := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		row, ok := item.(map[string]interface{})
		if !ok {
			return nil, false
		}
		rows = append(rows, row)
	}
	return rows, true
}

func toInterfaces(rows []map[string]interface{}) []interface{} {
	out := make([]interface{}, len(rows))
	for i, row := range rows {
		out[i] = row
	}
	return out
}
