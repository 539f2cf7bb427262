package output

import (
	"strings"
)

// textBlock renders value as indented key: value lines, with "- " marking
// list items
func textBlock(value interface{}) string {
	return strings.Join(textLines(value), "\n")
}

func textLines(value interface{}) []string {
	if isLeaf(value) {
		return []string{formatLeaf(value)}
	}

	var lines []string
	switch v := value.(type) {
	case map[string]interface{}:
		for _, key := range sortedKeys(v) {
			item := v[key]
			if isLeaf(item) {
				lines = append(lines, key+": "+formatLeaf(item))
				continue
			}
			lines = append(lines, key+":")
			lines = append(lines, indent(textLines(item), "  ")...)
		}
	case []interface{}:
		for _, item := range v {
			sub := textLines(item)
			lines = append(lines, "- "+sub[0])
			lines = append(lines, indent(sub[1:], "  ")...)
		}
	}
	return lines
}

func indent(lines []string, prefix string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = prefix + line
	}
	return out
}
