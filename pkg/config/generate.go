package config

import (
	"strings"
)

// tableFormatsPrefix marks the sections that stay live in a starter document
const tableFormatsPrefix = "table_formats."

// GenerateConfigContent returns a starter document: the embedded defaults,
// followed by example actions. Parser settings are commented out since they
// only restate the defaults. Table formats stay live so they can be edited in
// place and referenced by the example actions.
func GenerateConfigContent() string {
	return starterDefaults(DefaultContent()) + "\n" + StarterContent()
}

// starterDefaults rewrites the defaults document section by section. Sections
// other than table formats, headers included, become comments.
func starterDefaults(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	live := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if section, ok := sectionName(trimmed); ok {
			live = strings.HasPrefix(section, tableFormatsPrefix)
		}

		if live || trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}

// sectionName returns the table name of a [header] line
func sectionName(line string) (string, bool) {
	if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") || strings.HasPrefix(line, "[[") {
		return "", false
	}
	return strings.TrimSpace(line[1 : len(line)-1]), true
}
