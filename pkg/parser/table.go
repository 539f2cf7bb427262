package parser

import (
	"strings"

	"github.com/arthur-debert/outparse/pkg/errors"
	"github.com/arthur-debert/outparse/pkg/rules"
)

// parseTable maps the columns of each line to the headers of the named format.
// Lines with a different column count are dropped.
func (p *Parser) parseTable(text string, rs *rules.RuleSet) (Array, error) {
	if rs.FormatName == "" {
		return nil, errors.New(errors.ErrMissingFormatName, "format name required for table parsing")
	}

	format, ok := p.formats.Lookup(rs.FormatName)
	if !ok {
		return nil, errors.Newf(errors.ErrTableFormatNotFound, "table format '%s' not found", rs.FormatName).
			WithDetail("format", rs.FormatName)
	}

	lines := strings.Split(text, "\n")
	if format.SkipLines >= len(lines) {
		return Array{}, nil
	}

	rows := Array{}
	dropped := 0
	for _, line := range lines[format.SkipLines:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		columns := splitColumns(line, format.Delimiter)
		if len(columns) != len(format.Headers) {
			dropped++
			continue
		}

		row := Object{}
		for i, header := range format.Headers {
			kind, hasTransform := rs.Transformers[header]
			if !hasTransform {
				row[header] = columns[i]
				continue
			}
			value, err := convert(columns[i], kind, header)
			if err != nil {
				return nil, err
			}
			row[header] = value
		}
		rows = append(rows, row)
	}

	if dropped > 0 {
		p.logger.Debug().Int("dropped", dropped).Str("format", rs.FormatName).Msg("dropped rows with mismatched column count")
	}
	return rows, nil
}

// splitColumns splits on the literal delimiter, or on runs of whitespace when
// the delimiter is empty. Columns are trimmed.
func splitColumns(line, delimiter string) []string {
	if delimiter == "" {
		return strings.Fields(line)
	}
	columns := strings.Split(line, delimiter)
	for i, c := range columns {
		columns[i] = strings.TrimSpace(c)
	}
	return columns
}
