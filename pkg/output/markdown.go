package output

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders markdown for display. Terminals get glamour's
// auto-detected style, plain text gets the escape-free notty style, and
// structured formats get the markdown unchanged.
func RenderMarkdown(content string, format Format, width int) string {
	var options []glamour.TermRendererOption
	switch format {
	case FormatTerminal:
		options = append(options, glamour.WithAutoStyle())
	case FormatText, FormatAuto:
		options = append(options, glamour.WithStylePath("notty"))
	default:
		return content
	}

	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		// Fallback to plain text on error
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
