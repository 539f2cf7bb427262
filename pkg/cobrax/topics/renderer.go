package topics

import (
	"github.com/arthur-debert/outparse/pkg/output"
)

// Renderer formats topic content for display
type Renderer interface {
	// Render takes raw content and the topic file extension
	Render(content string, ext string) string
}

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

// Render returns the content unchanged
func (PlainRenderer) Render(content string, ext string) string {
	return content
}

// MarkdownRenderer renders .md topics with glamour for the given output
// format. Other topics are returned unchanged.
type MarkdownRenderer struct {
	Format output.Format
	Width  int
}

// Render renders markdown topics
func (r MarkdownRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}
	return output.RenderMarkdown(content, r.Format, r.Width)
}
