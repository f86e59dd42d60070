package render

import (
	"strings"

	"github.com/naka-gawa/project-pulse/internal/domain"
)

// Markdown lays out a report as markdown, each table inside a fenced block so
// the box-drawing columns stay aligned.
func Markdown(r *domain.Report) string {
	var b strings.Builder
	b.WriteString("# " + r.Title + "\n\n")
	for _, section := range r.Sections {
		b.WriteString("## " + section.Title + "\n\n")
		for _, t := range section.Tables {
			if t.Title != "" {
				b.WriteString("### " + t.Title + "\n\n")
			}
			b.WriteString("```\n")
			b.WriteString(Table(t.Headers, t.Rows))
			b.WriteString("\n```\n\n")
		}
	}
	return b.String()
}
