package storage

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExportMarkdown renders a submission as a markdown document.
func ExportMarkdown(s *Submission, languageName string) string {
	var b strings.Builder

	lang := languageName
	if lang == "" {
		lang = fmt.Sprintf("language %d", s.LanguageID)
	}

	b.WriteString(fmt.Sprintf("# Submission %s\n\n", s.ID))
	b.WriteString(fmt.Sprintf("- **Language:** %s (%d)\n", lang, s.LanguageID))
	b.WriteString(fmt.Sprintf("- **Outcome:** %s\n", s.Outcome))
	if s.Status != "" {
		b.WriteString(fmt.Sprintf("- **Status:** %s\n", s.Status))
	}
	b.WriteString(fmt.Sprintf("- **Duration:** %dms\n", s.DurationMS))
	b.WriteString(fmt.Sprintf("- **Created:** %s\n", s.CreatedAt.Format("2006-01-02 15:04:05")))
	b.WriteString("\n---\n\n")

	b.WriteString(fmt.Sprintf("## Source\n\n```\n%s\n```\n\n", strings.TrimRight(s.SourceCode, "\n")))
	if s.Stdin != "" {
		b.WriteString(fmt.Sprintf("## Stdin\n\n```\n%s\n```\n\n", strings.TrimRight(s.Stdin, "\n")))
	}
	b.WriteString(fmt.Sprintf("## Output\n\n```\n%s\n```\n", strings.TrimRight(s.Output, "\n")))

	return b.String()
}

// ExportJSON renders a submission as formatted JSON.
func ExportJSON(s *Submission) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
