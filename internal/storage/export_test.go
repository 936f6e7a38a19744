package storage

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestExportMarkdown(t *testing.T) {
	s := &Submission{
		ID:         "abc",
		LanguageID: 71,
		SourceCode: "print(input())\n",
		Stdin:      "hello\n",
		Output:     "hello\n",
		Outcome:    OutcomeOK,
		Status:     "Accepted",
		DurationMS: 42,
		CreatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	md := ExportMarkdown(s, "Python (3.8.1)")
	for _, want := range []string{
		"# Submission abc",
		"- **Language:** Python (3.8.1) (71)",
		"- **Status:** Accepted",
		"- **Created:** 2026-01-02 03:04:05",
		"## Source\n\n```\nprint(input())\n```",
		"## Stdin",
		"## Output\n\n```\nhello\n```",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestExportMarkdownWithoutStdin(t *testing.T) {
	md := ExportMarkdown(&Submission{ID: "x", LanguageID: 999, Outcome: OutcomeTransportError}, "")
	if strings.Contains(md, "## Stdin") {
		t.Error("empty stdin should be omitted")
	}
	if !strings.Contains(md, "language 999 (999)") {
		t.Errorf("unknown language should fall back to id:\n%s", md)
	}
}

func TestExportJSON(t *testing.T) {
	data, err := ExportJSON(&Submission{ID: "x", Outcome: OutcomeUpstreamError, Output: "Judge0 error: nope"})
	if err != nil {
		t.Fatal(err)
	}
	var got Submission
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Outcome != OutcomeUpstreamError || got.Output != "Judge0 error: nope" {
		t.Errorf("got %+v", got)
	}
}
