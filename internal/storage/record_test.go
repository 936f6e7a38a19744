package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/michaelbrown/codeproxy/internal/compile"
	"github.com/michaelbrown/codeproxy/internal/judge0"
)

func TestNewSubmissionOK(t *testing.T) {
	req := compile.Request{LanguageID: 71, SourceCode: "print('hi')", Stdin: "x"}
	res := &compile.Result{
		Output:   "hi\n",
		Status:   judge0.Status{ID: 3, Description: "Accepted"},
		Duration: 1500 * time.Millisecond,
	}

	sub := NewSubmission("abc", req, res, nil)
	if sub.ID != "abc" || sub.LanguageID != 71 || sub.SourceCode != "print('hi')" || sub.Stdin != "x" {
		t.Errorf("request fields not copied: %+v", sub)
	}
	if sub.Outcome != OutcomeOK {
		t.Errorf("Outcome = %q, want ok", sub.Outcome)
	}
	if sub.Output != "hi\n" || sub.Status != "Accepted" || sub.DurationMS != 1500 {
		t.Errorf("result fields = %+v", sub)
	}
}

func TestNewSubmissionFailures(t *testing.T) {
	tests := []struct {
		err     error
		outcome Outcome
		output  string
	}{
		{&compile.Error{Kind: compile.KindMisconfigured}, OutcomeMisconfigured, "Server misconfigured: RAPIDAPI_KEY missing"},
		{&compile.Error{Kind: compile.KindUpstream, StatusCode: 429, Body: "quota"}, OutcomeUpstreamError, "Judge0 error: quota"},
		{&compile.Error{Kind: compile.KindTransport, Err: errors.New("dial")}, OutcomeTransportError, "Server error"},
	}

	for _, tt := range tests {
		sub := NewSubmission("id", compile.Request{LanguageID: 50}, nil, tt.err)
		if sub.Outcome != tt.outcome {
			t.Errorf("Outcome = %q, want %q", sub.Outcome, tt.outcome)
		}
		if sub.Output != tt.output {
			t.Errorf("Output = %q, want %q", sub.Output, tt.output)
		}
	}
}
