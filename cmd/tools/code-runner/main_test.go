package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/michaelbrown/codeproxy/internal/compile"
	"github.com/michaelbrown/codeproxy/internal/judge0"
	"github.com/michaelbrown/codeproxy/internal/languages"
)

func newRunner(apiKey string, submit func(judge0.Submission) (*judge0.Result, error)) *runner {
	client := &judge0.MockClient{
		SubmitFn: func(_ context.Context, sub judge0.Submission) (*judge0.Result, error) {
			return submit(sub)
		},
	}
	return &runner{catalog: languages.Default(), compiler: compile.NewService(client, apiKey), errLog: io.Discard}
}

func call(t *testing.T, r *runner, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Name = "code_run"
	req.Params.Arguments = args
	res, err := r.handleCodeRun(context.Background(), req)
	if err != nil {
		t.Fatalf("handleCodeRun: %v", err)
	}
	return res
}

func text(res *mcp.CallToolResult) string {
	if len(res.Content) == 0 {
		return ""
	}
	tc, _ := res.Content[0].(mcp.TextContent)
	return tc.Text
}

func TestCodeRunResolvesAlias(t *testing.T) {
	r := newRunner("key", func(sub judge0.Submission) (*judge0.Result, error) {
		if sub.LanguageID != 71 {
			t.Errorf("language_id = %d, want 71", sub.LanguageID)
		}
		return &judge0.Result{Stdout: "hi\n", Status: judge0.Status{ID: 3, Description: "Accepted"}}, nil
	})

	res := call(t, r, map[string]any{"language": "Python", "code": "print('hi')"})
	if res.IsError {
		t.Errorf("unexpected error result: %q", text(res))
	}
	if !strings.HasPrefix(text(res), "hi\n") {
		t.Errorf("text = %q", text(res))
	}
}

func TestCodeRunCompileFailureIsError(t *testing.T) {
	r := newRunner("key", func(judge0.Submission) (*judge0.Result, error) {
		return &judge0.Result{CompileOutput: "main.c:1: error\n", Status: judge0.Status{ID: 6, Description: "Compilation Error"}}, nil
	})

	res := call(t, r, map[string]any{"language": "c", "code": "int main("})
	if !res.IsError {
		t.Error("expected IsError for compilation error")
	}
}

func TestCodeRunMissingArgs(t *testing.T) {
	r := newRunner("key", nil)

	res := call(t, r, map[string]any{"language": "python"})
	if !res.IsError || !strings.Contains(text(res), "required") {
		t.Errorf("result = %+v", res)
	}
}

func TestCodeRunUnknownLanguage(t *testing.T) {
	r := newRunner("key", nil)

	res := call(t, r, map[string]any{"language": "cobol", "code": "x"})
	if !res.IsError || !strings.Contains(text(res), "unknown language") {
		t.Errorf("text = %q", text(res))
	}
}

func TestCodeRunFailures(t *testing.T) {
	res := call(t, newRunner("", nil), map[string]any{"language": "py", "code": "x"})
	if text(res) != "Server misconfigured: RAPIDAPI_KEY missing" {
		t.Errorf("misconfigured text = %q", text(res))
	}

	r := newRunner("key", func(judge0.Submission) (*judge0.Result, error) {
		return nil, errors.New("connection reset")
	})
	var errLog bytes.Buffer
	r.errLog = &errLog
	res = call(t, r, map[string]any{"language": "py", "code": "x"})
	if !res.IsError || text(res) != "Server error" {
		t.Errorf("transport text = %q", text(res))
	}
	if !strings.Contains(errLog.String(), "connection reset") {
		t.Errorf("error log = %q, want the transport cause", errLog.String())
	}
}
