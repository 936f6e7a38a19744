// Package compile forwards code-execution requests to the remote service and
// flattens the result into a single output string.
package compile

import (
	"context"
	"errors"
	"time"

	"github.com/michaelbrown/codeproxy/internal/judge0"
)

// Request is an incoming execution request.
type Request struct {
	LanguageID int    `json:"language_id"`
	SourceCode string `json:"source_code"`
	Stdin      string `json:"stdin"`
}

// Result is a finished execution.
type Result struct {
	// Output is compile output, then stderr, then stdout, with no separators.
	Output   string
	Status   judge0.Status
	Token    string
	Time     string
	Memory   int
	Duration time.Duration
}

// Service runs compile requests against a judge0.Client.
type Service struct {
	client judge0.Client
	apiKey string
}

// NewService creates a Service. apiKey is only checked for presence; the
// client is expected to carry the same key on the wire.
func NewService(client judge0.Client, apiKey string) *Service {
	return &Service{client: client, apiKey: apiKey}
}

// Configured reports whether an API key is present.
func (s *Service) Configured() bool {
	return s.apiKey != ""
}

// Compile performs one synchronous submission. Failures are always *Error.
func (s *Service) Compile(ctx context.Context, req Request) (*Result, error) {
	if !s.Configured() {
		return nil, &Error{Kind: KindMisconfigured}
	}

	start := time.Now()
	res, err := s.client.Submit(ctx, judge0.Submission{
		LanguageID: req.LanguageID,
		SourceCode: judge0.Encode(req.SourceCode),
		Stdin:      judge0.Encode(req.Stdin),
	})
	if err != nil {
		var apiErr *judge0.APIError
		if errors.As(err, &apiErr) {
			return nil, &Error{
				Kind:       KindUpstream,
				StatusCode: apiErr.StatusCode,
				Body:       apiErr.Body,
				Err:        err,
			}
		}
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	if res == nil {
		return nil, &Error{Kind: KindTransport, Err: errors.New("empty submission result")}
	}

	return &Result{
		Output:   Flatten(res),
		Status:   res.Status,
		Token:    res.Token,
		Time:     res.Time,
		Memory:   res.Memory,
		Duration: time.Since(start),
	}, nil
}

// Flatten concatenates compile output, stderr and stdout in that order.
func Flatten(res *judge0.Result) string {
	return res.CompileOutput + res.Stderr + res.Stdout
}
