package compile

import (
	"errors"
	"fmt"
)

// Kind tags why a compile request failed.
type Kind string

const (
	// KindMisconfigured means the server has no API key for the remote service.
	KindMisconfigured Kind = "misconfigured"
	// KindUpstream means the remote service answered with a non-2xx status.
	KindUpstream Kind = "upstream_error"
	// KindTransport covers everything else: network failures, malformed
	// responses, undecodable fields.
	KindTransport Kind = "transport_error"
)

// ServerErrorOutput is shown for every unexpected failure. Transport details
// never leave the server.
const ServerErrorOutput = "Server error"

const (
	misconfiguredOutput = "Server misconfigured: RAPIDAPI_KEY missing"
	upstreamPrefix      = "Judge0 error: "
)

// Error is the failure returned by Service.Compile.
type Error struct {
	Kind       Kind
	StatusCode int    // upstream HTTP status, KindUpstream only
	Body       string // raw upstream body, KindUpstream only
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMisconfigured:
		return "compile: api key not configured"
	case KindUpstream:
		return fmt.Sprintf("compile: upstream status %d: %s", e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("compile: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Output is the text shown to the caller in place of program output.
func (e *Error) Output() string {
	switch e.Kind {
	case KindMisconfigured:
		return misconfiguredOutput
	case KindUpstream:
		return upstreamPrefix + e.Body
	default:
		return ServerErrorOutput
	}
}

// KindOf reports the Kind of err, or "" when err is not a compile error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// OutputOf returns the caller-facing text for any error. Errors that did not
// come from Compile are treated as transport failures.
func OutputOf(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Output()
	}
	return ServerErrorOutput
}
