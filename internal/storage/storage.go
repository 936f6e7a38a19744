package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no submission matches an id.
var ErrNotFound = errors.New("submission not found")

// Outcome records how a compile request ended.
type Outcome string

const (
	OutcomeOK             Outcome = "ok"
	OutcomeMisconfigured  Outcome = "misconfigured"
	OutcomeUpstreamError  Outcome = "upstream_error"
	OutcomeTransportError Outcome = "transport_error"
)

// Submission is one recorded compile request and the output returned for it.
type Submission struct {
	ID         string    `json:"id"`
	LanguageID int       `json:"language_id"`
	SourceCode string    `json:"source_code"`
	Stdin      string    `json:"stdin"`
	Output     string    `json:"output"`
	Outcome    Outcome   `json:"outcome"`
	Status     string    `json:"status"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListOptions controls filtering and pagination for ListSubmissions.
type ListOptions struct {
	Outcome Outcome
	Limit   int
	Offset  int
}

// Store is the persistence interface for submission history.
type Store interface {
	// RecordSubmission inserts a submission. The ID field must be set by the caller.
	RecordSubmission(ctx context.Context, s *Submission) error

	// GetSubmission returns a submission by ID or unique ID prefix.
	GetSubmission(ctx context.Context, id string) (*Submission, error)

	// ListSubmissions returns submissions ordered by created_at descending.
	ListSubmissions(ctx context.Context, opts ListOptions) ([]Submission, error)

	// DeleteSubmission removes a submission.
	DeleteSubmission(ctx context.Context, id string) error

	// Close releases resources.
	Close() error
}
