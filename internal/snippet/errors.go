package snippet

import "errors"

// Failure kinds surfaced by the service. The HTTP layer maps each kind to a
// fixed status code and generic body; underlying error detail stays in the
// server logs and never reaches a client.
var (
	// ErrTextRequired means the submitted text was missing or blank after
	// trimming surrounding whitespace.
	ErrTextRequired = errors.New("text required")

	// ErrThrottled means the AI service reported its rate/quota limit (429).
	// Retryable by the caller after backoff.
	ErrThrottled = errors.New("ai service throttled")

	// ErrSummarize covers every other failure while creating a snippet:
	// upstream transport or auth errors, and persistence failures after a
	// successful summarization.
	ErrSummarize = errors.New("failed to generate summary")

	// ErrNotFound folds "malformed id" and "well-formed id with no match"
	// into one outcome.
	ErrNotFound = errors.New("snippet not found")

	// ErrStore means the record store was unreachable while listing.
	ErrStore = errors.New("store unavailable")
)
