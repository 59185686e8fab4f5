package summarizer

import "context"

// Summarizer produces a short natural-language summary of arbitrary text.
// Callers guarantee text is non-empty after trimming; implementations do
// not re-validate.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
