package mongo

import (
	"context"
	"errors"
	"testing"
)

func TestFindByIDRejectsMalformedIDs(t *testing.T) {
	// Malformed ids must be rejected before any server round-trip, so a
	// store with no live collection is enough here.
	s := &Store{}

	invalidIDs := []string{
		"",
		"invalid-id",
		"123",
		"null",
		"undefined",
		"507f1f77bcf86cd79943901",   // 23 chars
		"507f1f77bcf86cd7994390111", // 25 chars
		"507f1f77bcf86cd79943901z",  // bad charset
	}

	for _, id := range invalidIDs {
		_, err := s.FindByID(context.Background(), id)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("FindByID(%q) error = %v, want ErrNotFound", id, err)
		}
	}
}
