package app

import (
	"strings"
	"testing"
	"time"
)

func TestNewLocalOrderID(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	first := newLocalOrderID(now)
	second := newLocalOrderID(now)

	prefix := "WM-1748772000000-"
	if !strings.HasPrefix(first, prefix) {
		t.Fatalf("expected prefix %q, got %q", prefix, first)
	}
	if len(first) != len(prefix)+8 {
		t.Fatalf("unexpected id length: %q", first)
	}
	// Two drafts in the same millisecond must not share an id.
	if first == second {
		t.Fatalf("expected distinct ids, got %q twice", first)
	}
}
