package numbering

import (
	"context"
	"fmt"
)

const (
	PrefixOrder = "ORD"
	PrefixQuote = "QUO"
)

// Allocator hands out unique human-readable document numbers, e.g.
// ORD-2025-00001. Allocation must be race-free under concurrent document
// creation; the postgres implementation bumps an atomic sequence row inside
// the caller's transaction.
type Allocator interface {
	Next(ctx context.Context, prefix string) (string, error)
}

// Format renders a document number from its parts.
func Format(prefix string, year int, sequence int64) string {
	return fmt.Sprintf("%s-%d-%05d", prefix, year, sequence)
}
