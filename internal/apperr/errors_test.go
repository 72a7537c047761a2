package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	if got := KindOf(NotFound("order %s not found", "o1")); got != KindNotFound {
		t.Fatalf("KindOf = %s, want not_found", got)
	}
	if got := KindOf(errors.New("plain")); got != KindUnknown {
		t.Fatalf("KindOf(plain) = %s, want unknown", got)
	}

	// Classification survives wrapping.
	wrapped := fmt.Errorf("outer: %w", Conflict("busy"))
	if !IsKind(wrapped, KindConflict) {
		t.Fatal("expected wrapped conflict to be classified")
	}
}

func TestStorageKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage(cause, "failed to read inventory")

	if !errors.Is(err, cause) {
		t.Fatal("expected cause to remain in the chain")
	}
	if err.Error() != "failed to read inventory: connection refused" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}
