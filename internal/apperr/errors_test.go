package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIs_MatchesByCode(t *testing.T) {
	err := New(CodeInvalidIndex, "index 0 outside 1..3")
	if !errors.Is(err, ErrInvalidIndex) {
		t.Error("errors.Is should match on code")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("different code must not match")
	}

	wrapped := fmt.Errorf("sell: %w", err)
	if !errors.Is(wrapped, ErrInvalidIndex) {
		t.Error("errors.Is should see through fmt wrapping")
	}
	if got := CodeOf(wrapped); got != CodeInvalidIndex {
		t.Errorf("CodeOf = %q, want %q", got, CodeInvalidIndex)
	}
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("bad price")
	err := Wrap(CodeCatalogLoad, "catalog line 3", cause)
	if !errors.Is(err, cause) {
		t.Error("cause should be reachable")
	}
	if err.Error() != "catalog line 3: bad price" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCodeOf_Plain(t *testing.T) {
	if got := CodeOf(errors.New("x")); got != "" {
		t.Errorf("CodeOf = %q, want empty", got)
	}
	if ErrSeasonComplete.Error() != string(CodeSeasonComplete) {
		t.Errorf("sentinel Error() = %q", ErrSeasonComplete.Error())
	}
}
