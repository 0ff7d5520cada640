package domain_test

import (
	"testing"

	"github.com/msomdec/imageshare/internal/domain"
)

func TestParseSort(t *testing.T) {
	tests := map[string]domain.PostSort{
		"oldest": domain.SortOldest,
		"latest": domain.SortLatest,
		"":       domain.SortLatest,
		"Oldest": domain.SortLatest,
		"random": domain.SortLatest,
	}
	for in, want := range tests {
		if got := domain.ParseSort(in); got != want {
			t.Fatalf("ParseSort(%q) = %q, want %q", in, got, want)
		}
	}
}
