package match

import (
	"math"
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"ab", "ba", 2},
		{"résumé", "resume", 2},
	}

	for _, tt := range tests {
		got := Levenshtein(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}

		// Distance is symmetric.
		if rev := Levenshtein(tt.b, tt.a); rev != got {
			t.Errorf("Levenshtein(%q, %q) = %d, not symmetric with %d", tt.b, tt.a, rev, got)
		}
	}
}

func TestLevenshteinNormalized(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1.0},
		{"abc", "abc", 1.0},
		{"abc", "abd", 1.0 - 1.0/3.0},
		{"abc", "xyz", 0.0},
		{"", "abc", 0.0},
	}

	for _, tt := range tests {
		got := LevenshteinNormalized(tt.a, tt.b)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("LevenshteinNormalized(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNormalizedLevenshteinScore(t *testing.T) {
	// Normalization makes these identical before the distance is computed.
	if got := NormalizedLevenshteinScore("OrderID", "order_id"); got != 1.0 {
		t.Errorf("NormalizedLevenshteinScore(OrderID, order_id) = %f, want 1.0", got)
	}

	if got := NormalizedLevenshteinScore("customerName", "supplier_name"); got >= 1.0 {
		t.Errorf("expected imperfect score, got %f", got)
	}
}
