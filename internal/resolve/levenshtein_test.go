package resolve

import "testing"

func TestDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"anchor", "", 6},
		{"", "tide", 4},
		{"anchor", "anchor", 0},
		{"kitten", "sitting", 3},
		{"tide", "tides", 1},
		{"héliodrome", "heliodrome", 1},
	}
	for _, tc := range cases {
		if got := Distance(tc.a, tc.b); got != tc.want {
			t.Fatalf("Distance(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestNormalizedDistance(t *testing.T) {
	if got := NormalizedDistance("", ""); got != 1 {
		t.Fatalf("two empty strings should normalize to 1, got %v", got)
	}
	if got := NormalizedDistance("anchor", "anchor"); got != 0 {
		t.Fatalf("identical strings should normalize to 0, got %v", got)
	}
	if got := NormalizedDistance("abcd", "abce"); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
	if got := NormalizedDistance("a", "zzzz"); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
}
