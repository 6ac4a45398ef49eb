package fuzzy

import "testing"

// TestClosest tests suggestion selection and the distance bound
func TestClosest(t *testing.T) {
	names := []string{"verbose", "version", "output", "help"}

	cases := []struct {
		input string
		want  string
	}{
		{"verbos", "verbose"},
		{"verzion", "version"},
		{"outpt", "output"},
		{"xyzzy", ""},   // nothing within distance
		{"v", ""},       // too short to suggest for
		{"verbose", ""}, // exact matches are not suggestions
	}
	for _, c := range cases {
		if got := Closest(c.input, names, 2); got != c.want {
			t.Errorf("Closest(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

// TestClosestTieBreak tests deterministic lexicographic ties
func TestClosestTieBreak(t *testing.T) {
	got := Closest("vex", []string{"vey", "veb"}, 2)
	if got != "veb" {
		t.Errorf("Expected lexicographically first tie winner, got %q", got)
	}
}

// TestDistance tests the bail-out and exact values
func TestDistance(t *testing.T) {
	cases := []struct {
		a, b string
		max  int
		want int
	}{
		{"kitten", "sitting", 5, 3},
		{"abc", "abc", 2, 0},
		{"abc", "abcd", 2, 1},
		{"", "abc", 5, 3},
		{"short", "muchlongername", 2, 3}, // length gap alone exceeds max
	}
	for _, c := range cases {
		if got := distance(c.a, c.b, c.max); got != c.want {
			t.Errorf("distance(%q, %q, %d) = %d, want %d", c.a, c.b, c.max, got, c.want)
		}
	}
}
