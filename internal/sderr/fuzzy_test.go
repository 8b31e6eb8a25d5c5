package sderr

import "testing"

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"types", "types", 0},
		{"types", "", 5},
		{"kitten", "sitting", 3},
		{"typez", "types", 1},
		{"ab", "ba", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := levenshtein(tt.a, tt.b); got != tt.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFindClosestMatch(t *testing.T) {
	tables := []string{"types", "groups", "categories", "blueprints", "map_regions"}

	tests := []struct {
		input   string
		wantOk  bool
		wantVal string
	}{
		{"typez", true, "types"},
		{"group", true, "groups"},
		{"blueprint", true, "blueprints"},
		{"map_region", true, "map_regions"},
		{"xyzzyxxyzzy", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := FindClosestMatch(tt.input, tables)
			if ok != tt.wantOk || got != tt.wantVal {
				t.Errorf("FindClosestMatch(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.wantVal, tt.wantOk)
			}
		})
	}
}

func TestSuggestSimilar(t *testing.T) {
	if got := SuggestSimilar("typez", []string{"types"}); got != "did you mean 'types'?" {
		t.Errorf("SuggestSimilar() = %q", got)
	}
	if got := SuggestSimilar("zzzzzzzz", []string{"types"}); got != "" {
		t.Errorf("SuggestSimilar() = %q, want empty", got)
	}
}
