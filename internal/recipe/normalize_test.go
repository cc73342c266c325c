package recipe

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple lowercase",
			input: "Pancakes",
			want:  "pancakes",
		},
		{
			name:  "trim whitespace",
			input: "  pancakes  ",
			want:  "pancakes",
		},
		{
			name:  "collapse internal whitespace",
			input: "banana    bread",
			want:  "banana bread",
		},
		{
			name:  "mixed case with extra spaces",
			input: "  Banana   BREAD  ",
			want:  "banana bread",
		},
		{
			name:  "tabs and newlines",
			input: "banana\t\n  bread",
			want:  "banana bread",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n   ",
			want:  "",
		},
		{
			name:  "unicode characters",
			input: "  CRÈME   BRÛLÉE  ",
			want:  "crème brûlée",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
