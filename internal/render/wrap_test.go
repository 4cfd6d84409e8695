package render

import (
	"reflect"
	"testing"
)

// runeWidth measures one unit per rune, making expected wraps easy to
// state exactly.
func runeWidth(s string) float64 {
	return float64(len([]rune(s)))
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		expected []string
	}{
		{
			name:     "fits on one line",
			text:     "dentist appointment",
			maxWidth: 30,
			expected: []string{"dentist appointment"},
		},
		{
			name:     "greedy wrap at word boundaries",
			text:     "pick up the cake",
			maxWidth: 11,
			expected: []string{"pick up the", "cake"},
		},
		{
			name:     "single overlong word is hard broken",
			text:     "honorificabilitudinitatibus",
			maxWidth: 10,
			expected: []string{"honorifica", "bilitudini", "tatibus"},
		},
		{
			name:     "overlong word mid-sentence",
			text:     "see honorificabilitudinitatibus now",
			maxWidth: 10,
			expected: []string{"see", "honorifica", "bilitudini", "tatibus", "now"},
		},
		{
			name:     "empty text",
			text:     "",
			maxWidth: 10,
			expected: nil,
		},
		{
			name:     "whitespace only",
			text:     "   ",
			maxWidth: 10,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.text, tt.maxWidth, runeWidth)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestWrapTextNeverExceedsBudget(t *testing.T) {
	lines := WrapText("a bb ccc dddd eeeee ffffff ggggggggggggggggg", 6, runeWidth)
	for _, line := range lines {
		if runeWidth(line) > 6 {
			t.Errorf("line %q exceeds the width budget", line)
		}
	}
}
