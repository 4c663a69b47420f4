package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckAnswer(t *testing.T) {
	tests := []struct {
		candidate string
		expected  string
		want      bool
	}{
		{" Paris ", "paris", true},
		{"4", "4", true},
		{"3X^2", "3x^2", true},
		{"4", " 4 ", true},
		{"4.0", "4", false},
		{"0.5", "1/2", false},
		{"", "4", false},
		{"x = 3", "3", false},
	}
	for _, tc := range tests {
		got := CheckAnswer(tc.candidate, tc.expected)
		assert.Equal(t, tc.want, got, "CheckAnswer(%q, %q)", tc.candidate, tc.expected)
	}
}

func TestFinalScore(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{5, 8, 63},
		{1, 3, 33},
		{2, 3, 67},
		{3, 4, 75},
		{1, 2, 50},
		{0, 5, 0},
		{5, 5, 100},
		{1, 8, 13},
		{0, 0, 0},
		{7, 0, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FinalScore(tc.correct, tc.total), "FinalScore(%d, %d)", tc.correct, tc.total)
	}
}
