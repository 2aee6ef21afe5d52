package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{"both empty", "", "", 1.0},
		{"identical", "john smith", "john smith", 1.0},
		{"case insensitive", "JOHN SMITH", "john smith", 1.0},
		{"one deletion", "john smith", "jon smith", 0.9},
		{"street abbreviation", "main street", "main st", 1 - 4.0/11},
		{"one side empty", "", "abc", 0.0},
		{"completely different", "abc", "xyz", 0.0},
		{"accent counts as one character", "josé", "jose", 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, EditSimilarity(tt.a, tt.b), 0.0001)
		})
	}
}

func TestEditSimilarity_Identity(t *testing.T) {
	for _, s := range []string{"", " ", "a", "123 Apple St", "Ñandú Pérez", "alice.w@email.com"} {
		assert.Equal(t, 1.0, EditSimilarity(s, s), "similarity of %q with itself", s)
	}
}

func TestEditSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"alice walker", "alicia walker"},
		{"5 elm st", "5 elm street"},
		{"", "x"},
		{"Brian", "bryan"},
		{"45 lakeview rd", "45 lake view road"},
	}

	for _, p := range pairs {
		assert.Equal(t, EditSimilarity(p[0], p[1]), EditSimilarity(p[1], p[0]), "%q vs %q", p[0], p[1])
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"kitten", "sitting", 3},
		{"123 pine ln", "127 pine lane", 3},
		{"alice", "alicia", 2},
		{"Abc", "abc", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, EditDistance(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestExactSimilarity(t *testing.T) {
	tests := []struct {
		name          string
		a             string
		b             string
		caseSensitive bool
		expected      float64
	}{
		{"equal", "12345", "12345", true, 1.0},
		{"different", "12345", "12346", true, 0.0},
		{"both empty do not match", "", "", true, 0.0},
		{"both whitespace do not match", "  ", "  ", false, 0.0},
		{"origin empty", "", "12345", true, 0.0},
		{"candidate empty", "12345", "", true, 0.0},
		{"case folded", "John.Smith@Email.com", "john.smith@email.com", false, 1.0},
		{"case sensitive mismatch", "A1B 2C3", "a1b 2c3", true, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExactSimilarity(tt.a, tt.b, tt.caseSensitive))
		})
	}
}

func TestSimilarity_Modes(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("A@x.com", "a@x.com", ModeExact))
	assert.Equal(t, 1.0, Similarity("A@x.com", "a@x.com", ModeExactFold))
	assert.InDelta(t, 0.9, Similarity("John Smith", "jon smith", ModeEditDistance), 0.0001)
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank(" \t\n"))
	assert.False(t, IsBlank(" a "))
}
