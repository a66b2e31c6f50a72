package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "single element",
			input:    []string{"reader"},
			expected: []string{"reader"},
		},
		{
			name:     "trims whitespace",
			input:    []string{"  reader  ", "writer  ", "  admin"},
			expected: []string{"reader", "writer", "admin"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"reader", "writer", "reader", "admin", "writer"},
			expected: []string{"reader", "writer", "admin"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"reader", "", "  ", "writer"},
			expected: []string{"reader", "writer"},
		},
		{
			name:     "preserves case",
			input:    []string{"Reader", "reader", "READER"},
			expected: []string{"Reader", "reader", "READER"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestDedupeAndSort(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "sorts ascending",
			input:    []string{"writer", "admin", "reader"},
			expected: []string{"admin", "reader", "writer"},
		},
		{
			name:     "dedupes before sorting",
			input:    []string{"writer", "reader", "writer", " reader "},
			expected: []string{"reader", "writer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndSort(tt.input))
		})
	}
}
