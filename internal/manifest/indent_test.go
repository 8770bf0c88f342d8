package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarlhens/riri-node-tools/internal/manifest"
)

func TestIndentDetection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   manifest.Format
		source   string
		expected string
	}{
		{
			name:     "should detect two spaces",
			format:   manifest.FormatJSON,
			source:   "{\n  \"a\": \"1\"\n}\n",
			expected: "  ",
		},
		{
			name:     "should detect four spaces",
			format:   manifest.FormatJSON,
			source:   "{\n    \"a\": \"1\"\n}\n",
			expected: "    ",
		},
		{
			name:     "should detect tabs",
			format:   manifest.FormatJSON,
			source:   "{\n\t\"a\": \"1\"\n}\n",
			expected: "\t",
		},
		{
			name:     "should detect nothing in a flat document",
			format:   manifest.FormatJSON,
			source:   `{"a": "1"}`,
			expected: "",
		},
		{
			name:     "should detect the YAML unit",
			format:   manifest.FormatYAML,
			source:   "a:\n  b: '1'\n",
			expected: "  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			doc, err := manifest.Load([]byte(tt.source), tt.format)

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.expected, doc.Indent())
		})
	}
}

func TestIndentFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format manifest.Format
		source string
	}{
		{
			name:   "should reject tabs mixed with spaces on one line",
			format: manifest.FormatJSON,
			source: "{\n \t\"a\": \"1\"\n}\n",
		},
		{
			name:   "should reject tab lines mixed with space lines",
			format: manifest.FormatJSON,
			source: "{\n  \"a\": \"1\",\n\t\"b\": \"2\"\n}\n",
		},
		{
			name:   "should reject depths that are not unit multiples",
			format: manifest.FormatJSON,
			source: "{\n  \"a\": {\n     \"b\": \"1\"\n  }\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			_, err := manifest.Load([]byte(tt.source), tt.format)

			// then
			require.Error(t, err)
		})
	}
}

func TestLineEndingDetection(t *testing.T) {
	t.Parallel()

	t.Run("should default to LF", func(t *testing.T) {
		t.Parallel()

		// given
		doc, err := manifest.Load([]byte("{\n  \"a\": \"1\"\n}\n"), manifest.FormatJSON)

		// then
		require.NoError(t, err)
		assert.Equal(t, "\n", doc.LineEnding())
	})

	t.Run("should detect CRLF from the first break", func(t *testing.T) {
		t.Parallel()

		// given
		doc, err := manifest.Load([]byte("{\r\n  \"a\": \"1\"\r\n}\r\n"), manifest.FormatJSON)

		// then
		require.NoError(t, err)
		assert.Equal(t, "\r\n", doc.LineEnding())
	})
}
