package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarlhens/riri-node-tools/internal/manifest"
)

func TestLoadRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format manifest.Format
		source string
	}{
		{
			name:   "should round-trip two-space JSON byte-identically",
			format: manifest.FormatJSON,
			source: "{\n  \"name\": \"app\",\n  \"dependencies\": {\n    \"lodash\": \"^4.17.0\"\n  }\n}\n",
		},
		{
			name:   "should round-trip four-space JSON byte-identically",
			format: manifest.FormatJSON,
			source: "{\n    \"name\": \"app\",\n    \"dependencies\": {\n        \"lodash\": \"^4.17.0\"\n    }\n}\n",
		},
		{
			name:   "should round-trip tab-indented JSON byte-identically",
			format: manifest.FormatJSON,
			source: "{\n\t\"name\": \"app\",\n\t\"dependencies\": {\n\t\t\"lodash\": \"^4.17.0\"\n\t}\n}\n",
		},
		{
			name:   "should round-trip CRLF JSON byte-identically",
			format: manifest.FormatJSON,
			source: "{\r\n  \"name\": \"app\",\r\n  \"version\": \"1.0.0\"\r\n}\r\n",
		},
		{
			name:   "should round-trip two-space YAML byte-identically",
			format: manifest.FormatYAML,
			source: "name: app\n\ndependencies:\n  lodash: ^4.17.0\n  react: 18.2.0\n",
		},
		{
			name:   "should round-trip four-space YAML with comments byte-identically",
			format: manifest.FormatYAML,
			source: "# manifest\nname: app\ndependencies:\n    lodash: '^4.17.0' # utility\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			source := []byte(tt.source)

			// when
			doc, err := manifest.Load(source, tt.format)

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.source, string(doc.Serialize()))
		})
	}
}

func TestDocumentKeyOrder(t *testing.T) {
	t.Parallel()

	t.Run("should keep JSON key insertion order", func(t *testing.T) {
		t.Parallel()

		// given
		source := []byte(`{"zeta": "1", "alpha": "2", "mid": "3"}`)

		// when
		doc, err := manifest.Load(source, manifest.FormatJSON)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, doc.Root().Keys())
	})

	t.Run("should keep YAML key insertion order", func(t *testing.T) {
		t.Parallel()

		// given
		source := []byte("zeta: '1'\nalpha: '2'\nmid: '3'\n")

		// when
		doc, err := manifest.Load(source, manifest.FormatYAML)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, doc.Root().Keys())
	})
}

func TestDocumentSection(t *testing.T) {
	t.Parallel()

	t.Run("should return a nested mapping", func(t *testing.T) {
		t.Parallel()

		// given
		source := []byte(`{"dependencies": {"lodash": "^4.17.0"}}`)
		doc, err := manifest.Load(source, manifest.FormatJSON)
		require.NoError(t, err)

		// when
		section, ok := doc.Section("dependencies")

		// then
		require.True(t, ok)
		assert.Equal(t, []string{"lodash"}, section.Keys())
	})

	t.Run("should report absent sections", func(t *testing.T) {
		t.Parallel()

		// given
		source := []byte(`{"name": "app"}`)
		doc, err := manifest.Load(source, manifest.FormatJSON)
		require.NoError(t, err)

		// when
		_, ok := doc.Section("devDependencies")

		// then
		assert.False(t, ok)
	})
}

func TestDocumentSetString(t *testing.T) {
	t.Parallel()

	t.Run("should rewrite only the targeted JSON value", func(t *testing.T) {
		t.Parallel()

		// given
		source := "{\n    \"name\": \"app\",\n\n    \"dependencies\": {\n        \"lodash\": \"^4.17.0\",\n        \"react\": \"18.2.0\"\n    }\n}\n"
		doc, err := manifest.Load([]byte(source), manifest.FormatJSON)
		require.NoError(t, err)

		// when
		err = doc.SetString([]string{"dependencies", "lodash"}, "4.17.21")

		// then
		require.NoError(t, err)
		expected := "{\n    \"name\": \"app\",\n\n    \"dependencies\": {\n        \"lodash\": \"4.17.21\",\n        \"react\": \"18.2.0\"\n    }\n}\n"
		assert.Equal(t, expected, string(doc.Serialize()))
	})

	t.Run("should change only the value line in a CRLF document", func(t *testing.T) {
		t.Parallel()

		// given
		source := "{\r\n    \"dependencies\": {\r\n        \"lodash\": \"^4.17.0\"\r\n    },\r\n    \"license\": \"MIT\"\r\n}\r\n"
		doc, err := manifest.Load([]byte(source), manifest.FormatJSON)
		require.NoError(t, err)

		// when
		err = doc.SetString([]string{"dependencies", "lodash"}, "4.17.21")

		// then
		require.NoError(t, err)
		expected := "{\r\n    \"dependencies\": {\r\n        \"lodash\": \"4.17.21\"\r\n    },\r\n    \"license\": \"MIT\"\r\n}\r\n"
		assert.Equal(t, expected, string(doc.Serialize()))
		assert.Equal(t, "\r\n", doc.LineEnding())
	})

	t.Run("should preserve YAML quoting style and comments", func(t *testing.T) {
		t.Parallel()

		// given
		source := "dependencies:\n  lodash: '^4.17.0' # pinned later\n  react: ^18.0.0\n"
		doc, err := manifest.Load([]byte(source), manifest.FormatYAML)
		require.NoError(t, err)

		// when
		err = doc.SetString([]string{"dependencies", "lodash"}, "4.17.21")

		// then
		require.NoError(t, err)
		expected := "dependencies:\n  lodash: '4.17.21' # pinned later\n  react: ^18.0.0\n"
		assert.Equal(t, expected, string(doc.Serialize()))
	})

	t.Run("should rewrite plain YAML scalars in place", func(t *testing.T) {
		t.Parallel()

		// given
		source := "dependencies:\n  react: ^18.0.0\n"
		doc, err := manifest.Load([]byte(source), manifest.FormatYAML)
		require.NoError(t, err)

		// when
		err = doc.SetString([]string{"dependencies", "react"}, "18.2.0")

		// then
		require.NoError(t, err)
		assert.Equal(t, "dependencies:\n  react: 18.2.0\n", string(doc.Serialize()))
	})

	t.Run("should record no change when the value is identical", func(t *testing.T) {
		t.Parallel()

		// given
		source := `{"dependencies": {"lodash": "4.17.21"}}`
		doc, err := manifest.Load([]byte(source), manifest.FormatJSON)
		require.NoError(t, err)

		// when
		err = doc.SetString([]string{"dependencies", "lodash"}, "4.17.21")

		// then
		require.NoError(t, err)
		assert.False(t, doc.Changed())
		assert.Equal(t, source, string(doc.Serialize()))
	})

	t.Run("should drop the edit when the value is written back to the original", func(t *testing.T) {
		t.Parallel()

		// given
		source := `{"dependencies": {"lodash": "^4.17.0"}}`
		doc, err := manifest.Load([]byte(source), manifest.FormatJSON)
		require.NoError(t, err)
		require.NoError(t, doc.SetString([]string{"dependencies", "lodash"}, "4.17.21"))
		require.True(t, doc.Changed())

		// when
		err = doc.SetString([]string{"dependencies", "lodash"}, "^4.17.0")

		// then
		require.NoError(t, err)
		assert.False(t, doc.Changed())
		assert.Equal(t, source, string(doc.Serialize()))
	})

	t.Run("should apply multiple edits in one pass", func(t *testing.T) {
		t.Parallel()

		// given
		source := "{\n  \"dependencies\": {\n    \"a\": \"^1.0.0\",\n    \"b\": \"~2.0.0\"\n  }\n}\n"
		doc, err := manifest.Load([]byte(source), manifest.FormatJSON)
		require.NoError(t, err)

		// when
		require.NoError(t, doc.SetString([]string{"dependencies", "b"}, "2.0.4"))
		require.NoError(t, doc.SetString([]string{"dependencies", "a"}, "1.4.0"))

		// then
		expected := "{\n  \"dependencies\": {\n    \"a\": \"1.4.0\",\n    \"b\": \"2.0.4\"\n  }\n}\n"
		assert.Equal(t, expected, string(doc.Serialize()))
	})

	t.Run("should fail for a missing key", func(t *testing.T) {
		t.Parallel()

		// given
		doc, err := manifest.Load([]byte(`{"dependencies": {}}`), manifest.FormatJSON)
		require.NoError(t, err)

		// when
		err = doc.SetString([]string{"dependencies", "lodash"}, "4.17.21")

		// then
		require.Error(t, err)
	})
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		expected manifest.Format
		wantErr  bool
	}{
		{name: "should detect json", path: "package.json", expected: manifest.FormatJSON},
		{name: "should detect yaml", path: "manifest.yaml", expected: manifest.FormatYAML},
		{name: "should detect yml", path: "manifest.yml", expected: manifest.FormatYAML},
		{name: "should reject unknown extensions", path: "manifest.toml", wantErr: true},
		{name: "should reject missing extensions", path: "manifest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			format, err := manifest.DetectFormat(tt.path)

			// then
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestLoadFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format manifest.Format
		source string
	}{
		{
			name:   "should reject truncated JSON",
			format: manifest.FormatJSON,
			source: `{"name": "app"`,
		},
		{
			name:   "should reject trailing JSON content",
			format: manifest.FormatJSON,
			source: `{"name": "app"} {}`,
		},
		{
			name:   "should reject duplicate JSON keys",
			format: manifest.FormatJSON,
			source: `{"name": "a", "name": "b"}`,
		},
		{
			name:   "should reject a non-mapping top level",
			format: manifest.FormatJSON,
			source: `["a", "b"]`,
		},
		{
			name:   "should reject duplicate YAML keys",
			format: manifest.FormatYAML,
			source: "name: a\nname: b\n",
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
