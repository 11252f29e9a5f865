package jsonc_parser

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/files"
)

func TestStripLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain line", `  "key": 1,`, `  "key": 1,`},
		{"trailing comment", `  "key": 1, // note`, `  "key": 1, `},
		{"whole line comment", `// all comment`, ``},
		{"slashes inside string survive", `  "url": "https://host/path",`, `  "url": "https://host/path",`},
		{"comment after string with slashes", `  "url": "https://x", // c`, `  "url": "https://x", `},
		{"escaped quote does not close string", `  "val": "a\"b // not a comment"`, `  "val": "a\"b // not a comment"`},
		{"escaped backslash closes escape", `  "val": "a\\" // comment`, `  "val": "a\\" `},
		{"single slash kept", `  "ratio": 1 / 2`, `  "ratio": 1 / 2`},
		{"empty line", ``, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripLine(tt.input))
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("parses commented document", func(t *testing.T) {
		doc := `{
  // service toggles
  "usb_copy": {
    "enabled": true, // copy CSVs to USB
    "interval_seconds": 30
  },
  "cloud_sync": {
    "enabled": false,
    "interval_minutes": 10,
    "rclone_remote": "myremote:" // trailing
  }
}`
		data, err := Parse(doc)
		require.NoError(t, err)
		assert.True(t, Bool(data, "usb_copy.enabled", false))
		assert.False(t, Bool(data, "cloud_sync.enabled", true))
		assert.Equal(t, 30.0, Number(data, "usb_copy.interval_seconds", 0))
		assert.Equal(t, 10.0, Number(data, "cloud_sync.interval_minutes", 0))
		assert.Equal(t, "myremote:", String(data, "cloud_sync.rclone_remote", ""))
	})

	t.Run("empty input is an empty object", func(t *testing.T) {
		data, err := Parse("")
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("comment-only input is an empty object", func(t *testing.T) {
		data, err := Parse("// nothing here\n// at all\n")
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("invalid json fails", func(t *testing.T) {
		_, err := Parse(`{"a": }`)
		assert.Error(t, err)
	})

	t.Run("numbers round-trip exactly as written", func(t *testing.T) {
		data, err := Parse(`{"a": 10.0, "b": 10, "c": 1.5}`)
		require.NoError(t, err)
		for key, want := range map[string]string{"a": "10.0", "b": "10", "c": "1.5"} {
			v, ok := Lookup(data, key)
			assert.Equal(t, want, Render(v, ok))
		}
		assert.Equal(t, 10.0, Number(data, "a", 0))
		assert.Equal(t, 10.0, Number(data, "b", 0))
	})
}

func TestParseFile(t *testing.T) {
	t.Run("missing file yields empty document", func(t *testing.T) {
		files.SetFileSystem(files.NewAferoFileSystem(afero.NewMemMapFs()))
		defer files.ResetDependencies()

		data, err := ParseFile("/project/config.jsonc")
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("reads through the filesystem layer", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		files.SetFileSystem(files.NewAferoFileSystem(fs))
		defer files.ResetDependencies()

		require.NoError(t, afero.WriteFile(fs, "/project/config.jsonc",
			[]byte("{\n  \"usb_copy\": { \"enabled\": true } // on\n}\n"), 0o644))

		data, err := ParseFile("/project/config.jsonc")
		require.NoError(t, err)
		assert.True(t, Bool(data, "usb_copy.enabled", false))
	})
}

func TestLookup(t *testing.T) {
	data := map[string]any{
		"usb_copy": map[string]any{
			"enabled": true,
			"nested":  map[string]any{"deep": "x"},
		},
		"top": "level",
	}

	tests := []struct {
		name     string
		key      string
		expected any
		found    bool
	}{
		{"top-level key", "top", "level", true},
		{"nested key", "usb_copy.enabled", true, true},
		{"deeply nested key", "usb_copy.nested.deep", "x", true},
		{"missing leaf", "usb_copy.missing", nil, false},
		{"missing root", "nope.enabled", nil, false},
		{"traversal through scalar", "top.enabled", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(data, tt.key)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		ok       bool
		expected string
	}{
		{"true", true, true, "true"},
		{"false", false, true, "false"},
		{"parsed integer", json.Number("30"), true, "30"},
		{"parsed float keeps its decimal point", json.Number("10.0"), true, "10.0"},
		{"whole number", 30.0, true, "30"},
		{"fractional number", 1.5, true, "1.5"},
		{"string", "rclone", true, "rclone"},
		{"missing", nil, false, ""},
		{"object renders empty", map[string]any{}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.value, tt.ok))
		})
	}
}
