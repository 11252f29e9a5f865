package jsonc_parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/files"
)

// Strip removes // line comments from JSONC text. The scanner runs per
// line with two states, in-string and normal, tracking backslash
// escapes so that quoted text like "https://host" survives intact.
func Strip(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = stripLine(line)
	}
	return strings.Join(lines, "\n")
}

func stripLine(line string) string {
	inString := false
	escaped := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if ch == '"' && !escaped {
			inString = !inString
		}
		if !inString && ch == '/' && i+1 < len(line) && line[i+1] == '/' {
			return line[:i]
		}
		escaped = ch == '\\' && !escaped
	}
	return line
}

// Parse strips comments and decodes the remaining JSON document.
// Empty input decodes to an empty object. Numbers are kept as
// json.Number so Render can reproduce them exactly as written
// (10 stays 10, 10.0 stays 10.0).
func Parse(text string) (map[string]any, error) {
	clean := strings.TrimSpace(Strip(text))
	if clean == "" {
		clean = "{}"
	}
	var data map[string]any
	dec := json.NewDecoder(strings.NewReader(clean))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("invalid config document: %w", err)
	}
	return data, nil
}

// ParseFile reads and parses a JSONC file through the shared
// filesystem layer. A missing file yields an empty document, matching
// the original tooling which treated absent config as all-defaults.
func ParseFile(path string) (map[string]any, error) {
	if !files.FileExists(path) {
		return map[string]any{}, nil
	}
	raw, err := files.FS().ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(string(raw))
}

// Lookup walks a dotted key path ("usb_copy.enabled") through nested
// objects. The second return is false when any segment is missing or
// a non-object is traversed.
func Lookup(data map[string]any, dottedKey string) (any, bool) {
	var cur any = data
	for _, part := range strings.Split(dottedKey, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Bool returns the boolean at dottedKey, or fallback when the key is
// missing or not a boolean.
func Bool(data map[string]any, dottedKey string, fallback bool) bool {
	v, ok := Lookup(data, dottedKey)
	if !ok {
		return fallback
	}
	b, ok := v.(bool)
	if !ok {
		return fallback
	}
	return b
}

// Number returns the number at dottedKey, or fallback when the key is
// missing or not numeric. Parse stores numbers as json.Number; plain
// float64 values are accepted too for documents built in code.
func Number(data map[string]any, dottedKey string, fallback float64) float64 {
	v, ok := Lookup(data, dottedKey)
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return fallback
		}
		return f
	case float64:
		return n
	default:
		return fallback
	}
}

// String returns the string at dottedKey, or fallback when the key is
// missing or not a string.
func String(data map[string]any, dottedKey string, fallback string) string {
	v, ok := Lookup(data, dottedKey)
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	return s
}

// Render formats a looked-up scalar the way the original jsonc_get
// tool printed it: booleans as true/false, numbers exactly as written
// in the document, everything missing as the empty string.
func Render(v any, ok bool) string {
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case bool:
		if t {
			return "true"
		}
		return "false"
	case json.Number:
		return t.String()
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case string:
		return t
	default:
		return ""
	}
}
