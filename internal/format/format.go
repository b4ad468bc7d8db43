package format

import (
	"bytes"
	"errors"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// ErrInvalidJSON is returned by Format when the content is not a complete JSON value.
var ErrInvalidJSON = errors.New("content is not valid JSON")

var indentOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// Indent re-indents a JSON value with two spaces per level, keeping key order.
// The result carries no trailing newline, matching the editor buffer form.
func Indent(src []byte) []byte {
	out := pretty.PrettyOptions(src, indentOptions)
	return bytes.TrimRight(out, "\n")
}

// Format takes palette document content and returns it in canonical layout:
// two-space indentation, one key per line, original key order, and a single
// trailing newline. Content that is not valid JSON is returned unchanged
// together with ErrInvalidJSON.
func Format(content string) (string, error) {
	if !gjson.Valid(content) {
		return content, ErrInvalidJSON
	}
	return string(Indent([]byte(content))) + "\n", nil
}
