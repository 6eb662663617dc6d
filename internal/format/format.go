// Package format renders handles and keys into compact display strings for
// the explorer panels.
package format

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated output.
const Ellipsis = "…"

// Stringify returns a compact single-line representation for an arbitrary
// value. It never panics: a String method that blows up degrades to the
// value's type name.
func Stringify(v any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("<unprintable %T>", v)
		}
	}()

	if v == nil {
		return "nil"
	}
	switch t := v.(type) {
	case string:
		return strconv.Quote(t)
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return fmt.Sprint(t)
	case error:
		return fmt.Sprintf("error(%q)", t.Error())
	case map[string]any, []any:
		// Compact JSON reads better than fmt's map syntax for loaded documents.
		if b, err := json.Marshal(t); err == nil {
			return string(b)
		}
	}
	return oneLine(fmt.Sprintf("%v", v))
}

// Truncate cuts s down to the given display width, appending an ellipsis
// when anything was removed. Width is measured in terminal cells, not bytes.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, Ellipsis)
}

// KeyLabel formats a container key for use in breadcrumbs and entry lines:
// strings are quoted, everything else prints bare.
func KeyLabel(k any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("<%T>", k)
		}
	}()

	if s, ok := k.(string); ok {
		return strconv.Quote(s)
	}
	return oneLine(fmt.Sprint(k))
}

func oneLine(s string) string {
	if !strings.ContainsAny(s, "\n\t") {
		return s
	}
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	return s
}
