package multiform

import "strings"

// renderPath joins the segments of a nested field name, rendering every
// segment after the first in brackets: address[city].
func renderPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(path[0])
	for _, p := range path[1:] {
		b.WriteString("[")
		b.WriteString(p)
		b.WriteString("]")
	}
	return b.String()
}

// appendPath returns a new path with key appended, leaving path untouched so
// sibling fields never share a backing array.
func appendPath(path []string, key string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, key)
}
