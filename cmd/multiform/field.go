package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tomasbasham/multiform"
)

// readFileFunc loads the contents of a file named in a field argument.
type readFileFunc func(path string) ([]byte, error)

// parseField turns a curl-style field argument into a part:
//
//	name=value            text part
//	name=@path            file part, application/octet-stream
//	name=@path;type=mime  file part with an explicit media type
//	name=<path            text part read from a file
func parseField(arg string, readFile readFileFunc) (multiform.Part, error) {
	name, value, ok := strings.Cut(arg, "=")
	if !ok {
		return multiform.Part{}, fmt.Errorf("invalid field %q: expected name=value", arg)
	}

	switch {
	case strings.HasPrefix(value, "@"):
		path, mimeType := value[1:], ""
		if i := strings.LastIndex(path, ";type="); i >= 0 {
			path, mimeType = path[:i], path[i+len(";type="):]
		}
		data, err := readFile(path)
		if err != nil {
			return multiform.Part{}, fmt.Errorf("field %q: %w", name, err)
		}
		filename := filepath.Base(path)
		if mimeType == "" {
			return multiform.File(name, filename, data), nil
		}
		return multiform.RawPart(name, mimeType, data, &filename, multiform.BinaryEncoding), nil

	case strings.HasPrefix(value, "<"):
		data, err := readFile(value[1:])
		if err != nil {
			return multiform.Part{}, fmt.Errorf("field %q: %w", name, err)
		}
		return multiform.RawPart(name, multiform.TextPlain, data, nil, multiform.DefaultEncoding), nil

	default:
		return multiform.Text(name, value), nil
	}
}
