package multiform

import (
	"reflect"
	"strings"
	"sync"
)

// fieldCache maps a struct [reflect.Type] to the parsed form tags of its
// fields, indexed by field number. Safe for concurrent use.
var fieldCache sync.Map

// fieldTag is the parsed `form:"name,omitempty"` tag of a struct field.
type fieldTag struct {
	Name   string
	Omit   bool
	Ignore bool
}

func tags(v reflect.Value) []*fieldTag {
	t := reflect.Indirect(v).Type()
	if t.Kind() != reflect.Struct {
		return []*fieldTag{}
	}

	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]*fieldTag)
	}

	out := make([]*fieldTag, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)

		// Unexported fields cannot be read back through Interface.
		if !sf.IsExported() {
			out[i] = &fieldTag{Ignore: true}
			continue
		}

		ft := parseTag(sf.Tag.Get("form"))
		if !ft.Ignore && ft.Name == "" {
			ft.Name = sf.Name
		}
		out[i] = ft
	}

	fieldCache.Store(t, out)
	return out
}

func parseTag(s string) *fieldTag {
	s = strings.TrimSpace(s)
	if s == "-" {
		return &fieldTag{Ignore: true}
	}

	parts := strings.Split(s, ",")
	ft := &fieldTag{}

	// The first element names the field; a lone hyphen drops it.
	if name := strings.TrimSpace(parts[0]); name == "-" {
		ft.Ignore = true
	} else {
		ft.Name = name
	}

	for _, opt := range parts[1:] {
		switch strings.TrimSpace(opt) {
		case "omitempty":
			ft.Omit = true
		case "ignore":
			ft.Ignore = true
		}
	}
	return ft
}
