package multiform

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Marshaler is the interface implemented by types that can marshal themselves
// into the text of a form field.
type Marshaler interface {
	MarshalForm() (string, error)
}

// PartMarshaler is the interface implemented by types that build their own
// part. name is the rendered field name the value was found under.
type PartMarshaler interface {
	MarshalFormPart(name string) (Part, error)
}

// FileField is a struct field type that encodes as a file part named after
// the field. An empty ContentType is sent as application/octet-stream.
type FileField struct {
	Filename    string
	ContentType string
	Contents    []byte
}

// MarshalFormPart implements [PartMarshaler].
func (f FileField) MarshalFormPart(name string) (Part, error) {
	mimeType := f.ContentType
	if mimeType == "" {
		mimeType = OctetStream
	}
	filename := f.Filename
	return RawPart(name, mimeType, f.Contents, &filename, BinaryEncoding), nil
}

// UnsupportedTypeError is returned by [Marshal] when attempting to encode a
// value of a type that has no form representation.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return "form: unsupported type: " + e.Type.String()
}

var (
	partType      = reflect.TypeOf(Part{})
	partMarshaler = reflect.TypeOf((*PartMarshaler)(nil)).Elem()
)

// EncodeToString is a convenience function that returns the content type and
// multipart body of v as strings.
func EncodeToString(v interface{}) (contentType, body string, err error) {
	f, err := Marshal(v)
	if err != nil {
		return "", "", err
	}
	ct, b := f.Encode()
	return ct, string(b), nil
}

// Marshal converts v into a [Form]. v must be a struct, a map with string
// keys, a pointer to either, or nil.
//
// Struct fields are added in declaration order and map entries in key order.
// Nested values are named using brackets, e.g. address[city]. Slice elements
// each become a separate part under the same name. []byte values become
// binary application/octet-stream parts; every other scalar becomes a
// text/plain part.
func Marshal(v interface{}) (*Form, error) {
	f := &Form{}
	if v == nil {
		return f, nil
	}

	// Dereference pointer if needed.
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return f, nil
		}
		rv = rv.Elem()
	}

	// Ensure the top-level value is a struct or map.
	if rv.Kind() != reflect.Struct && rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("form: top-level value must be struct or map")
	}

	// Ensure map keys are strings.
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("form: map keys must be strings")
	}

	if err := marshalValue(f, nil, rv); err != nil {
		return nil, err
	}
	return f, nil
}

func marshalValue(f *Form, path []string, v reflect.Value) error {
	// Handle nil pointers early to avoid dereferencing them.
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}

	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	// Parts are added untouched and keep their own name.
	if v.Type() == partType {
		f.Add(v.Interface().(Part))
		return nil
	}

	// Handle custom marshalers first.
	if m, ok := asPartMarshaler(v); ok {
		p, err := m.MarshalFormPart(renderPath(path))
		if err != nil {
			return err
		}
		f.Add(p)
		return nil
	}
	if m, ok := asMarshaler(v); ok {
		return marshaler(f, path, m)
	}

	// Dispatch based on the kind of the value.
	switch v.Kind() {
	case reflect.Struct:
		return marshalStruct(f, path, v)
	case reflect.Map:
		return marshalMap(f, path, v)
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			f.Add(RawPart(renderPath(path), OctetStream, v.Bytes(), nil, BinaryEncoding))
			return nil
		}
		return marshalSlice(f, path, v)
	case reflect.Array:
		return marshalSlice(f, path, v)
	case reflect.Interface:
		if !v.IsNil() {
			return marshalValue(f, path, v.Elem())
		}
		return nil
	default:
		return marshalScalar(f, path, v)
	}
}

func marshaler(f *Form, path []string, m Marshaler) error {
	s, err := m.MarshalForm()
	if err != nil {
		return err
	}
	f.Add(Text(renderPath(path), s))
	return nil
}

func marshalStruct(f *Form, path []string, v reflect.Value) error {
	tags := tags(v)
	for i := 0; i < v.NumField(); i++ {
		tag := tags[i]
		if tag.Ignore {
			continue
		}
		fv := v.Field(i)
		if tag.Omit && isEmptyValue(fv) {
			continue
		}
		if tag.Name == "" {
			continue
		}
		if err := marshalValue(f, appendPath(path, tag.Name), fv); err != nil {
			return err
		}
	}
	return nil
}

func marshalMap(f *Form, path []string, v reflect.Value) error {
	if v.Type().Key().Kind() != reflect.String {
		return &UnsupportedTypeError{v.Type()}
	}

	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})

	for _, k := range keys {
		mv := v.MapIndex(k)
		if !mv.IsValid() || (mv.Kind() == reflect.Interface && mv.IsNil()) {
			continue
		}
		if err := marshalValue(f, appendPath(path, k.String()), mv); err != nil {
			return err
		}
	}
	return nil
}

// Slice elements share the name of the slice itself.
func marshalSlice(f *Form, path []string, v reflect.Value) error {
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		if !elem.IsValid() || (elem.Kind() == reflect.Interface && elem.IsNil()) {
			continue
		}
		if err := marshalValue(f, path, elem); err != nil {
			return err
		}
	}
	return nil
}

func marshalScalar(f *Form, path []string, v reflect.Value) error {
	s, err := getScalar(v)
	if err != nil {
		return err
	}
	f.Add(Text(renderPath(path), s))
	return nil
}

func asMarshaler(v reflect.Value) (Marshaler, bool) {
	if v.CanAddr() {
		if m, ok := v.Addr().Interface().(Marshaler); ok {
			return m, true
		}
	}
	if m, ok := v.Interface().(Marshaler); ok {
		return m, true
	}
	return nil, false
}

func asPartMarshaler(v reflect.Value) (PartMarshaler, bool) {
	if v.CanAddr() && v.Addr().Type().Implements(partMarshaler) {
		return v.Addr().Interface().(PartMarshaler), true
	}
	m, ok := v.Interface().(PartMarshaler)
	return m, ok
}

func getScalar(v reflect.Value) (string, error) {
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits()), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	default:
		return "", &UnsupportedTypeError{v.Type()}
	}
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}
