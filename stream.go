package multiform

import (
	"fmt"
	"io"
)

// Encoder writes multipart/form-data bodies to an [io.Writer].
type Encoder struct {
	w        io.Writer
	boundary BoundaryFunc
}

// NewEncoder creates a new [Encoder] that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, boundary: NewBoundary}
}

// SetBoundaryFunc replaces the boundary source of the encoder. Passing nil
// restores [NewBoundary].
func (e *Encoder) SetBoundaryFunc(fn BoundaryFunc) {
	if fn == nil {
		fn = NewBoundary
	}
	e.boundary = fn
}

// Encode writes v as a multipart/form-data body to the underlying
// [io.Writer] and returns the matching Content-Type value. v may be a *Form,
// a Form, a single Part, or any value accepted by [Marshal].
func (e *Encoder) Encode(v interface{}) (string, error) {
	var f *Form
	switch t := v.(type) {
	case *Form:
		f = t
		if f == nil {
			f = &Form{}
		}
	case Form:
		f = &t
	case Part:
		f = NewForm(t)
	default:
		var err error
		if f, err = Marshal(v); err != nil {
			return "", err
		}
	}

	contentType, body := f.encode(e.boundary())
	if _, err := e.w.Write(body); err != nil {
		return "", fmt.Errorf("form: failed to write body: %w", err)
	}
	return contentType, nil
}
