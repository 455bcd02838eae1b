package multiform

import (
	"net/http"
	"strconv"
)

// ContentTypePrefix is the media type and parameter name preceding the
// boundary in the Content-Type of an encoded form.
const ContentTypePrefix = "multipart/form-data; boundary="

// Form is an ordered collection of parts. Parts are encoded in the order they
// were added and are never reordered, merged or removed.
//
// The zero value is an empty form ready to use. A Form is not safe for
// concurrent mutation, but separate forms may be encoded concurrently.
type Form struct {
	parts []Part
}

// NewForm returns a form holding parts in the order given.
func NewForm(parts ...Part) *Form {
	f := &Form{parts: make([]Part, 0, len(parts))}
	f.parts = append(f.parts, parts...)
	return f
}

// Add appends p to the form and returns the form so calls can be chained.
func (f *Form) Add(p Part) *Form {
	f.parts = append(f.parts, p)
	return f
}

// Len returns the number of parts in the form.
func (f *Form) Len() int {
	return len(f.parts)
}

// Parts returns a copy of the parts of the form in encoding order.
func (f *Form) Parts() []Part {
	return append([]Part(nil), f.parts...)
}

// Encode serializes the form using a freshly generated boundary. It returns
// the Content-Type value and the body. Encoding the same form twice yields
// different boundaries.
func (f *Form) Encode() (contentType string, body []byte) {
	return f.encode(NewBoundary())
}

func (f *Form) encode(boundary string) (string, []byte) {
	size := len("--") + len(boundary) + len("--")
	for _, p := range f.parts {
		size += len("--") + len(boundary) + len(crlf) + p.Len()
	}

	body := make([]byte, 0, size)
	for _, p := range f.parts {
		body = append(body, "--"...)
		body = append(body, boundary...)
		body = append(body, crlf...)
		body = p.AppendTo(body)
	}
	body = append(body, "--"...)
	body = append(body, boundary...)
	body = append(body, "--"...)

	return ContentTypePrefix + boundary, body
}

// ServeHTTP writes the encoded form as the response, setting the Content-Type
// and Content-Length headers. Any other header already set on w is kept.
func (f *Form) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	contentType, body := f.Encode()
	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
