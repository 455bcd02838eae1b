package multiform

// Default content types for parts built by [Text] and [File].
const (
	TextPlain   = "text/plain"
	OctetStream = "application/octet-stream"
)

const crlf = "\r\n"

// TransferEncoding declares how the body of a part is encoded.
type TransferEncoding int

const (
	// DefaultEncoding emits no Content-Transfer-Encoding header. The contents
	// are assumed to be compatible with the surrounding text framing.
	DefaultEncoding TransferEncoding = iota

	// BinaryEncoding marks the contents as raw bytes that need not be valid
	// UTF-8.
	BinaryEncoding
)

// String returns the Content-Transfer-Encoding header value for e, or an
// empty string when no header is emitted.
func (e TransferEncoding) String() string {
	switch e {
	case BinaryEncoding:
		return "binary"
	default:
		return ""
	}
}

// Part is a single field of a multipart form. A Part is immutable once built;
// use [Text], [File] or [RawPart] to create one.
type Part struct {
	name        string
	filename    string
	hasFilename bool
	mimeType    string
	contents    []byte
	encoding    TransferEncoding
}

// Text returns a text/plain part named name with the UTF-8 bytes of contents.
// The part has no filename and uses [DefaultEncoding].
func Text(name, contents string) Part {
	return Part{
		name:     name,
		mimeType: TextPlain,
		contents: []byte(contents),
		encoding: DefaultEncoding,
	}
}

// File returns an application/octet-stream part for fieldName carrying
// fileName and the raw contents. The contents need not be valid UTF-8, so the
// part uses [BinaryEncoding]. If the media type of the file is known, use
// [RawPart] instead.
func File(fieldName, fileName string, contents []byte) Part {
	return Part{
		name:        fieldName,
		filename:    fileName,
		hasFilename: true,
		mimeType:    OctetStream,
		contents:    cloneBytes(contents),
		encoding:    BinaryEncoding,
	}
}

// RawPart returns a part with every field supplied by the caller. A nil
// filename produces a part without a filename parameter. The media type is
// not validated.
func RawPart(name, mimeType string, contents []byte, filename *string, enc TransferEncoding) Part {
	p := Part{
		name:     name,
		mimeType: mimeType,
		contents: cloneBytes(contents),
		encoding: enc,
	}
	if filename != nil {
		p.filename = *filename
		p.hasFilename = true
	}
	return p
}

// Name returns the form field name of the part.
func (p Part) Name() string { return p.name }

// Filename returns the file name of the part and whether one was set.
func (p Part) Filename() (string, bool) { return p.filename, p.hasFilename }

// ContentType returns the media type written in the Content-Type header.
func (p Part) ContentType() string { return p.mimeType }

// Encoding returns the transfer encoding of the part.
func (p Part) Encoding() TransferEncoding { return p.encoding }

// Contents returns a copy of the raw body of the part.
func (p Part) Contents() []byte { return cloneBytes(p.contents) }

// Len returns the number of bytes AppendTo adds for p.
func (p Part) Len() int {
	n := len(`Content-Disposition: form-data; name=""`) + len(p.name) + len(crlf)
	if p.hasFilename {
		n += len(`; filename=""`) + len(p.filename)
	}
	n += len("Content-Type: ") + len(p.mimeType) + len(crlf)
	if enc := p.encoding.String(); enc != "" {
		n += len("Content-Transfer-Encoding: ") + len(enc) + len(crlf)
	}
	return n + len(crlf) + len(p.contents) + len(crlf)
}

// AppendTo appends the headers and body of p to dst and returns the extended
// slice. The leading boundary line is not written.
//
// Name, filename and media type are written verbatim. Values containing
// double quotes or line breaks produce a malformed part.
func (p Part) AppendTo(dst []byte) []byte {
	dst = append(dst, `Content-Disposition: form-data; name="`...)
	dst = append(dst, p.name...)
	dst = append(dst, '"')
	if p.hasFilename {
		dst = append(dst, `; filename="`...)
		dst = append(dst, p.filename...)
		dst = append(dst, '"')
	}
	dst = append(dst, crlf...)

	dst = append(dst, "Content-Type: "...)
	dst = append(dst, p.mimeType...)
	dst = append(dst, crlf...)

	switch p.encoding {
	case BinaryEncoding:
		dst = append(dst, "Content-Transfer-Encoding: binary"...)
		dst = append(dst, crlf...)
	case DefaultEncoding:
	}

	dst = append(dst, crlf...)
	dst = append(dst, p.contents...)
	return append(dst, crlf...)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return append([]byte(nil), b...)
}
