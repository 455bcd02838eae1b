package multiform_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-message"

	"github.com/tomasbasham/multiform"
)

const testBoundary = "0123456789abcdef-0123456789abcdef-0123456789abcdef-0123456789abcdef"

func fixedBoundary() string { return testBoundary }

type Person struct {
	Name     string   `form:"name"`
	Age      int      `form:"age,omitempty"`
	Pronouns []string `form:"pronouns"`
}

type Upload struct {
	Title  string              `form:"title"`
	Avatar multiform.FileField `form:"avatar"`
	Raw    []byte              `form:"raw,omitempty"`
	Tags   map[string]string   `form:"tags,omitempty"`
	Extra  *string             `form:"extra,omitempty"`
	secret string
}

type IgnoredFieldsForm struct {
	Public  string `form:"public"`
	Private string `form:"-"`
	Ignored string `form:",ignore"`
	NoTag   string
	Empty   string `form:""`
	Omitted string `form:",omitempty"`
	Complex MyDate `form:"complex,omitempty"`
}

type User struct {
	Name    string  `form:"name"`
	Age     int     `form:"age,omitempty"`
	Address Address `form:"address"`
}

type Address struct {
	Street string `form:"street"`
	City   string `form:"city"`
	State  string `form:"state"`
	Zip    string `form:"zip"`
}

type MyDate time.Time

func (d MyDate) MarshalForm() (string, error) {
	return time.Time(d).Format("2006.01.02"), nil
}

var errBroken = errors.New("broken marshaler")

type Broken struct{}

func (Broken) MarshalForm() (string, error) { return "", errBroken }

// parsedPart is the view of a part recovered by an independent multipart
// reader.
type parsedPart struct {
	Name        string
	Filename    string
	ContentType string
	Encoding    string
	Body        []byte
}

// parseForm reads an encoded form back with go-message.
func parseForm(t *testing.T, contentType string, body []byte) []parsedPart {
	t.Helper()

	r := io.MultiReader(
		strings.NewReader("Content-Type: "+contentType+"\r\n\r\n"),
		bytes.NewReader(body),
	)
	e, err := message.Read(r)
	if err != nil {
		t.Fatalf("failed to read message: %v", err)
	}
	mr := e.MultipartReader()
	if mr == nil {
		t.Fatalf("expected multipart entity for %q", contentType)
	}

	var parts []parsedPart
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read part: %v", err)
		}
		_, params, err := p.Header.ContentDisposition()
		if err != nil {
			t.Fatalf("invalid content disposition: %v", err)
		}
		b, err := io.ReadAll(p.Body)
		if err != nil {
			t.Fatalf("failed to read part body: %v", err)
		}
		parts = append(parts, parsedPart{
			Name:        params["name"],
			Filename:    params["filename"],
			ContentType: p.Header.Get("Content-Type"),
			Encoding:    p.Header.Get("Content-Transfer-Encoding"),
			Body:        b,
		})
	}
	return parts
}
