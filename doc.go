// Package multiform builds and serializes multipart/form-data payloads.
//
// A [Form] is an ordered, append-only collection of [Part] values. Encoding a
// form draws a fresh random boundary and produces the body bytes together with
// the matching Content-Type value, ready to be handed to a response writer.
// Structs and maps may also be converted into a form with [Marshal], using the
// same `form` struct tags as a URL-encoded form.
//
// The package only generates multipart bodies; it never parses them.
package multiform
