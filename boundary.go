package multiform

import (
	"fmt"
	"math/rand/v2"
)

// BoundaryFunc returns the boundary used to delimit the parts of a single
// encoded form.
type BoundaryFunc func() string

// NewBoundary returns a boundary made of four lowercase 16-digit hexadecimal
// groups separated by hyphens, each group an independently drawn random
// 64-bit value.
//
// The random source is the process-wide generator of math/rand/v2, which is
// safe for concurrent use. The boundary is not checked against part contents.
func NewBoundary() string {
	return fmt.Sprintf("%016x-%016x-%016x-%016x",
		rand.Uint64(), rand.Uint64(), rand.Uint64(), rand.Uint64())
}
