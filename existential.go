package existential

import "fmt"

// Default layout constants for a 64-bit target.
const (
	DefaultWordSize          uint32 = 8
	DefaultInlineBufferBytes uint32 = 24
	DefaultMaxAlignment      uint32 = 16
)

// TypeDescriptor describes a concrete type stored behind a container.
type TypeDescriptor struct {
	Name  string
	Size  uint32
	Align uint32
	// Reference declares the type reference-semantic: instances live on the
	// heap with shared ownership and values of the type are a single pointer.
	Reference bool
}

// String returns the descriptor name, or a size/align summary when unnamed.
func (d TypeDescriptor) String() string {
	if d.Name != "" {
		return d.Name
	}
	return fmt.Sprintf("<size=%d align=%d>", d.Size, d.Align)
}
