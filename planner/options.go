package planner

import (
	"fmt"
	"math"

	"github.com/wippyai/existential"
	"github.com/wippyai/existential/errors"
	"github.com/wippyai/existential/internal/abi"
)

// Upper bounds on layout options. They keep every container countable in
// uint32 bytes and bound the slot list a plan allocates.
const (
	MaxWordSize          = 64
	MaxInlineBufferWords = 64
)

// Options configures planner layout constants.
type Options struct {
	// WordSize is the machine word size in bytes.
	WordSize uint32
	// InlineBufferBytes is the largest payload stored without boxing.
	InlineBufferBytes uint32
	// MaxAlignment is the largest descriptor alignment accepted.
	MaxAlignment uint32
}

// DefaultOptions returns the 64-bit layout: 8-byte words, a three-word
// inline buffer and 16-byte maximum alignment.
func DefaultOptions() Options {
	return Options{
		WordSize:          existential.DefaultWordSize,
		InlineBufferBytes: existential.DefaultInlineBufferBytes,
		MaxAlignment:      existential.DefaultMaxAlignment,
	}
}

// Validate checks that the options describe a usable layout.
func (o Options) Validate() error {
	if !abi.IsPowerOfTwo(o.WordSize) {
		return errors.InvalidConfig("word_size", o.WordSize, "must be a non-zero power of two")
	}
	if o.WordSize > MaxWordSize {
		return errors.InvalidConfig("word_size", o.WordSize, fmt.Sprintf("must not exceed %d", MaxWordSize))
	}
	if o.InlineBufferBytes == 0 || o.InlineBufferBytes%o.WordSize != 0 {
		return errors.InvalidConfig("inline_buffer_bytes", o.InlineBufferBytes,
			"must be a non-zero multiple of the word size")
	}
	if o.BufferWords() > MaxInlineBufferWords {
		return errors.InvalidConfig("inline_buffer_bytes", o.InlineBufferBytes,
			fmt.Sprintf("must not exceed %d words", MaxInlineBufferWords))
	}
	if !abi.IsPowerOfTwo(o.MaxAlignment) {
		return errors.InvalidConfig("max_alignment", o.MaxAlignment, "must be a non-zero power of two")
	}
	if o.MaxAlignment < o.WordSize {
		return errors.InvalidConfig("max_alignment", o.MaxAlignment, "must be at least the word size")
	}
	return nil
}

// BufferWords is the inline buffer capacity in words.
func (o Options) BufferWords() int {
	return int(o.InlineBufferBytes / o.WordSize)
}

// containerSize is the byte size of a container of the given word count.
func (o Options) containerSize(words int) (uint32, bool) {
	if words < 0 || uint64(words) > math.MaxUint32 {
		return 0, false
	}
	return abi.SafeMulU32(o.WordSize, uint32(words))
}
