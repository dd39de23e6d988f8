package abi

import "math"

func SafeMulU32(a, b uint32) (uint32, bool) {
	if b != 0 && a > math.MaxUint32/b {
		return 0, false
	}
	return a * b, true
}

func SafeAddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}

// AlignTo rounds offset up to a multiple of align. align must be a power of two.
func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// SafeAlignTo is AlignTo that reports overflow instead of wrapping.
func SafeAlignTo(offset, align uint32) (uint32, bool) {
	if align == 0 {
		return offset, true
	}
	sum, ok := SafeAddU32(offset, align-1)
	if !ok {
		return 0, false
	}
	return sum &^ (align - 1), true
}

func IsPowerOfTwo(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}

// DiscriminantSize returns the byte width of a tag for n cases.
func DiscriminantSize(n int) uint32 {
	switch {
	case n <= 1<<8:
		return 1
	case n <= 1<<16:
		return 2
	default:
		return 4
	}
}
