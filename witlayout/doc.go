// Package witlayout derives type descriptors and capabilities from WIT, the
// WebAssembly component model interface language.
//
// Sizes and alignments follow the canonical ABI on a 32-bit linear memory:
//   - Primitives: size equals alignment (u8=1, u32=4, u64=8, etc.)
//   - Records and tuples: fields laid out sequentially with padding
//   - Variants, options, results: discriminant followed by the largest payload
//   - Strings and lists: a (pointer, length) pair, content stored elsewhere
//   - Resources and own/borrow handles: a 32-bit handle, reference-semantic
//
// Every named WIT interface becomes a Capability and every named type defined
// in it becomes a TypeDescriptor. Plan these with Options(), which matches
// the canonical ABI word size.
package witlayout
