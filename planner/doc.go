// Package planner decides how a value is stored in an existential container
// and computes the container's footprint.
//
// # Decision
//
// Given a TypeDescriptor, a CapabilitySet and whether the concrete type is
// reference-semantic, the planner picks one of three shapes:
//
//   - reference: one word for the object pointer plus one dispatch table per
//     capability. No type tag and no inline buffer; the object carries its
//     own type identity.
//   - inline: a type tag word, the fixed inline buffer holding the value, and
//     one dispatch table per capability.
//   - boxed: same words as inline, but the first buffer word points at a heap
//     box holding the value. The buffer never shrinks.
//
// The reference shape is used when the caller marks the type reference-only
// or a capability requires a reference representation. Such a capability
// fails with a constraint error when the descriptor is value-semantic. A
// reference type stored without that constraint gets the inline shape, its
// pointer occupying the first buffer word.
//
// Marker capabilities (no operations) add no dispatch table.
//
// # Configuration
//
// Options fix the word size, the inline buffer capacity and the largest
// accepted alignment when the Planner is built:
//
//	p, err := planner.New(planner.Options{WordSize: 4, InlineBufferBytes: 12, MaxAlignment: 8})
//
// # Concurrency
//
// Plan is a pure function of its inputs and the planner options. A Planner
// may be shared across goroutines without locking. Memo adds an optional
// concurrency-safe cache on top.
package planner
