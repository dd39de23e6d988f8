// Package catalog loads named types, capabilities and container queries from
// YAML and evaluates the queries with a planner.
//
// A catalog document looks like:
//
//	options: {word_size: 8, inline_buffer_bytes: 24, max_alignment: 16}
//	capabilities:
//	  - {name: P}
//	  - {name: AnyObject, reference_only: true, marker: true}
//	types:
//	  - {name: S32, size: 32, align: 8}
//	  - {name: K, size: 16, align: 8, reference: true}
//	containers:
//	  - {name: "any P", type: S32, capabilities: [P]}
//
// Default returns the built-in catalog that reproduces the classic layout
// table: Any, any P, any P & Q, any P & AnyObject and any AnyObject.
package catalog
