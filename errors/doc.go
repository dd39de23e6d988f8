// Package errors provides structured error types for the layout planner.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending type and capability names, a path into
// the input (catalog entry, batch index, WIT type), and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhasePlan, errors.KindConstraint).
//		Path("containers", "any COnly").
//		Type("S24").
//		Capability("COnly").
//		Detail("capability requires a reference representation").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidDescriptor(path, "S24", "alignment 3 is not a power of two")
//	err := errors.Constraint(path, "S24", "COnly", "value-semantic type")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
