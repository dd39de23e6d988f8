package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDescribe Phase = "describe" // descriptor and capability construction
	PhasePlan     Phase = "plan"     // container layout planning
	PhaseConfig   Phase = "config"   // planner options
	PhaseCatalog  Phase = "catalog"  // catalog loading and validation
	PhaseImport   Phase = "import"   // WIT type import
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidDescriptor Kind = "invalid_descriptor"
	KindConstraint        Kind = "constraint"
	KindInvalidConfig     Kind = "invalid_config"
	KindInvalidInput      Kind = "invalid_input"
	KindNotFound          Kind = "not_found"
	KindDuplicate         Kind = "duplicate"
	KindParse             Kind = "parse"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	Type       string
	Capability string
	Detail     string
	Path       []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Type != "" || e.Capability != "" {
		b.WriteString(": ")
		switch {
		case e.Type != "" && e.Capability != "":
			b.WriteString("type ")
			b.WriteString(e.Type)
			b.WriteString(", capability ")
			b.WriteString(e.Capability)
		case e.Type != "":
			b.WriteString("type ")
			b.WriteString(e.Type)
		default:
			b.WriteString("capability ")
			b.WriteString(e.Capability)
		}
	}

	if e.Detail != "" {
		if e.Type != "" || e.Capability != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Phase matches any phase.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase != "" && e.Phase != t.Phase {
			return false
		}
		return e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the input path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type sets the concrete type name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Capability sets the capability name
func (b *Builder) Capability(c string) *Builder {
	b.err.Capability = c
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Sentinels for errors.Is matching across phases.
var (
	ErrInvalidDescriptor = &Error{Kind: KindInvalidDescriptor}
	ErrConstraint        = &Error{Kind: KindConstraint}
)

// Convenience constructors for common error patterns

// InvalidDescriptor creates a malformed type descriptor error
func InvalidDescriptor(path []string, typeName string, value any, detail string) *Error {
	return &Error{
		Phase:  PhasePlan,
		Kind:   KindInvalidDescriptor,
		Path:   path,
		Type:   typeName,
		Value:  value,
		Detail: detail,
	}
}

// Constraint creates a capability/representation mismatch error
func Constraint(path []string, typeName, capability, detail string) *Error {
	return &Error{
		Phase:      PhasePlan,
		Kind:       KindConstraint,
		Path:       path,
		Type:       typeName,
		Capability: capability,
		Detail:     detail,
	}
}

// InvalidConfig creates a planner configuration error
func InvalidConfig(option string, value any, detail string) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidConfig,
		Path:   []string{option},
		Value:  value,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, path []string, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Path:   path,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Duplicate creates a duplicate-name error
func Duplicate(phase Phase, path []string, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicate,
		Path:   path,
		Detail: fmt.Sprintf("duplicate %s %q", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// WithPath returns a copy of err with prefix prepended to its path.
// Non-structured errors are returned unchanged.
func WithPath(err error, prefix ...string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	cp := *e
	cp.Path = append(append([]string(nil), prefix...), e.Path...)
	return &cp
}

// IsInvalidDescriptor reports whether err is a malformed descriptor error
func IsInvalidDescriptor(err error) bool {
	return errors.Is(err, ErrInvalidDescriptor)
}

// IsConstraint reports whether err is a capability/representation mismatch
func IsConstraint(err error) bool {
	return errors.Is(err, ErrConstraint)
}
