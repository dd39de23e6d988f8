package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:      PhasePlan,
				Kind:       KindConstraint,
				Path:       []string{"containers", "3"},
				Type:       "S24",
				Capability: "COnly",
				Detail:     "requires reference",
			},
			contains: []string{"[plan]", "constraint", "containers.3", "type S24", "capability COnly", "requires reference"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDescribe,
				Kind:  KindInvalidDescriptor,
			},
			contains: []string{"[describe]", "invalid_descriptor"},
		},
		{
			name: "type only",
			err: &Error{
				Phase:  PhasePlan,
				Kind:   KindInvalidDescriptor,
				Type:   "Empty",
				Detail: "size must be non-zero",
			},
			contains: []string{"type Empty - size must be non-zero"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseCatalog,
				Kind:   KindParse,
				Detail: "bad yaml",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[catalog]", "parse", "bad yaml", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseCatalog,
		Kind:  KindParse,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhasePlan,
		Kind:  KindConstraint,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhasePlan, Kind: KindConstraint}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseCatalog, Kind: KindConstraint}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhasePlan, Kind: KindInvalidDescriptor}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, ErrConstraint) {
		t.Error("phase-less sentinel should match any phase")
	}
	if errors.Is(err, ErrInvalidDescriptor) {
		t.Error("sentinel of another kind should not match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhasePlan, KindConstraint).
		Path("batch", "2").
		Type("S24").
		Capability("COnly").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "reference", "value").
		Build()

	if err.Phase != PhasePlan {
		t.Errorf("Phase = %v, want %v", err.Phase, PhasePlan)
	}
	if err.Kind != KindConstraint {
		t.Errorf("Kind = %v, want %v", err.Kind, KindConstraint)
	}
	if len(err.Path) != 2 || err.Path[0] != "batch" || err.Path[1] != "2" {
		t.Errorf("Path = %v, want [batch 2]", err.Path)
	}
	if err.Type != "S24" || err.Capability != "COnly" {
		t.Errorf("Type=%v Capability=%v", err.Type, err.Capability)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected reference, got value" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InvalidDescriptor", func(t *testing.T) {
		err := InvalidDescriptor(nil, "Zero", uint32(0), "size must be non-zero")
		if !IsInvalidDescriptor(err) {
			t.Errorf("IsInvalidDescriptor(%v) = false", err)
		}
		if IsConstraint(err) {
			t.Error("descriptor error reported as constraint")
		}
	})

	t.Run("Constraint", func(t *testing.T) {
		err := Constraint(nil, "S24", "COnly", "value-semantic type")
		if !IsConstraint(err) {
			t.Errorf("IsConstraint(%v) = false", err)
		}
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		err := InvalidConfig("word_size", uint32(3), "must be a power of two")
		if err.Kind != KindInvalidConfig || err.Path[0] != "word_size" {
			t.Errorf("unexpected error %+v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseCatalog, []string{"containers"}, "type", "S99")
		if !strings.Contains(err.Detail, `"S99"`) {
			t.Errorf("Detail = %v, should quote name", err.Detail)
		}
	})

	t.Run("Duplicate", func(t *testing.T) {
		err := Duplicate(PhaseCatalog, nil, "capability", "P")
		if err.Kind != KindDuplicate {
			t.Errorf("Kind = %v, want %v", err.Kind, KindDuplicate)
		}
	})
}

func TestWithPath(t *testing.T) {
	base := Constraint([]string{"S24"}, "S24", "COnly", "")
	err := WithPath(base, "batch", "1")

	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("WithPath lost the structured error")
	}
	if strings.Join(e.Path, ".") != "batch.1.S24" {
		t.Errorf("Path = %v", e.Path)
	}
	if len(base.Path) != 1 {
		t.Errorf("WithPath mutated original path: %v", base.Path)
	}

	plain := errors.New("plain")
	if WithPath(plain, "x") != plain {
		t.Error("plain errors should pass through")
	}
}
