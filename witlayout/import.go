package witlayout

import (
	"io"
	"os"
	"sort"

	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/existential"
	"github.com/wippyai/existential/errors"
	"github.com/wippyai/existential/planner"
)

// Options returns planner options for the canonical ABI: 4-byte words, a
// three-word inline buffer and 8-byte maximum alignment.
func Options() planner.Options {
	return planner.Options{
		WordSize:          4,
		InlineBufferBytes: 12,
		MaxAlignment:      8,
	}
}

// Type is a named WIT type and the interface that defines it.
type Type struct {
	Descriptor existential.TypeDescriptor
	Interface  string
}

// Set holds everything imported from one WIT resolve.
type Set struct {
	Types        []Type
	Capabilities []existential.Capability
}

// Capability returns the imported capability named name.
func (s *Set) Capability(name string) (existential.Capability, bool) {
	for _, c := range s.Capabilities {
		if c.Name == name {
			return c, true
		}
	}
	return existential.Capability{}, false
}

// Describe returns the descriptor for a WIT type under the given name.
func Describe(calc *Calculator, name string, t wit.Type) existential.TypeDescriptor {
	info := calc.Calculate(t)
	return existential.TypeDescriptor{
		Name:      name,
		Size:      info.Size,
		Align:     info.Align,
		Reference: info.Reference,
	}
}

// FromResolve imports named interfaces as capabilities and their named type
// definitions as descriptors. Anonymous types and types owned by worlds are
// skipped. Results are sorted by name.
func FromResolve(r *wit.Resolve) (*Set, error) {
	if r == nil {
		return nil, errors.InvalidInput(errors.PhaseImport, "nil resolve")
	}

	calc := NewCalculator()
	set := &Set{}

	seen := make(map[string]bool)
	for _, iface := range r.Interfaces {
		if iface == nil || iface.Name == nil || seen[*iface.Name] {
			continue
		}
		seen[*iface.Name] = true
		set.Capabilities = append(set.Capabilities, existential.Capability{Name: *iface.Name})
	}

	for _, td := range r.TypeDefs {
		if td == nil || td.Name == nil {
			continue
		}
		iface, ok := td.Owner.(*wit.Interface)
		if !ok || iface.Name == nil {
			continue
		}
		set.Types = append(set.Types, Type{
			Descriptor: Describe(calc, *td.Name, td),
			Interface:  *iface.Name,
		})
	}

	sort.Slice(set.Capabilities, func(i, j int) bool {
		return set.Capabilities[i].Name < set.Capabilities[j].Name
	})
	sort.SliceStable(set.Types, func(i, j int) bool {
		a, b := set.Types[i], set.Types[j]
		if a.Interface != b.Interface {
			return a.Interface < b.Interface
		}
		return a.Descriptor.Name < b.Descriptor.Name
	})

	Logger().Debug("imported wit types",
		zap.Int("interfaces", len(set.Capabilities)),
		zap.Int("types", len(set.Types)))

	return set, nil
}

// DecodeJSON reads a JSON-encoded WIT resolve (wasm-tools component wit --json).
func DecodeJSON(r io.Reader) (*Set, error) {
	res, err := wit.DecodeJSON(r)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseImport, errors.KindParse, err, "decode wit json")
	}
	return FromResolve(res)
}

// LoadJSON reads a JSON-encoded WIT resolve from path.
func LoadJSON(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseImport, errors.KindNotFound, err, "open "+path)
	}
	defer f.Close()
	return DecodeJSON(f)
}

// Plan plans an "any <interface>" container for every imported type.
// Resource types use the reference shape. Per-type failures are collected
// in the returned map keyed by type name.
func (s *Set) Plan(p *planner.Planner) ([]existential.ContainerShape, map[string]error) {
	shapes := make([]existential.ContainerShape, len(s.Types))
	var failed map[string]error
	for i, t := range s.Types {
		caps := existential.NewCapabilitySet(existential.Capability{Name: t.Interface})
		shape, err := p.Plan(t.Descriptor, caps, t.Descriptor.Reference)
		if err != nil {
			if failed == nil {
				failed = make(map[string]error)
			}
			failed[t.Descriptor.Name] = errors.WithPath(err, t.Interface, t.Descriptor.Name)
			continue
		}
		shapes[i] = shape
	}
	return shapes, failed
}
