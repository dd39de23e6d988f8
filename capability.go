package existential

import (
	"sort"
	"strings"
)

// Capability is a named interface a stored type must conform to.
type Capability struct {
	Name string
	// ReferenceOnly requires the stored type to be reference-semantic.
	ReferenceOnly bool
	// Marker capabilities have no operations and contribute no dispatch table,
	// so a container charges one word per non-marker capability. This holds
	// for any marker, not only reference-only ones like AnyObject.
	Marker bool
}

// CapabilitySet is an order-insensitive set of capabilities.
// The zero value is the empty set, i.e. the unconstrained "Any" container.
type CapabilitySet struct {
	caps []Capability // sorted by name, unique
}

// NewCapabilitySet builds a set from caps. Duplicate names keep the first
// occurrence.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	if len(caps) == 0 {
		return CapabilitySet{}
	}

	seen := make(map[string]struct{}, len(caps))
	out := make([]Capability, 0, len(caps))
	for _, c := range caps {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return CapabilitySet{caps: out}
}

// Len returns the number of distinct capabilities.
func (s CapabilitySet) Len() int {
	return len(s.caps)
}

// Empty reports whether the set places no constraint on the stored type.
func (s CapabilitySet) Empty() bool {
	return len(s.caps) == 0
}

// Contains reports whether a capability named name is in the set.
func (s CapabilitySet) Contains(name string) bool {
	i := sort.Search(len(s.caps), func(i int) bool { return s.caps[i].Name >= name })
	return i < len(s.caps) && s.caps[i].Name == name
}

// Capabilities returns a copy of the members in canonical order.
func (s CapabilitySet) Capabilities() []Capability {
	out := make([]Capability, len(s.caps))
	copy(out, s.caps)
	return out
}

// Names returns member names in canonical order.
func (s CapabilitySet) Names() []string {
	names := make([]string, len(s.caps))
	for i, c := range s.caps {
		names[i] = c.Name
	}
	return names
}

// RequiresReference returns the first member that forces a reference
// representation.
func (s CapabilitySet) RequiresReference() (Capability, bool) {
	for _, c := range s.caps {
		if c.ReferenceOnly {
			return c, true
		}
	}
	return Capability{}, false
}

// Dispatched returns the members that need a dispatch table.
func (s CapabilitySet) Dispatched() []Capability {
	var out []Capability
	for _, c := range s.caps {
		if !c.Marker {
			out = append(out, c)
		}
	}
	return out
}

// DispatchCount is the number of dispatch tables a container for this set holds.
func (s CapabilitySet) DispatchCount() int {
	return len(s.Dispatched())
}

// Equal reports whether both sets hold the same capabilities.
func (s CapabilitySet) Equal(other CapabilitySet) bool {
	if len(s.caps) != len(other.caps) {
		return false
	}
	for i := range s.caps {
		if s.caps[i] != other.caps[i] {
			return false
		}
	}
	return true
}

// Key returns a canonical string usable as a map key.
func (s CapabilitySet) Key() string {
	var b strings.Builder
	for i, c := range s.caps {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(c.Name)
		if c.ReferenceOnly {
			b.WriteString("/r")
		}
		if c.Marker {
			b.WriteString("/m")
		}
	}
	return b.String()
}

// String renders the set as a composition, "Any" when empty.
func (s CapabilitySet) String() string {
	if len(s.caps) == 0 {
		return "Any"
	}
	return strings.Join(s.Names(), " & ")
}
