package existential

import "strings"

// SlotKind identifies what a container word holds.
type SlotKind uint8

const (
	SlotTypeTag SlotKind = iota
	SlotInline
	SlotBoxPointer
	SlotReference
	SlotDispatch
)

func (k SlotKind) String() string {
	switch k {
	case SlotTypeTag:
		return "tag"
	case SlotInline:
		return "buf"
	case SlotBoxPointer:
		return "box"
	case SlotReference:
		return "ref"
	case SlotDispatch:
		return "witness"
	default:
		return "?"
	}
}

// Slot is one machine word of a container.
type Slot struct {
	Kind SlotKind
	// Name is the capability for dispatch slots, empty otherwise.
	Name string
}

func (s Slot) String() string {
	if s.Kind == SlotDispatch && s.Name != "" {
		return s.Name
	}
	return s.Kind.String()
}

// ContainerShape is the planned layout of one existential container.
type ContainerShape struct {
	Slots              []Slot
	InlineBufferWords  int
	DispatchTableCount int
	TotalSize          uint32
	// BoxBytes is the size of the heap allocation holding a boxed payload.
	BoxBytes  uint32
	Boxed     bool
	Reference bool
}

// Words returns the container size in machine words.
func (s ContainerShape) Words() int {
	return len(s.Slots)
}

// Equal reports whether two shapes are identical.
func (s ContainerShape) Equal(other ContainerShape) bool {
	if s.InlineBufferWords != other.InlineBufferWords ||
		s.DispatchTableCount != other.DispatchTableCount ||
		s.TotalSize != other.TotalSize ||
		s.BoxBytes != other.BoxBytes ||
		s.Boxed != other.Boxed ||
		s.Reference != other.Reference ||
		len(s.Slots) != len(other.Slots) {
		return false
	}
	for i := range s.Slots {
		if s.Slots[i] != other.Slots[i] {
			return false
		}
	}
	return true
}

// Diagram renders the slots as "[tag][buf][buf][buf][P]".
func (s ContainerShape) Diagram() string {
	var b strings.Builder
	for _, slot := range s.Slots {
		b.WriteByte('[')
		b.WriteString(slot.String())
		b.WriteByte(']')
	}
	return b.String()
}
