package planner

import (
	"go.uber.org/zap"

	"github.com/wippyai/existential"
	"github.com/wippyai/existential/errors"
	"github.com/wippyai/existential/internal/abi"
)

// Planner computes container shapes for a fixed set of layout options.
// Thread-safe.
type Planner struct {
	options Options
}

// New creates a Planner after validating opts.
func New(opts Options) (*Planner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Planner{options: opts}, nil
}

// NewWithDefaults creates a Planner with DefaultOptions.
func NewWithDefaults() *Planner {
	return &Planner{options: DefaultOptions()}
}

// Options returns the configuration.
func (p *Planner) Options() Options {
	return p.options
}

// Plan returns the container shape for a value of type desc constrained by
// caps. referenceOnly marks the concrete type as known reference-counted and
// selects the compact reference container.
//
// A capability requiring a reference representation also selects the
// reference container, and fails with a constraint error unless desc is
// declared Reference. A Reference descriptor stored in an unconstrained
// value container occupies one pointer word of the inline buffer.
func (p *Planner) Plan(desc existential.TypeDescriptor, caps existential.CapabilitySet, referenceOnly bool) (existential.ContainerShape, error) {
	if err := p.ValidateDescriptor(desc); err != nil {
		return existential.ContainerShape{}, err
	}

	required, requiresReference := caps.RequiresReference()
	if requiresReference && !desc.Reference {
		return existential.ContainerShape{}, errors.Constraint(nil, desc.String(), required.Name,
			"capability requires a reference type but the descriptor is value-semantic")
	}

	var shape existential.ContainerShape
	var err error
	if referenceOnly || requiresReference {
		shape, err = p.referenceShape(caps)
	} else {
		shape, err = p.valueShape(desc, caps)
	}
	if err != nil {
		return existential.ContainerShape{}, err
	}

	Logger().Debug("planned container",
		zap.Stringer("type", desc),
		zap.Stringer("capabilities", caps),
		zap.Bool("reference", shape.Reference),
		zap.Bool("boxed", shape.Boxed),
		zap.Uint32("total_size", shape.TotalSize))

	return shape, nil
}

// ValidateDescriptor checks size and alignment against the planner options.
func (p *Planner) ValidateDescriptor(desc existential.TypeDescriptor) error {
	if desc.Size == 0 {
		return errors.InvalidDescriptor(nil, desc.String(), desc.Size, "size must be non-zero")
	}
	if !abi.IsPowerOfTwo(desc.Align) {
		return errors.InvalidDescriptor(nil, desc.String(), desc.Align, "alignment must be a non-zero power of two")
	}
	if desc.Align > p.options.MaxAlignment {
		return errors.New(errors.PhasePlan, errors.KindInvalidDescriptor).
			Type(desc.String()).
			Value(desc.Align).
			Detail("alignment %d exceeds maximum %d", desc.Align, p.options.MaxAlignment).
			Build()
	}
	if _, ok := abi.SafeAlignTo(desc.Size, desc.Align); !ok {
		return errors.InvalidDescriptor(nil, desc.String(), desc.Size, "size overflows when rounded to alignment")
	}
	return nil
}

// referenceShape lays out [ref][witness...]. The referenced object carries
// its own type identity, so no tag word is charged.
func (p *Planner) referenceShape(caps existential.CapabilitySet) (existential.ContainerShape, error) {
	dispatched := caps.Dispatched()
	total, ok := p.options.containerSize(1 + len(dispatched))
	if !ok {
		return existential.ContainerShape{}, sizeOverflow(caps)
	}

	slots := make([]existential.Slot, 0, 1+len(dispatched))
	slots = append(slots, existential.Slot{Kind: existential.SlotReference})
	slots = appendDispatch(slots, dispatched)

	return existential.ContainerShape{
		Slots:              slots,
		DispatchTableCount: len(dispatched),
		TotalSize:          total,
		Reference:          true,
	}, nil
}

// valueShape lays out [tag][buf...][witness...], boxing payloads that do not
// fit the buffer.
func (p *Planner) valueShape(desc existential.TypeDescriptor, caps existential.CapabilitySet) (existential.ContainerShape, error) {
	rounded := abi.AlignTo(desc.Size, desc.Align)
	if desc.Reference {
		rounded = p.options.WordSize
	}
	bufferWords := p.options.BufferWords()
	dispatched := caps.Dispatched()
	boxed := rounded > p.options.InlineBufferBytes
	total, ok := p.options.containerSize(1 + bufferWords + len(dispatched))
	if !ok {
		return existential.ContainerShape{}, sizeOverflow(caps)
	}

	slots := make([]existential.Slot, 0, 1+bufferWords+len(dispatched))
	slots = append(slots, existential.Slot{Kind: existential.SlotTypeTag})
	for i := 0; i < bufferWords; i++ {
		kind := existential.SlotInline
		if boxed && i == 0 {
			kind = existential.SlotBoxPointer
		}
		slots = append(slots, existential.Slot{Kind: kind})
	}
	slots = appendDispatch(slots, dispatched)

	shape := existential.ContainerShape{
		Slots:              slots,
		InlineBufferWords:  bufferWords,
		DispatchTableCount: len(dispatched),
		TotalSize:          total,
		Boxed:              boxed,
	}
	if boxed {
		shape.BoxBytes = rounded
	}
	return shape, nil
}

func sizeOverflow(caps existential.CapabilitySet) error {
	return errors.New(errors.PhasePlan, errors.KindInvalidInput).
		Value(caps.DispatchCount()).
		Detail("container for %d dispatch tables overflows uint32", caps.DispatchCount()).
		Build()
}

func appendDispatch(slots []existential.Slot, caps []existential.Capability) []existential.Slot {
	for _, c := range caps {
		slots = append(slots, existential.Slot{Kind: existential.SlotDispatch, Name: c.Name})
	}
	return slots
}
