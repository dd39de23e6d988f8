package planner

import (
	"strconv"

	"github.com/wippyai/existential"
	"github.com/wippyai/existential/errors"
)

// Query is one Plan invocation.
type Query struct {
	Descriptor    existential.TypeDescriptor
	Capabilities  existential.CapabilitySet
	ReferenceOnly bool
}

// PlanMany plans every query in order. It stops at the first failure and
// the returned error's path starts with the failing index.
func (p *Planner) PlanMany(queries []Query) ([]existential.ContainerShape, error) {
	shapes := make([]existential.ContainerShape, len(queries))
	for i, q := range queries {
		shape, err := p.Plan(q.Descriptor, q.Capabilities, q.ReferenceOnly)
		if err != nil {
			return nil, errors.WithPath(err, strconv.Itoa(i))
		}
		shapes[i] = shape
	}
	return shapes, nil
}

// SequenceFootprint is the memory used by a contiguous array of containers
// sharing one capability set.
type SequenceFootprint struct {
	Shapes []existential.ContainerShape
	Count  int
	// Stride is the size of one element container.
	Stride uint32
	// InlineBytes is Count*Stride, the array storage itself.
	InlineBytes uint64
	// HeapBytes sums the boxes of elements that did not fit inline.
	HeapBytes uint64
}

// PlanSequence plans an array whose elements are all containers for caps.
// The container shape is fixed by caps: every element has the same stride,
// only the box flag and heap usage vary per element.
func (p *Planner) PlanSequence(elems []existential.TypeDescriptor, caps existential.CapabilitySet) (SequenceFootprint, error) {
	fp := SequenceFootprint{
		Shapes: make([]existential.ContainerShape, len(elems)),
		Count:  len(elems),
	}
	var stride existential.ContainerShape
	var err error
	if _, ok := caps.RequiresReference(); ok {
		stride, err = p.referenceShape(caps)
	} else {
		stride, err = p.valueShape(existential.TypeDescriptor{Size: 1, Align: 1}, caps)
	}
	if err != nil {
		return SequenceFootprint{}, err
	}
	fp.Stride = stride.TotalSize

	for i, desc := range elems {
		shape, err := p.Plan(desc, caps, false)
		if err != nil {
			return SequenceFootprint{}, errors.WithPath(err, strconv.Itoa(i))
		}
		fp.Shapes[i] = shape
		fp.HeapBytes += uint64(shape.BoxBytes)
	}

	fp.InlineBytes = uint64(fp.Stride) * uint64(fp.Count)
	return fp, nil
}
