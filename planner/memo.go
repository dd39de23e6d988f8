package planner

import (
	"sync"
	"sync/atomic"

	"github.com/wippyai/existential"
)

type memoKey struct {
	desc      existential.TypeDescriptor
	caps      string
	reference bool
}

// Memo caches successful Plan results. Plan is deterministic, so a cached
// shape is always identical to a fresh one. Errors are not cached.
// Thread-safe.
type Memo struct {
	planner *Planner
	entries sync.Map // memoKey -> existential.ContainerShape
	hits    atomic.Uint64
}

// NewMemo wraps p with a result cache.
func NewMemo(p *Planner) *Memo {
	return &Memo{planner: p}
}

// Plan returns the cached shape for the inputs, planning on a miss.
func (m *Memo) Plan(desc existential.TypeDescriptor, caps existential.CapabilitySet, referenceOnly bool) (existential.ContainerShape, error) {
	key := memoKey{desc: desc, caps: caps.Key(), reference: referenceOnly}
	if v, ok := m.entries.Load(key); ok {
		m.hits.Add(1)
		return cloneShape(v.(existential.ContainerShape)), nil
	}

	shape, err := m.planner.Plan(desc, caps, referenceOnly)
	if err != nil {
		return existential.ContainerShape{}, err
	}
	m.entries.Store(key, cloneShape(shape))
	return shape, nil
}

// Len returns the number of cached shapes.
func (m *Memo) Len() int {
	n := 0
	m.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Hits returns how many Plan calls were served from the cache.
func (m *Memo) Hits() uint64 {
	return m.hits.Load()
}

// Reset drops all cached shapes.
func (m *Memo) Reset() {
	m.entries.Range(func(k, _ any) bool {
		m.entries.Delete(k)
		return true
	})
	m.hits.Store(0)
}

func cloneShape(s existential.ContainerShape) existential.ContainerShape {
	s.Slots = append([]existential.Slot(nil), s.Slots...)
	return s
}
