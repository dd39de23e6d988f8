package witlayout

import (
	"sync"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/existential/internal/abi"
)

// Info is the canonical ABI layout of one WIT type.
type Info struct {
	// FieldOffs maps record field names to byte offsets.
	FieldOffs map[string]uint32
	Size      uint32
	Align     uint32
	// Reference is set for resources and resource handles.
	Reference bool
}

// Calculator computes layouts, caching results per type definition.
// Thread-safe.
type Calculator struct {
	cache map[*wit.TypeDef]Info
	mu    sync.Mutex
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*wit.TypeDef]Info),
	}
}

func (c *Calculator) Calculate(t wit.Type) Info {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calculate(t)
}

func (c *Calculator) calculate(t wit.Type) Info {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return Info{Size: 1, Align: 1}
	case wit.U16, wit.S16:
		return Info{Size: 2, Align: 2}
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return Info{Size: 4, Align: 4}
	case wit.U64, wit.S64, wit.F64:
		return Info{Size: 8, Align: 8}
	case wit.String:
		return Info{Size: 8, Align: 4} // [ptr: u32, len: u32]
	case *wit.TypeDef:
		return c.calculateTypeDef(typ)
	default:
		return Info{Size: 0, Align: 1}
	}
}

func (c *Calculator) calculateTypeDef(t *wit.TypeDef) Info {
	if cached, ok := c.cache[t]; ok {
		return cached
	}

	var info Info

	switch kind := t.Kind.(type) {
	case *wit.Record:
		names := make([]string, len(kind.Fields))
		types := make([]wit.Type, len(kind.Fields))
		for i, f := range kind.Fields {
			names[i] = f.Name
			types[i] = f.Type
		}
		info = c.sequential(names, types)
	case *wit.Tuple:
		info = c.sequential(nil, kind.Types)
	case *wit.Variant:
		if len(kind.Cases) == 0 {
			info = Info{Size: 0, Align: 1}
			break
		}
		payloads := make([]wit.Type, len(kind.Cases))
		for i, cs := range kind.Cases {
			payloads[i] = cs.Type
		}
		info = c.tagged(len(kind.Cases), payloads)
	case *wit.Enum:
		size := abi.DiscriminantSize(len(kind.Cases))
		info = Info{Size: size, Align: size}
	case *wit.Option:
		info = c.tagged(2, []wit.Type{nil, kind.Type})
	case *wit.Result:
		info = c.tagged(2, []wit.Type{kind.OK, kind.Err})
	case *wit.Flags:
		info = flagsLayout(len(kind.Flags))
	case *wit.List:
		info = Info{Size: 8, Align: 4}
	case *wit.Resource, *wit.Own, *wit.Borrow:
		info = Info{Size: 4, Align: 4, Reference: true}
	case wit.Type:
		info = c.calculate(kind)
	default:
		info = Info{Size: 0, Align: 1}
	}

	c.cache[t] = info
	return info
}

// sequential lays out types one after another, padding each to its
// alignment. names, when non-nil, records field offsets.
func (c *Calculator) sequential(names []string, types []wit.Type) Info {
	if len(types) == 0 {
		return Info{Size: 0, Align: 1}
	}

	var offs map[string]uint32
	if names != nil {
		offs = make(map[string]uint32, len(names))
	}
	maxAlign := uint32(1)
	offset := uint32(0)

	for i, typ := range types {
		elem := c.calculate(typ)
		offset = abi.AlignTo(offset, elem.Align)
		if offs != nil {
			offs[names[i]] = offset
		}
		if elem.Align > maxAlign {
			maxAlign = elem.Align
		}
		offset += elem.Size
	}

	return Info{
		Size:      abi.AlignTo(offset, maxAlign),
		Align:     maxAlign,
		FieldOffs: offs,
	}
}

// tagged lays out a discriminant followed by the largest payload. nil
// payloads are unit cases.
func (c *Calculator) tagged(cases int, payloads []wit.Type) Info {
	discSize := abi.DiscriminantSize(cases)
	maxAlign := discSize
	maxSize := uint32(0)

	for _, typ := range payloads {
		if typ == nil {
			continue
		}
		payload := c.calculate(typ)
		if payload.Align > maxAlign {
			maxAlign = payload.Align
		}
		if payload.Size > maxSize {
			maxSize = payload.Size
		}
	}

	payloadOffset := abi.AlignTo(discSize, maxAlign)
	return Info{
		Size:  abi.AlignTo(payloadOffset+maxSize, maxAlign),
		Align: maxAlign,
	}
}

func flagsLayout(n int) Info {
	switch {
	case n == 0:
		return Info{Size: 0, Align: 1}
	case n <= 8:
		return Info{Size: 1, Align: 1}
	case n <= 16:
		return Info{Size: 2, Align: 2}
	default:
		// one u32 per 32 flags
		return Info{Size: uint32((n+31)/32) * 4, Align: 4}
	}
}
