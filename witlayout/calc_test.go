package witlayout

import (
	"testing"

	"go.bytecodealliance.org/wit"
)

func TestCalculatePrimitives(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		typ   wit.Type
		name  string
		size  uint32
		align uint32
	}{
		{wit.Bool{}, "bool", 1, 1},
		{wit.U8{}, "u8", 1, 1},
		{wit.S16{}, "s16", 2, 2},
		{wit.U32{}, "u32", 4, 4},
		{wit.F32{}, "f32", 4, 4},
		{wit.S64{}, "s64", 8, 8},
		{wit.F64{}, "f64", 8, 8},
		{wit.Char{}, "char", 4, 4},
		{wit.String{}, "string", 8, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := c.Calculate(tc.typ)
			if info.Size != tc.size {
				t.Errorf("size: got %d, want %d", info.Size, tc.size)
			}
			if info.Align != tc.align {
				t.Errorf("align: got %d, want %d", info.Align, tc.align)
			}
			if info.Reference {
				t.Error("primitive reported as reference")
			}
		})
	}
}

func TestCalculateRecord(t *testing.T) {
	c := NewCalculator()

	t.Run("empty", func(t *testing.T) {
		info := c.Calculate(&wit.TypeDef{Kind: &wit.Record{}})
		if info.Size != 0 {
			t.Errorf("size: got %d, want 0", info.Size)
		}
	})

	t.Run("mixed_alignment", func(t *testing.T) {
		record := &wit.Record{
			Fields: []wit.Field{
				{Name: "a", Type: wit.U8{}},
				{Name: "b", Type: wit.U32{}},
				{Name: "c", Type: wit.U8{}},
			},
		}
		info := c.Calculate(&wit.TypeDef{Kind: record})

		if info.FieldOffs["b"] != 4 || info.FieldOffs["c"] != 8 {
			t.Errorf("offsets: %v", info.FieldOffs)
		}
		if info.Size != 12 || info.Align != 4 {
			t.Errorf("got size %d align %d, want 12/4", info.Size, info.Align)
		}
	})

	t.Run("three_u64", func(t *testing.T) {
		record := &wit.Record{
			Fields: []wit.Field{
				{Name: "a", Type: wit.U64{}},
				{Name: "b", Type: wit.U64{}},
				{Name: "c", Type: wit.U64{}},
			},
		}
		info := c.Calculate(&wit.TypeDef{Kind: record})
		if info.Size != 24 || info.Align != 8 {
			t.Errorf("got size %d align %d, want 24/8", info.Size, info.Align)
		}
	})
}

func TestCalculateTuple(t *testing.T) {
	c := NewCalculator()

	info := c.Calculate(&wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.U8{}, wit.U64{}, wit.U8{}}}})
	if info.Size != 24 || info.Align != 8 {
		t.Errorf("got size %d align %d, want 24/8", info.Size, info.Align)
	}
	if info.FieldOffs != nil {
		t.Error("tuples should not record field offsets")
	}
}

func TestCalculateTagged(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		name  string
		kind  wit.TypeDefKind
		size  uint32
		align uint32
	}{
		{"option_u8", &wit.Option{Type: wit.U8{}}, 2, 1},
		{"option_u64", &wit.Option{Type: wit.U64{}}, 16, 8},
		{"result_u32_string", &wit.Result{OK: wit.U32{}, Err: wit.String{}}, 12, 4},
		{"result_unit_unit", &wit.Result{}, 1, 1},
		{"variant_unit", &wit.Variant{Cases: []wit.Case{{Name: "a"}, {Name: "b"}}}, 1, 1},
		{"variant_payload", &wit.Variant{Cases: []wit.Case{{Name: "none"}, {Name: "some", Type: wit.U32{}}}}, 8, 4},
		{"variant_empty", &wit.Variant{}, 0, 1},
		{"enum", &wit.Enum{Cases: []wit.EnumCase{{Name: "x"}, {Name: "y"}}}, 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := c.Calculate(&wit.TypeDef{Kind: tc.kind})
			if info.Size != tc.size || info.Align != tc.align {
				t.Errorf("got size %d align %d, want %d/%d", info.Size, info.Align, tc.size, tc.align)
			}
		})
	}
}

func TestCalculateFlags(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		numFlags  int
		wantSize  uint32
		wantAlign uint32
	}{
		{0, 0, 1},
		{1, 1, 1},
		{8, 1, 1},
		{9, 2, 2},
		{16, 2, 2},
		{17, 4, 4},
		{32, 4, 4},
		{33, 8, 4},
		{65, 12, 4},
	}

	for _, tc := range tests {
		flags := make([]wit.Flag, tc.numFlags)
		for i := range flags {
			flags[i] = wit.Flag{Name: "flag"}
		}
		info := c.Calculate(&wit.TypeDef{Kind: &wit.Flags{Flags: flags}})
		if info.Size != tc.wantSize || info.Align != tc.wantAlign {
			t.Errorf("%d flags: got size %d align %d, want %d/%d",
				tc.numFlags, info.Size, info.Align, tc.wantSize, tc.wantAlign)
		}
	}
}

func TestCalculateHandles(t *testing.T) {
	c := NewCalculator()
	res := &wit.TypeDef{Kind: &wit.Resource{}}

	for _, kind := range []wit.TypeDefKind{&wit.Resource{}, &wit.Own{Type: res}, &wit.Borrow{Type: res}} {
		info := c.Calculate(&wit.TypeDef{Kind: kind})
		if info.Size != 4 || info.Align != 4 || !info.Reference {
			t.Errorf("%T: got %+v, want 4-byte reference handle", kind, info)
		}
	}
}

func TestCalculateListAndAlias(t *testing.T) {
	c := NewCalculator()

	info := c.Calculate(&wit.TypeDef{Kind: &wit.List{Type: wit.U64{}}})
	if info.Size != 8 || info.Align != 4 {
		t.Errorf("list: got size %d align %d, want 8/4", info.Size, info.Align)
	}

	info = c.Calculate(&wit.TypeDef{Kind: wit.U64{}})
	if info.Size != 8 || info.Align != 8 {
		t.Errorf("alias: got size %d align %d, want 8/8", info.Size, info.Align)
	}
}

func TestNestedTypes(t *testing.T) {
	c := NewCalculator()

	inner := &wit.TypeDef{Kind: &wit.Record{
		Fields: []wit.Field{
			{Name: "a", Type: wit.U32{}},
			{Name: "b", Type: wit.U64{}},
		},
	}}
	outer := &wit.TypeDef{Kind: &wit.Record{
		Fields: []wit.Field{
			{Name: "inner", Type: inner},
			{Name: "flag", Type: wit.Bool{}},
		},
	}}

	info := c.Calculate(outer)
	if info.FieldOffs["flag"] != 16 {
		t.Errorf("flag offset: got %d, want 16", info.FieldOffs["flag"])
	}
	if info.Size != 24 {
		t.Errorf("size: got %d, want 24", info.Size)
	}

	again := c.Calculate(outer)
	if again.Size != info.Size || again.Align != info.Align {
		t.Error("cached results should be identical")
	}
}
