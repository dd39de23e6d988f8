package witlayout

import (
	"strings"
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/existential/errors"
	"github.com/wippyai/existential/planner"
)

func strPtr(s string) *string { return &s }

func testResolve() *wit.Resolve {
	shapes := &wit.Interface{Name: strPtr("shapes")}
	files := &wit.Interface{Name: strPtr("files")}

	point := &wit.TypeDef{
		Name:  strPtr("point"),
		Owner: shapes,
		Kind: &wit.Record{Fields: []wit.Field{
			{Name: "x", Type: wit.F64{}},
			{Name: "y", Type: wit.F64{}},
		}},
	}
	box := &wit.TypeDef{
		Name:  strPtr("box"),
		Owner: shapes,
		Kind:  &wit.Tuple{Types: []wit.Type{point, point}},
	}
	descriptor := &wit.TypeDef{
		Name:  strPtr("descriptor"),
		Owner: files,
		Kind:  &wit.Resource{},
	}
	unit := &wit.TypeDef{
		Name:  strPtr("nothing"),
		Owner: shapes,
		Kind:  &wit.Record{},
	}
	anon := &wit.TypeDef{Owner: shapes, Kind: &wit.List{Type: point}}

	return &wit.Resolve{
		Interfaces: []*wit.Interface{shapes, files, {Name: nil}},
		TypeDefs:   []*wit.TypeDef{point, box, descriptor, unit, anon},
	}
}

func TestFromResolve(t *testing.T) {
	set, err := FromResolve(testResolve())
	if err != nil {
		t.Fatalf("FromResolve: %v", err)
	}

	if len(set.Capabilities) != 2 || set.Capabilities[0].Name != "files" || set.Capabilities[1].Name != "shapes" {
		t.Errorf("Capabilities = %+v", set.Capabilities)
	}
	if _, ok := set.Capability("shapes"); !ok {
		t.Error("shapes capability missing")
	}

	var names []string
	for _, typ := range set.Types {
		names = append(names, typ.Interface+"/"+typ.Descriptor.Name)
	}
	if got := strings.Join(names, ","); got != "files/descriptor,shapes/box,shapes/nothing,shapes/point" {
		t.Errorf("types = %s", got)
	}
}

func TestFromResolveNil(t *testing.T) {
	if _, err := FromResolve(nil); err == nil {
		t.Error("expected error for nil resolve")
	}
}

func TestSetPlan(t *testing.T) {
	set, err := FromResolve(testResolve())
	if err != nil {
		t.Fatalf("FromResolve: %v", err)
	}
	p, err := planner.New(Options())
	if err != nil {
		t.Fatalf("planner.New: %v", err)
	}

	shapes, failed := set.Plan(p)
	if len(failed) != 1 {
		t.Fatalf("failed = %v, want only the empty record", failed)
	}
	if !errors.IsInvalidDescriptor(failed["nothing"]) {
		t.Errorf("nothing: err = %v, want invalid descriptor", failed["nothing"])
	}

	byName := make(map[string]int)
	for i, typ := range set.Types {
		byName[typ.Descriptor.Name] = i
	}

	// point: 16 bytes > 12-byte buffer, boxed; [tag][box][buf][buf][shapes]
	point := shapes[byName["point"]]
	if !point.Boxed || point.TotalSize != 20 || point.BoxBytes != 16 {
		t.Errorf("point: %+v", point)
	}

	// descriptor: resource handle, [ref][files]
	desc := shapes[byName["descriptor"]]
	if !desc.Reference || desc.TotalSize != 8 {
		t.Errorf("descriptor: %+v", desc)
	}
}

func TestDecodeJSONInvalid(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader("not json"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "[import] parse") {
		t.Errorf("err = %v", err)
	}
}

func TestLoadJSONMissingFile(t *testing.T) {
	if _, err := LoadJSON("does/not/exist.json"); err == nil {
		t.Error("expected error for missing file")
	}
}
