// Package existential models the memory layout of existential containers:
// fixed-shape values that hold a value of unknown concrete type together with
// the metadata needed to copy, destroy and dynamically dispatch on it.
//
// A container is described by the concrete type it stores and the set of
// capability interfaces that type must satisfy. Small values live inline in a
// fixed buffer; larger values are boxed on the heap and the buffer holds a
// pointer to the box. Reference types skip the buffer entirely.
//
// # Architecture Overview
//
//	existential/         Root package with TypeDescriptor, CapabilitySet, ContainerShape
//	├── planner/         LayoutPlanner: inline vs boxed decision and footprint
//	├── witlayout/       Descriptors and capabilities derived from WIT types
//	├── catalog/         YAML catalogs of types, capabilities and container queries
//	├── errors/          Structured error types
//	└── cmd/layout/      Command line and interactive front end
//
// # Quick Start
//
//	p, err := planner.New(planner.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s32 := existential.TypeDescriptor{Name: "S32", Size: 32, Align: 8}
//	caps := existential.NewCapabilitySet(existential.Capability{Name: "P"})
//
//	shape, err := p.Plan(s32, caps, false)
//	fmt.Println(shape.Boxed, shape.TotalSize) // true 40
//
// # Layout Model
//
// With the default 8-byte word and 24-byte inline buffer:
//
//	Any                  [tag][buf][buf][buf]           32 bytes
//	any P                [tag][buf][buf][buf][P]        40 bytes
//	any P & Q            [tag][buf][buf][buf][P][Q]     48 bytes
//	any P & AnyObject    [ref][P]                       16 bytes
//	any AnyObject        [ref]                           8 bytes
//
// Value containers always carry a type tag so the concrete type can be copied
// and destroyed. Reference containers do not: the referenced object carries
// its own type identity.
//
// # Thread Safety
//
// All types in this package are immutable values. Planner and Memo are safe
// for concurrent use.
package existential
