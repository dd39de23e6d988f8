package catalog

import (
	"os"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/existential"
	"github.com/wippyai/existential/errors"
	"github.com/wippyai/existential/planner"
)

// Options overrides planner options. Zero fields keep the defaults.
type Options struct {
	WordSize          uint32 `yaml:"word_size,omitempty"`
	InlineBufferBytes uint32 `yaml:"inline_buffer_bytes,omitempty"`
	MaxAlignment      uint32 `yaml:"max_alignment,omitempty"`
}

// Capability is a catalog capability entry.
type Capability struct {
	Name          string `yaml:"name"`
	ReferenceOnly bool   `yaml:"reference_only,omitempty"`
	Marker        bool   `yaml:"marker,omitempty"`
}

// Type is a catalog type entry.
type Type struct {
	Name      string `yaml:"name"`
	Size      uint32 `yaml:"size"`
	Align     uint32 `yaml:"align"`
	Reference bool   `yaml:"reference,omitempty"`
}

// Container is a query: store Type behind Capabilities.
type Container struct {
	Name          string   `yaml:"name"`
	Type          string   `yaml:"type"`
	Capabilities  []string `yaml:"capabilities,omitempty"`
	ReferenceOnly bool     `yaml:"reference_only,omitempty"`
}

// Catalog is a parsed catalog document.
type Catalog struct {
	Options      Options      `yaml:"options,omitempty"`
	Capabilities []Capability `yaml:"capabilities"`
	Types        []Type       `yaml:"types"`
	Containers   []Container  `yaml:"containers"`
}

// Result is the outcome of one container query.
type Result struct {
	Err       error
	Container Container
	Shape     existential.ContainerShape
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(errors.PhaseCatalog, errors.KindParse, err, "yaml unmarshal")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads and parses the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseCatalog, errors.KindNotFound, err, "read "+path)
	}
	return Parse(data)
}

// Marshal encodes the catalog as YAML.
func (c *Catalog) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseCatalog, errors.KindParse, err, "yaml marshal")
	}
	return data, nil
}

// Validate checks names are unique and every reference resolves.
// Descriptor sizes are left to the planner.
func (c *Catalog) Validate() error {
	caps := make(map[string]bool, len(c.Capabilities))
	for i, cp := range c.Capabilities {
		path := []string{"capabilities", strconv.Itoa(i)}
		if cp.Name == "" {
			return errors.New(errors.PhaseCatalog, errors.KindInvalidInput).Path(path...).Detail("missing name").Build()
		}
		if caps[cp.Name] {
			return errors.Duplicate(errors.PhaseCatalog, path, "capability", cp.Name)
		}
		caps[cp.Name] = true
	}

	types := make(map[string]bool, len(c.Types))
	for i, t := range c.Types {
		path := []string{"types", strconv.Itoa(i)}
		if t.Name == "" {
			return errors.New(errors.PhaseCatalog, errors.KindInvalidInput).Path(path...).Detail("missing name").Build()
		}
		if types[t.Name] {
			return errors.Duplicate(errors.PhaseCatalog, path, "type", t.Name)
		}
		types[t.Name] = true
	}

	containers := make(map[string]bool, len(c.Containers))
	for i, ct := range c.Containers {
		path := []string{"containers", strconv.Itoa(i)}
		if ct.Name == "" {
			return errors.New(errors.PhaseCatalog, errors.KindInvalidInput).Path(path...).Detail("missing name").Build()
		}
		if containers[ct.Name] {
			return errors.Duplicate(errors.PhaseCatalog, path, "container", ct.Name)
		}
		containers[ct.Name] = true
		if !types[ct.Type] {
			return errors.NotFound(errors.PhaseCatalog, path, "type", ct.Type)
		}
		for _, name := range ct.Capabilities {
			if !caps[name] {
				return errors.NotFound(errors.PhaseCatalog, path, "capability", name)
			}
		}
	}

	return nil
}

// PlannerOptions merges the catalog overrides into the defaults.
func (c *Catalog) PlannerOptions() planner.Options {
	opts := planner.DefaultOptions()
	if c.Options.WordSize != 0 {
		opts.WordSize = c.Options.WordSize
	}
	if c.Options.InlineBufferBytes != 0 {
		opts.InlineBufferBytes = c.Options.InlineBufferBytes
	}
	if c.Options.MaxAlignment != 0 {
		opts.MaxAlignment = c.Options.MaxAlignment
	}
	return opts
}

// NewPlanner builds a planner from the catalog options.
func (c *Catalog) NewPlanner() (*planner.Planner, error) {
	return planner.New(c.PlannerOptions())
}

// Descriptor returns the type named name.
func (c *Catalog) Descriptor(name string) (existential.TypeDescriptor, bool) {
	for _, t := range c.Types {
		if t.Name == name {
			return existential.TypeDescriptor{Name: t.Name, Size: t.Size, Align: t.Align, Reference: t.Reference}, true
		}
	}
	return existential.TypeDescriptor{}, false
}

// CapabilitySet resolves names into a set. Unknown names are an error.
func (c *Catalog) CapabilitySet(names ...string) (existential.CapabilitySet, error) {
	caps := make([]existential.Capability, 0, len(names))
	for _, name := range names {
		found := false
		for _, cp := range c.Capabilities {
			if cp.Name == name {
				caps = append(caps, existential.Capability{
					Name:          cp.Name,
					ReferenceOnly: cp.ReferenceOnly,
					Marker:        cp.Marker,
				})
				found = true
				break
			}
		}
		if !found {
			return existential.CapabilitySet{}, errors.NotFound(errors.PhaseCatalog, nil, "capability", name)
		}
	}
	return existential.NewCapabilitySet(caps...), nil
}

// Evaluate plans every container query. Planner errors are recorded on the
// result rather than aborting the run.
func (c *Catalog) Evaluate(p *planner.Planner) []Result {
	results := make([]Result, len(c.Containers))
	for i, ct := range c.Containers {
		results[i].Container = ct

		desc, ok := c.Descriptor(ct.Type)
		if !ok {
			results[i].Err = errors.NotFound(errors.PhaseCatalog, []string{"containers", ct.Name}, "type", ct.Type)
			continue
		}
		set, err := c.CapabilitySet(ct.Capabilities...)
		if err != nil {
			results[i].Err = errors.WithPath(err, "containers", ct.Name)
			continue
		}

		shape, err := p.Plan(desc, set, ct.ReferenceOnly)
		if err != nil {
			Logger().Debug("container query failed", zap.String("container", ct.Name), zap.Error(err))
			results[i].Err = errors.WithPath(err, "containers", ct.Name)
			continue
		}
		results[i].Shape = shape
	}
	return results
}
