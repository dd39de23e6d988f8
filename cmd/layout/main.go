package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/existential"
	"github.com/wippyai/existential/catalog"
	"github.com/wippyai/existential/errors"
	"github.com/wippyai/existential/planner"
	"github.com/wippyai/existential/witlayout"
)

type config struct {
	name        string
	caps        string
	seq         string
	catalogFile string
	witFile     string
	size        uint
	align       uint
	word        uint
	buffer      uint
	maxAlign    uint
	refOnly     bool
	refType     bool
	useDefault  bool
	interactive bool
	verbose     bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.name, "name", "T", "Type name")
	flag.UintVar(&cfg.size, "size", 0, "Type size in bytes")
	flag.UintVar(&cfg.align, "align", 8, "Type alignment in bytes")
	flag.BoolVar(&cfg.refType, "reftype", false, "Type is reference-semantic")
	flag.StringVar(&cfg.caps, "caps", "", "Capabilities (P,Q,COnly:ref,AnyObject:ref:marker)")
	flag.BoolVar(&cfg.refOnly, "ref", false, "Plan the compact reference container")
	flag.UintVar(&cfg.word, "word", uint(existential.DefaultWordSize), "Word size in bytes")
	flag.UintVar(&cfg.buffer, "buffer", uint(existential.DefaultInlineBufferBytes), "Inline buffer size in bytes")
	flag.UintVar(&cfg.maxAlign, "maxalign", uint(existential.DefaultMaxAlignment), "Largest accepted alignment")
	flag.StringVar(&cfg.catalogFile, "catalog", "", "Evaluate a YAML catalog")
	flag.BoolVar(&cfg.useDefault, "default", false, "Evaluate the built-in catalog")
	flag.StringVar(&cfg.seq, "seq", "", "Plan an array of catalog types (Int,String,UIView) behind -caps")
	flag.StringVar(&cfg.witFile, "wit", "", "Plan every type of a WIT resolve (JSON)")
	flag.BoolVar(&cfg.interactive, "i", false, "Interactive mode with TUI")
	flag.BoolVar(&cfg.verbose, "v", false, "Debug logging")
	flag.Parse()

	if cfg.verbose {
		log, err := zap.NewDevelopment()
		if err == nil {
			planner.SetLogger(log)
			catalog.SetLogger(log)
			witlayout.SetLogger(log)
			defer log.Sync()
		}
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))

	if cfg.interactive {
		if !styled {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, newRenderer(styled)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config, r renderer) error {
	if err := cfg.check(); err != nil {
		return err
	}
	switch {
	case cfg.witFile != "":
		return runWIT(cfg.witFile, r)
	case cfg.catalogFile != "" || cfg.useDefault:
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		if cfg.seq != "" {
			return runSequence(cfg, cat, r)
		}
		return runCatalog(cat, r)
	case cfg.seq != "":
		return runSequence(cfg, catalog.Default(), r)
	case cfg.size == 0 && flag.NFlag() == 0:
		flag.Usage()
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage: layout -size 32 -align 8 -caps P,Q [-ref]")
		fmt.Fprintln(os.Stderr, "       layout -default | -catalog file.yaml")
		fmt.Fprintln(os.Stderr, "       layout -wit resolve.json")
		fmt.Fprintln(os.Stderr, "       layout -i  (interactive mode)")
		return nil
	default:
		return runPlan(cfg, r)
	}
}

// check rejects numeric flags that do not fit the planner's uint32 fields.
func (cfg config) check() error {
	for _, f := range []struct {
		name  string
		value uint
	}{
		{"size", cfg.size},
		{"align", cfg.align},
		{"word", cfg.word},
		{"buffer", cfg.buffer},
		{"maxalign", cfg.maxAlign},
	} {
		if uint64(f.value) > math.MaxUint32 {
			return errors.InvalidConfig(f.name, f.value, fmt.Sprintf("must not exceed %d", uint32(math.MaxUint32)))
		}
	}
	return nil
}

func newPlanner(cfg config) (*planner.Planner, error) {
	return planner.New(planner.Options{
		WordSize:          uint32(cfg.word),
		InlineBufferBytes: uint32(cfg.buffer),
		MaxAlignment:      uint32(cfg.maxAlign),
	})
}

func runPlan(cfg config, r renderer) error {
	p, err := newPlanner(cfg)
	if err != nil {
		return err
	}
	caps, err := parseCapabilities(cfg.caps)
	if err != nil {
		return err
	}
	desc := existential.TypeDescriptor{
		Name:      cfg.name,
		Size:      uint32(cfg.size),
		Align:     uint32(cfg.align),
		Reference: cfg.refType,
	}

	shape, err := p.Plan(desc, caps, cfg.refOnly)
	if err != nil {
		return err
	}
	fmt.Println(r.shape(desc, caps, shape))
	return nil
}

func loadCatalog(cfg config) (*catalog.Catalog, error) {
	if cfg.catalogFile != "" {
		return catalog.Load(cfg.catalogFile)
	}
	return catalog.Default(), nil
}

func runCatalog(cat *catalog.Catalog, r renderer) error {
	p, err := cat.NewPlanner()
	if err != nil {
		return err
	}
	fmt.Println(r.results(cat.Evaluate(p)))
	return nil
}

func runSequence(cfg config, cat *catalog.Catalog, r renderer) error {
	p, err := cat.NewPlanner()
	if err != nil {
		return err
	}
	var names []string
	if strings.TrimSpace(cfg.caps) != "" {
		names = splitList(cfg.caps)
	}
	caps, err := cat.CapabilitySet(names...)
	if err != nil {
		return err
	}

	var elems []existential.TypeDescriptor
	for _, name := range splitList(cfg.seq) {
		desc, ok := cat.Descriptor(name)
		if !ok {
			return fmt.Errorf("unknown type %q", name)
		}
		elems = append(elems, desc)
	}

	fp, err := p.PlanSequence(elems, caps)
	if err != nil {
		return err
	}
	fmt.Println(r.sequence(elems, caps, fp))
	return nil
}

func runWIT(path string, r renderer) error {
	set, err := witlayout.LoadJSON(path)
	if err != nil {
		return err
	}
	p, err := planner.New(witlayout.Options())
	if err != nil {
		return err
	}

	shapes, failed := set.Plan(p)
	fmt.Println(r.witTypes(set, shapes, failed))
	return nil
}

// parseCapabilities reads "P,Q,COnly:ref,AnyObject:ref:marker". Names known
// to the built-in catalog pick up its flags when given without suffixes.
func parseCapabilities(s string) (existential.CapabilitySet, error) {
	known := catalog.Default()

	var caps []existential.Capability
	for _, item := range splitList(s) {
		parts := strings.Split(item, ":")
		c := existential.Capability{Name: parts[0]}
		if c.Name == "" {
			return existential.CapabilitySet{}, fmt.Errorf("empty capability name in %q", s)
		}
		if len(parts) == 1 {
			if set, err := known.CapabilitySet(c.Name); err == nil {
				caps = append(caps, set.Capabilities()...)
				continue
			}
		}
		for _, opt := range parts[1:] {
			switch opt {
			case "ref":
				c.ReferenceOnly = true
			case "marker":
				c.Marker = true
			default:
				return existential.CapabilitySet{}, fmt.Errorf("unknown capability flag %q", opt)
			}
		}
		caps = append(caps, c)
	}
	return existential.NewCapabilitySet(caps...), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
