package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/existential"
	"github.com/wippyai/existential/catalog"
	"github.com/wippyai/existential/planner"
	"github.com/wippyai/existential/witlayout"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	slotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	boxStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// renderer formats planner output, styled only when writing to a terminal.
type renderer struct {
	styled bool
}

func newRenderer(styled bool) renderer {
	return renderer{styled: styled}
}

func (r renderer) style(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}

func (r renderer) title(text string) string {
	if !r.styled {
		return "== " + text + " =="
	}
	return titleStyle.Render(text)
}

func storage(shape existential.ContainerShape) string {
	switch {
	case shape.Reference:
		return "reference"
	case shape.Boxed:
		return fmt.Sprintf("boxed (%d B heap)", shape.BoxBytes)
	default:
		return "inline"
	}
}

func (r renderer) diagram(shape existential.ContainerShape) string {
	text := shape.Diagram()
	if shape.Boxed {
		return r.style(boxStyle, text)
	}
	return r.style(slotStyle, text)
}

func (r renderer) shape(desc existential.TypeDescriptor, caps existential.CapabilitySet, shape existential.ContainerShape) string {
	var b strings.Builder
	b.WriteString(r.title("any " + caps.String()))
	b.WriteString(" holding ")
	b.WriteString(r.style(nameStyle, desc.String()))
	fmt.Fprintf(&b, " (size %d, align %d)\n\n", desc.Size, desc.Align)
	fmt.Fprintf(&b, "  layout     %s\n", r.diagram(shape))
	fmt.Fprintf(&b, "  storage    %s\n", storage(shape))
	fmt.Fprintf(&b, "  buffer     %d words\n", shape.InlineBufferWords)
	fmt.Fprintf(&b, "  dispatch   %d tables\n", shape.DispatchTableCount)
	fmt.Fprintf(&b, "  total      %d bytes", shape.TotalSize)
	return b.String()
}

func (r renderer) results(results []catalog.Result) string {
	width := 0
	for _, res := range results {
		if len(res.Container.Name) > width {
			width = len(res.Container.Name)
		}
	}

	var b strings.Builder
	b.WriteString(r.title("Container layouts"))
	b.WriteString("\n\n")
	for _, res := range results {
		name := fmt.Sprintf("%-*s", width, res.Container.Name)
		b.WriteString("  ")
		b.WriteString(r.style(nameStyle, name))
		if res.Err != nil {
			b.WriteString("  ")
			b.WriteString(r.style(errorStyle, res.Err.Error()))
			b.WriteByte('\n')
			continue
		}
		fmt.Fprintf(&b, "  %4d B  %-22s %s\n", res.Shape.TotalSize, storage(res.Shape), r.diagram(res.Shape))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (r renderer) sequence(elems []existential.TypeDescriptor, caps existential.CapabilitySet, fp planner.SequenceFootprint) string {
	var b strings.Builder
	b.WriteString(r.title(fmt.Sprintf("[any %s] x %d", caps.String(), fp.Count)))
	b.WriteString("\n\n")
	for i, shape := range fp.Shapes {
		fmt.Fprintf(&b, "  [%d] %-12s %-22s %s\n", i, elems[i].String(), storage(shape), r.diagram(shape))
	}
	fmt.Fprintf(&b, "\n  stride %d B, array %d B, heap %d B", fp.Stride, fp.InlineBytes, fp.HeapBytes)
	return b.String()
}

func (r renderer) witTypes(set *witlayout.Set, shapes []existential.ContainerShape, failed map[string]error) string {
	var b strings.Builder
	b.WriteString(r.title("WIT types"))
	b.WriteString("\n\n")
	for i, t := range set.Types {
		name := t.Interface + "/" + t.Descriptor.Name
		if err, ok := failed[t.Descriptor.Name]; ok {
			fmt.Fprintf(&b, "  %-32s %s\n", r.style(nameStyle, name), r.style(errorStyle, err.Error()))
			continue
		}
		fmt.Fprintf(&b, "  %-32s %3d/%d  %4d B  %-22s %s\n",
			r.style(nameStyle, name), t.Descriptor.Size, t.Descriptor.Align,
			shapes[i].TotalSize, storage(shapes[i]), r.diagram(shapes[i]))
	}
	if len(set.Types) == 0 {
		b.WriteString(r.style(helpStyle, "  no named interface types"))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
