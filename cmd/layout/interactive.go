package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/existential"
	"github.com/wippyai/existential/planner"
)

const (
	fieldName = iota
	fieldSize
	fieldAlign
	fieldCaps
	fieldCount
)

var fieldLabels = [fieldCount]string{"name", "size", "align", "caps"}

type interactiveModel struct {
	err      error
	planner  *planner.Planner
	shape    existential.ContainerShape
	desc     existential.TypeDescriptor
	caps     existential.CapabilitySet
	inputs   []textinput.Model
	focusIdx int
	refOnly  bool
	refType  bool
	planned  bool
}

func newInteractiveModel(cfg config, p *planner.Planner) *interactiveModel {
	m := &interactiveModel{
		planner: p,
		refOnly: cfg.refOnly,
		refType: cfg.refType,
		inputs:  make([]textinput.Model, fieldCount),
	}

	initial := [fieldCount]string{cfg.name, "", strconv.FormatUint(uint64(cfg.align), 10), cfg.caps}
	if cfg.size > 0 {
		initial[fieldSize] = strconv.FormatUint(uint64(cfg.size), 10)
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = fmt.Sprintf("%-6s ", fieldLabels[i]+":")
		ti.Width = 40
		ti.SetValue(initial[i])
		m.inputs[i] = ti
	}
	m.inputs[fieldSize].Placeholder = "bytes"
	m.inputs[fieldCaps].Placeholder = "P,Q,AnyObject"
	m.inputs[fieldName].Focus()
	m.replan()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "down":
			m.focus((m.focusIdx + 1) % fieldCount)
			return m, nil

		case "shift+tab", "up":
			m.focus((m.focusIdx + fieldCount - 1) % fieldCount)
			return m, nil

		case "ctrl+r":
			m.refOnly = !m.refOnly
			m.replan()
			return m, nil

		case "ctrl+t":
			m.refType = !m.refType
			m.replan()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	m.replan()
	return m, cmd
}

func (m *interactiveModel) focus(idx int) {
	m.inputs[m.focusIdx].Blur()
	m.focusIdx = idx
	m.inputs[m.focusIdx].Focus()
}

func (m *interactiveModel) replan() {
	m.planned = false
	m.err = nil

	size, err := parseUint32(m.inputs[fieldSize].Value())
	if err != nil {
		m.err = fmt.Errorf("size: %w", err)
		return
	}
	align, err := parseUint32(m.inputs[fieldAlign].Value())
	if err != nil {
		m.err = fmt.Errorf("align: %w", err)
		return
	}
	caps, err := parseCapabilities(m.inputs[fieldCaps].Value())
	if err != nil {
		m.err = err
		return
	}

	m.desc = existential.TypeDescriptor{
		Name:      strings.TrimSpace(m.inputs[fieldName].Value()),
		Size:      size,
		Align:     align,
		Reference: m.refType,
	}
	m.caps = caps
	m.shape, m.err = m.planner.Plan(m.desc, m.caps, m.refOnly)
	m.planned = m.err == nil
}

func parseUint32(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func (m *interactiveModel) View() string {
	r := newRenderer(true)
	var b strings.Builder

	b.WriteString(titleStyle.Render("Container Planner"))
	opts := m.planner.Options()
	b.WriteString(helpStyle.Render(fmt.Sprintf("  word %d B, buffer %d B", opts.WordSize, opts.InlineBufferBytes)))
	b.WriteString("\n\n")

	for _, input := range m.inputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%-6s %v\n", "ref:", m.refOnly)
	fmt.Fprintf(&b, "%-6s %v\n\n", "class:", m.refType)

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.planned:
		b.WriteString(r.shape(m.desc, m.caps, m.shape))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab next field • ctrl+r reference container • ctrl+t reference type • esc quit"))
	return b.String()
}

func runInteractive(cfg config) error {
	if err := cfg.check(); err != nil {
		return err
	}
	p, err := newPlanner(cfg)
	if err != nil {
		return err
	}
	prog := tea.NewProgram(newInteractiveModel(cfg, p), tea.WithAltScreen())
	_, err = prog.Run()
	return err
}
