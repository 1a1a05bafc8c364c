package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/rescalc/internal/circuit"
	"github.com/agbru/rescalc/internal/config"
	apperrors "github.com/agbru/rescalc/internal/errors"
	"github.com/agbru/rescalc/internal/format"
	"github.com/agbru/rescalc/internal/netlist"
)

// Loader reads and evaluates a netlist, returning its breakdown in
// pre-order.
type Loader func(ctx context.Context) ([]circuit.Subtree, error)

// Options configures the explorer display.
type Options struct {
	Source    string
	Version   string
	Precision int
	SI        bool
}

// LoadedMsg carries the result of a load.
type LoadedMsg struct {
	Subtrees   []circuit.Subtree
	Duration   time.Duration
	Err        error
	Generation uint64
}

// ContextCancelledMsg is sent when the parent context is done.
type ContextCancelledMsg struct {
	Err error
}

// LayoutManager holds terminal dimensions.
type LayoutManager struct {
	width  int
	height int
}

// Layout constants for the explorer.
const (
	headerHeight  = 1
	statusHeight  = 2 // top border + one line
	minBodyHeight = 3
)

// Model is the root bubbletea model of the tree explorer.
type Model struct {
	header HeaderModel
	keymap KeyMap
	help   help.Model

	LayoutManager

	ctx     context.Context
	load    Loader
	options Options

	subtrees   []circuit.Subtree
	collapsed  map[circuit.Path]bool
	rows       []int
	cursor     int // position in rows
	offset     int // first row drawn
	err        error
	loading    bool
	generation uint64
	exitCode   int
}

// NewModel creates a new explorer model. Nothing is loaded until Init runs.
func NewModel(ctx context.Context, load Loader, opts Options) Model {
	if opts.Precision < 1 {
		opts.Precision = format.DefaultDigits
	}
	return Model{
		header:    NewHeaderModel(opts.Version, opts.Source),
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		ctx:       ctx,
		load:      load,
		options:   opts,
		collapsed: make(map[circuit.Path]bool),
		loading:   true,
		exitCode:  apperrors.ExitSuccess,
	}
}

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadCmd(m.ctx, m.load, m.generation), watchContextCmd(m.ctx))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.scrollToCursor()
		return m, nil

	case LoadedMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from previous load
		}
		m.loading = false
		m.err = msg.Err
		m.exitCode = apperrors.ExitCodeFor(msg.Err)
		if msg.Err != nil {
			return m, nil
		}
		selected := m.selected()
		m.subtrees = msg.Subtrees
		m.header.SetLoadTime(msg.Duration)
		m.refreshRows(selected)
		return m, nil

	case ContextCancelledMsg:
		m.exitCode = apperrors.ExitCodeFor(msg.Err)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.scrollToCursor()
		return m, nil

	case key.Matches(msg, m.keymap.Reload):
		m.generation++
		m.loading = true
		return m, loadCmd(m.ctx, m.load, m.generation)
	}

	if len(m.rows) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.moveCursor(-m.bodyHeight())
	case key.Matches(msg, m.keymap.PageDown):
		m.moveCursor(m.bodyHeight())
	case key.Matches(msg, m.keymap.Top):
		m.moveCursor(-len(m.rows))
	case key.Matches(msg, m.keymap.Bottom):
		m.moveCursor(len(m.rows))
	case key.Matches(msg, m.keymap.Expand):
		st := m.subtrees[m.selected()]
		if isComposite(st) {
			delete(m.collapsed, st.Path)
			m.refreshRows(m.selected())
		}
	case key.Matches(msg, m.keymap.Collapse):
		idx := m.selected()
		st := m.subtrees[idx]
		if isComposite(st) && !m.collapsed[st.Path] {
			m.collapsed[st.Path] = true
			m.refreshRows(idx)
		} else if parent := parentIndex(m.subtrees, idx); parent >= 0 {
			m.refreshRows(parent)
		}
	case key.Matches(msg, m.keymap.Toggle):
		st := m.subtrees[m.selected()]
		if isComposite(st) {
			if m.collapsed[st.Path] {
				delete(m.collapsed, st.Path)
			} else {
				m.collapsed[st.Path] = true
			}
			m.refreshRows(m.selected())
		}
	case key.Matches(msg, m.keymap.ExpandAll):
		m.collapsed = make(map[circuit.Path]bool)
		m.refreshRows(m.selected())
	case key.Matches(msg, m.keymap.CollapseAll):
		selected := m.selected()
		for _, st := range m.subtrees {
			if isComposite(st) && st.Depth > 1 {
				m.collapsed[st.Path] = true
			}
		}
		m.refreshRows(selected)
	}
	return m, nil
}

// selected returns the subtree index under the cursor, or 0 when nothing is
// loaded.
func (m Model) selected() int {
	if len(m.rows) == 0 {
		return 0
	}
	return m.rows[m.cursor]
}

// refreshRows recomputes the visible rows and places the cursor on subtree
// idx, or on its closest visible ancestor.
func (m *Model) refreshRows(idx int) {
	m.rows = visibleRows(m.subtrees, m.collapsed)
	m.cursor = rowFor(m.rows, idx)
	m.scrollToCursor()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.scrollToCursor()
}

// scrollToCursor adjusts the offset so the cursor row is drawn.
func (m *Model) scrollToCursor() {
	h := m.bodyHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// bodyHeight returns the number of tree rows that fit on screen.
func (m Model) bodyHeight() int {
	h := m.height - headerHeight - statusHeight - lipgloss.Height(m.help.View(m.keymap))
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

// View renders the explorer.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var body string
	switch {
	case m.err != nil:
		body = errorStyle.Render("Error: " + m.err.Error())
	case m.loading && len(m.rows) == 0:
		body = dimStyle.Render("Loading " + m.options.Source + "...")
	default:
		body = m.renderRows()
	}
	body = lipgloss.NewStyle().Height(m.bodyHeight()).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		body,
		statusStyle.Width(m.width).Render(m.statusLine()),
		m.help.View(m.keymap),
	)
}

func (m Model) renderRows() string {
	end := m.offset + m.bodyHeight()
	if end > len(m.rows) {
		end = len(m.rows)
	}
	lines := make([]string, 0, end-m.offset)
	for pos := m.offset; pos < end; pos++ {
		st := m.subtrees[m.rows[pos]]
		lines = append(lines, renderRow(st, m.collapsed[st.Path], pos == m.cursor, m.options.Precision, m.options.SI))
	}
	return strings.Join(lines, "\n")
}

// statusLine summarizes the netlist and the selected subtree.
func (m Model) statusLine() string {
	if len(m.subtrees) == 0 {
		return ""
	}
	root := m.subtrees[0]
	stats := circuit.Inspect(root.Node)
	st := m.subtrees[m.selected()]
	status := fmt.Sprintf("Total %s | %d nodes, depth %d | %s = %s",
		formatValue(root.Resistance, m.options.Precision, m.options.SI),
		stats.Nodes(), stats.Depth,
		st.Path, formatValue(st.Resistance, m.options.Precision, m.options.SI))
	if m.loading {
		status += dimStyle.Render(" (reloading)")
	}
	return status
}

// ExitCode returns the exit code matching the state of the explorer.
func (m Model) ExitCode() int {
	return m.exitCode
}

// Err returns the last load error, if any.
func (m Model) Err() error {
	return m.err
}

// loadCmd returns a tea.Cmd that runs the loader.
func loadCmd(ctx context.Context, load Loader, gen uint64) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		subtrees, err := load(ctx)
		return LoadedMsg{Subtrees: subtrees, Duration: time.Since(start), Err: err, Generation: gen}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}

// FileLoader returns a Loader reading cfg.File with the netlist and
// evaluator options of cfg.
func FileLoader(cfg config.AppConfig) Loader {
	ev := circuit.NewEvaluator(cfg.EvaluatorOptions())
	opts := cfg.NetlistOptions()
	return func(ctx context.Context) ([]circuit.Subtree, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tree, err := netlist.LoadContext(ctx, cfg.File, opts)
		if err != nil {
			return nil, apperrors.NetlistError{Source: cfg.File, Cause: err}
		}
		subtrees, err := ev.Breakdown(tree)
		if err != nil {
			return nil, apperrors.NetlistError{Source: cfg.File, Cause: err}
		}
		return subtrees, nil
	}
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code. A
// load error still showing when the explorer exits is reported on errOut.
func Run(ctx context.Context, cfg config.AppConfig, version string, errOut io.Writer) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(ctx, FileLoader(cfg), Options{
		Source:    cfg.File,
		Version:   version,
		Precision: cfg.Precision,
		SI:        cfg.SI,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	m, ok := finalModel.(Model)
	if !ok {
		return apperrors.ExitSuccess
	}
	if m.err != nil {
		return apperrors.HandleEvaluationError(m.err, 0, errOut, nil)
	}
	return m.exitCode
}
