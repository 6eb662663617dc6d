// Package ui implements the interactive terminal explorer: an explorer
// list on the left, an overview pane on the right, and overlay panels for
// the navigation stack and the filter set.
package ui

import (
	"sort"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/objex/internal/predicate"
	"github.com/oakwood-commons/objex/pkg/explore"
)

// Panel identifies which surface currently owns the keyboard.
type Panel int

const (
	PanelExplorer Panel = iota
	PanelFilter
	PanelStack
	PanelHelp
)

// Model is the top-level bubbletea model for the explorer session.
type Model struct {
	stack    *explore.Stack
	engine   *explore.Engine
	registry *predicate.Registry
	log      *logr.Logger

	// Filter state is global: the active predicate set follows the user
	// across pushes, pops, and jumps.
	enabled   map[string]bool
	userPreds []explore.Predicate

	panel        Panel
	filterCursor int
	stackCursor  int
	exprInput    textinput.Model
	exprFocused  bool

	width   int
	height  int
	noColor bool
	th      theme
	status  string

	returned  any
	hasReturn bool
}

// Option configures a Model.
type Option func(*Model)

// WithNoColor disables all styling.
func WithNoColor(noColor bool) Option {
	return func(m *Model) { m.noColor = noColor }
}

// WithLogger attaches a logger for low-volume UI diagnostics.
func WithLogger(log *logr.Logger) Option {
	return func(m *Model) { m.log = log }
}

// WithRegistry supplies the compiler for user filter expressions. Without
// one the expression input reports that filters are unavailable.
func WithRegistry(r *predicate.Registry) Option {
	return func(m *Model) { m.registry = r }
}

// WithPredicates seeds the model's filter state with an initial predicate
// set, typically from CLI flags. Predicates named after a builtin toggle
// that builtin; everything else joins the user expression list. Seeded
// filters behave exactly like ones entered in the filter panel: they
// follow navigation and show up in the panel and the title count.
func WithPredicates(preds []explore.Predicate) Option {
	return func(m *Model) {
		for _, p := range preds {
			if _, ok := predicate.Builtin(p.Name); ok {
				m.enabled[p.Name] = true
				continue
			}
			m.userPreds = append(m.userPreds, p)
		}
	}
}

// New builds the model over an already-initialized stack.
func New(stack *explore.Stack, opts ...Option) *Model {
	ti := textinput.New()
	ti.Placeholder = `expression, e.g. name.contains("conn") || callable`
	ti.CharLimit = 200
	ti.SetWidth(60)
	ti.Prompt = "> "

	discard := logr.Discard()
	m := &Model{
		stack:     stack,
		engine:    stack.Engine(),
		log:       &discard,
		enabled:   make(map[string]bool),
		exprInput: ti,
		width:     80,
		height:    24,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.th = newTheme(m.noColor)
	if len(m.enabled) > 0 || len(m.userPreds) > 0 {
		m.applyFilters()
	}
	return m
}

// Returned reports the value picked with the return key, if any.
func (m *Model) Returned() (any, bool) {
	return m.returned, m.hasReturn
}

// Predicates returns the active predicate set in application order:
// enabled builtins by name, then user expressions in entry order.
func (m *Model) Predicates() []explore.Predicate {
	names := make([]string, 0, len(m.enabled))
	for name, on := range m.enabled {
		if on {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	preds := make([]explore.Predicate, 0, len(names)+len(m.userPreds))
	for _, name := range names {
		if p, ok := predicate.Builtin(name); ok {
			preds = append(preds, p)
		}
	}
	preds = append(preds, m.userPreds...)
	return preds
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.exprInput.SetWidth(max(20, m.width/2-6))
		return m, nil

	case tea.KeyMsg:
		switch m.panel {
		case PanelFilter:
			return m.updateFilter(msg)
		case PanelStack:
			return m.updateStack(msg)
		case PanelHelp:
			m.panel = PanelExplorer
			return m, nil
		default:
			return m.updateExplorer(msg)
		}
	}
	return m, nil
}

func (m *Model) updateExplorer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cur := m.stack.Current()
	m.status = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		cur.MoveDown(m.viewport())
	case "k", "up":
		cur.MoveUp()
	case "g", "home":
		cur.MoveTop()
	case "G", "end":
		cur.MoveBottom(m.viewport())

	case "l", "enter", "space", "right":
		child := cur.Selected()
		if child == nil {
			break
		}
		if !m.stack.Push(child) {
			m.status = child.Name + " has nothing to explore"
			break
		}
		m.applyFilters()

	case "h", "esc", "backspace", "left":
		if !m.stack.Pop() {
			break
		}
		m.applyFilters()

	case "[", "]":
		cur.ToggleCollection()

	case "{":
		cur.Sel.Preview = explore.PreviewRepr
	case "}":
		cur.Sel.Preview = explore.PreviewSource

	case "d":
		cur.Sel.Overview = toggleOverview(cur.Sel.Overview, explore.OverviewDoc)
	case "p":
		cur.Sel.Overview = toggleOverview(cur.Sel.Overview, explore.OverviewValue)

	case "o":
		m.panel = PanelStack
		m.stackCursor = m.stack.Depth() - 1

	case "n", "f":
		m.panel = PanelFilter
		m.filterCursor = 0

	case "c":
		m.clearFilters()

	case "r":
		if child := cur.Selected(); child != nil {
			m.returned = child.Handle
			m.hasReturn = true
			return m, tea.Quit
		}
		m.status = "nothing selected"

	case "?":
		m.panel = PanelHelp
	}
	return m, nil
}

func (m *Model) updateStack(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.stackCursor < m.stack.Depth()-1 {
			m.stackCursor++
		}
	case "k", "up":
		if m.stackCursor > 0 {
			m.stackCursor--
		}
	case "l", "enter", "space":
		if m.stack.Jump(m.stackCursor) {
			m.applyFilters()
		}
		m.panel = PanelExplorer
	case "o", "esc", "q":
		m.panel = PanelExplorer
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.exprFocused {
		switch msg.String() {
		case "enter":
			m.addExpression()
			return m, nil
		case "esc":
			m.exprFocused = false
			m.exprInput.Blur()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.exprInput, cmd = m.exprInput.Update(msg)
		return m, cmd
	}

	names := predicate.BuiltinNames()
	switch msg.String() {
	case "j", "down":
		if m.filterCursor < len(names)-1 {
			m.filterCursor++
		}
	case "k", "up":
		if m.filterCursor > 0 {
			m.filterCursor--
		}
	case "space", "enter", "l":
		name := names[m.filterCursor]
		m.enabled[name] = !m.enabled[name]
		m.applyFilters()
	case "/", "e":
		m.exprFocused = true
		m.exprInput.Focus()
	case "c":
		m.clearFilters()
	case "esc", "n", "q":
		m.panel = PanelExplorer
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// addExpression compiles the typed expression and appends it to the user
// predicate list. Compile errors land in the status line; the input keeps
// its text so the user can fix it.
func (m *Model) addExpression() {
	if m.registry == nil {
		m.status = "expression filters unavailable"
		return
	}
	p, err := m.registry.Compile(m.exprInput.Value())
	if err != nil {
		m.log.V(1).Info("filter expression rejected", "expr", m.exprInput.Value(), "reason", err.Error())
		m.status = err.Error()
		return
	}
	m.userPreds = append(m.userPreds, p)
	m.exprInput.SetValue("")
	m.exprFocused = false
	m.exprInput.Blur()
	m.applyFilters()
}

// applyFilters installs the active predicate set on the current node.
// Filters follow navigation, so this runs after every push, pop, jump,
// and filter edit.
func (m *Model) applyFilters() {
	m.engine.SetPredicates(m.stack.Current().Node, m.Predicates())
}

func (m *Model) clearFilters() {
	m.enabled = make(map[string]bool)
	m.userPreds = nil
	m.engine.ClearPredicates(m.stack.Current().Node)
}

// viewport is the number of list rows the explorer panel can show.
func (m *Model) viewport() int {
	return max(1, m.height-chromeRows)
}

func toggleOverview(current, target explore.OverviewMode) explore.OverviewMode {
	if current == target {
		return explore.OverviewAll
	}
	return target
}
