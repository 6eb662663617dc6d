package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/objex/internal/format"
	"github.com/oakwood-commons/objex/internal/predicate"
	"github.com/oakwood-commons/objex/pkg/explore"
)

// chromeRows is the vertical space taken by the title, panel borders, and
// the footer; the rest belongs to the explorer list.
const chromeRows = 6

func (m *Model) View() tea.View {
	var body string
	switch m.panel {
	case PanelStack:
		body = m.stackView()
	case PanelFilter:
		body = m.filterView()
	case PanelHelp:
		body = m.helpView()
	default:
		body = m.explorerView()
	}

	sections := []string{m.titleView(), body, m.footerView()}
	v := tea.NewView(lipgloss.JoinVertical(lipgloss.Left, sections...))
	v.AltScreen = true
	return v
}

func (m *Model) titleView() string {
	cur := m.stack.Current()
	title := " " + cur.Node.PathLabel
	if n := len(m.Predicates()); n > 0 {
		title += m.th.Dim.Render(fmt.Sprintf("  [%d filters]", n))
	}
	return m.th.Title.Render(title)
}

func (m *Model) explorerView() string {
	leftWidth := max(30, m.width/2) - 2
	rightWidth := max(20, m.width-leftWidth) - 4

	left := m.th.Border.Width(leftWidth).Render(m.listView(leftWidth))
	right := m.th.Border.Width(rightWidth).Render(m.overviewView(rightWidth))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// listView renders the visible window of the active collection with the
// cursor line highlighted.
func (m *Model) listView(width int) string {
	cur := m.stack.Current()
	cur.Clamp()

	var b strings.Builder
	b.WriteString(m.th.Label.Render(collectionHeader(cur)))
	b.WriteByte('\n')

	viewport := m.viewport()
	n := cur.Len()
	if n == 0 {
		b.WriteString(m.th.Dim.Render("  (empty)"))
		return b.String()
	}
	for i := cur.Sel.Scroll; i < n && i < cur.Sel.Scroll+viewport; i++ {
		line := format.Truncate(cur.Line(i), width-2)
		if i == cur.Sel.Cursor {
			b.WriteString(m.th.Cursor.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func collectionHeader(f *explore.Frame) string {
	switch f.Sel.Collection {
	case explore.CollectionPrivate:
		return "private"
	case explore.CollectionEntries:
		return f.Node.Kind.String() + " entries"
	default:
		return "public"
	}
}

// overviewView describes the node under the cursor: identity facts first,
// then the preview or documentation depending on the overview mode.
func (m *Model) overviewView(width int) string {
	cur := m.stack.Current()
	child := cur.Selected()
	if child == nil {
		return m.th.Dim.Render("nothing selected")
	}

	var b strings.Builder
	write := func(label, value string) {
		b.WriteString(m.th.Label.Render(label+": ") + format.Truncate(value, width-len(label)-2))
		b.WriteByte('\n')
	}

	switch cur.Sel.Overview {
	case explore.OverviewDoc:
		write("doc", child.Facts.Doc)
	case explore.OverviewValue:
		write("value", child.Facts.Repr)
	default:
		write("path", child.PathLabel)
		write("type", child.Facts.TypeLabel)
		if child.Facts.Length != "" {
			write("len", child.Facts.Length)
		}
		if cur.Sel.Preview == explore.PreviewSource && child.Facts.Source != "" {
			b.WriteString(m.th.Dim.Render("source") + "\n")
			b.WriteString(clipLines(child.Facts.Source, m.viewport()-4, width))
		} else {
			write("value", child.Facts.Repr)
			if child.Facts.Doc != explore.NoDoc {
				write("doc", child.Facts.Doc)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) stackView() string {
	var b strings.Builder
	b.WriteString(m.th.Label.Render("navigation stack") + "\n")
	for i, f := range m.stack.Frames() {
		line := fmt.Sprintf("%d. %s  %s", i, f.Node.PathLabel, m.th.Dim.Render(f.Node.Facts.TypeLabel))
		if i == m.stackCursor {
			line = m.th.Cursor.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return m.th.Border.Width(m.width - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) filterView() string {
	var b strings.Builder
	b.WriteString(m.th.Label.Render("filters (OR across all active)") + "\n")

	for i, name := range predicate.BuiltinNames() {
		mark := "[ ]"
		if m.enabled[name] {
			mark = "[x]"
		}
		line := mark + " " + name
		if !m.exprFocused && i == m.filterCursor {
			line = m.th.Cursor.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	for _, p := range m.userPreds {
		b.WriteString("  [x] " + format.Truncate(p.Name, m.width-8) + "\n")
	}

	b.WriteByte('\n')
	b.WriteString(m.exprInput.View())
	return m.th.Border.Width(m.width - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) helpView() string {
	rows := []struct{ keys, what string }{
		{"j/k", "move"},
		{"l/enter", "explore selected"},
		{"h/esc", "go back"},
		{"g/G", "top / bottom"},
		{"[ ]", "public / private members"},
		{"{ }", "value / source preview"},
		{"d", "toggle docstring pane"},
		{"p", "toggle value pane"},
		{"o", "navigation stack"},
		{"n", "filters"},
		{"c", "clear filters"},
		{"r", "return selected and exit"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(m.th.Label.Render("keys") + "\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %-10s %s\n", m.th.FooterKey.Render(r.keys), r.what))
	}
	return m.th.Border.Width(m.width - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) footerView() string {
	if m.status != "" {
		return m.th.Status.Render(" " + m.status)
	}
	hints := []string{"?", "help", "o", "stack", "n", "filter", "r", "return", "q", "quit"}
	var parts []string
	for i := 0; i+1 < len(hints); i += 2 {
		parts = append(parts, m.th.FooterKey.Render(hints[i])+" "+hints[i+1])
	}
	return " " + strings.Join(parts, "  ")
}

// clipLines keeps at most n lines of s, each truncated to the width.
func clipLines(s string, n, width int) string {
	lines := strings.Split(s, "\n")
	if n > 0 && len(lines) > n {
		lines = lines[:n]
	}
	for i, line := range lines {
		lines[i] = format.Truncate(line, width)
	}
	return strings.Join(lines, "\n")
}
