// Package picker is a virtualized single-selection list for Bubble Tea.
//
// The model owns only selection and scroll state. The viewport is sized
// from the terminal height minus the rows the caller reserves for its own
// chrome, and rendering of each visible item is left to the caller.
package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultMinRows is the smallest viewport used on short terminals.
const DefaultMinRows = 3

// Item is one selectable entry. Key identifies it across SetItems calls.
type Item[T any] struct {
	Key   string
	Value T
}

// Action reports what a key press did.
type Action int

const (
	ActionNone Action = iota
	ActionMoved
	ActionSelect
)

// KeyMap defines the list keybindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Select   key.Binding
}

// DefaultKeyMap returns arrow, vim, paging and enter bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	}
}

// Model is the list state. Methods return an updated copy.
type Model[T any] struct {
	KeyMap KeyMap

	items       []Item[T]
	highlight   int
	windowStart int

	height   int
	reserved int
	minRows  int
}

// New returns an empty list.
func New[T any]() Model[T] {
	return Model[T]{KeyMap: DefaultKeyMap(), minRows: DefaultMinRows}
}

// SetItems replaces the items. The highlighted item stays highlighted if
// its key is still present; otherwise the index is clamped.
func (m Model[T]) SetItems(items []Item[T]) Model[T] {
	prev, hadPrev := m.Selected()
	m.items = items
	if hadPrev {
		for i, it := range items {
			if it.Key == prev.Key {
				m.highlight = i
				break
			}
		}
	}
	m.clamp()
	return m
}

// SetHeight sets the terminal height in rows.
func (m Model[T]) SetHeight(rows int) Model[T] {
	m.height = rows
	m.clamp()
	return m
}

// SetReserved sets how many rows the caller renders around the list.
func (m Model[T]) SetReserved(rows int) Model[T] {
	m.reserved = rows
	m.clamp()
	return m
}

// SetMinRows sets the viewport floor.
func (m Model[T]) SetMinRows(rows int) Model[T] {
	m.minRows = rows
	m.clamp()
	return m
}

// SetHighlight moves the highlight to index i, clamped to the list.
func (m Model[T]) SetHighlight(i int) Model[T] {
	m.highlight = i
	m.clamp()
	return m
}

// Reset moves the highlight and window back to the top.
func (m Model[T]) Reset() Model[T] {
	m.highlight, m.windowStart = 0, 0
	m.clamp()
	return m
}

// ViewportRows is the number of list rows rendered.
func (m Model[T]) ViewportRows() int {
	rows := m.height - m.reserved
	if rows < m.minRows {
		rows = m.minRows
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Len returns the number of items.
func (m Model[T]) Len() int { return len(m.items) }

// Items returns the current items.
func (m Model[T]) Items() []Item[T] { return m.items }

// Highlight returns the highlighted index.
func (m Model[T]) Highlight() int { return m.highlight }

// Selected returns the highlighted item, if any.
func (m Model[T]) Selected() (Item[T], bool) {
	if len(m.items) == 0 {
		return Item[T]{}, false
	}
	return m.items[m.highlight], true
}

// Window returns the visible slice bounds [start, end).
func (m Model[T]) Window() (start, end int) {
	end = m.windowStart + m.ViewportRows()
	if end > len(m.items) {
		end = len(m.items)
	}
	return m.windowStart, end
}

// Update handles navigation keys. Up and down wrap around; paging clamps
// at the ends. Select is reported only for a non-empty list.
func (m Model[T]) Update(msg tea.KeyMsg) (Model[T], Action) {
	n := len(m.items)
	if n == 0 {
		return m, ActionNone
	}

	switch {
	case key.Matches(msg, m.KeyMap.Up):
		m.highlight = (m.highlight - 1 + n) % n
	case key.Matches(msg, m.KeyMap.Down):
		m.highlight = (m.highlight + 1) % n
	case key.Matches(msg, m.KeyMap.PageUp):
		m.highlight -= m.ViewportRows()
	case key.Matches(msg, m.KeyMap.PageDown):
		m.highlight += m.ViewportRows()
	case key.Matches(msg, m.KeyMap.Home):
		m.highlight = 0
	case key.Matches(msg, m.KeyMap.End):
		m.highlight = n - 1
	case key.Matches(msg, m.KeyMap.Select):
		return m, ActionSelect
	default:
		return m, ActionNone
	}

	m.clamp()
	return m, ActionMoved
}

// View renders the visible items, one per line, padded with blank rows to
// the full viewport height. render receives each item's index in the list.
func (m Model[T]) View(render func(i int, item Item[T], highlighted bool) string) string {
	start, end := m.Window()
	rows := make([]string, 0, m.ViewportRows())
	for i := start; i < end; i++ {
		rows = append(rows, render(i, m.items[i], i == m.highlight))
	}
	for len(rows) < m.ViewportRows() {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

// clamp keeps the highlight inside the list and the window around it,
// scrolling as little as possible.
func (m *Model[T]) clamp() {
	n := len(m.items)
	if n == 0 {
		m.highlight, m.windowStart = 0, 0
		return
	}
	if m.highlight < 0 {
		m.highlight = 0
	}
	if m.highlight >= n {
		m.highlight = n - 1
	}

	rows := m.ViewportRows()
	if maxStart := n - rows; m.windowStart > maxStart {
		m.windowStart = maxStart
	}
	if m.windowStart < 0 {
		m.windowStart = 0
	}
	if m.highlight < m.windowStart {
		m.windowStart = m.highlight
	} else if m.highlight >= m.windowStart+rows {
		m.windowStart = m.highlight - rows + 1
	}
}
