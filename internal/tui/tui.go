// Package tui runs the calculator keypad in a terminal.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zephyrtronium/calculator/internal/keypad"
	"github.com/zephyrtronium/calculator/internal/logger"
)

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Press key.Binding
	Clear key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Press: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "press")),
		Clear: key.NewBinding(key.WithKeys("c", "esc"), key.WithHelp("c", "clear")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// shortcuts maps typed letters to function keys.
var shortcuts = map[string]string{
	"s": "sin",
	"o": "cos",
	"t": "tan",
	"r": "sqrt",
}

type styles struct {
	Display lipgloss.Style
	Key     lipgloss.Style
	Focused lipgloss.Style
	Help    lipgloss.Style
}

func defaultStyles() styles {
	cell := lipgloss.NewStyle().Width(8).Align(lipgloss.Center)
	return styles{
		Display: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(30).
			Align(lipgloss.Right).
			Padding(0, 1),
		Key:     cell.Foreground(lipgloss.Color("252")),
		Focused: cell.Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

const (
	helpText  = "arrows/hjkl: move • enter: press • s/o/t/r: sin/cos/tan/sqrt • c: clear • q: quit"
	helpWidth = 32
)

// Model is the bubbletea model of the keypad. It owns the display text.
type Model struct {
	keypad   *keypad.Keypad
	log      *logger.Logger
	keys     keyMap
	styles   styles
	display  string
	row, col int
	quitting bool
}

// New creates a model with an empty display and focus on the first key.
func New(k *keypad.Keypad, log *logger.Logger) Model {
	if log == nil {
		log = logger.Global()
	}
	return Model{
		keypad: k,
		log:    log.WithPrefix("tui"),
		keys:   defaultKeyMap(),
		styles: defaultStyles(),
	}
}

// Display returns the current display text.
func (m Model) Display() string {
	return m.display
}

// Focused returns the label of the focused key.
func (m Model) Focused() string {
	return keypad.Rows[m.row][m.col]
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(km, m.keys.Up):
		m.move(-1, 0)
	case key.Matches(km, m.keys.Down):
		m.move(1, 0)
	case key.Matches(km, m.keys.Left):
		m.move(0, -1)
	case key.Matches(km, m.keys.Right):
		m.move(0, 1)
	case key.Matches(km, m.keys.Press):
		m.press(m.Focused())
	case key.Matches(km, m.keys.Clear):
		m.press(keypad.Clear)
	default:
		s := km.String()
		if label, ok := shortcuts[s]; ok {
			s = label
		}
		if keypad.IsKey(s) {
			m.press(s)
		}
	}
	return m, nil
}

// move shifts the focus, stopping at the edges of the keypad.
func (m *Model) move(dr, dc int) {
	m.row = clamp(m.row+dr, len(keypad.Rows)-1)
	m.col = clamp(m.col+dc, len(keypad.Rows[m.row])-1)
}

func clamp(x, hi int) int {
	if x < 0 {
		return 0
	}
	if x > hi {
		return hi
	}
	return x
}

// press applies a key and moves the focus to it.
func (m *Model) press(label string) {
	display, err := m.keypad.Press(m.display, label)
	if err != nil {
		m.log.Warn("press %q: %v", label, err)
		return
	}
	m.log.Debug("press %q: %q -> %q", label, m.display, display)
	m.display = display
	for r, row := range keypad.Rows {
		for c, l := range row {
			if l == label {
				m.row, m.col = r, c
				return
			}
		}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	display := strings.TrimSpace(m.display)
	if display == "" {
		display = "0"
	}
	b.WriteString(m.styles.Display.Render(display))
	b.WriteByte('\n')
	for r, row := range keypad.Rows {
		cells := make([]string, len(row))
		for c, l := range row {
			if r == m.row && c == m.col {
				cells[c] = m.styles.Focused.Render(l)
			} else {
				cells[c] = m.styles.Key.Render(l)
			}
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteByte('\n')
	}
	b.WriteString(m.styles.Help.Render(wordwrap.String(helpText, helpWidth)))
	return b.String()
}

// Run runs the keypad until the user quits.
func Run(k *keypad.Keypad, log *logger.Logger, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(New(k, log), opts...).Run()
	return err
}
