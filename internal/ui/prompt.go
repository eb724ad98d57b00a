package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gitfleet/gitfleet/internal/infra/output"
)

var ErrPromptCanceled = errors.New("prompt canceled")

type PromptChoice struct {
	Label string
	Value string
}

// KeyMap holds the configurable picker key bindings. Arrow keys and
// Ctrl+C/Esc always work; these bindings apply while the search box is
// empty.
type KeyMap struct {
	Up   string
	Down string
	Quit string
}

func DefaultKeyMap() KeyMap {
	return KeyMap{Up: "k", Down: "j", Quit: "q"}
}

// PromptRepoMultiSelect lets users pick one or more repositories from a
// filterable list. Space toggles the highlighted entry; Enter confirms
// the selection, or just the highlighted entry when nothing is toggled.
func PromptRepoMultiSelect(title string, choices []PromptChoice, keys KeyMap, theme Theme, useColor bool) ([]string, error) {
	model := newRepoSelectModel(title, choices, keys, theme, useColor)
	prog := tea.NewProgram(model)
	out, err := prog.Run()
	if err != nil {
		return nil, err
	}
	final := out.(repoSelectModel)
	if final.err != nil {
		return nil, final.err
	}
	return append([]string(nil), final.confirmed...), nil
}

type repoSelectModel struct {
	title   string
	choices []PromptChoice
	keys    KeyMap

	theme    Theme
	useColor bool

	search   textinput.Model
	filtered []PromptChoice
	cursor   int
	selected map[string]struct{}
	order    []string

	confirmed []string
	err       error
}

func newRepoSelectModel(title string, choices []PromptChoice, keys KeyMap, theme Theme, useColor bool) repoSelectModel {
	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = "search"
	search.Focus()
	if useColor {
		search.PlaceholderStyle = theme.Muted
	}
	m := repoSelectModel{
		title:    title,
		choices:  choices,
		keys:     keys,
		theme:    theme,
		useColor: useColor,
		search:   search,
		selected: make(map[string]struct{}),
	}
	m.filtered = m.filterChoices()
	return m
}

func (m repoSelectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m repoSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = ErrPromptCanceled
			return m, tea.Quit
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case tea.KeyDown:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		case tea.KeySpace:
			m.toggleHighlighted()
			return m, nil
		case tea.KeyEnter:
			if len(m.order) == 0 {
				m.toggleHighlighted()
			}
			m.confirmed = append([]string(nil), m.order...)
			if len(m.confirmed) == 0 {
				return m, nil
			}
			return m, tea.Quit
		}
		if strings.TrimSpace(m.search.Value()) == "" {
			switch msg.String() {
			case m.keys.Quit:
				m.err = ErrPromptCanceled
				return m, tea.Quit
			case m.keys.Up:
				if m.cursor > 0 {
					m.cursor--
				}
				return m, nil
			case m.keys.Down:
				if m.cursor < len(m.filtered)-1 {
					m.cursor++
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filtered = m.filterChoices()
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	return m, cmd
}

func (m *repoSelectModel) toggleHighlighted() {
	if len(m.filtered) == 0 {
		return
	}
	value := m.filtered[m.cursor].Value
	if _, ok := m.selected[value]; ok {
		delete(m.selected, value)
		for i, v := range m.order {
			if v == value {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
		return
	}
	m.selected[value] = struct{}{}
	m.order = append(m.order, value)
}

func (m repoSelectModel) View() string {
	var b strings.Builder
	header := m.title
	if len(m.order) > 0 {
		header = fmt.Sprintf("%s (%d selected)", m.title, len(m.order))
	}
	if m.useColor {
		header = m.theme.Header.Render(header)
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	title := "Inputs"
	if m.useColor {
		title = m.theme.SectionTitle.Render(title)
	}
	b.WriteString(title)
	b.WriteString("\n")

	prefix := promptPrefix(m.theme, m.useColor)
	label := promptLabel(m.theme, m.useColor, "repo")
	line := fmt.Sprintf("%s%s %s: %s", output.Indent, prefix, label, m.search.View())
	b.WriteString(line)
	b.WriteString("\n")

	if len(m.filtered) == 0 {
		msg := "no matches"
		if m.useColor {
			msg = m.theme.Muted.Render(msg)
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", output.Indent+output.Indent, mutedToken(m.theme, m.useColor, output.LogConnector), msg))
	} else {
		for i, item := range m.filtered {
			marker := "[ ]"
			if _, ok := m.selected[item.Value]; ok {
				marker = "[x]"
				if m.useColor {
					marker = m.theme.Accent.Render(marker)
				}
			}
			display := item.Label
			if i == m.cursor && m.useColor {
				display = lipgloss.NewStyle().Bold(true).Render(display)
			}
			b.WriteString(fmt.Sprintf("%s%s %s %s\n", output.Indent+output.Indent, mutedToken(m.theme, m.useColor, output.LogConnector), marker, display))
		}
	}

	infoPrefix := mutedToken(m.theme, m.useColor, output.StepPrefix)
	b.WriteString(fmt.Sprintf("\n%s%s space: toggle, enter: confirm\n", output.Indent, infoPrefix))
	return b.String()
}

func (m repoSelectModel) filterChoices() []PromptChoice {
	q := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if q == "" {
		return append([]PromptChoice(nil), m.choices...)
	}
	var out []PromptChoice
	for _, item := range m.choices {
		if strings.Contains(strings.ToLower(item.Label), q) || strings.Contains(strings.ToLower(item.Value), q) {
			out = append(out, item)
		}
	}
	return out
}

func promptPrefix(theme Theme, useColor bool) string {
	prefix := output.StepPrefix
	if useColor {
		return theme.Accent.Render(prefix)
	}
	return prefix
}

func promptLabel(theme Theme, useColor bool, label string) string {
	if useColor {
		return theme.Accent.Render(label)
	}
	return label
}

func mutedToken(theme Theme, useColor bool, token string) string {
	if useColor {
		return theme.Muted.Render(token)
	}
	return token
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
