package generator

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ConflictResolution is what to do with an existing scaffold file.
type ConflictResolution int

const (
	Skip ConflictResolution = iota
	Overwrite
	ShowDiff
	Cancel
)

// ConflictStrategy determines how conflicts are resolved.
type ConflictStrategy interface {
	Resolve(path string, existing, newer []byte) (ConflictResolution, error)
}

// Resolver handles file conflict resolution.
type Resolver struct {
	strategy ConflictStrategy
}

var (
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
)

// NewResolver creates a conflict resolver from the CLI flags.
// Returns an error if --overwrite is combined with --skip or --interactive.
func NewResolver(overwrite, skipExisting, interactive bool) (*Resolver, error) {
	if overwrite && (skipExisting || interactive) {
		return nil, fmt.Errorf("--overwrite cannot be combined with --skip or --interactive")
	}
	if skipExisting && interactive {
		return nil, fmt.Errorf("--skip cannot be combined with --interactive")
	}
	return &Resolver{strategy: selectStrategy(overwrite, skipExisting, interactive)}, nil
}

// Resolve determines what to do with a file that already exists.
func (r *Resolver) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return r.strategy.Resolve(path, existing, newer)
}

func selectStrategy(overwrite, skipExisting, interactive bool) ConflictStrategy {
	switch {
	case overwrite:
		return &ForceStrategy{}
	case interactive:
		return &InteractiveStrategy{}
	default:
		_ = skipExisting // skip is the default policy either way
		return &SkipStrategy{}
	}
}

// ForceStrategy always overwrites.
type ForceStrategy struct{}

func (s *ForceStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Overwrite, nil
}

// SkipStrategy always keeps the existing file.
type SkipStrategy struct{}

func (s *SkipStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Skip, nil
}

// InteractiveStrategy prompts with a menu. When stdin is not a terminal it
// falls back to skipping, so scripted runs never hang on a prompt.
type InteractiveStrategy struct{}

func (s *InteractiveStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return Skip, nil
	}

	for {
		model := newConflictMenuModel(path)
		p := tea.NewProgram(model)
		finalModel, err := p.Run()
		if err != nil {
			return Cancel, fmt.Errorf("showing conflict menu: %w", err)
		}

		result := finalModel.(conflictMenuModel)
		if result.selected == nil {
			return Cancel, nil
		}

		if *result.selected != ShowDiff {
			return *result.selected, nil
		}

		if err := showDiff(path, existing, newer); err != nil {
			return Cancel, err
		}
		// Back to the menu after reviewing the diff.
	}
}

// showDiff prints a short diff inline, or pages a long one in a viewport.
func showDiff(path string, existing, newer []byte) error {
	diff := Diff(path, existing, newer)
	if diff == "" {
		fmt.Println(mutedStyle.Render("Existing file is identical to the generated content."))
		return nil
	}

	if strings.Count(diff, "\n") <= 20 {
		fmt.Println(diff)
		return nil
	}

	model := newDiffPagerModel(path, diff)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("showing diff: %w", err)
	}
	return nil
}

// conflictMenuModel is the bubbletea model for the conflict menu.
type conflictMenuModel struct {
	path     string
	choices  []string
	cursor   int
	selected *ConflictResolution
}

func newConflictMenuModel(path string) conflictMenuModel {
	return conflictMenuModel{
		path: path,
		choices: []string{
			"Show diff and decide",
			"Skip (keep existing file)",
			"Overwrite (replace with generated scaffold)",
			"Cancel operation",
		},
	}
}

func (m conflictMenuModel) Init() tea.Cmd {
	return nil
}

func (m conflictMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter":
			resolution := mapChoiceToResolution(m.cursor)
			m.selected = &resolution
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m conflictMenuModel) View() string {
	var b strings.Builder

	b.WriteString(warningStyle.Render("⚠️  File already exists: ") + titleStyle.Render(m.path) + "\n\n")
	b.WriteString(mutedStyle.Render("    [↑/↓] Navigate    [Enter] Select    [q] Cancel") + "\n\n")

	for i, choice := range m.choices {
		if m.cursor == i {
			b.WriteString("    " + selectedStyle.Render("> "+choice) + "\n")
		} else {
			b.WriteString("      " + choice + "\n")
		}
	}

	return b.String()
}

func mapChoiceToResolution(cursor int) ConflictResolution {
	switch cursor {
	case 0:
		return ShowDiff
	case 1:
		return Skip
	case 2:
		return Overwrite
	default:
		return Cancel
	}
}

// diffPagerModel pages a long diff in a full-screen viewport.
type diffPagerModel struct {
	path     string
	diff     string
	viewport viewport.Model
	ready    bool
}

func newDiffPagerModel(path, diff string) diffPagerModel {
	return diffPagerModel{path: path, diff: diff}
}

func (m diffPagerModel) Init() tea.Cmd {
	return nil
}

func (m diffPagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc", "enter":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-2)
			m.viewport.SetContent(m.diff)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 2
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m diffPagerModel) View() string {
	if !m.ready {
		return "Loading diff..."
	}
	header := titleStyle.Render("Diff: "+m.path) + "\n"
	footer := "\n" + mutedStyle.Render("[↑/↓] Scroll    [q] Return to menu")
	return header + m.viewport.View() + footer
}
