package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/forgelab/dungeonforge/pkg/layout"
)

// Explorer styles
var (
	exploreInfoStyle = lipgloss.NewStyle().Foreground(colorWhite)
	exploreDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	exploreErrStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// ExploreModel - Interactive layout browsing
// =============================================================================

// ExploreModel is the bubbletea model for interactively browsing layouts:
// it regenerates on every seed or method change and renders the grid inline.
type ExploreModel struct {
	Methods []string
	Method  int
	Seed    int64
	Width   int
	Height  int

	result *layout.Result
	err    error
}

// NewExploreModel creates an explorer positioned on the given method and seed.
func NewExploreModel(method string, width, height int, seed int64) ExploreModel {
	m := ExploreModel{
		Methods: layout.MethodNames(),
		Seed:    seed,
		Width:   width,
		Height:  height,
	}
	for i, name := range m.Methods {
		if name == method {
			m.Method = i
		}
	}
	m.regenerate()
	return m
}

// regenerate runs one generation for the current method and seed. Errors are
// kept on the model and rendered instead of the grid.
func (m *ExploreModel) regenerate() {
	m.result, m.err = layout.Generate(layout.Request{
		Method: m.Methods[m.Method],
		Width:  m.Width,
		Height: m.Height,
		Seed:   m.Seed,
	})
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "n", "right", "enter":
			m.Seed++
			m.regenerate()
		case "p", "left":
			m.Seed--
			m.regenerate()
		case "m", "down":
			m.Method = (m.Method + 1) % len(m.Methods)
			m.regenerate()
		case "M", "up":
			m.Method = (m.Method - 1 + len(m.Methods)) % len(m.Methods)
			m.regenerate()
		}
	}
	return m, nil
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Dungeon explorer"))
	b.WriteString("\n")
	b.WriteString(exploreDimStyle.Render("n/p seed  m/M method  q quit"))
	b.WriteString("\n\n")

	info := fmt.Sprintf("%s  seed %d  %dx%d", m.Methods[m.Method], m.Seed, m.Width, m.Height)
	if m.result != nil {
		info += fmt.Sprintf("  %d rooms  %d connections", len(m.result.Rooms), len(m.result.Graph.Edges))
	}
	b.WriteString(exploreInfoStyle.Render(info))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(exploreErrStyle.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(renderGrid(m.result.Grid))
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Explore Command
// =============================================================================

// exploreCommand creates the explore command for interactive browsing.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		method string
		width  int
		height int
		seed   int64
	)

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse generated layouts interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model := NewExploreModel(method, width, height, seed)
			p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", layout.MethodPhysics, "generation method to start with")
	cmd.Flags().IntVar(&width, "width", layout.DefaultWidth, "grid width in tiles")
	cmd.Flags().IntVar(&height, "height", layout.DefaultHeight, "grid height in tiles")
	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "random seed to start with")

	return cmd
}
