package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/elecciones/pkg/election"
	"github.com/matzehuels/elecciones/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// pickCommand creates the pick command: a terminal menu for election type,
// year and chart, followed by a render.
func (c *CLI) pickCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose an election and chart from a menu, then render it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.loadData()
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(NewPickModel(data), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			sel := final.(PickModel).Selected
			if sel == nil {
				printInfo("Nothing selected")
				return nil
			}

			opts := pipeline.Options{
				Election: string(sel.Election),
				Year:     sel.Year,
				Chart:    sel.Chart,
				Formats:  parseFormats(formatsStr),
			}
			setCLIDefaults(&opts)
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// =============================================================================
// PickModel - Interactive chart selection
// =============================================================================

// PickSelection holds the result of the menu.
type PickSelection struct {
	Election election.Type
	Year     int
	Chart    string
}

type pickStage int

const (
	stageType pickStage = iota
	stageYear
	stageChart
)

// PickModel is the bubbletea model for choosing election type, year and
// chart in that order. Years without data for the chosen type are not
// offered, and neither is the hemicycle for executive elections.
type PickModel struct {
	Data     *election.Dataset
	Stage    pickStage
	Cursor   int
	Selected *PickSelection

	election election.Type
	year     int
}

// NewPickModel creates a menu over the years present in data.
func NewPickModel(data *election.Dataset) PickModel {
	return PickModel{Data: data}
}

func (m PickModel) Init() tea.Cmd {
	return nil
}

func (m PickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace", "left", "h":
		if m.Stage > stageType {
			m.Stage--
			m.Cursor = 0
		}
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.choices())-1 {
			m.Cursor++
		}
	case "enter", "right", "l":
		choices := m.choices()
		if len(choices) == 0 {
			return m, nil
		}
		choice := choices[m.Cursor]
		m.Cursor = 0
		switch m.Stage {
		case stageType:
			m.election = election.Type(choice)
			m.Stage = stageYear
		case stageYear:
			m.year, _ = strconv.Atoi(choice)
			m.Stage = stageChart
		case stageChart:
			m.Selected = &PickSelection{Election: m.election, Year: m.year, Chart: choice}
			return m, tea.Quit
		}
	}
	return m, nil
}

// choices lists the entries of the current stage.
func (m PickModel) choices() []string {
	switch m.Stage {
	case stageType:
		out := make([]string, 0, len(election.Types))
		for _, t := range election.Types {
			if len(m.Data.Years(t)) > 0 {
				out = append(out, string(t))
			}
		}
		return out
	case stageYear:
		years := m.Data.Years(m.election)
		out := make([]string, len(years))
		// Most recent first.
		for i, y := range years {
			out[len(years)-1-i] = strconv.Itoa(y)
		}
		return out
	case stageChart:
		out := make([]string, 0, len(pipeline.Charts))
		for _, c := range pipeline.Charts {
			if c == pipeline.ChartHemicycle && m.election != election.Legislative {
				continue
			}
			out = append(out, c)
		}
		return out
	}
	return nil
}

func (m PickModel) View() string {
	var b strings.Builder

	titles := [...]string{"Tipo de elección", "Año", "Gráfica"}
	b.WriteString(StyleTitle.Render(titles[m.Stage]))
	if m.Stage > stageType {
		crumbs := string(m.election)
		if m.Stage > stageYear {
			crumbs += fmt.Sprintf(" %s %d", iconArrow, m.year)
		}
		b.WriteString("  " + listDimStyle.Render(crumbs))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  esc back  q quit"))
	b.WriteString("\n\n")

	for i, choice := range m.choices() {
		label := choice
		if m.Stage == stageType {
			label = election.Type(choice).Label()
		}
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + label))
		} else {
			b.WriteString(listNormalStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
