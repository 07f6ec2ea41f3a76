package cli

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/constellation/pkg/graph"
	"github.com/matzehuels/constellation/pkg/render"
)

// maxDetailEntries caps the linked entries listed for the selected star.
const maxDetailEntries = 5

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// inspectCommand creates the inspect command, an interactive star browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse the stars of a constellation in the terminal",
		Long: `Browse the stars of a constellation in the terminal.

The input is a topics.json or a *.layout.json file. Stars are listed by
frequency; moving the cursor shows the connected stars and the journal
entries that mention the word. --plain prints the table once instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadAnyGraph(args[0])
			if err != nil {
				return err
			}
			m := newInspectModel(g)
			if plain {
				m.height = len(m.stars)
				_, err := io.WriteString(cmd.OutOrStdout(), m.View()+"\n")
				return err
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print the star table without the interactive view")
	return cmd
}

// loadAnyGraph reads a layout file (by its .layout.json suffix) or a topics
// file and returns the graph inside.
func loadAnyGraph(path string) (graph.Graph, error) {
	if strings.HasSuffix(path, ".layout.json") {
		l, err := graph.ReadLayoutFile(path)
		if err != nil {
			return graph.Graph{}, fmt.Errorf("load layout %s: %w", path, err)
		}
		return l.Graph(), nil
	}
	g, err := graph.ReadGraphFile(path)
	if err != nil {
		return graph.Graph{}, fmt.Errorf("load topics %s: %w", path, err)
	}
	return g, nil
}

// =============================================================================
// inspectModel - Interactive star browser
// =============================================================================

// inspectModel is the bubbletea model behind the inspect command.
type inspectModel struct {
	g      graph.Graph
	stars  []graph.Topic
	cursor int
	offset int
	height int
}

// newInspectModel lists the distinct stars of g, brightest first.
func newInspectModel(g graph.Graph) inspectModel {
	words := g.Words()
	stars := make([]graph.Topic, 0, len(words))
	for _, w := range words {
		t, _ := g.Topic(w)
		stars = append(stars, t)
	}
	slices.SortStableFunc(stars, func(a, b graph.Topic) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return inspectModel{g: g, stars: stars, height: 12}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "home", "g":
			m.move(-len(m.stars))
		case "end", "G":
			m.move(len(m.stars))
		}
	case tea.WindowSizeMsg:
		// Leave room for the title and the detail pane.
		m.height = max(msg.Height-16, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped, and scrolls the window to keep
// it visible.
func (m *inspectModel) move(delta int) {
	if len(m.stars) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.stars)-1)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// current returns the word under the cursor, or "".
func (m inspectModel) current() string {
	if len(m.stars) == 0 {
		return ""
	}
	return m.stars[m.cursor].Word
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(iconStar + " Constellation"))
	b.WriteString("  ")
	b.WriteString(statsLine(m.g.Stats(), false))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.stars) == 0 {
		b.WriteString(listDimStyle.Render("  No stars yet."))
		return b.String()
	}

	b.WriteString(m.starTable())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.stars))))
	b.WriteString("\n\n")
	b.WriteString(m.detail())
	return b.String()
}

func (m inspectModel) starTable() string {
	end := min(m.offset+m.height, len(m.stars))
	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		t := m.stars[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		links := len(m.g.Neighbors(t.Word)) - 1
		rows = append(rows, []string{cursor, t.Word, strconv.Itoa(t.Count), strconv.Itoa(links), strconv.Itoa(len(t.DocumentIDs))})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Star", "Count", "Links", "Entries").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.offset+row == m.cursor {
				return lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}

// detail describes the star under the cursor: its neighbours and the first
// few journal entries that mention it.
func (m inspectModel) detail() string {
	word := m.current()
	sel := render.Highlight(m.g, word)

	var b strings.Builder
	b.WriteString(StyleHighlight.Render(word))
	b.WriteString("\n")

	var neighbours []string
	for _, w := range sel.Words() {
		if w != word {
			neighbours = append(neighbours, w)
		}
	}
	if len(neighbours) == 0 {
		b.WriteString(listDimStyle.Render("  no connections"))
	} else {
		b.WriteString(listDimStyle.Render("  connected: "))
		b.WriteString(StyleValue.Render(strings.Join(neighbours, ", ")))
	}
	b.WriteString("\n")

	entries := m.g.LinkedEntries(word)
	for i, e := range entries {
		if i == maxDetailEntries {
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  … %d more", len(entries)-i)))
			b.WriteString("\n")
			break
		}
		b.WriteString("  " + iconArrow + " " + StyleValue.Render(e.Title))
		if meta := entryMeta(e); meta != "" {
			b.WriteString(" " + listDimStyle.Render(meta))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// entryMeta joins the optional section, mood and date of an entry.
func entryMeta(e graph.Entry) string {
	var parts []string
	for _, s := range []string{e.Section, e.Mood, e.CreatedAt} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " · ") + ")"
}
