package cli

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/mondrian/pkg/mondrian"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// Sorting
// =============================================================================

// sortOrder is the ordering of the pathway list.
type sortOrder int

const (
	sortByChange sortOrder = iota // |wFC| descending
	sortByPValue                  // pFDR ascending
	sortByID
)

func (o sortOrder) String() string {
	switch o {
	case sortByPValue:
		return "pFDR"
	case sortByID:
		return "ID"
	default:
		return "|wFC|"
	}
}

func sortBlocks(blocks []mondrian.Block, o sortOrder) {
	slices.SortStableFunc(blocks, func(a, b mondrian.Block) int {
		switch o {
		case sortByPValue:
			if c := cmp.Compare(a.PValue, b.PValue); c != 0 {
				return c
			}
		case sortByChange:
			if c := cmp.Compare(math.Abs(b.FoldChange), math.Abs(a.FoldChange)); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// =============================================================================
// PathwayListModel - Interactive pathway browser
// =============================================================================

// PathwayListModel is the bubbletea model for browsing the blocks of a map.
type PathwayListModel struct {
	Blocks   []mondrian.Block
	Links    map[string]int // connector count per pathway
	Order    sortOrder
	Cursor   int
	Offset   int
	Height   int
	Selected *mondrian.Block
}

// NewPathwayListModel creates a browser over the blocks of l.
func NewPathwayListModel(l mondrian.Layout) PathwayListModel {
	links := make(map[string]int)
	for _, c := range l.Connectors {
		links[c.From]++
		links[c.To]++
	}
	blocks := slices.Clone(l.Blocks)
	sortBlocks(blocks, sortByChange)
	return PathwayListModel{
		Blocks: blocks,
		Links:  links,
		Height: 15,
	}
}

func (m PathwayListModel) Init() tea.Cmd {
	return nil
}

func (m PathwayListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Blocks)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(len(m.Blocks)-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		case "s":
			m.Order = (m.Order + 1) % 3
			m.Blocks = slices.Clone(m.Blocks)
			sortBlocks(m.Blocks, m.Order)
			m.Cursor, m.Offset = 0, 0
		case "enter":
			if len(m.Blocks) == 0 {
				return m, nil
			}
			b := m.Blocks[m.Cursor]
			m.Selected = &b
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PathwayListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Pathways"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("↑/↓ navigate  s sort (%s)  ⏎ details  q quit", m.Order)))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Blocks))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		blk := m.Blocks[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		links := ""
		if n := m.Links[blk.ID]; n > 0 {
			links = fmt.Sprintf("%d", n)
		}
		rows = append(rows, []string{
			cursor,
			categoryStyle(blk.Category).Render(iconTile),
			blk.ID,
			truncate(blk.Name, 40),
			fmt.Sprintf("%+.3f", blk.FoldChange),
			fmt.Sprintf("%.2g", blk.PValue),
			blk.Cell.String(),
			links,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "ID", "Name", "wFC", "pFDR", "Cell", "Links").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Blocks) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col >= 4 {
				base = base.Align(lipgloss.Right)
			}
			if idx == m.Cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			if m.Blocks[idx].Category == mondrian.NonSignificant {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Blocks)), len(m.Blocks))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
