package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/graphic/pkg/generate"
	"github.com/matzehuels/graphic/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	canvasStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

const (
	canvasWidth  = 41
	canvasHeight = 21
)

// =============================================================================
// BrowseModel - Interactive family browser
// =============================================================================

// BrowseSelection is the family and parameters chosen in the browser.
type BrowseSelection struct {
	Family string
	Params generate.Params
}

// BrowseModel is the bubbletea model for picking a family and its
// parameters with a live preview.
type BrowseModel struct {
	Families []generate.Family
	Cursor   int
	Params   []generate.Params // per family, so switching back keeps edits
	Selected *BrowseSelection

	preview *graph.Graph
}

// NewBrowseModel creates a browser over the registered families.
func NewBrowseModel() BrowseModel {
	fams := generate.Families()
	params := make([]generate.Params, len(fams))
	for i, f := range fams {
		params[i] = f.Defaults()
	}
	m := BrowseModel{Families: fams, Params: params}
	m.refresh()
	return m
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	p := &m.Params[m.Cursor]
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Families)-1 {
			m.Cursor++
		}
	case "right", "l", "+":
		p.N = min(p.N+m.step(), generate.MaxParam)
	case "left", "h", "-":
		p.N -= m.step()
	case "]":
		p.M = min(p.M+1, generate.MaxParam)
	case "[":
		p.M--
	case "e":
		p.DrawEdges = !p.DrawEdges
	case "enter":
		m.Selected = &BrowseSelection{Family: m.Families[m.Cursor].Name, Params: *p}
		return m, tea.Quit
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

// step is the increment of n; antiprisms only come in even sizes.
func (m BrowseModel) step() int {
	if m.Families[m.Cursor].Name == generate.FamilyAntiprism {
		return 2
	}
	return 1
}

// refresh normalises the current parameters and rebuilds the preview.
func (m *BrowseModel) refresh() {
	f := m.Families[m.Cursor]
	p, _ := generate.Normalize(f.Name, m.Params[m.Cursor])
	m.Params[m.Cursor] = p
	m.preview, _ = generate.Generate(f.Name, p)
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Graph Families"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ family  ←/→ n  [/] m  e edges  ⏎ export  q quit"))
	b.WriteString("\n\n")

	var list strings.Builder
	for i, f := range m.Families {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		list.WriteString(style.Render(cursor + f.Title))
		list.WriteString("\n")
	}

	f := m.Families[m.Cursor]
	p := m.Params[m.Cursor]
	var info strings.Builder
	for i, prm := range f.Params {
		v := p.N
		if i == 1 {
			v = p.M
		}
		info.WriteString(fmt.Sprintf("%s = %s  ", prm.Name, StyleNumber.Render(fmt.Sprint(v))))
	}
	if m.preview != nil {
		info.WriteString(listDimStyle.Render(fmt.Sprintf("· %d nodes · %d edges", m.preview.NodeCount(), m.preview.EdgeCount())))
	}

	right := lipgloss.JoinVertical(lipgloss.Left,
		canvasStyle.Render(strings.Join(plot(m.preview, canvasWidth, canvasHeight), "\n")),
		info.String(),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", right))
	b.WriteString("\n")
	return b.String()
}

// plot draws the preview layout of g on a w×h character grid: 'o' for nodes
// and '·' along edges. Preview coordinates span [-0.5, 0.5]².
func plot(g *graph.Graph, w, h int) []string {
	grid := make([][]rune, h)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", w))
	}
	if g == nil {
		return toLines(grid)
	}
	cell := func(n *graph.Node) (int, int) {
		col := int(math.Round((n.Preview.X + 0.5) * float64(w-1)))
		row := int(math.Round((n.Preview.Y + 0.5) * float64(h-1)))
		return min(max(col, 0), w-1), min(max(row, 0), h-1)
	}

	for _, e := range g.Edges() {
		c0, r0 := cell(g.Node(e.Source))
		c1, r1 := cell(g.Node(e.Dest))
		steps := max(abs(c1-c0), abs(r1-r0))
		for s := 1; s < steps; s++ {
			t := float64(s) / float64(steps)
			c := int(math.Round(float64(c0) + t*float64(c1-c0)))
			r := int(math.Round(float64(r0) + t*float64(r1-r0)))
			grid[r][c] = '·'
		}
	}
	for i := range g.Nodes() {
		c, r := cell(g.Node(graph.NodeID(i)))
		grid[r][c] = 'o'
	}
	return toLines(grid)
}

func toLines(grid [][]rune) []string {
	out := make([]string, len(grid))
	for i, row := range grid {
		out[i] = string(row)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
