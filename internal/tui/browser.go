package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/globalkin/internal/export"
	"github.com/san-kum/globalkin/internal/tecplot"
	"github.com/san-kum/globalkin/internal/viz"
)

type entry struct {
	table  *tecplot.Table
	column *tecplot.Column
}

type mode int

const (
	modeList mode = iota
	modePlot
)

// Browser lists every species of the loaded tables. Enter plots the one
// under the cursor, s saves it as text into the output directory.
type Browser struct {
	entries []entry
	cursor  int
	mode    mode
	outDir  string
	status  string
	width   int
	height  int
}

func NewBrowser(tables []*tecplot.Table, outDir string) Browser {
	b := Browser{outDir: outDir, width: 80, height: 24}
	for _, t := range tables {
		for i := 1; i < len(t.Columns); i++ {
			b.entries = append(b.entries, entry{table: t, column: &t.Columns[i]})
		}
	}
	return b
}

func (b Browser) Init() tea.Cmd { return nil }

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		return b, nil
	case tea.KeyMsg:
		return b.handleKey(msg)
	}
	return b, nil
}

func (b Browser) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return b, tea.Quit
	case "up", "k":
		if b.mode == modeList && b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		if b.mode == modeList && b.cursor < len(b.entries)-1 {
			b.cursor++
		}
	case "enter", "p":
		if len(b.entries) > 0 {
			b.mode = modePlot
			b.status = ""
		}
	case "esc", "backspace":
		b.mode = modeList
	case "s":
		b.status = b.save()
	}
	return b, nil
}

func (b Browser) save() string {
	e, ok := b.current()
	if !ok {
		return "nothing to save"
	}
	axis := e.table.Axis()
	path, err := export.SaveSpecies(b.outDir, axis.Name, axis.Values, e.column.Name, e.column.Values)
	if err != nil {
		return viz.StatusError.Render(fmt.Sprintf("save %s: %v", e.column.Name, err))
	}
	return viz.StatusOK.Render("saved " + path)
}

func (b Browser) current() (entry, bool) {
	if b.cursor < 0 || b.cursor >= len(b.entries) {
		return entry{}, false
	}
	return b.entries[b.cursor], true
}

func (b Browser) View() string {
	var s strings.Builder
	s.WriteString(viz.HeaderStyle.Render("SPECIES") + "\n\n")

	if len(b.entries) == 0 {
		s.WriteString(viz.Subtle.Render("no species loaded") + "\n\n")
		s.WriteString(viz.KeyHint.Render("q quit") + "\n")
		return s.String()
	}

	switch b.mode {
	case modePlot:
		s.WriteString(b.plotView())
		s.WriteString("\n" + viz.KeyHint.Render("esc back  s save  q quit") + "\n")
	default:
		s.WriteString(b.listView())
		s.WriteString("\n" + viz.KeyHint.Render("↑/↓ move  enter plot  s save  q quit") + "\n")
	}

	if b.status != "" {
		s.WriteString("\n" + b.status + "\n")
	}
	return s.String()
}

func (b Browser) listView() string {
	var s strings.Builder

	// keep the cursor on screen
	rows := max(b.height-8, 5)
	start := 0
	if b.cursor >= rows {
		start = b.cursor - rows + 1
	}
	end := min(start+rows, len(b.entries))

	for i := start; i < end; i++ {
		e := b.entries[i]
		line := fmt.Sprintf("%-24s %s", e.column.Name, viz.Subtle.Render(e.table.Name))
		if i == b.cursor {
			s.WriteString(viz.Selected.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	return s.String()
}

func (b Browser) plotView() string {
	e, _ := b.current()
	axis := e.table.Axis()
	unit := viz.Unit(e.column.Name)

	opts := viz.PlotOptions{
		Height: max(b.height-12, 6),
		Width:  max(b.width-12, 20),
		Log:    viz.ShouldLog(e.column.Values),
	}
	caption := fmt.Sprintf("%s [%s] vs %s (%s)", e.column.Name, unit, axis.Name, e.table.Name)
	graph := viz.Plot(e.column.Values, caption, opts)
	if graph == "" {
		return viz.StatusWarn.Render("nothing to plot for "+e.column.Name) + "\n"
	}
	return viz.Panel.Render(graph) + "\n"
}
