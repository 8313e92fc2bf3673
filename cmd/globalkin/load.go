package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/globalkin/internal/export"
	"github.com/san-kum/globalkin/internal/tecplot"
	"github.com/san-kum/globalkin/internal/tui"
	"github.com/san-kum/globalkin/internal/viz"
)

const previewBytes = 500

// readTables parses every .tec path and previews the rest. A file that
// fails is reported and skipped.
func readTables(paths []string) []*tecplot.Table {
	var tecPaths []string
	for _, path := range paths {
		if strings.EqualFold(filepath.Ext(path), ".tec") {
			tecPaths = append(tecPaths, path)
			continue
		}
		if err := preview(os.Stdout, path); err != nil {
			fmt.Println(viz.StatusError.Render(fmt.Sprintf("error processing %s: %v", path, err)))
		}
	}

	tables, errs := tecplot.LoadAll(tecPaths)
	for _, err := range errs {
		fmt.Println(viz.StatusError.Render(err.Error()))
	}
	return tables
}

func preview(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, previewBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return err
	}

	fmt.Fprintf(w, "\n--- %s ---\n", filepath.Base(path))
	fmt.Fprintln(w, strings.ToValidUTF8(string(buf[:n]), ""))
	return nil
}

func loadFiles(cmd *cobra.Command, args []string) error {
	tables := readTables(args)
	if len(tables) == 0 {
		fmt.Println("\nno .tec files loaded for plotting")
		return nil
	}

	for _, t := range tables {
		fmt.Printf("\nloaded %s with variables:\n", t.Name)
		for i, name := range t.Species() {
			fmt.Printf("  %d: %s %s\n", i+1, name, viz.Subtle.Render("["+viz.Unit(name)+"]"))
		}
	}

	for _, name := range plotSpecies {
		for _, m := range matchOrSuggest(tables, name) {
			axis := m.Table.Axis()
			unit := viz.Unit(m.Column.Name)
			opts := viz.DefaultPlotOptions()
			opts.Log = viz.ShouldLog(m.Column.Values)
			graph := viz.Plot(m.Column.Values, fmt.Sprintf("%s [%s] vs %s (%s)", m.Column.Name, unit, axis.Name, m.Table.Name), opts)
			if graph == "" {
				fmt.Println(viz.StatusWarn.Render("nothing to plot for " + m.Column.Name))
				continue
			}
			fmt.Println()
			fmt.Println(graph)
		}
	}

	for _, name := range saveSpecies {
		for _, m := range matchOrSuggest(tables, name) {
			axis := m.Table.Axis()
			path, err := export.SaveSpecies(speciesDir, axis.Name, axis.Values, m.Column.Name, m.Column.Values)
			if err != nil {
				fmt.Println(viz.StatusError.Render(fmt.Sprintf("error saving %s: %v", m.Column.Name, err)))
				continue
			}
			fmt.Println(viz.StatusOK.Render(fmt.Sprintf("saved %s data to %s", m.Column.Name, path)))
		}
	}
	return nil
}

// matchOrSuggest returns the exact matches for name, or prints the species
// containing it when there are none.
func matchOrSuggest(tables []*tecplot.Table, name string) []tecplot.Match {
	matches := tecplot.Find(tables, name)
	if len(matches) > 0 {
		return matches
	}

	fmt.Println(viz.StatusWarn.Render(fmt.Sprintf("no exact match found for '%s'. available species:", name)))
	for _, t := range tables {
		fmt.Printf("\nin %s:\n", t.Name)
		for _, s := range t.Suggest(name) {
			fmt.Printf("  - %s\n", s)
		}
	}
	return nil
}

func browseFiles(cmd *cobra.Command, args []string) error {
	tables := readTables(args)
	if len(tables) == 0 {
		return fmt.Errorf("no .tec files loaded")
	}

	p := tea.NewProgram(tui.NewBrowser(tables, speciesDir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
