package tecplot

import (
	"fmt"
	"strings"

	"github.com/san-kum/globalkin/internal/dynamo"
)

type Column struct {
	Name   string
	Values []float64
}

// Table is one parsed file. Columns[0] is the independent axis.
type Table struct {
	Name    string
	Columns []Column
}

// Axis returns the first column, or nil for an empty table.
func (t *Table) Axis() *Column {
	if len(t.Columns) == 0 {
		return nil
	}
	return &t.Columns[0]
}

// Species returns the names of every column after the axis.
func (t *Table) Species() []string {
	if len(t.Columns) < 2 {
		return nil
	}
	names := make([]string, 0, len(t.Columns)-1)
	for _, c := range t.Columns[1:] {
		names = append(names, c.Name)
	}
	return names
}

// Points is the number of rows.
func (t *Table) Points() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// Lookup finds a species column by case-insensitive exact name.
func (t *Table) Lookup(name string) (*Column, bool) {
	for i := 1; i < len(t.Columns); i++ {
		if strings.EqualFold(t.Columns[i].Name, name) {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// Suggest lists species whose name contains fragment, ignoring case.
func (t *Table) Suggest(fragment string) []string {
	fragment = strings.ToLower(fragment)
	var out []string
	for _, name := range t.Species() {
		if strings.Contains(strings.ToLower(name), fragment) {
			out = append(out, name)
		}
	}
	return out
}

// Match is one hit of a species lookup across several tables.
type Match struct {
	Table  *Table
	Column *Column
}

// Find looks name up in every table, in order.
func Find(tables []*Table, name string) []Match {
	var out []Match
	for _, t := range tables {
		if c, ok := t.Lookup(name); ok {
			out = append(out, Match{Table: t, Column: c})
		}
	}
	return out
}

// FromTrajectory lays a trajectory out as a table: a time column followed by
// one column per state component. Component names come from labels, or
// x0, x1, ... when labels are missing.
func FromTrajectory(name string, tr *dynamo.Trajectory) *Table {
	dim := 0
	if len(tr.States) > 0 {
		dim = len(tr.States[0])
	} else {
		dim = len(tr.Labels)
	}

	t := &Table{Name: name, Columns: make([]Column, 0, dim+1)}
	times := make([]float64, len(tr.Times))
	copy(times, tr.Times)
	t.Columns = append(t.Columns, Column{Name: "t [s]", Values: times})

	for i := 0; i < dim; i++ {
		label := fmt.Sprintf("x%d", i)
		if i < len(tr.Labels) {
			label = tr.Labels[i]
		}
		t.Columns = append(t.Columns, Column{Name: label, Values: tr.Species(i)})
	}
	return t
}
