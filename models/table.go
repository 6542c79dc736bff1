package models

import (
	"fmt"
	"strconv"
)

type ColumnKind int

const (
	KindText ColumnKind = iota
	KindNumber
	KindTimeOfDay
	KindDateTime
)

func (k ColumnKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindTimeOfDay:
		return "timeofday"
	case KindDateTime:
		return "datetime"
	}
	return "ColumnKind(" + strconv.Itoa(int(k)) + ")"
}

// IsTime reports whether cells of this kind are shown as HH:MM:SS.
func (k ColumnKind) IsTime() bool {
	return k == KindTimeOfDay || k == KindDateTime
}

type Column struct {
	Name string
	Kind ColumnKind
}

// Row holds one cell per column: string for text, float64 for number,
// TimeOfDay and DateTime for the time kinds.
type Row []any

// Table is a typed, chart independent table. Rows always match the column
// layout it was created with.
type Table struct {
	columns []Column
	rows    []Row
}

func NewTable(columns []Column) *Table {
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &Table{columns: cols, rows: make([]Row, 0)}
}

func (t *Table) Columns() []Column {
	cols := make([]Column, len(t.columns))
	copy(cols, t.columns)
	return cols
}

func (t *Table) Rows() []Row { return t.rows }

func (t *Table) Len() int { return len(t.rows) }

// AddRow appends a row after checking its length and cell types.
func (t *Table) AddRow(cells ...any) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.columns))
	}
	for i, c := range cells {
		if !cellMatches(t.columns[i].Kind, c) {
			return fmt.Errorf("cell %d: %T does not fit %s column %q", i, c, t.columns[i].Kind, t.columns[i].Name)
		}
	}
	t.rows = append(t.rows, Row(cells))
	return nil
}

func cellMatches(kind ColumnKind, cell any) bool {
	switch kind {
	case KindText:
		_, ok := cell.(string)
		return ok
	case KindNumber:
		_, ok := cell.(float64)
		return ok
	case KindTimeOfDay:
		_, ok := cell.(TimeOfDay)
		return ok
	case KindDateTime:
		_, ok := cell.(DateTime)
		return ok
	}
	return false
}

// FormatCell renders a cell for display. Time kinds always use HH:MM:SS.
func FormatCell(cell any) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case TimeOfDay:
		return v.String()
	case DateTime:
		return v.String()
	}
	return fmt.Sprint(cell)
}

// Display returns every row formatted with FormatCell.
func (t *Table) Display() [][]string {
	out := make([][]string, len(t.rows))
	for i, row := range t.rows {
		line := make([]string, len(row))
		for j, cell := range row {
			line[j] = FormatCell(cell)
		}
		out[i] = line
	}
	return out
}
