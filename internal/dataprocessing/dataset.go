package dataprocessing

import (
	"fmt"

	"github.com/namitajha/Diabetes-data-Namita/internal/errors"
)

// Dataset is an in-memory table of raw string cells. Column order and cell
// values are kept exactly as read. Every transform returns a new Dataset;
// row slices are never mutated once a Dataset owns them.
type Dataset struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewDataset builds a Dataset, checking that every row has one cell per
// column and that column names are unique.
func NewDataset(columns []string, rows [][]string) (*Dataset, error) {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return nil, errors.NewAppError(errors.ErrTypeSchema, fmt.Sprintf("duplicate column %q", c), nil).
				WithContext("column", c)
		}
		seen[c] = true
	}

	owned := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			// header is line 1
			return nil, errors.NewMalformedRowError(i+2,
				fmt.Errorf("expected %d fields, got %d", len(columns), len(row)))
		}
		owned[i] = append([]string(nil), row...)
	}

	return newDataset(append([]string(nil), columns...), owned), nil
}

// newDataset wraps already-owned slices without validation
func newDataset(columns []string, rows [][]string) *Dataset {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	return &Dataset{columns: columns, index: index, rows: rows}
}

// Columns returns the column names in order
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// NumRows returns the number of data rows
func (d *Dataset) NumRows() int { return len(d.rows) }

// NumColumns returns the number of columns
func (d *Dataset) NumColumns() int { return len(d.columns) }

// HasColumn reports whether name is a column of the dataset
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// ColumnIndex returns the position of name or ErrColumnNotFound
func (d *Dataset) ColumnIndex(name string) (int, error) {
	i, ok := d.index[name]
	if !ok {
		return -1, errors.NewColumnNotFoundError(name)
	}
	return i, nil
}

// Column returns a copy of every cell of one column
func (d *Dataset) Column(name string) ([]string, error) {
	idx, err := d.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	values := make([]string, len(d.rows))
	for i, row := range d.rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Row returns a copy of row i
func (d *Dataset) Row(i int) []string {
	return append([]string(nil), d.rows[i]...)
}

// Value returns the cell at row i of column name
func (d *Dataset) Value(i int, name string) (string, error) {
	idx, err := d.ColumnIndex(name)
	if err != nil {
		return "", err
	}
	return d.rows[i][idx], nil
}

// isNull reports whether a cell counts as missing. Only empty cells do;
// the "?" sentinel is a regular value until it is normalized.
func isNull(v string) bool {
	return v == ""
}
