package dataprocessing

import (
	"sort"
)

// CrossTab counts rows per (group, outcome) pair. Rows and Cols hold the
// observed values sorted ascending; every pair has a count, zero included.
type CrossTab struct {
	RowColumn string
	ColColumn string
	Rows      []string
	Cols      []string
	counts    [][]int
	rowIndex  map[string]int
	colIndex  map[string]int
}

// Cell is one entry of the full grid
type Cell struct {
	Row   string `json:"row"`
	Col   string `json:"col"`
	Count int    `json:"count"`
}

// CrossTabulate groups ds by group and outcome. Rows where either cell is
// null are skipped.
func CrossTabulate(ds *Dataset, group, outcome string) (*CrossTab, error) {
	gi, err := ds.ColumnIndex(group)
	if err != nil {
		return nil, err
	}
	oi, err := ds.ColumnIndex(outcome)
	if err != nil {
		return nil, err
	}

	type pair struct{ g, o string }
	pairs := make(map[pair]int)
	groups := make(map[string]bool)
	outcomes := make(map[string]bool)
	for _, row := range ds.rows {
		g, o := row[gi], row[oi]
		if isNull(g) || isNull(o) {
			continue
		}
		pairs[pair{g, o}]++
		groups[g] = true
		outcomes[o] = true
	}

	ct := &CrossTab{
		RowColumn: group,
		ColColumn: outcome,
		Rows:      sortedKeys(groups),
		Cols:      sortedKeys(outcomes),
	}
	ct.rowIndex = indexOf(ct.Rows)
	ct.colIndex = indexOf(ct.Cols)

	ct.counts = make([][]int, len(ct.Rows))
	for i, g := range ct.Rows {
		ct.counts[i] = make([]int, len(ct.Cols))
		for j, o := range ct.Cols {
			ct.counts[i][j] = pairs[pair{g, o}]
		}
	}

	return ct, nil
}

// Count returns the count for a pair, zero when either value is unknown
func (c *CrossTab) Count(row, col string) int {
	i, ok := c.rowIndex[row]
	if !ok {
		return 0
	}
	j, ok := c.colIndex[col]
	if !ok {
		return 0
	}
	return c.counts[i][j]
}

// RowTotal sums one row
func (c *CrossTab) RowTotal(row string) int {
	i, ok := c.rowIndex[row]
	if !ok {
		return 0
	}
	total := 0
	for _, n := range c.counts[i] {
		total += n
	}
	return total
}

// ColumnTotal sums one column
func (c *CrossTab) ColumnTotal(col string) int {
	j, ok := c.colIndex[col]
	if !ok {
		return 0
	}
	total := 0
	for i := range c.counts {
		total += c.counts[i][j]
	}
	return total
}

// Total sums every cell
func (c *CrossTab) Total() int {
	total := 0
	for i := range c.counts {
		for _, n := range c.counts[i] {
			total += n
		}
	}
	return total
}

// Cells returns the full Cartesian grid in row-major order
func (c *CrossTab) Cells() []Cell {
	cells := make([]Cell, 0, len(c.Rows)*len(c.Cols))
	for i, r := range c.Rows {
		for j, col := range c.Cols {
			cells = append(cells, Cell{Row: r, Col: col, Count: c.counts[i][j]})
		}
	}
	return cells
}

// ColumnSeries returns the counts of one outcome across all rows, in row
// order. It is what a stacked bar draws per outcome.
func (c *CrossTab) ColumnSeries(col string) []int {
	out := make([]int, len(c.Rows))
	j, ok := c.colIndex[col]
	if !ok {
		return out
	}
	for i := range c.counts {
		out[i] = c.counts[i][j]
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func indexOf(values []string) map[string]int {
	index := make(map[string]int, len(values))
	for i, v := range values {
		index[v] = i
	}
	return index
}
