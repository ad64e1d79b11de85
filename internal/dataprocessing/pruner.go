package dataprocessing

import (
	"github.com/namitajha/Diabetes-data-Namita/internal/errors"
)

// DropColumns returns a copy of ds without the named columns. Every name
// must exist; the first missing one fails with ErrColumnNotFound. Row count
// and order are unchanged and ds is not modified.
func DropColumns(ds *Dataset, names []string) (*Dataset, error) {
	drop := make(map[int]bool, len(names))
	for _, name := range names {
		idx, ok := ds.index[name]
		if !ok {
			return nil, errors.NewColumnNotFoundError(name)
		}
		drop[idx] = true
	}

	keep := make([]int, 0, len(ds.columns)-len(drop))
	columns := make([]string, 0, len(ds.columns)-len(drop))
	for i, c := range ds.columns {
		if !drop[i] {
			keep = append(keep, i)
			columns = append(columns, c)
		}
	}

	rows := make([][]string, len(ds.rows))
	for r, row := range ds.rows {
		out := make([]string, len(keep))
		for j, idx := range keep {
			out[j] = row[idx]
		}
		rows[r] = out
	}

	return newDataset(columns, rows), nil
}
