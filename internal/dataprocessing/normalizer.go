package dataprocessing

// ReplaceValue returns a copy of ds in which every cell exactly equal to
// sentinel holds replacement, and the number of cells replaced. Cells that
// merely contain the sentinel are untouched. Applying it twice replaces
// nothing the second time.
func ReplaceValue(ds *Dataset, sentinel, replacement string) (*Dataset, int) {
	replaced := 0
	rows := make([][]string, len(ds.rows))
	for r, row := range ds.rows {
		out, copied := row, false
		for c, v := range row {
			if v != sentinel {
				continue
			}
			if !copied {
				out, copied = append([]string(nil), row...), true
			}
			out[c] = replacement
			replaced++
		}
		rows[r] = out
	}

	return newDataset(append([]string(nil), ds.columns...), rows), replaced
}

// CountValue returns how many cells of ds equal value exactly
func CountValue(ds *Dataset, value string) int {
	n := 0
	for _, row := range ds.rows {
		for _, v := range row {
			if v == value {
				n++
			}
		}
	}
	return n
}
