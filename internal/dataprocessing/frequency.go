package dataprocessing

import (
	"math"
	"sort"
)

// FrequencyEntry is one distinct value of a column
type FrequencyEntry struct {
	Value   string  `json:"value"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// FrequencyTable holds the distinct values of a column ordered by
// descending count. Total is the number of non-null cells.
type FrequencyTable struct {
	Column  string           `json:"column"`
	Total   int              `json:"total"`
	Entries []FrequencyEntry `json:"entries"`
}

// ValueCounts counts the distinct non-null values of column. Ties keep the
// order in which values were first seen. Percent is count / Total * 100 at
// full precision; use RoundPercent for display.
func ValueCounts(ds *Dataset, column string) (*FrequencyTable, error) {
	idx, err := ds.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	positions := make(map[string]int)
	var entries []FrequencyEntry
	total := 0
	for _, row := range ds.rows {
		v := row[idx]
		if isNull(v) {
			continue
		}
		total++
		if pos, ok := positions[v]; ok {
			entries[pos].Count++
			continue
		}
		positions[v] = len(entries)
		entries = append(entries, FrequencyEntry{Value: v, Count: 1})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	for i := range entries {
		entries[i].Percent = float64(entries[i].Count) / float64(total) * 100
	}

	if entries == nil {
		entries = []FrequencyEntry{}
	}

	return &FrequencyTable{Column: column, Total: total, Entries: entries}, nil
}

// Lookup returns the entry for value
func (t *FrequencyTable) Lookup(value string) (FrequencyEntry, bool) {
	for _, e := range t.Entries {
		if e.Value == value {
			return e, true
		}
	}
	return FrequencyEntry{}, false
}

// Values returns the distinct values in table order
func (t *FrequencyTable) Values() []string {
	out := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		out[i] = e.Value
	}
	return out
}

// RoundPercent rounds to one decimal place, halves to even
func RoundPercent(p float64) float64 {
	return math.RoundToEven(p*10) / 10
}
