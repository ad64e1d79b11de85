package exporter

import (
	"fmt"
	"strconv"

	"github.com/namitajha/Diabetes-data-Namita/internal/dataprocessing"
)

// Table is a named grid of strings ready for any of the writers
type Table struct {
	Name    string
	Title   string
	Headers []string
	Records [][]string
}

// FrequencyRecords lays out a frequency table as value, count, percent
func FrequencyRecords(t *dataprocessing.FrequencyTable) Table {
	records := make([][]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		records = append(records, []string{e.Value, strconv.Itoa(e.Count), formatPercent(e.Percent)})
	}
	return Table{
		Name:    "freq_" + t.Column,
		Title:   fmt.Sprintf("%s (n=%d)", t.Column, t.Total),
		Headers: []string{t.Column, "count", "percent"},
		Records: records,
	}
}

// SubsetRecords lays out the frequency table of a filtered subset
func SubsetRecords(s *dataprocessing.SubsetSummary) Table {
	t := FrequencyRecords(s.Frequency)
	t.Name = "subset_" + s.Name
	t.Title = fmt.Sprintf("%s in %s (rows=%d)", s.Frequency.Column, s.Name, s.Rows)
	return t
}

// CrossTabRecords lays out a cross-tabulation with a total column and a
// total row. The top-left header names both variables.
func CrossTabRecords(ct *dataprocessing.CrossTab) Table {
	headers := make([]string, 0, len(ct.Cols)+2)
	headers = append(headers, ct.RowColumn+"/"+ct.ColColumn)
	headers = append(headers, ct.Cols...)
	headers = append(headers, "total")

	records := make([][]string, 0, len(ct.Rows)+1)
	for _, row := range ct.Rows {
		record := make([]string, 0, len(headers))
		record = append(record, row)
		for _, col := range ct.Cols {
			record = append(record, strconv.Itoa(ct.Count(row, col)))
		}
		record = append(record, strconv.Itoa(ct.RowTotal(row)))
		records = append(records, record)
	}

	totals := make([]string, 0, len(headers))
	totals = append(totals, "total")
	for _, col := range ct.Cols {
		totals = append(totals, strconv.Itoa(ct.ColumnTotal(col)))
	}
	totals = append(totals, strconv.Itoa(ct.Total()))
	records = append(records, totals)

	return Table{
		Name:    fmt.Sprintf("crosstab_%s_by_%s", ct.RowColumn, ct.ColColumn),
		Title:   fmt.Sprintf("%s by %s", ct.RowColumn, ct.ColColumn),
		Headers: headers,
		Records: records,
	}
}

// ProfileRecords lays out the pre-cleaning column profiles
func ProfileRecords(profiles []dataprocessing.ColumnProfile) Table {
	records := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		records = append(records, []string{
			p.Name,
			string(p.Kind),
			strconv.Itoa(p.Rows),
			strconv.Itoa(p.NonNull),
			strconv.Itoa(p.Distinct),
			strconv.Itoa(p.SentinelCount),
			formatPercent(p.SentinelPercent),
		})
	}
	return Table{
		Name:    "profile",
		Title:   "Missing-value profile",
		Headers: []string{"column", "kind", "rows", "non_null", "distinct", "sentinel_count", "sentinel_percent"},
		Records: records,
	}
}

// InfoRecords lays out the post-cleaning dataset info
func InfoRecords(info dataprocessing.DatasetInfo) Table {
	records := make([][]string, 0, len(info.Columns))
	for _, c := range info.Columns {
		records = append(records, []string{c.Name, string(c.Kind), strconv.Itoa(c.NonNull), strconv.Itoa(c.Distinct)})
	}
	return Table{
		Name:    "info",
		Title:   fmt.Sprintf("Dataset info (rows=%d, columns=%d)", info.Rows, len(info.Columns)),
		Headers: []string{"column", "kind", "non_null", "distinct"},
		Records: records,
	}
}

// DescribeRecords lays out numeric descriptions, one column per row
func DescribeRecords(descriptions []*dataprocessing.Description) Table {
	records := make([][]string, 0, len(descriptions))
	for _, d := range descriptions {
		records = append(records, []string{
			d.Column,
			strconv.Itoa(d.Count),
			formatFloat(d.Mean),
			formatFloat(d.Std),
			formatFloat(d.Min),
			formatFloat(d.Q25),
			formatFloat(d.Median),
			formatFloat(d.Q75),
			formatFloat(d.Max),
		})
	}
	return Table{
		Name:    "describe",
		Title:   "Numeric summary",
		Headers: []string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"},
		Records: records,
	}
}

// DatasetRecords lays out the rows of ds under its own header
func DatasetRecords(name string, ds *dataprocessing.Dataset) Table {
	records := make([][]string, ds.NumRows())
	for i := range records {
		records[i] = ds.Row(i)
	}
	return Table{
		Name:    name,
		Title:   fmt.Sprintf("%s (%d rows x %d columns)", name, ds.NumRows(), ds.NumColumns()),
		Headers: ds.Columns(),
		Records: records,
	}
}
