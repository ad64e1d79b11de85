package dataprocessing

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/namitajha/Diabetes-data-Namita/internal/errors"
	"github.com/namitajha/Diabetes-data-Namita/pkg/contracts/domain"
)

// ColumnProfile summarizes one column before cleaning
type ColumnProfile struct {
	Name            string            `json:"name"`
	Kind            domain.ColumnKind `json:"kind"`
	Rows            int               `json:"rows"`
	NonNull         int               `json:"non_null"`
	Distinct        int               `json:"distinct"`
	SentinelCount   int               `json:"sentinel_count"`
	SentinelPercent float64           `json:"sentinel_percent"`
}

// Profile reports, per column, how many cells hold sentinel
func Profile(ds *Dataset, sentinel string) []ColumnProfile {
	profiles := make([]ColumnProfile, len(ds.columns))
	for c, name := range ds.columns {
		p := ColumnProfile{Name: name, Kind: domain.KindOf(name), Rows: len(ds.rows)}
		distinct := make(map[string]bool)
		for _, row := range ds.rows {
			v := row[c]
			if isNull(v) {
				continue
			}
			p.NonNull++
			distinct[v] = true
			if v == sentinel {
				p.SentinelCount++
			}
		}
		p.Distinct = len(distinct)
		if p.Rows > 0 {
			p.SentinelPercent = float64(p.SentinelCount) / float64(p.Rows) * 100
		}
		profiles[c] = p
	}
	return profiles
}

// SuggestExclusions names the columns whose sentinel rate exceeds
// threshold (0..1). It only reports; the excluded column list is fixed.
func SuggestExclusions(profiles []ColumnProfile, threshold float64) []string {
	var names []string
	for _, p := range profiles {
		if p.SentinelPercent/100 > threshold {
			names = append(names, p.Name)
		}
	}
	return names
}

// ColumnInfo is the post-cleaning view of one column
type ColumnInfo struct {
	Name     string            `json:"name"`
	Kind     domain.ColumnKind `json:"kind"`
	NonNull  int               `json:"non_null"`
	Distinct int               `json:"distinct"`
}

// DatasetInfo describes the shape of a dataset
type DatasetInfo struct {
	Rows    int          `json:"rows"`
	Columns []ColumnInfo `json:"columns"`
}

// Info returns per-column non-null and distinct counts
func Info(ds *Dataset) DatasetInfo {
	info := DatasetInfo{Rows: len(ds.rows), Columns: make([]ColumnInfo, len(ds.columns))}
	// "" never matches a non-null cell, so only the shared counts are used
	for c, p := range Profile(ds, "") {
		info.Columns[c] = ColumnInfo{Name: p.Name, Kind: p.Kind, NonNull: p.NonNull, Distinct: p.Distinct}
	}
	return info
}

// Description is the numeric summary of a count column
type Description struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// Describe parses the non-null cells of column as numbers and summarizes
// them. Std is the sample standard deviation. Quartiles interpolate
// linearly between closest ranks.
func Describe(ds *Dataset, column string) (*Description, error) {
	values, err := ds.Column(column)
	if err != nil {
		return nil, err
	}

	x := make([]float64, 0, len(values))
	for i, v := range values {
		if isNull(v) {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, errors.NewParsingError(
				fmt.Sprintf("column %q row %d: non-numeric value %q", column, i+1, v), err).
				WithContext("column", column).
				WithContext("row", i+1)
		}
		x = append(x, f)
	}

	d := &Description{Column: column, Count: len(x)}
	if len(x) == 0 {
		nan := math.NaN()
		d.Mean, d.Std, d.Min, d.Q25, d.Median, d.Q75, d.Max = nan, nan, nan, nan, nan, nan, nan
		return d, nil
	}

	sort.Float64s(x)
	d.Mean, d.Std = stat.MeanStdDev(x, nil)
	if len(x) == 1 {
		d.Std = math.NaN()
	}
	d.Min = floats.Min(x)
	d.Max = floats.Max(x)
	d.Q25 = quantile(x, 0.25)
	d.Median = quantile(x, 0.5)
	d.Q75 = quantile(x, 0.75)

	return d, nil
}

// quantile interpolates linearly on sorted x at rank p*(n-1)
func quantile(sorted []float64, p float64) float64 {
	h := p * float64(len(sorted)-1)
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Head returns the first n rows of ds
func Head(ds *Dataset, n int) *Dataset {
	if n < 0 {
		n = 0
	}
	if n > len(ds.rows) {
		n = len(ds.rows)
	}
	rows := append([][]string(nil), ds.rows[:n]...)
	return newDataset(append([]string(nil), ds.columns...), rows)
}
