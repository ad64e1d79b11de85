package charts

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/namitajha/Diabetes-data-Namita/internal/dataprocessing"
	"github.com/namitajha/Diabetes-data-Namita/internal/errors"
)

// Kind selects how multiple series are drawn
type Kind string

const (
	KindBar        Kind = "bar"
	KindStackedBar Kind = "stacked-bar"
)

// Series is one set of bar heights, aligned with Spec.Categories
type Series struct {
	Name   string    `json:"name" validate:"required"`
	Values []float64 `json:"values" validate:"min=1"`
}

// Spec describes a chart independently of how it is drawn
type Spec struct {
	// Name is the output file stem
	Name       string   `json:"name" validate:"required,excludesall=/"`
	Title      string   `json:"title"`
	XLabel     string   `json:"x_label"`
	YLabel     string   `json:"y_label"`
	Kind       Kind     `json:"kind" validate:"oneof=bar stacked-bar"`
	Categories []string `json:"categories" validate:"min=1"`
	Series     []Series `json:"series" validate:"min=1,dive"`
}

// Labels replaces the generated title and axis labels of a chart. Empty
// fields keep the generated text.
type Labels struct {
	Title  string `json:"title,omitempty"`
	XLabel string `json:"x_label,omitempty"`
	YLabel string `json:"y_label,omitempty"`
}

// WithLabels returns a copy of s with the non-empty fields of l applied
func (s Spec) WithLabels(l Labels) Spec {
	if l.Title != "" {
		s.Title = l.Title
	}
	if l.XLabel != "" {
		s.XLabel = l.XLabel
	}
	if l.YLabel != "" {
		s.YLabel = l.YLabel
	}
	return s
}

var validate = validator.New()

// Validate checks the struct tags and that every series has one value per category
func (s Spec) Validate() error {
	if err := validate.Struct(s); err != nil {
		return errors.NewAppValidationError(fmt.Sprintf("chart %q", s.Name), err).
			WithContext("chart", s.Name)
	}
	for _, series := range s.Series {
		if len(series.Values) != len(s.Categories) {
			return errors.NewAppValidationError(
				fmt.Sprintf("chart %q: series %q has %d values for %d categories",
					s.Name, series.Name, len(series.Values), len(s.Categories)), nil).
				WithContext("chart", s.Name)
		}
	}
	return nil
}

// FrequencySpec charts the percentage of each value of a frequency table
func FrequencySpec(table *dataprocessing.FrequencyTable) Spec {
	values := make([]float64, len(table.Entries))
	for i, e := range table.Entries {
		values[i] = e.Percent
	}
	return Spec{
		Name:       "freq_" + table.Column,
		Title:      fmt.Sprintf("Percentage by %s", table.Column),
		XLabel:     table.Column,
		YLabel:     "Percent",
		Kind:       KindBar,
		Categories: table.Values(),
		Series:     []Series{{Name: "percent", Values: values}},
	}
}

// SubsetSpec charts the frequency table of a filtered subset
func SubsetSpec(summary *dataprocessing.SubsetSummary) Spec {
	spec := FrequencySpec(summary.Frequency)
	spec.Name = "subset_" + summary.Name
	spec.Title = fmt.Sprintf("%s by %s (%d rows)", summary.Frequency.Column, summary.Name, summary.Rows)
	return spec
}

// CrossTabSpec charts a cross-tabulation as stacked bars, one series per
// outcome value
func CrossTabSpec(ct *dataprocessing.CrossTab) Spec {
	series := make([]Series, len(ct.Cols))
	for i, col := range ct.Cols {
		counts := ct.ColumnSeries(col)
		values := make([]float64, len(counts))
		for j, n := range counts {
			values[j] = float64(n)
		}
		series[i] = Series{Name: col, Values: values}
	}
	return Spec{
		Name:       fmt.Sprintf("crosstab_%s_by_%s", ct.RowColumn, ct.ColColumn),
		Title:      fmt.Sprintf("%s by %s", ct.ColColumn, ct.RowColumn),
		XLabel:     ct.RowColumn,
		YLabel:     "Count",
		Kind:       KindStackedBar,
		Categories: append([]string(nil), ct.Rows...),
		Series:     series,
	}
}
