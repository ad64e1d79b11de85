package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
)

// Summarizer produces the frequency tables, cross-tabulations and subset
// summaries of an analysis. It holds no data between calls.
type Summarizer struct {
	logger *slog.Logger
}

// FilterStep narrows a dataset on one column
type FilterStep struct {
	Column    string
	Predicate Predicate
	// Describe is a human readable form of the predicate for logs and manifests
	Describe string
}

// SubsetSummary is the frequency of Column inside a filtered subset
type SubsetSummary struct {
	Name      string          `json:"name"`
	Filters   []string        `json:"filters"`
	Rows      int             `json:"rows"`
	Frequency *FrequencyTable `json:"frequency"`
}

// NewSummarizer creates a Summarizer. A nil logger uses slog.Default().
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger}
}

// Frequencies builds one frequency table per column, in the given order
func (s *Summarizer) Frequencies(ctx context.Context, ds *Dataset, columns []string) ([]*FrequencyTable, error) {
	tables := make([]*FrequencyTable, 0, len(columns))
	for _, column := range columns {
		table, err := ValueCounts(ds, column)
		if err != nil {
			return nil, fmt.Errorf("frequency of %s: %w", column, err)
		}

		s.logger.DebugContext(ctx, "frequency table built",
			slog.String("column", column),
			slog.Int("total", table.Total),
			slog.Int("distinct", len(table.Entries)))

		tables = append(tables, table)
	}
	return tables, nil
}

// CrossTabs builds one cross-tabulation per (group, outcome) pair
func (s *Summarizer) CrossTabs(ctx context.Context, ds *Dataset, pairs [][2]string) ([]*CrossTab, error) {
	tabs := make([]*CrossTab, 0, len(pairs))
	for _, pair := range pairs {
		ct, err := CrossTabulate(ds, pair[0], pair[1])
		if err != nil {
			return nil, fmt.Errorf("crosstab %s x %s: %w", pair[0], pair[1], err)
		}

		s.logger.DebugContext(ctx, "cross-tabulation built",
			slog.String("group", pair[0]),
			slog.String("outcome", pair[1]),
			slog.Int("rows", len(ct.Rows)),
			slog.Int("cols", len(ct.Cols)),
			slog.Int("total", ct.Total()))

		tabs = append(tabs, ct)
	}
	return tabs, nil
}

// Subset applies filters in order and summarizes column in what remains
func (s *Summarizer) Subset(ctx context.Context, ds *Dataset, name string, filters []FilterStep, column string) (*SubsetSummary, error) {
	current := ds
	described := make([]string, 0, len(filters))
	for _, f := range filters {
		next, err := Filter(current, f.Column, f.Predicate)
		if err != nil {
			return nil, fmt.Errorf("subset %s: filter %s: %w", name, f.Column, err)
		}
		current = next
		described = append(described, f.Describe)
	}

	table, err := ValueCounts(current, column)
	if err != nil {
		return nil, fmt.Errorf("subset %s: %w", name, err)
	}

	s.logger.InfoContext(ctx, "subset summarized",
		slog.String("subset", name),
		slog.Int("rows", current.NumRows()),
		slog.String("column", column))

	return &SubsetSummary{
		Name:      name,
		Filters:   described,
		Rows:      current.NumRows(),
		Frequency: table,
	}, nil
}
