package operations

import (
	"fmt"
	"sort"

	"github.com/namitajha/Diabetes-data-Namita/internal/charts"
	"github.com/namitajha/Diabetes-data-Namita/internal/config"
	"github.com/namitajha/Diabetes-data-Namita/internal/dataprocessing"
	"github.com/namitajha/Diabetes-data-Namita/internal/errors"
	"github.com/namitajha/Diabetes-data-Namita/pkg/contracts/domain"
)

// Filter match kinds
const (
	MatchContains = config.MatchContains
	MatchPrefix   = config.MatchPrefix
	MatchEquals   = "equals"
)

// FilterPlan declares one raw-string filter
type FilterPlan struct {
	Column string
	Match  string
	Value  string
	Negate bool
}

// SubsetPlan declares a filtered subset and the column summarized in it
type SubsetPlan struct {
	Name    string
	Filters []FilterPlan
	Column  string
}

// Plan lists the analyses of a run declaratively
type Plan struct {
	// Frequencies of the raw data, before pruning
	PreFrequencies []string
	// Frequencies after normalization, used to check the cleaning
	PostFrequencies []string
	// Charted frequencies
	Frequencies []string
	// Group and outcome column pairs
	CrossTabs [][2]string
	Subsets   []SubsetPlan
	// Columns summarized numerically; nil means every count column present
	DescribeColumns []string
	// Chart titles and axis labels keyed by chart name
	ChartLabels map[string]charts.Labels
}

// percentAxis is the y label of every percentage chart
const percentAxis = "%age"

// DefaultPlan returns the analyses of the readmission study. The diagnosis
// filter uses the configured code and match mode.
func DefaultPlan(cfg config.AnalysisConfig) Plan {
	match := cfg.DiagnosisMatch
	if match == "" {
		match = MatchContains
	}
	code := cfg.DiagnosisCode
	if code == "" {
		code = config.DiabetesDiagnosisCode
	}

	return Plan{
		PreFrequencies: []string{
			domain.ColDiag2, domain.ColRace, domain.ColGender, domain.ColAge, domain.ColWeight,
		},
		PostFrequencies: []string{domain.ColDiag2, domain.ColRace, domain.ColGender},
		Frequencies: []string{
			domain.ColGender, domain.ColRace, domain.ColAge, domain.ColA1CResult,
		},
		CrossTabs: [][2]string{
			{domain.ColAge, domain.ColReadmitted},
			{domain.ColA1CResult, domain.ColReadmitted},
		},
		Subsets: []SubsetPlan{
			{
				Name: "diabetic_readmitted",
				Filters: []FilterPlan{
					{Column: domain.ColDiag1, Match: match, Value: code},
					{Column: domain.ColReadmitted, Match: MatchContains, Value: domain.ReadmittedNo, Negate: true},
				},
				Column: domain.ColA1CResult,
			},
			{
				Name: "medication_change",
				Filters: []FilterPlan{
					{Column: domain.ColChange, Match: MatchContains, Value: domain.MedicationChanged},
				},
				Column: domain.ColA1CResult,
			},
		},
		ChartLabels: map[string]charts.Labels{
			"freq_gender":    {Title: "Gender distribution of the data", XLabel: "gender", YLabel: percentAxis},
			"freq_race":      {Title: "Race distribution of the data", XLabel: "Race", YLabel: percentAxis},
			"freq_age":       {Title: "Age distribution of the data", XLabel: "Age", YLabel: percentAxis},
			"freq_A1Cresult": {Title: "Patients with HbA1c tested", XLabel: "%age of patients with HbA1c tested", YLabel: percentAxis},
			"crosstab_age_by_readmitted": {
				Title: "Age v/s Readmission", XLabel: "Age in Years", YLabel: "Readmissions",
			},
			"crosstab_A1Cresult_by_readmitted": {
				Title: "HbA1c test v/s Readmission", XLabel: "HbA1c test", YLabel: "Readmissions",
			},
			"subset_diabetic_readmitted": {
				Title:  "Readmitted patients with HbA1c tested when there was a primary diagnosis of diabetes",
				XLabel: "%age of patients with HbA1c tested",
				YLabel: percentAxis,
			},
			"subset_medication_change": {
				Title:  "Patients with HbA1c tested when there was a change in medication",
				XLabel: "%age of patients with HbA1c tested",
				YLabel: percentAxis,
			},
		},
	}
}

// Label applies the plan's labels for spec.Name, if any
func (p Plan) Label(spec charts.Spec) charts.Spec {
	if l, ok := p.ChartLabels[spec.Name]; ok {
		return spec.WithLabels(l)
	}
	return spec
}

// Build turns the declaration into an executable filter step
func (f FilterPlan) Build() (dataprocessing.FilterStep, error) {
	var p dataprocessing.Predicate
	switch f.Match {
	case MatchContains, MatchPrefix:
		var err error
		if p, err = dataprocessing.DiagnosisPredicate(f.Match, f.Value); err != nil {
			return dataprocessing.FilterStep{}, err
		}
	case MatchEquals:
		p = dataprocessing.Equals(f.Value)
	default:
		return dataprocessing.FilterStep{}, errors.NewAppValidationError(
			fmt.Sprintf("filter on %s: unknown match %q", f.Column, f.Match), nil).
			WithContext("column", f.Column)
	}
	if f.Negate {
		p = dataprocessing.Not(p)
	}
	return dataprocessing.FilterStep{Column: f.Column, Predicate: p, Describe: f.String()}, nil
}

func (f FilterPlan) String() string {
	op := f.Match
	if f.Negate {
		op = "not " + op
	}
	return fmt.Sprintf("%s %s %q", f.Column, op, f.Value)
}

// RequiredColumns returns the columns a dataset must have for the plan to
// run: the excluded columns and every column an analysis reads
func (p Plan) RequiredColumns() []string {
	set := make(map[string]bool)
	add := func(cols ...string) {
		for _, c := range cols {
			set[c] = true
		}
	}

	add(config.ExcludedColumns...)
	add(p.PreFrequencies...)
	add(p.PostFrequencies...)
	add(p.Frequencies...)
	add(p.DescribeColumns...)
	for _, pair := range p.CrossTabs {
		add(pair[0], pair[1])
	}
	for _, s := range p.Subsets {
		add(s.Column)
		for _, f := range s.Filters {
			add(f.Column)
		}
	}

	cols := make([]string, 0, len(set))
	for c := range set {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// describeColumns resolves the numeric summary columns against ds
func (p Plan) describeColumns(ds *dataprocessing.Dataset) []string {
	if p.DescribeColumns != nil {
		return p.DescribeColumns
	}
	var cols []string
	for _, c := range ds.Columns() {
		if domain.KindOf(c) == domain.KindCount {
			cols = append(cols, c)
		}
	}
	return cols
}
