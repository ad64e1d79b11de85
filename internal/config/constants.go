package config

// Application constants for the diabetes readmission analysis.
const (
	// Application Info
	AppName    = "diabetes-eda"
	AppVersion = "1.0.0"

	// Environment variable prefix (DIABETES_LOGGING_LEVEL, ...)
	EnvPrefix = "DIABETES"

	// Default config file names, searched in order
	DefaultConfigFile = "diabetes-eda.yaml"

	// Missing-value handling
	SentinelValue    = "?"
	ReplacementValue = "Unknown"

	// Primary diagnosis code family for diabetes mellitus (ICD-9 250.xx)
	DiabetesDiagnosisCode = "250"

	// Diagnosis code matching modes
	MatchContains = "contains"
	MatchPrefix   = "prefix"

	// Chart output
	ChartFormatPNG     = "png"
	ChartFormatSVG     = "svg"
	DefaultChartWidth  = 10.0 // inches
	DefaultChartHeight = 5.0  // inches

	// Output layout (relative to the output directory)
	ChartsSubdir     = "charts"
	TablesSubdir     = "tables"
	LogsSubdir       = "logs"
	WorkbookFileName = "analysis.xlsx"
	ManifestFileName = "manifest.json"
	MetricsFileName  = "metrics.prom"
	LogFileName      = "diabetes-eda.log"

	// Missing-rate above which a column is reported as an exclusion candidate
	DefaultExclusionThreshold = 0.5
)

// ExcludedColumns is the fixed list of columns dropped before analysis.
// weight is ~97% "?"; the rest are identifiers or counts outside the
// readmission question.
var ExcludedColumns = []string{
	"encounter_id",
	"weight",
	"admission_type_id",
	"discharge_disposition_id",
	"admission_source_id",
	"payer_code",
	"num_lab_procedures",
	"num_procedures",
	"num_medications",
	"number_outpatient",
	"number_emergency",
	"number_inpatient",
}
