package operations

// Step identifiers
const (
	StageIDLoad        = "load"
	StageIDPreProfile  = "pre_profile"
	StageIDPrune       = "prune"
	StageIDNormalize   = "normalize"
	StageIDPostProfile = "post_profile"
	StageIDSummarize   = "summarize"
	StageIDSubsets     = "subsets"
	StageIDRender      = "render"
	StageIDExport      = "export"
)

// Step names
const (
	StageNameLoad        = "Load Dataset"
	StageNamePreProfile  = "Missing-Value Profile"
	StageNamePrune       = "Drop Excluded Columns"
	StageNameNormalize   = "Normalize Missing Values"
	StageNamePostProfile = "Dataset Inspection"
	StageNameSummarize   = "Frequencies and Cross-Tabulations"
	StageNameSubsets     = "Subset Analyses"
	StageNameRender      = "Render Charts"
	StageNameExport      = "Export Tables"
)

// Metadata keys reported by steps
const (
	MetaRows          = "rows"
	MetaColumns       = "columns"
	MetaReplacedCells = "replaced_cells"
	MetaTables        = "tables"
	MetaCharts        = "charts"
	MetaSkipped       = "skipped"
)
