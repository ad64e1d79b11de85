// Package domain holds the column catalog of the diabetic encounter dataset
// and the categorical values the analyses rely on.
package domain

// ColumnKind is the semantic type of a dataset column
type ColumnKind string

const (
	KindIdentifier  ColumnKind = "identifier"
	KindCategorical ColumnKind = "categorical"
	KindOrdinal     ColumnKind = "ordinal"
	KindCount       ColumnKind = "count"
	KindDiagnosis   ColumnKind = "diagnosis"
	KindMedication  ColumnKind = "medication"
)

// Column names used directly by the analyses
const (
	ColEncounterID      = "encounter_id"
	ColPatientNbr       = "patient_nbr"
	ColRace             = "race"
	ColGender           = "gender"
	ColAge              = "age"
	ColWeight           = "weight"
	ColTimeInHospital   = "time_in_hospital"
	ColPayerCode        = "payer_code"
	ColMedicalSpecialty = "medical_specialty"
	ColDiag1            = "diag_1"
	ColDiag2            = "diag_2"
	ColDiag3            = "diag_3"
	ColNumberDiagnoses  = "number_diagnoses"
	ColMaxGluSerum      = "max_glu_serum"
	ColA1CResult        = "A1Cresult"
	ColChange           = "change"
	ColDiabetesMed      = "diabetesMed"
	ColReadmitted       = "readmitted"
)

// Readmission buckets
const (
	ReadmittedNo       = "NO"
	ReadmittedUnder30  = "<30"
	ReadmittedOver30   = ">30"
	MedicationChanged  = "Ch"
	MedicationNoChange = "No"
)

// Column describes one catalog entry
type Column struct {
	Name        string     `json:"name"`
	Kind        ColumnKind `json:"kind"`
	Description string     `json:"description"`
}

// medications lists the 23 generic-name dosage columns
var medications = []string{
	"metformin", "repaglinide", "nateglinide", "chlorpropamide", "glimepiride",
	"acetohexamide", "glipizide", "glyburide", "tolbutamide", "pioglitazone",
	"rosiglitazone", "acarbose", "miglitol", "troglitazone", "tolazamide",
	"examide", "citoglipton", "insulin", "glyburide-metformin", "glipizide-metformin",
	"glimepiride-pioglitazone", "metformin-rosiglitazone", "metformin-pioglitazone",
}

var catalog = buildCatalog()

func buildCatalog() []Column {
	cols := []Column{
		{ColEncounterID, KindIdentifier, "Unique identifier of an encounter"},
		{ColPatientNbr, KindIdentifier, "Unique identifier of a patient"},
		{ColRace, KindCategorical, "Caucasian, Asian, African American, Hispanic, Other"},
		{ColGender, KindCategorical, "Male, Female, Unknown/Invalid"},
		{ColAge, KindOrdinal, "10-year buckets [0-10) .. [90-100)"},
		{ColWeight, KindOrdinal, "Weight in pounds, bucketed"},
		{"admission_type_id", KindCategorical, "Admission type, 9 coded values"},
		{"discharge_disposition_id", KindCategorical, "Discharge disposition, 29 coded values"},
		{"admission_source_id", KindCategorical, "Admission source, 21 coded values"},
		{ColTimeInHospital, KindCount, "Days between admission and discharge"},
		{ColPayerCode, KindCategorical, "Payer, 23 coded values"},
		{ColMedicalSpecialty, KindCategorical, "Specialty of the admitting physician"},
		{"num_lab_procedures", KindCount, "Lab tests performed during the encounter"},
		{"num_procedures", KindCount, "Procedures other than lab tests"},
		{"num_medications", KindCount, "Distinct generic names administered"},
		{"number_outpatient", KindCount, "Outpatient visits in the preceding year"},
		{"number_emergency", KindCount, "Emergency visits in the preceding year"},
		{"number_inpatient", KindCount, "Inpatient visits in the preceding year"},
		{ColDiag1, KindDiagnosis, "Primary diagnosis, ICD-9"},
		{ColDiag2, KindDiagnosis, "Secondary diagnosis, ICD-9"},
		{ColDiag3, KindDiagnosis, "Additional secondary diagnosis, ICD-9"},
		{ColNumberDiagnoses, KindCount, "Diagnoses entered to the system"},
		{ColMaxGluSerum, KindOrdinal, ">200, >300, Norm, None"},
		{ColA1CResult, KindOrdinal, ">8, >7, Norm, None"},
	}
	for _, m := range medications {
		cols = append(cols, Column{m, KindMedication, "Up, Down, Steady, No"})
	}
	return append(cols,
		Column{ColChange, KindCategorical, "Ch or No change in diabetic medication"},
		Column{ColDiabetesMed, KindCategorical, "Yes or No diabetic medication prescribed"},
		Column{ColReadmitted, KindOrdinal, "<30, >30, NO"},
	)
}

// Catalog returns the known columns in file order
func Catalog() []Column {
	out := make([]Column, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for name
func Lookup(name string) (Column, bool) {
	for _, c := range catalog {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// KindOf returns the kind of a column; unknown columns are categorical
func KindOf(name string) ColumnKind {
	if c, ok := Lookup(name); ok {
		return c.Kind
	}
	return KindCategorical
}

// ColumnsOfKind returns the catalog names of the given kind, in file order
func ColumnsOfKind(kind ColumnKind) []string {
	var names []string
	for _, c := range catalog {
		if c.Kind == kind {
			names = append(names, c.Name)
		}
	}
	return names
}

// Medications returns the medication column names
func Medications() []string {
	out := make([]string, len(medications))
	copy(out, medications)
	return out
}
