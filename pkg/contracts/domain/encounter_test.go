package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalog(t *testing.T) {
	cols := Catalog()
	assert.Len(t, cols, 50)
	assert.Equal(t, ColEncounterID, cols[0].Name)
	assert.Equal(t, ColReadmitted, cols[len(cols)-1].Name)

	seen := make(map[string]bool)
	for _, c := range cols {
		assert.False(t, seen[c.Name], "duplicate column %s", c.Name)
		seen[c.Name] = true
		assert.NotEmpty(t, c.Kind)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		column string
		want   ColumnKind
	}{
		{ColEncounterID, KindIdentifier},
		{ColGender, KindCategorical},
		{ColAge, KindOrdinal},
		{ColA1CResult, KindOrdinal},
		{ColTimeInHospital, KindCount},
		{ColDiag1, KindDiagnosis},
		{"insulin", KindMedication},
		{"metformin-pioglitazone", KindMedication},
		{"not_a_column", KindCategorical},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.column))
		})
	}
}

func TestColumnsOfKind(t *testing.T) {
	assert.Len(t, ColumnsOfKind(KindMedication), 23)
	assert.Equal(t, []string{ColDiag1, ColDiag2, ColDiag3}, ColumnsOfKind(KindDiagnosis))
	assert.Contains(t, ColumnsOfKind(KindCount), ColNumberDiagnoses)
}

func TestCatalogIsCopied(t *testing.T) {
	cols := Catalog()
	cols[0].Name = "mutated"
	_, ok := Lookup(ColEncounterID)
	assert.True(t, ok)

	meds := Medications()
	meds[0] = "mutated"
	assert.Equal(t, "metformin", Medications()[0])
}
