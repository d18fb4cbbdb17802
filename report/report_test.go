package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medlearn/mimic-subset/subset"
	"github.com/medlearn/mimic-subset/table"
)

func testResult(outputDir string) *subset.Result {
	return &subset.Result{
		SampleSize:        3000,
		Seed:              42,
		UniquePatients:    2531,
		UniqueAdmissions:  3000,
		UniqueIcuStays:    3278,
		MaxLabsPerSubject: 20,
		Tables: []subset.TableResult{
			{Table: table.Admissions, Rows: 3000, Columns: 19},
			{Table: table.DiagnosesIcd, Rows: 33599, Columns: 5},
		},
		DictionaryTables: []subset.TableResult{
			{Table: table.Dictionary[0], Rows: 14567, Columns: 4},
		},
		OutputDir: outputDir,
		CreatedAt: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestGenerate(t *testing.T) {
	content, err := Generate(testResult(""))
	require.NoError(t, err)

	assert.Contains(t, content, "# MIMIC-III Subset")
	assert.Contains(t, content, "**Subset Creation Date**: 2025-03-14")
	assert.Contains(t, content, "**Sample Size**: 3000 randomly selected hospital admissions")
	assert.Contains(t, content, "**Random Seed**: 42")
	assert.Contains(t, content, "1. **ADMISSIONS.csv** (Admissions): 3000 rows, 19 columns")
	assert.Contains(t, content, "2. **DIAGNOSES_ICD.csv** (DiagnosesIcd): 33599 rows, 5 columns")
	assert.Contains(t, content, "1. **D_ICD_DIAGNOSES.csv** (DIcdDiagnoses): 14567 rows, 4 columns")
	assert.Contains(t, content, "Number of unique patients: 2531")
	assert.Contains(t, content, "Number of unique ICU stays: 3278")
	assert.Contains(t, content, "LABEVENTS includes up to 20 lab tests per patient")
}

func TestWrite(t *testing.T) {
	outputDir := t.TempDir()

	path, err := Write(testResult(outputDir))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outputDir, "README.md"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# MIMIC-III Subset")
}
