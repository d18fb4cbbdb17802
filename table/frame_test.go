package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const admissionsCsv = `ROW_ID,SUBJECT_ID,HADM_ID,ADMISSION_TYPE
1,10,100,EMERGENCY
2,10,101,ELECTIVE
3,11,102,EMERGENCY
4,12,103,URGENT
`

func readTestFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := ReadFrame(strings.NewReader(admissionsCsv), "ADMISSIONS")
	require.NoError(t, err)
	return f
}

func TestReadFrame(t *testing.T) {
	f := readTestFrame(t)

	assert.Equal(t, []string{"ROW_ID", "SUBJECT_ID", "HADM_ID", "ADMISSION_TYPE"}, f.Header)
	assert.Equal(t, 4, f.RowCount())
	assert.Equal(t, 4, f.ColumnCount())
}

func TestColumnIndexMissingColumn(t *testing.T) {
	f := readTestFrame(t)

	_, err := f.ColumnIndex("ICUSTAY_ID")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMISSIONS has no column ICUSTAY_ID")
}

func TestUniqueValues(t *testing.T) {
	f := readTestFrame(t)

	subjects, err := f.UniqueValues("SUBJECT_ID")
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "11", "12"}, subjects.Values())
}

func TestFilterByKey(t *testing.T) {
	tests := []struct {
		name     string
		column   string
		keys     []string
		wantRows int
	}{
		{
			name:     "retains only rows with matching keys",
			column:   "HADM_ID",
			keys:     []string{"100", "103"},
			wantRows: 2,
		},
		{
			name:     "empty key set retains nothing",
			column:   "HADM_ID",
			keys:     nil,
			wantRows: 0,
		},
		{
			name:     "filter on subject retains all admissions of the subject",
			column:   "SUBJECT_ID",
			keys:     []string{"10"},
			wantRows: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := readTestFrame(t)
			filtered, err := f.FilterByKey(tt.column, NewKeySet(tt.keys...))
			require.NoError(t, err)
			assert.Equal(t, tt.wantRows, filtered.RowCount())
			assert.Equal(t, f.Header, filtered.Header)
		})
	}
}

func TestFilterByKeyMissingColumn(t *testing.T) {
	f := readTestFrame(t)
	_, err := f.FilterByKey("NO_SUCH_COLUMN", NewKeySet("1"))
	require.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	f := readTestFrame(t)
	filtered, err := f.FilterByKey("HADM_ID", NewKeySet("100", "102"))
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, filtered.Write(&sb))
	assert.Equal(t, "ROW_ID,SUBJECT_ID,HADM_ID,ADMISSION_TYPE\n1,10,100,EMERGENCY\n3,11,102,EMERGENCY\n", sb.String())
}

func TestKeySet(t *testing.T) {
	s := NewKeySet("3", "1", "2", "1")

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("2"))
	assert.False(t, s.Contains("4"))
	// values are sorted for deterministic downstream consumption
	assert.Equal(t, []string{"1", "2", "3"}, s.Values())
}
