package archive

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestArchive builds a zip archive with one gzipped member per table,
// laid out under a single root directory like the MIMIC-III distribution
func writeTestArchive(t *testing.T, rootDir string, members map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range members {
		w, err := zw.Create(rootDir + "/" + name)
		require.NoError(t, err)

		gz := gzip.NewWriter(w)
		_, err = gz.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, gz.Close())
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "mimic-test.zip")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func requiredTestMembers() map[string]string {
	return map[string]string{
		"ADMISSIONS.csv.gz": "ROW_ID,SUBJECT_ID,HADM_ID\n1,10,100\n",
		"PATIENTS.csv.gz":   "ROW_ID,SUBJECT_ID\n1,10\n",
		"ICUSTAYS.csv.gz":   "ROW_ID,SUBJECT_ID,HADM_ID,ICUSTAY_ID\n1,10,100,200\n",
	}
}

func TestOpen(t *testing.T) {
	path := writeTestArchive(t, "mimic-iii-clinical-database-1.4", requiredTestMembers())

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "mimic-iii-clinical-database-1.4", a.RootDir())
	assert.True(t, a.HasMember("ADMISSIONS.csv.gz"))
	assert.False(t, a.HasMember("CHARTEVENTS.csv.gz"))
}

func TestOpenMissingRequiredMember(t *testing.T) {
	members := requiredTestMembers()
	delete(members, "ICUSTAYS.csv.gz")
	path := writeTestArchive(t, "mimic-iii-clinical-database-1.4", members)

	_, err := Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ICUSTAYS.csv.gz")
}

func TestOpenNotAZipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-zip.zip")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

	_, err := Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid zip file")
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "does-not-exist.zip"))
	require.Error(t, err)
}

func TestOpenMember(t *testing.T) {
	path := writeTestArchive(t, "root", requiredTestMembers())

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	r, err := a.OpenMember("PATIENTS.csv.gz")
	require.NoError(t, err)
	defer r.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	assert.Equal(t, "ROW_ID,SUBJECT_ID\n1,10\n", buf.String())
}

func TestOpenMemberNotFound(t *testing.T) {
	path := writeTestArchive(t, "root", requiredTestMembers())

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.OpenMember("NOT_A_TABLE.csv.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_A_TABLE.csv.gz")
}

func TestCopyMember(t *testing.T) {
	members := requiredTestMembers()
	members["D_ITEMS.csv.gz"] = "ROW_ID,ITEMID,LABEL\n1,211,\"Heart Rate\"\n"
	path := writeTestArchive(t, "root", members)

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	var buf bytes.Buffer
	n, err := a.CopyMember("D_ITEMS.csv.gz", &buf)
	require.NoError(t, err)

	// the copy must be byte-for-byte identical to the decompressed member
	assert.Equal(t, members["D_ITEMS.csv.gz"], buf.String())
	assert.Equal(t, int64(len(members["D_ITEMS.csv.gz"])), n)
}
