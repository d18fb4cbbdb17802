package archive

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// RequiredMembers are the table files which must be present in the archive for
// a subset run to start
var RequiredMembers = []string{
	"ADMISSIONS.csv.gz",
	"PATIENTS.csv.gz",
	"ICUSTAYS.csv.gz",
}

// Archive provides read access to the gzipped CSV members of a MIMIC-III zip
// archive. The archive layout is a single root directory containing one
// <TABLE>.csv.gz member per table.
type Archive struct {
	path    string
	reader  *zip.ReadCloser
	rootDir string
	// members keyed by base name, e.g. "ADMISSIONS.csv.gz"
	members map[string]*zip.File
}

// Open opens the archive at the given path and verifies the required members
// are present
func Open(path string) (*Archive, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("the file %s does not exist", path)
	}

	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%s is not a valid zip file: %w", path, err)
	}

	if len(reader.File) == 0 {
		reader.Close()
		return nil, fmt.Errorf("%s is empty", path)
	}

	// the root directory is the first path segment of the first member
	rootDir, _, _ := strings.Cut(reader.File[0].Name, "/")

	a := &Archive{
		path:    path,
		reader:  reader,
		rootDir: rootDir,
		members: make(map[string]*zip.File),
	}
	for _, f := range reader.File {
		name, ok := strings.CutPrefix(f.Name, rootDir+"/")
		if !ok || name == "" || strings.Contains(name, "/") {
			continue
		}
		a.members[name] = f
	}

	if missing := a.missingMembers(); len(missing) > 0 {
		reader.Close()
		return nil, fmt.Errorf("the following required files are missing in the zip file: %s", strings.Join(missing, ", "))
	}

	return a, nil
}

func (a *Archive) missingMembers() []string {
	var missing []string
	for _, m := range RequiredMembers {
		if _, ok := a.members[m]; !ok {
			missing = append(missing, fmt.Sprintf("%s/%s", a.rootDir, m))
		}
	}
	return missing
}

func (a *Archive) Path() string {
	return a.path
}

func (a *Archive) RootDir() string {
	return a.rootDir
}

func (a *Archive) HasMember(name string) bool {
	_, ok := a.members[name]
	return ok
}

// OpenMember returns a gzip-decompressing reader over the named member.
// The caller must close the returned reader.
func (a *Archive) OpenMember(name string) (io.ReadCloser, error) {
	f, ok := a.members[name]
	if !ok {
		return nil, fmt.Errorf("member %s not found in %s", name, a.path)
	}

	raw, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", f.Name, err)
	}

	gzReader, err := gzip.NewReader(raw)
	if err != nil {
		raw.Close()
		return nil, fmt.Errorf("error creating gzip reader for %s: %w", f.Name, err)
	}

	return &memberReader{gz: gzReader, raw: raw}, nil
}

// CopyMember writes the decompressed member bytes to w unmodified - used for
// the dictionary-table passthrough
func (a *Archive) CopyMember(name string, w io.Writer) (int64, error) {
	r, err := a.OpenMember(name)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	n, err := io.Copy(w, r)
	if err != nil {
		return n, fmt.Errorf("error reading %s: %w", name, err)
	}
	return n, nil
}

func (a *Archive) Close() error {
	return a.reader.Close()
}

// memberReader closes both the gzip reader and the underlying zip member stream
type memberReader struct {
	gz  *gzip.Reader
	raw io.ReadCloser
}

func (m *memberReader) Read(p []byte) (int, error) {
	return m.gz.Read(p)
}

func (m *memberReader) Close() error {
	gzErr := m.gz.Close()
	rawErr := m.raw.Close()
	if gzErr != nil {
		return gzErr
	}
	return rawErr
}
