package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/iancoleman/strcase"

	"github.com/medlearn/mimic-subset/subset"
)

const readmeFileName = "README.md"

const readmeTemplate = `# MIMIC-III Subset

This directory contains a subset of the MIMIC-III database created for educational purposes.

## Dataset Information

- **Original Source**: MIMIC-III Clinical Database v1.4
- **Subset Creation Date**: {{ .CreatedAt.Format "2006-01-02" }}
- **Sample Size**: {{ .SampleSize }} randomly selected hospital admissions
- **Random Seed**: {{ .Seed }}

## Contents

{{ range $i, $t := .Tables }}{{ inc $i }}. **{{ $t.Table.OutputName }}** ({{ display $t.Table.Name }}): {{ $t.Rows }} rows, {{ $t.Columns }} columns - {{ $t.Table.Description }}
{{ end }}
## Dictionary Tables

{{ range $i, $t := .DictionaryTables }}{{ inc $i }}. **{{ $t.Table.OutputName }}** ({{ display $t.Table.Name }}): {{ $t.Rows }} rows, {{ $t.Columns }} columns - {{ $t.Table.Description }}
{{ end }}
## Statistics

- Number of unique patients: {{ .UniquePatients }}
- Number of unique hospital admissions: {{ .UniqueAdmissions }}
- Number of unique ICU stays: {{ .UniqueIcuStays }}

## Notes

- This subset maintains the same structure and relationships as the original MIMIC-III database
- CHARTEVENTS has been filtered to include only vital signs
- LABEVENTS includes up to {{ .MaxLabsPerSubject }} lab tests per patient
- Dictionary tables are unmodified copies of their source
`

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"display": func(name string) string {
		return strcase.ToCamel(strings.ToLower(name))
	},
}

// Generate renders the README describing a completed subset run
func Generate(res *subset.Result) (string, error) {
	tmpl, err := template.New(readmeFileName).Funcs(templateFuncs).Parse(readmeTemplate)
	if err != nil {
		return "", fmt.Errorf("error parsing readme template: %w", err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, res); err != nil {
		return "", fmt.Errorf("error generating readme: %w", err)
	}
	return sb.String(), nil
}

// Write generates the README and writes it to the run's output directory,
// returning the file path
func Write(res *subset.Result) (string, error) {
	content, err := Generate(res)
	if err != nil {
		return "", err
	}

	path := filepath.Join(res.OutputDir, readmeFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("error writing %s: %w", path, err)
	}
	return path, nil
}
