package table

// Kind describes how a table is treated by the subset pipeline
type Kind string

const (
	// KindSampled is the top-level table the admission sample is drawn from
	KindSampled Kind = "sampled"
	// KindDependent tables are loaded in full and filtered by foreign key
	KindDependent Kind = "dependent"
	// KindScanned tables are too large to hold and are filtered in chunks
	KindScanned Kind = "scanned"
	// KindDictionary tables are copied through unfiltered
	KindDictionary Kind = "dictionary"
)

// foreign-key column names
const (
	ColumnHadmID    = "HADM_ID"
	ColumnSubjectID = "SUBJECT_ID"
	ColumnIcuStayID = "ICUSTAY_ID"
	ColumnItemID    = "ITEMID"
)

// Table describes one table of the MIMIC-III archive
type Table struct {
	// the table name, e.g. "ADMISSIONS"
	Name string
	// the archive member holding the table, e.g. "ADMISSIONS.csv.gz"
	MemberName string
	// the output file name, e.g. "ADMISSIONS.csv"
	OutputName string
	// the foreign-key column the subset filter is applied to
	// (empty for dictionary tables)
	KeyColumn string
	Kind      Kind
	// short description used in the generated README
	Description string
}

var (
	Admissions = Table{
		Name:        "ADMISSIONS",
		MemberName:  "ADMISSIONS.csv.gz",
		OutputName:  "ADMISSIONS.csv",
		KeyColumn:   ColumnHadmID,
		Kind:        KindSampled,
		Description: "hospital admissions (the sampling unit)",
	}
	Patients = Table{
		Name:        "PATIENTS",
		MemberName:  "PATIENTS.csv.gz",
		OutputName:  "PATIENTS.csv",
		KeyColumn:   ColumnSubjectID,
		Kind:        KindDependent,
		Description: "patients referenced by the sampled admissions",
	}
	IcuStays = Table{
		Name:        "ICUSTAYS",
		MemberName:  "ICUSTAYS.csv.gz",
		OutputName:  "ICUSTAYS.csv",
		KeyColumn:   ColumnHadmID,
		Kind:        KindDependent,
		Description: "ICU stays of the sampled admissions",
	}
	DiagnosesIcd = Table{
		Name:        "DIAGNOSES_ICD",
		MemberName:  "DIAGNOSES_ICD.csv.gz",
		OutputName:  "DIAGNOSES_ICD.csv",
		KeyColumn:   ColumnHadmID,
		Kind:        KindDependent,
		Description: "ICD-9 diagnoses of the sampled admissions",
	}
	ProceduresIcd = Table{
		Name:        "PROCEDURES_ICD",
		MemberName:  "PROCEDURES_ICD.csv.gz",
		OutputName:  "PROCEDURES_ICD.csv",
		KeyColumn:   ColumnHadmID,
		Kind:        KindDependent,
		Description: "ICD-9 procedures of the sampled admissions",
	}
	Prescriptions = Table{
		Name:        "PRESCRIPTIONS",
		MemberName:  "PRESCRIPTIONS.csv.gz",
		OutputName:  "PRESCRIPTIONS.csv",
		KeyColumn:   ColumnHadmID,
		Kind:        KindDependent,
		Description: "prescriptions of the sampled admissions",
	}
	ChartEvents = Table{
		Name:        "CHARTEVENTS",
		MemberName:  "CHARTEVENTS.csv.gz",
		OutputName:  "CHARTEVENTS_VITALS.csv",
		KeyColumn:   ColumnIcuStayID,
		Kind:        KindScanned,
		Description: "vital-sign chart events of the sampled ICU stays",
	}
	LabEvents = Table{
		Name:        "LABEVENTS",
		MemberName:  "LABEVENTS.csv.gz",
		OutputName:  "LABEVENTS_SAMPLE.csv",
		KeyColumn:   ColumnSubjectID,
		Kind:        KindScanned,
		Description: "a per-patient sample of lab events",
	}
)

// Dictionary tables are static reference tables copied through unfiltered
var Dictionary = []Table{
	{
		Name:        "D_ICD_DIAGNOSES",
		MemberName:  "D_ICD_DIAGNOSES.csv.gz",
		OutputName:  "D_ICD_DIAGNOSES.csv",
		Kind:        KindDictionary,
		Description: "ICD-9 diagnosis code dictionary",
	},
	{
		Name:        "D_ICD_PROCEDURES",
		MemberName:  "D_ICD_PROCEDURES.csv.gz",
		OutputName:  "D_ICD_PROCEDURES.csv",
		Kind:        KindDictionary,
		Description: "ICD-9 procedure code dictionary",
	},
	{
		Name:        "D_ITEMS",
		MemberName:  "D_ITEMS.csv.gz",
		OutputName:  "D_ITEMS.csv",
		Kind:        KindDictionary,
		Description: "chart event item dictionary",
	},
	{
		Name:        "D_LABITEMS",
		MemberName:  "D_LABITEMS.csv.gz",
		OutputName:  "D_LABITEMS.csv",
		Kind:        KindDictionary,
		Description: "lab item dictionary",
	},
}
