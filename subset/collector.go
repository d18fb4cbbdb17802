package subset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/medlearn/mimic-subset/archive"
	"github.com/medlearn/mimic-subset/config"
	"github.com/medlearn/mimic-subset/events"
	"github.com/medlearn/mimic-subset/observable"
	"github.com/medlearn/mimic-subset/sampler"
	"github.com/medlearn/mimic-subset/table"
)

// how often to send status events during chunked scans
const statusUpdateInterval = 250 * time.Millisecond

// Collector runs the extract-filter-write pipeline over an opened archive and
// reports progress to its observers
type Collector struct {
	observable.ObservableImpl

	archive   *archive.Archive
	cfg       *config.SubsetConfig
	outputDir string

	status        *events.Status
	lastStatus    events.Status
	statusLimiter *rate.Limiter
}

func NewCollector(a *archive.Archive, cfg *config.SubsetConfig, outputDir string) *Collector {
	return &Collector{
		archive:       a,
		cfg:           cfg,
		outputDir:     outputDir,
		status:        events.NewStatusEvent(""),
		statusLimiter: rate.NewLimiter(rate.Every(statusUpdateInterval), 1),
	}
}

// Collect executes the pipeline: sample admissions, cascade the sample through
// the dependent tables, write the outputs and the dictionary passthroughs.
// The stages run strictly in sequence - no stage depends on a later one.
func (c *Collector) Collect(ctx context.Context) (res *Result, err error) {
	defer func() {
		if err != nil {
			e := events.NewErrorEvent(err)
			c.status.Update(e)
			if notifyErr := c.NotifyObservers(ctx, e); notifyErr != nil {
				slog.Warn("failed to notify observers of error", "error", notifyErr)
			}
		}
		admissions := 0
		tablesWritten := 0
		if res != nil {
			admissions = res.AdmissionCount()
			tablesWritten = len(res.Tables) + len(res.DictionaryTables)
		}
		if notifyErr := c.NotifyObservers(ctx, events.NewCompletedEvent(admissions, tablesWritten, err)); notifyErr != nil {
			slog.Warn("failed to notify observers of completion", "error", notifyErr)
		}
	}()

	sampleSize := c.cfg.GetSampleSize()
	seed := c.cfg.GetSeed()

	if err := c.NotifyObservers(ctx, events.NewStartedEvent(c.archive.Path(), sampleSize)); err != nil {
		slog.Warn("failed to notify observers of start", "error", err)
	}

	res = &Result{
		SampleSize:        sampleSize,
		Seed:              seed,
		MaxLabsPerSubject: c.cfg.GetMaxLabsPerSubject(),
		OutputDir:         c.outputDir,
		CreatedAt:         time.Now(),
	}

	// load the key tables
	admissions, err := c.readFrame(table.Admissions)
	if err != nil {
		return nil, err
	}
	patients, err := c.readFrame(table.Patients)
	if err != nil {
		return nil, err
	}
	icuStays, err := c.readFrame(table.IcuStays)
	if err != nil {
		return nil, err
	}

	// sample the admission identifiers
	allHadmIDs, err := admissions.UniqueValues(table.ColumnHadmID)
	if err != nil {
		return nil, err
	}
	sampled := sampler.New(seed).Sample(allHadmIDs.Values(), sampleSize)
	hadmIDs := table.NewKeySet(sampled...)
	slog.Info("Selected random hospital admissions", "requested", sampleSize, "selected", hadmIDs.Len())

	// cascade the sample through the key tables
	admissionsSubset, err := admissions.FilterByKey(table.ColumnHadmID, hadmIDs)
	if err != nil {
		return nil, err
	}
	subjectIDs, err := admissionsSubset.UniqueValues(table.ColumnSubjectID)
	if err != nil {
		return nil, err
	}
	patientsSubset, err := patients.FilterByKey(table.ColumnSubjectID, subjectIDs)
	if err != nil {
		return nil, err
	}
	icuStaysSubset, err := icuStays.FilterByKey(table.ColumnHadmID, hadmIDs)
	if err != nil {
		return nil, err
	}
	icuStayIDs, err := icuStaysSubset.UniqueValues(table.ColumnIcuStayID)
	if err != nil {
		return nil, err
	}

	type output struct {
		table table.Table
		frame *table.Frame
	}
	outputs := []output{
		{table.Admissions, admissionsSubset},
		{table.Patients, patientsSubset},
		{table.IcuStays, icuStaysSubset},
	}

	// load and filter the remaining dependent tables
	slog.Info("Extracting related data")
	for _, t := range []table.Table{table.DiagnosesIcd, table.ProceduresIcd, table.Prescriptions} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frame, err := c.readFrame(t)
		if err != nil {
			return nil, err
		}
		filtered, err := frame.FilterByKey(t.KeyColumn, hadmIDs)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, output{t, filtered})
	}

	// chunk-scan the large event tables
	chartEvents, err := c.scanChartEvents(ctx, icuStayIDs)
	if err != nil {
		return nil, err
	}
	outputs = append(outputs, output{table.ChartEvents, chartEvents})

	labEvents, err := c.scanLabEvents(ctx, subjectIDs)
	if err != nil {
		return nil, err
	}
	outputs = append(outputs, output{table.LabEvents, labEvents})

	// write the subset files
	slog.Info("Saving subset files")
	for _, o := range outputs {
		if err := c.writeFrame(ctx, res, o.table, o.frame); err != nil {
			return nil, err
		}
	}

	// copy the dictionary tables through unfiltered
	for _, t := range table.Dictionary {
		if err := c.copyDictionary(ctx, res, t); err != nil {
			return nil, err
		}
	}

	res.UniqueAdmissions = hadmIDs.Len()
	res.UniquePatients = subjectIDs.Len()
	res.UniqueIcuStays = icuStayIDs.Len()

	return res, nil
}

// readFrame loads an entire table from the archive into memory
func (c *Collector) readFrame(t table.Table) (*table.Frame, error) {
	slog.Info("Reading table from archive", "table", t.Name)
	r, err := c.archive.OpenMember(t.MemberName)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return table.ReadFrame(r, t.Name)
}

// scanChartEvents extracts vital-sign rows for the sampled ICU stays
func (c *Collector) scanChartEvents(ctx context.Context, icuStayIDs *table.KeySet) (*table.Frame, error) {
	slog.Info("Processing CHARTEVENTS in chunks")
	vitals := table.NewKeySet(c.cfg.GetVitalSignItemIDs()...)

	r, err := c.archive.OpenMember(table.ChartEvents.MemberName)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	makePredicate := func(f *table.Frame) (table.RowPredicate, error) {
		stayIdx, err := f.ColumnIndex(table.ColumnIcuStayID)
		if err != nil {
			return nil, err
		}
		itemIdx, err := f.ColumnIndex(table.ColumnItemID)
		if err != nil {
			return nil, err
		}
		return func(row []string) (bool, bool) {
			keep := icuStayIDs.Contains(row[stayIdx]) && vitals.Contains(row[itemIdx])
			return keep, false
		}, nil
	}

	return table.Scan(r, table.ChartEvents.Name, c.cfg.GetChunkSize(), makePredicate, c.onScanProgress(ctx, table.ChartEvents.Name))
}

// scanLabEvents extracts up to the configured number of lab events per sampled
// patient, stopping early once every patient has reached the cap
func (c *Collector) scanLabEvents(ctx context.Context, subjectIDs *table.KeySet) (*table.Frame, error) {
	slog.Info("Processing LABEVENTS in chunks")
	maxPerSubject := c.cfg.GetMaxLabsPerSubject()

	r, err := c.archive.OpenMember(table.LabEvents.MemberName)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	counts := make(map[string]int, subjectIDs.Len())
	for _, id := range subjectIDs.Values() {
		counts[id] = 0
	}
	remaining := subjectIDs.Len()

	makePredicate := func(f *table.Frame) (table.RowPredicate, error) {
		subjectIdx, err := f.ColumnIndex(table.ColumnSubjectID)
		if err != nil {
			return nil, err
		}
		return func(row []string) (bool, bool) {
			count, ok := counts[row[subjectIdx]]
			if !ok || count >= maxPerSubject {
				return false, false
			}
			counts[row[subjectIdx]]++
			if counts[row[subjectIdx]] == maxPerSubject {
				remaining--
			}
			return true, remaining == 0
		}, nil
	}

	return table.Scan(r, table.LabEvents.Name, c.cfg.GetChunkSize(), makePredicate, c.onScanProgress(ctx, table.LabEvents.Name))
}

// onScanProgress returns a progress func which updates the status event and
// notifies observers. Notifications are token-bucket limited to avoid flooding
// observers, and unchanged statuses are not re-sent
func (c *Collector) onScanProgress(ctx context.Context, tableName string) table.ProgressFunc {
	return func(scanned, retained int) {
		c.status.Table = tableName
		c.status.RowsScanned = scanned
		c.status.RowsRetained = retained
		if c.status.Equals(&c.lastStatus) {
			return
		}
		if c.statusLimiter.Allow() {
			c.lastStatus = *c.status
			if err := c.NotifyObservers(ctx, c.status); err != nil {
				slog.Warn("failed to notify observers of status", "error", err)
			}
		}
	}
}

func (c *Collector) writeFrame(ctx context.Context, res *Result, t table.Table, f *table.Frame) error {
	path := filepath.Join(c.outputDir, t.OutputName)
	slog.Info("Saving table", "path", path, "rows", f.RowCount())
	if err := f.WriteFile(path); err != nil {
		return err
	}

	res.Tables = append(res.Tables, TableResult{Table: t, Rows: f.RowCount(), Columns: f.ColumnCount()})

	e := events.NewTableWrittenEvent(t.Name, t.OutputName, f.RowCount(), f.ColumnCount())
	c.status.Update(e)
	return c.NotifyObservers(ctx, e)
}

// copyDictionary writes a dictionary table to the output directory as an
// unmodified byte copy of the archive member
func (c *Collector) copyDictionary(ctx context.Context, res *Result, t table.Table) error {
	path := filepath.Join(c.outputDir, t.OutputName)
	slog.Info("Saving dictionary table", "path", path)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	if _, err := c.archive.CopyMember(t.MemberName, file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", path, err)
	}

	rows, columns, err := c.dictionaryShape(t)
	if err != nil {
		return err
	}
	res.DictionaryTables = append(res.DictionaryTables, TableResult{Table: t, Rows: rows, Columns: columns})

	e := events.NewTableWrittenEvent(t.Name, t.OutputName, rows, columns)
	c.status.Update(e)
	return c.NotifyObservers(ctx, e)
}

// dictionaryShape counts the rows and columns of a dictionary member without
// materialising it
func (c *Collector) dictionaryShape(t table.Table) (int, int, error) {
	r, err := c.archive.OpenMember(t.MemberName)
	if err != nil {
		return 0, 0, err
	}
	defer r.Close()

	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("error reading %s header: %w", t.Name, err)
	}
	columns := len(header)

	rows := 0
	for {
		if _, err := reader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, 0, fmt.Errorf("error reading %s: %w", t.Name, err)
		}
		rows++
	}
	return rows, columns, nil
}
