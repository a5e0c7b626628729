// Package session owns the loaded portfolio. It scans the data directory,
// runs each workbook through the reader, normalizer, classifier, and
// aggregator, and swaps complete results in atomically so readers never see
// a half-finished refresh.
package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fjacquet/budget-board/internal/aggregate"
	"fjacquet/budget-board/internal/budgeterror"
	"fjacquet/budget-board/internal/classify"
	"fjacquet/budget-board/internal/fileutils"
	"fjacquet/budget-board/internal/logging"
	"fjacquet/budget-board/internal/metrics"
	"fjacquet/budget-board/internal/models"
	"fjacquet/budget-board/internal/normalize"
	"fjacquet/budget-board/internal/workbook"
)

const xlsxExtension = ".xlsx"

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for this package
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// State describes the lifecycle of the session's portfolio.
type State string

const (
	// StateEmpty means no load has completed yet.
	StateEmpty State = "empty"
	// StateLoaded means a complete portfolio is available.
	StateLoaded State = "loaded"
	// StateRefreshing means a scan is in progress; the previous portfolio
	// stays visible until it finishes.
	StateRefreshing State = "refreshing"
)

// Session coordinates loads, refreshes, and uploads against one data
// directory. All methods are safe for concurrent use.
type Session struct {
	dataDir    string
	reader     *workbook.Reader
	classifier *classify.Classifier
	engine     *metrics.Engine

	// refreshMu serializes scans; mu guards the published snapshot.
	refreshMu sync.Mutex
	mu        sync.RWMutex
	portfolio *models.Portfolio
	report    *models.LoadReport
	state     State
}

// NewSession builds a session over the given data directory. Nothing is
// loaded until LoadOrRefresh runs.
func NewSession(dataDir string, reader *workbook.Reader, classifier *classify.Classifier, engine *metrics.Engine) *Session {
	return &Session{
		dataDir:    dataDir,
		reader:     reader,
		classifier: classifier,
		engine:     engine,
		portfolio:  models.NewPortfolio(nil),
		report:     &models.LoadReport{},
		state:      StateEmpty,
	}
}

// Portfolio returns the current snapshot. Never nil.
func (s *Session) Portfolio() *models.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.portfolio
}

// Report returns the report of the last completed load or upload.
func (s *Session) Report() *models.LoadReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// State returns the session's lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Metrics computes derived metrics for the current snapshot.
func (s *Session) Metrics() models.MetricsResult {
	return s.engine.Compute(s.Portfolio())
}

// LoadOrRefresh rescans the data directory and replaces the portfolio with
// the result. The swap happens only after the whole scan succeeds; on error
// the previous portfolio and state stay in place. File-level problems never
// fail the scan, they are collected in the report.
func (s *Session) LoadOrRefresh(ctx context.Context) (*models.Portfolio, *models.LoadReport, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	previous := s.swapState(StateRefreshing)

	portfolio, report, err := s.scan(ctx)
	if err != nil {
		s.swapState(previous)
		return nil, nil, err
	}

	s.mu.Lock()
	s.portfolio = portfolio
	s.report = report
	s.state = StateLoaded
	s.mu.Unlock()

	log.WithFields(
		logging.Field{Key: logging.FieldDirectory, Value: s.dataDir},
		logging.Field{Key: logging.FieldCount, Value: report.FilesLoaded},
	).Info("Portfolio loaded")

	return portfolio, report, nil
}

// Upload validates and parses one workbook from a stream, stores it in the
// data directory, and swaps in a portfolio with that month replaced. On any
// failure the current portfolio is untouched and no partial file remains.
func (s *Session) Upload(ctx context.Context, filename string, r io.Reader) (*models.Portfolio, *models.LoadReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	name := filepath.Base(filename)
	if !strings.EqualFold(filepath.Ext(name), xlsxExtension) {
		return nil, nil, &budgeterror.ValidationError{FilePath: filename, Reason: "only .xlsx workbooks can be uploaded"}
	}
	if isTemplateFile(name) {
		return nil, nil, &budgeterror.ValidationError{FilePath: filename, Reason: "template workbooks cannot be uploaded as months"}
	}
	if _, _, err := aggregate.MonthFromFilename(name); err != nil {
		return nil, nil, err
	}
	if !fileutils.DirectoryExists(s.dataDir) {
		return nil, nil, &budgeterror.MissingDataDirectoryError{Directory: s.dataDir}
	}

	tmp, err := os.CreateTemp(s.dataDir, ".upload-*"+xlsxExtension)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temporary upload file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if removeErr := os.Remove(tmpPath); removeErr != nil && !os.IsNotExist(removeErr) {
			log.WithError(removeErr).WithField(logging.FieldFile, tmpPath).Warn("Failed to remove temporary upload file")
		}
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return nil, nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, nil, fmt.Errorf("failed to store upload: %w", err)
	}

	record, warnings, err := s.loadFile(tmpPath, name)
	if err != nil {
		return nil, nil, err
	}

	if err := fileutils.MoveFile(tmpPath, filepath.Join(s.dataDir, name)); err != nil {
		return nil, nil, fmt.Errorf("failed to store upload: %w", err)
	}

	report := &models.LoadReport{FilesLoaded: 1}
	report.AddWarnings(warnings...)

	s.mu.Lock()
	s.portfolio = s.portfolio.ReplaceMonth(record)
	s.report = report
	s.state = StateLoaded
	portfolio := s.portfolio
	s.mu.Unlock()

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: name},
		logging.Field{Key: logging.FieldMonth, Value: record.Month},
	).Info("Workbook uploaded")

	return portfolio, report, nil
}

// scan builds a fresh portfolio from every month workbook in the data
// directory. Template workbooks are not months and are never loaded.
func (s *Session) scan(ctx context.Context) (*models.Portfolio, *models.LoadReport, error) {
	if !fileutils.DirectoryExists(s.dataDir) {
		return nil, nil, &budgeterror.MissingDataDirectoryError{Directory: s.dataDir}
	}

	paths, err := fileutils.ListFilesWithExtension(s.dataDir, xlsxExtension)
	if err != nil {
		return nil, nil, err
	}

	report := &models.LoadReport{}
	records := make([]*models.MonthlyRecord, 0, len(paths))
	loadedMonths := make(map[int]string)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		name := filepath.Base(path)
		if isTemplateFile(name) {
			continue
		}

		record, warnings, err := s.loadFile(path, name)
		report.AddWarnings(warnings...)
		if err != nil {
			log.WithError(err).WithField(logging.FieldFile, name).Warn("Skipping workbook")
			report.AddSkippedFile(name, err.Error())
			continue
		}

		if first, ok := loadedMonths[record.MonthIndex]; ok {
			report.AddSkippedFile(name, fmt.Sprintf("duplicate month %s, already loaded from %s", record.Month, first))
			continue
		}
		loadedMonths[record.MonthIndex] = name

		records = append(records, record)
		report.FilesLoaded++
	}

	return models.NewPortfolio(records), report, nil
}

// loadFile runs one workbook through the full pipeline. sourceName is the
// file name used for month detection and reporting; it may differ from path
// when reading an upload from its temporary file.
func (s *Session) loadFile(path, sourceName string) (*models.MonthlyRecord, []models.RowWarning, error) {
	wb, err := s.reader.Read(path)
	if err != nil {
		return nil, nil, err
	}
	wb.SourceName = sourceName

	txns, warnings := normalize.Normalize(wb)
	txns = s.classifier.ClassifyAll(txns)

	record, err := aggregate.Build(sourceName, txns, wb.Income)
	if err != nil {
		return nil, warnings, err
	}
	return record, warnings, nil
}

func (s *Session) swapState(state State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.state
	s.state = state
	return previous
}

func isTemplateFile(name string) bool {
	return strings.EqualFold(name, models.TemplateFileName) ||
		strings.EqualFold(name, models.BlankTemplateFileName)
}
