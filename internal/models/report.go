package models

import "fmt"

// RowWarning records a row that was skipped or partially salvaged during
// normalization. Warnings are collected and surfaced once per load, never
// raised as errors.
type RowWarning struct {
	File   string `json:"file"`
	Row    int    `json:"row"` // 1-based sheet row number, 0 when unknown
	Reason string `json:"reason"`
}

func (w RowWarning) String() string {
	if w.Row > 0 {
		return fmt.Sprintf("%s row %d: %s", w.File, w.Row, w.Reason)
	}
	return fmt.Sprintf("%s: %s", w.File, w.Reason)
}

// SkippedFile records a workbook that was excluded from the portfolio
// entirely, with the reason it was skipped.
type SkippedFile struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// LoadReport summarizes one load or refresh: how many workbooks made it in,
// which were skipped, and every row-level warning. The report is the single
// place warnings are surfaced; the pipeline itself never interrupts flow
// for them.
type LoadReport struct {
	FilesLoaded  int           `json:"files_loaded"`
	SkippedFiles []SkippedFile `json:"skipped_files"`
	Warnings     []RowWarning  `json:"warnings"`
}

// AddWarnings appends row warnings to the report.
func (r *LoadReport) AddWarnings(warnings ...RowWarning) {
	r.Warnings = append(r.Warnings, warnings...)
}

// AddSkippedFile records a workbook-level skip.
func (r *LoadReport) AddSkippedFile(file, reason string) {
	r.SkippedFiles = append(r.SkippedFiles, SkippedFile{File: file, Reason: reason})
}

// HasIssues reports whether anything was skipped or warned about.
func (r *LoadReport) HasIssues() bool {
	return len(r.SkippedFiles) > 0 || len(r.Warnings) > 0
}
