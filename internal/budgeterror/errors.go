// Package budgeterror defines the typed errors shared across the budget
// pipeline. Callers match them with errors.As to decide between skipping a
// file and aborting the run: file-level problems degrade to warnings, only
// a missing data directory is fatal.
package budgeterror

import "fmt"

// ParseError reports a cell or field value that could not be parsed.
type ParseError struct {
	File  string
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.File, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnreadableFileError reports a workbook that could not be opened as a
// spreadsheet (corrupt, wrong format, or unreadable).
type UnreadableFileError struct {
	FilePath string
	Err      error
}

func (e *UnreadableFileError) Error() string {
	return fmt.Sprintf("cannot read workbook '%s': %v", e.FilePath, e.Err)
}

func (e *UnreadableFileError) Unwrap() error {
	return e.Err
}

// UnknownMonthError reports a workbook filename with no recognizable month
// name in its base name.
type UnknownMonthError struct {
	FileName string
}

func (e *UnknownMonthError) Error() string {
	return fmt.Sprintf("no month name recognized in filename '%s'", e.FileName)
}

// MissingDataDirectoryError reports a data directory that does not exist or
// is not a directory. This is the only fatal condition at startup.
type MissingDataDirectoryError struct {
	Directory string
	Err       error
}

func (e *MissingDataDirectoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data directory '%s' is not usable: %v", e.Directory, e.Err)
	}
	return fmt.Sprintf("data directory '%s' does not exist", e.Directory)
}

func (e *MissingDataDirectoryError) Unwrap() error {
	return e.Err
}

// ValidationError reports input rejected before processing, such as an
// upload with the wrong file extension.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}
