package logging

// Standardized field names for structured logging.
// These constants keep log output consistent across the application,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile       = "file_path"
	FieldSheet      = "sheet"
	FieldMonth      = "month"
	FieldRow        = "row"
	FieldCategory   = "category"
	FieldLabel      = "label"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldDirectory  = "directory"
)
