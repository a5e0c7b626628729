package models

// Defaults applied by the normalizer when a workbook omits optional columns.
const (
	DefaultWho  = "Unknown"
	DefaultWhom = "Vendor"
)

// Template workbook file names. These live in the data directory but are
// never loaded as monthly data; they are the only files the template
// download endpoint serves.
const (
	TemplateFileName      = "Template.xlsx"
	BlankTemplateFileName = "BlankTemplate.xlsx"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionOutputFile = 0644
)
