package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldBackend   = "backend"
	FieldPath      = "path"
	FieldEntryID   = "entry_id"
	FieldCount     = "count"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentQuery    = "query"
	ComponentReport   = "report"
	ComponentStorage  = "storage"
	ComponentImporter = "importer"
	ComponentConfig   = "config"
)
