package logging

// Structured logging keys.
const (
	FieldError    = "error"
	FieldDocument = "document"
	FieldIndex    = "index"
	FieldRange    = "range"
	FieldBlocks   = "blocks"
	FieldPath     = "path"
	FieldCommand  = "command"
	FieldExitCode = "exit_code"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
