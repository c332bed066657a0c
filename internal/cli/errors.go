// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by editor plugins and scripts.
const (
	// Config errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// Note errors
	ErrNotANote        = "NOT_A_NOTE"
	ErrMalformedName   = "MALFORMED_FILENAME"
	ErrTitleNotFound   = "TITLE_NOT_FOUND"
	ErrNoteExistsCode  = "NOTE_EXISTS"
	ErrRenameConflict  = "RENAME_CONFLICT"
	ErrNoLinkAtOffset  = "NO_LINK_AT_OFFSET"
	ErrDirNotFound     = "DIR_NOT_FOUND"
	ErrInvalidArgument = "INVALID_ARGUMENT"

	// File errors
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"
	ErrFileExists     = "FILE_EXISTS"

	// Cache errors
	ErrDatabaseError = "DATABASE_ERROR"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues. Index warnings carry their own codes
// (MALFORMED_FILENAME, TITLE_CONFLICT, DUPLICATE_TITLE); these cover the rest.
const (
	WarnCacheUnavailable = "CACHE_UNAVAILABLE"
)
