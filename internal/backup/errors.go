package backup

import "fmt"

// InvalidSourceError reports a declared source path that is neither a regular
// file nor a directory, or does not exist. A silently-skipped source defeats
// the purpose of a backup tool, so this is always fatal to the run.
type InvalidSourceError struct {
	Path string
	Err  error
}

func (e *InvalidSourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid source %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid source %s: neither file nor directory", e.Path)
}

func (e *InvalidSourceError) Unwrap() error { return e.Err }

// ParseError reports a malformed line in a previous-run manifest.
// Line numbers start at 1.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("manifest line %d: %s", e.Line, e.Reason)
}

// FileReadError reports an I/O failure while walking or hashing. A file that
// vanishes or becomes unreadable between enumeration and hashing aborts the
// whole run rather than being silently omitted.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// ArchiverError reports a failed archive step, surfaced from the external
// archiver collaborator.
type ArchiverError struct {
	Destination string
	Err         error
}

func (e *ArchiverError) Error() string {
	return fmt.Sprintf("archiving to %s: %v", e.Destination, e.Err)
}

func (e *ArchiverError) Unwrap() error { return e.Err }
