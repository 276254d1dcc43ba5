package model

import "fmt"

// MalformedDocumentError is returned when the document text cannot be read as
// a single well-formed XML tree.
type MalformedDocumentError struct {
	Offset int64
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed document at byte %d: %v", e.Offset, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

// MissingSnapshotError is returned when the snapshot or element map required
// by a rebuild is absent.
type MissingSnapshotError struct {
	Path Path
	Err  error
}

func (e *MissingSnapshotError) Error() string {
	return fmt.Sprintf("missing %s: %v (run parse first)", e.Path, e.Err)
}

func (e *MissingSnapshotError) Unwrap() error { return e.Err }

// CorruptElementMapError is returned when the element map or the spans it
// leads to are inconsistent.
type CorruptElementMapError struct {
	Path   Path
	Reason string
}

func (e *CorruptElementMapError) Error() string {
	if e.Path == "" {
		return "corrupt element map: " + e.Reason
	}

	return fmt.Sprintf("corrupt element map (%s): %s", e.Path, e.Reason)
}

// InvalidLiteralError is returned when a property file literal does not match
// the grammar of its kind.
type InvalidLiteralError struct {
	Kind   Kind
	Reason string
}

func (e *InvalidLiteralError) Error() string {
	return fmt.Sprintf("invalid %s literal: %s", e.Kind, e.Reason)
}

// StageError attaches the failing rebuild stage to a fatal error.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
