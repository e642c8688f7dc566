package models

import (
	"errors"
	"fmt"
)

// Error kinds. Startup kinds (data load, model load, store connection) abort
// the run; parse and lookup errors only fail the record they belong to.
var (
	ErrDataLoad        = errors.New("reference data load failed")
	ErrParse           = errors.New("unparseable scraped cell")
	ErrLookup          = errors.New("no matching reference row")
	ErrModelLoad       = errors.New("model artifact load failed")
	ErrSchemaMismatch  = errors.New("feature schema does not match model")
	ErrStoreConnection = errors.New("document store unavailable")
	ErrStoreWrite      = errors.New("document store write failed")
)

// ParseError reports a scraped cell that does not match its expected pattern
type ParseError struct {
	Field string
	Text  string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s %q: %v", e.Field, e.Text, e.Err)
	}
	return fmt.Sprintf("parse %s %q", e.Field, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// LookupError reports a reference table with no usable row for a key
type LookupError struct {
	Table string // "solar" or "real_estate"
	Key   string
	Found int // rows matched; the real-estate lookup also fails on more than one
}

func (e *LookupError) Error() string {
	if e.Found > 1 {
		return fmt.Sprintf("%s lookup %s: %d rows matched, want exactly one", e.Table, e.Key, e.Found)
	}
	return fmt.Sprintf("%s lookup %s: no row", e.Table, e.Key)
}

func (e *LookupError) Is(target error) bool { return target == ErrLookup }

// ErrorKind names the kind of a record-level error for logs and run summaries
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrLookup):
		return "lookup"
	case errors.Is(err, ErrSchemaMismatch):
		return "schema"
	case errors.Is(err, ErrStoreWrite):
		return "store_write"
	default:
		return "other"
	}
}
