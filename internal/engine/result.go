package engine

import "fmt"

// Status is the outcome of one data statement.
type Status int

const (
	// Succeeded means the statement applied as a whole.
	Succeeded Status = iota
	// Decomposed means the statement failed as a whole and was retried row by
	// row; at least one row made it.
	Decomposed
	// Dropped means no row of the statement made it.
	Dropped
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "OK"
	case Decomposed:
		return "DECOMPOSED"
	case Dropped:
		return "DROPPED"
	default:
		return "UNKNOWN"
	}
}

// StatementOutcome records what happened to one data statement.
type StatementOutcome struct {
	Line     int
	Status   Status
	Rows     int // tuples the statement carried
	Imported int
	Lost     int
	Err      error // first failure seen, nil when Succeeded
}

// Result is the report of one import. It is not modified after Import returns.
type Result struct {
	Table  string
	Tables []string // tables present in the store
	Rows   int      // final row count of Table

	// FallbackUsed is set when the canonical structure alone defines the table,
	// because there was no translated structure or it failed to apply.
	FallbackUsed bool
	// AnyInsertFailed is set when at least one statement was dropped entirely.
	AnyInsertFailed bool

	Attempted int // tuples found across all statements
	Imported  int // tuples that applied
	Lost      int // tuples that did not, plus unreadable statement remainders

	Outcomes []StatementOutcome
	Warnings []error
}

// Status summarizes the run for the report.
func (r *Result) Status() string {
	switch {
	case r.Attempted == 0 && r.Lost == 0:
		return "NO DATA"
	case r.Lost == 0:
		return "OK"
	default:
		return fmt.Sprintf("PARTIAL: %d/%d", r.Imported, r.Imported+r.Lost)
	}
}
