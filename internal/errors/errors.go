// Package errors defines typed errors with categories for the salvage pipeline.
// Only NotFound and StoreFailure stop a run; the other kinds are recorded as
// warnings on the import result.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// NotFound means the dump holds neither a create nor an insert for the table,
	// or a requested row is absent from the store.
	NotFound Kind = "not_found"
	// TranslationFailure means the translated structure could not be applied.
	TranslationFailure Kind = "translation_failure"
	// StatementFailure means a data statement or a single row failed.
	StatementFailure Kind = "statement_failure"
	// StoreFailure means the target store could not be opened, reset or queried.
	StoreFailure Kind = "store_failure"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// IsKind reports whether any error in err's chain is an *E of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
