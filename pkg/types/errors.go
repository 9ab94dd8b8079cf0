package types

import (
	"errors"
	"fmt"
)

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// Entity operation errors. These are fail-fast, caller-fixable errors raised
// before any transaction opens.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrInvalidID         = errors.New("invalid entity id")
	ErrNameEmpty         = errors.New("name must not be empty")
	ErrTextEmpty         = errors.New("text must not be empty")
	ErrRootGroup         = errors.New("operation not permitted on a journal's root group")
	ErrGroupNotInJournal = errors.New("group does not belong to the journal")
	ErrUnknownField      = errors.New("unknown updatable field")
)

// AbortError signals that a transaction body requested a rollback. It is
// distinct from incidental failures (SQL errors, context cancellation): the
// body observed a broken invariant, most commonly a just-inserted row that
// could not be read back.
type AbortError struct {
	Reason string
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("transaction aborted: %s", e.Reason)
}

// Abort returns an AbortError with the given reason. Returning it from a
// transaction body rolls the transaction back and propagates the error to
// the caller.
func Abort(reason string) error {
	return &AbortError{Reason: reason}
}

// IsAbort reports whether err is (or wraps) an AbortError.
func IsAbort(err error) bool {
	var ae *AbortError
	return errors.As(err, &ae)
}
