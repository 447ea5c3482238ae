package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidCursor marks a pagination token that failed decoding or does not
// match the active sort chain. It is recovered inside the engine by starting
// from the first page and is never surfaced to callers.
var ErrInvalidCursor = errors.New("invalid pagination cursor")

// ErrProductNotFound is returned by detail lookups for unknown ids.
var ErrProductNotFound = errors.New("product not found")

// CatalogQueryError wraps any store or transport failure encountered while
// executing a catalog query. No partial results accompany it.
type CatalogQueryError struct {
	Cause error
}

func (e *CatalogQueryError) Error() string {
	return fmt.Sprintf("catalog query failed: %v", e.Cause)
}

func (e *CatalogQueryError) Unwrap() error { return e.Cause }

// QueryFailed wraps err as a CatalogQueryError unless it already is one.
func QueryFailed(err error) error {
	var cqe *CatalogQueryError
	if errors.As(err, &cqe) {
		return err
	}
	return &CatalogQueryError{Cause: err}
}

// InvalidFilterError reports a filter combination the caller layer should
// reject up front, e.g. an inverted price range.
type InvalidFilterError struct {
	Reason string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter combination: %s", e.Reason)
}
