package errors

import (
	"errors"
	"fmt"
)

// TableNotFoundError is returned when a configured Airtable table does not
// exist or the token cannot see it. Sync treats it as skippable: the table
// is logged and the run continues with the remaining tables.
type TableNotFoundError struct {
	Table string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %q not found or not accessible", e.Table)
}

// NewTableNotFoundError creates a TableNotFoundError for the named table.
func NewTableNotFoundError(table string) *TableNotFoundError {
	return &TableNotFoundError{Table: table}
}

// IsTableNotFoundError reports whether err is a TableNotFoundError (even when wrapped).
func IsTableNotFoundError(err error) bool {
	var notFoundErr *TableNotFoundError
	return errors.As(err, &notFoundErr)
}
