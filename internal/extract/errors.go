package extract

import (
	"fmt"
	"time"
)

// ParseError reports HTML that could not be parsed at all.
// Pages that parse but contain no status table are not errors; they are
// normal zero-record days (holidays and archive gaps).
type ParseError struct {
	// Date is the report date whose page failed to parse.
	Date time.Time

	// Err is the underlying parser error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Date.Format("2006-01-02"), e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *ParseError) Unwrap() error {
	return e.Err
}
