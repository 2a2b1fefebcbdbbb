package offset

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidUnit is matched by every *InvalidUnitError
	ErrInvalidUnit = errors.New("invalid offset unit")
	// ErrInvalidDate is matched by every *InvalidDateError
	ErrInvalidDate = errors.New("invalid date")
	// ErrOverflow is matched by every *OverflowError
	ErrOverflow = errors.New("date out of range")
)

// InvalidUnitError reports an unrecognised unit code
type InvalidUnitError struct {
	Unit  string
	Valid []string
}

func (e *InvalidUnitError) Error() string {
	quoted := make([]string, len(e.Valid))
	for i, v := range e.Valid {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return fmt.Sprintf("unrecognised offset unit %q, use %s", e.Unit, strings.Join(quoted, ", "))
}

// Is lets errors.Is match ErrInvalidUnit
func (e *InvalidUnitError) Is(target error) bool {
	return target == ErrInvalidUnit
}

// InvalidDateError reports a day-of-month that does not exist in the target month
type InvalidDateError struct {
	Year  int
	Month time.Month
	Day   int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %04d-%02d-%02d does not exist", e.Year, int(e.Month), e.Day)
}

// Is lets errors.Is match ErrInvalidDate
func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}

// OverflowError reports a result outside years MinYear..MaxYear
type OverflowError struct {
	Year int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("date out of range: year %d not in %d..%d", e.Year, MinYear, MaxYear)
}

// Is lets errors.Is match ErrOverflow
func (e *OverflowError) Is(target error) bool {
	return target == ErrOverflow
}
