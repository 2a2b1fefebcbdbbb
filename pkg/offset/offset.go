// Package offset shifts calendar dates by business days, months or years and
// moves results that land on a weekend to the adjacent business day.
//
// Business days use a fixed five-per-week shortcut rather than walking the
// calendar: amount is split into amount/5 whole weeks and amount%5 extra days,
// using Go's truncating division. Holidays are not modelled.
package offset

import (
	"strconv"
	"strings"
	"time"

	"github.com/username/bizdate/pkg/dateutil"
)

// Representable year range for results
const (
	MinYear = 1
	MaxYear = 9999
)

// Unit is the granularity of an offset
type Unit int

const (
	BusinessDays Unit = iota + 1
	Months
	Years
)

// Codes lists the accepted unit codes
var Codes = []string{"BD", "M", "Y"}

// String returns the unit code
func (u Unit) String() string {
	switch u {
	case BusinessDays:
		return "BD"
	case Months:
		return "M"
	case Years:
		return "Y"
	}
	return "Unit(" + strconv.Itoa(int(u)) + ")"
}

// ParseUnit maps a case-insensitive code ("BD", "M", "Y") to a Unit
func ParseUnit(code string) (Unit, error) {
	switch strings.ToUpper(code) {
	case "BD":
		return BusinessDays, nil
	case "M":
		return Months, nil
	case "Y":
		return Years, nil
	}
	return 0, &InvalidUnitError{Unit: code, Valid: append([]string(nil), Codes...)}
}

// Func is the signature shared by Compute and its wrappers
type Func func(start time.Time, amount int, unit Unit) (time.Time, error)

// Compute offsets start by amount units and bridges a weekend result.
// A zero amount returns start unchanged, even on a weekend.
func Compute(start time.Time, amount int, unit Unit) (time.Time, error) {
	raw, err := apply(start, amount, unit)
	if err != nil {
		return time.Time{}, err
	}

	result := bridgeWeekend(raw, amount)
	if err := checkRange(result); err != nil {
		return time.Time{}, err
	}
	return result, nil
}

// ComputeCode is Compute with the unit given as a code string
func ComputeCode(start time.Time, amount int, code string) (time.Time, error) {
	unit, err := ParseUnit(code)
	if err != nil {
		return time.Time{}, err
	}
	return Compute(start, amount, unit)
}

// Amounts beyond these bounds cannot stay within MinYear..MaxYear.
const (
	maxWeeks  = (MaxYear + 1) * 53
	maxMonths = (MaxYear + 1) * 12
	maxYears  = MaxYear + 1
)

func apply(start time.Time, amount int, unit Unit) (time.Time, error) {
	switch unit {
	case BusinessDays:
		weeks := amount / 5
		days := amount % 5
		if weeks > maxWeeks || weeks < -maxWeeks {
			return time.Time{}, &OverflowError{Year: overflowYear(amount)}
		}
		raw := start.AddDate(0, 0, 7*weeks+days)
		return raw, checkRange(raw)

	case Months:
		if amount > maxMonths || amount < -maxMonths {
			return time.Time{}, &OverflowError{Year: overflowYear(amount)}
		}
		total := int(start.Month()) - 1 + amount
		year := start.Year() + floorDiv(total, 12)
		month := time.Month(total - floorDiv(total, 12)*12 + 1)
		return build(start, year, month)

	case Years:
		if amount > maxYears || amount < -maxYears {
			return time.Time{}, &OverflowError{Year: overflowYear(amount)}
		}
		return build(start, start.Year()+amount, start.Month())
	}

	return time.Time{}, &InvalidUnitError{Unit: unit.String(), Valid: append([]string(nil), Codes...)}
}

// build keeps start's day, clock and location; time.Date would silently
// normalise a missing day into the next month.
func build(start time.Time, year int, month time.Month) (time.Time, error) {
	if year < MinYear || year > MaxYear {
		return time.Time{}, &OverflowError{Year: year}
	}
	if start.Day() > dateutil.DaysInMonth(year, month) {
		return time.Time{}, &InvalidDateError{Year: year, Month: month, Day: start.Day()}
	}
	return time.Date(year, month, start.Day(),
		start.Hour(), start.Minute(), start.Second(), start.Nanosecond(), start.Location()), nil
}

func bridgeWeekend(date time.Time, amount int) time.Time {
	if amount == 0 || !dateutil.IsWeekend(date) {
		return date
	}

	saturday := date.Weekday() == time.Saturday
	switch {
	case amount > 0 && saturday:
		return date.AddDate(0, 0, 2)
	case amount > 0:
		return date.AddDate(0, 0, 1)
	case saturday:
		return date.AddDate(0, 0, -1)
	}
	return date.AddDate(0, 0, -2)
}

func checkRange(date time.Time) error {
	if y := date.Year(); y < MinYear || y > MaxYear {
		return &OverflowError{Year: y}
	}
	return nil
}

func overflowYear(amount int) int {
	if amount < 0 {
		return MinYear - 1
	}
	return MaxYear + 1
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
