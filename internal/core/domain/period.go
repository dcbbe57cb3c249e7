package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minPeriodYear = 1900
	maxPeriodYear = 2100

	// Days of the month generated tasks are dated on.
	documentsDay    = 1
	declarationsDay = 25
)

// Period is a calendar month.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Validate checks the month and year ranges.
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("invalid month %d: must be between 1 and 12", p.Month)
	}
	if p.Year < minPeriodYear || p.Year > maxPeriodYear {
		return fmt.Errorf("invalid year %d: must be between %d and %d", p.Year, minPeriodYear, maxPeriodYear)
	}
	return nil
}

// ParsePeriod parses month and year strings strictly: both must be whole
// base-10 integers within range.
func ParsePeriod(month, year string) (Period, error) {
	if strings.TrimSpace(month) == "" || strings.TrimSpace(year) == "" {
		return Period{}, fmt.Errorf("missing month or year parameter")
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return Period{}, fmt.Errorf("invalid month %q: must be between 1 and 12", month)
	}
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return Period{}, fmt.Errorf("invalid year %q", year)
	}
	p := Period{Month: m, Year: y}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// PeriodOf returns the period a date belongs to, in UTC.
func PeriodOf(t time.Time) Period {
	t = t.UTC()
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// Day returns the given day of the period at UTC midnight.
func (p Period) Day(day int) time.Time {
	return time.Date(p.Year, time.Month(p.Month), day, 0, 0, 0, 0, time.UTC)
}

// FirstDay is the date of document-collection tasks.
func (p Period) FirstDay() time.Time { return p.Day(documentsDay) }

// DeclarationsDay is the date of declaration tasks.
func (p Period) DeclarationsDay() time.Time { return p.Day(declarationsDay) }

// IsQuarterEnd reports whether the month closes a calendar quarter.
func (p Period) IsQuarterEnd() bool {
	return p.Month%3 == 0
}

// Today returns the UTC calendar day of now.
func Today(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
