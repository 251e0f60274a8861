package roster

import (
	"errors"
	"fmt"
	"time"
)

// PeriodDays is the fixed length of a roster period. Leave and crewing are
// planned against 28-day cycles, 13 per year.
const PeriodDays = 28

const periodsPerYear = 13

var ErrBadPeriodCode = errors.New("invalid roster period code")

// Period is one 28-day scheduling window. Codes follow the fleet convention
// "RP<n>/<year>", e.g. RP11/2025.
type Period struct {
	Code  string    `json:"code"`
	Start time.Time `json:"startDate"`
	End   time.Time `json:"endDate"`
}

// Calendar derives periods from a fixed anchor: the first day of RP1 of the
// anchor year. All period arithmetic is pure offset math from that day.
type Calendar struct {
	anchor time.Time
}

func NewCalendar(anchor time.Time) Calendar {
	return Calendar{anchor: Day(anchor)}
}

// Day truncates a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (c Calendar) period(index int) Period {
	start := c.anchor.AddDate(0, 0, index*PeriodDays)
	number := index%periodsPerYear + 1
	year := c.anchor.Year() + index/periodsPerYear
	if index < 0 {
		// Go integer division truncates toward zero; shift negatives so the
		// numbering stays 1..13.
		year = c.anchor.Year() + (index-periodsPerYear+1)/periodsPerYear
		number = ((index%periodsPerYear)+periodsPerYear)%periodsPerYear + 1
	}
	return Period{
		Code:  fmt.Sprintf("RP%d/%d", number, year),
		Start: start,
		End:   start.AddDate(0, 0, PeriodDays-1),
	}
}

// FromCode resolves a period code such as "RP11/2025" to its date span.
func (c Calendar) FromCode(code string) (Period, error) {
	var number, year int
	if _, err := fmt.Sscanf(code, "RP%d/%d", &number, &year); err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrBadPeriodCode, code)
	}
	if number < 1 || number > periodsPerYear {
		return Period{}, fmt.Errorf("%w: period number %d out of range 1..%d", ErrBadPeriodCode, number, periodsPerYear)
	}
	index := (year-c.anchor.Year())*periodsPerYear + number - 1
	return c.period(index), nil
}

// Containing returns the period whose span includes the given day.
func (c Calendar) Containing(t time.Time) Period {
	days := int(Day(t).Sub(c.anchor).Hours() / 24)
	index := days / PeriodDays
	if days < 0 && days%PeriodDays != 0 {
		index--
	}
	return c.period(index)
}

// Next returns the period immediately after p.
func (c Calendar) Next(p Period) Period {
	return c.Containing(p.End.AddDate(0, 0, 1))
}
