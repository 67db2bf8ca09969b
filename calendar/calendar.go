// Package calendar computes month grids and mood themes for the diary views.
// All date arithmetic is done directly on year/month/day integers.
package calendar

import "fmt"

// monthDays is indexed by zero-based month; February is corrected for leap
// years in DaysInMonth.
var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear applies the Gregorian rule: divisible by 4 and not by 100,
// unless also divisible by 400.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the day count for a zero-based month index.
func DaysInMonth(year, monthIndex int) int {
	if monthIndex == 1 && IsLeapYear(year) {
		return 29
	}
	return monthDays[monthIndex]
}

// FirstWeekday returns the weekday (0=Sunday..6=Saturday) of the first day
// of a zero-based month, via Sakamoto's congruence.
func FirstWeekday(year, monthIndex int) int {
	return Weekday(year, monthIndex, 1)
}

// sakamoto offsets, indexed by zero-based month
var sakamoto = [12]int{0, 3, 2, 5, 0, 3, 5, 1, 4, 6, 2, 4}

// Weekday returns the weekday (0=Sunday..6=Saturday) for a day of a
// zero-based month.
func Weekday(year, monthIndex, day int) int {
	y := year
	if monthIndex < 2 {
		y--
	}
	return (y + y/4 - y/100 + y/400 + sakamoto[monthIndex] + day) % 7
}

// DateKey formats the canonical zero-padded YYYY-MM-DD entry key for a day of
// a zero-based month.
func DateKey(year, monthIndex, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, monthIndex+1, day)
}

// Day is one cell of the month grid.
type Day struct {
	Day      int    `json:"day"`
	Key      string `json:"key"`
	HasEntry bool   `json:"hasEntry"`
}

// Month is the composed month view.
type Month struct {
	Year         int   `json:"year"`
	Month        int   `json:"month"` // zero-based
	FirstWeekday int   `json:"firstWeekday"`
	Days         []Day `json:"days"`
}

// MonthGrid composes the visible month: every day of the month with its
// entry key, marked by membership in entryDates.
func MonthGrid(year, monthIndex int, entryDates map[string]bool) Month {
	days := DaysInMonth(year, monthIndex)
	grid := Month{
		Year:         year,
		Month:        monthIndex,
		FirstWeekday: FirstWeekday(year, monthIndex),
		Days:         make([]Day, 0, days),
	}

	for day := 1; day <= days; day++ {
		key := DateKey(year, monthIndex, day)
		grid.Days = append(grid.Days, Day{
			Day:      day,
			Key:      key,
			HasEntry: entryDates[key],
		})
	}

	return grid
}
