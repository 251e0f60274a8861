package eligibility

import "time"

// DetectConflicts simulates granting a request over the availability table:
// one fewer pilot available on every day in [start, end]. Each day where the
// simulated headcount drops below the requirement yields a conflict carrying
// the post-grant deficit. A day landing exactly on the requirement is not a
// conflict.
func DetectConflicts(table []DailyAvailability, start, end time.Time) []Conflict {
	var conflicts []Conflict
	for _, day := range table {
		if day.Date.Before(start) || day.Date.After(end) {
			continue
		}
		remaining := day.Available - 1
		if remaining < day.Required {
			conflicts = append(conflicts, Conflict{
				Date:    day.Date,
				Role:    day.Role,
				Deficit: day.Required - remaining,
			})
		}
	}
	return conflicts
}

// coveredDays counts the days of [start, end] present in the table, i.e.
// the part of a request that falls inside the evaluated window.
func coveredDays(table []DailyAvailability, start, end time.Time) int {
	count := 0
	for _, day := range table {
		if !day.Date.Before(start) && !day.Date.After(end) {
			count++
		}
	}
	return count
}
