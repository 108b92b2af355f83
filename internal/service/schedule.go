package service

import (
	"sort"
	"time"

	"github.com/iliyamo/cinema-admin-console/internal/model"
)

// Opening hours of a screening day.  The first showtime starts at OpenHour;
// no showtime may start after CloseHour.
const (
	OpenHour  = 11
	CloseHour = 22
)

// DayLayout is the date format used in URLs and filters.
const DayLayout = "2006-01-02"

// ParseDay reads a YYYY-MM-DD value as midnight in loc.  An empty or
// malformed value yields today.
func ParseDay(raw string, loc *time.Location, now time.Time) time.Time {
	if d, err := time.ParseInLocation(DayLayout, raw, loc); err == nil {
		return d
	}
	return StartOfDay(now, loc)
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// OnDay keeps the showtimes starting on day (in loc), sorted by start time.
func OnDay(showtimes []model.Showtime, day time.Time, loc *time.Location) []model.Showtime {
	want := day.In(loc).Format(DayLayout)
	var out []model.Showtime
	for _, st := range showtimes {
		if st.StartTime.In(loc).Format(DayLayout) == want {
			out = append(out, st)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime.Time) })
	return out
}

// NextSlot finds where a new showtime of a movie fits on day.  It starts when
// the latest showtime of the day ends, or at opening time when the day is
// empty, and ends after the movie plus the room's cleaning break.
func NextSlot(existing []model.Showtime, day time.Time, loc *time.Location, movieMinutes, breakMinutes int) (start, end time.Time, err error) {
	midnight := StartOfDay(day, loc)
	start = midnight.Add(OpenHour * time.Hour)
	closing := midnight.Add(CloseHour * time.Hour)
	for _, st := range OnDay(existing, day, loc) {
		if st.EndTime.After(start) {
			start = st.EndTime.In(loc)
		}
	}
	if start.After(closing) {
		return time.Time{}, time.Time{}, ErrScheduleFull
	}
	end = start.Add(time.Duration(movieMinutes+breakMinutes) * time.Minute)
	return start, end, nil
}
