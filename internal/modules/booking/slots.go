package booking

import (
	"sort"
	"time"

	"photomarket/internal/domain"
)

const clockLayout = "15:04"

// FreeSlots computes the bookable start times for one calendar date.
// It is a pure function of its inputs: the photographer's declared
// intervals for that weekday, the day's pending/active bookings, the
// requested duration and the current instant. Re-running it with the
// same inputs yields the same result.
//
// Candidates are generated by stepping durationMin from each interval's
// start, so slots inside one interval never overlap each other; a
// candidate that would run past the interval end is dropped. Candidates
// not strictly after now are dropped (no booking of elapsed slots).
// A candidate survives when its half-open range [s, s+d) overlaps no
// booked range; touching endpoints do not conflict.
func FreeSlots(intervals []domain.ScheduleInterval, booked []domain.Booking, date time.Time, durationMin int, now time.Time) []string {
	if durationMin <= 0 {
		return []string{}
	}

	duration := time.Duration(durationMin) * time.Minute
	seen := make(map[string]struct{})
	out := make([]string, 0)

	for _, iv := range intervals {
		open, okOpen := clockOnDate(iv.StartTime, date)
		close, okClose := clockOnDate(iv.EndTime, date)
		if !okOpen || !okClose || !close.After(open) {
			continue
		}

		for cand := open; !cand.Add(duration).After(close); cand = cand.Add(duration) {
			if !cand.After(now) {
				continue
			}

			end := cand.Add(duration)
			free := true
			for i := range booked {
				if booked[i].Overlaps(cand, end) {
					free = false
					break
				}
			}
			if !free {
				continue
			}

			key := cand.Format(clockLayout)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}

	// Zero-padded HH:MM sorts chronologically.
	sort.Strings(out)
	return out
}

// clockOnDate pins an "HH:MM" catalog time onto the given calendar date.
func clockOnDate(clock string, date time.Time) (time.Time, bool) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), true
}
