package fireside

import "time"

// maxOccurrences bounds the dates returned for a single item so a
// degenerate frequency can never loop forever.
const maxOccurrences = 500

// OccurrencesWithin enumerates the calendar dates on which an item
// recurring at freq falls inside [today, today+windowDays]. A start date
// in the past is caught up to the window first. Returns nil when start
// is zero or the frequency is empty. The anchor day of month is taken
// from the start date.
func OccurrencesWithin(today time.Time, start time.Time, freq Frequency, windowDays int) []time.Time {
	if start.IsZero() {
		return nil
	}
	return occurrencesWithin(today, start, freq, windowDays, midnight(start).Day())
}

// occurrencesWithin is OccurrencesWithin with an explicit anchor day of
// month. Bill projection passes the bill's due day here so a 31st
// anchor survives clamped short months even when the start date itself
// already landed on a clamped day (due day 31 projected from February
// starts on the 28th but must return to the 31st in March).
func occurrencesWithin(today time.Time, start time.Time, freq Frequency, windowDays int, anchorDay int) []time.Time {
	if start.IsZero() || freq == "" || windowDays < 0 {
		return nil
	}

	today = midnight(today)
	current := midnight(start)
	end := today.AddDate(0, 0, windowDays)

	// Catch a past start date up to today: jump whole elapsed cycles in
	// one arithmetic move, then step across the remainder. Stepping must
	// move the date forward; bail out if it ever fails to, so bad data
	// cannot spin.
	if current.Before(today) {
		current = jumpCycles(current, today, freq, anchorDay)
	}
	for current.Before(today) {
		next := advanceAnchored(current, freq, anchorDay)
		if !next.After(current) {
			return nil
		}
		current = next
	}

	var dates []time.Time
	for !current.After(end) && len(dates) < maxOccurrences {
		dates = append(dates, current)

		next := advanceAnchored(current, freq, anchorDay)
		if !next.After(current) {
			break
		}
		current = next
	}

	return dates
}

// jumpCycles advances current by as many whole cycles as have fully
// elapsed before today, without iterating them, so an anchor date years
// in the past costs the same as one from last month. The result never
// overshoots the first occurrence on or after today.
func jumpCycles(current, today time.Time, freq Frequency, anchorDay int) time.Time {
	if days := freq.cycleDays(); days > 0 {
		if cycles := daysBetween(current, today) / days; cycles > 0 {
			return current.AddDate(0, 0, cycles*days)
		}
		return current
	}

	months := freq.cycleMonths()
	behind := (today.Year()-current.Year())*12 + int(today.Month()) - int(current.Month())
	if cycles := behind / months; cycles > 0 {
		return addMonthsClamped(current, cycles*months, anchorDay)
	}
	return current
}

// midnight truncates a time to the start of its calendar day.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween returns the whole calendar days from a to b, ignoring the
// time of day on either side.
func daysBetween(a, b time.Time) int {
	return int(midnight(b).Sub(midnight(a)).Hours() / 24)
}
