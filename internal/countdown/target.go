package countdown

import "time"

// TargetForYear returns midnight at the start of year in loc.
func TargetForYear(year int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
}

// DefaultTarget returns the next New Year's midnight after now, in now's
// location.
func DefaultTarget(now time.Time) time.Time {
	return TargetForYear(now.Year()+1, now.Location())
}
