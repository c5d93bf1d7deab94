package generic

// =============================================================================
// PERIOD - Closed calendar interval
// =============================================================================

// Period is the closed interval [Start, End].
//
// Examples:
//   - Easter reference window: Jan 1 - Apr 30
//   - Christmas reference window: May 1 - Dec 31
//   - Employment: hire date - termination date
type Period struct {
	Start Date
	End   Date
}

// Days returns the inclusive length of the period.
func (p Period) Days() int {
	if p.End.Before(p.Start) {
		return 0
	}
	return InclusiveDays(p.Start, p.End)
}

// OverlapDays counts the days of p during which an employment that started
// at hire (and ended at end, if set) was active.
func (p Period) OverlapDays(hire Date, end *Date) int {
	return OverlapDays(p.Start, p.End, hire, end)
}
