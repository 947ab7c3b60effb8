package domain

// Settings is the restaurant profile the admission rules run against.
// It is injected rather than hard-coded so tests and deployments can vary
// capacity and operating hours.
type Settings struct {
	OpeningTime      TimeOfDay
	ClosingTime      TimeOfDay
	MaxTables        int
	SeatsPerTable    int
	OccupancyMinutes int // how long one reservation holds its tables
}

// DefaultSettings returns the production profile: open 19:00 to 23:59, five
// tables of four seats, one hour per reservation.
func DefaultSettings() Settings {
	return Settings{
		OpeningTime:      19 * 60,
		ClosingTime:      23*60 + 59,
		MaxTables:        5,
		SeatsPerTable:    4,
		OccupancyMinutes: 60,
	}
}

// TablesFor returns the exact number of tables a party of guests must
// reserve: ceil(guests / seats per table), no slack in either direction.
func (s Settings) TablesFor(guests int) int {
	return (guests + s.SeatsPerTable - 1) / s.SeatsPerTable
}

// WithinOperatingHours reports whether a reservation starting at t is inside
// the operating window. The closing clause compares the occupancy end against
// one minute past closing using wrapping clock arithmetic: with the default
// 23:59 close it only rules out a start whose occupancy ends exactly at
// midnight.
func (s Settings) WithinOperatingHours(t TimeOfDay) bool {
	if t < s.OpeningTime {
		return false
	}
	return t.Add(s.OccupancyMinutes) > s.ClosingTime.Add(1)
}

// Overlaps reports whether the occupancy windows starting at a and b share
// any time. Windows that touch exactly at the boundary count as overlapping.
func (s Settings) Overlaps(a, b TimeOfDay) bool {
	return a <= b.Add(s.OccupancyMinutes) && a.Add(s.OccupancyMinutes) >= b
}
