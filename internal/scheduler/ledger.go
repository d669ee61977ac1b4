package scheduler

// resource kinds tracked by the booking ledger.
type resource uint8

const (
	facultyResource resource = iota
	sectionResource
	roomResource
)

// ledger tracks which timeslots each faculty member, section and room already
// holds within a single generation run, plus per-faculty lecture load and the
// days a (subject, section) quota has used. Bookings are never released
// mid-run: the engine does not backtrack.
type ledger struct {
	booked map[resource]map[int64]map[int64]struct{}
	load   map[int64]int
	days   map[string]map[string]struct{}
}

func newLedger() *ledger {
	return &ledger{
		booked: map[resource]map[int64]map[int64]struct{}{
			facultyResource: {},
			sectionResource: {},
			roomResource:    {},
		},
		load: map[int64]int{},
		days: map[string]map[string]struct{}{},
	}
}

func (l *ledger) free(kind resource, id, slotID int64) bool {
	slots, ok := l.booked[kind][id]
	if !ok {
		return true
	}
	_, taken := slots[slotID]
	return !taken
}

func (l *ledger) reserve(kind resource, id, slotID int64) {
	slots, ok := l.booked[kind][id]
	if !ok {
		slots = map[int64]struct{}{}
		l.booked[kind][id] = slots
	}
	slots[slotID] = struct{}{}
}

func (l *ledger) dayUsed(key, day string) bool {
	_, ok := l.days[key][day]
	return ok
}

func (l *ledger) markDay(key, day string) {
	if l.days[key] == nil {
		l.days[key] = map[string]struct{}{}
	}
	l.days[key][day] = struct{}{}
}

func (l *ledger) facultyLoad(id int64) int {
	return l.load[id]
}

func (l *ledger) addFacultyLoad(id int64) {
	l.load[id]++
}
