package scheduler

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/campus-dev/timetable-api/internal/models"
)

// Defaults applied when options are omitted.
const (
	DefaultMaxPasses     = 5
	DefaultCombineWindow = 3

	// MaxCombinedStudents caps the summed headcount of two sections sharing
	// a hall lecture.
	MaxCombinedStudents = 180
)

// Reference bundles the read-only collections a run schedules against.
type Reference struct {
	Faculty   []models.Faculty
	Rooms     []models.Room
	Sections  []models.Section
	Timeslots []models.Timeslot
}

// Request is one normalized lecture unit: a single session owed to a
// (subject, section) pair. The quota for a key is the count of requests
// sharing it; Frequency only drives the distinct-day rule. Metadata
// (duration, frequency, faculty) is taken from the first request seen per
// key.
type Request struct {
	Subject    string
	SectionID  int64
	Duration   int
	Frequency  int
	FacultyIDs []int64
}

// Placement is one produced assignment covering a single timeslot. Multi-hour
// lectures yield one placement per occupied slot; combined lectures list both
// section ids.
type Placement struct {
	Subject    string
	FacultyID  int64
	RoomID     int64
	TimeslotID int64
	SectionIDs []int64
}

// Result carries everything a generation run produced.
type Result struct {
	Timetable []Placement
	Skipped   []Skip
	Passes    int
}

// Sink receives placements as they are committed, letting the caller persist
// them mid-run. Sink errors are logged, not fatal: a run always completes.
type Sink func(ctx context.Context, p Placement) error

// Engine is a greedy, multi-pass lecture scheduler. It never backtracks
// across committed assignments and does not guarantee a feasible solution
// exists; unresolved quotas are reported, never dropped. All mutable state
// lives in a per-run value constructed inside Run, so one Engine may serve
// sequential runs. Concurrent runs against the same persisted store must be
// serialized by the caller.
type Engine struct {
	faculty       []models.Faculty
	rooms         []models.Room
	sections      []models.Section
	sectionByID   map[int64]models.Section
	timeslots     []models.Timeslot
	maxPasses     int
	combineWindow int
	shuffle       func([]string)
	sink          Sink
	logger        *zap.Logger
}

// Option mutates engine construction.
type Option func(*Engine)

// WithMaxPasses bounds the number of sweeps over pending quotas.
func WithMaxPasses(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxPasses = n
		}
	}
}

// WithCombineWindow sets how far the combiner looks for sibling sections.
func WithCombineWindow(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.combineWindow = n
		}
	}
}

// WithShuffle overrides the per-pass key ordering. Tests use a no-op shuffle
// to get deterministic runs; production keeps the randomized default so the
// same key does not always win scarce slots.
func WithShuffle(fn func(keys []string)) Option {
	return func(e *Engine) { e.shuffle = fn }
}

// WithSeed installs a seeded shuffle for reproducible runs.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		rng := rand.New(rand.NewSource(seed))
		e.shuffle = func(keys []string) {
			rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		}
	}
}

// WithSink registers a persist-as-produced callback.
func WithSink(sink Sink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithLogger attaches a logger for run diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New builds an engine over the reference collections. Sections are ordered
// by id for the combiner's locality window; timeslots are ordered by
// (day, start time) for first-fit scanning.
func New(ref Reference, opts ...Option) *Engine {
	e := &Engine{
		faculty:       ref.Faculty,
		rooms:         ref.Rooms,
		maxPasses:     DefaultMaxPasses,
		combineWindow: DefaultCombineWindow,
		logger:        zap.NewNop(),
	}

	e.sections = append([]models.Section(nil), ref.Sections...)
	sort.Slice(e.sections, func(i, j int) bool { return e.sections[i].ID < e.sections[j].ID })
	e.sectionByID = make(map[int64]models.Section, len(e.sections))
	for _, s := range e.sections {
		e.sectionByID[s.ID] = s
	}

	e.timeslots = append([]models.Timeslot(nil), ref.Timeslots...)
	sort.Slice(e.timeslots, func(i, j int) bool { return e.timeslots[i].Before(e.timeslots[j]) })

	for _, opt := range opts {
		opt(e)
	}
	if e.shuffle == nil {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		e.shuffle = func(keys []string) {
			rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		}
	}
	return e
}

// quotaMeta caches the scheduling parameters of a (subject, section) key,
// taken from the first request seen for it.
type quotaMeta struct {
	subject    string
	sectionID  int64
	duration   int
	frequency  int
	facultyIDs []int64
}

// runState owns every mutable structure of one generation run.
type runState struct {
	led       *ledger
	remaining map[string]int
	meta      map[string]quotaMeta
	paired    map[string]bool
	cursor    map[string]int
	report    report
	out       []Placement
}

func newRunState() *runState {
	return &runState{
		led:       newLedger(),
		remaining: map[string]int{},
		meta:      map[string]quotaMeta{},
		paired:    map[string]bool{},
		cursor:    map[string]int{},
	}
}

func quotaKey(subject string, sectionID int64) string {
	return fmt.Sprintf("%s|%d", subject, sectionID)
}

// Run executes the multi-pass scheduling loop over the given lecture units.
// It always returns a result: failures surface as skip entries, never as an
// error.
func (e *Engine) Run(ctx context.Context, reqs []Request) Result {
	st := newRunState()
	for _, r := range reqs {
		key := quotaKey(r.Subject, r.SectionID)
		st.remaining[key]++
		if _, seen := st.meta[key]; !seen {
			st.meta[key] = quotaMeta{
				subject:    r.Subject,
				sectionID:  r.SectionID,
				duration:   r.Duration,
				frequency:  r.Frequency,
				facultyIDs: r.FacultyIDs,
			}
		}
	}

	passes := 0
	for pass := 0; pass < e.maxPasses; pass++ {
		passes++
		progress := false

		keys := st.pendingKeys()
		e.shuffle(keys)
		for _, key := range keys {
			if st.remaining[key] <= 0 || st.paired[key] {
				continue
			}
			if e.scheduleKey(ctx, key, st) {
				progress = true
			}
		}

		if !progress || !st.anyRemaining() {
			break
		}
	}

	e.reportLeftovers(st)
	e.logger.Info("timetable generation finished",
		zap.Int("passes", passes),
		zap.Int("assignments", len(st.out)),
		zap.Int("skips", len(st.report.skips)),
	)
	return Result{Timetable: st.out, Skipped: st.report.skips, Passes: passes}
}

// scheduleKey attempts one placement for the quota this pass: combined first
// for two-hour lectures, then individual. Returns true when progress was
// made.
func (e *Engine) scheduleKey(ctx context.Context, key string, st *runState) bool {
	m := st.meta[key]
	if m.duration <= 0 {
		st.report.add(Skip{
			Code:      SkipMissingSubjectMetadata,
			Subject:   m.subject,
			SectionID: m.sectionID,
			Reason:    "Missing subject metadata. Skipping.",
		})
		st.remaining[key] = 0
		return false
	}
	section, ok := e.sectionByID[m.sectionID]
	if !ok {
		st.report.add(Skip{
			Code:      SkipSectionNotFound,
			Subject:   m.subject,
			SectionID: m.sectionID,
			Reason:    "Section not found. Skipping.",
		})
		st.remaining[key] = 0
		return false
	}
	eligible := e.eligibleFaculty(m.facultyIDs)
	if len(eligible) == 0 {
		st.report.add(Skip{
			Code:    SkipNoEligibleFaculty,
			Subject: m.subject,
			Section: section.Name,
			Reason:  "No eligible faculty for subject. Skipping.",
		})
		st.remaining[key] = 0
		return false
	}

	if m.duration == 2 {
		if partner := e.findPartner(section, m.subject, st); partner != nil {
			if section.StudentCount+partner.StudentCount > MaxCombinedStudents {
				st.report.add(Skip{
					Code:           SkipCombinedCapacity,
					Subject:        m.subject,
					Section:        section.Name,
					PartnerSection: partner.Name,
					Reason:         "Combined capacity exceeds hall room capacity.",
				})
			} else if e.rotateFaculty(m.subject, eligible, st, func(f models.Faculty) bool {
				return e.tryCombined(ctx, m, section, *partner, f, st)
			}) {
				partnerKey := quotaKey(m.subject, partner.ID)
				st.remaining[key]--
				st.remaining[partnerKey]--
				st.paired[key] = true
				st.paired[partnerKey] = true
				return true
			}
		}
	}

	if e.rotateFaculty(m.subject, eligible, st, func(f models.Faculty) bool {
		return e.tryIndividual(ctx, m, section, f, st)
	}) {
		st.remaining[key]--
		return true
	}
	return false
}

// rotateFaculty tries each eligible faculty member starting at the subject's
// round-robin cursor, wrapping once through the list. On success the cursor
// advances past the faculty used, rotating load across the subject's pool.
func (e *Engine) rotateFaculty(subject string, eligible []models.Faculty, st *runState, attempt func(models.Faculty) bool) bool {
	n := len(eligible)
	if n == 0 {
		return false
	}
	start := st.cursor[subject] % n
	for offset := 0; offset < n; offset++ {
		idx := (start + offset) % n
		if attempt(eligible[idx]) {
			st.cursor[subject] = (idx + 1) % n
			return true
		}
	}
	return false
}

func (e *Engine) tryIndividual(ctx context.Context, m quotaMeta, section models.Section, fac models.Faculty, st *runState) bool {
	key := quotaKey(m.subject, section.ID)
	candidates := e.availableSlots(fac, []models.Section{section}, []string{key}, m.frequency, st.led)
	run := findConsecutive(candidates, m.duration, fac.ID, []int64{section.ID}, st.led)
	if len(run) == 0 {
		st.report.add(Skip{
			Code:    SkipNoConsecutiveSlots,
			Subject: m.subject,
			Section: section.Name,
			Faculty: fac.Name,
			Reason:  "No consecutive timeslots found for required duration or day already used.",
		})
		return false
	}
	room := pickRoom(e.rooms, section.StudentCount, run, st.led)
	if room == nil {
		st.report.add(Skip{
			Code:    SkipNoRoomAvailable,
			Subject: m.subject,
			Section: section.Name,
			Faculty: fac.Name,
			Reason:  "No room available for the selected timeslots.",
		})
		return false
	}
	e.commit(ctx, m.subject, fac, *room, []models.Section{section}, run, st)
	st.led.markDay(key, run[0].Day)
	return true
}

func (e *Engine) tryCombined(ctx context.Context, m quotaMeta, section, partner models.Section, fac models.Faculty, st *runState) bool {
	keys := []string{quotaKey(m.subject, section.ID), quotaKey(m.subject, partner.ID)}
	pair := []models.Section{section, partner}
	candidates := e.availableSlots(fac, pair, keys, m.frequency, st.led)
	run := findConsecutive(candidates, m.duration, fac.ID, []int64{section.ID, partner.ID}, st.led)
	if len(run) == 0 {
		st.report.add(Skip{
			Code:           SkipNoConsecutiveSlots,
			Subject:        m.subject,
			Section:        section.Name,
			PartnerSection: partner.Name,
			Faculty:        fac.Name,
			Reason:         "No consecutive timeslots found for combined sections.",
		})
		return false
	}
	needed := section.StudentCount + partner.StudentCount
	room := pickRoomOfType(e.rooms, models.RoomTypeHall, needed, run, st.led)
	if room == nil {
		room = pickRoomOfType(e.rooms, models.RoomTypeClassroom, needed, run, st.led)
	}
	if room == nil {
		st.report.add(Skip{
			Code:           SkipNoRoomAvailable,
			Subject:        m.subject,
			Section:        section.Name,
			PartnerSection: partner.Name,
			Faculty:        fac.Name,
			Reason:         "No hall available for combined sections.",
		})
		return false
	}
	e.commit(ctx, m.subject, fac, *room, pair, run, st)
	for _, k := range keys {
		st.led.markDay(k, run[0].Day)
	}
	return true
}

// commit records one placement per timeslot of the run and reserves every
// involved resource. Bookings are never rolled back.
func (e *Engine) commit(ctx context.Context, subject string, fac models.Faculty, room models.Room, sections []models.Section, run []models.Timeslot, st *runState) {
	sectionIDs := make([]int64, len(sections))
	for i, s := range sections {
		sectionIDs[i] = s.ID
	}
	for _, ts := range run {
		p := Placement{
			Subject:    subject,
			FacultyID:  fac.ID,
			RoomID:     room.ID,
			TimeslotID: ts.ID,
			SectionIDs: append([]int64(nil), sectionIDs...),
		}
		st.out = append(st.out, p)
		if e.sink != nil {
			if err := e.sink(ctx, p); err != nil {
				e.logger.Warn("placement sink failed",
					zap.String("subject", subject),
					zap.Int64("timeslotId", ts.ID),
					zap.Error(err),
				)
			}
		}
		st.led.reserve(facultyResource, fac.ID, ts.ID)
		st.led.reserve(roomResource, room.ID, ts.ID)
		for _, id := range sectionIDs {
			st.led.reserve(sectionResource, id, ts.ID)
		}
		st.led.addFacultyLoad(fac.ID)
	}
}

// eligibleFaculty filters the live faculty set by the requested ids,
// preserving reference order so rotation stays stable.
func (e *Engine) eligibleFaculty(ids []int64) []models.Faculty {
	if len(ids) == 0 {
		return nil
	}
	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []models.Faculty
	for _, f := range e.faculty {
		if _, ok := want[f.ID]; ok {
			out = append(out, f)
		}
	}
	return out
}

// reportLeftovers converts every quota still positive after the pass loop
// into a terminal skip entry carrying the remaining unit count.
func (e *Engine) reportLeftovers(st *runState) {
	keys := make([]string, 0, len(st.remaining))
	for key := range st.remaining {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		count := st.remaining[key]
		if count <= 0 {
			continue
		}
		m := st.meta[key]
		name := "N/A"
		if s, ok := e.sectionByID[m.sectionID]; ok {
			name = s.Name
		}
		st.report.add(Skip{
			Code:      SkipPassLimitReached,
			Subject:   m.subject,
			Section:   name,
			SectionID: m.sectionID,
			Remaining: count,
			Reason:    "Not enough available slots to fulfill all lectures for the week.",
		})
	}
}

// pendingKeys returns quota keys with work left, sorted before the caller
// shuffles them so runs with an injected no-op shuffle are deterministic.
func (st *runState) pendingKeys() []string {
	keys := make([]string, 0, len(st.remaining))
	for key, count := range st.remaining {
		if count > 0 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func (st *runState) anyRemaining() bool {
	for _, count := range st.remaining {
		if count > 0 {
			return true
		}
	}
	return false
}
