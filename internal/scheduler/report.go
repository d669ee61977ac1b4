package scheduler

// Skip taxonomy codes surfaced in generation results. Every failed attempt
// and every quota left unresolved at the pass limit maps to one of these.
const (
	SkipInvalidFacultyID       = "INVALID_FACULTY_ID_FORMAT"
	SkipMissingSubjectMetadata = "MISSING_SUBJECT_METADATA"
	SkipSectionNotFound        = "SECTION_NOT_FOUND"
	SkipNoEligibleFaculty      = "NO_ELIGIBLE_FACULTY"
	SkipCombinedCapacity       = "COMBINED_CAPACITY_EXCEEDED"
	SkipNoConsecutiveSlots     = "NO_CONSECUTIVE_SLOTS"
	SkipNoRoomAvailable        = "NO_ROOM_AVAILABLE"
	SkipPassLimitReached       = "PASS_LIMIT_REACHED"
)

// Skip records one failed scheduling attempt or unresolved quota. Context
// fields are filled where known; Remaining is set only on terminal
// pass-limit entries so callers can reconcile assigned plus skipped units
// against the requested total.
type Skip struct {
	Code           string `json:"code"`
	Subject        string `json:"subject,omitempty"`
	Section        string `json:"section,omitempty"`
	PartnerSection string `json:"partnerSection,omitempty"`
	Faculty        string `json:"faculty,omitempty"`
	FacultyID      string `json:"facultyId,omitempty"`
	SectionID      int64  `json:"sectionId,omitempty"`
	Remaining      int    `json:"remaining,omitempty"`
	Reason         string `json:"reason"`
}

// report accumulates skip entries over a single run.
type report struct {
	skips []Skip
}

func (r *report) add(s Skip) {
	r.skips = append(r.skips, s)
}
