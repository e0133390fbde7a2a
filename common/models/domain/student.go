package domain

import "fmt"

// Student is a pupil to be assigned to a project.
type Student struct {
	ID     StudentID
	Uid    uint32
	Name   string
	Klasse Klasse

	// Wishes holds up to five ranked project wishes, or nil if the student
	// has not submitted wishes yet (e.g. a dormant roster-list entry).
	// NoProjectID marks an absent individual wish slot.
	Wishes *[5]ProjectID

	// PartnerRaw is the free-text wunschpartner string, if any.
	PartnerRaw *string

	// PartnerResolved is the partner resolver's output: the concrete
	// student identifier the free text was matched to. Populated by
	// resolver.ResolveAll; the roster adapter also restores a previously
	// saved value from the roster file's "partner" field.
	PartnerResolved *StudentID

	// Ignore excludes the student from assignment entirely.
	Ignore bool

	// Fest pins the student to Wishes[0] regardless of grade/capacity
	// rules (except the caller-supplied fixed map, C8, which can conflict
	// with it and thereby make the problem infeasible).
	Fest bool
}

// Active reports whether the student participates in the assignment at
// all (the negation of Ignore).
func (s *Student) Active() bool { return !s.Ignore }

// Validate checks the student's own invariants (spec.md §3): a Fest
// student's Wishes[0] must be present, and Ignore/Fest are mutually
// exclusive.
func (s *Student) Validate() error {
	if s.Ignore && s.Fest {
		return fmt.Errorf("student %s: ignore and fest cannot both be true", s.ID)
	}
	if s.Fest {
		if s.Wishes == nil || s.Wishes[0].IsSentinel() {
			return fmt.Errorf("student %s: fest requires a first wish", s.ID)
		}
	}
	return nil
}
