package domain

import "fmt"

// Project is a project-week workshop with a grade-eligibility range and a
// participant-count range.
type Project struct {
	ID       ProjectID
	Name     string
	MinGrade int
	MaxGrade int

	// MinCap/MaxCap are inclusive participant-count bounds; NoCapBound (-1)
	// on a side means "unbounded on that side".
	MinCap int
	MaxCap int

	Ignore bool

	// NumAssigned is populated after a solve by the solve command, from
	// the post-processor's ProjectLoad; it is zero on a freshly loaded
	// Project.
	NumAssigned int
}

// Validate checks the project's own invariants (spec.md §3): MinGrade <=
// MaxGrade, and if both caps are bounded, MinCap <= MaxCap.
func (p *Project) Validate() error {
	if p.MinGrade > p.MaxGrade {
		return fmt.Errorf("project %s: min_stufe %d > max_stufe %d", p.ID, p.MinGrade, p.MaxGrade)
	}
	if p.MinCap != NoCapBound && p.MaxCap != NoCapBound && p.MinCap > p.MaxCap {
		return fmt.Errorf("project %s: min_teilnehmer %d > max_teilnehmer %d", p.ID, p.MinCap, p.MaxCap)
	}
	return nil
}

// GradeEligible reports whether the given grade level falls within the
// project's inclusive [MinGrade, MaxGrade] range.
func (p *Project) GradeEligible(grade int) bool {
	return grade >= p.MinGrade && grade <= p.MaxGrade
}
