// Package assign implements the MILP formulator, the assignment
// post-processor, and the orchestration facade of spec.md §4.3-§4.5.
package assign

import (
	"fmt"
	"sort"

	"github.com/jjhbw/GoMILP/ilp"

	"github.com/s-hoffleit/projekttage/common/models/domain"
)

// wishWeights are the objective coefficients for wish ranks 1..5.
var wishWeights = [5]float64{5, 4, 3, 2, 1}

// partnerWeight is the objective bonus for a mutually-declared partner
// pair landing in the same project.
const partnerWeight = 2.0

// Matrix is the primal assignment matrix, [studentIndex][projectIndex],
// indexed by the sorted key order of the snapshot's students/projects
// maps (spec.md §4.3's index-space rule).
type Matrix [][]float64

// SolveError wraps a solver failure (infeasible, unbounded, or any other
// numerical failure) verbatim, per spec.md §7.
type SolveError struct {
	Err error
}

func (e *SolveError) Error() string { return fmt.Sprintf("milp solve failed: %v", e.Err) }
func (e *SolveError) Unwrap() error  { return e.Err }

type partnerPair struct {
	a, b domain.StudentID
}

func sortedProjectIDs(projects map[domain.ProjectID]*domain.Project) []domain.ProjectID {
	ids := make([]domain.ProjectID, 0, len(projects))
	for id := range projects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedStudentIDs(students map[domain.StudentID]*domain.Student) []domain.StudentID {
	ids := make([]domain.StudentID, 0, len(students))
	for id := range students {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// mutualPartnerPairs builds the canonicalized, deduplicated partner-pair
// set: a student's resolved partner only counts if the partner names the
// student back (spec.md §4.3, §9 "mutual partner enforcement").
func mutualPartnerPairs(students map[domain.StudentID]*domain.Student, studentIndex map[domain.StudentID]int) []partnerPair {
	seen := make(map[[2]domain.StudentID]bool)
	var pairs []partnerPair
	for sid, s := range students {
		if s.PartnerResolved == nil {
			continue
		}
		qid := *s.PartnerResolved
		partner, ok := students[qid]
		if !ok || partner.PartnerResolved == nil || *partner.PartnerResolved != sid {
			continue
		}
		a, b := sid, qid
		if studentIndex[b] < studentIndex[a] {
			a, b = b, a
		}
		key := [2]domain.StudentID{a, b}
		if seen[key] {
			continue
		}
		seen[key] = true
		pairs = append(pairs, partnerPair{a: a, b: b})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a.String() < pairs[j].a.String()
		}
		return pairs[i].b.String() < pairs[j].b.String()
	})
	return pairs
}

// Formulate builds and solves the MILP described in spec.md §4.3 and
// returns the primal assignment matrix along with the index orders used
// to build it.
func Formulate(
	projects map[domain.ProjectID]*domain.Project,
	students map[domain.StudentID]*domain.Student,
	fixed domain.Fixed,
) (Matrix, []domain.StudentID, []domain.ProjectID, error) {
	studentIDs := sortedStudentIDs(students)
	projectIDs := sortedProjectIDs(projects)

	projectIndex := make(map[domain.ProjectID]int, len(projectIDs))
	for j, pid := range projectIDs {
		projectIndex[pid] = j
	}
	studentIndex := make(map[domain.StudentID]int, len(studentIDs))
	for i, sid := range studentIDs {
		studentIndex[sid] = i
	}

	n, m := len(studentIDs), len(projectIDs)

	problem := ilp.NewProblem()
	problem.Maximize()

	x := make([][]*ilp.Variable, n)
	xNames := make([][]string, n)
	for i, sid := range studentIDs {
		x[i] = make([]*ilp.Variable, m)
		xNames[i] = make([]string, m)
		for j, pid := range projectIDs {
			name := fmt.Sprintf("x_%s_%d", sid, pid)
			x[i][j] = problem.AddVariable(name).IsInteger().LowerBound(0).UpperBound(1)
			xNames[i][j] = name
		}
	}

	pairs := mutualPartnerPairs(students, studentIndex)
	w := make([][]*ilp.Variable, len(pairs))
	wNames := make([][]string, len(pairs))
	same := make([]*ilp.Variable, len(pairs))
	sameNames := make([]string, len(pairs))
	for k, pr := range pairs {
		w[k] = make([]*ilp.Variable, m)
		wNames[k] = make([]string, m)
		for j, pid := range projectIDs {
			name := fmt.Sprintf("w_%s_%s_%d", pr.a, pr.b, pid)
			w[k][j] = problem.AddVariable(name).IsInteger().LowerBound(0).UpperBound(1)
			wNames[k][j] = name
		}
		sameNames[k] = fmt.Sprintf("same_%s_%s", pr.a, pr.b)
		same[k] = problem.AddVariable(sameNames[k]).IsInteger().LowerBound(0).UpperBound(1)
	}

	// Objective: accumulate wish-rank weights per (student, project), then
	// the partner bonus per pair.
	coef := make([][]float64, n)
	for i := range coef {
		coef[i] = make([]float64, m)
	}
	for i, sid := range studentIDs {
		s := students[sid]
		if s.Wishes == nil {
			continue
		}
		for k, wishPID := range s.Wishes {
			if wishPID.IsSentinel() {
				continue
			}
			j, ok := projectIndex[wishPID]
			if !ok {
				continue
			}
			coef[i][j] += wishWeights[k]
		}
	}
	for i := range studentIDs {
		for j := range projectIDs {
			if coef[i][j] != 0 {
				x[i][j].SetCoeff(coef[i][j])
			}
		}
	}
	for k := range pairs {
		same[k].SetCoeff(partnerWeight)
	}

	// C1: exactly one project per active student, zero for ignored ones.
	for i, sid := range studentIDs {
		s := students[sid]
		c := problem.AddConstraint()
		for j := range projectIDs {
			c.AddExpression(1, x[i][j])
		}
		if s.Ignore {
			c.EqualTo(0)
		} else {
			c.EqualTo(1)
		}
	}

	// C2/C3: capacity bounds.
	for j, pid := range projectIDs {
		p := projects[pid]
		if p.MaxCap != domain.NoCapBound {
			numFixed := 0
			for _, s := range students {
				if s.Fest && s.Wishes != nil && s.Wishes[0] == pid {
					numFixed++
				}
			}
			c := problem.AddConstraint()
			for i := range studentIDs {
				c.AddExpression(1, x[i][j])
			}
			c.SmallerThanOrEqualTo(float64(p.MaxCap + numFixed))
		}
		if p.MinCap != domain.NoCapBound {
			// rewritten as -sum_i x[i,j] <= -minCap, GoMILP has no native >=.
			c := problem.AddConstraint()
			for i := range studentIDs {
				c.AddExpression(-1, x[i][j])
			}
			c.SmallerThanOrEqualTo(-float64(p.MinCap))
		}
	}

	// C4: grade eligibility, skipped for caller-fixed and fest students.
	for i, sid := range studentIDs {
		s := students[sid]
		if s.Fest {
			continue
		}
		if _, isFixed := fixed[sid]; isFixed {
			continue
		}
		grade, ok := s.Klasse.GradeLevel()
		if !ok {
			continue
		}
		for j, pid := range projectIDs {
			p := projects[pid]
			if !p.GradeEligible(grade) {
				c := problem.AddConstraint()
				c.AddExpression(1, x[i][j])
				c.EqualTo(0)
			}
		}
	}

	// C5: partner linearization, w[a,b,j] == x[a,j] AND x[b,j].
	for k, pr := range pairs {
		ai, bi := studentIndex[pr.a], studentIndex[pr.b]
		for j := range projectIDs {
			c1 := problem.AddConstraint()
			c1.AddExpression(1, w[k][j])
			c1.AddExpression(-1, x[ai][j])
			c1.SmallerThanOrEqualTo(0)

			c2 := problem.AddConstraint()
			c2.AddExpression(1, w[k][j])
			c2.AddExpression(-1, x[bi][j])
			c2.SmallerThanOrEqualTo(0)

			c3 := problem.AddConstraint()
			c3.AddExpression(1, x[ai][j])
			c3.AddExpression(1, x[bi][j])
			c3.AddExpression(-1, w[k][j])
			c3.SmallerThanOrEqualTo(1)
		}
	}

	// C6: same[a,b] <= sum_j w[a,b,j].
	for k := range pairs {
		c := problem.AddConstraint()
		c.AddExpression(1, same[k])
		for j := range projectIDs {
			c.AddExpression(-1, w[k][j])
		}
		c.SmallerThanOrEqualTo(0)
	}

	// C7: fest students pinned to their first wish.
	for i, sid := range studentIDs {
		s := students[sid]
		if !s.Fest {
			continue
		}
		j, ok := projectIndex[s.Wishes[0]]
		if !ok {
			continue
		}
		c := problem.AddConstraint()
		c.AddExpression(1, x[i][j])
		c.EqualTo(1)
	}

	// C8: caller-supplied fixed-assignment overrides.
	for sid, pid := range fixed {
		i, ok1 := studentIndex[sid]
		j, ok2 := projectIndex[pid]
		if !ok1 || !ok2 {
			continue
		}
		c := problem.AddConstraint()
		c.AddExpression(1, x[i][j])
		c.EqualTo(1)
	}

	solution, err := problem.Solve()
	if err != nil {
		return nil, nil, nil, &SolveError{Err: err}
	}

	matrix := make(Matrix, n)
	for i := range studentIDs {
		matrix[i] = make([]float64, m)
		for j := range projectIDs {
			val, err := solution.GetValueFor(xNames[i][j])
			if err != nil {
				return nil, nil, nil, &SolveError{Err: err}
			}
			matrix[i][j] = val
		}
	}

	return matrix, studentIDs, projectIDs, nil
}
