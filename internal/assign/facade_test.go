package assign

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/s-hoffleit/projekttage/common/models/domain"
)

func wishes(ids ...domain.ProjectID) *[5]domain.ProjectID {
	var out [5]domain.ProjectID
	for i := range out {
		out[i] = domain.NoProjectID
	}
	for i, id := range ids {
		out[i] = id
	}
	return &out
}

func project(id domain.ProjectID, minGrade, maxGrade, minCap, maxCap int) *domain.Project {
	return &domain.Project{ID: id, Name: "p", MinGrade: minGrade, MaxGrade: maxGrade, MinCap: minCap, MaxCap: maxCap}
}

// S1 — trivial feasibility.
func TestAssign_S1_TrivialFeasibility(t *testing.T) {
	p1, p2 := domain.ProjectID(0), domain.ProjectID(1)
	s := &domain.Student{ID: domain.NewRandomStudentID(), Klasse: "7a", Wishes: wishes(p1, p2)}

	snapshot := domain.Snapshot{
		Projects: map[domain.ProjectID]*domain.Project{
			p1: project(p1, 5, 10, domain.NoCapBound, 10),
			p2: project(p2, 5, 10, domain.NoCapBound, 10),
		},
		Students: map[domain.StudentID]*domain.Student{s.ID: s},
	}

	res, err := Assign(context.Background(), snapshot, nil)
	require.NoError(t, err)
	require.Len(t, res.Assignments, 1)
	require.NotNil(t, res.Assignments[0].ProjectID)
	require.Equal(t, p1, *res.Assignments[0].ProjectID)
}

// S2 — grade exclusion.
func TestAssign_S2_GradeExclusion(t *testing.T) {
	p1, p2 := domain.ProjectID(0), domain.ProjectID(1)
	s := &domain.Student{ID: domain.NewRandomStudentID(), Klasse: "10b", Wishes: wishes(p1, p2)}

	snapshot := domain.Snapshot{
		Projects: map[domain.ProjectID]*domain.Project{
			p1: project(p1, 5, 7, domain.NoCapBound, 10),
			p2: project(p2, 8, 10, domain.NoCapBound, 10),
		},
		Students: map[domain.StudentID]*domain.Student{s.ID: s},
	}

	res, err := Assign(context.Background(), snapshot, nil)
	require.NoError(t, err)
	require.Equal(t, p2, *res.Assignments[0].ProjectID)
}

// S3 — capacity forces second choice.
func TestAssign_S3_CapacityForcesSecondChoice(t *testing.T) {
	p1, p2 := domain.ProjectID(0), domain.ProjectID(1)
	a := &domain.Student{ID: domain.NewRandomStudentID(), Klasse: "7a", Wishes: wishes(p1, p2)}
	b := &domain.Student{ID: domain.NewRandomStudentID(), Klasse: "7a", Wishes: wishes(p1, p2)}

	snapshot := domain.Snapshot{
		Projects: map[domain.ProjectID]*domain.Project{
			p1: project(p1, 0, 99, domain.NoCapBound, 1),
			p2: project(p2, 0, 99, domain.NoCapBound, 10),
		},
		Students: map[domain.StudentID]*domain.Student{a.ID: a, b.ID: b},
	}

	res, err := Assign(context.Background(), snapshot, nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.ProjectLoad[p1])
	require.Equal(t, 1, res.ProjectLoad[p2])
	// one student keeps their 1st wish, the other falls back to their 2nd;
	// nobody goes unwished.
	require.Equal(t, 1, res.WishHistogram[0])
	require.Equal(t, 1, res.WishHistogram[1])
	require.Equal(t, 0, res.WishHistogram[5])
}

// S4 — mutual partner bonus.
func TestAssign_S4_MutualPartnerBonus(t *testing.T) {
	p1, p2 := domain.ProjectID(0), domain.ProjectID(1)
	a := &domain.Student{ID: domain.NewRandomStudentID(), Klasse: "7a", Wishes: wishes(p1, p2)}
	b := &domain.Student{ID: domain.NewRandomStudentID(), Klasse: "7a", Wishes: wishes(p2, p1)}
	a.PartnerResolved = &b.ID
	b.PartnerResolved = &a.ID

	snapshot := domain.Snapshot{
		Projects: map[domain.ProjectID]*domain.Project{
			p1: project(p1, 0, 99, domain.NoCapBound, 5),
			p2: project(p2, 0, 99, domain.NoCapBound, 5),
		},
		Students: map[domain.StudentID]*domain.Student{a.ID: a, b.ID: b},
	}

	matrix, studentIDs, projectIDs, err := Formulate(snapshot.Projects, snapshot.Students, nil)
	require.NoError(t, err)
	result := Extract(matrix, studentIDs, projectIDs, snapshot.Students)
	require.Equal(t, 2, result.PartnersTogether)
}

// S5 — fest override.
func TestAssign_S5_FestOverride(t *testing.T) {
	p3 := domain.ProjectID(2)
	c := &domain.Student{ID: domain.NewRandomStudentID(), Klasse: "10c", Fest: true, Wishes: wishes(p3)}

	snapshot := domain.Snapshot{
		Projects: map[domain.ProjectID]*domain.Project{
			p3: project(p3, 5, 7, domain.NoCapBound, domain.NoCapBound),
		},
		Students: map[domain.StudentID]*domain.Student{c.ID: c},
	}

	res, err := Assign(context.Background(), snapshot, nil)
	require.NoError(t, err)
	require.Equal(t, p3, *res.Assignments[0].ProjectID)
}

// Property 4 (fixed half) — caller-supplied fixed pair is honored even
// when it would otherwise be grade-ineligible.
func TestAssign_CallerFixedOverridesGrade(t *testing.T) {
	p1 := domain.ProjectID(0)
	s := &domain.Student{ID: domain.NewRandomStudentID(), Klasse: "10b"}

	snapshot := domain.Snapshot{
		Projects: map[domain.ProjectID]*domain.Project{
			p1: project(p1, 5, 7, domain.NoCapBound, domain.NoCapBound),
		},
		Students: map[domain.StudentID]*domain.Student{s.ID: s},
	}

	res, err := Assign(context.Background(), snapshot, domain.Fixed{s.ID: p1})
	require.NoError(t, err)
	require.Equal(t, p1, *res.Assignments[0].ProjectID)
}

// Property 1 — ignored students receive no assignment.
func TestAssign_IgnoredStudentGetsNoProject(t *testing.T) {
	p1 := domain.ProjectID(0)
	s := &domain.Student{ID: domain.NewRandomStudentID(), Klasse: "7a", Ignore: true}

	snapshot := domain.Snapshot{
		Projects: map[domain.ProjectID]*domain.Project{
			p1: project(p1, 0, 99, domain.NoCapBound, 10),
		},
		Students: map[domain.StudentID]*domain.Student{s.ID: s},
	}

	res, err := Assign(context.Background(), snapshot, nil)
	require.NoError(t, err)
	require.Nil(t, res.Assignments[0].ProjectID)
}

// Property 7 — parser round-trip (exercised at the io layer, verified
// here indirectly via the domain sentinel conversions the io package
// relies on).
func TestProjectID_SentinelRoundTrip(t *testing.T) {
	require.True(t, domain.NoProjectID.IsSentinel())
	require.Equal(t, "--", domain.NoProjectID.String())
	require.Equal(t, "1", domain.ProjectID(0).String())
}
