package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStudent_Validate_IgnoreAndFestMutuallyExclusive(t *testing.T) {
	s := &Student{ID: NewRandomStudentID(), Ignore: true, Fest: true}
	require.Error(t, s.Validate())
}

func TestStudent_Validate_FestRequiresFirstWish(t *testing.T) {
	s := &Student{ID: NewRandomStudentID(), Fest: true}
	require.Error(t, s.Validate())

	wishes := [5]ProjectID{0, NoProjectID, NoProjectID, NoProjectID, NoProjectID}
	s.Wishes = &wishes
	require.NoError(t, s.Validate())
}

func TestProject_Validate(t *testing.T) {
	p := &Project{MinGrade: 10, MaxGrade: 5}
	require.Error(t, p.Validate())

	p = &Project{MinGrade: 5, MaxGrade: 10, MinCap: 5, MaxCap: 1}
	require.Error(t, p.Validate())

	p = &Project{MinGrade: 5, MaxGrade: 10, MinCap: NoCapBound, MaxCap: NoCapBound}
	require.NoError(t, p.Validate())
}

func TestProject_GradeEligible(t *testing.T) {
	p := &Project{MinGrade: 5, MaxGrade: 10}
	require.True(t, p.GradeEligible(5))
	require.True(t, p.GradeEligible(10))
	require.False(t, p.GradeEligible(11))
}
