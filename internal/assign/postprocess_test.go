package assign

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/s-hoffleit/projekttage/common/models/domain"
)

func TestExtract_UnwishedStudentCounted(t *testing.T) {
	p1, p2 := domain.ProjectID(0), domain.ProjectID(1)
	s := &domain.Student{ID: domain.NewRandomStudentID(), Wishes: wishes(p1)}
	studentIDs := []domain.StudentID{s.ID}
	projectIDs := []domain.ProjectID{p1, p2}
	students := map[domain.StudentID]*domain.Student{s.ID: s}

	// assigned to p2, which is not among the student's wishes.
	matrix := Matrix{{0, 1}}

	res := Extract(matrix, studentIDs, projectIDs, students)
	require.Equal(t, 1, res.WishHistogram[5])
	require.Equal(t, 1, res.ProjectLoad[p2])
}

func TestExtract_NoAssignmentLeavesProjectIDNil(t *testing.T) {
	p1 := domain.ProjectID(0)
	s := &domain.Student{ID: domain.NewRandomStudentID(), Ignore: true}
	studentIDs := []domain.StudentID{s.ID}
	projectIDs := []domain.ProjectID{p1}
	students := map[domain.StudentID]*domain.Student{s.ID: s}

	matrix := Matrix{{0}}

	res := Extract(matrix, studentIDs, projectIDs, students)
	require.Len(t, res.Assignments, 1)
	require.Nil(t, res.Assignments[0].ProjectID)
	require.Empty(t, res.ProjectLoad)
}

func TestSummarizeWishHistogram_MeanAndUnwished(t *testing.T) {
	var hist [6]int
	hist[0] = 2 // two students got their 1st wish
	hist[1] = 2 // two got their 2nd wish
	hist[5] = 3 // three got none of their wishes

	summary := SummarizeWishHistogram(hist)
	require.InDelta(t, 1.5, summary.MeanRank, 1e-9)
	require.Equal(t, 3, summary.TotalUnwished)
}

func TestSummarizeWishHistogram_EmptyHistogram(t *testing.T) {
	summary := SummarizeWishHistogram([6]int{})
	require.Equal(t, 0.0, summary.MeanRank)
	require.Equal(t, 0, summary.TotalUnwished)
}
