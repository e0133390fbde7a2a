package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/s-hoffleit/projekttage/common/models/domain"
)

func newStudent(name, klasse string) *domain.Student {
	return &domain.Student{
		ID:     domain.NewRandomStudentID(),
		Name:   name,
		Klasse: domain.Klasse(klasse),
	}
}

// S6 — partner text resolution.
func TestResolve_S6(t *testing.T) {
	meier := newStudent("Anna Meier", "9a")
	mueller := newStudent("Anna Müller", "9b")
	roster := map[domain.StudentID]*domain.Student{
		meier.ID:   meier,
		mueller.ID: mueller,
	}

	got, ok := Resolve(roster, "Anna Meier 9a")
	require.True(t, ok)
	require.Equal(t, meier.ID, got)

	_, ok = Resolve(roster, "Anna")
	require.False(t, ok)
}

func TestResolve_ClassLabelNarrowsAmbiguousFirstName(t *testing.T) {
	annaA := newStudent("Anna Schmidt", "8a")
	annaB := newStudent("Anna Klein", "8b")
	roster := map[domain.StudentID]*domain.Student{
		annaA.ID: annaA,
		annaB.ID: annaB,
	}

	got, ok := Resolve(roster, "Anna 8a")
	require.True(t, ok)
	require.Equal(t, annaA.ID, got)
}

func TestResolve_LastNameMatchIsTerminal(t *testing.T) {
	a := newStudent("Max Mustermann", "7c")
	b := newStudent("Max Beispiel", "7c")
	roster := map[domain.StudentID]*domain.Student{a.ID: a, b.ID: b}

	// "Max Niemand" shares the first name with both but matches no last
	// name: step 3 must return none rather than falling through to step 4.
	_, ok := Resolve(roster, "Max Niemand")
	require.False(t, ok)
}

// A single-token query whose first token matches two candidates (one of
// them a genuine single-token-named student, the other a multi-token name
// sharing the same first token) should be disambiguated by step 4's exact
// full-name match rather than stopping at step 2's ambiguous first-token
// filter.
func TestResolve_FullNameStepDisambiguatesSingleTokenQuery(t *testing.T) {
	jan := newStudent("Jan", "6a")
	janMicha := newStudent("Jan Micha", "6a")
	roster := map[domain.StudentID]*domain.Student{
		jan.ID:      jan,
		janMicha.ID: janMicha,
	}

	got, ok := Resolve(roster, "Jan")
	require.True(t, ok)
	require.Equal(t, jan.ID, got)
}

func TestResolve_NoMatchReturnsFalse(t *testing.T) {
	a := newStudent("Lea Vogel", "5b")
	roster := map[domain.StudentID]*domain.Student{a.ID: a}

	_, ok := Resolve(roster, "Nobody Here")
	require.False(t, ok)
}

// Property 6 — resolver idempotence.
func TestResolveAll_Idempotent(t *testing.T) {
	a := newStudent("Anna Meier", "9a")
	b := newStudent("Ben Fischer", "9a")
	raw := "Ben Fischer"
	a.PartnerRaw = &raw
	roster := map[domain.StudentID]*domain.Student{a.ID: a, b.ID: b}

	ResolveAll(roster)
	require.NotNil(t, a.PartnerResolved)
	first := *a.PartnerResolved

	ResolveAll(roster)
	require.NotNil(t, a.PartnerResolved)
	require.Equal(t, first, *a.PartnerResolved)
}

func TestResolveAll_ClearsStalePartnerOnEmptyRaw(t *testing.T) {
	a := newStudent("Anna Meier", "9a")
	resolved := domain.NewRandomStudentID()
	a.PartnerResolved = &resolved
	roster := map[domain.StudentID]*domain.Student{a.ID: a}

	ResolveAll(roster)
	require.Nil(t, a.PartnerResolved)
}
