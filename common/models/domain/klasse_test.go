package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKlasse_GradeLevel(t *testing.T) {
	cases := []struct {
		klasse string
		level  int
		ok     bool
	}{
		{"KS1", 12, true},
		{"KS2", 13, true},
		{"7a", 7, true},
		{"10b", 10, true},
		{"abc", 0, false},
	}
	for _, c := range cases {
		level, ok := Klasse(c.klasse).GradeLevel()
		require.Equal(t, c.ok, ok, c.klasse)
		require.Equal(t, c.level, level, c.klasse)
	}
}
