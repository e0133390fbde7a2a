package domain

import "regexp"

// Klasse is a class label such as "10c" or "KS1".
type Klasse string

var gradeDigits = regexp.MustCompile(`[0-9]+`)

// GradeLevel derives the numeric grade ("Stufe") from the class label.
// "KS1" maps to 12, "KS2" maps to 13, otherwise the first contiguous run of
// digits in the label is parsed. ok is false when no digits are present, in
// which case the student bypasses the grade-eligibility constraint.
func (k Klasse) GradeLevel() (level int, ok bool) {
	switch string(k) {
	case "KS1":
		return 12, true
	case "KS2":
		return 13, true
	}

	digits := gradeDigits.FindString(string(k))
	if digits == "" {
		return 0, false
	}

	n := 0
	for _, r := range digits {
		n = n*10 + int(r-'0')
	}
	return n, true
}

func (k Klasse) String() string { return string(k) }
