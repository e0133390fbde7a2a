package io

import (
	"fmt"
	"strings"

	"github.com/s-hoffleit/projekttage/common/models/domain"
)

// ExportAssignmentsCSV renders the assignment result as the semicolon-
// separated CSV format of spec.md §6, field-for-field as
// original_source's `Msg::ExportCsv` handler: header "ID;Schueler;Projekt",
// rows "id;name (klasse);projektId: name (minGrade-maxGrade)", with a
// missing project rendered as "--". The project id in the third column is
// the raw (0-based) id, not the 1-based display form, matching the
// original which formats `p_id.id()` rather than `p_id`'s Display impl.
func ExportAssignmentsCSV(
	assignments []domain.AssignmentRecord,
	students map[domain.StudentID]*domain.Student,
	projects map[domain.ProjectID]*domain.Project,
) string {
	var b strings.Builder
	b.WriteString("ID;Schueler;Projekt")

	for _, rec := range assignments {
		s := students[rec.StudentID]
		if s == nil {
			continue
		}
		if rec.ProjectID == nil {
			fmt.Fprintf(&b, "\n%d;%s (%s);--", rec.RecordID, s.Name, s.Klasse)
			continue
		}
		p := projects[*rec.ProjectID]
		if p == nil {
			fmt.Fprintf(&b, "\n%d;%s (%s);--", rec.RecordID, s.Name, s.Klasse)
			continue
		}
		fmt.Fprintf(&b, "\n%d;%s (%s);%d: %s (%d-%d)",
			rec.RecordID, s.Name, s.Klasse,
			rec.ProjectID.Raw(), p.Name, p.MinGrade, p.MaxGrade)
	}

	return b.String()
}
