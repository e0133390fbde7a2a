package assign

import "github.com/s-hoffleit/projekttage/common/models/domain"

// Result is the post-solve diagnostic output described in spec.md §4.4.
type Result struct {
	Assignments []domain.AssignmentRecord

	// ProjectLoad is the number of students landed on each project.
	ProjectLoad map[domain.ProjectID]int

	// WishHistogram counts how many active, wish-bearing students received
	// their 1st..5th wish (indices 0..4) or none of their wishes (index 5).
	WishHistogram [6]int

	// PartnersTogether counts students whose resolved partner (mutual or
	// not) received the same project.
	PartnersTogether int
}

// Extract converts a solved primal matrix into a Result, reading each
// student's assigned project as the column with value > 0.5 (spec.md
// §4.4: "binary variables may arrive as 0.999999 or 1e-7 off zero from
// the relaxation's numerical tolerance").
func Extract(
	matrix Matrix,
	studentIDs []domain.StudentID,
	projectIDs []domain.ProjectID,
	students map[domain.StudentID]*domain.Student,
) Result {
	res := Result{ProjectLoad: make(map[domain.ProjectID]int)}

	assignedProject := make(map[domain.StudentID]domain.ProjectID, len(studentIDs))
	var nextRecordID uint64 = 1
	for i, sid := range studentIDs {
		var assigned *domain.ProjectID
		for j, pid := range projectIDs {
			if matrix[i][j] > 0.5 {
				p := pid
				assigned = &p
				assignedProject[sid] = pid
				break
			}
		}
		res.Assignments = append(res.Assignments, domain.AssignmentRecord{
			RecordID:  nextRecordID,
			StudentID: sid,
			ProjectID: assigned,
		})
		nextRecordID++
		if assigned != nil {
			res.ProjectLoad[*assigned]++
		}
	}

	for _, sid := range studentIDs {
		s := students[sid]
		if !s.Active() || s.Wishes == nil {
			continue
		}
		pid, ok := assignedProject[sid]
		if !ok {
			continue
		}
		matched := false
		for k, wishPID := range s.Wishes {
			if wishPID.IsSentinel() {
				continue
			}
			if wishPID == pid {
				res.WishHistogram[k]++
				matched = true
				break
			}
		}
		if !matched {
			res.WishHistogram[5]++
		}
	}

	for _, sid := range studentIDs {
		s := students[sid]
		if s.PartnerResolved == nil {
			continue
		}
		pid, ok := assignedProject[sid]
		if !ok {
			continue
		}
		if partnerProj, ok := assignedProject[*s.PartnerResolved]; ok && partnerProj == pid {
			res.PartnersTogether++
		}
	}

	return res
}
