package domain

// Snapshot is the single in-memory value passed by value into the
// orchestration facade: a roster of projects and students. The maps hold
// pointers, so the facade's partner-resolver pass writes each student's
// PartnerResolved field in place; everything else the facade computes is
// returned in its Result.
type Snapshot struct {
	Projects map[ProjectID]*Project
	Students map[StudentID]*Student
}

// Fixed is a caller-supplied student -> project override (spec.md §3's
// "fixed-assignment override"), independent of wishes or Fest.
type Fixed map[StudentID]ProjectID

// AssignmentRecord is a concrete assignment outcome (a "Zuordnung").
// ProjectID is nil for storage-only "ignored" students.
type AssignmentRecord struct {
	RecordID  uint64
	StudentID StudentID
	ProjectID *ProjectID
}
