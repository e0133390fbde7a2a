// Package domain holds the identifier and entity types shared by the
// resolver, the MILP formulator, and the collaborator adapters.
package domain

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// StudentID identifies a Schueler. Equality and hashing are value-based,
// since it wraps a fixed-size array.
type StudentID struct {
	uuid uuid.UUID
}

// NewStudentID wraps an existing UUID as a StudentID.
func NewStudentID(u uuid.UUID) StudentID {
	return StudentID{uuid: u}
}

// ParseStudentID parses a UUID string into a StudentID.
func ParseStudentID(s string) (StudentID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return StudentID{}, fmt.Errorf("invalid student id %q: %w", s, err)
	}
	return StudentID{uuid: u}, nil
}

// NewRandomStudentID generates a fresh random StudentID.
func NewRandomStudentID() StudentID {
	return StudentID{uuid: uuid.New()}
}

// UUID returns the underlying UUID value.
func (id StudentID) UUID() uuid.UUID { return id.uuid }

// IsZero reports whether id is the zero value (no student).
func (id StudentID) IsZero() bool { return id.uuid == uuid.Nil }

func (id StudentID) String() string { return id.uuid.String() }

// MarshalText implements encoding.TextMarshaler so StudentID can be used as
// a JSON object key and as a plain JSON string value.
func (id StudentID) MarshalText() ([]byte, error) {
	return []byte(id.uuid.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *StudentID) UnmarshalText(text []byte) error {
	u, err := uuid.Parse(string(text))
	if err != nil {
		return fmt.Errorf("invalid student id %q: %w", text, err)
	}
	id.uuid = u
	return nil
}

// ProjectID identifies a Projekt. It is an opaque, non-negative integer on
// the wire; display uses id+1 (see original_source's ProjektId::Display).
type ProjectID uint32

// NoProjectID is the sentinel used internally for "no project" / "wish
// absent". The wire-level sentinel is the literal -1 (see spec.md §4.1 and
// §9); the JSON adapters in internal/io translate between the two.
const NoProjectID ProjectID = math.MaxUint32

// IsSentinel reports whether id is the "no project" sentinel.
func (id ProjectID) IsSentinel() bool { return id == NoProjectID }

// Raw returns the underlying 0-based integer, for wire formats that render
// the raw id rather than the 1-based display form (e.g. the CSV export's
// "projekt" column, recovered from original_source's CSV handler which
// formats `p_id.id()` directly instead of going through Display).
func (id ProjectID) Raw() uint32 { return uint32(id) }

// String renders the 1-based display form (the CSV export uses Raw
// instead). The sentinel renders as "--".
func (id ProjectID) String() string {
	if id.IsSentinel() {
		return "--"
	}
	return fmt.Sprintf("%d", uint32(id)+1)
}

// NoCapBound is the sentinel for an unbounded participant-count side (the
// wire-level -1 on min_teilnehmer/max_teilnehmer).
const NoCapBound = -1
