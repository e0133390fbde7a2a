// Package io holds the collaborator adapters: JSON roster persistence,
// the two import envelopes, CSV export, and a local-storage abstraction
// (spec.md §6).
package io

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/s-hoffleit/projekttage/common/models/domain"
)

// wireKlasseGroup is a read-only summary of which class labels exist at a
// given grade level; it is recomputed on every save and ignored on load,
// since common/models/domain.Snapshot is the single source of truth for
// students and their Klasse fields (recovered from original_source's
// SaveFileKlasse, which played the same informational-only role there).
type wireKlasseGroup struct {
	Anzahl  uint32   `json:"anzahl"`
	Klassen []string `json:"klassen"`
}

type wireProject struct {
	Name          string `json:"name"`
	MinTeilnehmer int    `json:"min_teilnehmer"`
	MaxTeilnehmer int    `json:"max_teilnehmer"`
	MinStufe      int    `json:"min_stufe"`
	MaxStufe      int    `json:"max_stufe"`
	Ignore        bool   `json:"ignore"`
}

// UnmarshalJSON accepts both the "min_teilnehmer"/"max_teilnehmer" and the
// shorthand "min"/"max" key spellings (original_source's
// `#[serde(alias = "min")]`/`"max"`).
func (w *wireProject) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name          string `json:"name"`
		MinTeilnehmer *int   `json:"min_teilnehmer"`
		Min           *int   `json:"min"`
		MaxTeilnehmer *int   `json:"max_teilnehmer"`
		Max           *int   `json:"max"`
		MinStufe      int    `json:"min_stufe"`
		MaxStufe      int    `json:"max_stufe"`
		Ignore        bool   `json:"ignore"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "decode project")
	}
	w.Name = raw.Name
	w.MinStufe = raw.MinStufe
	w.MaxStufe = raw.MaxStufe
	w.Ignore = raw.Ignore
	switch {
	case raw.MinTeilnehmer != nil:
		w.MinTeilnehmer = *raw.MinTeilnehmer
	case raw.Min != nil:
		w.MinTeilnehmer = *raw.Min
	default:
		return errors.New("project missing min_teilnehmer/min")
	}
	switch {
	case raw.MaxTeilnehmer != nil:
		w.MaxTeilnehmer = *raw.MaxTeilnehmer
	case raw.Max != nil:
		w.MaxTeilnehmer = *raw.Max
	default:
		return errors.New("project missing max_teilnehmer/max")
	}
	return nil
}

type wireStudent struct {
	UID        uint32  `json:"uid"`
	Name       string  `json:"name"`
	Wishes     *[5]int `json:"wishes"`
	PartnerRaw *string `json:"partner_raw"`
	Ignore     bool    `json:"ignore"`
	Klasse     string  `json:"klasse"`
	Partner    *string `json:"partner"`
	Fest       bool    `json:"fest"`
}

type wireZuordnung struct {
	ID       uint64 `json:"id"`
	Schueler string `json:"schueler"`
	Projekt  *int   `json:"projekt"`
}

type wireRoster struct {
	Klassen  map[string]wireKlasseGroup `json:"klassen"`
	Projekte map[string]wireProject     `json:"projekte"`
	Schueler map[string]wireStudent     `json:"schueler"`
	Zuordnung []wireZuordnung           `json:"zuordnung"`
}

func projectIDToWire(id domain.ProjectID) int {
	if id.IsSentinel() {
		return -1
	}
	return int(id.Raw())
}

func projectIDFromWire(n int) domain.ProjectID {
	if n < 0 {
		return domain.NoProjectID
	}
	return domain.ProjectID(n)
}

func capToWire(n int) int {
	if n == domain.NoCapBound {
		return -1
	}
	return n
}

func capFromWire(n int) int {
	if n < 0 {
		return domain.NoCapBound
	}
	return n
}

// LoadRoster decodes a full roster snapshot (spec.md §6's "Roster file").
func LoadRoster(data []byte) (domain.Snapshot, []domain.AssignmentRecord, error) {
	var wire wireRoster
	if err := json.Unmarshal(data, &wire); err != nil {
		return domain.Snapshot{}, nil, errors.Wrap(err, "decode roster")
	}

	snapshot := domain.Snapshot{
		Projects: make(map[domain.ProjectID]*domain.Project, len(wire.Projekte)),
		Students: make(map[domain.StudentID]*domain.Student, len(wire.Schueler)),
	}

	for idStr, wp := range wire.Projekte {
		var raw int
		if _, err := fmt.Sscanf(idStr, "%d", &raw); err != nil {
			return domain.Snapshot{}, nil, errors.Wrapf(err, "project id %q", idStr)
		}
		id := domain.ProjectID(raw)
		snapshot.Projects[id] = &domain.Project{
			ID:       id,
			Name:     wp.Name,
			MinGrade: wp.MinStufe,
			MaxGrade: wp.MaxStufe,
			MinCap:   capFromWire(wp.MinTeilnehmer),
			MaxCap:   capFromWire(wp.MaxTeilnehmer),
			Ignore:   wp.Ignore,
		}
	}

	for idStr, ws := range wire.Schueler {
		id, err := domain.ParseStudentID(idStr)
		if err != nil {
			return domain.Snapshot{}, nil, errors.Wrapf(err, "student id %q", idStr)
		}
		s := &domain.Student{
			ID:         id,
			Uid:        ws.UID,
			Name:       ws.Name,
			Klasse:     domain.Klasse(ws.Klasse),
			PartnerRaw: ws.PartnerRaw,
			Ignore:     ws.Ignore,
			Fest:       ws.Fest,
		}
		if ws.Wishes != nil {
			var wishes [5]domain.ProjectID
			for i, w := range ws.Wishes {
				wishes[i] = projectIDFromWire(w)
			}
			s.Wishes = &wishes
		}
		if ws.Partner != nil {
			pid, err := domain.ParseStudentID(*ws.Partner)
			if err != nil {
				return domain.Snapshot{}, nil, errors.Wrapf(err, "student %q partner", idStr)
			}
			s.PartnerResolved = &pid
		}
		snapshot.Students[id] = s
	}

	var assignments []domain.AssignmentRecord
	for _, wz := range wire.Zuordnung {
		sid, err := domain.ParseStudentID(wz.Schueler)
		if err != nil {
			return domain.Snapshot{}, nil, errors.Wrapf(err, "assignment %d student", wz.ID)
		}
		rec := domain.AssignmentRecord{RecordID: wz.ID, StudentID: sid}
		if wz.Projekt != nil {
			pid := projectIDFromWire(*wz.Projekt)
			rec.ProjectID = &pid
		}
		assignments = append(assignments, rec)
	}

	log.Debug().
		Int("klassen", len(wire.Klassen)).
		Int("projekte", len(snapshot.Projects)).
		Int("schueler", len(snapshot.Students)).
		Int("zuordnung", len(assignments)).
		Msg("roster loaded")

	return snapshot, assignments, nil
}

// SaveRoster encodes a full roster snapshot, recomputing the klassen
// summary section from the current students (spec.md §6).
func SaveRoster(snapshot domain.Snapshot, assignments []domain.AssignmentRecord) ([]byte, error) {
	wire := wireRoster{
		Klassen:  buildKlassenSummary(snapshot.Students),
		Projekte: make(map[string]wireProject, len(snapshot.Projects)),
		Schueler: make(map[string]wireStudent, len(snapshot.Students)),
	}

	for id, p := range snapshot.Projects {
		wire.Projekte[fmt.Sprintf("%d", id.Raw())] = wireProject{
			Name:          p.Name,
			MinTeilnehmer: capToWire(p.MinCap),
			MaxTeilnehmer: capToWire(p.MaxCap),
			MinStufe:      p.MinGrade,
			MaxStufe:      p.MaxGrade,
			Ignore:        p.Ignore,
		}
	}

	for id, s := range snapshot.Students {
		ws := wireStudent{
			UID:        s.Uid,
			Name:       s.Name,
			PartnerRaw: s.PartnerRaw,
			Ignore:     s.Ignore,
			Klasse:     s.Klasse.String(),
			Fest:       s.Fest,
		}
		if s.Wishes != nil {
			var wishes [5]int
			for i, w := range s.Wishes {
				wishes[i] = projectIDToWire(w)
			}
			ws.Wishes = &wishes
		}
		if s.PartnerResolved != nil {
			partner := s.PartnerResolved.String()
			ws.Partner = &partner
		}
		wire.Schueler[id.String()] = ws
	}

	for _, rec := range assignments {
		wz := wireZuordnung{ID: rec.RecordID, Schueler: rec.StudentID.String()}
		if rec.ProjectID != nil {
			n := projectIDToWire(*rec.ProjectID)
			wz.Projekt = &n
		}
		wire.Zuordnung = append(wire.Zuordnung, wz)
	}
	sort.Slice(wire.Zuordnung, func(i, j int) bool { return wire.Zuordnung[i].ID < wire.Zuordnung[j].ID })

	return json.Marshal(wire)
}

func buildKlassenSummary(students map[domain.StudentID]*domain.Student) map[string]wireKlasseGroup {
	byGrade := make(map[int]map[string]bool)
	for _, s := range students {
		grade, ok := s.Klasse.GradeLevel()
		if !ok {
			continue
		}
		if byGrade[grade] == nil {
			byGrade[grade] = make(map[string]bool)
		}
		byGrade[grade][s.Klasse.String()] = true
	}

	out := make(map[string]wireKlasseGroup, len(byGrade))
	for grade, set := range byGrade {
		labels := make([]string, 0, len(set))
		for label := range set {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		out[fmt.Sprintf("%d", grade)] = wireKlasseGroup{Anzahl: uint32(len(labels)), Klassen: labels}
	}
	return out
}
