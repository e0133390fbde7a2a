package io

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/s-hoffleit/projekttage/common/models/domain"
)

type rosterListEntry struct {
	ID          string `json:"id"`
	Anmeldename string `json:"anmeldename"`
	Vorname     string `json:"vorname"`
	Nachname    string `json:"nachname"`
	Gruppen     string `json:"gruppen"`
}

// ImportRosterList decodes the single-element-array roster-list envelope
// (spec.md §6) and inserts each entry as a dormant (Ignore=true) student
// with no wishes yet, exactly as original_source's
// `From<SchuelerListeFile>` does. Entries with an empty "anmeldename" are
// skipped. Students already present in roster are left untouched so a
// roster-list import never clobbers an existing wishes import.
func ImportRosterList(data []byte, roster domain.Snapshot) error {
	var envelope [1][]rosterListEntry
	if err := json.Unmarshal(data, &envelope); err != nil {
		return errors.Wrap(err, "decode roster-list import")
	}

	for _, entry := range envelope[0] {
		if strings.TrimSpace(entry.Anmeldename) == "" {
			continue
		}
		id, err := domain.ParseStudentID(entry.Anmeldename)
		if err != nil {
			return errors.Wrapf(err, "anmeldename %q", entry.Anmeldename)
		}
		if _, exists := roster.Students[id]; exists {
			continue
		}
		uid, err := strconv.ParseUint(entry.ID, 10, 32)
		if err != nil {
			return errors.Wrapf(err, "student %s uid %q", id, entry.ID)
		}
		roster.Students[id] = &domain.Student{
			ID:     id,
			Uid:    uint32(uid),
			Name:   strings.TrimSpace(entry.Vorname + " " + entry.Nachname),
			Klasse: domain.Klasse(entry.Gruppen),
			Ignore: true,
		}
	}

	return nil
}
