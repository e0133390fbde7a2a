package io

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/s-hoffleit/projekttage/common/models/domain"
)

type wishesEntry struct {
	Antworten          string  `json:"antworten"`
	Anmeldename        string  `json:"anmeldename"`
	Vollstaendigername string  `json:"vollstndigername"`
	Gruppe             string  `json:"gruppe"`
	Erstwunsch         *string `json:"q01_erstwunsch"`
	Zweitwunsch        *string `json:"q02_zweitwunsch"`
	Drittwunsch        *string `json:"q03_drittwunsch"`
	Viertwunsch        *string `json:"q04_viertwunsch"`
	Fuenftwunsch       *string `json:"q05_fnftwunsch"`
	Wunschpartner      *string `json:"q06_wunschpartner"`
}

// parseWunsch extracts the numeric prefix of "<n> : <label>" and converts
// it to a 0-based project id (original_source's `get_wuensche`, which
// subtracts 1 from the parsed display number).
func parseWunsch(raw string) (domain.ProjectID, error) {
	field := strings.TrimSpace(strings.SplitN(raw, " : ", 2)[0])
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, errors.Wrapf(err, "wish %q", raw)
	}
	if n < 1 {
		return 0, errors.Errorf("wish %q has non-positive display number", raw)
	}
	return domain.ProjectID(n - 1), nil
}

func (e wishesEntry) wishes() (*[5]domain.ProjectID, error) {
	fields := []*string{e.Erstwunsch, e.Zweitwunsch, e.Drittwunsch, e.Viertwunsch, e.Fuenftwunsch}
	for _, f := range fields {
		if f == nil {
			return nil, nil
		}
	}
	var out [5]domain.ProjectID
	for i, f := range fields {
		pid, err := parseWunsch(*f)
		if err != nil {
			return nil, err
		}
		out[i] = pid
	}
	return &out, nil
}

// ImportWishes decodes the single-element-array wishes envelope (spec.md
// §6) and upserts each entry into roster. Existing students (e.g. a
// dormant roster-list entry) are reactivated (Ignore cleared) and given
// their wishes/partner text; unseen anmeldenamen become fresh students.
func ImportWishes(data []byte, roster domain.Snapshot) error {
	var envelope [1][]wishesEntry
	if err := json.Unmarshal(data, &envelope); err != nil {
		return errors.Wrap(err, "decode wishes import")
	}

	for _, entry := range envelope[0] {
		id, err := domain.ParseStudentID(entry.Anmeldename)
		if err != nil {
			return errors.Wrapf(err, "anmeldename %q", entry.Anmeldename)
		}
		uid, err := strconv.ParseUint(entry.Antworten, 10, 32)
		if err != nil {
			return errors.Wrapf(err, "student %s uid %q", id, entry.Antworten)
		}
		wishes, err := entry.wishes()
		if err != nil {
			return errors.Wrapf(err, "student %s", id)
		}

		s, exists := roster.Students[id]
		if !exists {
			s = &domain.Student{ID: id}
			roster.Students[id] = s
		}
		s.Uid = uint32(uid)
		s.Name = entry.Vollstaendigername
		s.Klasse = domain.Klasse(entry.Gruppe)
		s.Wishes = wishes
		s.PartnerRaw = entry.Wunschpartner
		s.Ignore = false
	}

	return nil
}
