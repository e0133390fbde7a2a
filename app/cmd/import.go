package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/s-hoffleit/projekttage/common/models/domain"
	pio "github.com/s-hoffleit/projekttage/internal/io"
)

// readRoster loads an existing roster file, or returns a fresh empty
// snapshot if the path does not exist yet (spec.md §6: imports may target
// "an existing (or fresh) roster file").
func readRoster(path string) (domain.Snapshot, []domain.AssignmentRecord, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.Snapshot{
			Projects: make(map[domain.ProjectID]*domain.Project),
			Students: make(map[domain.StudentID]*domain.Student),
		}, nil, nil
	}
	if err != nil {
		return domain.Snapshot{}, nil, errors.Wrap(err, "read roster")
	}
	return pio.LoadRoster(data)
}

var (
	importInPath     string
	importRosterPath string
)

var importWishesCmd = &cobra.Command{
	Use:   "import-wishes",
	Short: "Apply a wishes-only import envelope onto a roster file",
	RunE:  runImportWishes,
}

var importRosterListCmd = &cobra.Command{
	Use:   "import-roster-list",
	Short: "Apply a roster-list import envelope onto a roster file",
	RunE:  runImportRosterList,
}

func init() {
	for _, c := range []*cobra.Command{importWishesCmd, importRosterListCmd} {
		c.Flags().StringVar(&importInPath, "in", "", "path to the import envelope JSON file (required)")
		c.Flags().StringVar(&importRosterPath, "roster", "", "path to the roster JSON file to read and rewrite (required)")
		_ = c.MarkFlagRequired("in")
		_ = c.MarkFlagRequired("roster")
	}
}

func runImportWishes(cmd *cobra.Command, args []string) error {
	snapshot, assignments, err := readRoster(importRosterPath)
	if err != nil {
		return &InputError{Err: err}
	}

	importData, err := os.ReadFile(importInPath)
	if err != nil {
		return &InputError{Err: errors.Wrap(err, "read wishes import")}
	}
	before := len(snapshot.Students)
	if err := pio.ImportWishes(importData, snapshot); err != nil {
		return &InputError{Err: err}
	}
	log.Info().Int("students_before", before).Int("students_after", len(snapshot.Students)).Msg("wishes import applied")

	out, err := pio.SaveRoster(snapshot, assignments)
	if err != nil {
		return errors.Wrap(err, "encode roster")
	}
	return os.WriteFile(importRosterPath, out, 0o644)
}

func runImportRosterList(cmd *cobra.Command, args []string) error {
	snapshot, assignments, err := readRoster(importRosterPath)
	if err != nil {
		return &InputError{Err: err}
	}

	importData, err := os.ReadFile(importInPath)
	if err != nil {
		return &InputError{Err: errors.Wrap(err, "read roster-list import")}
	}
	before := len(snapshot.Students)
	if err := pio.ImportRosterList(importData, snapshot); err != nil {
		return &InputError{Err: err}
	}
	log.Info().Int("students_before", before).Int("students_after", len(snapshot.Students)).Msg("roster-list import applied")

	out, err := pio.SaveRoster(snapshot, assignments)
	if err != nil {
		return errors.Wrap(err, "encode roster")
	}
	return os.WriteFile(importRosterPath, out, 0o644)
}
