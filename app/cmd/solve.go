package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/s-hoffleit/projekttage/common/models/domain"
	"github.com/s-hoffleit/projekttage/internal/assign"
	pio "github.com/s-hoffleit/projekttage/internal/io"
)

var (
	solveRosterPath  string
	solveFixedPath   string
	solveOutJSONPath string
	solveOutCSVPath  string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Resolve partners, solve the assignment, and write the result",
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&solveRosterPath, "roster", "", "path to the roster JSON file (required)")
	solveCmd.Flags().StringVar(&solveFixedPath, "fixed", "", "optional path to a fixed-assignment override JSON file")
	solveCmd.Flags().StringVar(&solveOutJSONPath, "out-json", "", "optional path to write the updated roster JSON to")
	solveCmd.Flags().StringVar(&solveOutCSVPath, "out-csv", "", "optional path to write the CSV export to")
	_ = solveCmd.MarkFlagRequired("roster")
}

func loadFixed(path string) (domain.Fixed, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read fixed file")
	}
	var wire map[string]int
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, errors.Wrap(err, "decode fixed file")
	}
	fixed := make(domain.Fixed, len(wire))
	for idStr, pid := range wire {
		id, err := domain.ParseStudentID(idStr)
		if err != nil {
			return nil, errors.Wrapf(err, "fixed entry %q", idStr)
		}
		fixed[id] = domain.ProjectID(pid)
	}
	return fixed, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	rosterData, err := os.ReadFile(solveRosterPath)
	if err != nil {
		return &InputError{Err: errors.Wrap(err, "read roster")}
	}
	snapshot, _, err := pio.LoadRoster(rosterData)
	if err != nil {
		return &InputError{Err: err}
	}

	fixed, err := loadFixed(solveFixedPath)
	if err != nil {
		return &InputError{Err: err}
	}

	result, err := assign.Assign(context.Background(), snapshot, fixed)
	if err != nil {
		return err
	}

	summary := assign.SummarizeWishHistogram(result.WishHistogram)
	log.Info().
		Int("assigned", len(result.Assignments)).
		Float64("mean_rank", summary.MeanRank).
		Int("unwished", summary.TotalUnwished).
		Int("partners_together", result.PartnersTogether).
		Msg("solve complete")

	for pid, p := range snapshot.Projects {
		p.NumAssigned = result.ProjectLoad[pid]
	}

	if solveOutJSONPath != "" {
		out, err := pio.SaveRoster(snapshot, result.Assignments)
		if err != nil {
			return errors.Wrap(err, "encode roster")
		}
		if err := os.WriteFile(solveOutJSONPath, out, 0o644); err != nil {
			return errors.Wrap(err, "write roster json")
		}
	}

	if solveOutCSVPath != "" {
		csv := pio.ExportAssignmentsCSV(result.Assignments, snapshot.Students, snapshot.Projects)
		if err := os.WriteFile(solveOutCSVPath, []byte(csv), 0o644); err != nil {
			return errors.Wrap(err, "write csv")
		}
	}

	return nil
}
