package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	pio "github.com/s-hoffleit/projekttage/internal/io"
	"github.com/s-hoffleit/projekttage/internal/resolver"
)

var resolveRosterPath string

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Run the partner resolver batch pass over a roster file and rewrite it",
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveRosterPath, "roster", "", "path to the roster JSON file (required)")
	_ = resolveCmd.MarkFlagRequired("roster")
}

func runResolve(cmd *cobra.Command, args []string) error {
	rosterData, err := os.ReadFile(resolveRosterPath)
	if err != nil {
		return &InputError{Err: errors.Wrap(err, "read roster")}
	}
	snapshot, assignments, err := pio.LoadRoster(rosterData)
	if err != nil {
		return &InputError{Err: err}
	}

	resolver.ResolveAll(snapshot.Students)

	misses := 0
	for _, s := range snapshot.Students {
		if s.PartnerRaw != nil && *s.PartnerRaw != "" && s.PartnerResolved == nil {
			misses++
			log.Warn().Str("student", s.ID.String()).Str("partner_raw", *s.PartnerRaw).Msg("partner not resolved")
		}
	}
	log.Info().Int("students", len(snapshot.Students)).Int("misses", misses).Msg("resolver pass complete")

	out, err := pio.SaveRoster(snapshot, assignments)
	if err != nil {
		return errors.Wrap(err, "encode roster")
	}
	return os.WriteFile(resolveRosterPath, out, 0o644)
}
