package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/logging"
	"github.com/llehouerou/cadence/internal/state"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently played tracks",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := state.Open(cfg.StateFile, nil)
	if err != nil {
		return err
	}
	defer store.Close()

	ids, err := store.Recent(cmd.Context())
	if err != nil {
		return fmt.Errorf("load recently played: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(ids) == 0 {
		fmt.Fprintln(out, "Nothing played yet")
		return nil
	}

	cat := loadCatalog(cmd.Context(), cfg.MusicDir, logging.Discard())
	for i, id := range ids {
		label := id + " (no longer in catalog)"
		if t, ok := cat.Track(id); ok {
			label = trackLabel(t)
		}
		fmt.Fprintf(out, "%5s  %s\n", humanize.Ordinal(i+1), label)
	}
	return nil
}
