package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/logging"
	"github.com/llehouerou/cadence/internal/state"
)

var likedToggle string

var likedCmd = &cobra.Command{
	Use:   "liked",
	Short: "List liked songs, or like/unlike one",
	Long: `List liked songs, most recently liked first.

Examples:
  cadence liked
  cadence liked --toggle 4`,
	Args: cobra.NoArgs,
	RunE: runLiked,
}

func init() {
	likedCmd.Flags().StringVar(&likedToggle, "toggle", "", "like or unlike the track with this id")
	rootCmd.AddCommand(likedCmd)
}

func runLiked(cmd *cobra.Command, _ []string) error {
	store, err := state.Open(cfg.StateFile, nil)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	cat := loadCatalog(ctx, cfg.MusicDir, logging.Discard())

	if likedToggle != "" {
		t, ok := cat.Track(likedToggle)
		if !ok {
			return fmt.Errorf("unknown track %q", likedToggle)
		}
		liked, err := store.ToggleLiked(ctx, t.ID)
		if err != nil {
			return fmt.Errorf("update liked songs: %w", err)
		}
		if liked {
			fmt.Fprintf(out, "♥ %s\n", trackLabel(t))
		} else {
			fmt.Fprintf(out, "  %s (unliked)\n", trackLabel(t))
		}
		return nil
	}

	ids, err := store.Liked(ctx)
	if err != nil {
		return fmt.Errorf("load liked songs: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(out, "No liked songs")
		return nil
	}
	for _, t := range cat.Resolve(ids) {
		fmt.Fprintf(out, "♥ %-8s %s\n", t.ID, trackLabel(t))
	}
	return nil
}
