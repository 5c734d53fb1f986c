package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/logging"
	"github.com/llehouerou/cadence/internal/state"
	"github.com/llehouerou/cadence/internal/ui/render"
)

var catalogGenre string

var catalogCmd = &cobra.Command{
	Use:   "catalog [query]",
	Short: "List or search the catalog",
	Long: `List every track, or search tracks, albums and playlists by title,
artist or name.

Examples:
  cadence catalog
  cadence catalog queen
  cadence catalog --genre rock`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogGenre, "genre", "g", "", "only tracks of this genre")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cat := loadCatalog(ctx, cfg.MusicDir, logging.Discard())
	if store, err := state.Open(cfg.StateFile, nil); err == nil {
		cat = withUserPlaylists(ctx, cat, store.DB(), logging.Discard())
		_ = store.Close()
	}
	out := cmd.OutOrStdout()

	switch {
	case len(args) == 1:
		res := cat.Search(args[0])
		if res.IsEmpty() {
			fmt.Fprintf(out, "No matches for %q\n", args[0])
			return nil
		}
		printTracks(out, res.Tracks)
		for _, a := range res.Albums {
			fmt.Fprintf(out, "album     %s - %s (%d tracks)\n", a.Title, a.Artist, len(a.TrackIDs))
		}
		for _, p := range res.Playlists {
			fmt.Fprintf(out, "playlist  %s (%d tracks, %s)\n", p.Name, len(p.TrackIDs), render.FormatDuration(cat.TotalDuration(p.TrackIDs)))
		}
	case catalogGenre != "":
		printTracks(out, cat.ByGenre(catalogGenre))
	default:
		printTracks(out, cat.Tracks())
		fmt.Fprintf(out, "\n%d tracks, genres: %v\n", cat.Len(), cat.Genres())
	}
	return nil
}

func printTracks(out io.Writer, tracks []catalog.Track) {
	for _, t := range tracks {
		plays := ""
		if t.PlayCount > 0 {
			plays = humanize.Comma(t.PlayCount) + " plays"
		}
		fmt.Fprintf(out, "%-8s %-40s %6s  %s\n",
			t.ID,
			render.Clip(trackLabel(t), 40),
			render.FormatDuration(t.Duration),
			plays)
	}
}
