package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/logging"
	"github.com/llehouerou/cadence/internal/playlists"
	"github.com/llehouerou/cadence/internal/state"
	"github.com/llehouerou/cadence/internal/ui/render"
)

var (
	playlistName        string
	playlistDescription string
)

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "List and edit playlists",
	Long: `List built-in and user playlists, or manage your own. User playlist
ids start with "` + playlists.IDPrefix + `".

Examples:
  cadence playlist
  cadence playlist create "Road trip" --description "long drives"
  cadence playlist add my-1 4 6
  cadence play --playlist my-1`,
	Args: cobra.NoArgs,
	RunE: runPlaylistList,
}

var playlistShowCmd = &cobra.Command{
	Use:   "show <playlist-id>",
	Short: "Show the tracks of a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistShow,
}

var playlistCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistCreate,
}

var playlistEditCmd = &cobra.Command{
	Use:   "edit <playlist-id>",
	Short: "Rename a playlist or change its description",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistEdit,
}

var playlistDeleteCmd = &cobra.Command{
	Use:   "delete <playlist-id>",
	Short: "Delete a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistDelete,
}

var playlistAddCmd = &cobra.Command{
	Use:   "add <playlist-id> <track-id...>",
	Short: "Add tracks to a playlist, skipping ones already in it",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPlaylistAdd,
}

var playlistRemoveCmd = &cobra.Command{
	Use:   "remove <playlist-id> <track-id>",
	Short: "Remove a track from a playlist",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlaylistRemove,
}

func init() {
	playlistCreateCmd.Flags().StringVarP(&playlistDescription, "description", "d", "", "playlist description")
	playlistEditCmd.Flags().StringVarP(&playlistName, "name", "n", "", "new name")
	playlistEditCmd.Flags().StringVarP(&playlistDescription, "description", "d", "", "new description")

	playlistCmd.AddCommand(
		playlistShowCmd,
		playlistCreateCmd,
		playlistEditCmd,
		playlistDeleteCmd,
		playlistAddCmd,
		playlistRemoveCmd,
	)
	rootCmd.AddCommand(playlistCmd)
}

// withPlaylists opens the state store for the duration of fn.
func withPlaylists(fn func(*playlists.Playlists) error) error {
	store, err := state.Open(cfg.StateFile, nil)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(playlists.New(store.DB()))
}

// fullCatalog is the catalog including the user's playlists.
func fullCatalog(ctx context.Context, p *playlists.Playlists) *catalog.Catalog {
	cat := loadCatalog(ctx, cfg.MusicDir, logging.Discard())
	user, err := p.Catalog(ctx)
	if err != nil {
		return cat
	}
	return catalog.Merge(cat, user)
}

func runPlaylistList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	return withPlaylists(func(p *playlists.Playlists) error {
		cat := fullCatalog(ctx, p)
		out := cmd.OutOrStdout()
		for _, pl := range cat.Playlists() {
			fmt.Fprintf(out, "%-16s %-30s %3d tracks %8s\n",
				pl.ID,
				render.Clip(pl.Name, 30),
				len(pl.TrackIDs),
				render.FormatDuration(cat.TotalDuration(pl.TrackIDs)))
		}
		return nil
	})
}

func runPlaylistShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withPlaylists(func(p *playlists.Playlists) error {
		cat := fullCatalog(ctx, p)
		pl, ok := cat.Playlist(args[0])
		if !ok {
			return fmt.Errorf("unknown playlist %q", args[0])
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, pl.Name)
		if pl.Description != "" {
			fmt.Fprintln(out, pl.Description)
		}
		tracks := cat.Resolve(pl.TrackIDs)
		if len(tracks) == 0 {
			fmt.Fprintln(out, "No tracks")
			return nil
		}
		fmt.Fprintln(out)
		printTracks(out, tracks)
		return nil
	})
}

func runPlaylistCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withPlaylists(func(p *playlists.Playlists) error {
		pl, err := p.Create(ctx, args[0], playlistDescription)
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpPlaylistCreate, err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", pl.Name, pl.ID)
		return nil
	})
}

func runPlaylistEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withPlaylists(func(p *playlists.Playlists) error {
		pl, err := p.Get(ctx, args[0])
		if err != nil {
			return errors.New(errmsg.FormatWith(errmsg.OpPlaylistUpdate, args[0], err))
		}
		name, description := pl.Name, pl.Description
		if cmd.Flags().Changed("name") {
			name = playlistName
		}
		if cmd.Flags().Changed("description") {
			description = playlistDescription
		}
		if err := p.Update(ctx, pl.ID, name, description); err != nil {
			return errors.New(errmsg.FormatWith(errmsg.OpPlaylistUpdate, args[0], err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", pl.ID)
		return nil
	})
}

func runPlaylistDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withPlaylists(func(p *playlists.Playlists) error {
		if err := p.Delete(ctx, args[0]); err != nil {
			return errors.New(errmsg.FormatWith(errmsg.OpPlaylistDelete, args[0], err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	})
}

func runPlaylistAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withPlaylists(func(p *playlists.Playlists) error {
		cat := loadCatalog(ctx, cfg.MusicDir, logging.Discard())
		for _, id := range args[1:] {
			if _, ok := cat.Track(id); !ok {
				return fmt.Errorf("unknown track %q", id)
			}
		}
		n, err := p.AddTracks(ctx, args[0], args[1:]...)
		if err != nil {
			return errors.New(errmsg.FormatWith(errmsg.OpPlaylistAdd, args[0], err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d of %d tracks to %s\n", n, len(args)-1, args[0])
		return nil
	})
}

func runPlaylistRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withPlaylists(func(p *playlists.Playlists) error {
		removed, err := p.RemoveTrack(ctx, args[0], args[1])
		if err != nil {
			return errors.New(errmsg.FormatWith(errmsg.OpPlaylistRemove, args[0], err))
		}
		if !removed {
			fmt.Fprintf(cmd.OutOrStdout(), "Track %s is not in %s\n", args[1], args[0])
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", args[1], args[0])
		return nil
	})
}
