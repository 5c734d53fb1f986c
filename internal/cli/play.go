package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/playlists"
	"github.com/llehouerou/cadence/internal/ui/render"
)

var playCmd = &cobra.Command{
	Use:   "play [track-id...]",
	Short: "Play tracks without the interface",
	Long: `Play the given tracks in order, an album or a playlist, or resume the
last session when nothing is given. Stops at the end of the queue or on
Ctrl+C.

Examples:
  cadence play 1 4 6
  cadence play --album after-hours
  cadence play --playlist rock-classics
  cadence play`,
	RunE: runPlay,
}

var (
	playShuffle  bool
	playRepeat   string
	playSleep    time.Duration
	playAlbum    string
	playPlaylist string
)

func init() {
	playCmd.Flags().BoolVar(&playShuffle, "shuffle", false, "shuffle the queue")
	playCmd.Flags().StringVar(&playRepeat, "repeat", "", "repeat mode: off, track or queue")
	playCmd.Flags().DurationVar(&playSleep, "sleep", 0, "pause and exit after this much playing time")
	playCmd.Flags().StringVar(&playAlbum, "album", "", "play the album with this id")
	playCmd.Flags().StringVar(&playPlaylist, "playlist", "", "play the playlist with this id")
	playCmd.MarkFlagsMutuallyExclusive("album", "playlist")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	e, err := openEnv(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer e.Close()

	sub := e.engine.Subscribe()
	startWatchers(ctx, e)

	if playRepeat != "" {
		mode, ok := playback.ParseRepeatMode(playRepeat)
		if !ok {
			return fmt.Errorf("unknown repeat mode %q", playRepeat)
		}
		if err := e.engine.SetRepeatMode(mode); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("shuffle") {
		e.engine.SetShuffle(playShuffle)
	}

	ids, err := queueFor(e.catalog, playAlbum, playPlaylist, args)
	if err != nil {
		return err
	}
	if err := startPlayback(ctx, e, ids); err != nil {
		return err
	}
	if strings.HasPrefix(playPlaylist, playlists.IDPrefix) {
		if err := playlists.New(e.store.DB()).UpdateLastUsed(ctx, playPlaylist); err != nil {
			e.logger.Warn(errmsg.Format(errmsg.OpPlaylistUpdate, err))
		}
	}
	if playSleep > 0 {
		if err := e.engine.SetSleepTimer(playSleep); err != nil {
			return err
		}
	}

	clock := playback.NewClock(e.engine, 0, e.virtual.Advance)
	go func() {
		_ = clock.Run(ctx)
	}()

	out := cmd.OutOrStdout()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sub.Done:
			return nil
		case ev := <-sub.TrackStarted:
			fmt.Fprintf(out, "%d. %s (%s)\n", ev.Index+1, trackLabel(ev.Track), render.FormatDuration(ev.Track.Duration))
		case ev := <-sub.Error:
			fmt.Fprintf(cmd.ErrOrStderr(), "cannot play %s: %v\n", ev.Ref, ev.Err)
		case ev := <-sub.StateChanged:
			if ev.Current.Finished() {
				return nil
			}
			if sleepExpired(ev) {
				fmt.Fprintln(out, "sleep timer expired")
				return nil
			}
		}
	}
}

// sleepExpired reports whether ev is the pause issued by a running sleep
// timer reaching zero. Pauses while no timer runs do not count.
func sleepExpired(ev playback.StateChange) bool {
	return ev.Previous.Playing && ev.Previous.SleepRemaining > 0 &&
		!ev.Current.Playing && ev.Current.SleepRemaining == 0
}

// queueFor returns the track ids to play: the tracks of the album or the
// playlist when one is named, otherwise ids. Unknown ids are errors; album
// and playlist entries missing from the catalog are skipped.
func queueFor(cat *catalog.Catalog, album, playlist string, ids []string) ([]string, error) {
	var kind, id string
	var trackIDs []string
	switch {
	case (album != "" || playlist != "") && len(ids) > 0:
		return nil, errors.New("pass track ids or a collection, not both")
	case album != "" && playlist != "":
		return nil, errors.New("pass --album or --playlist, not both")
	case album != "":
		a, ok := cat.Album(album)
		if !ok {
			return nil, fmt.Errorf("unknown album %q", album)
		}
		kind, id, trackIDs = "album", album, a.TrackIDs
	case playlist != "":
		p, ok := cat.Playlist(playlist)
		if !ok {
			return nil, fmt.Errorf("unknown playlist %q", playlist)
		}
		kind, id, trackIDs = "playlist", playlist, p.TrackIDs
	default:
		for _, trackID := range ids {
			if _, ok := cat.Track(trackID); !ok {
				return nil, fmt.Errorf("unknown track %q", trackID)
			}
		}
		return ids, nil
	}

	playable := lo.Map(cat.Resolve(trackIDs), func(t catalog.Track, _ int) string { return t.ID })
	if len(playable) == 0 {
		return nil, fmt.Errorf("%s %q has no playable tracks", kind, id)
	}
	return playable, nil
}

// startPlayback replaces the queue with ids, starting at the first one, or
// resumes the saved session when ids is empty.
func startPlayback(ctx context.Context, e *env, ids []string) error {
	if len(ids) > 0 {
		return e.engine.LoadAndPlay(ids[0], ids...)
	}

	e.restoreSession(ctx)
	err := e.engine.Play()
	if errors.Is(err, playback.ErrMissingCurrentTrack) {
		return errors.New("nothing to play: pass track ids or play something first")
	}
	return err
}
