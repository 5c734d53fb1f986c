package state

import (
	"context"

	"github.com/llehouerou/cadence/internal/playback"
)

// Interface defines the state store contract for dependency injection and testing.
type Interface interface {
	SaveSession(sess playback.Session)
	GetSession(ctx context.Context) (*playback.Session, error)
	SaveRecent(ctx context.Context, ids []string) error
	Recent(ctx context.Context) ([]string, error)
	ToggleLiked(ctx context.Context, id string) (bool, error)
	IsLiked(ctx context.Context, id string) (bool, error)
	Liked(ctx context.Context) ([]string, error)
	Close() error
}

// Verify Store implements Interface at compile time.
var _ Interface = (*Store)(nil)
