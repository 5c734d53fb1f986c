package state

import (
	"context"
	"slices"
	"sync"

	"github.com/llehouerou/cadence/internal/playback"
)

// Mock is an in-memory test double for Store.
type Mock struct {
	mu      sync.Mutex
	session *playback.Session
	recent  []string
	liked   []string
	closed  bool
}

// NewMock creates a new mock state store for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SaveSession(sess playback.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &sess
}

func (m *Mock) GetSession(context.Context) (*playback.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, nil
}

func (m *Mock) SaveRecent(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recent = slices.Clone(ids)
	return nil
}

func (m *Mock) Recent(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.recent), nil
}

func (m *Mock) ToggleLiked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := slices.Index(m.liked, id); i >= 0 {
		m.liked = slices.Delete(m.liked, i, i+1)
		return false, nil
	}
	m.liked = slices.Insert(m.liked, 0, id)
	return true, nil
}

func (m *Mock) IsLiked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Contains(m.liked, id), nil
}

func (m *Mock) Liked(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.liked), nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
