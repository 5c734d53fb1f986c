package playlist

import (
	"slices"
	"testing"
)

func TestPlaylist_AddAndIDs(t *testing.T) {
	p := NewPlaylist()
	p.Add("a", "b", "a")

	if p.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", p.Len())
	}
	if got := p.IDs(); !slices.Equal(got, []string{"a", "b", "a"}) {
		t.Errorf("IDs() = %v", got)
	}

	// IDs returns a copy
	ids := p.IDs()
	ids[0] = "z"
	if id, _ := p.ID(0); id != "a" {
		t.Errorf("ID(0) = %q after mutating copy, want a", id)
	}
}

func TestPlaylist_ID_OutOfBounds(t *testing.T) {
	p := NewPlaylist()
	p.Add("a")

	for _, idx := range []int{-1, 1, 5} {
		if _, ok := p.ID(idx); ok {
			t.Errorf("ID(%d) should fail", idx)
		}
	}
}

func TestPlaylist_RemoveID(t *testing.T) {
	p := NewPlaylist()
	p.Add("a", "b", "a", "c")

	if n := p.RemoveID("a"); n != 2 {
		t.Errorf("RemoveID(a) = %d, want 2", n)
	}
	if got := p.IDs(); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("IDs() = %v, want [b c]", got)
	}
	if n := p.RemoveID("missing"); n != 0 {
		t.Errorf("RemoveID(missing) = %d, want 0", n)
	}
}

func TestPlaylist_Remove(t *testing.T) {
	p := NewPlaylist()
	p.Add("a", "b", "c")

	if !p.Remove(1) {
		t.Fatal("Remove(1) should succeed")
	}
	if got := p.IDs(); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("IDs() = %v, want [a c]", got)
	}
	if p.Remove(2) {
		t.Error("Remove(2) should fail")
	}
}

func TestPlaylist_Move(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
		ok       bool
	}{
		{"forward", 0, 2, []string{"b", "c", "a", "d"}, true},
		{"backward", 3, 1, []string{"a", "d", "b", "c"}, true},
		{"same", 1, 1, []string{"a", "b", "c", "d"}, true},
		{"out of bounds", 0, 4, []string{"a", "b", "c", "d"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlaylist()
			p.Add("a", "b", "c", "d")
			if ok := p.Move(tt.from, tt.to); ok != tt.ok {
				t.Errorf("Move() = %v, want %v", ok, tt.ok)
			}
			if got := p.IDs(); !slices.Equal(got, tt.want) {
				t.Errorf("IDs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlaylist_ReplaceAndClear(t *testing.T) {
	p := NewPlaylist()
	p.Add("a", "b")
	p.Replace("x", "y", "z")

	if got := p.IDs(); !slices.Equal(got, []string{"x", "y", "z"}) {
		t.Errorf("IDs() = %v", got)
	}
	if p.IndexOf("y") != 1 {
		t.Errorf("IndexOf(y) = %d, want 1", p.IndexOf("y"))
	}

	p.Clear()
	if p.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", p.Len())
	}
}

func TestQueueHistory_UndoRedo(t *testing.T) {
	h := NewQueueHistory(3)
	h.Push(nil)
	h.Push([]string{"a"})
	h.Push([]string{"a", "b"})

	if !h.CanUndo() {
		t.Fatal("CanUndo() should be true")
	}
	got, ok := h.Undo()
	if !ok || !slices.Equal(got, []string{"a"}) {
		t.Errorf("Undo() = %v, %v; want [a], true", got, ok)
	}
	got, ok = h.Redo()
	if !ok || !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Redo() = %v, %v; want [a b], true", got, ok)
	}
	if h.CanRedo() {
		t.Error("CanRedo() should be false at newest state")
	}
}

func TestQueueHistory_PushClearsRedo(t *testing.T) {
	h := NewQueueHistory(10)
	h.Push([]string{"a"})
	h.Push([]string{"b"})
	h.Undo()
	h.Push([]string{"c"})

	if h.CanRedo() {
		t.Error("push after undo should drop redo states")
	}
}

func TestQueueHistory_TrimsOldest(t *testing.T) {
	h := NewQueueHistory(2)
	h.Push([]string{"a"})
	h.Push([]string{"b"})
	h.Push([]string{"c"})

	got, ok := h.Undo()
	if !ok || !slices.Equal(got, []string{"b"}) {
		t.Errorf("Undo() = %v, %v; want [b], true", got, ok)
	}
	if h.CanUndo() {
		t.Error("oldest state should have been trimmed")
	}
}
