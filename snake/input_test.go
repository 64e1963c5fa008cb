package snake

import "testing"

func TestInputBufferFiltersAgainstHeading(t *testing.T) {
	b := NewInputBuffer(3)
	b.Push(Right)
	b.Push(Down)
	b.Push(Left)

	d, ok := b.Next(Right)
	if !ok || d != Right {
		t.Fatalf("expected right, got %v (%v)", d, ok)
	}
	d, ok = b.Next(d)
	if !ok || d != Down {
		t.Fatalf("expected down, got %v (%v)", d, ok)
	}
	d, ok = b.Next(d)
	if !ok || d != Left {
		t.Fatalf("expected left, got %v (%v)", d, ok)
	}
	if _, ok := b.Next(Left); ok {
		t.Error("expected empty buffer")
	}
	if s := b.Stats(); s.Accepted != 3 || s.Dropped != 0 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestInputBufferRejectsReversal(t *testing.T) {
	b := NewInputBuffer(3)
	b.Push(Left)
	if _, ok := b.Next(Right); ok {
		t.Error("reversal should be discarded")
	}
	if b.Len() != 0 {
		t.Errorf("expected reversal to be consumed, %d left", b.Len())
	}
}

func TestInputBufferOverflowDropsOldest(t *testing.T) {
	b := NewInputBuffer(3)
	for _, d := range []Direction{Up, Left, Down, Right} {
		b.Push(d)
	}
	got := b.Pending()
	want := []Direction{Left, Down, Right}
	if len(got) != len(want) {
		t.Fatalf("expected %d pending, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pending[%d]: expected %v, got %v", i, want[i], got[i])
		}
	}
	if b.Stats().Dropped != 1 {
		t.Errorf("expected 1 dropped, got %d", b.Stats().Dropped)
	}
}

func TestInputBufferIgnoresNonCardinal(t *testing.T) {
	b := NewInputBuffer(3)
	b.Push(Direction{X: 1, Y: 1})
	b.Push(Direction{})
	if b.Len() != 0 {
		t.Errorf("expected nothing queued, got %d", b.Len())
	}
}

func TestResolveSwipe(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   Direction
		ok     bool
	}{
		{"below threshold", 5, 5, Direction{}, false},
		{"right", 80, 10, Right, true},
		{"left", -80, 10, Left, true},
		{"screen down", 10, 80, Down, true},
		{"screen up", 10, -80, Up, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := ResolveSwipe(tt.dx, tt.dy, 800, 0.05)
			if ok != tt.ok || d != tt.want {
				t.Errorf("expected %v (%v), got %v (%v)", tt.want, tt.ok, d, ok)
			}
		})
	}
}
