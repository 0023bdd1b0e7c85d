package board

import (
	"testing"

	"diveboard.app/internal/sim/grid"
)

func TestSnapshot_IsACopy(t *testing.T) {
	e := newTestEngine(t, 42)
	s := e.Snapshot()
	delete(s.Tokens, "oxygen-initial")
	s.Queues[0] = 99

	if _, ok := e.Token("oxygen-initial"); !ok {
		t.Fatalf("snapshot delete reached engine")
	}
	if len(e.Queue(0)) != 13 {
		t.Fatalf("snapshot queue write reached engine")
	}

	e.DragEnd("player-green-0", grid.Point{X: 5, Y: 5})
	if s.Tokens["player-green-0"].Common().Position == (grid.Point{X: 5, Y: 5}) {
		t.Fatalf("old snapshot sees later update")
	}
}

func TestSnapshot_GridWritesDoNotMoveSpawns(t *testing.T) {
	e := newTestEngine(t, 42)
	deckAnchor := e.grid.TileDeck[0].Anchor()
	oxygenAnchor := e.grid.OxygenPrepare.Anchor()

	e.Subscribe(func(s Snapshot) {
		s.Grid.TileDeck[0].X = -999
		s.Grid.OxygenPrepare.Y = -999
		s.Grid.All[0].X = -999
	})
	g := e.Grid()
	g.TileDeck[0].Y = -999
	g.OxygenPrepare.X = -999

	before := e.Snapshot().Tokens
	e.spawnOxygen()
	e.spawnTile(0)
	ids := newIDs(before, e.Snapshot().Tokens)
	if len(ids) != 2 {
		t.Fatalf("spawned %v, want 2 tokens", ids)
	}
	for _, id := range ids {
		tok, _ := e.Token(id)
		pos := tok.Common().Position
		switch tt := tok.(type) {
		case OxygenToken:
			if pos != oxygenAnchor {
				t.Fatalf("oxygen spawned at %v, want %v", pos, oxygenAnchor)
			}
		case TileToken:
			if pos != deckAnchor {
				t.Fatalf("deck-0 tile spawned at %v, want %v", pos, deckAnchor)
			}
		default:
			t.Fatalf("unexpected spawn %T", tt)
		}
	}
	if e.SnapTargets()[0].X == -999 || e.Grid().All[0].X == -999 {
		t.Fatalf("grid writes reached engine")
	}
}

func TestSnapshot_OrderedByZThenID(t *testing.T) {
	e := newTestEngine(t, 42)
	e.DragStart("player-green-0")
	ord := e.Snapshot().Ordered()
	if len(ord) != e.Len() {
		t.Fatalf("ordered len=%d", len(ord))
	}
	for i := 1; i < len(ord); i++ {
		a, b := ord[i-1].Common(), ord[i].Common()
		if a.ZIndex > b.ZIndex || (a.ZIndex == b.ZIndex && a.ID > b.ID) {
			t.Fatalf("out of order at %d: %s(%d) before %s(%d)", i, a.ID, a.ZIndex, b.ID, b.ZIndex)
		}
	}
	if ord[0].Common().ID != "player-green-1" {
		t.Fatalf("bottom token=%s", ord[0].Common().ID)
	}
	if ord[len(ord)-1].Common().ID != "player-green-0" {
		t.Fatalf("top token=%s", ord[len(ord)-1].Common().ID)
	}
}

func TestSubscribe_OrderAndUnsubscribe(t *testing.T) {
	e := newTestEngine(t, 42)
	var got []string
	unsubA := e.Subscribe(func(Snapshot) { got = append(got, "a") })
	e.Subscribe(func(Snapshot) { got = append(got, "b") })

	e.spawnOxygen()
	unsubA()
	unsubA()
	e.spawnOxygen()

	want := []string{"a", "b", "b"}
	if len(got) != len(want) {
		t.Fatalf("calls=%v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("calls=%v want %v", got, want)
		}
	}
}

func TestSubscribe_ListenersGetSeparateCopies(t *testing.T) {
	e := newTestEngine(t, 42)
	var second, third int
	e.Subscribe(func(s Snapshot) {
		for id := range s.Tokens {
			delete(s.Tokens, id)
		}
		s.Queues[0] = -1
	})
	e.Subscribe(func(s Snapshot) {
		second = len(s.Tokens)
		if s.Queues[0] != 13 {
			t.Errorf("second listener queue[0]=%d want 13", s.Queues[0])
		}
		delete(s.Tokens, "oxygen-initial")
	})
	e.Subscribe(func(s Snapshot) { third = len(s.Tokens) })

	e.spawnOxygen()
	if second != e.Len() || third != e.Len() {
		t.Fatalf("listeners saw %d and %d tokens, want %d", second, third, e.Len())
	}
}

func TestSubscribe_ListenerMaySubscribe(t *testing.T) {
	e := newTestEngine(t, 42)
	var inner int
	e.Subscribe(func(Snapshot) {
		e.Subscribe(func(Snapshot) { inner++ })
	})
	e.spawnOxygen()
	if inner != 0 {
		t.Fatalf("listener added mid-notify ran in the same round")
	}
	e.spawnOxygen()
	if inner != 1 {
		t.Fatalf("inner=%d want 1", inner)
	}
}

func TestDispose(t *testing.T) {
	e := newTestEngine(t, 42)
	var calls int
	e.Subscribe(func(Snapshot) { calls++ })
	e.Dispose()

	d := e.Digest()
	e.DragStart("oxygen-initial")
	e.DragEnd("oxygen-initial", grid.Point{X: 1, Y: 1})
	if calls != 0 || e.Digest() != d {
		t.Fatalf("disposed engine accepted gestures")
	}

	e.Subscribe(func(Snapshot) { calls++ })
	e.spawnOxygen()
	if calls != 0 {
		t.Fatalf("disposed engine notified")
	}
	if e.Snapshot().Tokens["oxygen-initial"] == nil {
		t.Fatalf("final state not readable")
	}
}

func TestSnapTargets(t *testing.T) {
	e := newTestEngine(t, 42)
	targets := e.SnapTargets()
	if len(targets) != len(e.Grid().All) {
		t.Fatalf("targets=%d cells=%d", len(targets), len(e.Grid().All))
	}
	for i, c := range e.Grid().All {
		if targets[i] != c.Anchor() {
			t.Fatalf("target %d=%v want %v", i, targets[i], c.Anchor())
		}
	}
	targets[0] = grid.Point{X: -1, Y: -1}
	if e.SnapTargets()[0] == targets[0] {
		t.Fatalf("snap targets alias engine state")
	}
}
