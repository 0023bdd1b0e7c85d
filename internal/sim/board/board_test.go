package board

import (
	"fmt"
	"strings"
	"testing"

	"diveboard.app/internal/sim/catalogs"
	"diveboard.app/internal/sim/grid"
	"diveboard.app/internal/sim/shuffle"
	"diveboard.app/internal/sim/tuning"
)

func TestNew_InitialCounts(t *testing.T) {
	e := newTestEngine(t, 42)

	kinds := countKinds(e)
	if kinds[KindPlayer] != 8 {
		t.Fatalf("players=%d want 8", kinds[KindPlayer])
	}
	if kinds[KindOxygen] != 1 {
		t.Fatalf("oxygen=%d want 1", kinds[KindOxygen])
	}
	if kinds[KindTile] != 3 {
		t.Fatalf("tiles=%d want 3", kinds[KindTile])
	}

	total := 0
	for col := 0; col < 3; col++ {
		n := len(e.Queue(col))
		if n != 13 {
			t.Fatalf("queue %d len=%d want 13", col, n)
		}
		total += n
	}
	if total != 42-3 {
		t.Fatalf("queued=%d want 39", total)
	}
	if e.ZCounter() != 1000 {
		t.Fatalf("zCounter=%d want 1000", e.ZCounter())
	}

	ox := mustOxygen(t, e, "oxygen-initial")
	if !ox.IsSupply || ox.ZIndex != 200 || ox.Position != e.grid.OxygenPrepare.Anchor() {
		t.Fatalf("bad initial oxygen: %+v", ox)
	}
	for col := 0; col < 3; col++ {
		tt := mustTile(t, e, fmt.Sprintf("tile-initial-%d", col))
		if !tt.IsOnDeck || tt.IsFaceUp || tt.DeckIndex != col {
			t.Fatalf("bad initial tile flags: %+v", tt)
		}
		if tt.ZIndex != 400+col*50 {
			t.Fatalf("tile %d z=%d want %d", col, tt.ZIndex, 400+col*50)
		}
		if tt.Position != e.grid.TileDeck[col].Anchor() {
			t.Fatalf("tile %d at %v want deck cell anchor", col, tt.Position)
		}
	}
}

func TestNew_PlayerLayoutAndSizes(t *testing.T) {
	e := newTestEngine(t, 1)
	g := e.grid
	prep := g.PlayerPrepare

	wantSize := grid.MinDimension(g.PlayerToken) * 0.70
	for ci, p := range e.cats.Players {
		for i := 0; i < 2; i++ {
			id := fmt.Sprintf("player-%s-%d", p.ID, i)
			tok, ok := e.Token(id)
			if !ok {
				t.Fatalf("missing %s", id)
			}
			pt := tok.(PlayerToken)
			wantX := prep.X + 30*float64(ci-3+i+1)
			if pt.Position.X != wantX || pt.Position.Y != prep.Y {
				t.Fatalf("%s at %v want (%v,%v)", id, pt.Position, wantX, prep.Y)
			}
			if pt.ZIndex != 100+ci*2+i {
				t.Fatalf("%s z=%d want %d", id, pt.ZIndex, 100+ci*2+i)
			}
			if pt.Size != wantSize || pt.Label != p.Label || pt.Asset != p.Asset {
				t.Fatalf("%s: %+v", id, pt)
			}
		}
	}

	ox := mustOxygen(t, e, "oxygen-initial")
	if ox.Size != grid.MinDimension(g.Oxygen)*0.85 {
		t.Fatalf("oxygen size=%v", ox.Size)
	}
	tt := mustTile(t, e, "tile-initial-0")
	if tt.Width != grid.MinWidth(g.Scene)*0.92 || tt.Height != grid.MinHeight(g.Scene)*0.92 {
		t.Fatalf("tile size=%vx%v", tt.Width, tt.Height)
	}
	if tt.Back != e.cats.TileBack {
		t.Fatalf("tile back=%q", tt.Back)
	}
}

func TestNew_RoundRobinDeal(t *testing.T) {
	g, cats := loadFixtures(t)
	e, err := New(Config{Tuning: tuning.Defaults(), Rand: shuffle.Seeded(99)}, g, cats)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	order := shuffle.Shuffle(cats.TileFronts, shuffle.Seeded(99))

	for col := 0; col < 3; col++ {
		tt := mustTile(t, e, fmt.Sprintf("tile-initial-%d", col))
		if tt.Front != order[col].Src {
			t.Fatalf("deck %d front=%s want %s", col, tt.Front, order[col].Src)
		}
	}
	for k, f := range order[3:] {
		col := k % 3
		q := e.Queue(col)
		if q[k/3] != f {
			t.Fatalf("queue %d pos %d=%v want %v", col, k/3, q[k/3], f)
		}
	}
}

func TestNew_FewerFacesThanColumns(t *testing.T) {
	g, cats := loadFixtures(t)
	small := *cats
	small.TileFronts = cats.TileFronts[:2]
	e, err := New(Config{Tuning: tuning.Defaults(), Seed: 3}, g, &small)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := countKinds(e)[KindTile]; got != 2 {
		t.Fatalf("tiles=%d want 2", got)
	}
	for col := 0; col < 3; col++ {
		if n := len(e.Queue(col)); n != 0 {
			t.Fatalf("queue %d len=%d want 0", col, n)
		}
	}
}

func TestNew_ConfigErrors(t *testing.T) {
	g, cats := loadFixtures(t)

	short := g
	short.TileDeck = g.TileDeck[:2]
	if _, err := New(Config{Tuning: tuning.Defaults()}, short, cats); err == nil || !strings.Contains(err.Error(), "deck") {
		t.Fatalf("expected deck cell error, got %v", err)
	}

	noScene := g
	noScene.Scene = nil
	if _, err := New(Config{Tuning: tuning.Defaults()}, noScene, cats); err == nil {
		t.Fatalf("expected empty scene error")
	}

	if _, err := New(Config{Tuning: tuning.Defaults()}, g, &catalogs.Catalog{}); err == nil {
		t.Fatalf("expected no players error")
	}
	if _, err := New(Config{Tuning: tuning.Defaults()}, g, nil); err == nil {
		t.Fatalf("expected nil catalog error")
	}

	bad := tuning.Defaults()
	bad.ZCounterBase = 450
	if _, err := New(Config{Tuning: bad}, g, cats); err == nil {
		t.Fatalf("expected tuning error")
	}
}

func TestNew_IDsUniqueAcrossSpawns(t *testing.T) {
	e := newTestEngine(t, 5)
	for i := 0; i < 10; i++ {
		e.spawnOxygen()
		e.spawnTile(i % 3)
	}
	if e.Len() != 12+10+10 {
		t.Fatalf("len=%d want 32", e.Len())
	}
	for id, tok := range e.tokens {
		if tok.Common().ID != id {
			t.Fatalf("map key %s holds token %s", id, tok.Common().ID)
		}
	}
}
