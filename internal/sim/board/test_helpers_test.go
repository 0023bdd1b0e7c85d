package board

import (
	"testing"

	"diveboard.app/internal/sim/catalogs"
	"diveboard.app/internal/sim/grid"
	"diveboard.app/internal/sim/tuning"
)

func loadFixtures(t *testing.T) (grid.Summary, *catalogs.Catalog) {
	t.Helper()
	g, err := grid.Load("../../../configs/grid_info.json")
	if err != nil {
		t.Fatalf("load grid: %v", err)
	}
	cats, err := catalogs.Load("../../../configs")
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	return g, cats
}

func newTestEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	g, cats := loadFixtures(t)
	e, err := New(Config{Tuning: tuning.Defaults(), Seed: seed}, g, cats)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func countKinds(e *Engine) map[Kind]int {
	out := map[Kind]int{}
	for _, tok := range e.tokens {
		out[tok.Kind()]++
	}
	return out
}

func mustTile(t *testing.T, e *Engine, id string) TileToken {
	t.Helper()
	tok, ok := e.Token(id)
	if !ok {
		t.Fatalf("missing token %s", id)
	}
	tt, ok := tok.(TileToken)
	if !ok {
		t.Fatalf("%s is %s, want tile", id, tok.Kind())
	}
	return tt
}

func mustOxygen(t *testing.T, e *Engine, id string) OxygenToken {
	t.Helper()
	tok, ok := e.Token(id)
	if !ok {
		t.Fatalf("missing token %s", id)
	}
	ot, ok := tok.(OxygenToken)
	if !ok {
		t.Fatalf("%s is %s, want oxygen", id, tok.Kind())
	}
	return ot
}

// newIDs returns the ids present in after but not in before.
func newIDs(before, after map[string]Token) []string {
	var out []string
	for id := range after {
		if _, ok := before[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

type recordingJournal struct {
	entries []GestureLogEntry
	err     error
}

func (r *recordingJournal) WriteGesture(entry GestureLogEntry) error {
	r.entries = append(r.entries, entry)
	return r.err
}
