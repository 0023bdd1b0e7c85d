package board

import (
	"maps"
	"sort"

	"diveboard.app/internal/sim/catalogs"
	"diveboard.app/internal/sim/grid"
)

// Snapshot is a copy of the board. Nothing in it aliases engine state, so a
// holder may modify it freely.
type Snapshot struct {
	Tokens   map[string]Token
	Grid     *grid.Summary
	Queues   []int
	ZCounter int
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Tokens = maps.Clone(s.Tokens)
	out.Queues = append([]int(nil), s.Queues...)
	if s.Grid != nil {
		g := s.Grid.Clone()
		out.Grid = &g
	}
	return out
}

// Ordered returns the tokens in paint order: ascending z-index, then id.
func (s Snapshot) Ordered() []Token {
	out := make([]Token, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		out = append(out, t)
	}
	sortPaintOrder(out)
	return out
}

func sortPaintOrder(ts []Token) {
	sort.Slice(ts, func(i, j int) bool {
		a, b := ts[i].Common(), ts[j].Common()
		if a.ZIndex != b.ZIndex {
			return a.ZIndex < b.ZIndex
		}
		return a.ID < b.ID
	})
}

// Listener receives its own snapshot whenever the set of tokens changes.
// Field-only changes (moves, z raises, flag flips) are not announced.
type Listener func(Snapshot)

type listenerEntry struct {
	id uint64
	fn Listener
}

func (e *Engine) Snapshot() Snapshot {
	qs := make([]int, len(e.queues))
	for i, q := range e.queues {
		qs[i] = len(q)
	}
	g := e.grid.Clone()
	return Snapshot{
		Tokens:   maps.Clone(e.tokens),
		Grid:     &g,
		Queues:   qs,
		ZCounter: e.zCounter,
	}
}

// Subscribe registers fn and returns a func that removes it. Listeners run
// synchronously, in subscription order.
func (e *Engine) Subscribe(fn Listener) (unsubscribe func()) {
	if e.disposed || fn == nil {
		return func() {}
	}
	e.nextListener++
	id := e.nextListener
	e.listeners = append(e.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) notify() {
	if len(e.listeners) == 0 {
		return
	}
	base := e.Snapshot()
	ls := append([]listenerEntry(nil), e.listeners...)
	for i, l := range ls {
		snap := base
		if i < len(ls)-1 {
			snap = base.clone()
		}
		l.fn(snap)
	}
}

// Dispose drops every listener and stops accepting gestures. The final state
// stays readable.
func (e *Engine) Dispose() {
	e.listeners = nil
	e.disposed = true
}

func (e *Engine) Token(id string) (Token, bool) {
	t, ok := e.tokens[id]
	return t, ok
}

func (e *Engine) Len() int { return len(e.tokens) }

func (e *Engine) ZCounter() int { return e.zCounter }

// Queue returns a copy of the pending faces of column col.
func (e *Engine) Queue(col int) []catalogs.TileAsset {
	if col < 0 || col >= len(e.queues) {
		return nil
	}
	return append([]catalogs.TileAsset(nil), e.queues[col]...)
}

// Grid returns a copy of the grid the engine places tokens on.
func (e *Engine) Grid() *grid.Summary {
	g := e.grid.Clone()
	return &g
}

// SnapTargets returns the anchor of every grid cell. The engine does not snap;
// gesture layers pull a dropped token toward the nearest of these.
func (e *Engine) SnapTargets() []grid.Point {
	return append([]grid.Point(nil), e.snapTargets...)
}
