package board

import (
	"fmt"

	"diveboard.app/internal/sim/catalogs"
	"diveboard.app/internal/sim/grid"
	"diveboard.app/internal/sim/shuffle"
	"diveboard.app/internal/sim/tuning"
)

type Config struct {
	Tuning tuning.Tuning
	Seed   int64
	// Rand replaces the Seed-derived source for the initial tile shuffle.
	Rand shuffle.Source

	// Optional gesture journal (may be nil). Implemented in internal/persistence/log.
	Journal GestureLogger
}

// Engine owns the token map, the per-column deck queues and the z counter.
// It is not safe for concurrent use: every call must come from the single
// goroutine that dispatches gestures.
type Engine struct {
	cfg  Config
	tune tuning.Tuning
	grid *grid.Summary
	cats *catalogs.Catalog

	snapTargets []grid.Point

	playerSize float64
	oxygenSize float64
	tileWidth  float64
	tileHeight float64

	tokens   map[string]Token
	queues   [][]catalogs.TileAsset
	zCounter int

	nextSpawn  uint64
	gestureSeq uint64
	journalErr error

	listeners    []listenerEntry
	nextListener uint64
	disposed     bool
}

// New validates the static board configuration and deals the initial state.
// Any error here is a startup configuration error.
func New(cfg Config, g grid.Summary, cats *catalogs.Catalog) (*Engine, error) {
	if cats == nil {
		return nil, fmt.Errorf("board: nil catalog")
	}
	if len(cats.Players) == 0 {
		return nil, fmt.Errorf("board: catalog has no player colors")
	}
	if err := cfg.Tuning.Validate(len(cats.Players)); err != nil {
		return nil, fmt.Errorf("board: tuning: %w", err)
	}
	for _, r := range []grid.Region{grid.RegionPlayerToken, grid.RegionOxygen, grid.RegionScene} {
		if len(g.Cells(r)) == 0 {
			return nil, fmt.Errorf("board: region %q has no cells", r)
		}
	}
	if got, want := len(g.TileDeck), cfg.Tuning.DeckColumns; got != want {
		return nil, fmt.Errorf("board: %d tile deck cells for %d deck columns", got, want)
	}

	e := &Engine{
		cfg:  cfg,
		tune: cfg.Tuning,
		grid: &g,
		cats: cats,
	}
	e.snapTargets = e.grid.SnapTargets()

	rng := cfg.Rand
	if rng == nil {
		rng = shuffle.Seeded(cfg.Seed)
	}
	e.initialize(rng)

	if cfg.Journal != nil {
		e.journal(GestureLogEntry{Type: GestureInit, Seed: cfg.Seed})
	}
	return e, nil
}

func (e *Engine) initialize(rng shuffle.Source) {
	t := e.tune
	g := e.grid

	e.playerSize = grid.MinDimension(g.PlayerToken) * t.PlayerSizeScale
	e.oxygenSize = grid.MinDimension(g.Oxygen) * t.OxygenSizeScale
	e.tileWidth = grid.MinWidth(g.Scene) * t.TileSizeScale
	e.tileHeight = grid.MinHeight(g.Scene) * t.TileSizeScale

	tokens := map[string]Token{}

	prep := g.PlayerPrepare
	for ci, p := range e.cats.Players {
		for i := 0; i < t.CopiesPerPlayer; i++ {
			id := fmt.Sprintf("player-%s-%d", p.ID, i)
			tokens[id] = PlayerToken{
				Base: Base{
					ID:       id,
					Position: grid.Point{X: prep.X + t.PlayerFanOffset(ci, i), Y: prep.Y},
					ZIndex:   t.PlayerZ(ci, i),
				},
				Asset: p.Asset,
				Label: p.Label,
				Size:  e.playerSize,
			}
		}
	}

	tokens["oxygen-initial"] = e.newOxygen("oxygen-initial", t.OxygenZBase)

	fronts := shuffle.Shuffle(e.cats.TileFronts, rng)
	cols := t.DeckColumns
	for col := 0; col < cols && col < len(fronts); col++ {
		id := fmt.Sprintf("tile-initial-%d", col)
		tokens[id] = e.newTile(id, col, fronts[col])
	}

	queues := make([][]catalogs.TileAsset, cols)
	if len(fronts) > cols {
		for k, f := range fronts[cols:] {
			queues[k%cols] = append(queues[k%cols], f)
		}
	}

	e.tokens = tokens
	e.queues = queues
	e.zCounter = t.ZCounterBase
}

func (e *Engine) newOxygen(id string, z int) OxygenToken {
	slot := e.grid.OxygenPrepare
	return OxygenToken{
		Base:     Base{ID: id, Position: slot.Anchor(), ZIndex: z},
		Asset:    e.cats.OxygenAsset,
		Size:     e.oxygenSize,
		IsSupply: true,
	}
}

func (e *Engine) newTile(id string, col int, face catalogs.TileAsset) TileToken {
	cell := e.grid.TileDeck[col]
	return TileToken{
		Base:      Base{ID: id, Position: cell.Anchor(), ZIndex: e.tune.TileZ(col)},
		Front:     face.Src,
		Back:      e.cats.TileBack,
		Width:     e.tileWidth,
		Height:    e.tileHeight,
		IsFaceUp:  false,
		IsOnDeck:  true,
		DeckIndex: col,
	}
}

// spawnID returns a fresh token id with the given prefix.
func (e *Engine) spawnID(prefix string) string {
	for {
		e.nextSpawn++
		id := fmt.Sprintf("%s-%d", prefix, e.nextSpawn)
		if _, taken := e.tokens[id]; !taken {
			return id
		}
	}
}
