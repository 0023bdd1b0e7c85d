package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	persistlog "diveboard.app/internal/persistence/log"
	"diveboard.app/internal/persistence/snapshot"
	"diveboard.app/internal/sim/board"
	"diveboard.app/internal/sim/catalogs"
	"diveboard.app/internal/sim/grid"
	"diveboard.app/internal/sim/tuning"
)

func main() {
	var (
		configDir  = flag.String("configs", "./configs", "config directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		seed       = flag.Int64("seed", 1337, "tile shuffle seed")
		scriptPath = flag.String("script", "", "gesture script (yaml, optional)")
		journalDir = flag.String("journal", "", "session directory for the gesture journal (empty to disable)")
		outPath    = flag.String("out", "", "write the final snapshot export here (.snap.zst, optional)")
		boardPx    = flag.Float64("board_px", 1024, "on-screen board size used to convert script pixel deltas")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[board] ", log.LstdFlags|log.Lmicroseconds)

	g, err := grid.Load(filepath.Join(*configDir, "grid_info.json"))
	if err != nil {
		logger.Fatalf("load grid: %v", err)
	}
	cats, err := catalogs.Load(*configDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("load tuning: %v", err)
		}
		logger.Printf("tuning not found (%s); using defaults", tp)
		tune = tuning.Defaults()
	}

	cfg := board.Config{Tuning: tune, Seed: *seed}
	var journal *persistlog.GestureLogger
	if dir := strings.TrimSpace(*journalDir); dir != "" {
		journal = persistlog.NewGestureLogger(dir)
		cfg.Journal = journal
		logger.Printf("journal: dir=%s session=%s", dir, journal.Session())
	}

	e, err := board.New(cfg, g, cats)
	if err != nil {
		logger.Fatalf("init board: %v", err)
	}
	defer e.Dispose()

	logger.Printf("board ready: seed=%d tokens=%d cells=%d fronts=%d digest=%s",
		*seed, e.Len(), len(g.All), len(cats.TileFronts), e.Digest())

	e.Subscribe(func(s board.Snapshot) {
		logger.Printf("token set changed: tokens=%d queues=%v", len(s.Tokens), s.Queues)
	})

	if p := strings.TrimSpace(*scriptPath); p != "" {
		sc, err := loadScript(p)
		if err != nil {
			logger.Fatalf("load script: %v", err)
		}
		player := &scriptPlayer{
			engine:   e,
			viewport: grid.Viewport{SizePx: *boardPx},
			targets:  e.SnapTargets(),
			logger:   logger,
		}
		if err := player.run(sc); err != nil {
			logger.Fatalf("script: %v", err)
		}
	}

	if journal != nil {
		if err := journal.Close(); err != nil {
			logger.Printf("close journal: %v", err)
		}
		if err := e.JournalErr(); err != nil {
			logger.Printf("journal incomplete: %v", err)
		}
	}

	if p := strings.TrimSpace(*outPath); p != "" {
		if err := snapshot.WriteSnapshot(p, e.Digest(), e.Snapshot().Message()); err != nil {
			logger.Fatalf("write snapshot: %v", err)
		}
		logger.Printf("snapshot written: %s", p)
	}

	logger.Printf("done: tokens=%d z=%d digest=%s", e.Len(), e.ZCounter(), e.Digest())
}
