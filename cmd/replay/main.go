package main

import (
	"flag"
	"fmt"
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
		journalDir = flag.String("journal", "", "session directory written by board -journal")
		configDir  = flag.String("configs", "./configs", "config directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		snapPath   = flag.String("snapshot", "", "snapshot export to check against the final digest (optional)")
	)
	flag.Parse()

	if *journalDir == "" {
		fmt.Fprintln(os.Stderr, "missing -journal")
		os.Exit(2)
	}

	files, err := persistlog.ListGestureFiles(filepath.Join(*journalDir, "gestures"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "list journal:", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no journal files found in", *journalDir)
		os.Exit(1)
	}
	var entries []board.GestureLogEntry
	for _, path := range files {
		es, err := persistlog.ReadGestureFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read journal:", err)
			os.Exit(1)
		}
		entries = append(entries, es...)
	}

	g, err := grid.Load(filepath.Join(*configDir, "grid_info.json"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "load grid:", err)
		os.Exit(1)
	}
	cats, err := catalogs.Load(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load catalogs:", err)
		os.Exit(1)
	}
	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, "load tuning:", err)
			os.Exit(1)
		}
		tune = tuning.Defaults()
	}

	sessions, err := splitSessions(entries)
	if err != nil {
		fmt.Fprintln(os.Stderr, "replay:", err)
		os.Exit(1)
	}
	var e *board.Engine
	for i, session := range sessions {
		var checked int
		e, checked, err = replay(session, tune, g, cats)
		if err != nil {
			fmt.Fprintf(os.Stderr, "replay session %d/%d (seed=%d): %v\n", i+1, len(sessions), session[0].Seed, err)
			os.Exit(1)
		}
		fmt.Printf("session %d/%d ok: seed=%d checked=%d gestures tokens=%d digest=%s\n",
			i+1, len(sessions), session[0].Seed, checked, e.Len(), e.Digest())
	}

	if *snapPath != "" {
		h, _, err := snapshot.ReadSnapshot(*snapPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read snapshot:", err)
			os.Exit(1)
		}
		if h.Digest != e.Digest() {
			fmt.Fprintf(os.Stderr, "snapshot digest mismatch: export=%s last session=%s\n", h.Digest, e.Digest())
			os.Exit(1)
		}
		fmt.Println("snapshot digest matches last session")
	}
}

// splitSessions cuts a journal at every INIT entry. A directory reused by
// several board runs holds one session per run.
func splitSessions(entries []board.GestureLogEntry) ([][]board.GestureLogEntry, error) {
	if len(entries) == 0 || entries[0].Type != board.GestureInit {
		return nil, fmt.Errorf("journal does not start with %s", board.GestureInit)
	}
	var out [][]board.GestureLogEntry
	for _, entry := range entries {
		if entry.Type == board.GestureInit {
			out = append(out, nil)
		}
		out[len(out)-1] = append(out[len(out)-1], entry)
	}
	return out, nil
}

// replay rebuilds the session from its INIT entry and re-applies every gesture,
// checking each recorded digest.
func replay(entries []board.GestureLogEntry, tune tuning.Tuning, g grid.Summary, cats *catalogs.Catalog) (*board.Engine, int, error) {
	if len(entries) == 0 || entries[0].Type != board.GestureInit {
		return nil, 0, fmt.Errorf("journal does not start with %s", board.GestureInit)
	}
	first := entries[0]
	e, err := board.New(board.Config{Tuning: tune, Seed: first.Seed}, g, cats)
	if err != nil {
		return nil, 0, err
	}
	if got := e.Digest(); got != first.Digest {
		return nil, 0, fmt.Errorf("initial digest mismatch: got=%s want=%s (configs changed?)", got, first.Digest)
	}

	checked := 0
	for _, entry := range entries[1:] {
		switch entry.Type {
		case board.GestureDragStart:
			e.DragStart(entry.TokenID)
		case board.GestureDragEnd:
			if entry.Position == nil {
				return nil, checked, fmt.Errorf("seq %d: %s without position", entry.Seq, entry.Type)
			}
			e.DragEnd(entry.TokenID, *entry.Position)
		default:
			return nil, checked, fmt.Errorf("seq %d: unexpected entry type %q", entry.Seq, entry.Type)
		}
		checked++
		if got := e.Digest(); got != entry.Digest {
			return nil, checked, fmt.Errorf("digest mismatch at seq %d: got=%s want=%s", entry.Seq, got, entry.Digest)
		}
	}
	return e, checked, nil
}
