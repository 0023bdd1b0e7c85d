package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"diveboard.app/internal/protocol"
	"diveboard.app/internal/sim/board"
	"diveboard.app/internal/sim/grid"
)

// Script is a recorded sequence of drags, played the way a pointer-driven view
// would: deltas in screen pixels, clamped to the board, snapped to the nearest
// cell anchor on release.
type Script struct {
	Gestures []Step `yaml:"gestures"`
}

type Step struct {
	Token string `yaml:"token"`
	// Moves are pixel deltas applied in order.
	Moves [][2]float64 `yaml:"moves,omitempty"`
	// To overrides Moves with an absolute drop position in base units.
	To *grid.Point `yaml:"to,omitempty"`
	// Snap defaults to true.
	Snap *bool `yaml:"snap,omitempty"`
	// Abandon ends the drag without a release.
	Abandon bool `yaml:"abandon,omitempty"`
}

func loadScript(path string) (Script, error) {
	var sc Script
	raw, err := os.ReadFile(path)
	if err != nil {
		return sc, err
	}
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return sc, fmt.Errorf("%s: %w", path, err)
	}
	for i, st := range sc.Gestures {
		if st.Token == "" {
			return sc, fmt.Errorf("%s: gesture %d: missing token", path, i)
		}
	}
	return sc, nil
}

type scriptPlayer struct {
	engine   *board.Engine
	viewport grid.Viewport
	targets  []grid.Point
	logger   *log.Logger
}

func (p *scriptPlayer) run(sc Script) error {
	for i, st := range sc.Gestures {
		if err := p.play(st); err != nil {
			return fmt.Errorf("gesture %d (%s): %w", i, st.Token, err)
		}
	}
	return nil
}

func (p *scriptPlayer) play(st Step) error {
	tok, ok := p.engine.Token(st.Token)
	if !ok {
		p.logger.Printf("skip %s: no such token", st.Token)
		return nil
	}
	pos := tok.Common().Position

	if err := p.send(protocol.DragStartMsg{
		Type:            protocol.TypeDragStart,
		ProtocolVersion: protocol.Version,
		TokenID:         st.Token,
	}); err != nil {
		return err
	}
	if st.Abandon {
		p.logger.Printf("drag %s abandoned", st.Token)
		return nil
	}

	for _, d := range st.Moves {
		pos = p.viewport.ApplyDelta(pos, d[0], d[1])
	}
	if st.To != nil {
		pos = *st.To
	}
	pos = grid.Clamp(pos)
	if st.Snap == nil || *st.Snap {
		if snapped, ok := grid.Nearest(p.targets, pos); ok {
			pos = snapped
		}
	}

	if err := p.send(protocol.DragEndMsg{
		Type:            protocol.TypeDragEnd,
		ProtocolVersion: protocol.Version,
		TokenID:         st.Token,
		Position:        protocol.Point{X: pos.X, Y: pos.Y},
	}); err != nil {
		return err
	}
	p.logger.Printf("drag %s -> (%.1f, %.1f)", st.Token, pos.X, pos.Y)
	return nil
}

func (p *scriptPlayer) send(msg any) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.engine.HandleMessage(b)
}
