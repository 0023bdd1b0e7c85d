package board

import (
	"fmt"

	"diveboard.app/internal/protocol"
	"diveboard.app/internal/sim/grid"
)

const (
	GestureInit      = protocol.TypeInit
	GestureDragStart = protocol.TypeDragStart
	GestureDragEnd   = protocol.TypeDragEnd
)

type GestureLogger interface {
	WriteGesture(entry GestureLogEntry) error
}

// GestureLogEntry is one journal line. Digest is the state digest after the
// gesture was applied.
type GestureLogEntry struct {
	Seq      uint64      `json:"seq"`
	Type     string      `json:"type"`
	Seed     int64       `json:"seed,omitempty"`
	TokenID  string      `json:"token_id,omitempty"`
	Position *grid.Point `json:"position,omitempty"`
	Digest   string      `json:"digest"`
}

// DragStart raises the token and, when it is taken from a supply slot or a
// deck, spawns its replacement. Unknown ids are ignored.
func (e *Engine) DragStart(id string) {
	if e.disposed {
		return
	}
	if _, ok := e.tokens[id]; !ok {
		return
	}
	e.bringToFront(id)

	switch t := e.tokens[id].(type) {
	case PlayerToken:
	case OxygenToken:
		if t.IsSupply {
			e.spawnOxygen()
		}
	case TileToken:
		if t.IsOnDeck {
			e.spawnTile(t.DeckIndex)
		}
	default:
		panic(fmt.Sprintf("board: unhandled token type %T", t))
	}

	if e.cfg.Journal != nil {
		e.journal(GestureLogEntry{Type: GestureDragStart, TokenID: id})
	}
}

// DragEnd commits the final position and the variant's one-way flag
// transitions: a supply oxygen stops being the supply; a tile leaves its deck
// and turns face up. Listeners are not notified. Unknown ids are ignored.
func (e *Engine) DragEnd(id string, pos grid.Point) {
	if e.disposed {
		return
	}
	tok, ok := e.tokens[id]
	if !ok {
		return
	}

	common := CommonPatch{Position: ptr(pos)}
	switch t := tok.(type) {
	case PlayerToken:
		e.updateToken(id, PlayerPatch{CommonPatch: common})
	case OxygenToken:
		p := OxygenPatch{CommonPatch: common}
		if t.IsSupply {
			p.IsSupply = ptr(false)
		}
		e.updateToken(id, p)
	case TileToken:
		p := TilePatch{CommonPatch: common}
		if !t.IsFaceUp {
			p.IsFaceUp = ptr(true)
		}
		p.IsOnDeck = ptr(false)
		e.updateToken(id, p)
	default:
		panic(fmt.Sprintf("board: unhandled token type %T", t))
	}

	if e.cfg.Journal != nil {
		e.journal(GestureLogEntry{Type: GestureDragEnd, TokenID: id, Position: ptr(pos)})
	}
}

func (e *Engine) journal(entry GestureLogEntry) {
	entry.Seq = e.gestureSeq
	e.gestureSeq++
	entry.Digest = e.Digest()
	if err := e.cfg.Journal.WriteGesture(entry); err != nil && e.journalErr == nil {
		e.journalErr = err
	}
}

// JournalErr reports the first journal write failure, if any. Journal failures
// never affect board state.
func (e *Engine) JournalErr() error { return e.journalErr }
