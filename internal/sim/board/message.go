package board

import (
	"encoding/json"
	"fmt"

	"diveboard.app/internal/protocol"
	"diveboard.app/internal/sim/grid"
)

// Message renders the snapshot as a SNAPSHOT wire message.
func (s Snapshot) Message() protocol.SnapshotMsg {
	msg := protocol.SnapshotMsg{
		Type:            protocol.TypeSnapshot,
		ProtocolVersion: protocol.Version,
		ZCounter:        s.ZCounter,
		Queues:          append([]int{}, s.Queues...),
		Tokens:          []protocol.TokenView{},
	}
	for _, t := range s.Ordered() {
		msg.Tokens = append(msg.Tokens, tokenView(t))
	}
	if s.Grid != nil {
		msg.Grid.Cells = make([]protocol.CellView, 0, len(s.Grid.All))
		msg.Grid.SnapTargets = make([]protocol.Point, 0, len(s.Grid.All))
		for _, c := range s.Grid.All {
			msg.Grid.Cells = append(msg.Grid.Cells, protocol.CellView{
				ID:     c.ID,
				Region: string(c.Region),
				X:      c.X,
				Y:      c.Y,
				Width:  c.Width,
				Height: c.Height,
			})
			msg.Grid.SnapTargets = append(msg.Grid.SnapTargets, protocol.Point{X: c.X, Y: c.Y})
		}
	}
	return msg
}

func tokenView(t Token) protocol.TokenView {
	b := t.Common()
	v := protocol.TokenView{
		ID:       b.ID,
		Kind:     string(t.Kind()),
		Position: protocol.Point{X: b.Position.X, Y: b.Position.Y},
		ZIndex:   b.ZIndex,
	}
	switch tt := t.(type) {
	case PlayerToken:
		v.Asset = tt.Asset
		v.Label = tt.Label
		v.Size = tt.Size
	case OxygenToken:
		v.Asset = tt.Asset
		v.Size = tt.Size
		v.IsSupply = ptr(tt.IsSupply)
	case TileToken:
		v.Front = tt.Front
		v.Back = tt.Back
		v.Width = tt.Width
		v.Height = tt.Height
		v.IsFaceUp = ptr(tt.IsFaceUp)
		v.IsOnDeck = ptr(tt.IsOnDeck)
		v.DeckIndex = ptr(tt.DeckIndex)
	}
	return v
}

// HandleMessage decodes a DRAG_START or DRAG_END message and applies it. Only
// malformed input or a foreign protocol_version is an error; gestures for
// unknown tokens are ignored as usual.
func (e *Engine) HandleMessage(b []byte) error {
	base, err := protocol.DecodeBase(b)
	if err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	if base.ProtocolVersion != protocol.Version {
		return fmt.Errorf("%s: bad protocol_version %q (want %q)", base.Type, base.ProtocolVersion, protocol.Version)
	}
	switch base.Type {
	case protocol.TypeDragStart:
		var m protocol.DragStartMsg
		if err := json.Unmarshal(b, &m); err != nil {
			return fmt.Errorf("decode %s: %w", base.Type, err)
		}
		e.DragStart(m.TokenID)
	case protocol.TypeDragEnd:
		var m protocol.DragEndMsg
		if err := json.Unmarshal(b, &m); err != nil {
			return fmt.Errorf("decode %s: %w", base.Type, err)
		}
		e.DragEnd(m.TokenID, grid.Point{X: m.Position.X, Y: m.Position.Y})
	default:
		return fmt.Errorf("unsupported message type %q", base.Type)
	}
	return nil
}
