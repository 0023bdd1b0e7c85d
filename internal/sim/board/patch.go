package board

import "diveboard.app/internal/sim/grid"

// Patch is a typed partial update. A variant patch only applies to tokens of
// its own variant, so a patch can never change a token's kind.
type Patch interface {
	applyTo(t Token) (Token, bool)
}

// CommonPatch updates the shared fields of any variant. Nil fields are left as is.
type CommonPatch struct {
	Position *grid.Point
	ZIndex   *int
}

func (p CommonPatch) patchBase(b Base) Base {
	if p.Position != nil {
		b.Position = *p.Position
	}
	if p.ZIndex != nil {
		b.ZIndex = *p.ZIndex
	}
	return b
}

func (p CommonPatch) applyTo(t Token) (Token, bool) {
	return t.withBase(p.patchBase(t.Common())), true
}

type PlayerPatch struct {
	CommonPatch
	Asset *string
	Label *string
	Size  *float64
}

func (p PlayerPatch) applyTo(t Token) (Token, bool) {
	pt, ok := t.(PlayerToken)
	if !ok {
		return t, false
	}
	pt.Base = p.patchBase(pt.Base)
	if p.Asset != nil {
		pt.Asset = *p.Asset
	}
	if p.Label != nil {
		pt.Label = *p.Label
	}
	if p.Size != nil {
		pt.Size = *p.Size
	}
	return pt, true
}

type OxygenPatch struct {
	CommonPatch
	Asset    *string
	Size     *float64
	IsSupply *bool
}

func (p OxygenPatch) applyTo(t Token) (Token, bool) {
	ot, ok := t.(OxygenToken)
	if !ok {
		return t, false
	}
	ot.Base = p.patchBase(ot.Base)
	if p.Asset != nil {
		ot.Asset = *p.Asset
	}
	if p.Size != nil {
		ot.Size = *p.Size
	}
	if p.IsSupply != nil {
		ot.IsSupply = *p.IsSupply
	}
	return ot, true
}

type TilePatch struct {
	CommonPatch
	Front     *string
	Back      *string
	Width     *float64
	Height    *float64
	IsFaceUp  *bool
	IsOnDeck  *bool
	DeckIndex *int
}

func (p TilePatch) applyTo(t Token) (Token, bool) {
	tt, ok := t.(TileToken)
	if !ok {
		return t, false
	}
	tt.Base = p.patchBase(tt.Base)
	if p.Front != nil {
		tt.Front = *p.Front
	}
	if p.Back != nil {
		tt.Back = *p.Back
	}
	if p.Width != nil {
		tt.Width = *p.Width
	}
	if p.Height != nil {
		tt.Height = *p.Height
	}
	if p.IsFaceUp != nil {
		tt.IsFaceUp = *p.IsFaceUp
	}
	if p.IsOnDeck != nil {
		tt.IsOnDeck = *p.IsOnDeck
	}
	if p.DeckIndex != nil {
		tt.DeckIndex = *p.DeckIndex
	}
	return tt, true
}

// Apply merges p into t. ok is false (and t is returned unchanged) when p is a
// patch for another variant.
func Apply(t Token, p Patch) (Token, bool) {
	if t == nil || p == nil {
		return t, false
	}
	return p.applyTo(t)
}

func ptr[T any](v T) *T { return &v }
