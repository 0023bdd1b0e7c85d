package board

import "diveboard.app/internal/sim/grid"

type Kind string

const (
	KindPlayer Kind = "player"
	KindOxygen Kind = "oxygen"
	KindTile   Kind = "tile"
)

// Base holds the fields every token variant shares.
type Base struct {
	ID       string     `json:"id"`
	Position grid.Point `json:"position"`
	ZIndex   int        `json:"zIndex"`
}

func (b Base) Common() Base { return b }

// Token is one of PlayerToken, OxygenToken or TileToken. Tokens are values: the
// engine replaces a whole token on every change and never mutates one in place.
type Token interface {
	Kind() Kind
	Common() Base
	withBase(b Base) Token
}

type PlayerToken struct {
	Base
	Asset string  `json:"asset"`
	Label string  `json:"label"`
	Size  float64 `json:"size"`
}

func (PlayerToken) Kind() Kind { return KindPlayer }

func (t PlayerToken) withBase(b Base) Token {
	t.Base = b
	return t
}

type OxygenToken struct {
	Base
	Asset string  `json:"asset"`
	Size  float64 `json:"size"`
	// IsSupply is true while this instance is the untaken supply marker.
	IsSupply bool `json:"isSupply"`
}

func (OxygenToken) Kind() Kind { return KindOxygen }

func (t OxygenToken) withBase(b Base) Token {
	t.Base = b
	return t
}

type TileToken struct {
	Base
	Front     string  `json:"front"`
	Back      string  `json:"back"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	IsFaceUp  bool    `json:"isFaceUp"`
	IsOnDeck  bool    `json:"isOnDeck"`
	DeckIndex int     `json:"deckIndex"`
}

func (TileToken) Kind() Kind { return KindTile }

func (t TileToken) withBase(b Base) Token {
	t.Base = b
	return t
}
