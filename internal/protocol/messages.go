package protocol

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SNAPSHOT (engine -> view)
type SnapshotMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	ZCounter        int         `json:"z_counter"`
	Queues          []int       `json:"queues"`
	Tokens          []TokenView `json:"tokens"` // paint order
	Grid            GridView    `json:"grid"`
}

// TokenView flattens the three token variants; fields of other variants are omitted.
type TokenView struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Position Point  `json:"position"`
	ZIndex   int    `json:"zIndex"`

	Asset string  `json:"asset,omitempty"`
	Label string  `json:"label,omitempty"`
	Size  float64 `json:"size,omitempty"`

	IsSupply *bool `json:"isSupply,omitempty"`

	Front     string  `json:"front,omitempty"`
	Back      string  `json:"back,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	IsFaceUp  *bool   `json:"isFaceUp,omitempty"`
	IsOnDeck  *bool   `json:"isOnDeck,omitempty"`
	DeckIndex *int    `json:"deckIndex,omitempty"`
}

type GridView struct {
	Cells       []CellView `json:"cells"`
	SnapTargets []Point    `json:"snap_targets"`
}

type CellView struct {
	ID     string  `json:"id"`
	Region string  `json:"region"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DRAG_START (view -> engine)
type DragStartMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	TokenID         string `json:"token_id"`
}

// DRAG_END (view -> engine)
type DragEndMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	TokenID         string `json:"token_id"`
	Position        Point  `json:"position"`
}
