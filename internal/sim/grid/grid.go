package grid

import (
	"fmt"
	"slices"
)

// BoardBaseSize is the span of the logical coordinate space on both axes.
const BoardBaseSize = 4096

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is one raw rectangle from grid_info.json.
type Rect struct {
	LT Point   `json:"lt"`
	LB Point   `json:"lb"`
	RT Point   `json:"rt"`
	RB Point   `json:"rb"`
	W  float64 `json:"w"`
	H  float64 `json:"h"`
}

type Region string

const (
	RegionScoreTrack    Region = "score_track_regions"
	RegionHandTiles     Region = "hands_tiles_region"
	RegionScene         Region = "scene_grid_regions"
	RegionOxygen        Region = "oxygen_regions"
	RegionPlayerToken   Region = "player_token_regions"
	RegionTileDeck      Region = "tile_deck_prepare_regions"
	RegionPlayerPrepare Region = "player_token_prepare_region"
	RegionOxygenPrepare Region = "oxygen_prepare_region"
)

// arrayRegions lists the array categories in the order their cells enter Summary.All.
var arrayRegions = []Region{
	RegionScoreTrack,
	RegionHandTiles,
	RegionScene,
	RegionOxygen,
	RegionPlayerToken,
	RegionTileDeck,
}

// Info is the decoded grid_info.json document. Singleton regions are pointers so
// a missing key can be told apart from a zero rectangle.
type Info struct {
	ScoreTrack    []Rect `json:"score_track_regions"`
	HandTiles     []Rect `json:"hands_tiles_region"`
	Scene         []Rect `json:"scene_grid_regions"`
	Oxygen        []Rect `json:"oxygen_regions"`
	PlayerToken   []Rect `json:"player_token_regions"`
	PlayerPrepare *Rect  `json:"player_token_prepare_region"`
	OxygenPrepare *Rect  `json:"oxygen_prepare_region"`
	TileDeck      []Rect `json:"tile_deck_prepare_regions"`
}

func (in Info) array(r Region) []Rect {
	switch r {
	case RegionScoreTrack:
		return in.ScoreTrack
	case RegionHandTiles:
		return in.HandTiles
	case RegionScene:
		return in.Scene
	case RegionOxygen:
		return in.Oxygen
	case RegionPlayerToken:
		return in.PlayerToken
	case RegionTileDeck:
		return in.TileDeck
	}
	return nil
}

// Cell is an addressable board slot. X is the horizontal center of the source
// rectangle and Y is its top edge.
type Cell struct {
	ID     string  `json:"id"`
	Region Region  `json:"region"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (c Cell) Anchor() Point { return Point{X: c.X, Y: c.Y} }

type Summary struct {
	All []Cell `json:"all"`

	ScoreTrack  []Cell `json:"score_track_regions"`
	HandTiles   []Cell `json:"hands_tiles_region"`
	Scene       []Cell `json:"scene_grid_regions"`
	Oxygen      []Cell `json:"oxygen_regions"`
	PlayerToken []Cell `json:"player_token_regions"`
	TileDeck    []Cell `json:"tile_deck_prepare_regions"`

	PlayerPrepare Cell `json:"player_token_prepare_region"`
	OxygenPrepare Cell `json:"oxygen_prepare_region"`
}

// Clone returns a copy that shares no backing arrays with s.
func (s *Summary) Clone() Summary {
	out := *s
	out.All = slices.Clone(s.All)
	out.ScoreTrack = slices.Clone(s.ScoreTrack)
	out.HandTiles = slices.Clone(s.HandTiles)
	out.Scene = slices.Clone(s.Scene)
	out.Oxygen = slices.Clone(s.Oxygen)
	out.PlayerToken = slices.Clone(s.PlayerToken)
	out.TileDeck = slices.Clone(s.TileDeck)
	return out
}

// Cells returns the cells of an array region, or the single cell of a singleton region.
func (s *Summary) Cells(r Region) []Cell {
	switch r {
	case RegionScoreTrack:
		return s.ScoreTrack
	case RegionHandTiles:
		return s.HandTiles
	case RegionScene:
		return s.Scene
	case RegionOxygen:
		return s.Oxygen
	case RegionPlayerToken:
		return s.PlayerToken
	case RegionTileDeck:
		return s.TileDeck
	case RegionPlayerPrepare:
		return []Cell{s.PlayerPrepare}
	case RegionOxygenPrepare:
		return []Cell{s.OxygenPrepare}
	}
	return nil
}

func (s *Summary) setArray(r Region, cells []Cell) {
	switch r {
	case RegionScoreTrack:
		s.ScoreTrack = cells
	case RegionHandTiles:
		s.HandTiles = cells
	case RegionScene:
		s.Scene = cells
	case RegionOxygen:
		s.Oxygen = cells
	case RegionPlayerToken:
		s.PlayerToken = cells
	case RegionTileDeck:
		s.TileDeck = cells
	}
}

// Build derives the grid summary from raw rectangles. Array regions keep source
// order; the two singleton cells are appended to All last, player prepare first.
func Build(in Info) (Summary, error) {
	var s Summary
	for _, r := range arrayRegions {
		raw := in.array(r)
		if raw == nil {
			return Summary{}, fmt.Errorf("grid: missing region %q", r)
		}
		cells := make([]Cell, 0, len(raw))
		for i, rect := range raw {
			c := rectToCell(rect, r, i)
			cells = append(cells, c)
			s.All = append(s.All, c)
		}
		s.setArray(r, cells)
	}

	if in.PlayerPrepare == nil {
		return Summary{}, fmt.Errorf("grid: missing region %q", RegionPlayerPrepare)
	}
	if in.OxygenPrepare == nil {
		return Summary{}, fmt.Errorf("grid: missing region %q", RegionOxygenPrepare)
	}
	s.PlayerPrepare = rectToCell(*in.PlayerPrepare, RegionPlayerPrepare, 0)
	s.All = append(s.All, s.PlayerPrepare)
	s.OxygenPrepare = rectToCell(*in.OxygenPrepare, RegionOxygenPrepare, 0)
	s.All = append(s.All, s.OxygenPrepare)
	return s, nil
}

func rectToCell(r Rect, region Region, index int) Cell {
	return Cell{
		ID:     fmt.Sprintf("%s-%d", region, index),
		Region: region,
		X:      r.LT.X + r.W/2,
		Y:      r.LT.Y,
		Width:  r.W,
		Height: r.H,
	}
}

// MinDimension is the smallest width or height across cells, 0 for none.
func MinDimension(cells []Cell) float64 {
	if len(cells) == 0 {
		return 0
	}
	m := cells[0].Width
	for _, c := range cells {
		m = min(m, c.Width, c.Height)
	}
	return m
}

func MinWidth(cells []Cell) float64 {
	if len(cells) == 0 {
		return 0
	}
	m := cells[0].Width
	for _, c := range cells[1:] {
		m = min(m, c.Width)
	}
	return m
}

func MinHeight(cells []Cell) float64 {
	if len(cells) == 0 {
		return 0
	}
	m := cells[0].Height
	for _, c := range cells[1:] {
		m = min(m, c.Height)
	}
	return m
}
