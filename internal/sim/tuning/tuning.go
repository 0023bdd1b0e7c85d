package tuning

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the board engine's sizing and layering constants. Lengths are
// base units.
type Tuning struct {
	DeckColumns     int `yaml:"deck_columns"`
	CopiesPerPlayer int `yaml:"copies_per_player"`

	PlayerSizeScale float64 `yaml:"player_size_scale"`
	OxygenSizeScale float64 `yaml:"oxygen_size_scale"`
	TileSizeScale   float64 `yaml:"tile_size_scale"`

	PlayerFanStep   float64 `yaml:"player_fan_step"`
	PlayerFanCenter int     `yaml:"player_fan_center"`

	PlayerZBase     int `yaml:"player_z_base"`
	OxygenZBase     int `yaml:"oxygen_z_base"`
	TileZBase       int `yaml:"tile_z_base"`
	TileZColumnStep int `yaml:"tile_z_column_step"`
	ZCounterBase    int `yaml:"z_counter_base"`
}

func Defaults() Tuning {
	return Tuning{
		DeckColumns:     3,
		CopiesPerPlayer: 2,
		PlayerSizeScale: 0.70,
		OxygenSizeScale: 0.85,
		TileSizeScale:   0.92,
		PlayerFanStep:   30,
		PlayerFanCenter: 3,
		PlayerZBase:     100,
		OxygenZBase:     200,
		TileZBase:       400,
		TileZColumnStep: 50,
		ZCounterBase:    1000,
	}
}

// Load reads tuning.yaml over Defaults. Keys absent from the file keep their
// default value.
func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(0); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

// PlayerZ is the initial z-index of copy i of the color at colorIndex.
func (t Tuning) PlayerZ(colorIndex, i int) int {
	return t.PlayerZBase + colorIndex*t.CopiesPerPlayer + i
}

// TileZ is the z-index of a freshly dealt tile on deck column col.
func (t Tuning) TileZ(col int) int {
	return t.TileZBase + col*t.TileZColumnStep
}

// PlayerFanOffset is the horizontal offset of copy i of the color at colorIndex
// from the player prepare slot.
func (t Tuning) PlayerFanOffset(colorIndex, i int) float64 {
	return t.PlayerFanStep * float64(colorIndex-t.PlayerFanCenter+i+1)
}

// Validate checks the constants. players is the number of player colors the
// tuning will be used with; pass 0 when unknown.
func (t Tuning) Validate(players int) error {
	if t.DeckColumns <= 0 {
		return errors.New("deck_columns must be > 0")
	}
	if t.CopiesPerPlayer <= 0 {
		return errors.New("copies_per_player must be > 0")
	}
	if t.PlayerSizeScale <= 0 || t.OxygenSizeScale <= 0 || t.TileSizeScale <= 0 {
		return errors.New("size scales must be > 0")
	}
	if t.TileZColumnStep < 0 {
		return errors.New("tile_z_column_step must be >= 0")
	}

	maxZ := t.OxygenZBase
	maxZ = max(maxZ, t.TileZ(t.DeckColumns-1))
	if players > 0 {
		maxZ = max(maxZ, t.PlayerZ(players-1, t.CopiesPerPlayer-1))
	} else {
		maxZ = max(maxZ, t.PlayerZBase)
	}
	if t.ZCounterBase <= maxZ {
		return fmt.Errorf("z_counter_base %d must exceed every initial z-index (max %d)", t.ZCounterBase, maxZ)
	}
	return nil
}
