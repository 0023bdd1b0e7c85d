package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Catalog lists the images the board refers to. The engine only passes these
// references through; it never opens them.
type Catalog struct {
	BoardImage  string
	OxygenAsset string
	TileBack    string

	Players    []PlayerAsset
	TileFronts []TileAsset

	// Digest of assets.json as read, and of the sorted tile-front ids.
	Digest      string
	FrontDigest string
}

type PlayerAsset struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Asset string `json:"asset"`
}

type TileAsset struct {
	ID  string `json:"id"`
	Src string `json:"src"`
}

type assetsFile struct {
	BoardImage string        `json:"board_image"`
	Oxygen     string        `json:"oxygen"`
	TileBack   string        `json:"tile_back"`
	Players    []PlayerAsset `json:"players"`
	TileFronts []TileAsset   `json:"tile_fronts"`
}

func Load(configDir string) (*Catalog, error) {
	raw, err := os.ReadFile(filepath.Join(configDir, "assets.json"))
	if err != nil {
		return nil, err
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("assets.json: %w", err)
	}
	return c, nil
}

func Parse(raw []byte) (*Catalog, error) {
	var f assetsFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	if strings.TrimSpace(f.Oxygen) == "" {
		return nil, fmt.Errorf("missing oxygen asset")
	}
	if strings.TrimSpace(f.TileBack) == "" {
		return nil, fmt.Errorf("missing tile_back asset")
	}
	if len(f.Players) == 0 {
		return nil, fmt.Errorf("no players")
	}

	seen := map[string]bool{}
	for _, p := range f.Players {
		if p.ID == "" {
			return nil, fmt.Errorf("players: empty id")
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("players: duplicate id %q", p.ID)
		}
		seen[p.ID] = true
	}

	fronts := append([]TileAsset(nil), f.TileFronts...)
	seen = map[string]bool{}
	for _, t := range fronts {
		if t.ID == "" {
			return nil, fmt.Errorf("tile_fronts: empty id")
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("tile_fronts: duplicate id %q", t.ID)
		}
		seen[t.ID] = true
	}
	// Source order is irrelevant (always shuffled); sorting keeps seeded deals stable.
	sort.Slice(fronts, func(i, j int) bool { return fronts[i].ID < fronts[j].ID })

	ids := make([]string, 0, len(fronts))
	for _, t := range fronts {
		ids = append(ids, t.ID)
	}
	idsJSON, _ := json.Marshal(ids)

	return &Catalog{
		BoardImage:  f.BoardImage,
		OxygenAsset: f.Oxygen,
		TileBack:    f.TileBack,
		Players:     f.Players,
		TileFronts:  fronts,
		Digest:      sha256Hex(raw),
		FrontDigest: sha256Hex(idsJSON),
	}, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
