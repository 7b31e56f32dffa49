package level

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"chosenoffset.com/bombfield/internal/render"
	"chosenoffset.com/bombfield/internal/world/tileset"
)

// Layer is one drawable plane of the level: a flat row-major grid of 1-based
// tile indices, where 0 means empty.
type Layer struct {
	Width int   `json:"width"`
	Data  []int `json:"data"`
}

// TilesetRef points at a tileset configuration file, resolved relative to the
// level file.
type TilesetRef struct {
	Source string `json:"source"`
}

// Data represents the loaded level configuration.
type Data struct {
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	TileWidth  int          `json:"tilewidth"`
	TileHeight int          `json:"tileheight"`
	Layers     []Layer      `json:"layers"`
	Tilesets   []TilesetRef `json:"tilesets"`
}

// Level represents a loaded level with its tilesets.
type Level struct {
	Data     *Data
	Tilesets []*tileset.Tileset
}

// Load loads a level from a JSON file along with all tilesets it references.
// Any missing or invalid field is a load error: the game never starts with a
// partial world.
func Load(levelPath string, loader render.ResourceLoader) (*Level, error) {
	data, err := os.ReadFile(levelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file %s: %w", levelPath, err)
	}

	var levelData Data
	if err := json.Unmarshal(data, &levelData); err != nil {
		return nil, fmt.Errorf("failed to parse level file %s: %w", levelPath, err)
	}

	if err := validate(&levelData); err != nil {
		return nil, fmt.Errorf("invalid level data in %s: %w", levelPath, err)
	}

	baseDir := filepath.Dir(levelPath)
	tilesets := make([]*tileset.Tileset, 0, len(levelData.Tilesets))
	for _, ref := range levelData.Tilesets {
		ts, err := tileset.Load(filepath.Join(baseDir, ref.Source), loader)
		if err != nil {
			return nil, fmt.Errorf("failed to load tileset %s: %w", ref.Source, err)
		}
		tilesets = append(tilesets, ts)
	}

	return &Level{
		Data:     &levelData,
		Tilesets: tilesets,
	}, nil
}

// validate checks that the level data is complete.
func validate(data *Data) error {
	if data.Width <= 0 || data.Height <= 0 {
		return fmt.Errorf("invalid level dimensions: %dx%d", data.Width, data.Height)
	}
	if data.TileWidth <= 0 || data.TileHeight <= 0 {
		return fmt.Errorf("invalid tile dimensions: %dx%d", data.TileWidth, data.TileHeight)
	}
	if len(data.Layers) == 0 {
		return fmt.Errorf("level defines no layers")
	}
	for i, layer := range data.Layers {
		if layer.Width <= 0 {
			return fmt.Errorf("layer %d has invalid width: %d", i, layer.Width)
		}
		if len(layer.Data) == 0 {
			return fmt.Errorf("layer %d has no tile data", i)
		}
	}
	if len(data.Tilesets) == 0 {
		return fmt.Errorf("level references no tilesets")
	}
	return nil
}

// PixelWidth returns the level width in world pixels.
func (l *Level) PixelWidth() int {
	return l.Data.Width * l.Data.TileWidth
}

// PixelHeight returns the level height in world pixels.
func (l *Level) PixelHeight() int {
	return l.Data.Height * l.Data.TileHeight
}

// TileImage resolves a tile id (0-based, after the layer's 1-based offset has
// been removed) to its image, searching the level's tilesets in order.
func (l *Level) TileImage(id int) (render.Image, bool) {
	for _, ts := range l.Tilesets {
		if img, ok := ts.GetTileImage(id); ok {
			return img, true
		}
	}
	return nil, false
}
