package tileset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"chosenoffset.com/bombfield/internal/render"
)

// TileDefinition defines a single tile within a tileset. Each tile
// references its own image file.
type TileDefinition struct {
	ID          int    `json:"id"`
	Image       string `json:"image"`
	ImageWidth  int    `json:"imagewidth"`
	ImageHeight int    `json:"imageheight"`
}

// Config defines the JSON configuration for a tileset.
type Config struct {
	Name  string           `json:"name"`
	Tiles []TileDefinition `json:"tiles"`
}

// Tileset represents a loaded tileset with its tile images.
type Tileset struct {
	Config      *Config
	TilesByID   map[int]*TileDefinition
	ImagesByID  map[int]render.Image
}

// Load loads a tileset from a JSON configuration file. Tile image paths are
// resolved relative to the configuration file's directory.
func Load(configPath string, loader render.ResourceLoader) (*Tileset, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tileset config %s: %w", configPath, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse tileset config %s: %w", configPath, err)
	}

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid tileset config %s: %w", configPath, err)
	}

	baseDir := filepath.Dir(configPath)
	tilesByID := make(map[int]*TileDefinition)
	imagesByID := make(map[int]render.Image)
	for i := range config.Tiles {
		tile := &config.Tiles[i]
		img, err := loader.LoadImage(filepath.Join(baseDir, tile.Image))
		if err != nil {
			return nil, fmt.Errorf("failed to load tile image %s: %w", tile.Image, err)
		}
		tilesByID[tile.ID] = tile
		imagesByID[tile.ID] = img
	}

	return &Tileset{
		Config:     &config,
		TilesByID:  tilesByID,
		ImagesByID: imagesByID,
	}, nil
}

// Validate checks that a tileset configuration is complete.
func Validate(config *Config) error {
	if config.Name == "" {
		return fmt.Errorf("tileset name is required")
	}
	if len(config.Tiles) == 0 {
		return fmt.Errorf("tileset %s defines no tiles", config.Name)
	}
	for i, tile := range config.Tiles {
		if tile.Image == "" {
			return fmt.Errorf("tile %d has no image path", i)
		}
		if tile.ImageWidth <= 0 || tile.ImageHeight <= 0 {
			return fmt.Errorf("tile %d has invalid image dimensions: %dx%d", i, tile.ImageWidth, tile.ImageHeight)
		}
	}
	return nil
}

// GetTile returns a tile definition by id.
func (t *Tileset) GetTile(id int) (*TileDefinition, bool) {
	tile, ok := t.TilesByID[id]
	return tile, ok
}

// GetTileImage returns the image for a tile by id.
func (t *Tileset) GetTileImage(id int) (render.Image, bool) {
	img, ok := t.ImagesByID[id]
	return img, ok
}
