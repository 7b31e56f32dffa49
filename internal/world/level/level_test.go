package level

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"chosenoffset.com/bombfield/internal/render"
)

// fakeImage is a sized stand-in for a loaded tile image.
type fakeImage struct {
	w, h int
}

func (f *fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, f.w, f.h) }
func (f *fakeImage) Size() (int, int)        { return f.w, f.h }
func (f *fakeImage) Fill(clr color.Color)    {}
func (f *fakeImage) Clear()                  {}
func (f *fakeImage) Dispose()                {}

func (f *fakeImage) SubImage(r image.Rectangle) render.Image {
	return &fakeImage{w: r.Dx(), h: r.Dy()}
}

func (f *fakeImage) DrawImage(src render.Image, o *render.DrawImageOptions) {}

type fakeLoader struct{}

func (l *fakeLoader) LoadImage(path string) (render.Image, error) {
	return &fakeImage{w: 32, h: 32}, nil
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

const validTileset = `{
	"name": "terrain",
	"tiles": [
		{"id": 0, "image": "grass.png", "imagewidth": 32, "imageheight": 32},
		{"id": 1, "image": "water.png", "imagewidth": 32, "imageheight": 32}
	]
}`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "terrain.json", validTileset)
	levelPath := writeFile(t, dir, "level.json", `{
		"width": 2,
		"height": 2,
		"tilewidth": 32,
		"tileheight": 32,
		"layers": [{"width": 2, "data": [1, 2, 0, 1]}],
		"tilesets": [{"source": "terrain.json"}]
	}`)

	lvl, err := Load(levelPath, &fakeLoader{})
	if err != nil {
		t.Fatalf("Failed to load level: %v", err)
	}

	if lvl.PixelWidth() != 64 || lvl.PixelHeight() != 64 {
		t.Errorf("Expected 64x64 pixel bounds, got %dx%d", lvl.PixelWidth(), lvl.PixelHeight())
	}

	// Layer value 2 is the 1-based reference to tile id 1.
	if _, ok := lvl.TileImage(2 - 1); !ok {
		t.Error("Expected tile id 1 resolvable through the level's tilesets")
	}
	if _, ok := lvl.TileImage(7); ok {
		t.Error("Expected unknown tile id to miss")
	}
}

func TestLoadFatalOnMissingDimensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "terrain.json", validTileset)

	cases := map[string]string{
		"zero width":     `{"width": 0, "height": 2, "tilewidth": 32, "tileheight": 32, "layers": [{"width": 2, "data": [1]}], "tilesets": [{"source": "terrain.json"}]}`,
		"zero tilewidth": `{"width": 2, "height": 2, "tilewidth": 0, "tileheight": 32, "layers": [{"width": 2, "data": [1]}], "tilesets": [{"source": "terrain.json"}]}`,
		"no layers":      `{"width": 2, "height": 2, "tilewidth": 32, "tileheight": 32, "layers": [], "tilesets": [{"source": "terrain.json"}]}`,
		"no tilesets":    `{"width": 2, "height": 2, "tilewidth": 32, "tileheight": 32, "layers": [{"width": 2, "data": [1]}], "tilesets": []}`,
		"empty layer":    `{"width": 2, "height": 2, "tilewidth": 32, "tileheight": 32, "layers": [{"width": 2, "data": []}], "tilesets": [{"source": "terrain.json"}]}`,
	}

	for name, body := range cases {
		path := writeFile(t, dir, "bad.json", body)
		if _, err := Load(path, &fakeLoader{}); err == nil {
			t.Errorf("%s: expected a load error", name)
		}
	}
}

func TestLoadFatalOnMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json"), &fakeLoader{}); err == nil {
		t.Error("Expected error for a missing level file")
	}
}

func TestLoadFatalOnBrokenTilesetReference(t *testing.T) {
	dir := t.TempDir()
	levelPath := writeFile(t, dir, "level.json", `{
		"width": 2,
		"height": 2,
		"tilewidth": 32,
		"tileheight": 32,
		"layers": [{"width": 2, "data": [1, 0, 0, 0]}],
		"tilesets": [{"source": "absent.json"}]
	}`)

	if _, err := Load(levelPath, &fakeLoader{}); err == nil {
		t.Error("Expected error for a missing tileset reference")
	}
}
