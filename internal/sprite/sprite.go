// Package sprite loads sprite-sheet definitions and steps named animations.
// Frame advancement is driven by the per-frame delta time; nothing runs in
// the background.
package sprite

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"chosenoffset.com/bombfield/internal/render"
)

// AnimationDef defines one named animation as a sequence of frame indices
// into the sheet grid.
type AnimationDef struct {
	Frames  []int   `json:"frames"`
	FrameMs float64 `json:"frame_ms"`
	Loop    bool    `json:"loop"`
}

// Config defines the JSON configuration for a sprite sheet.
type Config struct {
	Image       string                  `json:"image"`
	FrameWidth  int                     `json:"frame_width"`
	FrameHeight int                     `json:"frame_height"`
	Animations  map[string]AnimationDef `json:"animations"`
}

// Sprite is a sprite sheet with at most one active animation.
type Sprite struct {
	config *Config
	image  render.Image
	cols   int

	active    string
	frames    []int
	frameIdx  int
	frameMs   float64
	loop      bool
	elapsedMs float64
	finished  bool
}

// Load loads a sprite sheet from a JSON definition file. The sheet image path
// is resolved relative to baseDir.
func Load(loader render.ResourceLoader, definitionPath, baseDir string) (*Sprite, error) {
	data, err := os.ReadFile(definitionPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sprite definition %s: %w", definitionPath, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse sprite definition %s: %w", definitionPath, err)
	}

	if config.FrameWidth <= 0 || config.FrameHeight <= 0 {
		return nil, fmt.Errorf("invalid frame dimensions in %s: %dx%d", definitionPath, config.FrameWidth, config.FrameHeight)
	}
	if config.Image == "" {
		return nil, fmt.Errorf("image is required in sprite definition %s", definitionPath)
	}

	img, err := loader.LoadImage(filepath.Join(baseDir, config.Image))
	if err != nil {
		return nil, fmt.Errorf("failed to load sprite sheet %s: %w", config.Image, err)
	}

	w, _ := img.Size()
	cols := w / config.FrameWidth
	if cols < 1 {
		cols = 1
	}

	return &Sprite{
		config: &config,
		image:  img,
		cols:   cols,
	}, nil
}

// ActivateAnimation switches the active animation by name. Re-activating the
// current animation is a no-op so the running animation is not restarted. An
// empty name deactivates animation entirely. An unknown name deactivates as
// well; the caller decides whether that matters.
func (s *Sprite) ActivateAnimation(name string) {
	if name == s.active {
		return
	}

	s.active = name
	s.frames = nil
	s.frameIdx = 0
	s.elapsedMs = 0
	s.finished = false

	if name == "" {
		return
	}

	def, ok := s.config.Animations[name]
	if !ok {
		s.active = ""
		return
	}
	s.frames = def.Frames
	s.frameMs = def.FrameMs
	s.loop = def.Loop
}

// ActiveAnimation returns the name of the active animation, or "" if none.
func (s *Sprite) ActiveAnimation() string {
	return s.active
}

// Finished reports whether a non-looping animation has played all its frames.
func (s *Sprite) Finished() bool {
	return s.finished
}

// Update advances the active animation by elapsedMs milliseconds.
func (s *Sprite) Update(elapsedMs float64) {
	if len(s.frames) == 0 || s.finished || s.frameMs <= 0 {
		return
	}

	s.elapsedMs += elapsedMs
	for s.elapsedMs >= s.frameMs {
		s.elapsedMs -= s.frameMs
		s.frameIdx++
		if s.frameIdx >= len(s.frames) {
			if s.loop {
				s.frameIdx = 0
			} else {
				s.frameIdx = len(s.frames) - 1
				s.finished = true
				return
			}
		}
	}
}

// Draw draws the current frame at the given screen coordinates.
func (s *Sprite) Draw(dst render.Image, x, y float64) {
	if len(s.frames) == 0 {
		return
	}

	frame := s.frames[s.frameIdx]
	fx := (frame % s.cols) * s.config.FrameWidth
	fy := (frame / s.cols) * s.config.FrameHeight
	rect := image.Rect(fx, fy, fx+s.config.FrameWidth, fy+s.config.FrameHeight)

	geoM := render.NewGeoM()
	geoM.Translate(x, y)
	dst.DrawImage(s.image.SubImage(rect), &render.DrawImageOptions{GeoM: geoM})
}

// FrameSize returns the sheet's frame dimensions in pixels.
func (s *Sprite) FrameSize() (width, height int) {
	return s.config.FrameWidth, s.config.FrameHeight
}
