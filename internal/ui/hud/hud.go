// Package hud draws the in-game heads-up display: currently the speed-boost
// progress bar and its label.
package hud

import (
	"image/color"

	"chosenoffset.com/bombfield/internal/render"
)

// HUD manages the heads-up display.
type HUD struct {
	barX, barY    float32
	barW, barH    float32
	fillColor     color.RGBA
	frameColor    color.RGBA
	labelColor    color.RGBA
}

// New creates a HUD anchored to the top-left corner.
func New() *HUD {
	return &HUD{
		barX:       16,
		barY:       16,
		barW:       160,
		barH:       12,
		fillColor:  color.RGBA{80, 200, 120, 255},
		frameColor: color.RGBA{220, 220, 220, 255},
		labelColor: color.RGBA{255, 255, 255, 255},
	}
}

// Draw draws the boost bar when a boost is active. progress is the remaining
// fraction of the default boost window; values above 1 are clamped for
// display.
func (h *HUD) Draw(screen render.Image, r render.Renderer, boostActive bool, progress float64) {
	if !boostActive {
		return
	}
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}

	r.StrokeRect(screen, h.barX, h.barY, h.barW, h.barH, 1, h.frameColor)
	r.FillRect(screen, h.barX+1, h.barY+1, (h.barW-2)*float32(progress), h.barH-2, h.fillColor)
	r.DrawText(screen, "Speed boost", int(h.barX), int(h.barY+h.barH)+14, h.labelColor)
}
