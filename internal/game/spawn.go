package game

import (
	"time"

	"github.com/charmbracelet/log"
)

// spawnPowerUp places a new power-up at a uniformly random position within
// the level's pixel bounds. A sprite load failure is logged and the spawn is
// skipped; it never takes down the frame loop.
func (g *Game) spawnPowerUp(now time.Time) {
	if g.Level == nil || g.Sprites == nil {
		return
	}

	spr, err := g.Sprites.Load("powerup")
	if err != nil {
		log.Warnf("power-up spawn skipped: %v", err)
		return
	}

	x := g.rng.Intn(g.Level.PixelWidth())
	y := g.rng.Intn(g.Level.PixelHeight())

	pu := NewPowerUp(g.Objects.NextID(), x, y, spr, now)
	if err := g.Objects.Add(pu); err != nil {
		log.Warnf("failed to register power-up: %v", err)
	}
}
