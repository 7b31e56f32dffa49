package game

import (
	"image/color"
	"time"

	"chosenoffset.com/bombfield/internal/render"
)

// Draw renders one frame: terrain layers, then every renderable object, then
// expiry resolution, then the HUD. Expired temporaries are collected during
// the pass and removed afterwards; an expired bomb that went off next to the
// player ends the game unless invincibility is on.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(color.RGBA{12, 12, 16, 255})

	g.drawTerrain(screen)
	g.drawObjects(screen)
	g.ResolveExpired(g.now())
	g.drawHUD(screen)
}

func (g *Game) drawTerrain(screen render.Image) {
	if g.Level == nil {
		return
	}

	tileW := g.Level.Data.TileWidth
	tileH := g.Level.Data.TileHeight
	for _, layer := range g.Level.Data.Layers {
		for i, ref := range layer.Data {
			if ref == 0 {
				continue
			}
			// Layer values are 1-based tile ids.
			img, ok := g.Level.TileImage(ref - 1)
			if !ok {
				continue
			}
			x := float64((i%layer.Width)*tileW) - g.Camera.X
			y := float64((i/layer.Width)*tileH) - g.Camera.Y

			geoM := render.NewGeoM()
			geoM.Translate(x, y)
			screen.DrawImage(img, &render.DrawImageOptions{GeoM: geoM})
		}
	}
}

func (g *Game) drawObjects(screen render.Image) {
	for _, r := range g.Objects.Renderables() {
		r.Render(screen, g.Camera.X, g.Camera.Y)
	}
}

// ResolveExpired removes every expired temporary object and resolves its side
// effect. Each object is removed from the registry before its proximity check
// runs; the captured reference stays valid for the position comparison. An
// expired object within the damage box of the player ends the game, unless
// invincibility is on. Each expiry is resolved exactly once.
func (g *Game) ResolveExpired(now time.Time) {
	expired := g.Objects.ExpiredIDs(now)
	for _, id := range expired {
		obj, ok := g.Objects.Remove(id)
		if !ok {
			continue
		}
		if g.Player == nil || g.invincible {
			continue
		}
		px, py := g.Player.Position()
		x, y := obj.Position()
		if withinProximity(px, py, x, y) {
			g.Player.GameOver()
		}
	}
}

func (g *Game) drawHUD(screen render.Image) {
	if g.GameHUD == nil || g.Player == nil {
		return
	}
	g.GameHUD.Draw(screen, g.Renderer, g.Player.HasSpeedBoost(), g.Player.BoostProgress())
}
