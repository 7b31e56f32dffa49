package game

// Camera tracks the viewport position for scrolling large levels.
type Camera struct {
	X, Y float64 // Camera position (top-left corner of viewport in world coords)
}

// UpdateCamera centers the camera on the player and clamps it to the level
// bounds.
func (g *Game) UpdateCamera() {
	if g.Level == nil || g.Player == nil {
		return
	}

	px, py := g.Player.Position()
	g.Camera.X = float64(px) - float64(g.ScreenWidth)/2
	g.Camera.Y = float64(py) - float64(g.ScreenHeight)/2

	maxX := float64(g.Level.PixelWidth() - g.ScreenWidth)
	maxY := float64(g.Level.PixelHeight() - g.ScreenHeight)

	if g.Camera.X > maxX {
		g.Camera.X = maxX
	}
	if g.Camera.Y > maxY {
		g.Camera.Y = maxY
	}
	if g.Camera.X < 0 {
		g.Camera.X = 0
	}
	if g.Camera.Y < 0 {
		g.Camera.Y = 0
	}
}

// ToWorld converts screen coordinates to world pixel coordinates.
func (g *Game) ToWorld(screenX, screenY int) (x, y int) {
	return screenX + int(g.Camera.X), screenY + int(g.Camera.Y)
}
