package game

import (
	"math/rand"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"chosenoffset.com/bombfield/internal/render"
	"chosenoffset.com/bombfield/internal/script"
	"chosenoffset.com/bombfield/internal/sprite"
	"chosenoffset.com/bombfield/internal/ui/hud"
	"chosenoffset.com/bombfield/internal/world/level"
)

// SpriteLoader creates a fresh drawable for a named object sprite. Each world
// object owns its own drawable so animations step independently.
type SpriteLoader interface {
	Load(name string) (Drawable, error)
}

// DirSpriteLoader loads sprite definitions named "<name>.json" from a single
// directory.
type DirSpriteLoader struct {
	Loader render.ResourceLoader
	Dir    string
}

// Load loads the sprite definition for name.
func (l *DirSpriteLoader) Load(name string) (Drawable, error) {
	return sprite.Load(l.Loader, filepath.Join(l.Dir, name+".json"), l.Dir)
}

// Game holds all game state and drives the per-frame update and render
// passes. All state is mutated from the single frame goroutine; the only
// structural hazard is removing registry entries mid-iteration, which every
// pass avoids by collecting ids first.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Level        *level.Level
	Player       *Player
	Objects      *Registry
	Camera       Camera
	Renderer     render.Renderer
	InputMgr     render.InputManager
	Sprites      SpriteLoader
	Scripts      *script.Engine
	GameHUD      *hud.HUD

	invincible        bool
	lastFrame         time.Time
	lastPowerUpSpawn  time.Time
	lastInvincibility time.Time

	rng *rand.Rand
	now func() time.Time
}

// New creates a game over a loaded level. The player is added separately via
// SetPlayer once its sprite has loaded; frames are skipped until then.
func New(r render.Renderer, input render.InputManager, sprites SpriteLoader, lvl *level.Level, width, height int) *Game {
	g := &Game{
		ScreenWidth:  width,
		ScreenHeight: height,
		Level:        lvl,
		Objects:      NewRegistry(),
		Renderer:     r,
		InputMgr:     input,
		Sprites:      sprites,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		now:          time.Now,
	}
	g.lastFrame = g.now()
	g.lastPowerUpSpawn = g.now()
	return g
}

// SetPlayer registers the player object. The player lives in the registry
// like everything else, but is never removed; it only transitions to the
// game-over state.
func (g *Game) SetPlayer(p *Player) error {
	if err := g.Objects.Add(p); err != nil {
		return err
	}
	g.Player = p
	p.now = g.now
	return nil
}

// Update runs one frame of game logic. The step order is load-bearing:
// input debounce, spawn timer, movement, attack, scripts, bomb placement,
// pickups.
func (g *Game) Update() error {
	now := g.now()
	elapsed := now.Sub(g.lastFrame)
	g.lastFrame = now

	// Setup not complete yet.
	if g.Player == nil {
		return nil
	}

	if g.InputMgr.IsKeyPressed(render.KeyI) &&
		now.Sub(g.lastInvincibility).Seconds() >= invincibilityCooldownSec {
		g.invincible = !g.invincible
		g.lastInvincibility = now
	}

	if now.Sub(g.lastPowerUpSpawn).Seconds() >= powerUpSpawnIntervalSeconds {
		g.spawnPowerUp(now)
		g.lastPowerUpSpawn = now
	}

	up := axisValue(g.InputMgr.IsKeyPressed(render.KeyUp))
	down := axisValue(g.InputMgr.IsKeyPressed(render.KeyDown))
	left := axisValue(g.InputMgr.IsKeyPressed(render.KeyLeft))
	right := axisValue(g.InputMgr.IsKeyPressed(render.KeyRight))

	// Attacking while strafing on two axes is not allowed.
	attacking := g.InputMgr.IsKeyJustPressed(render.KeySpace) &&
		up+down+left+right <= 1
	placeBomb := g.InputMgr.IsKeyJustPressed(render.KeyB)

	elapsedMs := elapsed.Seconds() * 1000.0
	g.Player.UpdatePosition(up, down, left, right, elapsedMs)

	if attacking {
		g.Player.Attack()
	}

	if g.Scripts != nil {
		g.Scripts.ExecuteAll(g)
	}

	if placeBomb {
		x, y := g.Player.Position()
		g.PlaceBomb(x, y)
	}
	if g.InputMgr.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		sx, sy := g.InputMgr.GetCursorPosition()
		wx, wy := g.ToWorld(sx, sy)
		g.PlaceBomb(wx, wy)
	}

	g.resolvePickups()

	for _, r := range g.Objects.Renderables() {
		r.Update(elapsedMs)
	}

	g.UpdateCamera()
	return nil
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

// PlaceBomb creates a bomb at the given world position. A missing bomb sprite
// is logged and the bomb is placed without one; the fuse still runs.
func (g *Game) PlaceBomb(x, y int) {
	var spr Drawable
	if g.Sprites != nil {
		loaded, err := g.Sprites.Load("bomb")
		if err != nil {
			log.Warnf("bomb sprite unavailable: %v", err)
		} else {
			spr = loaded
		}
	}
	bomb := NewBomb(g.Objects.NextID(), x, y, spr, g.now())
	if err := g.Objects.Add(bomb); err != nil {
		log.Warnf("failed to register bomb: %v", err)
	}
}

// PlayerPosition returns the player's world position, with ok=false before
// setup completes. Part of the script API.
func (g *Game) PlayerPosition() (x, y int, ok bool) {
	if g.Player == nil {
		return 0, 0, false
	}
	x, y = g.Player.Position()
	return x, y, true
}

// HasSpeedBoost reports whether the player has an active boost. Part of the
// script API.
func (g *Game) HasSpeedBoost() bool {
	return g.Player != nil && g.Player.HasSpeedBoost()
}

// Invincible reports whether bomb damage is currently disabled.
func (g *Game) Invincible() bool {
	return g.invincible
}

// resolvePickups applies and removes every power-up within pickup range of
// the player. Removals are batched after the scan.
func (g *Game) resolvePickups() {
	if g.Player == nil {
		return
	}
	px, py := g.Player.Position()

	var collected []int
	for id, pu := range g.Objects.PowerUps() {
		x, y := pu.Position()
		if withinProximity(px, py, x, y) {
			g.Player.ApplySpeedBoost(pu.SpeedMultiplier(), pu.EffectDuration())
			collected = append(collected, id)
		}
	}
	for _, id := range collected {
		g.Objects.Remove(id)
	}
}

// withinProximity reports whether two points are inside the interaction box:
// both axis distances strictly under proximityPixels.
func withinProximity(ax, ay, bx, by int) bool {
	dx := ax - bx
	if dx < 0 {
		dx = -dx
	}
	dy := ay - by
	if dy < 0 {
		dy = -dy
	}
	return dx < proximityPixels && dy < proximityPixels
}

func axisValue(pressed bool) float64 {
	if pressed {
		return 1.0
	}
	return 0.0
}
