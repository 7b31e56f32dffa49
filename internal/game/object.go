package game

import (
	"time"

	"chosenoffset.com/bombfield/internal/render"
)

// Gameplay constants. Distances are world pixels, durations are seconds.
const (
	// BaseSpeed is the unboosted player speed in pixels per second.
	BaseSpeed = 128.0

	bombFuseSeconds             = 3.0
	powerUpTTLSeconds           = 10.0
	powerUpSpeedMultiplier      = 2.0
	powerUpEffectSeconds        = 5.0
	powerUpSpawnIntervalSeconds = 10.0
	invincibilityCooldownSec    = 0.5

	// proximityPixels is the half-size of the axis-aligned box used for both
	// bomb damage and power-up pickup: a hit needs |dx| and |dy| both under it.
	proximityPixels = 32
)

// GameObject is the minimal identity every live world object carries.
type GameObject interface {
	ID() int
	Position() (x, y int)
}

// Renderable is a game object that draws a sprite and advances its animation.
type Renderable interface {
	GameObject
	Update(elapsedMs float64)
	Render(screen render.Image, camX, camY float64)
}

// Temporary is a game object with a fixed time-to-live.
type Temporary interface {
	GameObject
	Expired(now time.Time) bool
}

// Drawable is the sprite capability a renderable object needs. It is
// implemented by *sprite.Sprite; tests substitute stubs.
type Drawable interface {
	ActivateAnimation(name string)
	Finished() bool
	Update(elapsedMs float64)
	Draw(dst render.Image, x, y float64)
}

// RenderableObject is the base implementation for sprite-backed world objects.
type RenderableObject struct {
	id     int
	x, y   int
	sprite Drawable
}

// ID returns the object's registry id.
func (o *RenderableObject) ID() int {
	return o.id
}

// Position returns the object's world pixel position.
func (o *RenderableObject) Position() (x, y int) {
	return o.x, o.y
}

// Update advances the object's animation.
func (o *RenderableObject) Update(elapsedMs float64) {
	if o.sprite != nil {
		o.sprite.Update(elapsedMs)
	}
}

// Render draws the object's sprite at its world position, offset by the camera.
func (o *RenderableObject) Render(screen render.Image, camX, camY float64) {
	if o.sprite != nil {
		o.sprite.Draw(screen, float64(o.x)-camX, float64(o.y)-camY)
	}
}

// TemporaryObject is a renderable object that expires a fixed time after
// creation. Once created it never changes except for animation state.
type TemporaryObject struct {
	RenderableObject
	createdAt  time.Time
	ttlSeconds float64
}

// Expired reports whether the object's time-to-live has elapsed.
func (o *TemporaryObject) Expired(now time.Time) bool {
	return now.Sub(o.createdAt).Seconds() >= o.ttlSeconds
}

// NewBomb creates a bomb at the given world position with a fixed fuse.
func NewBomb(id, x, y int, spr Drawable, now time.Time) *TemporaryObject {
	if spr != nil {
		spr.ActivateAnimation("BombTicking")
	}
	return &TemporaryObject{
		RenderableObject: RenderableObject{id: id, x: x, y: y, sprite: spr},
		createdAt:        now,
		ttlSeconds:       bombFuseSeconds,
	}
}

// PowerUp is a temporary object that grants a timed speed boost on pickup.
type PowerUp struct {
	TemporaryObject
	speedMultiplier float64
	effectDuration  float64
}

// NewPowerUp creates a power-up at the given world position. It despawns if
// not picked up before its time-to-live runs out.
func NewPowerUp(id, x, y int, spr Drawable, now time.Time) *PowerUp {
	if spr != nil {
		spr.ActivateAnimation("PowerUp")
	}
	return &PowerUp{
		TemporaryObject: TemporaryObject{
			RenderableObject: RenderableObject{id: id, x: x, y: y, sprite: spr},
			createdAt:        now,
			ttlSeconds:       powerUpTTLSeconds,
		},
		speedMultiplier: powerUpSpeedMultiplier,
		effectDuration:  powerUpEffectSeconds,
	}
}

// SpeedMultiplier returns the multiplier applied to the player on pickup.
func (p *PowerUp) SpeedMultiplier() float64 {
	return p.speedMultiplier
}

// EffectDuration returns how long the pickup's boost lasts, in seconds.
func (p *PowerUp) EffectDuration() float64 {
	return p.effectDuration
}
