package game

import (
	"time"

	"chosenoffset.com/bombfield/internal/render"
)

// PlayerState is the player's discrete animation state.
type PlayerState int

// Player states.
const (
	StateIdle PlayerState = iota
	StateMove
	StateAttack
	StateGameOver
)

// String returns the state's animation name component.
func (s PlayerState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateMove:
		return "Move"
	case StateAttack:
		return "Attack"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Direction is the player's facing direction.
type Direction int

// Facing directions. DirNone is only meaningful for the game-over state.
const (
	DirNone Direction = iota
	DirDown
	DirUp
	DirLeft
	DirRight
)

// String returns the direction's animation name component.
func (d Direction) String() string {
	switch d {
	case DirDown:
		return "Down"
	case DirUp:
		return "Up"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return ""
	}
}

// Player is the singleton player object: position, facing, discrete state and
// a time-bounded speed boost. Once the state reaches GameOver it is terminal;
// every further transition, position update and boost application is absorbed
// silently.
type Player struct {
	id     int
	x, y   int
	sprite Drawable

	state PlayerState
	dir   Direction

	speedMultiplier float64
	boostEnd        time.Time

	now func() time.Time
}

// NewPlayer creates the player at the given world position, facing down in
// the idle state.
func NewPlayer(id, x, y int, spr Drawable) *Player {
	p := &Player{
		id:              id,
		x:               x,
		y:               y,
		sprite:          spr,
		state:           StateIdle,
		dir:             DirDown,
		speedMultiplier: 1.0,
		now:             time.Now,
	}
	if spr != nil {
		spr.ActivateAnimation(p.state.String() + p.dir.String())
	}
	return p
}

// ID returns the player's registry id.
func (p *Player) ID() int {
	return p.id
}

// Position returns the player's world pixel position.
func (p *Player) Position() (x, y int) {
	return p.x, p.y
}

// State returns the current state and facing direction.
func (p *Player) State() (PlayerState, Direction) {
	return p.state, p.dir
}

// SpeedMultiplier returns the currently effective speed multiplier.
func (p *Player) SpeedMultiplier() float64 {
	return p.speedMultiplier
}

// SetState transitions the player to a new state and facing direction.
// It is a silent no-op after game over, and also when the pair equals the
// current one so the active animation is not restarted. Entering game over
// ignores the direction argument; that animation has no directional variant.
func (p *Player) SetState(newState PlayerState, newDir Direction) {
	if p.state == StateGameOver {
		return
	}
	if newState == p.state && newDir == p.dir {
		return
	}
	if newState == StateGameOver {
		newDir = DirNone
	}

	p.state = newState
	p.dir = newDir

	if p.sprite == nil {
		return
	}
	if newState == StateGameOver {
		p.sprite.ActivateAnimation("GameOver")
		return
	}
	// Animation lookup failures are the sprite collaborator's concern.
	p.sprite.ActivateAnimation(newState.String() + newDir.String())
}

// Attack transitions to the attack state in the current facing direction.
// Attacking never changes facing.
func (p *Player) Attack() {
	if p.state == StateGameOver {
		return
	}
	p.SetState(StateAttack, p.dir)
}

// GameOver transitions to the terminal game-over state.
func (p *Player) GameOver() {
	p.SetState(StateGameOver, DirNone)
}

// UpdatePosition moves the player from the four directional axis inputs
// (0.0 or 1.0 each) over elapsedMs milliseconds and reconciles state and
// facing.
//
// Per-axis deltas are truncated toward zero when converted to pixels, every
// frame, with no remainder carried. At low speeds a small delta can therefore
// round to zero and the player stays put. That behavior is kept as is.
func (p *Player) UpdatePosition(up, down, left, right float64, elapsedMs float64) {
	if p.state == StateGameOver {
		return
	}

	now := p.now()
	if p.speedMultiplier > 1.0 && !now.Before(p.boostEnd) {
		p.speedMultiplier = 1.0
	}

	speed := BaseSpeed * p.speedMultiplier
	distance := speed * elapsedMs / 1000.0

	dx := int(distance*right - distance*left)
	dy := int(distance*down - distance*up)

	if dx == 0 && dy == 0 {
		attackRunning := p.state == StateAttack && p.sprite != nil && !p.sprite.Finished()
		if !attackRunning {
			p.SetState(StateIdle, p.dir)
		}
	} else {
		// Vertical facing resolves first, then horizontal, so on a diagonal
		// the horizontal facing wins.
		dir := p.dir
		if dy > 0 {
			dir = DirDown
		} else if dy < 0 {
			dir = DirUp
		}
		if dx > 0 {
			dir = DirRight
		} else if dx < 0 {
			dir = DirLeft
		}
		p.SetState(StateMove, dir)
	}

	p.x += dx
	p.y += dy
}

// ApplySpeedBoost sets the speed multiplier for the given duration. A new
// boost overwrites any active one; boosts never stack.
func (p *Player) ApplySpeedBoost(multiplier, durationSeconds float64) {
	if p.state == StateGameOver {
		return
	}
	p.speedMultiplier = multiplier
	p.boostEnd = p.now().Add(time.Duration(durationSeconds * float64(time.Second)))
}

// HasSpeedBoost reports whether a boost is currently in effect.
func (p *Player) HasSpeedBoost() bool {
	return p.speedMultiplier > 1.0 && p.now().Before(p.boostEnd)
}

// RemainingBoostTime returns the seconds of boost left, or 0.
func (p *Player) RemainingBoostTime() float64 {
	if !p.HasSpeedBoost() {
		return 0
	}
	return p.boostEnd.Sub(p.now()).Seconds()
}

// BoostProgress returns the remaining boost as a fraction of the default
// power-up window. The 5-second reference is fixed: a boost applied with a
// different duration reports a fraction above 1 until it decays under the
// window. The HUD clamps for display.
func (p *Player) BoostProgress() float64 {
	return p.RemainingBoostTime() / powerUpEffectSeconds
}

// Update advances the player's animation.
func (p *Player) Update(elapsedMs float64) {
	if p.sprite != nil {
		p.sprite.Update(elapsedMs)
	}
}

// Render draws the player's sprite at its world position, offset by the camera.
func (p *Player) Render(screen render.Image, camX, camY float64) {
	if p.sprite != nil {
		p.sprite.Draw(screen, float64(p.x)-camX, float64(p.y)-camY)
	}
}
