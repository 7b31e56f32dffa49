package game

import (
	"errors"
	"testing"
	"time"

	"chosenoffset.com/bombfield/internal/render"
	"chosenoffset.com/bombfield/internal/world/level"
)

var errSpriteUnavailable = errors.New("sprite unavailable")

// fakeInput implements render.InputManager with settable key state.
type fakeInput struct {
	pressed     map[render.Key]bool
	justPressed map[render.Key]bool
	mouseClick  bool
	cursorX     int
	cursorY     int
}

func newFakeInput() *fakeInput {
	return &fakeInput{
		pressed:     make(map[render.Key]bool),
		justPressed: make(map[render.Key]bool),
	}
}

func (f *fakeInput) IsKeyPressed(key render.Key) bool     { return f.pressed[key] }
func (f *fakeInput) IsKeyJustPressed(key render.Key) bool { return f.justPressed[key] }
func (f *fakeInput) GetCursorPosition() (x, y int)        { return f.cursorX, f.cursorY }
func (f *fakeInput) IsMouseButtonJustPressed(button render.MouseButton) bool {
	return f.mouseClick
}

// stubSpriteLoader hands out fresh stub sprites, or fails on demand.
type stubSpriteLoader struct {
	fail error
}

func (l *stubSpriteLoader) Load(name string) (Drawable, error) {
	if l.fail != nil {
		return nil, l.fail
	}
	return &stubSprite{}, nil
}

func testLevel() *level.Level {
	return &level.Level{
		Data: &level.Data{
			Width:      20,
			Height:     15,
			TileWidth:  32,
			TileHeight: 32,
			Layers:     []level.Layer{{Width: 20, Data: make([]int, 300)}},
		},
	}
}

func newTestGame(t *testing.T) (*Game, *fakeInput, *testClock) {
	t.Helper()

	input := newFakeInput()
	clock := &testClock{current: time.Unix(1000, 0)}
	g := New(nil, input, &stubSpriteLoader{}, testLevel(), 640, 480)
	g.now = clock.now
	g.lastFrame = clock.current
	g.lastPowerUpSpawn = clock.current

	player := NewPlayer(g.Objects.NextID(), 100, 100, &stubSprite{})
	if err := g.SetPlayer(player); err != nil {
		t.Fatalf("Failed to register player: %v", err)
	}
	return g, input, clock
}

func TestExpiredBombNearPlayerEndsGame(t *testing.T) {
	g, _, clock := newTestGame(t)

	bomb := NewBomb(g.Objects.NextID(), 110, 110, nil, clock.current)
	if err := g.Objects.Add(bomb); err != nil {
		t.Fatalf("Failed to add bomb: %v", err)
	}

	clock.advance(4 * time.Second)
	g.ResolveExpired(clock.current)

	if state, _ := g.Player.State(); state != StateGameOver {
		t.Errorf("Expected GameOver next to an expired bomb, got %v", state)
	}
	if _, ok := g.Objects.Get(bomb.ID()); ok {
		t.Error("Expected expired bomb removed from the registry")
	}
}

func TestExpiredBombFarFromPlayerIsHarmless(t *testing.T) {
	g, _, clock := newTestGame(t)

	bomb := NewBomb(g.Objects.NextID(), 200, 100, nil, clock.current)
	if err := g.Objects.Add(bomb); err != nil {
		t.Fatalf("Failed to add bomb: %v", err)
	}

	clock.advance(4 * time.Second)
	g.ResolveExpired(clock.current)

	if state, _ := g.Player.State(); state == StateGameOver {
		t.Error("Expected player unharmed by a distant bomb")
	}
	if _, ok := g.Objects.Get(bomb.ID()); ok {
		t.Error("Expected distant expired bomb removed anyway")
	}
}

func TestInvincibilityBlocksBombDamage(t *testing.T) {
	g, _, clock := newTestGame(t)
	g.invincible = true

	bomb := NewBomb(g.Objects.NextID(), 110, 110, nil, clock.current)
	if err := g.Objects.Add(bomb); err != nil {
		t.Fatalf("Failed to add bomb: %v", err)
	}

	clock.advance(4 * time.Second)
	g.ResolveExpired(clock.current)

	if state, _ := g.Player.State(); state == StateGameOver {
		t.Error("Expected invincible player unaffected by the bomb")
	}
	if _, ok := g.Objects.Get(bomb.ID()); ok {
		t.Error("Expected bomb removed even when the player is invincible")
	}
}

func TestExpiryResolvedExactlyOnce(t *testing.T) {
	g, _, clock := newTestGame(t)
	g.invincible = true

	bomb := NewBomb(g.Objects.NextID(), 110, 110, nil, clock.current)
	if err := g.Objects.Add(bomb); err != nil {
		t.Fatalf("Failed to add bomb: %v", err)
	}

	clock.advance(4 * time.Second)
	g.ResolveExpired(clock.current)
	before := g.Objects.Len()
	g.ResolveExpired(clock.current)

	if g.Objects.Len() != before {
		t.Error("Second resolution pass must be a no-op")
	}
}

func TestPowerUpPickup(t *testing.T) {
	g, _, clock := newTestGame(t)
	g.Player.x, g.Player.y = 50, 50

	pu := NewPowerUp(g.Objects.NextID(), 60, 60, nil, clock.current)
	if err := g.Objects.Add(pu); err != nil {
		t.Fatalf("Failed to add power-up: %v", err)
	}

	g.resolvePickups()

	if _, ok := g.Objects.Get(pu.ID()); ok {
		t.Error("Expected collected power-up removed from the registry")
	}
	if !g.Player.HasSpeedBoost() {
		t.Fatal("Expected an active speed boost after pickup")
	}

	// 1s of full right input at the boosted speed covers 128*2 pixels.
	g.Player.UpdatePosition(0, 0, 0, 1, 1000)
	if x, _ := g.Player.Position(); x != 50+256 {
		t.Errorf("Expected x=%d after boosted movement, got %d", 50+256, x)
	}
}

func TestPowerUpOutOfRangeNotCollected(t *testing.T) {
	g, _, clock := newTestGame(t)
	g.Player.x, g.Player.y = 50, 50

	pu := NewPowerUp(g.Objects.NextID(), 50, 82, nil, clock.current)
	if err := g.Objects.Add(pu); err != nil {
		t.Fatalf("Failed to add power-up: %v", err)
	}

	g.resolvePickups()

	// |dy| == 32 sits exactly on the boundary and does not count as a hit.
	if _, ok := g.Objects.Get(pu.ID()); !ok {
		t.Error("Expected power-up at the box boundary to stay")
	}
	if g.Player.HasSpeedBoost() {
		t.Error("Expected no boost without a pickup")
	}
}

func TestSpawnTiming(t *testing.T) {
	g, _, clock := newTestGame(t)
	// Park the player outside the level so a random spawn can never land in
	// pickup range and vanish before the count check.
	g.Player.x, g.Player.y = -1000, -1000

	clock.advance(9900 * time.Millisecond)
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(g.Objects.PowerUps()) != 0 {
		t.Fatalf("Expected no spawn at 9.9s, got %d power-ups", len(g.Objects.PowerUps()))
	}

	clock.advance(200 * time.Millisecond)
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(g.Objects.PowerUps()) != 1 {
		t.Fatalf("Expected exactly one spawn at 10.1s, got %d", len(g.Objects.PowerUps()))
	}

	// The timer reference has reset: the very next frame must not spawn.
	clock.advance(100 * time.Millisecond)
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(g.Objects.PowerUps()) != 1 {
		t.Errorf("Expected no further spawn right after reset, got %d", len(g.Objects.PowerUps()))
	}
}

func TestSpawnFailureIsNonFatal(t *testing.T) {
	g, _, clock := newTestGame(t)
	g.Sprites = &stubSpriteLoader{fail: errSpriteUnavailable}

	clock.advance(11 * time.Second)
	if err := g.Update(); err != nil {
		t.Fatalf("Expected spawn failure to be non-fatal, got %v", err)
	}
	if len(g.Objects.PowerUps()) != 0 {
		t.Errorf("Expected failed spawn to be skipped, got %d power-ups", len(g.Objects.PowerUps()))
	}

	// The interval reference still resets so the next attempt waits.
	clock.advance(1 * time.Second)
	g.Sprites = &stubSpriteLoader{}
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(g.Objects.PowerUps()) != 0 {
		t.Errorf("Expected no spawn inside the fresh interval, got %d", len(g.Objects.PowerUps()))
	}
}

func TestAttackBlockedOnTwoAxes(t *testing.T) {
	g, input, clock := newTestGame(t)

	input.justPressed[render.KeySpace] = true
	input.pressed[render.KeyUp] = true
	input.pressed[render.KeyLeft] = true

	clock.advance(16 * time.Millisecond)
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if state, _ := g.Player.State(); state == StateAttack {
		t.Error("Expected attack suppressed while moving on two axes")
	}
}

func TestAttackAllowedOnSingleAxis(t *testing.T) {
	g, input, clock := newTestGame(t)

	input.justPressed[render.KeySpace] = true
	input.pressed[render.KeyRight] = true

	clock.advance(16 * time.Millisecond)
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if state, _ := g.Player.State(); state != StateAttack {
		t.Errorf("Expected Attack with one movement axis, got %v", state)
	}
}

func TestInvincibilityToggleDebounce(t *testing.T) {
	g, input, clock := newTestGame(t)

	input.pressed[render.KeyI] = true

	clock.advance(16 * time.Millisecond)
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !g.Invincible() {
		t.Fatal("Expected invincibility toggled on")
	}

	// Inside the 0.5s cooldown the held key does nothing.
	clock.advance(100 * time.Millisecond)
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !g.Invincible() {
		t.Error("Expected toggle suppressed inside the cooldown window")
	}

	clock.advance(600 * time.Millisecond)
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if g.Invincible() {
		t.Error("Expected toggle back off after the cooldown")
	}
}

func TestBombKeyPlacesBombAtPlayer(t *testing.T) {
	g, input, clock := newTestGame(t)

	input.justPressed[render.KeyB] = true

	clock.advance(16 * time.Millisecond)
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if len(g.Objects.Temporaries()) != 1 {
		t.Fatalf("Expected one bomb, got %d temporaries", len(g.Objects.Temporaries()))
	}
	for _, tmp := range g.Objects.Temporaries() {
		x, y := tmp.Position()
		px, py := g.Player.Position()
		if x != px || y != py {
			t.Errorf("Expected bomb at player position (%d, %d), got (%d, %d)", px, py, x, y)
		}
	}
}

func TestMouseClickPlacesBombInWorldSpace(t *testing.T) {
	g, input, clock := newTestGame(t)

	g.Camera.X = 64
	g.Camera.Y = 32
	input.mouseClick = true
	input.cursorX = 10
	input.cursorY = 20

	clock.advance(16 * time.Millisecond)
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	found := false
	for _, tmp := range g.Objects.Temporaries() {
		x, y := tmp.Position()
		if x == 74 && y == 52 {
			found = true
		}
	}
	if !found {
		t.Error("Expected bomb placed at camera-translated world coordinates")
	}
}

func TestUpdateSkipsFrameWithoutPlayer(t *testing.T) {
	input := newFakeInput()
	clock := &testClock{current: time.Unix(1000, 0)}
	g := New(nil, input, &stubSpriteLoader{}, testLevel(), 640, 480)
	g.now = clock.now
	g.lastFrame = clock.current
	g.lastPowerUpSpawn = clock.current

	clock.advance(11 * time.Second)
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if g.Objects.Len() != 0 {
		t.Error("Expected nothing to happen before setup completes")
	}
}
