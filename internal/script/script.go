// Package script runs user-provided lua scripts once per frame against the
// game's public mutation surface.
package script

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

// API is the mutation surface the game exposes to scripts.
type API interface {
	// PlayerPosition returns the player's world position. ok is false until
	// game setup completes.
	PlayerPosition() (x, y int, ok bool)

	// PlaceBomb creates a bomb at the given world position.
	PlaceBomb(x, y int)

	// HasSpeedBoost reports whether the player has an active speed boost.
	HasSpeedBoost() bool
}

type scriptFile struct {
	name   string
	source string
}

// Engine holds the loaded scripts. Execution is synchronous: every script
// finishes before the frame's render pass reads the object graph.
type Engine struct {
	scripts []scriptFile
}

// NewEngine creates an engine with no scripts loaded.
func NewEngine() *Engine {
	return &Engine{}
}

// LoadAll loads every *.lua file in dir. The sources are kept in memory;
// each frame runs them in a fresh lua state.
func (e *Engine) LoadAll(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read script directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read script %s: %w", entry.Name(), err)
		}
		e.scripts = append(e.scripts, scriptFile{name: entry.Name(), source: string(data)})
	}
	return nil
}

// LoadSource registers a script from an in-memory source string.
func (e *Engine) LoadSource(name, source string) {
	e.scripts = append(e.scripts, scriptFile{name: name, source: source})
}

// Len returns the number of loaded scripts.
func (e *Engine) Len() int {
	return len(e.scripts)
}

// ExecuteAll runs every loaded script against the API. A failing script is
// logged and skipped; the frame goes on.
func (e *Engine) ExecuteAll(api API) {
	for _, s := range e.scripts {
		if err := runScript(s, api); err != nil {
			log.Warnf("script %s failed: %v", s.name, err)
		}
	}
}

// runScript executes one script in a fresh lua state with the API bound as
// globals.
func runScript(s scriptFile, api API) error {
	luaState := lua.NewState()
	defer luaState.Close()

	luaState.SetGlobal("player_position", luaState.NewFunction(func(l *lua.LState) int {
		x, y, ok := api.PlayerPosition()
		if !ok {
			l.Push(lua.LNil)
			l.Push(lua.LNil)
			return 2
		}
		l.Push(lua.LNumber(x))
		l.Push(lua.LNumber(y))
		return 2
	}))

	luaState.SetGlobal("place_bomb", luaState.NewFunction(func(l *lua.LState) int {
		x := int(l.CheckNumber(1))
		y := int(l.CheckNumber(2))
		api.PlaceBomb(x, y)
		return 0
	}))

	luaState.SetGlobal("has_speed_boost", luaState.NewFunction(func(l *lua.LState) int {
		l.Push(lua.LBool(api.HasSpeedBoost()))
		return 1
	}))

	return luaState.DoString(s.source)
}
