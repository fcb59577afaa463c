// Package scripting hosts the Lua VM that decides ghost chase targets.
// Go detects and executes; Lua decides. Each ghost personality is a
// branch of one scripted function, so targeting tweaks never need a
// rebuild.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gridmunch/server/internal/grid"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM. Single-goroutine access only
// (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load ai scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// ChaseContext holds pre-packed data for one chase-target decision.
type ChaseContext struct {
	Ghost              string // personality key: "shadow", "speedy", ...
	GhostCol, GhostRow int

	PlayerCol, PlayerRow   int
	PlayerDirX, PlayerDirY int // unit cell delta of the player's facing

	// The shadow ghost's cell; the bashful personality mirrors
	// through it.
	ShadowCol, ShadowRow int

	ScatterCol, ScatterRow int
	DotsRemaining          int
}

// ChaseTarget calls the Lua chase_target function. The second return
// is false when no script decides, and the caller falls back to
// targeting the player directly.
func (e *Engine) ChaseTarget(ctx ChaseContext) (grid.Cell, bool) {
	fn := e.vm.GetGlobal("chase_target")
	if fn == lua.LNil {
		return grid.Cell{}, false
	}

	t := e.vm.NewTable()
	t.RawSetString("ghost", lua.LString(ctx.Ghost))
	t.RawSetString("ghost_col", lua.LNumber(ctx.GhostCol))
	t.RawSetString("ghost_row", lua.LNumber(ctx.GhostRow))

	p := e.vm.NewTable()
	p.RawSetString("col", lua.LNumber(ctx.PlayerCol))
	p.RawSetString("row", lua.LNumber(ctx.PlayerRow))
	p.RawSetString("dir_x", lua.LNumber(ctx.PlayerDirX))
	p.RawSetString("dir_y", lua.LNumber(ctx.PlayerDirY))
	t.RawSetString("player", p)

	t.RawSetString("shadow_col", lua.LNumber(ctx.ShadowCol))
	t.RawSetString("shadow_row", lua.LNumber(ctx.ShadowRow))
	t.RawSetString("scatter_col", lua.LNumber(ctx.ScatterCol))
	t.RawSetString("scatter_row", lua.LNumber(ctx.ScatterRow))
	t.RawSetString("dots_remaining", lua.LNumber(ctx.DotsRemaining))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua chase_target error", zap.Error(err), zap.String("ghost", ctx.Ghost))
		return grid.Cell{}, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return grid.Cell{}, false
	}

	return grid.Cell{
		Col: lInt(rt, "col"),
		Row: lInt(rt, "row"),
	}, true
}

// --- Lua helpers ---

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
