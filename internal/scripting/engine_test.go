package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gridmunch/server/internal/grid"
	"go.uber.org/zap"
)

const testChaseLua = `
function chase_target(ctx)
    if ctx.ghost == "ambusher" then
        return {col = ctx.player.col + ctx.player.dir_x * 4,
                row = ctx.player.row + ctx.player.dir_y * 4}
    end
    return {col = ctx.player.col, row = ctx.player.row}
end
`

func newTestEngine(t *testing.T, script string) *Engine {
	t.Helper()
	dir := t.TempDir()
	if script != "" {
		if err := os.WriteFile(filepath.Join(dir, "chase.lua"), []byte(script), 0o644); err != nil {
			t.Fatalf("write script: %v", err)
		}
	}
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestChaseTargetPersonalities(t *testing.T) {
	e := newTestEngine(t, testChaseLua)

	ctx := ChaseContext{
		Ghost:      "ambusher",
		PlayerCol:  10,
		PlayerRow:  12,
		PlayerDirX: 0,
		PlayerDirY: -1,
	}
	got, ok := e.ChaseTarget(ctx)
	if !ok {
		t.Fatal("ChaseTarget declined to decide")
	}
	if want := (grid.Cell{Col: 10, Row: 8}); got != want {
		t.Errorf("ambusher target = %+v, want %+v", got, want)
	}

	ctx.Ghost = "other"
	got, ok = e.ChaseTarget(ctx)
	if !ok {
		t.Fatal("ChaseTarget declined to decide")
	}
	if want := (grid.Cell{Col: 10, Row: 12}); got != want {
		t.Errorf("default target = %+v, want player cell %+v", got, want)
	}
}

func TestChaseTargetMissingFunction(t *testing.T) {
	e := newTestEngine(t, "")
	if _, ok := e.ChaseTarget(ChaseContext{Ghost: "shadow"}); ok {
		t.Error("ChaseTarget decided with no script loaded")
	}
}

func TestChaseTargetBrokenScriptFallsBack(t *testing.T) {
	e := newTestEngine(t, `function chase_target(ctx) error("boom") end`)
	if _, ok := e.ChaseTarget(ChaseContext{Ghost: "shadow"}); ok {
		t.Error("ChaseTarget decided despite a script error")
	}
}

func TestNewEngineRejectsBadScript(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.lua"), []byte("this is not lua ("), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Error("NewEngine accepted a broken script")
	}
}
