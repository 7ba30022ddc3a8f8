package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/l1jgo/simcore/internal/progression"
)

// Engine wraps a single gopher-lua VM for balance scripts.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// scriptDirs are loaded in order; later files may override earlier globals.
var scriptDirs = []string{"core", "balance"}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	for _, sub := range scriptDirs {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			e.vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// NewEngineFromString builds an engine from inline source.
func NewEngineFromString(src string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.vm.DoString(src); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load inline script: %w", err)
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

// Has reports whether a global function is defined.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// Multiplier calls Lua exp_reward_multiplier(diff). Without the function, or
// when it fails, the built-in table answers. Implements progression.MultiplierTable.
func (e *Engine) Multiplier(diff int) float64 {
	v, ok := e.callNumberFunc("exp_reward_multiplier", diff)
	if !ok {
		return progression.DefaultMultipliers{}.Multiplier(diff)
	}
	if v < 0 {
		return 0
	}
	return v
}

// RegenContext holds data for a regen tick.
type RegenContext struct {
	Level        int
	Constitution int
	Intellect    int
	BaseHP       int // configured per-second amounts
	BaseMP       int
}

// RegenResult is returned by the Lua regen function.
type RegenResult struct {
	HP int
	MP int
}

// CalcRegen calls Lua calc_regen(ctx). Falls back to the configured amounts.
func (e *Engine) CalcRegen(ctx RegenContext) RegenResult {
	fallback := RegenResult{HP: ctx.BaseHP, MP: ctx.BaseMP}
	fn, ok := e.vm.GetGlobal("calc_regen").(*lua.LFunction)
	if !ok {
		return fallback
	}

	t := e.vm.NewTable()
	t.RawSetString("level", lua.LNumber(ctx.Level))
	t.RawSetString("con", lua.LNumber(ctx.Constitution))
	t.RawSetString("int", lua.LNumber(ctx.Intellect))
	t.RawSetString("base_hp", lua.LNumber(ctx.BaseHP))
	t.RawSetString("base_mp", lua.LNumber(ctx.BaseMP))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_regen error", zap.Error(err))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return fallback
	}
	return RegenResult{HP: lInt(rt, "hp"), MP: lInt(rt, "mp")}
}

// --- Lua helpers ---

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// callNumberFunc calls a Lua function with int args and returns its number
// result. ok is false when the function is missing or errors.
func (e *Engine) callNumberFunc(name string, args ...int) (float64, bool) {
	fn, isFn := e.vm.GetGlobal(name).(*lua.LFunction)
	if !isFn {
		return 0, false
	}

	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = lua.LNumber(a)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, isNum := result.(lua.LNumber)
	if !isNum {
		e.log.Error("lua function returned non-number", zap.String("func", name))
		return 0, false
	}
	return float64(n), true
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
