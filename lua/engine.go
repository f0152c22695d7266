package lua

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dictsrv/dictsrv/dict"
)

// Engine compiles Lua sources into matching strategies. Each compiled
// strategy owns a dedicated Lua state guarded by a mutex, since a
// single state is not safe for concurrent use across sessions.
type Engine struct {
	mu     sync.Mutex
	states []*lua.LState
}

// NewEngine creates a Lua strategy engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Compile parses a strategy script and returns the resulting strategy.
// The script must define a global function
//
//	function match(headword, query)
//	  return <boolean>
//	end
//
// and may set a global string "description" used by SHOW STRAT. The
// predicate receives the stored headword and the query verbatim; case
// folding is the script's own decision.
func (e *Engine) Compile(name, source string) (dict.Strategy, error) {
	L := lua.NewState()

	if err := L.DoString(source); err != nil {
		L.Close()
		return dict.Strategy{}, fmt.Errorf("strategy %s: %w", name, err)
	}

	fn, ok := L.GetGlobal("match").(*lua.LFunction)
	if !ok {
		L.Close()
		return dict.Strategy{}, fmt.Errorf("strategy %s: script defines no match function", name)
	}

	description := "Lua-defined strategy"
	if desc, ok := L.GetGlobal("description").(lua.LString); ok {
		description = string(desc)
	}

	e.mu.Lock()
	e.states = append(e.states, L)
	e.mu.Unlock()

	var callMu sync.Mutex
	predicate := func(headword, query string) bool {
		callMu.Lock()
		defer callMu.Unlock()

		err := L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, lua.LString(headword), lua.LString(query))
		if err != nil {
			// A failing predicate matches nothing.
			return false
		}
		ret := L.Get(-1)
		L.Pop(1)
		return lua.LVAsBool(ret)
	}

	return dict.Strategy{
		Name:        name,
		Description: description,
		Match:       predicate,
	}, nil
}

// LoadDir compiles every *.lua file in dir into a strategy named after
// its basename. Files are visited in directory listing order so the
// resulting strategy order is stable.
func (e *Engine) LoadDir(dir string) ([]dict.Strategy, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var strategies []dict.Strategy
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".lua") {
			continue
		}
		source, err := os.ReadFile(filepath.Join(dir, de.Name()))
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(de.Name(), ".lua")
		s, err := e.Compile(name, string(source))
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}
	return strategies, nil
}

// Close releases every Lua state owned by the engine. Strategies
// compiled by the engine must not be used afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, L := range e.states {
		L.Close()
	}
	e.states = nil
}
