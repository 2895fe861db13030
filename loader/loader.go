package loader

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/dragonsrealm/engine/state"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	game  *lua.LTable
	rooms []rawDef
	npcs  []rawDef
	items []rawDef
}

// LoadResult is a successfully loaded catalog plus any non-fatal warnings.
type LoadResult struct {
	Defs     *state.Defs
	Warnings []string
}

// Load reads all .lua files from dir. See LoadFS.
func Load(dir string) (*LoadResult, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("reading world directory %s: %w", dir, err)
	}
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS reads all .lua files from dir inside fsys, compiles them into the
// world catalog and validates it. The Lua VM is discarded after loading.
func LoadFS(fsys fs.FS, dir string) (*LoadResult, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading world directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}

	// game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		data, err := fs.ReadFile(fsys, path.Join(dir, f))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		fn, err := L.Load(bytes.NewReader(data), f)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f, err)
		}
		L.Push(fn)
		if err := L.PCall(0, lua.MultRet, nil); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	defs, ve, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling world data: %w", err)
	}

	validate(defs, ve)
	if len(ve.Errors) > 0 {
		return nil, ve
	}
	return &LoadResult{Defs: defs, Warnings: ve.Warnings}, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	// Table library (table.insert, table.sort, etc.)
	lua.OpenTable(L)
	// String library (string.format, string.sub, etc.)
	lua.OpenString(L)
	// Math library (math.floor, math.max, etc.)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "print",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Remove math.randomseed to preserve determinism.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
