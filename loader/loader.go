package loader

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/triggerforge/engine/state"
	"github.com/nathoo/triggerforge/errors"
	"github.com/nathoo/triggerforge/logging"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	holders []rawHolder
	actors  []rawActor
	grants  []rawGrant
	order   int
}

func (c *collector) nextSourceOrder() int {
	c.order++
	return c.order
}

// Load reads all .lua files from dir, compiles them into holder, actor and
// grant definitions, validates them, and returns the immutable Defs. The Lua
// VM is discarded after loading.
func Load(dir string) (*state.Defs, error) {
	log := logging.GetLogger("loader")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrContentLoad, "reading content directory %s", dir)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, errors.Newf(errors.ErrContentLoad, "no .lua files found in %s", dir)
	}
	sort.Strings(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		path := filepath.Join(dir, f)
		if err := L.DoFile(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrContentLoad, "executing %s", f)
		}
		log.Debug().Str("file", f).Msg("Executed content file")
	}

	defs, err := compile(coll)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrContentInvalid, "compiling content")
	}

	if err := validate(defs); err != nil {
		return nil, err
	}

	log.Info().
		Str("dir", dir).
		Int("files", len(luaFiles)).
		Int("holders", len(defs.Holders)).
		Int("actors", len(defs.Actors)).
		Int("grants", len(defs.Grants)).
		Msg("Content loaded")
	return defs, nil
}

// openSafeLibs opens the base, table, string and math libraries. os, io,
// package and debug stay closed.
func openSafeLibs(L *lua.LState) {
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
}

// Globals content may not reach: file loading, raw table access and GC.
var blockedGlobals = []string{
	"dofile", "loadfile", "load", "loadstring",
	"rawset", "rawget", "rawequal",
	"collectgarbage",
}

// sandbox strips blockedGlobals, removes math.random and math.randomseed so
// the same files always compile to the same definitions, and routes print
// to the log.
func sandbox(L *lua.LState) {
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("random", lua.LNil)
		tbl.RawSetString("randomseed", lua.LNil)
	}

	L.SetGlobal("print", L.NewFunction(luaPrint))
}

func luaPrint(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	log := logging.GetLogger("content")
	log.Info().Msg(strings.Join(parts, "\t"))
	return 0
}
