package loader

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/nathoo/dragonsrealm/types"
)

func TestLoad_MinimalGame(t *testing.T) {
	res, err := Load("testdata/minimal")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defs := res.Defs

	if defs.Game.Title != "Minimal Test Game" {
		t.Errorf("Title = %q, want %q", defs.Game.Title, "Minimal Test Game")
	}
	if defs.Game.Start != "hall" {
		t.Errorf("Start = %q, want %q", defs.Game.Start, "hall")
	}
	if defs.Rooms["hall"].Name != "A grand hall" {
		t.Errorf("hall name = %q", defs.Rooms["hall"].Name)
	}
	if defs.Player.Name != "Aventureiro" {
		t.Errorf("default player name = %q", defs.Player.Name)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestLoad_FullGame(t *testing.T) {
	res, err := Load("testdata/full")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defs := res.Defs

	if defs.Game.Author != "Tester" || defs.Game.Version != "0.1" || defs.Game.Gold != 100 {
		t.Errorf("game = %+v", defs.Game)
	}
	if defs.Player.Name != "Tess" || defs.Player.MaxHealth != 30 {
		t.Errorf("player = %+v", defs.Player)
	}

	if len(defs.Rooms) != 2 {
		t.Errorf("expected 2 rooms, got %d", len(defs.Rooms))
	}
	inn := defs.Rooms["inn"]
	if inn.Floor[3][5] != types.TileWall {
		t.Error("interior wall at (5, 3) missing")
	}
	if len(inn.Furniture) != 2 || len(inn.Portals) != 2 {
		t.Errorf("inn furniture=%d portals=%d", len(inn.Furniture), len(inn.Portals))
	}

	keepers := defs.NPCs["inn"]
	if len(keepers) != 1 || keepers[0].Name != "Keeper" || keepers[0].MaxHealth != 100 {
		t.Errorf("inn NPCs = %+v", keepers)
	}

	if len(defs.Items) != 2 {
		t.Errorf("items = %d, want 2", len(defs.Items))
	}
	if len(defs.Starting) != 1 || defs.Starting[0].ID != "ale" || defs.Starting[0].Quantity != 2 {
		t.Errorf("starting = %+v", defs.Starting)
	}
	if len(defs.Welcome) != 1 || defs.Welcome[0].From != "npc-keeper" {
		t.Errorf("welcome = %+v", defs.Welcome)
	}

	// The chimney sits on the wall ring.
	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %v, want 1", res.Warnings)
	}
	assertContains(t, res.Warnings, `portal "chimney"`)
}

func TestLoad_MissingDir_Fails(t *testing.T) {
	_, err := Load("testdata/does_not_exist")
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !strings.Contains(err.Error(), "reading world directory") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestLoad_BadLuaSyntax_Fails(t *testing.T) {
	_, err := Load("testdata/syntax_error")
	if err == nil {
		t.Fatal("expected error for bad Lua syntax")
	}
	if !strings.Contains(err.Error(), "game.lua") {
		t.Errorf("error = %q, expected file name", err.Error())
	}
}

func TestLoad_InvalidRefs_Fails(t *testing.T) {
	_, err := Load("testdata/invalid")
	if err == nil {
		t.Fatal("expected validation error")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	assertContains(t, ve.Errors, `undefined room "nowhere"`)
	assertContains(t, ve.Errors, `undefined room "attic"`)
	assertContains(t, ve.Errors, "not walkable")
	assertContains(t, ve.Errors, `sender "nobody"`)
}

func TestLoadFS_NoLuaFiles_Fails(t *testing.T) {
	fsys := fstest.MapFS{
		"world/README.md": {Data: []byte("nothing here")},
	}
	_, err := LoadFS(fsys, "world")
	if err == nil || !strings.Contains(err.Error(), "no .lua files") {
		t.Fatalf("err = %v, expected 'no .lua files'", err)
	}
}

func TestLoadFS_NoGameDef_Fails(t *testing.T) {
	fsys := fstest.MapFS{
		"w/rooms.lua": {Data: []byte(`Room "hall" { width = 4, height = 4 }`)},
	}
	_, err := LoadFS(fsys, "w")
	if err == nil {
		t.Fatal("expected error for missing Game{} definition")
	}
	if !strings.Contains(err.Error(), "no Game{} definition") {
		t.Errorf("error = %q, expected 'no Game{} definition'", err.Error())
	}
}

func TestLoadFS_RuntimeError_Fails(t *testing.T) {
	fsys := fstest.MapFS{
		"w/game.lua": {Data: []byte(`Game { title = "T", start = "hall" }
Room "x" (42)`)},
	}
	_, err := LoadFS(fsys, "w")
	if err == nil || !strings.Contains(err.Error(), "executing game.lua") {
		t.Fatalf("err = %v, expected 'executing game.lua'", err)
	}
}

func TestLoadFS_NegativeRoomSize_Fails(t *testing.T) {
	fsys := fstest.MapFS{
		"w/game.lua": {Data: []byte(`Game { title = "T", start = "a", start_position = { x = 2, y = 2 } }
Room "a" { width = 5, height = 5 }
Room "b" { width = -2, height = 4, walls = { {1, 1} } }`)},
	}
	_, err := LoadFS(fsys, "w")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	assertContains(t, ve.Errors, `room "b" is -2x4, minimum is 3x3`)
}

// Only top-level .lua files are read.
func TestLoadFS_FileOrdering(t *testing.T) {
	fsys := fstest.MapFS{
		"w/b.lua":     {Data: []byte(`Room "b" { width = 3, height = 3 }`)},
		"w/a.lua":     {Data: []byte(`Room "a" { width = 3, height = 3 }`)},
		"w/game.lua":  {Data: []byte(`Game { title = "T", start = "a", start_position = { x = 1, y = 1 } }`)},
		"w/skip.txt":  {Data: []byte(`not lua`)},
		"w/sub/x.lua": {Data: []byte(`error("subdirectories are not read")`)},
	}
	res, err := LoadFS(fsys, "w")
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if len(res.Defs.Rooms) != 2 {
		t.Errorf("rooms = %d, want 2", len(res.Defs.Rooms))
	}
}

func TestLoad_SandboxEnforced(t *testing.T) {
	L, _ := newTestVM()
	defer L.Close()

	for _, src := range []string{
		`os.execute("echo pwned")`,
		`io.open("/etc/passwd")`,
		`dofile("x.lua")`,
		`print("hi")`,
		`math.randomseed(1)`,
	} {
		if err := L.DoString(src); err == nil {
			t.Errorf("expected sandbox to block %s", src)
		}
	}
}
