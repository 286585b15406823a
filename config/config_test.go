package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/asm"
	"github.com/ezrec/intcode/cpu"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	profile := Default()
	assert.Equal(MODE_RUN, profile.Run.Mode)
	assert.Equal(50, profile.Network.Size)
	assert.Equal(int64(255), profile.Network.Monitor)
	assert.Equal(50, profile.Network.Idle)
	assert.Equal(0, profile.Network.Limit)
	assert.NoError(profile.Validate())
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	data := `
[program]
text = "3,0,4,0,99"

[run]
mode = "ring"
inputs = [1, -2, 3]
verbose = true

[ring]
phases = [9, 8, 7, 6, 5]

[network]
size = 10
idle = 4
limit = 1000

[console]
commands = ["north", "take mug"]
echo = true
`

	profile, err := Parse([]byte(data))
	assert.NoError(err)
	assert.Equal(MODE_RING, profile.Run.Mode)
	assert.Equal([]int64{1, -2, 3}, profile.Run.Inputs)
	assert.True(profile.Run.Verbose)
	assert.False(profile.Run.Dump)
	assert.Equal([]int64{9, 8, 7, 6, 5}, profile.Ring.Phases)
	assert.Equal(Network{Size: 10, Monitor: 255, Idle: 4, Limit: 1000}, profile.Network)
	assert.True(profile.Console.Echo)

	prog, listing, err := profile.LoadProgram(false)
	assert.NoError(err)
	assert.Nil(listing)
	assert.Equal(cpu.Program{3, 0, 4, 0, 99}, prog)

	script, err := profile.Script()
	assert.NoError(err)
	assert.Equal("north\ntake mug\n", script)
}

func TestParse_Errors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name string
		data string
		err  error
	}{
		{"mode", "[run]\nmode = \"fly\"", ErrMode},
		{"size", "[network]\nsize = -1", ErrNetworkSize},
		{"monitor", "[network]\nsize = 10\nmonitor = 3", ErrNetworkMonitor},
		{"idle", "[network]\nidle = -5", ErrNetworkIdle},
		{"limit", "[network]\nlimit = -5", ErrNetworkLimit},
	}

	for _, entry := range table {
		profile, err := Parse([]byte(entry.data))
		assert.Nil(profile, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)
	}

	_, err := Parse([]byte("[run]\nmoed = \"run\""))
	var unknown ErrUnknownKey
	if assert.True(errors.As(err, &unknown)) {
		assert.Equal(ErrUnknownKey("run.moed"), unknown)
	}

	_, err = Parse([]byte("[run\n"))
	assert.Error(err)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	write := func(name, text string) {
		assert.NoError(os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644))
	}

	write("echo.ica", "in [x]\nout [x]\nout #NETWORK_MONITOR\nhlt\nx: .data 0\n")
	write("moves.txt", "north\nsouth")
	write("profile.toml", `
[program]
source = "echo.ica"

[console]
script = "moves.txt"
commands = ["inv"]
`)

	profile, err := Load(filepath.Join(dir, "profile.toml"))
	assert.NoError(err)
	assert.Equal(dir, profile.Dir)
	assert.Equal(filepath.Join(dir, "echo.ica"), profile.Path("echo.ica"))
	assert.Equal("/abs/path", profile.Path("/abs/path"))

	prog, listing, err := profile.LoadProgram(false)
	assert.NoError(err)
	assert.Equal(cpu.Program{3, 7, 4, 7, 104, 255, 99, 0}, prog)
	if assert.NotNil(listing) {
		assert.Equal(int64(7), listing.Label["x"])
	}

	script, err := profile.Script()
	assert.NoError(err)
	assert.Equal("north\nsouth\ninv\n", script)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	var perr *ErrProfile
	if assert.True(errors.As(err, &perr)) {
		assert.Equal(filepath.Join(dir, "missing.toml"), perr.Path)
	}
	assert.ErrorIs(err, os.ErrNotExist)
}

func TestLoadProgram_Errors(t *testing.T) {
	assert := assert.New(t)

	profile := Default()
	_, _, err := profile.LoadProgram(false)
	assert.ErrorIs(err, ErrNoProgram)

	profile.Program = Program{Text: "99", Path: "x.txt"}
	_, _, err = profile.LoadProgram(false)
	assert.ErrorIs(err, ErrProgramConflict)

	profile.Program = Program{Text: "1,x"}
	_, _, err = profile.LoadProgram(false)
	var parse *cpu.ErrParse
	assert.True(errors.As(err, &parse))

	dir := t.TempDir()
	assert.NoError(os.WriteFile(filepath.Join(dir, "bad.ica"), []byte("nope\n"), 0o644))
	profile.Dir = dir
	profile.Program = Program{Source: "bad.ica"}
	_, listing, err := profile.LoadProgram(false)
	assert.Nil(listing)
	assert.ErrorIs(err, asm.ErrMnemonic)

	profile.Program = Program{Path: "missing.txt"}
	_, _, err = profile.LoadProgram(false)
	assert.ErrorIs(err, os.ErrNotExist)
}
