// Package config handles TOML run profiles for the intcode command.
//
//	[program]
//	path = "day09.txt"
//
//	[run]
//	mode = "run"
//	inputs = [2]
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/intcode/asm"
	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/emulator"
)

const (
	MODE_RUN     = "run"     // Batch run with fixed inputs.
	MODE_ASCII   = "ascii"   // Interactive console.
	MODE_RING    = "ring"    // Feedback ring with fixed phases.
	MODE_MAX     = "max"     // Feedback ring phase search.
	MODE_NETWORK = "network" // Packet network.
)

var _modes = []string{MODE_RUN, MODE_ASCII, MODE_RING, MODE_MAX, MODE_NETWORK}

// Profile is a complete run profile.
type Profile struct {
	Program Program `toml:"program"`
	Run     Run     `toml:"run"`
	Ring    Ring    `toml:"ring"`
	Network Network `toml:"network"`
	Console Console `toml:"console"`

	// Dir is the directory containing the profile (set at load time).
	// Relative paths in the profile are relative to Dir.
	Dir string `toml:"-"`
}

// Program selects the program to run. Exactly one field may be set.
type Program struct {
	Path   string `toml:"path"`   // Comma separated program text file.
	Source string `toml:"source"` // Assembler source file.
	Text   string `toml:"text"`   // Inline program text.
}

// Run configures the batch run.
type Run struct {
	Mode    string  `toml:"mode"`
	Inputs  []int64 `toml:"inputs"`
	Verbose bool    `toml:"verbose"`
	Dump    bool    `toml:"dump"` // Print the final memory.
}

// Ring configures the feedback ring, and the phase search.
type Ring struct {
	Phases []int64 `toml:"phases"`
}

// Network configures the packet network.
type Network struct {
	Size    int   `toml:"size"`
	Monitor int64 `toml:"monitor"`
	Idle    int   `toml:"idle"`
	Limit   int   `toml:"limit"`
}

// Console configures the interactive console.
type Console struct {
	Script   string   `toml:"script"`   // File of commands fed before the terminal.
	Commands []string `toml:"commands"` // Commands fed after the script file.
	Echo     bool     `toml:"echo"`
}

// Default returns a profile with all defaults applied.
func Default() (profile *Profile) {
	profile = &Profile{}
	profile.defaults()

	return
}

// defaults fills in unset values.
func (profile *Profile) defaults() {
	if len(profile.Run.Mode) == 0 {
		profile.Run.Mode = MODE_RUN
	}
	if profile.Network.Size == 0 {
		profile.Network.Size = emulator.NETWORK_SIZE
	}
	if profile.Network.Monitor == 0 {
		profile.Network.Monitor = emulator.NETWORK_MONITOR
	}
	if profile.Network.Idle == 0 {
		profile.Network.Idle = emulator.NETWORK_IDLE
	}
}

// Validate checks the profile for consistency.
func (profile *Profile) Validate() (err error) {
	if !slices.Contains(_modes, profile.Run.Mode) {
		err = ErrMode
		return
	}

	network := &profile.Network
	switch {
	case network.Size <= 0:
		err = ErrNetworkSize
	case network.Monitor >= 0 && network.Monitor < int64(network.Size):
		err = ErrNetworkMonitor
	case network.Idle <= 0:
		err = ErrNetworkIdle
	case network.Limit < 0:
		err = ErrNetworkLimit
	}

	return
}

// Parse decodes a profile, and applies defaults.
func Parse(data []byte) (profile *Profile, err error) {
	profile = &Profile{}

	md, err := toml.Decode(string(data), profile)
	if err != nil {
		profile = nil
		return
	}

	undecoded := md.Undecoded()
	if len(undecoded) > 0 {
		err = ErrUnknownKey(undecoded[0].String())
		profile = nil
		return
	}

	profile.defaults()

	err = profile.Validate()
	if err != nil {
		profile = nil
		return
	}

	return
}

// Load reads and parses the profile at path.
func Load(path string) (profile *Profile, err error) {
	defer func() {
		if err != nil {
			err = &ErrProfile{Path: path, Err: err}
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	profile, err = Parse(data)
	if err != nil {
		return
	}

	profile.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		profile = nil
		return
	}

	return
}

// Path resolves a profile relative path.
func (profile *Profile) Path(name string) string {
	if len(name) == 0 || filepath.IsAbs(name) || len(profile.Dir) == 0 {
		return name
	}

	return filepath.Join(profile.Dir, name)
}

// LoadProgram loads the selected program. If the program is assembled, the
// assembler state is also returned, for source line diagnostics.
func (profile *Profile) LoadProgram(verbose bool) (prog cpu.Program, listing *asm.Assembler, err error) {
	program := &profile.Program

	count := 0
	for _, item := range []string{program.Path, program.Source, program.Text} {
		if len(item) > 0 {
			count++
		}
	}

	switch {
	case count == 0:
		err = ErrNoProgram
		return
	case count > 1:
		err = ErrProgramConflict
		return
	}

	switch {
	case len(program.Text) > 0:
		prog, err = cpu.ParseProgram(program.Text)
	case len(program.Path) > 0:
		var file *os.File
		file, err = os.Open(profile.Path(program.Path))
		if err != nil {
			return
		}
		defer file.Close()
		prog, err = cpu.ReadProgram(file)
	default:
		var file *os.File
		file, err = os.Open(profile.Path(program.Source))
		if err != nil {
			return
		}
		defer file.Close()

		listing = &asm.Assembler{Verbose: verbose}
		for key, value := range emulator.Defines() {
			listing.Predefine(key, value)
		}
		prog, err = listing.Parse(file)
		if err != nil {
			listing = nil
		}
	}

	return
}

// Script returns the console script: the script file contents, followed by
// the commands, one per line.
func (profile *Profile) Script() (script string, err error) {
	console := &profile.Console

	if len(console.Script) > 0 {
		var data []byte
		data, err = os.ReadFile(profile.Path(console.Script))
		if err != nil {
			return
		}
		script = string(data)
		if len(script) > 0 && !strings.HasSuffix(script, "\n") {
			script += "\n"
		}
	}

	for _, command := range console.Commands {
		script += command + "\n"
	}

	return
}
