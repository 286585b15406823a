// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/text/language"

	"github.com/ezrec/intcode/config"
	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/emulator"
	"github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/translate"
)

// parseList parses a comma separated list of integers.
func parseList(name string, text string) []int64 {
	values, err := cpu.ParseProgram(text)
	if err != nil {
		log.Fatalf("-%v: %v", name, err)
	}

	return values
}

func main() {
	var profilePath string
	var program string
	var source string
	var mode string
	var inputs string
	var script string
	var phases string
	var size int
	var idle int
	var limit int
	var echo bool
	var dump bool
	var verbose bool
	var lang string

	flag.StringVar(&profilePath, "c", "", ".toml run profile")
	flag.StringVar(&program, "p", "", "program text file")
	flag.StringVar(&source, "a", "", "assembler source file")
	flag.StringVar(&mode, "mode", config.MODE_RUN, "run, ascii, ring, max or network")
	flag.StringVar(&inputs, "i", "", "comma separated inputs (run)")
	flag.StringVar(&script, "s", "", "console script file (ascii)")
	flag.StringVar(&phases, "phases", "", "comma separated phases (ring, max)")
	flag.IntVar(&size, "size", emulator.NETWORK_SIZE, "network nodes (network)")
	flag.IntVar(&idle, "idle", emulator.NETWORK_IDLE, "empty reads before idle (network)")
	flag.IntVar(&limit, "limit", 0, "tick limit, 0 for none (network)")
	flag.BoolVar(&echo, "echo", false, "echo console script (ascii)")
	flag.BoolVar(&dump, "dump", false, "print final memory (run)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "lang", "", "message language, default from the locale")

	flag.Parse()

	log.SetPrefix("intcode: ")

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		tag, err := language.Parse(lang)
		if err != nil {
			log.Fatalf("-lang: %v", err)
		}
		translate.SetLanguage(tag)
	}

	profile := config.Default()
	if len(profilePath) != 0 {
		var err error
		profile, err = config.Load(profilePath)
		if err != nil {
			log.Fatal(err)
		}
	}

	// Flags override the profile.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "p":
			profile.Program = config.Program{Path: program}
		case "a":
			profile.Program = config.Program{Source: source}
		case "mode":
			profile.Run.Mode = mode
		case "i":
			profile.Run.Inputs = parseList(fl.Name, inputs)
		case "s":
			profile.Console.Script = script
		case "phases":
			profile.Ring.Phases = parseList(fl.Name, phases)
		case "size":
			profile.Network.Size = size
		case "idle":
			profile.Network.Idle = idle
		case "limit":
			profile.Network.Limit = limit
		case "echo":
			profile.Console.Echo = echo
		case "dump":
			profile.Run.Dump = dump
		case "v":
			profile.Run.Verbose = verbose
		}
	})

	err := profile.Validate()
	if err != nil {
		log.Fatal(err)
	}

	verbose = profile.Run.Verbose

	prog, listing, err := profile.LoadProgram(verbose)
	if err != nil {
		log.Fatal(err)
	}

	switch profile.Run.Mode {
	case config.MODE_RUN:
		vec := io.NewVector(profile.Run.Inputs...)
		emu := emulator.NewEmulator(prog, vec)
		emu.Listing = listing
		emu.Verbose = verbose

		err = emu.Run()
		for _, value := range vec.Outputs {
			fmt.Println(value)
		}
		if err != nil {
			log.Fatal(err)
		}

		if profile.Run.Dump {
			fmt.Println(cpu.Program(emu.Memory.Data()).String())
		}
	case config.MODE_ASCII:
		text, err := profile.Script()
		if err != nil {
			log.Fatal(err)
		}

		tape := &io.Tape{
			Reader: os.Stdin,
			Writer: os.Stdout,
			Script: text,
			Echo:   profile.Console.Echo,
		}
		emu := emulator.NewEmulator(prog, tape)
		emu.Listing = listing
		emu.Verbose = verbose

		err = emu.Run()
		if errors.Is(err, io.ErrTapeEnd) {
			log.Printf("%v", err)
			return
		}
		if err != nil {
			log.Fatal(err)
		}
	case config.MODE_RING:
		if len(profile.Ring.Phases) == 0 {
			log.Fatal(emulator.ErrPhases)
		}

		ring := emulator.NewRing(prog, profile.Ring.Phases)
		ring.Verbose = verbose
		signal, err := ring.Run()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(signal)
	case config.MODE_MAX:
		best, order, err := emulator.MaxSignal(prog, profile.Ring.Phases)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(best, cpu.Program(order).String())
	case config.MODE_NETWORK:
		net := emulator.NewNetwork(prog, profile.Network.Size)
		net.Monitor = profile.Network.Monitor
		net.Idle = profile.Network.Idle
		net.Limit = profile.Network.Limit
		net.Verbose = verbose

		result, err := net.Run()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(result.FirstY)
		fmt.Println(result.RepeatedY)
	}
}
