// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tebeka/atexit"

	"github.com/ezrec/nibble/cpu"
	"github.com/ezrec/nibble/emulator"
)

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %v [options] -f <program.bin> | -c <program.s>\n", os.Args[0])
	fmt.Fprintf(out, "Options:\n")
	flag.PrintDefaults()
}

func main() {
	var program string
	var compile string
	var output string
	var addressing string
	var debug bool
	var logging bool
	var verbose bool
	var help bool

	flag.StringVar(&program, "f", "", "Program binary to execute")
	flag.StringVar(&compile, "c", "", "Assembly source to compile and execute")
	flag.StringVar(&output, "o", "", "Save compiled binary, do not execute")
	flag.StringVar(&addressing, "a", cpu.ADDRESS_WRAP.String(), "Out of range address mode (wrap or trap)")
	flag.BoolVar(&debug, "d", false, "Enable debug mode")
	flag.BoolVar(&logging, "l", false, "Enable logging")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&help, "h", false, "Print help message")

	flag.Usage = usage
	flag.Parse()

	if help {
		usage()
		os.Exit(0)
	}

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if (len(program) == 0) == (len(compile) == 0) {
		usage()
		os.Exit(1)
	}

	mode, err := cpu.ParseAddressMode(addressing)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	prog := &cpu.Program{}

	// Compile a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		if len(output) != 0 {
			err = os.WriteFile(output, prog.Binary(), 0o644)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			return
		}
	}

	emu := emulator.NewEmulator(emulator.Config{
		Program:    program,
		Debug:      debug,
		Log:        logging,
		Addressing: mode,
		Input:      os.Stdin,
		Output:     os.Stdout,
	})
	emu.Verbose = verbose

	if emu.Console != nil {
		emu.Console.Prompt = isTerminal(os.Stdin)
	}

	if len(program) != 0 {
		err = emu.LoadFile(program)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
	} else {
		err = emu.LoadProgram(prog)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	if verbose {
		atexit.Register(func() {
			log.Printf("ticks: %d\n%v", emu.Ticks(), emu.Cpu.String())
		})
	}

	err = emu.Run()
	if err != nil {
		log.Print(err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
