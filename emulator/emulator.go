// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/ezrec/nibble/cpu"
	"github.com/ezrec/nibble/debugger"
	"github.com/ezrec/nibble/sink"
)

// Config is the run configuration, parsed once and read many times.
type Config struct {
	Program    string          // Path of the program binary.
	Debug      bool            // If set, pause in the debug console before every instruction.
	Log        bool            // If set, trace each executed instruction to Output.
	Addressing cpu.AddressMode // Out of range Load and Store policy.

	Input  io.Reader // Debug console input, os.Stdin if nil.
	Output io.Writer // Debug console and trace output, os.Stdout if nil.

	Exit func(code int) // Debug console quit, atexit.Exit if nil.
}

// Emulator state. CPU + program listing + debug console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Console *debugger.Console // Debug console, nil unless Config.Debug is set.
	Config  Config            // Configuration the emulator was built with.
}

// NewEmulator creates a new emulator.
func NewEmulator(config Config) (emu *Emulator) {
	output := config.Output
	if output == nil {
		output = os.Stdout
	}

	var pauser cpu.Pauser
	var console *debugger.Console
	if config.Debug {
		console = debugger.NewConsole(config.Input, output)
		if config.Exit != nil {
			console.Exit = config.Exit
		}
		pauser = console
	}

	emu = &Emulator{
		Cpu:     cpu.NewCpu(cpu.NewDecoder(pauser), sink.New(output, config.Log)),
		Program: &cpu.Program{},
		Console: console,
		Config:  config,
	}

	emu.Cpu.Addressing = config.Addressing

	return
}

// Reset the machine state, keeping the loaded program listing.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
}

// Load resets the machine and loads a raw program image.
func (emu *Emulator) Load(input io.Reader) (err error) {
	emu.Reset()
	emu.Program = &cpu.Program{}

	_, err = emu.Cpu.LoadProgram(input)
	return
}

// LoadFile resets the machine and loads a raw program image from a file.
func (emu *Emulator) LoadFile(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return emu.Load(inf)
}

// LoadProgram resets the machine and loads an assembled program.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	bin := prog.Binary()
	if len(bin) > cpu.MEMORY_SIZE {
		err = cpu.ErrProgramSize
		return
	}

	emu.Reset()
	emu.Program = prog

	_, err = emu.Cpu.LoadProgram(bytes.NewReader(bin))
	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	code, _ := emu.Cpu.Fetch()
	return code
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	lst := emu.Program.Listing(emu.Cpu.Pc)
	if lst.Opcode == nil {
		return 0
	}

	return lst.LineNo
}

// Tick performs a single tick of the emulator.
// Returns done once the program has halted or the debug console quit.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc, code, lineno := emu.Cpu.Pc, emu.Code(), emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Code: code, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalted) || errors.Is(err, debugger.ErrQuit) {
		err = nil
		done = true
	}

	return
}

// Run ticks the emulator until it is done, or an error occurs.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
