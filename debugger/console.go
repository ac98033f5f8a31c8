// Package debugger implements the interactive single-step console.
package debugger

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/ezrec/nibble/cpu"
	"github.com/ezrec/nibble/translate"
)

// PROMPT is printed before each command is read.
const PROMPT = "#> "

// command handles one console command. Returns true when control is
// released back to the executing instruction.
type command struct {
	help    string
	indexed bool // Accepts an optional numeric argument.
	handler func(con *Console, st *cpu.State, inst cpu.Instruction, arg int, has_arg bool) (release bool, err error)
}

var commands = map[string]command{}

func init() {
	commands["help"] = command{
		help:    "print help message",
		handler: (*Console).doHelp,
	}
	commands["next"] = command{
		help:    "next instruction",
		handler: (*Console).doNext,
	}
	commands["step"] = commands["next"]
	commands["regs"] = command{
		help:    "print Rn register",
		indexed: true,
		handler: (*Console).doRegs,
	}
	commands["memo"] = command{
		help:    "print memory at addr",
		indexed: true,
		handler: (*Console).doMemo,
	}
	commands["instr"] = command{
		help:    "print current instruction",
		handler: (*Console).doInstr,
	}
	commands["quit"] = command{
		help:    "quit",
		handler: (*Console).doQuit,
	}
}

// Console is a line oriented debug console that pauses before every
// instruction.
type Console struct {
	Input  *bufio.Scanner // Command input.
	Output io.Writer      // Command output.
	Prompt bool           // If set, print PROMPT before reading a command.

	Exit func(code int) // Process exit, atexit.Exit by default.
}

// NewConsole creates a console reading commands from input.
func NewConsole(input io.Reader, output io.Writer) (con *Console) {
	if input == nil {
		input = os.Stdin
	}
	if output == nil {
		output = os.Stdout
	}

	con = &Console{
		Input:  bufio.NewScanner(input),
		Output: output,
		Prompt: true,
		Exit:   atexit.Exit,
	}

	return
}

// Pause reads and runs commands until one releases control.
// Returns ErrQuit on quit or end of input.
func (con *Console) Pause(st *cpu.State, inst cpu.Instruction) (err error) {
	for {
		if con.Prompt {
			translate.Fprintf(con.Output, PROMPT)
		}

		if !con.Input.Scan() {
			translate.Fprintf(con.Output, "\n")
			return con.quit()
		}

		name, arg, has_arg := parse(con.Input.Text())
		cmd, ok := commands[name]
		if !ok || (has_arg && !cmd.indexed) {
			continue
		}

		var release bool
		release, err = cmd.handler(con, st, inst, arg, has_arg)
		if err != nil || release {
			return
		}
	}
}

// parse splits a command line into the command name and optional index.
// An unparseable index yields an unknown command.
func parse(line string) (name string, arg int, has_arg bool) {
	name, text, has_arg := strings.Cut(strings.TrimSpace(line), " ")
	if !has_arg {
		return
	}

	arg, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || arg < 0 {
		name = ""
	}

	return
}

func (con *Console) quit() error {
	translate.Fprintf(con.Output, "quit...\n")
	if con.Exit != nil {
		con.Exit(0)
	}

	return ErrQuit
}

func (con *Console) doHelp(st *cpu.State, inst cpu.Instruction, arg int, has_arg bool) (release bool, err error) {
	translate.Fprintf(con.Output, "Commands:\n")

	for _, name := range slices.Sorted(maps.Keys(commands)) {
		translate.Fprintf(con.Output, "\t%v - %v\n", name, f(commands[name].help))
	}

	return
}

func (con *Console) doNext(st *cpu.State, inst cpu.Instruction, arg int, has_arg bool) (release bool, err error) {
	release = true
	return
}

func (con *Console) doRegs(st *cpu.State, inst cpu.Instruction, arg int, has_arg bool) (release bool, err error) {
	if has_arg {
		if arg >= cpu.REGISTER_COUNT {
			translate.Fprintf(con.Output, "no register %d\n", arg)
			return
		}
		translate.Fprintf(con.Output, "R%d=%d;\n", arg, st.Register[arg])
		return
	}

	for n, reg := range st.Register {
		translate.Fprintf(con.Output, "R%d=%d; ", n, reg)
	}
	translate.Fprintf(con.Output, "\n")

	return
}

func (con *Console) doMemo(st *cpu.State, inst cpu.Instruction, arg int, has_arg bool) (release bool, err error) {
	if has_arg {
		if arg > 0xff {
			translate.Fprintf(con.Output, "no address %d\n", arg)
			return
		}
		value, merr := st.GetMemory(uint8(arg))
		if merr != nil {
			translate.Fprintf(con.Output, "%v\n", merr)
			return
		}
		translate.Fprintf(con.Output, "%d: %v\n", arg, bits(value))
		return
	}

	for n, cell := range st.Memory {
		translate.Fprintf(con.Output, "%d: %v\n", n, bits(cell))
	}

	return
}

func (con *Console) doInstr(st *cpu.State, inst cpu.Instruction, arg int, has_arg bool) (release bool, err error) {
	code, ferr := st.Fetch()
	if ferr != nil {
		translate.Fprintf(con.Output, "%v\n", ferr)
		return
	}

	translate.Fprintf(con.Output, "%d: %v %v\n", st.Pc, bits(uint8(code)), inst)
	return
}

func (con *Console) doQuit(st *cpu.State, inst cpu.Instruction, arg int, has_arg bool) (release bool, err error) {
	err = con.quit()
	return
}

func bits(value uint8) string {
	return fmt.Sprintf("%08b", value)
}
