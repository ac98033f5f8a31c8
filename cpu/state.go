package cpu

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"
	"strings"
)

const (
	BITNESS        = 8  // Bits in a register, memory cell and opcode.
	REGISTER_COUNT = 4  // General purpose registers.
	MEMORY_SIZE    = 10 // Bytes of program and data memory.
)

var _cpu_defines = map[string]string{
	"BITNESS":        fmt.Sprintf("%d", BITNESS),
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
	"MEMORY_SIZE":    fmt.Sprintf("%d", MEMORY_SIZE),
}

// Defines for the cpu
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// AddressMode is the policy for load and store addresses outside of memory.
type AddressMode int

//go:generate go tool stringer -linecomment -type=AddressMode
const (
	ADDRESS_WRAP = AddressMode(0) // wrap
	ADDRESS_TRAP = AddressMode(1) // trap
)

// ParseAddressMode parses the name of an addressing policy.
func ParseAddressMode(name string) (mode AddressMode, err error) {
	for _, mode = range []AddressMode{ADDRESS_WRAP, ADDRESS_TRAP} {
		if mode.String() == name {
			return
		}
	}

	mode = ADDRESS_WRAP
	err = fmt.Errorf("%w: %q", ErrAddressMode, name)
	return
}

// State is the architectural state of the machine.
type State struct {
	Memory   [MEMORY_SIZE]uint8    // Program and data memory.
	Register [REGISTER_COUNT]uint8 // Register bank.
	Pc       uint8                 // Program counter.
	Zero     bool                  // Zero flag, set by the ALU.
	Sign     bool                  // Sign flag, set by the ALU.

	// Addressing decides how Load and Store treat addresses at or
	// beyond MEMORY_SIZE.
	Addressing AddressMode
}

// Reset clears memory, registers, program counter and flags.
// The addressing policy is kept.
func (st *State) Reset() {
	clear(st.Memory[:])
	clear(st.Register[:])
	st.Pc = 0
	st.Zero = false
	st.Sign = false
}

// LoadProgram copies a program image into memory starting at address 0.
// A short image leaves the remaining memory zeroed; a long one is
// truncated to MEMORY_SIZE bytes.
func (st *State) LoadProgram(input io.Reader) (n int, err error) {
	clear(st.Memory[:])

	n, err = io.ReadFull(input, st.Memory[:])
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = nil
	}

	return
}

// Halted returns true once the program counter has left memory.
func (st *State) Halted() bool {
	return int(st.Pc) >= MEMORY_SIZE
}

// Fetch returns the opcode at the program counter.
func (st *State) Fetch() (code Code, err error) {
	if st.Halted() {
		err = ErrHalted
		return
	}

	code = Code(st.Memory[st.Pc])
	return
}

// address applies the addressing policy to a memory address.
func (st *State) address(addr uint8) (index int, err error) {
	index = int(addr)
	if index < MEMORY_SIZE {
		return
	}

	switch st.Addressing {
	case ADDRESS_TRAP:
		err = ErrAddress(addr)
	default:
		index %= MEMORY_SIZE
	}

	return
}

// GetMemory reads the memory cell at addr.
func (st *State) GetMemory(addr uint8) (value uint8, err error) {
	index, err := st.address(addr)
	if err != nil {
		return
	}

	value = st.Memory[index]
	return
}

// SetMemory writes the memory cell at addr.
func (st *State) SetMemory(addr uint8, value uint8) (err error) {
	index, err := st.address(addr)
	if err != nil {
		return
	}

	st.Memory[index] = value
	return
}

// String returns the machine state as a string.
func (st *State) String() string {
	var text strings.Builder

	fmt.Fprintf(&text, "% 5s: %d\n", "pc", st.Pc)
	fmt.Fprintf(&text, "% 5s: %v\n", "zero", st.Zero)
	fmt.Fprintf(&text, "% 5s: %v\n", "sign", st.Sign)
	for n, reg := range st.Register {
		fmt.Fprintf(&text, "% 5s: 0x%02X\n", fmt.Sprintf("r%d", n), reg)
	}
	for n, cell := range st.Memory {
		fmt.Fprintf(&text, "% 5d: %08b\n", n, cell)
	}

	return text.String()
}
