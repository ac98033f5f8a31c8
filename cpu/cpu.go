package cpu

import (
	"fmt"
	"log"
)

// Sink receives human-readable trace lines from executing instructions.
type Sink interface {
	Emit(text string)
}

// Pauser is consulted before a Debug wrapped instruction executes.
type Pauser interface {
	Pause(st *State, inst Instruction) error
}

// Cpu is the simulation context for the nibble processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	State // Architectural state.

	Decoder *Decoder // Opcode decoder.
	Sink    Sink     // Diagnostic sink, may be nil.

	Ticks int // Executed instruction counter.
}

// NewCpu creates a new CPU.
func NewCpu(decoder *Decoder, sink Sink) (cpu *Cpu) {
	if decoder == nil {
		decoder = NewDecoder(nil)
	}

	cpu = &Cpu{
		Decoder: decoder,
		Sink:    sink,
	}

	return
}

// Reset the CPU state, keeping the addressing policy.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.State.Reset()
	cpu.Ticks = 0
}

func (cpu *Cpu) emit(inst Instruction) {
	if cpu.Sink == nil {
		return
	}

	cpu.Sink.Emit(fmt.Sprintf("%02d: %v", cpu.Pc, inst))
}

// Tick executes a single fetch, decode and execute cycle.
// Returns ErrHalted once the program counter has left memory.
func (cpu *Cpu) Tick() (err error) {
	code, err := cpu.Fetch()
	if err != nil {
		return
	}

	inst, err := cpu.Decoder.Decode(code)
	if err != nil {
		return
	}

	jumped, err := cpu.Execute(inst)
	if err != nil {
		return
	}

	if !jumped {
		cpu.Pc++
	}
	cpu.Ticks++

	return
}

// Execute executes a single decoded instruction. Returns true if the
// instruction redirected the program counter.
func (cpu *Cpu) Execute(inst Instruction) (jumped bool, err error) {
	if cpu.Verbose {
		log.Printf("%02d: %v %v", cpu.Pc, inst.Code(), inst)
	}

	switch in := inst.(type) {
	case Debug:
		err = in.Pauser.Pause(&cpu.State, in.Instruction)
		if err != nil {
			return
		}
		return cpu.Execute(in.Instruction)
	case Move:
		cpu.emit(in)
		reg := in.Register % REGISTER_COUNT
		prior := cpu.Register[reg]
		switch in.Mode {
		case MOVE_LOW:
			cpu.Register[reg] = (Extract(prior, 0, 4) << 4) | (in.Immediate & 0xf)
		case MOVE_HIGH:
			cpu.Register[reg] = Extract(prior, 4, 4) | ((in.Immediate & 0xf) << 4)
		default:
			err = ErrInstructionInvalid
		}
	case Load:
		cpu.emit(in)
		reg := in.Register % REGISTER_COUNT
		var value uint8
		value, err = cpu.GetMemory(cpu.Register[reg])
		if err != nil {
			return
		}
		cpu.Register[reg] = value
	case Store:
		cpu.emit(in)
		reg := in.Register % REGISTER_COUNT
		err = cpu.SetMemory(cpu.Register[0], cpu.Register[reg])
	case Branch:
		cpu.emit(in)
		target := cpu.Register[in.Register%REGISTER_COUNT]
		var taken bool
		switch in.Cond {
		case COND_ALWAYS:
			taken = true
		case COND_EQ:
			taken = cpu.Zero
		case COND_NE:
			taken = !cpu.Zero
		case COND_GE:
			taken = !cpu.Sign
		default:
			err = ErrInstructionInvalid
			return
		}
		if taken {
			cpu.Pc = target
			jumped = true
		}
	case Alu:
		cpu.emit(in)
		dst := in.Dest % REGISTER_COUNT
		input := cpu.Register[dst]
		value := cpu.Register[in.Operand%REGISTER_COUNT]
		var output uint8
		output, err = doAlu(in.Op, input, value)
		if err != nil {
			return
		}
		cpu.Zero = output == 0
		cpu.Sign = Extract(output, 0, 1) == 1
		cpu.Register[dst] = output
	default:
		err = ErrInstructionInvalid
	}

	return
}

// doAlu performs the requested ALU action, and returns the output value.
func doAlu(op AluOp, input uint8, value uint8) (output uint8, err error) {
	switch op {
	case ALU_OP_ADD:
		output = input + value
	case ALU_OP_SUB:
		output = input - value
	case ALU_OP_AND:
		output = input & value
	case ALU_OP_OR:
		output = input | value
	default:
		err = ErrInstructionInvalid
	}

	return
}
