package cpu

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzDecode(f *testing.F) {
	for opcode := range 256 {
		f.Add(uint8(opcode))
	}

	f.Fuzz(func(t *testing.T, opcode uint8) {
		assert := assert.New(t)

		dec := NewDecoder(nil)
		inst, err := dec.Decode(Code(opcode))
		if opcode>>4 == 0b1011 {
			assert.ErrorIs(err, ErrOpcodeDecode)
			assert.Nil(inst)
			return
		}

		assert.NoError(err)
		assert.Equal(Code(opcode), inst.Code())
	})
}

func FuzzCpu(f *testing.F) {
	for rv := range 0xf {
		f.Add(uint8(0), uint8(rv), rand.Uint64(), false)
		f.Add(uint8(0xff), uint8(rv<<4), rand.Uint64(), true)
	}

	f.Fuzz(func(t *testing.T, opcode uint8, pc uint8, seed uint64, trap bool) {
		assert := assert.New(t)

		cpu := NewCpu(nil, nil)
		if trap {
			cpu.Addressing = ADDRESS_TRAP
		}

		for n := range cpu.Memory {
			cpu.Memory[n] = uint8(seed >> (n * 6))
		}
		for n := range cpu.Register {
			cpu.Register[n] = uint8(seed >> (n * 16))
		}

		pc %= MEMORY_SIZE
		cpu.Pc = pc
		cpu.Memory[pc] = opcode

		registers := cpu.Register
		memory := cpu.Memory

		err := cpu.Tick()

		inst, derr := cpu.Decoder.Decode(Code(opcode))
		if derr != nil {
			assert.ErrorIs(err, ErrOpcodeDecode)
			assert.Equal(pc, cpu.Pc)
			assert.Equal(0, cpu.Ticks)
			return
		}

		var ea ErrAddress
		if errors.As(err, &ea) {
			assert.True(trap)
			assert.GreaterOrEqual(int(ea), MEMORY_SIZE)
			assert.Equal(pc, cpu.Pc)
			assert.Equal(registers, cpu.Register)
			assert.Equal(memory, cpu.Memory)
			return
		}

		assert.NoError(err)
		assert.Equal(1, cpu.Ticks)

		switch in := inst.(type) {
		case Branch:
			target := registers[in.Register]
			assert.True(cpu.Pc == target || cpu.Pc == pc+1, inst.String())
		case Store:
			assert.Equal(registers, cpu.Register)
			assert.Equal(pc+1, cpu.Pc)
		default:
			assert.Equal(memory, cpu.Memory, inst.String())
			assert.Equal(pc+1, cpu.Pc)
		}
	})
}
