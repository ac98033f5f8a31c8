package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		value  uint8
		start  uint8
		width  uint8
		expect uint8
	}){
		{0b1000_0000, 0, 1, 1},
		{0b0111_1111, 0, 1, 0},
		{0b0000_0001, 7, 1, 1},
		{0b1011_0110, 0, 2, 0b10},
		{0b1011_0110, 0, 4, 0b1011},
		{0b1011_0110, 4, 4, 0b0110},
		{0b1011_0110, 2, 2, 0b11},
		{0b1011_0110, 6, 2, 0b10},
		{0b1011_0110, 0, 8, 0b1011_0110},
		{0xff, 3, 0, 0},
	}

	for _, entry := range table {
		assert.Equal(entry.expect, Extract(entry.value, entry.start, entry.width),
			"extract(%08b, %d, %d)", entry.value, entry.start, entry.width)
	}

	assert.Panics(func() { Extract(0, 6, 3) })
}

func TestCodeMake(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		code   Code
		expect uint8
	}){
		{"movl", MakeCodeMove(MOVE_LOW, 1, 0x3), 0b00_01_0011},
		{"movh", MakeCodeMove(MOVE_HIGH, 3, 0xf), 0b01_11_1111},
		{"load", MakeCodeLoad(0), 0b1000_00_00},
		{"store", MakeCodeStore(2), 0b1001_00_10},
		{"b.ge", MakeCodeBranch(COND_GE, 1), 0b1010_11_01},
		{"b", MakeCodeBranch(COND_ALWAYS, 3), 0b1010_00_11},
		{"add", MakeCodeAlu(ALU_OP_ADD, 0, 0), 0b11_00_00_00},
		{"or", MakeCodeAlu(ALU_OP_OR, 2, 1), 0b11_11_10_01},
	}

	for _, entry := range table {
		assert.Equal(entry.expect, uint8(entry.code), entry.name)
	}
}

func TestCodeDecode(t *testing.T) {
	assert := assert.New(t)

	mode, reg, imm := Code(0b01_10_1001).MoveDecode()
	assert.Equal(MOVE_HIGH, mode)
	assert.Equal(uint8(2), reg)
	assert.Equal(uint8(9), imm)

	cond, reg := Code(0b1010_10_11).BranchDecode()
	assert.Equal(COND_NE, cond)
	assert.Equal(uint8(3), reg)

	op, operand, dst := Code(0b11_01_11_10).AluDecode()
	assert.Equal(ALU_OP_SUB, op)
	assert.Equal(uint8(3), operand)
	assert.Equal(uint8(2), dst)

	assert.Equal(uint8(0b10), Code(0b1001_0001).Prefix())
	assert.Equal(uint8(0b1001), Code(0b1001_0001).ExtendedPrefix())
	assert.Equal(uint8(1), Code(0b1001_0001).RegisterDecode())

	assert.Equal("0b10010001", Code(0b1001_0001).String())
}

func TestEnumString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("movl", MOVE_LOW.String())
	assert.Equal("movh", MOVE_HIGH.String())
	assert.Equal("b", COND_ALWAYS.String())
	assert.Equal("b.ge", COND_GE.String())
	assert.Equal("sub", ALU_OP_SUB.String())
	assert.Equal("or", ALU_OP_OR.String())
	assert.Equal("trap", ADDRESS_TRAP.String())
	assert.Equal("AluOp(9)", AluOp(9).String())
}
