package debugger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/nibble/cpu"
)

func doConsole(input []string) (con *Console, output *bytes.Buffer, exits *[]int) {
	output = &bytes.Buffer{}
	codes := []int{}
	exits = &codes

	con = NewConsole(strings.NewReader(strings.Join(input, "\n")), output)
	con.Prompt = false
	con.Exit = func(code int) { *exits = append(*exits, code) }

	return
}

func testState() (st *cpu.State) {
	st = &cpu.State{}
	st.Register = [cpu.REGISTER_COUNT]uint8{1, 20, 3, 250}
	st.Memory[0] = 0b0000_1010
	st.Memory[1] = 0b1001_0001
	st.Memory[9] = 0xff
	st.Pc = 1
	return
}

func TestConsoleNext(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{"next", "step", "  next  "} {
		con, output, exits := doConsole([]string{name, "quit"})

		err := con.Pause(testState(), cpu.Store{Register: 1})
		assert.NoError(err, name)
		assert.Equal("", output.String(), name)
		assert.Empty(*exits, name)
	}
}

func TestConsolePrompt(t *testing.T) {
	assert := assert.New(t)

	con, output, _ := doConsole([]string{"next"})
	con.Prompt = true

	assert.NoError(con.Pause(testState(), cpu.Store{Register: 1}))
	assert.Equal(PROMPT, output.String())
}

func TestConsoleRegs(t *testing.T) {
	assert := assert.New(t)

	con, output, _ := doConsole([]string{"regs", "regs 3", "regs 7", "next"})

	assert.NoError(con.Pause(testState(), cpu.Store{Register: 1}))
	assert.Equal("R0=1; R1=20; R2=3; R3=250; \nR3=250;\nno register 7\n", output.String())
}

func TestConsoleMemo(t *testing.T) {
	assert := assert.New(t)

	con, output, _ := doConsole([]string{"memo 1", "memo 19", "next"})

	assert.NoError(con.Pause(testState(), cpu.Store{Register: 1}))
	assert.Equal("1: 10010001\n19: 11111111\n", output.String())

	con, output, _ = doConsole([]string{"memo", "next"})

	assert.NoError(con.Pause(testState(), cpu.Store{Register: 1}))
	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	assert.Equal(cpu.MEMORY_SIZE, len(lines))
	assert.Equal("0: 00001010", lines[0])
	assert.Equal("2: 00000000", lines[2])
	assert.Equal("9: 11111111", lines[9])
}

func TestConsoleMemoTrap(t *testing.T) {
	assert := assert.New(t)

	st := testState()
	st.Addressing = cpu.ADDRESS_TRAP

	con, output, _ := doConsole([]string{"memo 12", "next"})

	assert.NoError(con.Pause(st, cpu.Store{Register: 1}))
	assert.Equal(cpu.ErrAddress(12).Error()+"\n", output.String())
}

func TestConsoleInstr(t *testing.T) {
	assert := assert.New(t)

	con, output, _ := doConsole([]string{"instr", "next"})

	assert.NoError(con.Pause(testState(), cpu.Store{Register: 1}))
	assert.Equal("1: 10010001 store r1\n", output.String())
}

func TestConsoleHelp(t *testing.T) {
	assert := assert.New(t)

	con, output, _ := doConsole([]string{"help", "next"})

	assert.NoError(con.Pause(testState(), cpu.Store{Register: 1}))

	text := output.String()
	assert.True(strings.HasPrefix(text, "Commands:\n"))
	for name := range commands {
		assert.Contains(text, "\t"+name+" - ")
	}
}

func TestConsoleIgnored(t *testing.T) {
	assert := assert.New(t)

	con, output, exits := doConsole([]string{"", "bogus", "next 1", "regs x", "regs -1", "next"})

	assert.NoError(con.Pause(testState(), cpu.Store{Register: 1}))
	assert.Equal("", output.String())
	assert.Empty(*exits)
}

func TestConsoleQuit(t *testing.T) {
	assert := assert.New(t)

	con, output, exits := doConsole([]string{"regs 0", "quit", "next"})

	err := con.Pause(testState(), cpu.Store{Register: 1})
	assert.ErrorIs(err, ErrQuit)
	assert.Equal("R0=1;\nquit...\n", output.String())
	assert.Equal([]int{0}, *exits)
}

func TestConsoleEOF(t *testing.T) {
	assert := assert.New(t)

	con, output, exits := doConsole([]string{})

	err := con.Pause(testState(), cpu.Store{Register: 1})
	assert.ErrorIs(err, ErrQuit)
	assert.Equal("\nquit...\n", output.String())
	assert.Equal([]int{0}, *exits)
}

func TestConsoleCpu(t *testing.T) {
	assert := assert.New(t)

	con, output, _ := doConsole([]string{"instr", "next", "regs 0", "next"})

	cp := cpu.NewCpu(cpu.NewDecoder(con), nil)
	cp.Memory[0] = uint8(cpu.MakeCodeMove(cpu.MOVE_LOW, 0, 0x5))

	assert.NoError(cp.Tick())
	assert.NoError(cp.Tick())
	assert.Equal("0: 00000101 movl r0 0x5\nR0=5;\n", output.String())

	err := cp.Tick()
	assert.ErrorIs(err, ErrQuit)
	assert.Equal(2, cp.Ticks)
	assert.Equal(uint8(2), cp.Pc)
}
