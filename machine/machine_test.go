package machine_test

import (
	"testing"

	"github.com/asphodex/turingo/machine"
	"github.com/asphodex/turingo/program"
	"github.com/asphodex/turingo/symbol"
	"github.com/asphodex/turingo/tape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trivialProgram(t *testing.T, numInputs int) *program.Program {
	t.Helper()

	b := program.NewBuilder()
	b.SetName("trivial")
	b.SetNumInputs(numInputs)
	b.SetInitState("scan")
	require.NoError(t, b.AddState("scan", []program.Clause{
		{Input: symbol.BlankSymbol(), Action: program.RightAction(), Successor: "halt"},
	}))

	p, err := b.Finalize()
	require.NoError(t, err)
	return p
}

func TestNew_SingleInput_LaysDownUnaryRun(t *testing.T) {
	t.Parallel()

	p := trivialProgram(t, 1)
	m := machine.New(p, []int{3})

	assert.Equal(t, byte('1'), m.Tape.Read())
	got := []byte{m.Tape.Peek(0), m.Tape.Peek(1), m.Tape.Peek(2), m.Tape.Peek(3)}
	assert.Equal(t, "111 ", string(got))
}

func TestNew_HeadResetToStart(t *testing.T) {
	t.Parallel()

	p := trivialProgram(t, 1)
	m := machine.New(p, []int{3})

	assert.Equal(t, 0, m.Tape.HeadOffset())
}

func TestNew_TwoInputs_SeparatedByBlank(t *testing.T) {
	t.Parallel()

	p := trivialProgram(t, 2)
	m := machine.New(p, []int{2, 3})

	got := make([]byte, 0, 7)
	for i := 0; i < 7; i++ {
		got = append(got, m.Tape.Peek(i))
	}
	assert.Equal(t, "11 111", string(got[:6]))
	assert.Equal(t, tape.Blank, got[6])
}

func TestNew_ZeroInput_IsImmediatelyBlank(t *testing.T) {
	t.Parallel()

	p := trivialProgram(t, 1)
	m := machine.New(p, []int{0})

	assert.Equal(t, tape.Blank, m.Tape.Peek(0))
	assert.Equal(t, tape.Blank, m.Tape.Peek(-1))
	assert.Equal(t, tape.Blank, m.Tape.Peek(1))
}

func TestNew_EmptyInputVector(t *testing.T) {
	t.Parallel()

	p := trivialProgram(t, 0)
	m := machine.New(p, nil)

	assert.Equal(t, tape.Blank, m.Tape.Read())
	assert.Equal(t, 0, m.Tape.HeadOffset())
}

func TestNew_SetsInitialState(t *testing.T) {
	t.Parallel()

	p := trivialProgram(t, 0)
	m := machine.New(p, nil)

	name, ok := m.State.Get()
	require.True(t, ok)
	assert.Equal(t, program.StateName("scan"), name)
}
