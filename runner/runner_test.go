package runner_test

import (
	"context"
	"testing"
	"time"

	"github.com/asphodex/turingo/interpreter"
	"github.com/asphodex/turingo/machine"
	"github.com/asphodex/turingo/program"
	"github.com/asphodex/turingo/runner"
	"github.com/asphodex/turingo/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func incrementProgram(t *testing.T) *program.Program {
	t.Helper()

	b := program.NewBuilder()
	b.SetName("Increment")
	b.SetNumInputs(1)
	b.SetInitState("scan")
	require.NoError(t, b.AddState("scan", []program.Clause{
		{Input: symbol.FromByte('1'), Action: program.RightAction(), Successor: "scan"},
		{Input: symbol.BlankSymbol(), Action: program.PrintAction(symbol.FromByte('1')), Successor: "halt"},
	}))

	p, err := b.Finalize()
	require.NoError(t, err)
	return p
}

func infiniteLeftProgram(t *testing.T) *program.Program {
	t.Helper()

	b := program.NewBuilder()
	b.SetName("InfiniteLeft")
	b.SetNumInputs(0)
	b.SetInitState("s")
	require.NoError(t, b.AddState("s", []program.Clause{
		{Input: symbol.BlankSymbol(), Action: program.LeftAction(), Successor: "s"},
	}))

	p, err := b.Finalize()
	require.NoError(t, err)
	return p
}

func TestRun_RunsToCompletion(t *testing.T) {
	t.Parallel()

	p := incrementProgram(t)
	m := machine.New(p, []int{3})

	require.NoError(t, runner.Run(m, p))
	require.True(t, interpreter.Halted(m))

	// the head ends on the '1' it printed, three cells right of the start
	got := []byte{m.Tape.Peek(-3), m.Tape.Peek(-2), m.Tape.Peek(-1), m.Tape.Peek(0), m.Tape.Peek(1)}
	assert.Equal(t, "1111 ", string(got))
}

func TestRunCtx_StepsExceeded(t *testing.T) {
	t.Parallel()

	p := infiniteLeftProgram(t)
	m := machine.New(p, nil)

	err := runner.RunCtx(context.Background(), m, p, 500)
	require.ErrorIs(t, err, runner.ErrStepsExceeded)
	assert.False(t, interpreter.Halted(m))
}

func TestRunCtx_CancelledContext(t *testing.T) {
	t.Parallel()

	p := infiniteLeftProgram(t)
	m := machine.New(p, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runner.RunCtx(ctx, m, p, 0)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunCtx_DeadlineExceeded(t *testing.T) {
	t.Parallel()

	p := infiniteLeftProgram(t)
	m := machine.New(p, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	time.Sleep(2 * time.Millisecond)

	err := runner.RunCtx(ctx, m, p, 0)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunCtx_ZeroMaxSteps_NoLimit(t *testing.T) {
	t.Parallel()

	p := incrementProgram(t)
	m := machine.New(p, []int{1})

	require.NoError(t, runner.RunCtx(context.Background(), m, p, 0))
	assert.True(t, interpreter.Halted(m))
}
