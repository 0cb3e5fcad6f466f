// Package machine implements the Machine record: a tape, a head
// (owned by the tape itself), and a current-state option. It also
// implements the unary bootstrap loading convention used to prefill a
// freshly constructed machine's tape from a numeric input vector.
package machine

import (
	"github.com/asphodex/turingo/program"
	"github.com/asphodex/turingo/tape"
)

// Machine is a tape plus an execution state. State.IsNone() signals
// error-halt; a present state equal to program.HaltState (case
// insensitive) signals normal halt. Both are terminal.
type Machine struct {
	Tape  *tape.Tape
	State program.OptionalStateName
}

// New constructs a Machine for p, bootstrapped with inputs laid down
// per the unary convention: for each n in inputs, n copies of '1'
// followed by a single blank separator are written starting at the
// head, advancing the head after every write. Once all inputs are laid
// down the head is moved back to the position it started at. The
// machine's current state is set to p's initial state.
func New(p *program.Program, inputs []int) *Machine {
	t := tape.New()

	total := 0
	for _, n := range inputs {
		for i := 0; i < n; i++ {
			t.Write('1')
			t.MoveRight()
		}
		t.Write(tape.Blank)
		t.MoveRight()
		total += n + 1
	}
	for i := 0; i < total; i++ {
		t.MoveLeft()
	}

	return &Machine{
		Tape:  t,
		State: program.Some(p.InitState()),
	}
}
