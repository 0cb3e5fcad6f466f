// Package interpreter drives a machine/program pair forward one step
// at a time: Step consults the program to decide the next action and
// the next state; Halted reports whether the machine has stopped.
package interpreter

import (
	"github.com/asphodex/turingo/machine"
	"github.com/asphodex/turingo/program"
	"github.com/asphodex/turingo/symbol"
)

// Halted reports whether m has reached a terminal condition: its
// current state is unset (error-halt) or equals program.HaltState,
// compared case-insensitively (normal halt).
func Halted(m *machine.Machine) bool {
	state, ok := m.State.Get()
	if !ok {
		return true
	}
	return program.IsHalt(state)
}

// Step performs one transition of m against p. If m is already halted,
// Step returns immediately without touching any observable of m. A
// single call performs the action and the state transition together;
// there is no intermediate state observable between them.
func Step(m *machine.Machine, p *program.Program) {
	if Halted(m) {
		return
	}

	state, _ := m.State.Get()
	cell := symbol.FromByte(m.Tape.Read())

	action := p.NextInstruction(state, cell)

	switch action.Kind {
	case program.MoveLeft:
		m.Tape.MoveLeft()
	case program.MoveRight:
		m.Tape.MoveRight()
	case program.Print:
		m.Tape.Write(action.Write.At(0))
	case program.ActionError:
		m.State = program.None()
		return
	}

	next := p.NextTransition(state, cell)
	nextState, ok := next.Get()
	if !ok {
		// Consistency between NextInstruction and NextTransition means
		// this should not happen for a non-error action; treated as an
		// error-halt rather than a panic since it is a run-time
		// condition.
		m.State = program.None()
		return
	}
	m.State = program.Some(nextState)
}
