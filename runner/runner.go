// Package runner drives a machine/program pair to completion,
// optionally bounded by a context.Context so a caller can cancel a
// long-running or non-terminating computation between steps. The core
// interpreter itself never blocks or awaits; cancellation is strictly
// a caller-side concern layered on top of repeated interpreter.Step
// calls.
package runner

import (
	"context"
	"errors"

	"github.com/asphodex/turingo/interpreter"
	"github.com/asphodex/turingo/machine"
	"github.com/asphodex/turingo/program"
)

// ErrStepsExceeded is returned by RunCtx when maxSteps is positive and
// the machine has not halted within that many steps.
var ErrStepsExceeded = errors.New("steps exceeded")

// Run drives m against p to completion with no step limit and no
// cancellation. Equivalent to RunCtx(context.Background(), m, p, 0).
func Run(m *machine.Machine, p *program.Program) error {
	return RunCtx(context.Background(), m, p, 0)
}

// RunCtx drives m against p one step at a time until it halts, ctx is
// cancelled, or maxSteps steps have run (maxSteps <= 0 disables the
// limit). It returns ctx.Err() on cancellation, ErrStepsExceeded if the
// step budget is exhausted, or nil once the machine halts.
func RunCtx(ctx context.Context, m *machine.Machine, p *program.Program, maxSteps uint) error {
	var steps uint

	for !interpreter.Halted(m) {
		if err := ctx.Err(); err != nil {
			return err //nolint:wrapcheck
		}

		interpreter.Step(m, p)
		steps++

		if maxSteps > 0 && steps >= maxSteps && !interpreter.Halted(m) {
			return ErrStepsExceeded
		}
	}

	return nil
}
