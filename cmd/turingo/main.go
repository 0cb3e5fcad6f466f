// Command turingo parses a turingo program, bootstraps a machine from
// its command-line arguments, and runs it to completion.
//
// Usage:
//
//	turingo <program-path> <input>...
//
// Each <input> is a non-negative integer; there must be exactly as
// many as the program's declared inputs count. Pass -view to open the
// interactive terminal viewer instead of running headless.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/asphodex/turingo/machine"
	"github.com/asphodex/turingo/parser"
	"github.com/asphodex/turingo/program"
	"github.com/asphodex/turingo/runner"
	"github.com/asphodex/turingo/symbol"
	"github.com/asphodex/turingo/view"
)

// Exit codes, per the CLI boundary contract: 1 I/O error, 2 arity
// mismatch, 3 non-numeric argument, 4 parse/finalization error.
const (
	exitIOError        = 1
	exitArityMismatch  = 2
	exitBadArgument    = 3
	exitProgramInvalid = 4
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	os.Exit(run(log, os.Args[1:]))
}

func run(log *slog.Logger, args []string) int {
	interactive := false
	positional := make([]string, 0, len(args))
	for _, a := range args {
		if a == "-view" {
			interactive = true
			continue
		}
		positional = append(positional, a)
	}

	if len(positional) < 1 {
		log.Error("missing program path", "usage", "turingo [-view] <program-path> <input>...")
		return exitIOError
	}

	path := positional[0]
	inputArgs := positional[1:]

	prog, err := parser.ParseFile(path)
	if err != nil {
		if os.IsNotExist(err) || os.IsPermission(err) {
			log.Error("reading program file", "path", path, "err", err)
			return exitIOError
		}
		log.Error("invalid program", "path", path, "err", err)
		return exitProgramInvalid
	}

	if len(inputArgs) != prog.NumInputs() {
		log.Error("input count mismatch",
			"expected", prog.NumInputs(), "got", len(inputArgs))
		return exitArityMismatch
	}

	inputs := make([]int, len(inputArgs))
	for i, a := range inputArgs {
		n, err := symbol.FromString(a).ParseInt()
		if err != nil || n < 0 {
			log.Error("non-numeric or negative input argument", "arg", a, "position", i)
			return exitBadArgument
		}
		inputs[i] = n
	}

	m := machine.New(prog, inputs)

	log.Info("running program", "name", prog.Name(), "init_state", prog.InitState())

	if interactive {
		return runInteractive(log, prog, m)
	}
	return runHeadless(log, prog, m)
}

func runHeadless(log *slog.Logger, prog *program.Program, m *machine.Machine) int {
	return runLoop(log, prog, m)
}

func runInteractive(log *slog.Logger, prog *program.Program, m *machine.Machine) int {
	v, err := view.New(prog)
	if err != nil {
		log.Error("opening viewer", "err", err)
		return exitIOError
	}
	defer v.Close()

	v.Run(m)
	return 0
}

func runLoop(log *slog.Logger, prog *program.Program, m *machine.Machine) int {
	if err := runner.Run(m, prog); err != nil {
		log.Error("run failed", "err", err)
		return exitIOError
	}

	state, ok := m.State.Get()
	if !ok {
		log.Info("halted on error: no matching clause")
	} else {
		log.Info("halted normally", "state", state)
	}

	fmt.Println(tapeWindow(m, 40))
	return 0
}

func tapeWindow(m *machine.Machine, radius int) string {
	var b strings.Builder
	for offset := -radius; offset <= radius; offset++ {
		b.WriteByte(m.Tape.Peek(offset))
	}
	return b.String()
}
