// Package filereader reads Turing machine programs from legacy .tur
// files structured as follows:
// 1. Program comment section;
// 2. Program definition section;
// 3. State table comment section;
// 4. Saved tape section (optional).
//
// Program definition format:
// <Set of states>
// <Symbol from alphabet>\t<transition>\t<transition>...
// <Symbol from alphabet>\t<transition>...
// Where transitions are tab-delimited and each alphabet symbol begins a
// new line of its corresponding transitions.
//
// A transition field like "1>2" packs a write symbol, a move direction,
// and a next-state number together ("1", then '>', '<', or '.' for
// right/left/stay, then the state's numeric suffix). Because
// program.Action only ever carries one primitive (a move or a write,
// never both), a transition that both writes and moves desugars into
// two clauses: a Print clause landing on a synthetic intermediate
// state, followed by a Move clause keyed on the symbol just written.
// A transition with a "stay" direction needs no synthetic state since
// Print alone already matches its single-primitive semantics.
package filereader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/asphodex/turingo/program"
	"github.com/asphodex/turingo/symbol"
)

var (
	// ErrParseTransition is returned when a transition field cannot be parsed correctly.
	ErrParseTransition = errors.New("parse transition")

	// ErrNoTransitions is returned when the program file contains no valid transitions.
	ErrNoTransitions = errors.New("no transitions")
)

// Transition is the decomposed form of a tab-delimited field like
// "1>2": the symbol to write, the raw direction byte ('>', '<', or
// '.'), and the next state's full name ("Q2").
type Transition struct {
	Write     byte
	Direction byte
	NextState program.StateName
}

// ParseTransition parses a field like "1>2" and returns its decomposed
// parts.
func ParseTransition(field string) (Transition, error) {
	const transitionFieldsCount = 2

	directions := []byte{'>', '<', '.'}

	for _, dir := range directions {
		if strings.ContainsRune(field, rune(dir)) {
			fields := strings.SplitN(field, string(dir), 2)

			if len(fields) != transitionFieldsCount || fields[0] == "" || fields[1] == "" {
				return Transition{}, fmt.Errorf("%w: %s", ErrParseTransition, field)
			}

			write, _ := utf8.DecodeRuneInString(fields[0])
			if write == '_' {
				write = ' '
			}

			return Transition{
				Write:     byte(write),
				Direction: dir,
				NextState: program.StateName("Q" + fields[1]),
			}, nil
		}
	}

	return Transition{}, fmt.Errorf("%w: no direction found", ErrParseTransition)
}

// moveStateName names the synthetic intermediate state a
// write-then-move transition passes through between printing and
// moving. It is namespaced well outside the alnum-only identifiers the
// DSL parser can itself produce, so it can never collide with a state
// a .tur file or turingo source file declares.
func moveStateName(state program.StateName, sym rune, write byte) program.StateName {
	return program.StateName(fmt.Sprintf("__filereader_move~%s~%c~%c", state, sym, write))
}

// ReadFileCtx reads a .tur file from the given path and returns the
// finalized program, or an error.
func ReadFileCtx(ctx context.Context, filePath string) (*program.Program, error) {
	path := filepath.Clean(filePath)

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("file %q does not exist: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read file %q: %w", path, err)
	}

	defer func() {
		_ = file.Close()
	}()

	return ReadCtx(ctx, file)
}

// ReadCtx reads a .tur program from r.
func ReadCtx(ctx context.Context, r io.Reader) (*program.Program, error) {
	scanner := bufio.NewScanner(r)

	var (
		clauses   = make(map[program.StateName][]program.Clause)
		states    []string
		initState program.StateName
		inScope   bool
	)

	statePattern := regexp.MustCompile(`Q\d+`)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil, ctx.Err() //nolint:wrapcheck
		}

		line := scanner.Text()
		fields := strings.Split(line, "\t")

		if len(fields) == 0 {
			continue
		}

		if !inScope {
			if len(fields) > 1 && statePattern.MatchString(strings.Join(fields[1:], " ")) {
				states = fields[1:]
				if len(states) > 0 {
					initState = program.StateName(states[0])
				}
				inScope = true
			}
			continue
		}

		if fields[0] == "" {
			continue
		}

		sym, _ := utf8.DecodeRuneInString(fields[0])
		stateIndex := 0

		for i := 1; i < len(fields); i++ {
			if fields[i] == "" {
				stateIndex++
				continue
			}

			t, err := ParseTransition(fields[i])
			if err != nil {
				return nil, err
			}

			if stateIndex >= len(states) {
				return nil, fmt.Errorf("%w: transition column %d has no matching state header", ErrParseTransition, stateIndex)
			}
			state := program.StateName(states[stateIndex])

			addTransitionClauses(clauses, state, sym, t)
			stateIndex++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read program: %w", err)
	}

	if len(clauses) == 0 {
		return nil, ErrNoTransitions
	}
	if initState == "" {
		return nil, fmt.Errorf("%w: no state header found", ErrNoTransitions)
	}

	return buildProgram("legacy", initState, clauses)
}

// addTransitionClauses desugars one legacy transition into one or two
// program.Clause values and appends them to the accumulator.
func addTransitionClauses(clauses map[program.StateName][]program.Clause, state program.StateName, sym rune, t Transition) {
	writeSym := symbol.FromByte(t.Write)
	inputSym := symbol.FromByte(byte(sym))

	if t.Direction == '.' {
		clauses[state] = append(clauses[state], program.Clause{
			Input:     inputSym,
			Action:    program.PrintAction(writeSym),
			Successor: t.NextState,
		})
		return
	}

	mid := moveStateName(state, sym, t.Write)
	clauses[state] = append(clauses[state], program.Clause{
		Input:     inputSym,
		Action:    program.PrintAction(writeSym),
		Successor: mid,
	})

	moveAction := program.RightAction()
	if t.Direction == '<' {
		moveAction = program.LeftAction()
	}
	clauses[mid] = append(clauses[mid], program.Clause{
		Input:     writeSym,
		Action:    moveAction,
		Successor: t.NextState,
	})
}

// buildProgram finalizes the accumulated clause table. The legacy
// format carries no "name", "inputs", or "init" declaration of its own;
// the first state named in the header row becomes the init state.
func buildProgram(name string, initState program.StateName, clauses map[program.StateName][]program.Clause) (*program.Program, error) {
	b := program.NewBuilder()
	b.SetName(name)
	b.SetNumInputs(0)
	b.SetInitState(initState)

	for state, cl := range clauses {
		if err := b.AddState(state, cl); err != nil {
			return nil, err
		}
	}

	return b.Finalize()
}
