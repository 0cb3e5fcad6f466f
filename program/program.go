// Package program implements the finite, immutable program model: a
// keyed set of named states, each an ordered list of clauses, built
// through a Builder and made read-only by Builder.Finalize.
package program

import (
	"fmt"
	"strings"

	"github.com/asphodex/turingo/symbol"
	"github.com/asphodex/turingo/turingerr"
)

// StateName is a case-insensitive identifier drawn from [A-Za-z0-9]+.
// Two names that differ only in case denote the same state; the
// original casing is preserved for display.
type StateName string

// HaltState is the reserved sink state name. It is never a declared
// state; a machine whose current state equals HaltState (any casing)
// has stopped normally.
const HaltState StateName = "halt"

// IsHalt reports whether name is the reserved halt sink, compared
// case-insensitively.
func IsHalt(name StateName) bool {
	return strings.EqualFold(string(name), string(HaltState))
}

func normalize(name StateName) string {
	return strings.ToLower(string(name))
}

// OptionalStateName represents the interpreter's "current state or
// none" field. The zero value is None.
type OptionalStateName struct {
	name  StateName
	valid bool
}

// Some wraps a present state name.
func Some(name StateName) OptionalStateName {
	return OptionalStateName{name: name, valid: true}
}

// None represents the absence of a current state (error-halt).
func None() OptionalStateName {
	return OptionalStateName{}
}

// IsNone reports whether the option holds no state.
func (o OptionalStateName) IsNone() bool {
	return !o.valid
}

// Get returns the wrapped state name and whether it was present.
func (o OptionalStateName) Get() (StateName, bool) {
	return o.name, o.valid
}

// ActionKind enumerates the closed set of primitive actions a clause
// may dictate.
type ActionKind int

const (
	// MoveLeft shifts the tape head one cell left.
	MoveLeft ActionKind = iota
	// MoveRight shifts the tape head one cell right.
	MoveRight
	// Print writes a symbol under the head.
	Print
	// ActionError is produced by the interpreter, never by the parser,
	// when no clause matches the current (state, symbol) pair.
	ActionError
)

// Action is a tagged union of the four primitive actions. Write is only
// meaningful when Kind == Print.
type Action struct {
	Kind  ActionKind
	Write symbol.Symbol
}

// LeftAction builds a MoveLeft action.
func LeftAction() Action { return Action{Kind: MoveLeft} }

// RightAction builds a MoveRight action.
func RightAction() Action { return Action{Kind: MoveRight} }

// PrintAction builds a Print action writing sym.
func PrintAction(sym symbol.Symbol) Action { return Action{Kind: Print, Write: sym} }

// ErrorAction builds the sentinel Error action.
func ErrorAction() Action { return Action{Kind: ActionError} }

// Clause is one (input, action, successor) triple inside a state.
type Clause struct {
	Input     symbol.Symbol
	Action    Action
	Successor StateName
}

type stateEntry struct {
	name    StateName
	clauses []Clause
}

// Builder assembles a Program. Modifying calls may be made in any order
// while building; Finalize validates and freezes the result. Any
// modifying call after Finalize is a programming error and panics.
type Builder struct {
	name         string
	numInputs    int
	numInputsSet bool
	initState    StateName
	initSet      bool
	states       map[string]*stateEntry
	finalized    bool
}

// NewBuilder returns an empty Builder in building mode.
func NewBuilder() *Builder {
	return &Builder{states: make(map[string]*stateEntry)}
}

func (b *Builder) checkBuilding() {
	if b.finalized {
		panic(fmt.Errorf("%w: builder already finalized", turingerr.ErrBuilderMisuse))
	}
}

// SetName sets the program's display name.
func (b *Builder) SetName(name string) {
	b.checkBuilding()
	b.name = name
}

// SetNumInputs sets the number of numeric inputs the program expects.
func (b *Builder) SetNumInputs(n int) {
	b.checkBuilding()
	b.numInputs = n
	b.numInputsSet = true
}

// SetInitState sets the program's initial state name.
func (b *Builder) SetInitState(name StateName) {
	b.checkBuilding()
	b.initState = name
	b.initSet = true
}

// AddState registers a new state and its ordered, non-empty clause
// list. Re-adding a state name already present (compared
// case-insensitively) returns an error wrapping
// turingerr.ErrDuplicateState; an empty clause list returns an error
// wrapping turingerr.ErrEmptyState.
func (b *Builder) AddState(name StateName, clauses []Clause) error {
	b.checkBuilding()

	if IsHalt(name) {
		return fmt.Errorf("%w: %q is the reserved halt sink and cannot be declared", turingerr.ErrReservedState, name)
	}

	key := normalize(name)
	if _, exists := b.states[key]; exists {
		return fmt.Errorf("%w: state %q already defined", turingerr.ErrDuplicateState, name)
	}
	if len(clauses) == 0 {
		return fmt.Errorf("%w: state %q has no clauses", turingerr.ErrEmptyState, name)
	}

	cp := make([]Clause, len(clauses))
	copy(cp, clauses)
	b.states[key] = &stateEntry{name: name, clauses: cp}
	return nil
}

// Finalize validates the builder's accumulated state and returns an
// immutable Program, or an error wrapping turingerr.ErrFinalization.
// Calling Finalize a second time is a programming error and panics.
func (b *Builder) Finalize() (*Program, error) {
	b.checkBuilding()

	if b.numInputsSet && b.numInputs < 0 {
		return nil, fmt.Errorf("%w: negative num_inputs %d", turingerr.ErrFinalization, b.numInputs)
	}
	if len(b.states) == 0 {
		return nil, fmt.Errorf("%w: program has no states", turingerr.ErrFinalization)
	}
	if !b.initSet {
		return nil, fmt.Errorf("%w: no init state set", turingerr.ErrFinalization)
	}
	if _, ok := b.states[normalize(b.initState)]; !ok {
		return nil, fmt.Errorf("%w: init state %q is not declared", turingerr.ErrFinalization, b.initState)
	}

	b.finalized = true
	return &Program{
		name:      b.name,
		numInputs: b.numInputs,
		initState: b.initState,
		states:    b.states,
	}, nil
}

// Program is a finalized, immutable Turing-machine program.
type Program struct {
	name      string
	numInputs int
	initState StateName
	states    map[string]*stateEntry
}

// Name returns the program's display name.
func (p *Program) Name() string { return p.name }

// InitState returns the program's initial state name.
func (p *Program) InitState() StateName { return p.initState }

// NumInputs returns the number of numeric inputs the program expects.
func (p *Program) NumInputs() int { return p.numInputs }

// NumStates returns the number of declared states.
func (p *Program) NumStates() int { return len(p.states) }

// IsStateDefined reports whether name (compared case-insensitively)
// names a declared state.
func (p *Program) IsStateDefined(name StateName) bool {
	_, ok := p.states[normalize(name)]
	return ok
}

// NextInstruction locates the clause list for state and returns the
// action of the first clause whose input equals sym. If the state is
// unknown or no clause matches, it returns ErrorAction().
func (p *Program) NextInstruction(state StateName, sym symbol.Symbol) Action {
	se, ok := p.states[normalize(state)]
	if !ok {
		return ErrorAction()
	}
	for _, c := range se.clauses {
		if c.Input.EqualSymbol(sym) {
			return c.Action
		}
	}
	return ErrorAction()
}

// NextTransition performs the same lookup as NextInstruction and
// returns the matching clause's successor state, or None if the state
// is unknown or no clause matches. Whenever NextInstruction returns a
// non-error action for the same (state, sym), NextTransition returns
// Some(_): both walk the same clause list under the same match rule.
func (p *Program) NextTransition(state StateName, sym symbol.Symbol) OptionalStateName {
	se, ok := p.states[normalize(state)]
	if !ok {
		return None()
	}
	for _, c := range se.clauses {
		if c.Input.EqualSymbol(sym) {
			return Some(c.Successor)
		}
	}
	return None()
}
