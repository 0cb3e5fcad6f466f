// Package view implements an interactive terminal viewer over a
// running machine. The viewer only ever reads the tape through Peek,
// never its own Read/Write/Move entry points, matching the core's
// "no other mutating entry points are exposed to a collaborator"
// contract.
package view

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/asphodex/turingo/interpreter"
	"github.com/asphodex/turingo/machine"
	"github.com/asphodex/turingo/program"
)

// windowRadius is the number of cells shown on either side of the head.
const windowRadius = 30

// Viewer renders a machine's tape and state to a terminal screen and
// drives it forward one step, or to completion, on key input.
type Viewer struct {
	screen tcell.Screen
	prog   *program.Program
}

// New creates a Viewer bound to a fresh terminal screen.
func New(p *program.Program) (*Viewer, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	s.SetStyle(tcell.StyleDefault)
	return &Viewer{screen: s, prog: p}, nil
}

// Close releases the underlying terminal screen.
func (v *Viewer) Close() {
	v.screen.Fini()
}

// Run drives m interactively: "s" steps once, "r" runs to halt, "q" or
// Esc quits. It returns when the user quits or the machine halts and
// the user dismisses the final frame.
func (v *Viewer) Run(m *machine.Machine) {
	v.draw(m, "s: step   r: run to halt   q: quit")

	for {
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
				return
			case ev.Rune() == 's':
				interpreter.Step(m, v.prog)
				v.draw(m, "s: step   r: run to halt   q: quit")
			case ev.Rune() == 'r':
				for !interpreter.Halted(m) {
					interpreter.Step(m, v.prog)
				}
				v.draw(m, "halted -- q: quit")
			}
		}

		if interpreter.Halted(m) {
			v.draw(m, "halted -- q: quit")
		}
	}
}

// draw paints one frame: the tape window around the head, the current
// state, and a status line.
func (v *Viewer) draw(m *machine.Machine, status string) {
	v.screen.Clear()

	width, height := v.screen.Size()
	midRow := height / 2

	headStyle := tcell.StyleDefault.Reverse(true)
	cellStyle := tcell.StyleDefault

	for col := 0; col < width; col++ {
		offset := col - width/2
		if offset < -windowRadius || offset > windowRadius {
			continue
		}
		b := m.Tape.Peek(offset)
		style := cellStyle
		if offset == 0 {
			style = headStyle
		}
		v.screen.SetContent(col, midRow, rune(b), nil, style)
	}

	stateLine := "halted (error)"
	if state, ok := m.State.Get(); ok {
		stateLine = fmt.Sprintf("state: %s", state)
	}
	puts(v.screen, tcell.StyleDefault, 0, 0, stateLine)
	puts(v.screen, tcell.StyleDefault, 0, height-1, status)

	v.screen.Show()
}

func puts(s tcell.Screen, style tcell.Style, x, y int, str string) {
	for i, r := range str {
		s.SetContent(x+i, y, r, nil, style)
	}
}
