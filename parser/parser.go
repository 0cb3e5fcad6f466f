// Package parser implements the deterministic recursive-descent
// translator from the turingo DSL into a finalized program.Program.
//
// The grammar (whitespace insensitive except as a token separator):
//
//	PROGRAM ::= HEADER DEFINITION+
//	HEADER  ::= NAME_DECL INPUTS_DECL INIT_DECL   (any order, each at most once)
//	NAME_DECL   ::= "name"   ":" IDEN "."
//	INPUTS_DECL ::= "inputs" ":" NUMBER "."
//	INIT_DECL   ::= "init"   ":" IDEN "."
//	DEFINITION  ::= IDEN ":" CLAUSE+
//	CLAUSE      ::= SYMBOL "->" ACTION "," IDEN "."
//	ACTION      ::= "left" | "right" | SYMBOL
//	SYMBOL      ::= single-character-token | "blank"
//	NUMBER      ::= [0-9]+
//
// Header keywords, action keywords, and "blank" are matched
// case-insensitively. Identifiers preserve case on the wire but compare
// case-insensitively at lookup time (see package program).
//
// The grammar historically exposed an INVOCATION action form
// (IDEN.IDEN(ARGLIST?)); no interpreter opcode supports it, so this
// parser recognizes the shape only far enough to reject it with
// turingerr.ErrUnsupportedForm rather than guessing its semantics.
package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/asphodex/turingo/program"
	"github.com/asphodex/turingo/symbol"
	"github.com/asphodex/turingo/turingerr"
)

// Parse reads source text from r and returns a finalized program, or a
// fatal parse/finalization error. Parse errors carry the offending
// source line; finalization errors do not.
func Parse(r io.Reader) (*program.Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading source: %v", turingerr.ErrParse, err)
	}
	return parseSource(data)
}

// ParseFile opens path and parses its contents. I/O failures are
// returned unwrapped so callers (e.g. the CLI) can distinguish them
// from turingerr.ErrParse / turingerr.ErrFinalization.
func ParseFile(path string) (*program.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return parseSource(data)
}

func parseErr(line int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", turingerr.ErrParse, line, fmt.Sprintf(format, args...))
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// lexer is a character-level scanner over the whole source buffer. It
// tracks the current line number, incrementing on both '\r' and '\n'
// per the grammar's whitespace rule.
type lexer struct {
	data []byte
	pos  int
	line int
}

func newLexer(data []byte) *lexer {
	return &lexer{data: data, line: 1}
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.data)
}

func (l *lexer) peek() (byte, bool) {
	if l.eof() {
		return 0, false
	}
	return l.data[l.pos], true
}

func (l *lexer) advance() byte {
	b := l.data[l.pos]
	l.pos++
	if b == '\n' || b == '\r' {
		l.line++
	}
	return b
}

func (l *lexer) skipSpace() {
	for {
		b, ok := l.peek()
		if !ok {
			return
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			l.advance()
			continue
		}
		return
	}
}

func (l *lexer) readAlnumRun() string {
	start := l.pos
	for {
		b, ok := l.peek()
		if !ok || !isAlnum(b) {
			break
		}
		l.advance()
	}
	return string(l.data[start:l.pos])
}

// readToken reads one lexical token at the current position (after
// skipping leading whitespace): an alnum run if the next byte is a
// letter or digit, otherwise exactly one raw byte. It reports whether
// the token was an identifier-shaped run.
func (l *lexer) readToken() (tok string, isIdent bool, line int, err error) {
	l.skipSpace()
	line = l.line
	b, ok := l.peek()
	if !ok {
		return "", false, line, io.ErrUnexpectedEOF
	}
	if isAlnum(b) {
		return l.readAlnumRun(), true, line, nil
	}
	l.advance()
	return string(b), false, line, nil
}

func (l *lexer) expectByte(want byte) error {
	l.skipSpace()
	b, ok := l.peek()
	if !ok || b != want {
		got := "end of input"
		if ok {
			got = fmt.Sprintf("%q", b)
		}
		return parseErr(l.line, "expected %q, got %s", want, got)
	}
	l.advance()
	return nil
}

func (l *lexer) expectArrow() error {
	l.skipSpace()
	line := l.line
	b, ok := l.peek()
	if !ok || b != '-' {
		return parseErr(line, "expected '->'")
	}
	l.advance()
	b2, ok2 := l.peek()
	if !ok2 || b2 != '>' {
		return parseErr(line, "expected '->'")
	}
	l.advance()
	return nil
}

func missingDecls(seenName, seenInputs, seenInit bool) []string {
	var missing []string
	if !seenName {
		missing = append(missing, "name")
	}
	if !seenInputs {
		missing = append(missing, "inputs")
	}
	if !seenInit {
		missing = append(missing, "init")
	}
	return missing
}

func parseSource(data []byte) (*program.Program, error) {
	lx := newLexer(data)
	b := program.NewBuilder()

	var seenName, seenInputs, seenInit bool

	// The header is exactly three declarations, in any order; reading
	// a fixed number of them (rather than sniffing keywords until one
	// doesn't match) keeps a state later named "name" or "init" from
	// being misread as a header declaration.
	for i := 0; i < 3; i++ {
		lx.skipSpace()
		if lx.eof() {
			return nil, parseErr(lx.line, "unexpected end of input; missing header declaration(s): %s",
				strings.Join(missingDecls(seenName, seenInputs, seenInit), ", "))
		}

		saveLine := lx.line
		b2, _ := lx.peek()
		if !isAlnum(b2) {
			return nil, parseErr(lx.line, "unexpected character %q in header", b2)
		}
		ident := lx.readAlnumRun()
		lower := strings.ToLower(ident)

		switch lower {
		case "name":
			if seenName {
				return nil, parseErr(saveLine, "duplicate name declaration")
			}
			seenName = true
			if err := lx.expectByte(':'); err != nil {
				return nil, err
			}
			lx.skipSpace()
			idLine := lx.line
			value := lx.readAlnumRun()
			if value == "" {
				return nil, parseErr(idLine, "expected identifier after \"name:\"")
			}
			if err := lx.expectByte('.'); err != nil {
				return nil, err
			}
			b.SetName(value)
		case "inputs":
			if seenInputs {
				return nil, parseErr(saveLine, "duplicate inputs declaration")
			}
			seenInputs = true
			if err := lx.expectByte(':'); err != nil {
				return nil, err
			}
			lx.skipSpace()
			numLine := lx.line
			numStr := lx.readDigitRun()
			if numStr == "" {
				return nil, parseErr(numLine, "expected non-negative number after \"inputs:\"")
			}
			n, err := symbol.FromString(numStr).ParseInt()
			if err != nil {
				return nil, parseErr(numLine, "bad inputs count %q", numStr)
			}
			if err := lx.expectByte('.'); err != nil {
				return nil, err
			}
			b.SetNumInputs(n)
		case "init":
			if seenInit {
				return nil, parseErr(saveLine, "duplicate init declaration")
			}
			seenInit = true
			if err := lx.expectByte(':'); err != nil {
				return nil, err
			}
			lx.skipSpace()
			idLine := lx.line
			value := lx.readAlnumRun()
			if value == "" {
				return nil, parseErr(idLine, "expected identifier after \"init:\"")
			}
			if err := lx.expectByte('.'); err != nil {
				return nil, err
			}
			b.SetInitState(program.StateName(value))
		default:
			return nil, parseErr(saveLine, "missing header declaration(s): %s (found %q instead)",
				strings.Join(missingDecls(seenName, seenInputs, seenInit), ", "), ident)
		}
	}

	stateCount := 0
	for {
		lx.skipSpace()
		if lx.eof() {
			break
		}
		if err := parseDefinition(lx, b); err != nil {
			return nil, err
		}
		stateCount++
	}
	if stateCount == 0 {
		return nil, parseErr(lx.line, "expected at least one state definition")
	}

	prog, err := b.Finalize()
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// readDigitRun reads a run of ASCII digits, matching NUMBER ::= [0-9]+
// exactly (no leading sign is part of this grammar production).
func (l *lexer) readDigitRun() string {
	start := l.pos
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	return string(l.data[start:l.pos])
}

// parseDefinition parses DEFINITION ::= IDEN ":" CLAUSE+ and registers
// the resulting state with b.
func parseDefinition(lx *lexer, b *program.Builder) error {
	nameLine := lx.line
	name := lx.readAlnumRun()
	if name == "" {
		c, _ := lx.peek()
		return parseErr(lx.line, "expected state name, got %q", c)
	}
	if err := lx.expectByte(':'); err != nil {
		return err
	}

	var clauses []program.Clause
	for {
		lx.skipSpace()
		if lx.eof() {
			break
		}

		save := lx.pos
		saveLine := lx.line
		tok, isIdent, tokLine, err := lx.readToken()
		if err != nil {
			return parseErr(lx.line, "unexpected end of input in state %q", name)
		}

		if isIdent {
			lx.skipSpace()
			if c, ok := lx.peek(); ok && c == ':' {
				// This identifier begins the next state definition, not
				// a clause of the current one. Rewind.
				lx.pos = save
				lx.line = saveLine
				break
			}
		}

		clause, err := parseClauseBody(lx, tok, isIdent, tokLine)
		if err != nil {
			return err
		}
		clauses = append(clauses, clause)
	}

	if len(clauses) == 0 {
		return fmt.Errorf("%w: line %d: state %q has no clauses", turingerr.ErrParse, nameLine, name)
	}

	if err := b.AddState(program.StateName(name), clauses); err != nil {
		return fmt.Errorf("%w: line %d: %w", turingerr.ErrParse, nameLine, err)
	}
	return nil
}

// parseClauseBody parses the remainder of a CLAUSE given that its
// leading SYMBOL token has already been read as (symTok, symIsIdent) at
// symLine.
func parseClauseBody(lx *lexer, symTok string, symIsIdent bool, symLine int) (program.Clause, error) {
	inputSym, err := resolveSymbolToken(symTok, symIsIdent, symLine)
	if err != nil {
		return program.Clause{}, err
	}

	if err := lx.expectArrow(); err != nil {
		return program.Clause{}, err
	}

	action, err := parseAction(lx)
	if err != nil {
		return program.Clause{}, err
	}

	if err := lx.expectByte(','); err != nil {
		return program.Clause{}, err
	}

	lx.skipSpace()
	succLine := lx.line
	successor := lx.readAlnumRun()
	if successor == "" {
		return program.Clause{}, parseErr(succLine, "expected successor state name")
	}

	if err := lx.expectByte('.'); err != nil {
		return program.Clause{}, err
	}

	return program.Clause{
		Input:     inputSym,
		Action:    action,
		Successor: program.StateName(successor),
	}, nil
}

// resolveSymbolToken maps a raw lexical token to its SYMBOL meaning:
// the literal byte for a single-character token, the blank byte for
// the "blank" keyword, and a fatal error for any other multi-character
// identifier.
func resolveSymbolToken(tok string, isIdent bool, line int) (symbol.Symbol, error) {
	if !isIdent {
		return symbol.FromByte(tok[0]), nil
	}
	if strings.EqualFold(tok, "blank") {
		return symbol.BlankSymbol(), nil
	}
	if len(tok) == 1 {
		return symbol.FromByte(tok[0]), nil
	}
	return symbol.Symbol{}, parseErr(line, "invalid symbol %q: expected a single character or \"blank\"", tok)
}

// parseAction parses ACTION ::= "left" | "right" | SYMBOL, detecting
// and rejecting the reserved INVOCATION form along the way.
func parseAction(lx *lexer) (program.Action, error) {
	tok, isIdent, line, err := lx.readToken()
	if err != nil {
		return program.Action{}, parseErr(lx.line, "unexpected end of input, expected an action")
	}

	if !isIdent {
		return program.PrintAction(symbol.FromByte(tok[0])), nil
	}

	switch strings.ToLower(tok) {
	case "left":
		return program.LeftAction(), nil
	case "right":
		return program.RightAction(), nil
	case "blank":
		return program.PrintAction(symbol.BlankSymbol()), nil
	}

	// Possible INVOCATION ::= IDEN.IDEN(ARGLIST?): an identifier
	// directly followed by '.' and another identifier.
	if c, ok := lx.peek(); ok && c == '.' {
		savePos, saveLine := lx.pos, lx.line
		lx.advance()
		callee := lx.readAlnumRun()
		if callee != "" {
			if c2, ok2 := lx.peek(); ok2 && c2 == '(' {
				lx.advance()
				for {
					cc, okk := lx.peek()
					if !okk {
						return program.Action{}, parseErr(lx.line, "unterminated invocation argument list")
					}
					lx.advance()
					if cc == ')' {
						break
					}
				}
			}
			return program.Action{}, fmt.Errorf(
				"%w: line %d: invocation form %q.%s(...) is reserved syntax and is not implemented",
				turingerr.ErrUnsupportedForm, line, tok, callee,
			)
		}
		lx.pos, lx.line = savePos, saveLine
	}

	if len(tok) == 1 {
		return program.PrintAction(symbol.FromByte(tok[0])), nil
	}
	return program.Action{}, parseErr(line, "invalid action %q: expected \"left\", \"right\", or a single-character symbol", tok)
}
