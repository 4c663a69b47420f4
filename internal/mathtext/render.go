// Package mathtext renders the LaTeX subset used in the question bank as
// plain Unicode text suitable for a terminal.
package mathtext

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrUnbalanced         = errors.New("unbalanced delimiters")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrUnknownEnvironment = errors.New("unknown environment")
	ErrMissingArgument    = errors.New("missing argument")
)

// SyntaxError reports where in the source rendering failed.
type SyntaxError struct {
	Offset int
	Err    error
	Detail string
}

func (e *SyntaxError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("offset %d: %v: %s", e.Offset, e.Err, e.Detail)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Render converts a LaTeX snippet to terminal text. Unsupported commands
// and malformed input return a *SyntaxError.
func Render(src string) (string, error) {
	p := &parser{src: src}
	out, err := p.sequence(stopEOF)
	if err != nil {
		return "", err
	}
	return tidy(out), nil
}

// Display renders src for showing to the learner. When src cannot be
// rendered the raw source is returned with ok == false.
func Display(src string) (text string, ok bool) {
	out, err := Render(src)
	if err != nil {
		return src, false
	}
	return out, true
}

type stopKind int

const (
	stopEOF     stopKind = iota // top level
	stopBrace                   // inside {...}
	stopBracket                 // inside an optional [...] argument
	stopCell                    // inside an environment body
)

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) rest() string { return p.src[p.pos:] }

func (p *parser) fail(err error, detail string) error {
	return &SyntaxError{Offset: p.pos, Err: err, Detail: detail}
}

func (p *parser) skipSpaces() {
	for !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n') {
		p.pos++
	}
}

// sequence renders atoms until the terminator for stop.
func (p *parser) sequence(stop stopKind) (string, error) {
	var b strings.Builder
	for {
		if p.eof() {
			switch stop {
			case stopEOF:
				return b.String(), nil
			case stopBracket:
				return "", p.fail(ErrUnbalanced, "missing ]")
			case stopCell:
				return "", p.fail(ErrUnbalanced, `missing \end`)
			default:
				return "", p.fail(ErrUnbalanced, "missing }")
			}
		}

		c := p.src[p.pos]
		switch {
		case c == '}':
			if stop != stopBrace {
				return "", p.fail(ErrUnbalanced, "unexpected }")
			}
			p.pos++
			return b.String(), nil
		case c == ']' && stop == stopBracket:
			p.pos++
			return b.String(), nil
		case stop == stopCell && (c == '&' || strings.HasPrefix(p.rest(), `\\`) || strings.HasPrefix(p.rest(), `\end`)):
			return b.String(), nil
		case c == '^' || c == '_':
			p.pos++
			arg, err := p.argument()
			if err != nil {
				return "", err
			}
			b.WriteString(script(arg, c == '^'))
		case c == '&':
			p.pos++
			b.WriteByte(' ')
		default:
			s, err := p.atom()
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		}
	}
}

// atom renders one group, command or character.
func (p *parser) atom() (string, error) {
	switch p.src[p.pos] {
	case '{':
		p.pos++
		return p.sequence(stopBrace)
	case '}':
		return "", p.fail(ErrUnbalanced, "unexpected }")
	case '\\':
		return p.command()
	case '~':
		p.pos++
		return " ", nil
	}
	r, size := utf8.DecodeRuneInString(p.rest())
	p.pos += size
	return string(r), nil
}

// argument renders the operand of a command, ^ or _.
func (p *parser) argument() (string, error) {
	p.skipSpaces()
	if p.eof() {
		return "", p.fail(ErrMissingArgument, "")
	}
	return p.atom()
}

// readName reads a command name after the backslash: a run of letters, or
// a single other character.
func (p *parser) readName() string {
	start := p.pos
	for !p.eof() && isASCIILetter(p.src[p.pos]) {
		p.pos++
	}
	if p.pos > start {
		return p.src[start:p.pos]
	}
	_, size := utf8.DecodeRuneInString(p.rest())
	p.pos += size
	return p.src[start:p.pos]
}

func (p *parser) command() (string, error) {
	start := p.pos
	p.pos++
	if p.eof() {
		return "", p.fail(ErrUnknownCommand, "trailing backslash")
	}
	name := p.readName()

	switch name {
	case `\`:
		return "\n", nil
	case "frac", "dfrac", "tfrac":
		num, err := p.argument()
		if err != nil {
			return "", err
		}
		den, err := p.argument()
		if err != nil {
			return "", err
		}
		return wrap(num) + "/" + wrap(den), nil
	case "sqrt":
		return p.root()
	case "left", "right":
		p.skipSpaces()
		if !p.eof() && p.src[p.pos] == '.' {
			p.pos++
		}
		return "", nil
	case "text", "textrm", "mbox":
		return p.rawGroup()
	case "mathrm", "mathbf", "mathit", "mathsf", "boldsymbol", "operatorname":
		return p.argument()
	case "mathbb":
		arg, err := p.argument()
		if err != nil {
			return "", err
		}
		var b strings.Builder
		for _, r := range arg {
			if bb, ok := blackboard[r]; ok {
				b.WriteString(bb)
			} else {
				b.WriteRune(r)
			}
		}
		return b.String(), nil
	case "begin":
		env, err := p.envName()
		if err != nil {
			return "", err
		}
		delims, ok := matrixDelims[env]
		if !ok {
			return "", &SyntaxError{Offset: start, Err: ErrUnknownEnvironment, Detail: env}
		}
		return p.matrix(env, delims)
	case "end":
		return "", &SyntaxError{Offset: start, Err: ErrUnbalanced, Detail: `\end without \begin`}
	}

	if mark, ok := accents[name]; ok {
		arg, err := p.argument()
		if err != nil {
			return "", err
		}
		var b strings.Builder
		for _, r := range arg {
			b.WriteRune(r)
			if !unicode.IsSpace(r) {
				b.WriteRune(mark)
			}
		}
		return b.String(), nil
	}
	if functions[name] {
		return name + p.functionGap(), nil
	}
	if s, ok := symbols[name]; ok {
		return s, nil
	}
	return "", &SyntaxError{Offset: start, Err: ErrUnknownCommand, Detail: `\` + name}
}

// functionGap returns the space separating a function name from its
// operand, or nothing when a script or bracket follows.
func (p *parser) functionGap() string {
	p.skipSpaces()
	if p.eof() {
		return ""
	}
	switch p.src[p.pos] {
	case '^', '_', '(', '[', ')', ']', '}':
		return ""
	}
	if strings.HasPrefix(p.rest(), `\left`) {
		return ""
	}
	return " "
}

func (p *parser) root() (string, error) {
	p.skipSpaces()
	var index string
	if !p.eof() && p.src[p.pos] == '[' {
		p.pos++
		idx, err := p.sequence(stopBracket)
		if err != nil {
			return "", err
		}
		index = strings.TrimSpace(idx)
	}
	body, err := p.argument()
	if err != nil {
		return "", err
	}

	sign := "√"
	switch index {
	case "", "2":
	case "3":
		sign = "∛"
	case "4":
		sign = "∜"
	default:
		sign = script(index, true) + "√"
	}
	return sign + wrap(body), nil
}

// rawGroup returns the text of a braced group without interpreting it.
func (p *parser) rawGroup() (string, error) {
	p.skipSpaces()
	if p.eof() || p.src[p.pos] != '{' {
		return "", p.fail(ErrMissingArgument, "expected {")
	}
	p.pos++
	start, depth := p.pos, 1
	for ; !p.eof(); p.pos++ {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				text := p.src[start:p.pos]
				p.pos++
				return text, nil
			}
		}
	}
	return "", p.fail(ErrUnbalanced, "missing }")
}

func (p *parser) envName() (string, error) {
	p.skipSpaces()
	if p.eof() || p.src[p.pos] != '{' {
		return "", p.fail(ErrMissingArgument, "expected environment name")
	}
	p.pos++
	start := p.pos
	for !p.eof() && p.src[p.pos] != '}' {
		p.pos++
	}
	if p.eof() {
		return "", p.fail(ErrUnbalanced, "missing }")
	}
	name := p.src[start:p.pos]
	p.pos++
	return strings.TrimSpace(name), nil
}

// matrix renders a matrix environment inline: cells separated by spaces,
// rows by "; ".
func (p *parser) matrix(env string, delims [2]string) (string, error) {
	var rows [][]string
	var row []string
	for {
		cell, err := p.sequence(stopCell)
		if err != nil {
			return "", err
		}
		row = append(row, tidy(cell))

		switch {
		case p.src[p.pos] == '&':
			p.pos++
		case strings.HasPrefix(p.rest(), `\\`):
			p.pos += 2
			rows = append(rows, row)
			row = nil
		default:
			at := p.pos
			p.pos += len(`\end`)
			name, err := p.envName()
			if err != nil {
				return "", err
			}
			if name != env {
				return "", &SyntaxError{Offset: at, Err: ErrUnbalanced, Detail: fmt.Sprintf(`\begin{%s} closed by \end{%s}`, env, name)}
			}
			// A trailing \\ leaves one empty cell behind.
			if !(len(row) == 1 && row[0] == "") {
				rows = append(rows, row)
			}
			lines := make([]string, len(rows))
			for i, r := range rows {
				lines[i] = strings.Join(r, " ")
			}
			return delims[0] + strings.Join(lines, "; ") + delims[1], nil
		}
	}
}

// script renders a superscript or subscript using Unicode script
// characters when every character has one, falling back to ^(...) or
// _(...).
func script(s string, sup bool) string {
	table, mark := subscripts, "_"
	if sup {
		table, mark = superscripts, "^"
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range s {
		if r == ' ' {
			continue
		}
		m, ok := table[r]
		if !ok {
			if utf8.RuneCountInString(s) == 1 {
				return mark + s
			}
			return mark + "(" + s + ")"
		}
		b.WriteRune(m)
	}
	return b.String()
}

// wrap parenthesises compound operands of / and √.
func wrap(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "()"
	}
	for _, r := range s {
		if !(unicode.IsLetter(r) || unicode.IsNumber(r) || r == '.' || r == '′') {
			return "(" + s + ")"
		}
	}
	return s
}

// tidy collapses runs of spaces on each line and trims the result.
func tidy(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		if f := strings.Fields(l); len(f) > 0 {
			out = append(out, strings.Join(f, " "))
		}
	}
	return strings.Join(out, "\n")
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
