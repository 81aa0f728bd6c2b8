// Package script renders a resolved backup layout into a POSIX shell
// script. Rendering is pure text assembly: nothing here touches the
// filesystem, the network, or the clock.
package script

import "strings"

const indentUnit = "    "

// Block is one renderable unit of the generated script: a command line,
// a blank separator, or a nested subshell.
type Block interface {
	render(w *strings.Builder, indent int)
}

// Line is a single command line, indented to its nesting depth.
type Line string

func (l Line) render(w *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		w.WriteString(indentUnit)
	}
	w.WriteString(string(l))
	w.WriteByte('\n')
}

// Blank is an empty separator line. It carries no indentation.
type Blank struct{}

func (Blank) render(w *strings.Builder, indent int) {
	w.WriteByte('\n')
}

// Subshell renders its blocks between ( and ) one indent level deeper,
// so every cd inside it is undone when the subshell exits.
type Subshell struct {
	blocks []Block
}

// NewSubshell returns an empty subshell.
func NewSubshell() *Subshell {
	return &Subshell{}
}

// Line appends a command line to the subshell body.
func (s *Subshell) Line(text string) {
	s.blocks = append(s.blocks, Line(text))
}

// Blank appends a separator line to the subshell body.
func (s *Subshell) Blank() {
	s.blocks = append(s.blocks, Blank{})
}

// Add appends a nested block to the subshell body.
func (s *Subshell) Add(block Block) {
	s.blocks = append(s.blocks, block)
}

func (s *Subshell) render(w *strings.Builder, indent int) {
	Line("(").render(w, indent)
	for _, block := range s.blocks {
		block.render(w, indent+1)
	}
	Line(")").render(w, indent)
}

// Script is the top-level block sequence. The zero value is ready to use.
type Script struct {
	blocks []Block
}

// Line appends a top-level command line.
func (s *Script) Line(text string) {
	s.blocks = append(s.blocks, Line(text))
}

// Blank appends a top-level separator line.
func (s *Script) Blank() {
	s.blocks = append(s.blocks, Blank{})
}

// Add appends a top-level block.
func (s *Script) Add(block Block) {
	s.blocks = append(s.blocks, block)
}

// String renders the script, one trailing newline per line.
func (s *Script) String() string {
	var b strings.Builder
	for _, block := range s.blocks {
		block.render(&b, 0)
	}
	return b.String()
}
