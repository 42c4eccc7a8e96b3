// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package expr defines the closed combinator algebra shared by the
// grammar-language front-end and the expression-evaluation runtime.
//
// Expression is pure data: the interface here carries no evaluation
// logic, only structure (Children) and a debug rendering (Format). This
// mirrors golang.org/x/exp/peg's Expression/Format split, generalized
// from that package's first-match vocabulary (Sequence, Choice,
// ZeroOrMore, ...) to the closed, fixed-arity tag set this grammar
// language requires.
package expr

import "fmt"

// Expression is the closed tagged sum of combinators. Every concrete
// type in this package implements it.
type Expression interface {
	// Children returns the operands of this node, in order, for tree
	// walks (left-recursion detection, generic traversal). Leaf nodes
	// (Rule, StringLiteral, RegexLiteral, Keyword) return nil.
	Children() []Expression
	// Format renders a grammar-like surface form, e.g. "a | b",
	// "a & b", "(a)+", "(a),(b)+", "~(a)", "$(a)".
	Format(w fmt.State, verb rune)
	fmt.Stringer
}

// Rule invokes the named rule.
type Rule struct{ Name string }

// StringLiteral matches s verbatim.
type StringLiteral struct{ Value string }

// RegexLiteral matches the anchored regex r at the cursor.
type RegexLiteral struct{ Pattern string }

// Keyword matches the value looked up in the keyword table for k.
type Keyword struct{ Name string }

// And is sequence: a then b.
type And struct{ A, B Expression }

// Or is longest-match alternation between a and b.
type Or struct{ A, B Expression }

// Optional matches a zero or one time.
type Optional struct{ A Expression }

// RepeatZero matches a zero or more times.
type RepeatZero struct{ A Expression }

// RepeatOne matches a one or more times.
type RepeatOne struct{ A Expression }

// DelimitRepeatZero matches zero or more a separated by d.
type DelimitRepeatZero struct{ A, D Expression }

// DelimitRepeatOne matches one or more a separated by d.
type DelimitRepeatOne struct{ A, D Expression }

// Discard matches a and emits a discard marker instead of a's nodes.
type Discard struct{ A Expression }

// Meta matches a and inlines its children into the caller.
type Meta struct{ A Expression }

func (e *Rule) Children() []Expression          { return nil }
func (e *StringLiteral) Children() []Expression { return nil }
func (e *RegexLiteral) Children() []Expression  { return nil }
func (e *Keyword) Children() []Expression       { return nil }
func (e *And) Children() []Expression           { return []Expression{e.A, e.B} }
func (e *Or) Children() []Expression            { return []Expression{e.A, e.B} }
func (e *Optional) Children() []Expression      { return []Expression{e.A} }
func (e *RepeatZero) Children() []Expression     { return []Expression{e.A} }
func (e *RepeatOne) Children() []Expression      { return []Expression{e.A} }
func (e *DelimitRepeatZero) Children() []Expression { return []Expression{e.A, e.D} }
func (e *DelimitRepeatOne) Children() []Expression  { return []Expression{e.A, e.D} }
func (e *Discard) Children() []Expression       { return []Expression{e.A} }
func (e *Meta) Children() []Expression          { return []Expression{e.A} }

func (e *Rule) Format(w fmt.State, _ rune)          { fmt.Fprint(w, e.Name) }
func (e *StringLiteral) Format(w fmt.State, _ rune) { fmt.Fprintf(w, "%q", e.Value) }
func (e *RegexLiteral) Format(w fmt.State, _ rune)  { fmt.Fprintf(w, "r'%s'", e.Pattern) }
func (e *Keyword) Format(w fmt.State, _ rune)       { fmt.Fprintf(w, "<%s>", e.Name) }

func (e *And) Format(w fmt.State, _ rune) {
	fmt.Fprintf(w, "%s & %s", group(e.A), group(e.B))
}

func (e *Or) Format(w fmt.State, _ rune) {
	fmt.Fprintf(w, "%s | %s", group(e.A), group(e.B))
}

func (e *Optional) Format(w fmt.State, _ rune)      { fmt.Fprintf(w, "(%s)?", e.A) }
func (e *RepeatZero) Format(w fmt.State, _ rune)     { fmt.Fprintf(w, "(%s)*", e.A) }
func (e *RepeatOne) Format(w fmt.State, _ rune)      { fmt.Fprintf(w, "(%s)+", e.A) }

func (e *DelimitRepeatZero) Format(w fmt.State, _ rune) {
	fmt.Fprintf(w, "(%s),(%s)*", e.A, e.D)
}

func (e *DelimitRepeatOne) Format(w fmt.State, _ rune) {
	fmt.Fprintf(w, "(%s),(%s)+", e.A, e.D)
}

func (e *Discard) Format(w fmt.State, _ rune) { fmt.Fprintf(w, "~(%s)", e.A) }
func (e *Meta) Format(w fmt.State, _ rune)    { fmt.Fprintf(w, "$(%s)", e.A) }

// group renders a child with parens if it is a binary combinator, so
// that "a | b & c" round-trips unambiguously; leaves and unary
// postfix forms already parenthesize themselves.
func group(e Expression) string {
	switch e.(type) {
	case *And, *Or:
		return "(" + e.String() + ")"
	default:
		return e.String()
	}
}

// String implements fmt.Stringer for every Expression via Format.
func (e *Rule) String() string               { return fmt.Sprint(fmtWrap{e}) }
func (e *StringLiteral) String() string      { return fmt.Sprint(fmtWrap{e}) }
func (e *RegexLiteral) String() string       { return fmt.Sprint(fmtWrap{e}) }
func (e *Keyword) String() string            { return fmt.Sprint(fmtWrap{e}) }
func (e *And) String() string                { return fmt.Sprint(fmtWrap{e}) }
func (e *Or) String() string                 { return fmt.Sprint(fmtWrap{e}) }
func (e *Optional) String() string           { return fmt.Sprint(fmtWrap{e}) }
func (e *RepeatZero) String() string         { return fmt.Sprint(fmtWrap{e}) }
func (e *RepeatOne) String() string          { return fmt.Sprint(fmtWrap{e}) }
func (e *DelimitRepeatZero) String() string  { return fmt.Sprint(fmtWrap{e}) }
func (e *DelimitRepeatOne) String() string   { return fmt.Sprint(fmtWrap{e}) }
func (e *Discard) String() string            { return fmt.Sprint(fmtWrap{e}) }
func (e *Meta) String() string                { return fmt.Sprint(fmtWrap{e}) }

// fmtWrap adapts Format(fmt.State, rune) to fmt.Formatter so String()
// can reuse it without duplicating the rendering logic.
type fmtWrap struct{ e Expression }

func (f fmtWrap) Format(w fmt.State, verb rune) { f.e.Format(w, verb) }
