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

// Package node defines the uniform parse-tree element produced by every
// successful match of the expression runtime.
package node

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind distinguishes the four node variants a match can produce.
type Kind int

const (
	// KindRule is an ordinary named rule node: it carries children and
	// no text of its own.
	KindRule Kind = iota
	// KindTerminal is a leaf node carrying captured text.
	KindTerminal
	// KindDiscard records a matched span whose content is stripped from
	// the visible tree. It carries neither text nor children.
	KindDiscard
	// KindMeta records that the matched children should replace the
	// enclosing node's children rather than nest under a new node.
	KindMeta
)

func (k Kind) String() string {
	switch k {
	case KindRule:
		return "Rule"
	case KindTerminal:
		return "Terminal"
	case KindDiscard:
		return "Discard"
	case KindMeta:
		return "Meta"
	default:
		return "Unknown"
	}
}

// Node is the immutable parse-tree element. It is either a rule node
// ({RuleName, Children, Start, End}), a terminal node ({Text, Start,
// End}), a discard marker (span only), or a meta marker (children to be
// inlined into the caller).
//
// Nodes are built by appending children during a match and are
// considered frozen once the match that produced them returns; nothing
// in this package mutates a Node after it has been returned to a caller
// other than the in-progress builder that owns it.
type Node struct {
	Kind     Kind
	RuleName string
	Text     string
	Start    int
	End      int
	Children []*Node
}

// New creates an empty node of the given kind spanning [start, end).
func New(kind Kind, start, end int) *Node {
	return &Node{Kind: kind, Start: start, End: end}
}

// NewRule creates a rule node with the given name and children, with End
// recomputed from EndOfSubtree so it reflects the true extent of the
// match even when intermediate combinators under-reported it.
func NewRule(name string, start int, children []*Node) *Node {
	n := &Node{Kind: KindRule, RuleName: name, Start: start, Children: children}
	n.End = n.EndOfSubtree()
	return n
}

// NewTerminal creates a leaf node carrying the captured text.
func NewTerminal(text string, start, end int) *Node {
	return &Node{Kind: KindTerminal, Text: text, Start: start, End: end}
}

// NewDiscard creates a discard marker spanning [start, end) with no
// text and no children: its payload is stripped from whatever node
// would otherwise contain it.
func NewDiscard(start, end int) *Node {
	return &Node{Kind: KindDiscard, Start: start, End: end}
}

// Append adds one child to the node, in source order.
func (n *Node) Append(child *Node) {
	n.Children = append(n.Children, child)
}

// Extend appends a whole sequence of children, in source order.
func (n *Node) Extend(children []*Node) {
	n.Children = append(n.Children, children...)
}

// EndOfSubtree returns the maximum End among all descendants (or Start,
// if the node is leafless). The runtime uses this to recompute a rule
// node's true end after recursive matches, since nested Or/repeat
// combinators may have advanced the cursor further than a naive
// concatenation of immediate children's spans would suggest.
func (n *Node) EndOfSubtree() int {
	end := n.Start
	if n.End > end {
		end = n.End
	}
	for _, ch := range n.Children {
		if e := ch.EndOfSubtree(); e > end {
			end = e
		}
	}
	return end
}

// First returns the first child with the given rule name, or nil.
func (n *Node) First(name string) *Node {
	for _, ch := range n.Children {
		if ch.RuleName == name {
			return ch
		}
	}
	return nil
}

// All returns every child with the given rule name.
func (n *Node) All(name string) []*Node {
	var r []*Node
	for _, ch := range n.Children {
		if ch.RuleName == name {
			r = append(r, ch)
		}
	}
	return r
}

// Format returns an indented textual dump of the node, in the style
//
//	(file
//	  "a"
//	  (digit
//	    "1"))
//
// with terminal text rendered through Go's debug-escaped quoting
// (matching the teacher's use of strconv.Quote for captured text).
func (n *Node) Format(indent string) string {
	if n == nil {
		return "(nil)"
	}
	var b strings.Builder
	n.format(&b, indent)
	return b.String()
}

func (n *Node) format(b *strings.Builder, indent string) {
	switch n.Kind {
	case KindTerminal:
		b.WriteString(strconv.Quote(n.Text))
		return
	case KindDiscard:
		fmt.Fprintf(b, "(~discard %d %d)", n.Start, n.End)
		return
	}
	name := n.RuleName
	if n.Kind == KindMeta {
		name = "$" + name
	}
	b.WriteString("(")
	b.WriteString(name)
	childIndent := indent + "  "
	for _, ch := range n.Children {
		b.WriteString("\n")
		b.WriteString(childIndent)
		ch.format(b, childIndent)
	}
	b.WriteString(")")
}

// String implements fmt.Stringer with no indentation, for use in error
// messages and %v formatting.
func (n *Node) String() string {
	return n.Format("")
}
