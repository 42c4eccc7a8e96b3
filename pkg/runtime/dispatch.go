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

package runtime

import (
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/expr"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/gramerr"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/gramspec"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/node"
)

// dispatchRule is the single entry point for invoking a named rule.
// Every Rule(name) reference in an expression tree, and the top-level
// entry rule, goes through here.
//
// The "protection flag" spec.md §4.5.4 describes is not a parameter:
// it is implicit in e.growing. A (pos0, name) entry present in
// e.growing means a seed-growth loop for that rule, seeded at pos0, is
// already running further up the call stack. Only a reference to name
// that recurs at that *same* pos0 is the protected inner reference the
// algorithm requires; the same rule referenced from a different cursor
// position (e.g. nested inside a group that first consumes a
// delimiter) is an independent, unrelated invocation and must fall
// through to ordinary dispatch instead of consulting a seed memo that
// was never seeded for that position.
func (e *Engine) dispatchRule(name string) ([]*node.Node, bool, error) {
	alts, kind, found := e.gram.AlternativesOf(name)
	if !found {
		return nil, false, &gramerr.UnknownRule{Name: name}
	}
	e.trace(name)
	key := memoKey{pos: e.cursor, name: name}
	if e.growing[key] {
		entry, ok := e.memo[key]
		if !ok {
			return nil, false, nil
		}
		e.cursor = entry.end
		return entry.nodes, entry.ok, nil
	}
	e.depth++
	defer func() { e.depth-- }()
	if e.isLeftRecursive(name) {
		return e.seedGrow(name, kind, alts)
	}
	return e.evalAlternatives(name, kind, alts)
}

func (e *Engine) isLeftRecursive(name string) bool {
	if v, ok := e.isLRCache[name]; ok {
		return v
	}
	v := e.gram.IsLeftRecursive(name)
	e.isLRCache[name] = v
	return v
}

// evalAlternatives runs longestAlternative over alts and wraps the
// winning result per kind: an ordinary rule nests it under a new rule
// node, a discard rule keeps only the span, a meta rule returns the
// children unwrapped.
func (e *Engine) evalAlternatives(name string, kind gramspec.RuleKind, alts []expr.Expression) ([]*node.Node, bool, error) {
	start := e.cursor
	end, nodes, ok, err := e.longestAlternative(alts)
	if err != nil {
		e.cursor = start
		return nil, false, err
	}
	if !ok {
		e.cursor = start
		return nil, false, nil
	}
	e.cursor = end
	switch kind {
	case gramspec.Meta:
		return nodes, true, nil
	case gramspec.Discard:
		return []*node.Node{node.NewDiscard(start, end)}, true, nil
	default:
		// Discard markers produced by nested Discard(a) expressions are
		// stripped from the visible children of an ordinary rule node;
		// their span is still accounted for since End is set to the
		// alternative's true match end rather than recomputed from the
		// filtered children alone.
		visible := make([]*node.Node, 0, len(nodes))
		for _, n := range nodes {
			if n.Kind != node.KindDiscard {
				visible = append(visible, n)
			}
		}
		rn := node.NewRule(name, start, visible)
		rn.End = end
		return []*node.Node{rn}, true, nil
	}
}

// longestAlternative evaluates every alternative from the same start
// cursor and keeps whichever advanced furthest; an equal-length tie
// among the longest is reported as no match, exactly like Or.
func (e *Engine) longestAlternative(alts []expr.Expression) (int, []*node.Node, bool, error) {
	start := e.cursor
	bestEnd := start
	var bestNodes []*node.Node
	found := false
	tie := false
	for _, alt := range alts {
		e.cursor = start
		nodes, ok, err := e.Eval(alt)
		if err != nil {
			return 0, nil, false, err
		}
		if !ok {
			continue
		}
		end := e.cursor
		switch {
		case !found || end > bestEnd:
			bestEnd = end
			bestNodes = nodes
			found = true
			tie = false
		case end == bestEnd:
			tie = true
		}
	}
	e.cursor = start
	if !found || tie {
		return 0, nil, false, nil
	}
	return bestEnd, bestNodes, true, nil
}

// seedGrow implements Warth-style memoized seed growth for a rule
// statically identified as left-recursive (spec.md §4.5.4):
//
//  1. pos0 is the cursor on entry.
//  2. A prior memo entry for (pos0, name) is returned directly.
//  3. Otherwise the memo is seeded with a failure.
//  4. The rule is evaluated repeatedly from pos0; while
//     growing[{pos0, name}] is set, any inner reference back to name
//     *at pos0* consults only the memo (see dispatchRule), so it sees
//     the last-known seed rather than recursing into another seedGrow
//     call. A reference to the same rule from any other position is
//     unaffected and dispatches normally.
//  5. Growth stops the first time an iteration fails to advance past
//     the previous best end.
//  6. The cursor is left at the last successful end; a final failed
//     seed is evicted so it cannot poison later attempts at the same
//     position under a different caller context.
func (e *Engine) seedGrow(name string, kind gramspec.RuleKind, alts []expr.Expression) ([]*node.Node, bool, error) {
	pos0 := e.cursor
	key := memoKey{pos: pos0, name: name}
	if entry, ok := e.memo[key]; ok {
		e.cursor = entry.end
		return entry.nodes, entry.ok, nil
	}
	e.memo[key] = &memoEntry{end: pos0, ok: false}
	e.growing[key] = true
	defer delete(e.growing, key)

	for {
		e.cursor = pos0
		nodes, ok, err := e.evalAlternatives(name, kind, alts)
		if err != nil {
			delete(e.memo, key)
			return nil, false, err
		}
		if !ok {
			break
		}
		newEnd := e.cursor
		prev := e.memo[key]
		if prev.ok && newEnd <= prev.end {
			break
		}
		e.memo[key] = &memoEntry{end: newEnd, nodes: nodes, ok: true}
	}

	final := e.memo[key]
	if !final.ok {
		delete(e.memo, key)
		e.cursor = pos0
		return nil, false, nil
	}
	e.cursor = final.end
	return final.nodes, true, nil
}
