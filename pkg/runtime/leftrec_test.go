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
	"testing"

	"github.com/matt-bowlby/gramspec-parser-generator/pkg/expr"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/gramspec"
)

// sumGrammar builds e : e '+' t | t.  t : 'n'. — the canonical
// left-recursive grammar used to exercise Warth-style seed growth.
func sumGrammar() *gramspec.GramSpec {
	g := gramspec.New()
	g.Config.EntryRule = "e"
	g.AddRule(gramspec.Ordinary, "e", []expr.Expression{&expr.Or{
		A: &expr.And{
			A: &expr.Rule{Name: "e"},
			B: &expr.And{A: &expr.StringLiteral{Value: "+"}, B: &expr.Rule{Name: "t"}},
		},
		B: &expr.Rule{Name: "t"},
	}})
	g.AddRule(gramspec.Ordinary, "t", []expr.Expression{&expr.StringLiteral{Value: "n"}})
	return g
}

func TestLeftRecursionSeedGrowth(t *testing.T) {
	g := sumGrammar()
	eng := New(g, "n+n+n")
	root, err := eng.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if eng.Cursor() != len("n+n+n") {
		t.Fatalf("expected full consumption, cursor at %d", eng.Cursor())
	}
	if root.RuleName != "e" {
		t.Fatalf("expected root rule e, got %s", root.RuleName)
	}
	// The grown tree must nest left: e(e(e(t) '+' t) '+' t).
	if len(root.Children) != 3 {
		t.Fatalf("expected 3 children (e, '+', t) at the outermost growth step, got %d: %s", len(root.Children), root)
	}
	inner := root.Children[0]
	if inner.RuleName != "e" {
		t.Fatalf("expected left child to be a nested e, got %s", inner.RuleName)
	}
	innermost := inner.Children[0]
	if innermost.RuleName != "e" || len(innermost.Children) != 1 || innermost.Children[0].RuleName != "t" {
		t.Fatalf("expected the innermost growth step to be e wrapping a single t, got %s", innermost)
	}
}

func TestLeftRecursionSingleTermDoesNotGrow(t *testing.T) {
	g := sumGrammar()
	root, err := New(g, "n").Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(root.Children) != 1 || root.Children[0].RuleName != "t" {
		t.Fatalf("expected a single t child with no growth, got %s", root)
	}
}

func TestLeftRecursionStopsAtFirstNonProgress(t *testing.T) {
	g := sumGrammar()
	eng := New(g, "n+n+x")
	root, err := eng.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if eng.Cursor() != len("n+n") {
		t.Fatalf("expected growth to stop before the unmatched '+x', cursor at %d", eng.Cursor())
	}
	if len(root.Children) != 3 {
		t.Fatalf("expected exactly one growth step (e '+' t), got %s", root)
	}
}
