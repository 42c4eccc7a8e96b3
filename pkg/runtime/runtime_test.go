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

func TestLongestMatchOr(t *testing.T) {
	g := gramspec.New()
	g.Config.EntryRule = "e"
	// e : 'ab' | 'a'. Both match at pos 0; "ab" is longer and must win.
	g.AddRule(gramspec.Ordinary, "e", []expr.Expression{&expr.Or{
		A: &expr.StringLiteral{Value: "ab"},
		B: &expr.StringLiteral{Value: "a"},
	}})
	root, err := New(g, "ab").Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if root.EndOfSubtree() != 2 {
		t.Errorf("expected longest-match to consume 2 bytes, got %d", root.EndOfSubtree())
	}
}

func TestOrTieIsNoMatch(t *testing.T) {
	g := gramspec.New()
	g.Config.EntryRule = "e"
	// Both alternatives match exactly one byte: a tie is reported as
	// no match at the Or, so the whole rule fails.
	g.AddRule(gramspec.Ordinary, "e", []expr.Expression{&expr.Or{
		A: &expr.StringLiteral{Value: "a"},
		B: &expr.RegexLiteral{Pattern: `[a]`},
	}})
	_, err := New(g, "a").Run()
	if err == nil {
		t.Fatal("expected ParseFailure on an equal-length tie")
	}
}

func TestCursorRestoredOnAndFailure(t *testing.T) {
	g := gramspec.New()
	g.Config.EntryRule = "e"
	// e : ('a' 'c') | 'ab'. The first alternative consumes "a" then
	// fails to match "c", so the cursor must roll back to 0 before the
	// second alternative is tried from the same start.
	g.AddRule(gramspec.Ordinary, "e", []expr.Expression{&expr.Or{
		A: &expr.And{A: &expr.StringLiteral{Value: "a"}, B: &expr.StringLiteral{Value: "c"}},
		B: &expr.StringLiteral{Value: "ab"},
	}})
	root, err := New(g, "ab").Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if root.EndOfSubtree() != 2 {
		t.Errorf("expected fallback alternative to consume 2 bytes, got %d", root.EndOfSubtree())
	}
}

func TestRepeatProgressGuard(t *testing.T) {
	g := gramspec.New()
	g.Config.EntryRule = "e"
	// e : (('a')?)*  — a nullable sub-expression under RepeatZero must
	// not spin forever; the guard stops the loop the first time an
	// iteration fails to advance the cursor.
	g.AddRule(gramspec.Ordinary, "e", []expr.Expression{&expr.RepeatZero{
		A: &expr.Optional{A: &expr.StringLiteral{Value: "a"}},
	}})
	eng := New(g, "aaab")
	root, err := eng.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if eng.Cursor() != 3 {
		t.Errorf("expected cursor to stop at 3 (before 'b'), got %d", eng.Cursor())
	}
	_ = root
}

func TestDiscardStripsChildButKeepsSpan(t *testing.T) {
	g := gramspec.New()
	g.Config.EntryRule = "r"
	// r : 'x' ~'y'. The discard marker must not appear among r's
	// visible children, but r's span must still cover both bytes.
	g.AddRule(gramspec.Ordinary, "r", []expr.Expression{&expr.And{
		A: &expr.StringLiteral{Value: "x"},
		B: &expr.Discard{A: &expr.StringLiteral{Value: "y"}},
	}})
	root, err := New(g, "xy").Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected exactly 1 visible child, got %d: %s", len(root.Children), root)
	}
	if root.Children[0].Text != "x" {
		t.Errorf("expected the sole visible child to be %q, got %q", "x", root.Children[0].Text)
	}
	if root.End != 2 {
		t.Errorf("expected span to retain the discarded byte, End = %d, want 2", root.End)
	}
}

func TestMetaRuleUnwrapsIntoCaller(t *testing.T) {
	g := gramspec.New()
	g.Config.EntryRule = "file"
	g.AddRule(gramspec.Ordinary, "file", []expr.Expression{&expr.Rule{Name: "construct"}})
	g.AddRule(gramspec.Meta, "construct", []expr.Expression{&expr.Rule{Name: "leaf"}})
	g.AddRule(gramspec.Ordinary, "leaf", []expr.Expression{&expr.StringLiteral{Value: "x"}})

	root, err := New(g, "x").Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if root.RuleName != "file" {
		t.Fatalf("expected root file, got %s", root.RuleName)
	}
	if len(root.Children) != 1 || root.Children[0].RuleName != "leaf" {
		t.Fatalf("expected file's sole child to be the unwrapped leaf node directly, got %s", root)
	}
}

func TestKeywordEndmarkerMatchesOnlyAtEOF(t *testing.T) {
	g := gramspec.New()
	g.Config.EntryRule = "e"
	g.AddRule(gramspec.Ordinary, "e", []expr.Expression{&expr.And{
		A: &expr.StringLiteral{Value: "x"},
		B: &expr.Keyword{Name: "ENDMARKER"},
	}})
	if _, err := New(g, "xy").Run(); err == nil {
		t.Error("expected ENDMARKER to fail before end of input")
	}
	if _, err := New(g, "x").Run(); err != nil {
		t.Errorf("expected ENDMARKER to match at end of input: %v", err)
	}
}

func TestSkipTriviaBetweenTokens(t *testing.T) {
	g := gramspec.New()
	g.Config.EntryRule = "e"
	g.Config.IgnoreSpaces = true
	g.AddRule(gramspec.Ordinary, "e", []expr.Expression{&expr.And{
		A: &expr.StringLiteral{Value: "a"},
		B: &expr.StringLiteral{Value: "b"},
	}})
	root, err := New(g, "a   b").Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if root.EndOfSubtree() != len("a   b") {
		t.Errorf("expected the skip to be absorbed into the match span, got %d", root.EndOfSubtree())
	}
}

func TestEvalUnknownRuleError(t *testing.T) {
	g := gramspec.New()
	g.Config.EntryRule = "missing"
	if _, err := New(g, "x").Run(); err == nil {
		t.Error("expected UnknownRule error for an undefined entry rule")
	}
}
