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

package gramspec

import (
	"testing"

	"github.com/matt-bowlby/gramspec-parser-generator/pkg/expr"
)

func TestAddRuleDuplicate(t *testing.T) {
	g := New()
	if err := g.AddRule(Ordinary, "a", []expr.Expression{&expr.StringLiteral{Value: "x"}}); err != nil {
		t.Fatalf("first AddRule: %v", err)
	}
	err := g.AddRule(Discard, "a", []expr.Expression{&expr.StringLiteral{Value: "y"}})
	if err == nil {
		t.Fatal("expected DuplicateRule error, got nil")
	}
	if _, ok := err.(interface{ Error() string }); !ok {
		t.Fatalf("expected an error value, got %T", err)
	}
}

func TestAlternativesOfReportsKind(t *testing.T) {
	g := New()
	g.AddRule(Meta, "m", []expr.Expression{&expr.StringLiteral{Value: "x"}})
	_, kind, ok := g.AlternativesOf("m")
	if !ok || kind != Meta {
		t.Fatalf("AlternativesOf(m) = kind %v, ok %v; want Meta, true", kind, ok)
	}
}

func TestIsLeftRecursiveDirect(t *testing.T) {
	g := New()
	// e : e '+' t | t.
	g.AddRule(Ordinary, "e", []expr.Expression{&expr.Or{
		A: &expr.And{A: &expr.Rule{Name: "e"}, B: &expr.StringLiteral{Value: "+"}},
		B: &expr.Rule{Name: "t"},
	}})
	g.AddRule(Ordinary, "t", []expr.Expression{&expr.StringLiteral{Value: "n"}})
	if !g.IsLeftRecursive("e") {
		t.Error("expected e to be left-recursive")
	}
	if g.IsLeftRecursive("t") {
		t.Error("expected t not to be left-recursive")
	}
}

func TestIsLeftRecursiveMutual(t *testing.T) {
	g := New()
	// a : b. b : a 'x' | 'y'.
	g.AddRule(Ordinary, "a", []expr.Expression{&expr.Rule{Name: "b"}})
	g.AddRule(Ordinary, "b", []expr.Expression{&expr.Or{
		A: &expr.And{A: &expr.Rule{Name: "a"}, B: &expr.StringLiteral{Value: "x"}},
		B: &expr.StringLiteral{Value: "y"},
	}})
	if !g.IsLeftRecursive("a") {
		t.Error("expected a to be left-recursive through b")
	}
	if !g.IsLeftRecursive("b") {
		t.Error("expected b to be left-recursive through a")
	}
}

func TestIsLeftRecursiveNotThroughLiteral(t *testing.T) {
	g := New()
	g.AddRule(Ordinary, "digits", []expr.Expression{&expr.RegexLiteral{Pattern: `[0-9]+`}})
	if g.IsLeftRecursive("digits") {
		t.Error("a leaf regex rule must not be reported left-recursive")
	}
}

func TestConfigSet(t *testing.T) {
	c := DefaultConfig()
	if err := c.Set("ignore_spaces", "true"); err != nil {
		t.Fatalf("Set(ignore_spaces): %v", err)
	}
	if !c.IgnoreSpaces {
		t.Error("expected IgnoreSpaces true")
	}
	if err := c.Set("ignore_between_tokens", "comment, nl"); err != nil {
		t.Fatalf("Set(ignore_between_tokens): %v", err)
	}
	if len(c.IgnoreBetweenTokens) != 2 || c.IgnoreBetweenTokens[0] != "comment" || c.IgnoreBetweenTokens[1] != "nl" {
		t.Errorf("IgnoreBetweenTokens = %v", c.IgnoreBetweenTokens)
	}
	if err := c.Set("bogus", "x"); err == nil {
		t.Error("expected UnknownConfig error for unrecognized option")
	}
	if err := c.Set("ignore_spaces", "maybe"); err == nil {
		t.Error("expected BadValue error for non-bool value")
	}
}

func TestKeywordTableDefault(t *testing.T) {
	kt := DefaultKeywordTable()
	v, ok := kt.Lookup("ENDMARKER")
	if !ok || v != "\x00" {
		t.Errorf("ENDMARKER = %q, %v; want \"\\x00\", true", v, ok)
	}
	kt.Extend("TAB", "\t")
	if v, ok := kt.Lookup("TAB"); !ok || v != "\t" {
		t.Errorf("TAB = %q, %v", v, ok)
	}
}
