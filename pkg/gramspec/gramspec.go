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

// Package gramspec holds the compiled set of named rules plus metadata:
// the GramSpec the grammar front-end builds and the expression runtime
// consumes. It generalizes the teacher's parser2.Grammar/Rule (a single
// Rules map plus RuleNames) into the three-map shape (ordinary, meta,
// discard) spec.md requires, and its ParserOptions into the typed
// Config setter in config.go.
package gramspec

import (
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/expr"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/gramerr"
)

// RuleKind tags which of the three maps a rule belongs to.
type RuleKind int

const (
	// Ordinary rules wrap their match in a rule node.
	Ordinary RuleKind = iota
	// Meta rules inline their children into the caller.
	Meta
	// Discard rules keep only the matched span.
	Discard
)

// GramSpec is the compiled set of named rules plus metadata. It is
// built once by the grammar front-end and is read-only to the runtime;
// a *GramSpec may be shared across concurrently running engines.
type GramSpec struct {
	rules        map[string][]expr.Expression
	metaRules    map[string][]expr.Expression
	discardRules map[string][]expr.Expression
	// RuleNames preserves declaration order across all three maps, for
	// deterministic iteration; the CLI's rule-count report reads its
	// length.
	RuleNames []string
	Config    Config
	Keywords  KeywordTable
}

// New returns an empty GramSpec with the documented config defaults
// and keyword table.
func New() *GramSpec {
	return &GramSpec{
		rules:        make(map[string][]expr.Expression),
		metaRules:    make(map[string][]expr.Expression),
		discardRules: make(map[string][]expr.Expression),
		Config:       DefaultConfig(),
		Keywords:     DefaultKeywordTable(),
	}
}

// AddRule registers name with the given kind and alternatives. Rule
// names are unique across the union of the three maps; a later
// duplicate registration, regardless of kind, fails with
// gramerr.DuplicateRule.
func (g *GramSpec) AddRule(kind RuleKind, name string, alternatives []expr.Expression) error {
	if g.has(name) {
		return &gramerr.DuplicateRule{Name: name}
	}
	switch kind {
	case Ordinary:
		g.rules[name] = alternatives
	case Meta:
		g.metaRules[name] = alternatives
	case Discard:
		g.discardRules[name] = alternatives
	}
	g.RuleNames = append(g.RuleNames, name)
	return nil
}

func (g *GramSpec) has(name string) bool {
	if _, ok := g.rules[name]; ok {
		return true
	}
	if _, ok := g.metaRules[name]; ok {
		return true
	}
	if _, ok := g.discardRules[name]; ok {
		return true
	}
	return false
}

// AlternativesOf looks up name in rules, then meta_rules, then
// discard_rules; the first hit wins (rule names are globally unique,
// so the order is cosmetic). It reports which kind matched.
func (g *GramSpec) AlternativesOf(name string) ([]expr.Expression, RuleKind, bool) {
	if alts, ok := g.rules[name]; ok {
		return alts, Ordinary, true
	}
	if alts, ok := g.metaRules[name]; ok {
		return alts, Meta, true
	}
	if alts, ok := g.discardRules[name]; ok {
		return alts, Discard, true
	}
	return nil, Ordinary, false
}

// IsLeftRecursive reports whether some alternative of name reaches name
// again via a left-spine walk. Rule(x) steps into x's alternatives;
// String/Regex/Keyword literals are dead ends; any other operator node
// recurses into each of its children. This deliberately over-
// approximates for Or (and for any other multi-child combinator) rather
// than tracking only the true leftmost branch, matching spec.md §4.3's
// documented behavior. A visited set of rule names already seen on the
// current walk prevents infinite descent through mutual recursion:
// revisiting any such name is itself treated as left-recursive.
func (g *GramSpec) IsLeftRecursive(name string) bool {
	alts, _, ok := g.AlternativesOf(name)
	if !ok {
		return false
	}
	visited := map[string]bool{}
	for _, alt := range alts {
		if reachesSelf(g, alt, name, visited) {
			return true
		}
	}
	return false
}

func reachesSelf(g *GramSpec, e expr.Expression, target string, visited map[string]bool) bool {
	if r, ok := e.(*expr.Rule); ok {
		if r.Name == target {
			return true
		}
		if visited[r.Name] {
			return true
		}
		visited[r.Name] = true
		alts, _, ok := g.AlternativesOf(r.Name)
		if !ok {
			return false
		}
		for _, alt := range alts {
			if reachesSelf(g, alt, target, visited) {
				return true
			}
		}
		return false
	}
	switch e.(type) {
	case *expr.StringLiteral, *expr.RegexLiteral, *expr.Keyword:
		return false
	}
	for _, c := range e.Children() {
		if reachesSelf(g, c, target, visited) {
			return true
		}
	}
	return false
}
