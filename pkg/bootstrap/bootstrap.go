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

// Package bootstrap holds the fixed, hand-authored grammar of the
// grammar language itself: a constant *gramspec.GramSpec built
// directly out of expr combinators, exactly as golang.org/x/exp/peg's
// initGrammar() hand-builds its own PEG-of-PEG Grammar value rather
// than parsing it from text. Driving the expression runtime against
// this constant eliminates the bootstrap circularity of a grammar
// parser that would otherwise need itself to exist first.
//
// The grammar is deliberately left-recursive at "expression" (alt |
// alt chains left-recurse through itself), matching spec.md §4.4's
// requirement that the front-end exercise the runtime's seed-growth
// path, not merely its ordinary dispatch.
package bootstrap

import (
	"sync"

	"github.com/matt-bowlby/gramspec-parser-generator/pkg/expr"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/gramspec"
)

var (
	once sync.Once
	gram *gramspec.GramSpec
)

// Grammar returns the constant GramSpec for the grammar language,
// building it on first use.
func Grammar() *gramspec.GramSpec {
	once.Do(build)
	return gram
}

func rule(name string, e expr.Expression) func(*gramspec.GramSpec) {
	return func(g *gramspec.GramSpec) {
		if err := g.AddRule(gramspec.Ordinary, name, []expr.Expression{e}); err != nil {
			panic(err)
		}
	}
}

func discardRule(name string, e expr.Expression) func(*gramspec.GramSpec) {
	return func(g *gramspec.GramSpec) {
		if err := g.AddRule(gramspec.Discard, name, []expr.Expression{e}); err != nil {
			panic(err)
		}
	}
}

func metaRule(name string, e expr.Expression) func(*gramspec.GramSpec) {
	return func(g *gramspec.GramSpec) {
		if err := g.AddRule(gramspec.Meta, name, []expr.Expression{e}); err != nil {
			panic(err)
		}
	}
}

func build() {
	g := gramspec.New()
	g.Config.EntryRule = "file"
	g.Config.IgnoreSpaces = true
	g.Config.IgnoreNewlines = false
	g.Config.IgnoreBetweenTokens = []string{"comment"}

	apply := []func(*gramspec.GramSpec){
		rule("file", &expr.And{
			A: &expr.RepeatZero{A: &expr.Or{
				A: &expr.Discard{A: &expr.Rule{Name: "nl"}},
				B: &expr.Rule{Name: "construct"},
			}},
			B: &expr.Keyword{Name: "ENDMARKER"},
		}),
		// construct is a meta-rule: it exists only to group the four
		// top-level alternatives, and unwraps so "file" sees the matched
		// rule_def/meta_rule_def/discard_rule_def/config_directive node
		// directly rather than nested one level deeper.
		metaRule("construct", &expr.Or{
			A: &expr.Or{A: &expr.Rule{Name: "rule_def"}, B: &expr.Rule{Name: "meta_rule_def"}},
			B: &expr.Or{A: &expr.Rule{Name: "discard_rule_def"}, B: &expr.Rule{Name: "config_directive"}},
		}),
		rule("rule_def", &expr.And{
			A: &expr.And{A: &expr.Rule{Name: "identifier"}, B: &expr.StringLiteral{Value: ":"}},
			B: &expr.And{A: &expr.Rule{Name: "expression"}, B: &expr.Rule{Name: "nl"}},
		}),
		rule("meta_rule_def", &expr.And{
			A: &expr.And{A: &expr.StringLiteral{Value: "$"}, B: &expr.Rule{Name: "identifier"}},
			B: &expr.And{
				A: &expr.StringLiteral{Value: ":"},
				B: &expr.And{A: &expr.Rule{Name: "expression"}, B: &expr.Rule{Name: "nl"}},
			},
		}),
		rule("discard_rule_def", &expr.And{
			A: &expr.And{A: &expr.StringLiteral{Value: "~"}, B: &expr.Rule{Name: "identifier"}},
			B: &expr.And{
				A: &expr.StringLiteral{Value: ":"},
				B: &expr.And{A: &expr.Rule{Name: "expression"}, B: &expr.Rule{Name: "nl"}},
			},
		}),
		rule("config_directive", &expr.And{
			A: &expr.And{A: &expr.StringLiteral{Value: "@"}, B: &expr.Rule{Name: "identifier"}},
			B: &expr.And{
				A: &expr.StringLiteral{Value: ":"},
				B: &expr.And{A: &expr.Rule{Name: "string_literal"}, B: &expr.Rule{Name: "nl"}},
			},
		}),
		// expression left-recurses through itself: "expr | sequence", else
		// falls back to a bare sequence. This is the rule that forces the
		// front-end's own parse through the runtime's seed-growth path.
		rule("expression", &expr.Or{
			A: &expr.And{
				A: &expr.Rule{Name: "expression"},
				B: &expr.And{A: &expr.StringLiteral{Value: "|"}, B: &expr.Rule{Name: "sequence"}},
			},
			B: &expr.Rule{Name: "sequence"},
		}),
		rule("sequence", &expr.RepeatOne{A: &expr.Rule{Name: "term"}}),
		rule("term", &expr.Or{
			A: &expr.Rule{Name: "comma_term"},
			B: &expr.Rule{Name: "postfix_term"},
		}),
		// "," binds tighter than postfix: a comma group must itself end in
		// + or *, selecting DelimitRepeatOne/DelimitRepeatZero.
		rule("comma_term", &expr.And{
			A: &expr.Rule{Name: "prefixed"},
			B: &expr.And{
				A: &expr.StringLiteral{Value: ","},
				B: &expr.And{
					A: &expr.Rule{Name: "prefixed"},
					B: &expr.Or{A: &expr.StringLiteral{Value: "+"}, B: &expr.StringLiteral{Value: "*"}},
				},
			},
		}),
		rule("postfix_term", &expr.And{
			A: &expr.Rule{Name: "prefixed"},
			B: &expr.Optional{A: &expr.Or{
				A: &expr.Or{A: &expr.StringLiteral{Value: "+"}, B: &expr.StringLiteral{Value: "*"}},
				B: &expr.StringLiteral{Value: "?"},
			}},
		}),
		// "~value" / "$value" apply to a single following value.
		rule("prefixed", &expr.And{
			A: &expr.Optional{A: &expr.Or{A: &expr.StringLiteral{Value: "~"}, B: &expr.StringLiteral{Value: "$"}}},
			B: &expr.Rule{Name: "atom"},
		}),
		rule("atom", &expr.Or{
			A: &expr.Or{A: &expr.Rule{Name: "group"}, B: &expr.Rule{Name: "string_literal"}},
			B: &expr.Or{A: &expr.Rule{Name: "regex_literal"}, B: &expr.Rule{Name: "identifier"}},
		}),
		rule("group", &expr.And{
			A: &expr.StringLiteral{Value: "("},
			B: &expr.And{A: &expr.Rule{Name: "expression"}, B: &expr.StringLiteral{Value: ")"}},
		}),
		rule("identifier", &expr.RegexLiteral{Pattern: `[a-z][a-z0-9_]*`}),
		rule("string_literal", &expr.RegexLiteral{Pattern: `'(?:\\.|[^'\\])*'`}),
		rule("regex_literal", &expr.RegexLiteral{Pattern: `r'(?:\\.|[^'\\])*'`}),
		rule("nl", &expr.RegexLiteral{Pattern: `[ \t]*\n`}),
		discardRule("comment", &expr.RegexLiteral{Pattern: `#[^\n]*`}),
	}
	for _, f := range apply {
		f(g)
	}
	gram = g
}
