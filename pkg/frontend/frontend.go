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

// Package frontend turns grammar source text into a *gramspec.GramSpec.
// It parses the source with the expression runtime driven against the
// constant bootstrap.Grammar(), then folds the resulting parse tree
// into Expression values and registers each rule definition — the
// bottom-up tree fold the teacher implements generically with
// parser2/construct.go's Accessor/Construct and generator/peg.go's
// callback. This grammar's tree shape is fixed and known in advance
// (it is the bootstrap grammar, not an arbitrary user grammar), so the
// fold here is a direct switch over rule names instead of a reusable
// reflection-based accessor.
package frontend

import (
	"fmt"
	"strings"

	"github.com/matt-bowlby/gramspec-parser-generator/pkg/bootstrap"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/expr"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/gramerr"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/gramspec"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/node"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/runtime"
)

// Parse builds a GramSpec from grammar source text.
func Parse(source string) (*gramspec.GramSpec, error) {
	eng := runtime.New(bootstrap.Grammar(), source)
	root, err := eng.Run()
	if err != nil {
		if pf, ok := err.(*gramerr.ParseFailure); ok {
			line, col, found := locate(source, pf.Position)
			return nil, &gramerr.SyntaxError{Line: line, Column: col, Found: found}
		}
		return nil, err
	}
	return build(root)
}

func locate(source string, pos int) (line, col int, found string) {
	if pos > len(source) {
		pos = len(source)
	}
	line = 1 + strings.Count(source[:pos], "\n")
	if i := strings.LastIndexByte(source[:pos], '\n'); i >= 0 {
		col = pos - i
	} else {
		col = pos + 1
	}
	end := pos + 16
	if end > len(source) {
		end = len(source)
	}
	return line, col, source[pos:end]
}

// build walks the "file" root node and registers every rule
// definition and config directive it contains.
func build(root *node.Node) (*gramspec.GramSpec, error) {
	g := gramspec.New()
	for _, child := range root.Children {
		if child.Kind != node.KindRule {
			continue
		}
		switch child.RuleName {
		case "rule_def":
			if err := addRuleDef(g, gramspec.Ordinary, child); err != nil {
				return nil, err
			}
		case "meta_rule_def":
			if err := addRuleDef(g, gramspec.Meta, child); err != nil {
				return nil, err
			}
		case "discard_rule_def":
			if err := addRuleDef(g, gramspec.Discard, child); err != nil {
				return nil, err
			}
		case "config_directive":
			if err := applyConfigDirective(g, child); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// rule_def/meta_rule_def/discard_rule_def all share the shape
// (prefix)? identifier ':' expression nl — the prefix, when present,
// and the ':' are literal matches that appear only as terminal
// children, which are skipped here, so in every case the name comes
// from the identifier-kind child and the body is the expression-kind
// child.
func addRuleDef(g *gramspec.GramSpec, kind gramspec.RuleKind, n *node.Node) error {
	name, bodyNode, err := splitRuleDef(n)
	if err != nil {
		return err
	}
	body, err := convertExpression(bodyNode)
	if err != nil {
		return err
	}
	return g.AddRule(kind, name, []expr.Expression{body})
}

func splitRuleDef(n *node.Node) (name string, body *node.Node, err error) {
	var ident, expression *node.Node
	for _, ch := range n.Children {
		switch ch.RuleName {
		case "identifier":
			ident = ch
		case "expression":
			expression = ch
		}
	}
	if ident == nil || len(ident.Children) == 0 {
		return "", nil, fmt.Errorf("frontend: malformed rule definition: %s", n)
	}
	if expression == nil {
		return "", nil, fmt.Errorf("frontend: malformed rule definition: %s", n)
	}
	return ident.Children[0].Text, expression, nil
}

func applyConfigDirective(g *gramspec.GramSpec, n *node.Node) error {
	var ident, value *node.Node
	for _, ch := range n.Children {
		switch ch.RuleName {
		case "identifier":
			ident = ch
		case "string_literal":
			value = ch
		}
	}
	if ident == nil || value == nil || len(ident.Children) == 0 || len(value.Children) == 0 {
		return fmt.Errorf("frontend: malformed config directive: %s", n)
	}
	raw, err := unescapeLiteral(value.Children[0].Text)
	if err != nil {
		return err
	}
	return g.Config.Set(ident.Children[0].Text, raw)
}

// convertExpression folds one node of the grammar's own parse tree
// into an expr.Expression. Most of the grammar's rules exist only to
// encode operator precedence ("expression" over "sequence" over
// "term" over "prefixed" over "atom") and contribute no combinator of
// their own — they pass straight through to whichever alternative or
// child actually matched.
func convertExpression(n *node.Node) (expr.Expression, error) {
	switch n.RuleName {
	case "expression":
		switch len(n.Children) {
		case 1:
			return convertExpression(n.Children[0])
		case 3:
			a, err := convertExpression(n.Children[0])
			if err != nil {
				return nil, err
			}
			b, err := convertExpression(n.Children[2])
			if err != nil {
				return nil, err
			}
			return &expr.Or{A: a, B: b}, nil
		default:
			return nil, fmt.Errorf("frontend: malformed expression: %s", n)
		}
	case "sequence":
		if len(n.Children) == 0 {
			return nil, fmt.Errorf("frontend: empty sequence: %s", n)
		}
		result, err := convertExpression(n.Children[0])
		if err != nil {
			return nil, err
		}
		for _, ch := range n.Children[1:] {
			next, err := convertExpression(ch)
			if err != nil {
				return nil, err
			}
			result = &expr.And{A: result, B: next}
		}
		return result, nil
	case "term":
		if len(n.Children) != 1 {
			return nil, fmt.Errorf("frontend: malformed term: %s", n)
		}
		return convertExpression(n.Children[0])
	case "comma_term":
		if len(n.Children) != 4 {
			return nil, fmt.Errorf("frontend: malformed comma term: %s", n)
		}
		a, err := convertExpression(n.Children[0])
		if err != nil {
			return nil, err
		}
		d, err := convertExpression(n.Children[2])
		if err != nil {
			return nil, err
		}
		switch n.Children[3].Text {
		case "+":
			return &expr.DelimitRepeatOne{A: a, D: d}, nil
		case "*":
			return &expr.DelimitRepeatZero{A: a, D: d}, nil
		default:
			return nil, fmt.Errorf("frontend: comma group must end in + or *, got %q", n.Children[3].Text)
		}
	case "postfix_term":
		switch len(n.Children) {
		case 1:
			return convertExpression(n.Children[0])
		case 2:
			a, err := convertExpression(n.Children[0])
			if err != nil {
				return nil, err
			}
			switch n.Children[1].Text {
			case "?":
				return &expr.Optional{A: a}, nil
			case "*":
				return &expr.RepeatZero{A: a}, nil
			case "+":
				return &expr.RepeatOne{A: a}, nil
			default:
				return nil, fmt.Errorf("frontend: unknown postfix operator %q", n.Children[1].Text)
			}
		default:
			return nil, fmt.Errorf("frontend: malformed postfix term: %s", n)
		}
	case "prefixed":
		switch len(n.Children) {
		case 1:
			return convertExpression(n.Children[0])
		case 2:
			a, err := convertExpression(n.Children[1])
			if err != nil {
				return nil, err
			}
			switch n.Children[0].Text {
			case "~":
				return &expr.Discard{A: a}, nil
			case "$":
				return &expr.Meta{A: a}, nil
			default:
				return nil, fmt.Errorf("frontend: unknown prefix %q", n.Children[0].Text)
			}
		default:
			return nil, fmt.Errorf("frontend: malformed prefixed value: %s", n)
		}
	case "atom":
		if len(n.Children) != 1 {
			return nil, fmt.Errorf("frontend: malformed atom: %s", n)
		}
		return convertExpression(n.Children[0])
	case "group":
		// "(" expression ")": the parens are plain literal matches, so
		// the meaningful child is the middle one.
		if len(n.Children) != 3 {
			return nil, fmt.Errorf("frontend: malformed group: %s", n)
		}
		return convertExpression(n.Children[1])
	case "identifier":
		if len(n.Children) == 0 {
			return nil, fmt.Errorf("frontend: empty identifier: %s", n)
		}
		return &expr.Rule{Name: n.Children[0].Text}, nil
	case "string_literal":
		if len(n.Children) == 0 {
			return nil, fmt.Errorf("frontend: empty string literal: %s", n)
		}
		value, err := unescapeLiteral(n.Children[0].Text)
		if err != nil {
			return nil, err
		}
		return &expr.StringLiteral{Value: value}, nil
	case "regex_literal":
		if len(n.Children) == 0 {
			return nil, fmt.Errorf("frontend: empty regex literal: %s", n)
		}
		return &expr.RegexLiteral{Pattern: unescapeRegexBody(n.Children[0].Text)}, nil
	default:
		return nil, fmt.Errorf("frontend: unexpected node in expression position: %s", n.RuleName)
	}
}

// unescapeLiteral strips the surrounding quotes from a string_literal
// token's raw text and resolves backslash escapes meaningful to a
// literal match string.
func unescapeLiteral(raw string) (string, error) {
	if len(raw) < 2 || raw[0] != '\'' || raw[len(raw)-1] != '\'' {
		return "", fmt.Errorf("frontend: malformed string literal %q", raw)
	}
	body := raw[1 : len(raw)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) {
			i++
			switch body[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(body[i])
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}

// unescapeRegexBody strips the leading "r'" and trailing "'" from a
// regex_literal token's raw text. Only the escape that exists purely
// to let a literal quote appear inside the pattern (\') is resolved;
// every other backslash sequence is passed through untouched so the
// regex engine sees its own escapes intact.
func unescapeRegexBody(raw string) string {
	if len(raw) < 3 || raw[0] != 'r' || raw[1] != '\'' || raw[len(raw)-1] != '\'' {
		return raw
	}
	body := raw[2 : len(raw)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) && body[i+1] == '\'' {
			b.WriteByte('\'')
			i++
			continue
		}
		b.WriteByte(body[i])
	}
	return b.String()
}
