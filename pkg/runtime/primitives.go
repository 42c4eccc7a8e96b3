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
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matt-bowlby/gramspec-parser-generator/pkg/node"
)

// expectString succeeds if the input at the cursor begins with s,
// advancing the cursor past it and emitting one terminal node. Skip
// is localized here, not in the combinators, so that a failing
// combinator always leaves the cursor at its pre-call value: on
// failure the attempted skip is undone along with everything else.
func (e *Engine) expectString(s string) (*node.Node, bool, error) {
	start := e.cursor
	if n, ok := e.tryLiteral(s, start); ok {
		return n, true, nil
	}
	if !e.skipEnabled() {
		e.cursor = start
		return nil, false, nil
	}
	if err := e.skipTrivia(); err != nil {
		e.cursor = start
		return nil, false, err
	}
	if n, ok := e.tryLiteral(s, e.cursor); ok {
		return n, true, nil
	}
	e.cursor = start
	return nil, false, nil
}

// endOfInput is the keyword table's documented default for ENDMARKER.
// There is no real NUL byte at the end of ordinary input, so this one
// literal value is special-cased to mean "cursor at end of content"
// rather than a byte to search for.
const endOfInput = "\x00"

func (e *Engine) tryLiteral(s string, at int) (*node.Node, bool) {
	if s == endOfInput {
		if at != len(e.content) {
			return nil, false
		}
		e.cursor = at
		return node.NewTerminal("", at, at), true
	}
	if !strings.HasPrefix(e.content[at:], s) {
		return nil, false
	}
	end := at + len(s)
	e.cursor = end
	return node.NewTerminal(s, at, end), true
}

// expectRegex matches the anchored regex re against the prefix at the
// cursor, with the same skip-then-retry contract as expectString.
func (e *Engine) expectRegex(re *regexp.Regexp) (*node.Node, bool, error) {
	start := e.cursor
	if n, ok := e.tryRegex(re, start); ok {
		return n, true, nil
	}
	if !e.skipEnabled() {
		e.cursor = start
		return nil, false, nil
	}
	if err := e.skipTrivia(); err != nil {
		e.cursor = start
		return nil, false, err
	}
	if n, ok := e.tryRegex(re, e.cursor); ok {
		return n, true, nil
	}
	e.cursor = start
	return nil, false, nil
}

func (e *Engine) tryRegex(re *regexp.Regexp, at int) (*node.Node, bool) {
	loc := re.FindStringIndex(e.content[at:])
	if loc == nil {
		return nil, false
	}
	end := at + loc[1]
	e.cursor = end
	return node.NewTerminal(e.content[at:end], at, end), true
}

// isSkippedSpace reports whether r is a space/tab the inter-token skip
// always consumes, excluding the line terminators ignore_newlines
// gates separately.
func isSkippedSpace(r rune) bool {
	return unicode.IsSpace(r) && r != '\r' && r != '\n'
}

// isNewline reports whether r is a line terminator byte.
func isNewline(r rune) bool {
	return r == '\r' || r == '\n'
}

func (e *Engine) skipEnabled() bool {
	if e.skipping {
		return false
	}
	c := e.gram.Config
	return c.IgnoreSpaces || c.IgnoreNewlines || len(c.IgnoreBetweenTokens) > 0
}

// skipTrivia consumes the fixed inter-token skip (spec.md §4.5.5):
// runs of spaces/tabs, optionally line terminators, and repeated
// attempts at whatever rules ignore_between_tokens names, until a
// full pass makes no further progress. While it runs the primitives do
// not skip, so a trivia rule that fails to match cannot re-enter it.
func (e *Engine) skipTrivia() error {
	e.skipping = true
	defer func() { e.skipping = false }()
	for {
		progressed := false
		for e.cursor < len(e.content) {
			r, w := utf8.DecodeRuneInString(e.content[e.cursor:])
			if e.gram.Config.IgnoreSpaces && isSkippedSpace(r) {
				e.cursor += w
				progressed = true
				continue
			}
			if e.gram.Config.IgnoreNewlines && isNewline(r) {
				e.cursor += w
				progressed = true
				continue
			}
			break
		}
		for _, name := range e.gram.Config.IgnoreBetweenTokens {
			save := e.cursor
			_, ok, err := e.dispatchRule(name)
			if err != nil {
				e.cursor = save
				return err
			}
			if ok && e.cursor > save {
				progressed = true
			} else {
				e.cursor = save
			}
		}
		if !progressed {
			return nil
		}
	}
}
