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

// Package gram is the library surface of the parser generator: it
// compiles grammar source into a *gramspec.GramSpec (via pkg/frontend)
// and drives that GramSpec against input text (via pkg/runtime),
// mirroring the documented parse(text) -> Node | Error and
// parse_file(path) -> Node | Error operations. It plays the role the
// teacher's top-level generator/peg.go and parser2/parser2.go play
// together, minus code generation: here the compiled grammar is held
// in memory and interpreted directly rather than emitted as Go source.
package gram

import (
	"context"
	"fmt"

	"github.com/matt-bowlby/gramspec-parser-generator/internal/iofile"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/frontend"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/gramerr"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/gramspec"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/node"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/runtime"
)

// Options toggles runtime behavior that does not belong in the
// grammar source itself.
type Options struct {
	// Debug enables the runtime's rule-invocation trace (spec.md §6).
	Debug bool
}

// Grammar is a compiled grammar ready to parse input text. Compiling
// is separated from parsing so that one grammar can be reused across
// many inputs without re-running the front-end.
type Grammar struct {
	spec *gramspec.GramSpec
	opts Options
}

// Compile parses grammar source into a reusable Grammar.
func Compile(source string) (*Grammar, error) {
	return CompileWithOptions(source, Options{})
}

// CompileWithOptions is Compile with explicit Options applied to every
// subsequent Parse call.
func CompileWithOptions(source string, opts Options) (*Grammar, error) {
	spec, err := frontend.Parse(source)
	if err != nil {
		return nil, err
	}
	return &Grammar{spec: spec, opts: opts}, nil
}

// CompileFile reads path (honoring the "/memfs/" prefix convention,
// see internal/iofile) and compiles its contents as grammar source.
func CompileFile(ctx context.Context, path string) (*Grammar, error) {
	contents, err := iofile.ReadFile(ctx, path)
	if err != nil {
		return nil, &gramerr.IoError{Path: path, Err: err}
	}
	return Compile(string(contents))
}

// Parse runs text through the compiled grammar's entry rule and
// returns the root parse-tree node. It does not itself require that
// the entry rule consume all of text; use ParseAll to additionally
// require full consumption.
func (g *Grammar) Parse(text string) (*node.Node, error) {
	eng := runtime.New(g.spec, text)
	eng.Debug = g.opts.Debug
	return eng.Run()
}

// ParseAll is Parse, plus a check that the match reached the end of
// text; a root match that stops short is reported as ParseFailure at
// the stopping position rather than silently accepted.
func (g *Grammar) ParseAll(text string) (*node.Node, error) {
	eng := runtime.New(g.spec, text)
	eng.Debug = g.opts.Debug
	root, err := eng.Run()
	if err != nil {
		return nil, err
	}
	if eng.Cursor() != len(text) {
		return nil, &gramerr.ParseFailure{Position: eng.Cursor()}
	}
	return root, nil
}

// ParseFile reads path (honoring the "/memfs/" prefix convention) and
// parses it with Parse.
func (g *Grammar) ParseFile(ctx context.Context, path string) (*node.Node, error) {
	contents, err := iofile.ReadFile(ctx, path)
	if err != nil {
		return nil, &gramerr.IoError{Path: path, Err: err}
	}
	return g.Parse(string(contents))
}

// Spec exposes the compiled GramSpec, e.g. for a caller that wants the
// rule count or configured entry rule without parsing anything.
func (g *Grammar) Spec() *gramspec.GramSpec {
	return g.spec
}

// Parse is a one-shot convenience combining Compile and Parse: it
// compiles grammarSource and immediately parses text against it. A
// caller that will parse many inputs against the same grammar should
// use Compile once and call Grammar.Parse repeatedly instead.
func Parse(grammarSource, text string) (*node.Node, error) {
	g, err := Compile(grammarSource)
	if err != nil {
		return nil, fmt.Errorf("gram: compiling grammar: %w", err)
	}
	return g.Parse(text)
}
