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

package gram

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matt-bowlby/gramspec-parser-generator/internal/iofile"
)

func TestParseConvenience(t *testing.T) {
	root, err := Parse("file : 'a'+\n", "aaa")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(root.Children) != 3 {
		t.Errorf("expected 3 children, got %d", len(root.Children))
	}
}

func TestCompileInvalidGrammarReturnsError(t *testing.T) {
	if _, err := Compile("file : @@@\n"); err == nil {
		t.Fatal("expected an error compiling a malformed grammar")
	}
}

func TestParseAllRejectsUnconsumedTail(t *testing.T) {
	g, err := Compile("file : 'a'\n")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := g.Parse("ab"); err != nil {
		t.Errorf("Parse should tolerate an unconsumed tail, got: %v", err)
	}
	if _, err := g.ParseAll("ab"); err == nil {
		t.Error("ParseAll should reject an unconsumed tail")
	}
}

func TestCompileFileAndParseFileViaMemfs(t *testing.T) {
	ctx := context.Background()
	if err := iofile.WriteFile(ctx, "/memfs/grammar.peg", []byte("file : 'a'+\n")); err != nil {
		t.Fatalf("WriteFile(grammar): %v", err)
	}
	if err := iofile.WriteFile(ctx, "/memfs/input.txt", []byte("aaaa")); err != nil {
		t.Fatalf("WriteFile(input): %v", err)
	}
	g, err := CompileFile(ctx, "/memfs/grammar.peg")
	if err != nil {
		t.Fatalf("CompileFile: %v", err)
	}
	root, err := g.ParseFile(ctx, "/memfs/input.txt")
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(root.Children) != 4 {
		t.Errorf("expected 4 children, got %d", len(root.Children))
	}
}

// TestParseIsDeterministic re-parses the same grammar and input twice
// and requires structurally identical trees, comparing the two trees'
// Format dumps with go-cmp.
func TestParseIsDeterministic(t *testing.T) {
	g, err := Compile("file : digit,(',')+\ndigit : r'[0-9]'\n")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	a, err := g.Parse("1,2,3")
	if err != nil {
		t.Fatalf("Parse (first): %v", err)
	}
	b, err := g.Parse("1,2,3")
	if err != nil {
		t.Fatalf("Parse (second): %v", err)
	}
	if diff := cmp.Diff(a.Format(""), b.Format("")); diff != "" {
		t.Errorf("repeated parses of the same input diverged (-first +second):\n%s", diff)
	}
}

func TestSpecExposesCompiledGrammar(t *testing.T) {
	g, err := Compile("@entry_rule : 'top'\ntop : 'a'\n")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if g.Spec().Config.EntryRule != "top" {
		t.Errorf("EntryRule = %q, want %q", g.Spec().Config.EntryRule, "top")
	}
}
