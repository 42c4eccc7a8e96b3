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

package node

import "testing"

func TestEndOfSubtreeLeafless(t *testing.T) {
	n := New(KindRule, 5, 5)
	if got := n.EndOfSubtree(); got != 5 {
		t.Errorf("EndOfSubtree() = %d, want 5", got)
	}
}

func TestEndOfSubtreeRecomputesFromDescendants(t *testing.T) {
	leaf := NewTerminal("abc", 0, 3)
	rule := NewRule("file", 0, []*Node{leaf})
	if rule.End != 3 {
		t.Errorf("rule.End = %d, want 3", rule.End)
	}
}

func TestFormatEscapesTerminalText(t *testing.T) {
	n := NewRule("file", 0, []*Node{NewTerminal("a\nb", 0, 3)})
	got := n.Format("")
	want := "(file\n  \"a\\nb\")"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestDiffReportsMismatches(t *testing.T) {
	got := NewRule("file", 0, []*Node{NewTerminal("a", 0, 1)})
	want := NewRule("file", 0, []*Node{NewTerminal("b", 0, 1)})
	diff := Diff(got, want)
	if len(diff) == 0 {
		t.Fatal("expected a diff for mismatched terminal text")
	}
}

func TestDiffEmptyForEquivalentTrees(t *testing.T) {
	a := NewRule("file", 0, []*Node{NewTerminal("a", 0, 1)})
	b := NewRule("file", 0, []*Node{NewTerminal("a", 0, 1)})
	if diff := Diff(a, b); len(diff) != 0 {
		t.Errorf("expected no diff, got %v", diff)
	}
}

func TestAppendAndExtend(t *testing.T) {
	n := New(KindRule, 0, 0)
	n.Append(NewTerminal("a", 0, 1))
	n.Extend([]*Node{NewTerminal("b", 1, 2), NewTerminal("c", 2, 3)})
	if len(n.Children) != 3 {
		t.Fatalf("len(Children) = %d, want 3", len(n.Children))
	}
}
