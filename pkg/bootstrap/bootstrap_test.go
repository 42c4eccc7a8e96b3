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

package bootstrap

import "testing"

func TestGrammarIsMemoizedAndStable(t *testing.T) {
	g1 := Grammar()
	g2 := Grammar()
	if g1 != g2 {
		t.Error("expected Grammar() to return the same instance across calls")
	}
}

func TestGrammarHasEntryRuleFile(t *testing.T) {
	g := Grammar()
	if g.Config.EntryRule != "file" {
		t.Errorf("EntryRule = %q, want %q", g.Config.EntryRule, "file")
	}
	if _, _, ok := g.AlternativesOf("construct"); !ok {
		t.Fatal("expected a \"construct\" rule")
	}
	if _, _, ok := g.AlternativesOf("expression"); !ok {
		t.Fatal("expected an \"expression\" rule")
	}
}

func TestGrammarExpressionIsLeftRecursive(t *testing.T) {
	g := Grammar()
	if !g.IsLeftRecursive("expression") {
		t.Error("the bootstrap's own \"expression\" rule must be left-recursive, exercising seed growth during its own parse")
	}
}
