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

import "fmt"

// Diff compares two nodes structurally and returns a list of human
// readable mismatches, empty if the trees are equivalent. It is used by
// tests in place of reflect.DeepEqual so that span and kind mismatches
// get a readable message instead of a raw struct dump.
func Diff(got, want *Node) (diff []string) {
	if got == nil && want == nil {
		return nil
	}
	if got == nil {
		return []string{fmt.Sprintf("expected %s, got nil", want.describe())}
	}
	if want == nil {
		return []string{fmt.Sprintf("expected nil, got %s", got.describe())}
	}
	if got.Kind != want.Kind {
		diff = append(diff, fmt.Sprintf("expected kind %s, got %s", want.Kind, got.Kind))
	}
	if got.RuleName != want.RuleName {
		diff = append(diff, fmt.Sprintf("expected rule name %q, got %q", want.RuleName, got.RuleName))
	}
	if got.Text != want.Text {
		diff = append(diff, fmt.Sprintf("expected text %q, got %q", want.Text, got.Text))
	}
	if got.Start != want.Start || got.End != want.End {
		diff = append(diff, fmt.Sprintf("expected span [%d,%d), got [%d,%d)", want.Start, want.End, got.Start, got.End))
	}
	if len(got.Children) != len(want.Children) {
		diff = append(diff, fmt.Sprintf("expected %d children, got %d", len(want.Children), len(got.Children)))
	}
	n := len(got.Children)
	if len(want.Children) < n {
		n = len(want.Children)
	}
	for i := 0; i < n; i++ {
		diff = append(diff, Diff(got.Children[i], want.Children[i])...)
	}
	return diff
}

func (n *Node) describe() string {
	if n.Kind == KindTerminal {
		return fmt.Sprintf("terminal %q", n.Text)
	}
	return fmt.Sprintf("%s %q", n.Kind, n.RuleName)
}
