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

// KeywordTable is a fixed mapping from symbolic name to literal text,
// consulted by Keyword(k) expressions.
type KeywordTable map[string]string

// DefaultKeywordTable returns a table that always includes the
// end-of-input sentinel ENDMARKER.
func DefaultKeywordTable() KeywordTable {
	return KeywordTable{"ENDMARKER": "\x00"}
}

// Extend adds or overwrites one keyword entry.
func (t KeywordTable) Extend(name, value string) {
	t[name] = value
}

// Lookup resolves a keyword name to its literal text.
func (t KeywordTable) Lookup(name string) (string, bool) {
	v, ok := t[name]
	return v, ok
}
