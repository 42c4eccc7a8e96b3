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

// Package gramerr defines the closed error taxonomy used across the
// grammar-language front-end and expression runtime. A failed match is
// never an error; only these eight conditions are.
package gramerr

import "fmt"

// IoError wraps a failure reading a grammar or input file.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io error reading %s: %s", e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// SyntaxError is raised by the grammar front-end when the grammar
// source itself does not parse.
type SyntaxError struct {
	Line, Column int
	Found        string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: syntax error near %q", e.Line, e.Column, e.Found)
}

// DuplicateRule is raised when a rule name is registered twice across
// the union of rules, meta-rules and discard-rules.
type DuplicateRule struct{ Name string }

func (e *DuplicateRule) Error() string {
	return fmt.Sprintf("rule %q is defined more than once", e.Name)
}

// UnknownRule is raised by the runtime dispatcher when a Rule(name)
// expression references a name with no registered alternatives.
type UnknownRule struct{ Name string }

func (e *UnknownRule) Error() string {
	return fmt.Sprintf("unknown rule: %s", e.Name)
}

// UnknownKeyword is raised by expect_keyword when the keyword table has
// no entry for the requested name.
type UnknownKeyword struct{ Name string }

func (e *UnknownKeyword) Error() string {
	return fmt.Sprintf("unknown keyword: %s", e.Name)
}

// UnknownConfig is raised by Config.Set for an unrecognized option name.
type UnknownConfig struct{ Name string }

func (e *UnknownConfig) Error() string {
	return fmt.Sprintf("unknown config option: %s", e.Name)
}

// BadValue is raised by Config.Set when the raw value cannot be
// interpreted as the option's type.
type BadValue struct{ Name, Raw string }

func (e *BadValue) Error() string {
	return fmt.Sprintf("bad value %q for config option %s", e.Raw, e.Name)
}

// ParseFailure is raised when the entry rule returns no match at all.
type ParseFailure struct{ Position int }

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("parse failed at position %d", e.Position)
}
