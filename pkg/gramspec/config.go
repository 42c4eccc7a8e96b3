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

import (
	"errors"
	"strings"

	"github.com/matt-bowlby/gramspec-parser-generator/pkg/gramerr"
)

var errNotBool = errors.New("not a bool")

// Config holds the four recognized @directive options. It generalizes
// the teacher's ParserOptions (parser2/parser2.go), which was a closed
// Go struct populated by the caller, into a name/string setter so it
// can be driven by "@name : 'value'" lines parsed out of grammar
// source.
type Config struct {
	EntryRule            string
	IgnoreSpaces         bool
	IgnoreNewlines       bool
	IgnoreBetweenTokens  []string
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{EntryRule: "file"}
}

// Set applies one @name : 'value' directive. It returns UnknownConfig
// for an unrecognized name and BadValue when the raw text cannot be
// interpreted as the option's type.
func (c *Config) Set(name, raw string) error {
	switch name {
	case "entry_rule":
		c.EntryRule = raw
		return nil
	case "ignore_spaces":
		b, err := parseBool(raw)
		if err != nil {
			return &gramerr.BadValue{Name: name, Raw: raw}
		}
		c.IgnoreSpaces = b
		return nil
	case "ignore_newlines":
		b, err := parseBool(raw)
		if err != nil {
			return &gramerr.BadValue{Name: name, Raw: raw}
		}
		c.IgnoreNewlines = b
		return nil
	case "ignore_between_tokens":
		var names []string
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				names = append(names, part)
			}
		}
		c.IgnoreBetweenTokens = names
		return nil
	default:
		return &gramerr.UnknownConfig{Name: name}
	}
}

func parseBool(raw string) (bool, error) {
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, errNotBool
	}
}
