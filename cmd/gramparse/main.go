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

// Binary gramparse is the CLI surface of the parser generator,
// grounded on the teacher's parser2/cmd and generator/cmd binaries
// (both plain flag.FlagSet programs, no third-party CLI framework).
//
// Called with one positional argument, a grammar source file, it
// validates the grammar and reports its rule count and entry rule.
// Called with -grammar set, the positional argument is instead an
// input file to parse against that grammar, and the resulting parse
// tree is dumped to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	log "github.com/golang/glog"

	"github.com/matt-bowlby/gramspec-parser-generator/internal/iofile"
	"github.com/matt-bowlby/gramspec-parser-generator/pkg/gram"
)

var (
	grammarFlag = flag.String("grammar", "", "Path to a grammar file; if set, the positional argument is an input file to parse against it.")
	debug       = flag.Bool("debug", false, "Trace every rule invocation to the glog info log.")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	if *grammarFlag == "" {
		runValidate(ctx)
		return
	}
	runParse(ctx)
}

// runValidate treats the sole positional argument as a grammar file:
// it compiles the grammar and reports the rule count and entry rule.
func runValidate(ctx context.Context) {
	if flag.NArg() != 1 {
		log.Exit("gramparse: expected exactly one positional argument, a grammar file path")
	}
	path := flag.Arg(0)
	b, err := iofile.ReadFile(ctx, path)
	if err != nil {
		log.Exitf("gramparse: error reading grammar %q: %s", path, err)
	}
	g, err := gram.Compile(string(b))
	if err != nil {
		log.Exitf("gramparse: error compiling grammar %q: %s", path, err)
	}
	spec := g.Spec()
	fmt.Printf("%s: %d rules, entry rule %q\n", path, len(spec.RuleNames), spec.Config.EntryRule)
}

// runParse treats -grammar as the grammar file and the sole positional
// argument as the input file to parse against it.
func runParse(ctx context.Context) {
	if flag.NArg() != 1 {
		log.Exit("gramparse: expected exactly one positional argument, an input file path, with -grammar set")
	}
	grammarBytes, err := iofile.ReadFile(ctx, *grammarFlag)
	if err != nil {
		log.Exitf("gramparse: error reading grammar %q: %s", *grammarFlag, err)
	}
	g, err := gram.CompileWithOptions(string(grammarBytes), gram.Options{Debug: *debug})
	if err != nil {
		log.Exitf("gramparse: error compiling grammar %q: %s", *grammarFlag, err)
	}

	inputPath := flag.Arg(0)
	inputBytes, err := iofile.ReadFile(ctx, inputPath)
	if err != nil {
		log.Exitf("gramparse: error reading input %q: %s", inputPath, err)
	}

	root, err := g.Parse(string(inputBytes))
	if err != nil {
		log.Exitf("gramparse: error parsing %q: %s", inputPath, err)
	}
	fmt.Printf("%s\n", root)
	os.Exit(0)
}
