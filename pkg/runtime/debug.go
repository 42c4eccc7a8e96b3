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
	log "github.com/golang/glog"
)

const lookaheadWidth = 24

// trace implements the debug mode toggle from spec.md §6: when
// e.Debug is set, every rule invocation prints its name, cursor, and
// a short lookahead window, in the style of the teacher's
// log.V(N).Infof rule-trace calls (parser2/parser2.go) and
// golang.org/x/exp/peg's debugTrace.
func (e *Engine) trace(name string) {
	if !e.Debug {
		return
	}
	end := e.cursor + lookaheadWidth
	if end > len(e.content) {
		end = len(e.content)
	}
	log.Infof("%*s> %s [%d] %q", e.depth*2, "", name, e.cursor, e.content[e.cursor:end])
}
