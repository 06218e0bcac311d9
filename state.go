// Copyright 2024 Ahmad Sameh(asmsh)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package deferred

// State describes the status of a Deferred value.
//
// A Deferred value starts in the Pending state, and moves to either the
// Succeeded or the Failed state on each resolution episode.
// Unlike a typical promise, the Succeeded and Failed states are not final,
// as a Deferred value supports re-resolution.
// For more info, see 'Resolution and Re-Resolution' in the package comment.
type State int

const (
	// the order here matter
	Pending State = iota
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "<unknown>"
	}
}

// IsResolved returns true, only if the state is Succeeded or Failed.
//
// Note that, as re-resolution is allowed, a resolved state only describes
// the current resolution episode, not a final fate.
func (s State) IsResolved() bool {
	return s == Succeeded || s == Failed
}
