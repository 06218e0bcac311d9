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

// New returns a new Deferred value in the Pending state, configured with the
// provided Config, c, if any.
//
// The Deferred is resolved later by whichever collaborator initiated the
// asynchronous operation, through its Resolve, Succeed, or Fail methods, or
// by a timeout scheduled through its ScheduleTimeout method.
func New[T any](c ...*Config) *Deferred[T] {
	return &Deferred[T]{core: newCore(c)}
}

// Succeed returns a new Deferred value that's already resolved to Succeeded,
// synchronously, with the passed values, vals, as its payload.
//
// Success handlers attached to it later run immediately, inline with the
// attaching call.
//
// The provided vals, if passed from a slice/array, the slice/array shouldn't
// be modified after this call.
func Succeed[T any](vals ...T) *Deferred[T] {
	d := &Deferred[T]{}
	d.status = Succeeded
	d.payload = vals
	return d
}

// Fail returns a new Deferred value that's already resolved to Failed,
// synchronously, with the passed values, vals, as its payload.
//
// Failure handlers attached to it later run immediately, inline with the
// attaching call.
//
// The provided vals, if passed from a slice/array, the slice/array shouldn't
// be modified after this call.
func Fail[T any](vals ...T) *Deferred[T] {
	d := &Deferred[T]{}
	d.status = Failed
	d.payload = vals
	return d
}
