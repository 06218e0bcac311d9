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

package deferred_test

import (
	"testing"

	"github.com/asmsh/deferred"
)

func BenchmarkNew(b *testing.B) {
	var dd *deferred.Deferred[int]

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dd = deferred.New[int]()
	}
	_ = dd
}

func BenchmarkResolve(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		d := deferred.New[int]()
		d.Resolve(deferred.Succeeded, i)
	}
}

func BenchmarkOnSuccess_Drain(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		d := deferred.New[int]()
		d.OnSuccessVal(func(val int) {})
		d.Succeed(i)
	}
}

func BenchmarkOnSuccess_Inline(b *testing.B) {
	d := deferred.Succeed(1)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.OnSuccessVal(func(val int) {})
	}
}

func BenchmarkReResolve(b *testing.B) {
	d := deferred.New[int]()
	d.OnSuccessVal(func(val int) {})
	d.OnFailureVal(func(val int) {})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%2 == 0 {
			d.Succeed(i)
		} else {
			d.Fail(i)
		}
	}
}
