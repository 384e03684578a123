// Copyright 2026 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tagdiff

import (
	"strconv"
	"testing"

	"m4o.io/tagdiff/model"
)

func BenchmarkProcess(b *testing.B) {
	d := NewDiffer()

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		id := model.ID(i % 1024)
		v := version(model.NODE, id, int32(i/1024+1), model.Tags{
			"highway": "residential",
			"name":    "Street " + strconv.Itoa(i%7),
			"surface": "asphalt",
		})

		if _, err := d.Process(v); err != nil {
			b.Fatal(err)
		}
	}
}
