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

// Package tagdiff turns an ordered stream of OpenStreetMap entity versions
// into discrete tag-change records, one per tag key that was added, removed,
// or modified between consecutive versions of the same entity.
//
// The Differ is a single-pass, single-threaded engine: it owns a state map of
// the most recently seen tag set per entity and emits zero or more changes
// per consumed version.  The Projector renders changes into caller-selected
// output columns, and the RowWriter serializes the projected fields into
// backslash-escaped delimited rows.
package tagdiff
