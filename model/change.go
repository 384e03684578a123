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

package model

import (
	"time"
)

// Op classifies what happened to a single tag key between two consecutive
// versions of an entity.
type Op int32

const (
	// ADDED denotes a key present only in the newer version.
	ADDED Op = iota

	// REMOVED denotes a key present only in the older version.
	REMOVED

	// MODIFIED denotes a key present in both versions with differing values.
	MODIFIED
)

// Change records one tag key that was added, removed, or had its value
// changed between two consecutive versions of the same entity.  OldValue is
// nil for an add, NewValue is nil for a remove; both are set for a value
// change.  OldVersion is nil when the newer version is the first ever seen
// for the entity.
type Change struct {
	Key      string
	OldValue *string
	NewValue *string

	Kind       Kind
	ID         ID
	OldVersion *int32
	NewVersion int32

	Timestamp time.Time
	User      string
	UID       UID
	Changeset int64
}

// Op classifies the change.
func (c Change) Op() Op {
	switch {
	case c.OldValue == nil:
		return ADDED
	case c.NewValue == nil:
		return REMOVED
	default:
		return MODIFIED
	}
}

// TagCountDelta is this key's contribution to the entity's tag count: +1 for
// an add, -1 for a remove, 0 for a pure value change.
func (c Change) TagCountDelta() int {
	switch c.Op() {
	case ADDED:
		return 1
	case REMOVED:
		return -1
	default:
		return 0
	}
}
