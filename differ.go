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
	"errors"
	"fmt"
	"maps"
	"slices"

	"m4o.io/tagdiff/model"
)

// ErrUnsorted is returned when a version number regresses for an entity the
// differ already holds state for.  Input must arrive version-ordered and
// contiguous per entity; the differ does not re-sort.
var ErrUnsorted = errors.New("input not sorted by version")

// objectState is the retained state for one entity: the tag set and version
// number of its most recently seen version.
type objectState struct {
	tags    model.Tags
	version int32
}

// Differ computes per-key tag differences between consecutive versions of
// the same entity.  It exclusively owns its state map for the duration of a
// run and is not safe for concurrent use.
type Differ struct {
	opts  differOptions
	state map[model.Ref]*objectState
}

// NewDiffer returns a differ with no retained state.
func NewDiffer(opts ...Option) *Differ {
	o := defaultDifferOptions
	for _, opt := range opts {
		opt(&o)
	}

	return &Differ{
		opts:  o,
		state: make(map[model.Ref]*objectState),
	}
}

// Objects reports the number of entities the differ holds state for.
func (d *Differ) Objects() int {
	return len(d.state)
}

// Process consumes one entity version and returns the tag changes relative
// to the previous version of the same entity, in ascending lexicographic key
// order.  A first-ever version is diffed against the empty set, as is any
// version following a deletion.  An invisible version contributes an empty
// tag set, so every previously held key is emitted as removed.  A version
// with no tag differences returns an empty slice; that is expected, not an
// error.
func (d *Differ) Process(v model.Version) ([]model.Change, error) {
	if !d.opts.allowKind(v.Kind) {
		return nil, nil
	}

	ref := v.Ref()

	var prev model.Tags

	var oldVersion *int32

	st, ok := d.state[ref]
	if ok {
		if v.Version < st.version {
			return nil, fmt.Errorf("%w: %s %d version %d after %d",
				ErrUnsorted, v.Kind, v.ID, v.Version, st.version)
		}

		prev = st.tags
		last := st.version
		oldVersion = &last
	}

	curr := model.Tags{}
	if v.Visible {
		curr = d.opts.restrict(v.Tags)
	}

	var changes []model.Change
	if d.opts.allowUID(v.UID) {
		changes = diff(prev, curr, v, oldVersion)
	}

	// State updates even when emission is suppressed, so a later version
	// still diffs against the true previous tag set.
	if ok {
		st.tags = curr
		st.version = v.Version
	} else {
		d.state[ref] = &objectState{tags: curr, version: v.Version}
	}

	return changes, nil
}

// diff emits one change per key whose value differs between prev and curr.
func diff(prev, curr model.Tags, v model.Version, oldVersion *int32) []model.Change {
	keys := make([]string, 0, len(prev)+len(curr))
	keys = slices.AppendSeq(keys, maps.Keys(curr))

	for key := range prev {
		if _, ok := curr[key]; !ok {
			keys = append(keys, key)
		}
	}

	slices.Sort(keys)

	changes := make([]model.Change, 0, len(keys))

	for _, key := range keys {
		oldValue, hadOld := prev[key]
		newValue, hasNew := curr[key]

		if hadOld && hasNew && oldValue == newValue {
			continue
		}

		c := model.Change{
			Key:        key,
			Kind:       v.Kind,
			ID:         v.ID,
			OldVersion: oldVersion,
			NewVersion: v.Version,
			Timestamp:  v.Timestamp,
			User:       v.User,
			UID:        v.UID,
			Changeset:  v.Changeset,
		}

		if hadOld {
			c.OldValue = &oldValue
		}

		if hasNew {
			c.NewValue = &newValue
		}

		changes = append(changes, c)
	}

	return changes
}
