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
	"m4o.io/tagdiff/model"
)

// differOptions provides optional configuration parameters for Differ
// construction.  Filters must not change for the lifetime of a run.
type differOptions struct {
	kinds map[model.Kind]struct{} // entity kinds to process, nil for all
	keys  map[string]struct{}     // tag key allow-list, nil for all
	uids  map[model.UID]struct{}  // author allow-list, nil for all
}

// Option configures how we set up the differ.
type Option func(*differOptions)

// WithKinds restricts processing to the given entity kinds.  Records of
// other kinds are dropped before any state is created for them.
func WithKinds(kinds ...model.Kind) Option {
	return func(o *differOptions) {
		if o.kinds == nil {
			o.kinds = make(map[model.Kind]struct{}, len(kinds))
		}

		for _, k := range kinds {
			o.kinds[k] = struct{}{}
		}
	}
}

// WithKeys restricts diffing to the given tag keys.  Both the retained and
// the incoming tag sets are narrowed to the allow-list, so unrelated tag
// churn neither produces output nor inflates retained state.
func WithKeys(keys ...string) Option {
	return func(o *differOptions) {
		if o.keys == nil {
			o.keys = make(map[string]struct{}, len(keys))
		}

		for _, k := range keys {
			o.keys[k] = struct{}{}
		}
	}
}

// WithUIDs restricts emission to changes authored by the given users.  State
// still updates for suppressed records.
func WithUIDs(uids ...model.UID) Option {
	return func(o *differOptions) {
		if o.uids == nil {
			o.uids = make(map[model.UID]struct{}, len(uids))
		}

		for _, uid := range uids {
			o.uids[uid] = struct{}{}
		}
	}
}

// defaultDifferOptions provides a default configuration for differs.
var defaultDifferOptions = differOptions{}

func (o *differOptions) allowKind(k model.Kind) bool {
	if o.kinds == nil {
		return true
	}

	_, ok := o.kinds[k]

	return ok
}

func (o *differOptions) allowUID(uid model.UID) bool {
	if o.uids == nil {
		return true
	}

	_, ok := o.uids[uid]

	return ok
}

// restrict narrows tags to the key allow-list, returning a copy.  Without an
// allow-list the tag set is returned as is.
func (o *differOptions) restrict(tags model.Tags) model.Tags {
	if o.keys == nil {
		if tags == nil {
			return model.Tags{}
		}

		return tags
	}

	narrowed := make(model.Tags, len(o.keys))

	for key, value := range tags {
		if _, ok := o.keys[key]; ok {
			narrowed[key] = value
		}
	}

	return narrowed
}
