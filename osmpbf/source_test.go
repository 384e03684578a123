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

package osmpbf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	osm "m4o.io/pbf/v2/model"

	"m4o.io/tagdiff/model"
)

func TestConvertNodeWithHistory(t *testing.T) {
	ts := time.Date(2020, 3, 14, 9, 26, 53, 0, time.UTC)

	v := Convert(&osm.Node{
		ID:   123,
		Tags: map[string]string{"place": "city"},
		Info: &osm.Info{
			Version:   4,
			UID:       7,
			Timestamp: ts,
			Changeset: 42,
			User:      "mapper",
			Visible:   false,
		},
	})

	assert.Equal(t, model.NODE, v.Kind)
	assert.Equal(t, model.ID(123), v.ID)
	assert.Equal(t, int32(4), v.Version)
	assert.False(t, v.Visible)
	assert.Equal(t, ts, v.Timestamp)
	assert.Equal(t, int64(42), v.Changeset)
	assert.Equal(t, model.UID(7), v.UID)
	assert.Equal(t, "mapper", v.User)
	assert.Equal(t, model.Tags{"place": "city"}, v.Tags)
}

func TestConvertKinds(t *testing.T) {
	assert.Equal(t, model.NODE, Convert(&osm.Node{ID: 1}).Kind)
	assert.Equal(t, model.WAY, Convert(&osm.Way{ID: 1}).Kind)
	assert.Equal(t, model.RELATION, Convert(&osm.Relation{ID: 1}).Kind)
}

func TestConvertWithoutMetadata(t *testing.T) {
	// extracts written without historical information carry no Info
	v := Convert(&osm.Way{ID: 9, Tags: map[string]string{"highway": "primary"}})

	assert.True(t, v.Visible)
	assert.Zero(t, v.Version)
	assert.Zero(t, v.UID)
}
