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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/tagdiff/model"
)

func sampleChange() model.Change {
	oldValue := "village"
	newValue := "town"
	oldVersion := int32(3)

	return model.Change{
		Key:        "place",
		OldValue:   &oldValue,
		NewValue:   &newValue,
		Kind:       model.NODE,
		ID:         123,
		OldVersion: &oldVersion,
		NewVersion: 4,
		Timestamp:  time.Date(2020, 3, 14, 9, 26, 53, 0, time.UTC),
		User:       "mapper",
		UID:        7,
		Changeset:  42,
	}
}

func TestProjectDefaultColumns(t *testing.T) {
	p, err := NewProjector(DatetimeColumns()...)
	require.NoError(t, err)

	fields := p.Project(sampleChange(), nil)

	assert.Equal(t, []string{
		"place", "town", "village", "n123", "4", "3",
		"2020-03-14T09:26:53Z", "mapper", "7", "42",
	}, fields)
}

func TestProjectEpochTime(t *testing.T) {
	p, err := NewProjector("epoch_time")
	require.NoError(t, err)

	assert.Equal(t, []string{"1584178013"}, p.Project(sampleChange(), nil))
}

func TestProjectDerivedColumns(t *testing.T) {
	p, err := NewProjector("object_type_short", "object_type_long", "raw_id", "tag_count_delta")
	require.NoError(t, err)

	c := sampleChange()

	assert.Equal(t, []string{"n", "node", "123", "0"}, p.Project(c, nil))

	c.OldValue = nil
	assert.Equal(t, "+1", p.Project(c, nil)[3])

	c = sampleChange()
	c.NewValue = nil
	assert.Equal(t, "-1", p.Project(c, nil)[3])
}

func TestProjectAbsentValuesRenderEmpty(t *testing.T) {
	p, err := NewProjector("old_value", "old_version")
	require.NoError(t, err)

	c := sampleChange()
	c.OldValue = nil
	c.OldVersion = nil

	assert.Equal(t, []string{"", ""}, p.Project(c, nil))
}

func TestProjectChangesetJoinColumn(t *testing.T) {
	p, err := NewProjector("changeset_id", "changeset_created_by")
	require.NoError(t, err)

	c := sampleChange()

	assert.Equal(t, []string{"42", "JOSM"},
		p.Project(c, model.Tags{"created_by": "JOSM"}))

	// missing changeset or key renders empty, never errors
	assert.Equal(t, []string{"42", ""}, p.Project(c, nil))
}

func TestProjectDuplicateColumns(t *testing.T) {
	p, err := NewProjector("key", "key")
	require.NoError(t, err)

	assert.Equal(t, []string{"place", "place"}, p.Project(sampleChange(), nil))
}

func TestUnknownColumnIsConfigurationError(t *testing.T) {
	_, err := NewProjector("key", "bogus")
	assert.ErrorIs(t, err, ErrUnknownColumn)

	// the bare prefix is not a join column
	_, err = NewProjector("changeset_")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}
