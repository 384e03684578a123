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

package changeset

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/tagdiff/model"
)

const sampleDump = `<?xml version="1.0" encoding="UTF-8"?>
<osm license="http://opendatacommons.org/licenses/odbl/1-0/">
  <changeset id="1" created_at="2020-03-14T09:26:53Z" user="mapper" uid="7">
    <tag k="created_by" v="JOSM/1.5"/>
    <tag k="comment" v="fix place, names"/>
  </changeset>
  <changeset id="2" created_at="2020-03-14T10:00:00Z" user="other" uid="8"/>
  <changeset id="3" created_at="2020-03-14T11:00:00Z" user="mapper" uid="7">
    <tag k="created_by" v="iD 2.17"/>
  </changeset>
</osm>
`

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(Config{InMemory: true})
	require.NoError(t, err)

	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestLoadAndLookup(t *testing.T) {
	s := openTestStore(t)

	count, err := s.Load(context.Background(), strings.NewReader(sampleDump))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count, "untagged changesets are skipped")

	tags, err := s.Tags(1)
	require.NoError(t, err)
	assert.Equal(t, model.Tags{
		"created_by": "JOSM/1.5",
		"comment":    "fix place, names",
	}, tags)

	tags, err = s.Tags(3)
	require.NoError(t, err)
	assert.Equal(t, model.Tags{"created_by": "iD 2.17"}, tags)
}

func TestMissingChangesetIsNotAnError(t *testing.T) {
	s := openTestStore(t)

	tags, err := s.Tags(99)
	require.NoError(t, err)
	assert.Nil(t, tags)
}

func TestLoadMalformedDump(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Load(context.Background(), strings.NewReader("<osm><changeset id="))
	assert.Error(t, err)
}
