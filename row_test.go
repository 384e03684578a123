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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeRoundTrip(t *testing.T) {
	fields := []string{
		"plain",
		"",
		"with,comma",
		"with\nnewline",
		`with\backslash`,
		`all,of\them` + "\n" + `at,once`,
		`trailing\`,
		",,,",
	}

	for _, field := range fields {
		escaped := Escape(field, ',')
		assert.Equal(t, field, Unescape(escaped), "field %q", field)
	}
}

func TestEscapeLeavesCleanFieldsAlone(t *testing.T) {
	assert.Equal(t, "amenity=pub", Escape("amenity=pub", ','))
}

func TestEscapeIsDelimiterAware(t *testing.T) {
	// a comma needs no escaping in tab-delimited output
	assert.Equal(t, "a,b", Escape("a,b", '\t'))
	assert.Equal(t, `a\`+"\t"+`b`, Escape("a\tb", '\t'))
}

func TestWriteRow(t *testing.T) {
	var buf bytes.Buffer

	w, err := NewRowWriter(&buf, ',')
	require.NoError(t, err)

	require.NoError(t, w.WriteRow([]string{"name", "a,b", "x\ny"}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "name,a\\,b,x\\\ny\n", buf.String())
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer

	w, err := NewRowWriter(&buf, '\t')
	require.NoError(t, err)

	require.NoError(t, w.WriteHeader([]string{"key", "new_value", "old_value"}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "key\tnew_value\told_value\n", buf.String())
}

func TestInvalidDelimiters(t *testing.T) {
	var buf bytes.Buffer

	_, err := NewRowWriter(&buf, '\\')
	assert.Error(t, err)

	_, err = NewRowWriter(&buf, '\n')
	assert.Error(t, err)
}
