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
	"slices"
	"strconv"
	"strings"
	"time"

	"m4o.io/tagdiff/model"
)

// ErrUnknownColumn is returned by NewProjector for a column name outside the
// supported set.  Column names are validated once, at configuration time,
// never per row.
var ErrUnknownColumn = errors.New("unknown column")

// ChangesetColumnPrefix prefixes join columns: changeset_<key> renders the
// value of <key> from the tag set of the change's changeset.
const ChangesetColumnPrefix = "changeset_"

// DatetimeColumns returns the default column list with an absolute
// timestamp column.
func DatetimeColumns() []string {
	return defaultColumns("datetime")
}

// EpochTimeColumns returns the default column list with a seconds-since-epoch
// timestamp column.
func EpochTimeColumns() []string {
	return defaultColumns("epoch_time")
}

func defaultColumns(timestamp string) []string {
	return []string{
		"key", "new_value", "old_value", "id", "new_version", "old_version",
		timestamp, "username", "uid", "changeset_id",
	}
}

// extractor renders one output field from a change and the tag set of its
// changeset.
type extractor func(c model.Change, cstags model.Tags) string

// Projector maps a change, plus the joined changeset tags, into an ordered
// list of output fields.  The requested column order is preserved exactly;
// duplicates simply repeat the field.
type Projector struct {
	names []string
	cols  []extractor
}

// NewProjector resolves the requested column names into extractors.  An
// unrecognized name fails here, before any row is produced.
func NewProjector(names ...string) (*Projector, error) {
	cols := make([]extractor, len(names))

	for i, name := range names {
		col, err := resolve(name)
		if err != nil {
			return nil, err
		}

		cols[i] = col
	}

	return &Projector{names: slices.Clone(names), cols: cols}, nil
}

// Columns returns the column names, in output order.
func (p *Projector) Columns() []string {
	return p.names
}

// Project renders the change into one field per configured column.  cstags
// may be nil when no changeset lookup is configured or the changeset is
// unknown; join columns then render empty.
func (p *Projector) Project(c model.Change, cstags model.Tags) []string {
	fields := make([]string, len(p.cols))
	for i, col := range p.cols {
		fields[i] = col(c, cstags)
	}

	return fields
}

func resolve(name string) (extractor, error) {
	switch name {
	case "key":
		return func(c model.Change, _ model.Tags) string { return c.Key }, nil
	case "new_value":
		return func(c model.Change, _ model.Tags) string { return orEmpty(c.NewValue) }, nil
	case "old_value":
		return func(c model.Change, _ model.Tags) string { return orEmpty(c.OldValue) }, nil
	case "id":
		// Kind-prefixed id, e.g. n123, for interoperability with id
		// filtering tools.
		return func(c model.Change, _ model.Tags) string {
			return c.Kind.Short() + strconv.FormatInt(int64(c.ID), 10)
		}, nil
	case "raw_id":
		return func(c model.Change, _ model.Tags) string {
			return strconv.FormatInt(int64(c.ID), 10)
		}, nil
	case "object_type_short":
		return func(c model.Change, _ model.Tags) string { return c.Kind.Short() }, nil
	case "object_type_long":
		return func(c model.Change, _ model.Tags) string { return c.Kind.String() }, nil
	case "new_version":
		return func(c model.Change, _ model.Tags) string {
			return strconv.FormatInt(int64(c.NewVersion), 10)
		}, nil
	case "old_version":
		return func(c model.Change, _ model.Tags) string {
			if c.OldVersion == nil {
				return ""
			}

			return strconv.FormatInt(int64(*c.OldVersion), 10)
		}, nil
	case "datetime":
		return func(c model.Change, _ model.Tags) string {
			return c.Timestamp.UTC().Format(time.RFC3339)
		}, nil
	case "epoch_time":
		return func(c model.Change, _ model.Tags) string {
			return strconv.FormatInt(c.Timestamp.Unix(), 10)
		}, nil
	case "username":
		return func(c model.Change, _ model.Tags) string { return c.User }, nil
	case "uid":
		return func(c model.Change, _ model.Tags) string {
			return strconv.FormatInt(int64(c.UID), 10)
		}, nil
	case "changeset_id":
		return func(c model.Change, _ model.Tags) string {
			return strconv.FormatInt(c.Changeset, 10)
		}, nil
	case "tag_count_delta":
		return func(c model.Change, _ model.Tags) string {
			switch delta := c.TagCountDelta(); {
			case delta > 0:
				return "+1"
			case delta < 0:
				return "-1"
			default:
				return "0"
			}
		}, nil
	}

	// changeset_id is matched above, so any remaining changeset_ name is a
	// join column.
	if key, ok := strings.CutPrefix(name, ChangesetColumnPrefix); ok && key != "" {
		return func(_ model.Change, cstags model.Tags) string {
			return cstags[key]
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
