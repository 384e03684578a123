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
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DefaultDelimiter is the default field delimiter.
const DefaultDelimiter = ','

const escape = '\\'

// RowWriter serializes projected field lists into delimited rows.  Fields
// containing the delimiter, a newline, or a backslash are escaped by
// prefixing each such byte with a backslash; no field is ever dropped or
// truncated.
type RowWriter struct {
	w     *bufio.Writer
	delim byte
}

// NewRowWriter returns a writer emitting rows delimited by delim.  The
// delimiter may not be the backslash or a newline, since those carry the
// escaping itself.
func NewRowWriter(w io.Writer, delim byte) (*RowWriter, error) {
	if delim == escape || delim == '\n' {
		return nil, fmt.Errorf("invalid field delimiter %q", delim)
	}

	return &RowWriter{w: bufio.NewWriter(w), delim: delim}, nil
}

// WriteHeader writes the literal column names, delimiter-joined.
func (r *RowWriter) WriteHeader(names []string) error {
	return r.WriteRow(names)
}

// WriteRow writes one escaped, delimiter-joined row followed by a newline.
func (r *RowWriter) WriteRow(fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if err := r.w.WriteByte(r.delim); err != nil {
				return err
			}
		}

		if _, err := r.w.WriteString(Escape(field, r.delim)); err != nil {
			return err
		}
	}

	return r.w.WriteByte('\n')
}

// Flush writes buffered rows to the underlying writer.
func (r *RowWriter) Flush() error {
	return r.w.Flush()
}

// Escape prefixes every occurrence of delim, newline, or backslash in field
// with a backslash.  Fields without such bytes are returned unchanged.
func Escape(field string, delim byte) string {
	if !strings.ContainsAny(field, string([]byte{delim, '\n', escape})) {
		return field
	}

	var b strings.Builder

	b.Grow(len(field) + 2)

	for i := 0; i < len(field); i++ {
		if c := field[i]; c == delim || c == '\n' || c == escape {
			b.WriteByte(escape)
		}

		b.WriteByte(field[i])
	}

	return b.String()
}

// Unescape is the exact inverse of Escape: a single pass that drops each
// backslash and takes the following byte literally.  A trailing lone
// backslash is preserved, as Escape never produces one.
func Unescape(field string) string {
	if !strings.ContainsRune(field, escape) {
		return field
	}

	var b strings.Builder

	b.Grow(len(field))

	for i := 0; i < len(field); i++ {
		if field[i] == escape && i+1 < len(field) {
			i++
		}

		b.WriteByte(field[i])
	}

	return b.String()
}
