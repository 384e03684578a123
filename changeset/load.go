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
	"bufio"
	"bytes"
	"compress/bzip2"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/destel/rill"

	"m4o.io/tagdiff/model"
)

const loadBatchSize = 1024

// bzip2 stream magic.
var bzhMagic = []byte("BZh")

// entry is one changeset parsed from the metadata dump.
type entry struct {
	id   int64
	tags model.Tags
}

type changesetElem struct {
	ID   int64 `xml:"id,attr"`
	Tags []struct {
		K string `xml:"k,attr"`
		V string `xml:"v,attr"`
	} `xml:"tag"`
}

// Load populates the store from a changeset metadata dump, e.g.
// changesets-latest.osm.bz2.  The reader may deliver the XML plain or bzip2
// compressed; compression is sniffed from the stream.  Untagged changesets
// are skipped since they can never contribute an output field.  Load returns
// the number of changesets stored.
func (s *Store) Load(ctx context.Context, r io.Reader) (int64, error) {
	buffered := bufio.NewReader(r)

	magic, err := buffered.Peek(len(bzhMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("unable to sniff changeset dump: %w", err)
	}

	var rdr io.Reader = buffered
	if bytes.Equal(magic, bzhMagic) {
		rdr = bzip2.NewReader(buffered)
	}

	entries := rill.FromSeq2(generate(ctx, xml.NewDecoder(rdr)))
	batches := rill.Batch(entries, loadBatchSize, -1)

	var count int64

	err = rill.ForEach(batches, 1, func(batch []entry) error {
		if err := s.write(batch); err != nil {
			return err
		}

		count += int64(len(batch))

		return nil
	})
	if err != nil {
		return count, fmt.Errorf("unable to load changesets: %w", err)
	}

	return count, nil
}

// generate creates an iterator that yields tagged changesets parsed off of
// the decoder.
func generate(ctx context.Context, dec *xml.Decoder) func(yield func(e entry, err error) bool) {
	return func(yield func(e entry, err error) bool) {
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			tok, err := dec.Token()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					slog.Error("unable to parse changeset dump", "error", err)
					yield(entry{}, err)
				}

				return
			}

			se, ok := tok.(xml.StartElement)
			if !ok || se.Name.Local != "changeset" {
				continue
			}

			var elem changesetElem
			if err := dec.DecodeElement(&elem, &se); err != nil {
				slog.Error("unable to parse changeset element", "error", err)
				yield(entry{}, err)

				return
			}

			if len(elem.Tags) == 0 {
				continue
			}

			tags := make(model.Tags, len(elem.Tags))
			for _, t := range elem.Tags {
				tags[t.K] = t.V
			}

			if !yield(entry{id: elem.ID, tags: tags}, nil) {
				return
			}
		}
	}
}

// write stores one batch of changesets in a single write batch.
func (s *Store) write(batch []entry) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, e := range batch {
		val, err := json.Marshal(e.tags)
		if err != nil {
			return fmt.Errorf("unable to marshal tags for changeset %d: %w", e.id, err)
		}

		if err := wb.Set(key(e.id), val); err != nil {
			return fmt.Errorf("unable to store changeset %d: %w", e.id, err)
		}
	}

	return wb.Flush()
}
