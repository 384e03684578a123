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

// Package osmpbf adapts the m4o.io/pbf decoder's entity stream into the
// entity version records consumed by the differ.  History files (.osh.pbf)
// yield every version of every entity; regular extracts yield one.
package osmpbf

import (
	"context"
	"fmt"
	"io"

	pbf "m4o.io/pbf/v2"
	osm "m4o.io/pbf/v2/model"

	"m4o.io/tagdiff/model"
)

// Source is a sequential source of entity version records decoded from a
// PBF stream.
type Source struct {
	dec *pbf.Decoder

	// pending holds decoded versions not yet handed out; the decoder
	// returns entities a block at a time.
	pending []model.Version
}

// NewSource starts decoding the PBF stream read from r.
func NewSource(ctx context.Context, r io.Reader, opts ...pbf.DecoderOption) (*Source, error) {
	dec, err := pbf.NewDecoder(ctx, r, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to open PBF stream: %w", err)
	}

	return &Source{dec: dec}, nil
}

// Next returns the next entity version record.  The end of the stream is
// reported by io.EOF.
func (s *Source) Next() (model.Version, error) {
	for len(s.pending) == 0 {
		entities, err := s.dec.Decode()
		if err != nil {
			return model.Version{}, err
		}

		if len(entities) == 0 {
			continue
		}

		s.pending = s.pending[:0]
		for _, e := range entities {
			s.pending = append(s.pending, Convert(e))
		}
	}

	v := s.pending[0]
	s.pending = s.pending[1:]

	return v, nil
}

// Convert maps one decoded PBF entity onto an entity version record.  An
// entity without metadata, as produced for extracts written without the
// HistoricalInformation feature, converts to a visible version 0.
func Convert(e osm.Entity) model.Version {
	v := model.Version{
		ID:      model.ID(e.GetID()),
		Visible: true,
		Tags:    model.Tags(e.GetTags()),
	}

	switch e.(type) {
	case *osm.Node:
		v.Kind = model.NODE
	case *osm.Way:
		v.Kind = model.WAY
	case *osm.Relation:
		v.Kind = model.RELATION
	}

	if info := e.GetInfo(); info != nil {
		v.Version = info.Version
		v.Visible = info.Visible
		v.Timestamp = info.Timestamp
		v.Changeset = info.Changeset
		v.UID = model.UID(info.UID)
		v.User = info.User
	}

	return v
}
