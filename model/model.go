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

// Package model contains the shared model for OpenStreetMap tag history
// processing.
package model

//go:generate stringer -type=Kind -linecomment

import (
	"time"
)

// ID is the primary key of an entity within its kind.
type ID int64

// UID is the primary key for a user.
type UID int32

// Tags is the key/value tag set of one entity version.  Keys are unique
// within a set.
type Tags map[string]string

// Kind is an enumeration of OSM entity kinds.
type Kind int32

const (
	// NODE denotes a node entity.
	NODE Kind = iota // node

	// WAY denotes a way entity.
	WAY // way

	// RELATION denotes a relation entity.
	RELATION // relation
)

// Short returns the one letter abbreviation of the kind, n, w, or r.
func (k Kind) Short() string {
	return k.String()[:1]
}

// Ref identifies an entity by kind and id.
type Ref struct {
	Kind Kind
	ID   ID
}

// Version is one decoded snapshot of an entity's edit history: the entity
// identity plus the metadata and tag set it carried at that version.  For a
// deleted version, Visible is false and Tags is treated as empty.
type Version struct {
	Kind      Kind
	ID        ID
	Version   int32
	Visible   bool
	Timestamp time.Time
	Changeset int64
	UID       UID
	User      string
	Tags      Tags
}

// Ref returns the entity identity of the version.
func (v Version) Ref() Ref {
	return Ref{Kind: v.Kind, ID: v.ID}
}
