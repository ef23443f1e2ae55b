// Copyright 2025 walteh LLC
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

// Package manifest models the publishrc manifest: the PSR-4-style autoload
// table plus the list of trees to publish.
package manifest

import (
	"context"

	"gitlab.com/tozd/go/errors"
)

// 🗺️ MappingEntry binds one namespace prefix to a base directory.
type MappingEntry struct {
	Prefix string `json:"prefix" yaml:"prefix" hcl:"prefix,label"`
	Path   string `json:"path" yaml:"path" hcl:"path,attr"`
}

// 🗺️ Mapping is an ordered PSR-4-style autoload table. It is a slice rather
// than a map: insertion order is the resolver's tie-break when entries
// overlap, so loaders must preserve document order.
type Mapping []MappingEntry

// 📦 PublishEntry describes one source tree to publish into the consumer
// project.
type PublishEntry struct {
	// Source is the directory tree to publish.
	Source string `json:"source" yaml:"source" hcl:"source,attr"`
	// Destination is where the tree lands inside the consumer project.
	Destination string `json:"destination" yaml:"destination" hcl:"destination,attr"`
	// Namespace overrides the namespace resolved from the autoload table.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty" hcl:"namespace,optional"`
	// Ignore lists glob patterns for files that should not be published.
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`
}

// 🔧 Flags block
type Flags struct {
	Debug bool `json:"debug,omitempty" yaml:"debug,omitempty" hcl:"debug,optional"`
	Async bool `json:"async,omitempty" yaml:"async,omitempty" hcl:"async,optional"`
}

// 📝 Manifest is a fully parsed publishrc manifest.
type Manifest struct {
	Autoload  Mapping
	Publishes []*PublishEntry
	Flags     Flags

	// location is the file the manifest was loaded from
	location string
}

// 📍 Location returns the path the manifest was loaded from.
func (m *Manifest) Location() string {
	return m.location
}

// ✅ Validate checks structural invariants of the manifest.
func Validate(ctx context.Context, m *Manifest) error {
	seen := make(map[string]bool, len(m.Autoload))
	for i, entry := range m.Autoload {
		if entry.Prefix == "" {
			return errors.Errorf("autoload entry %d: prefix is required", i)
		}
		if entry.Path == "" {
			return errors.Errorf("autoload entry %q: path is required", entry.Prefix)
		}
		if seen[entry.Prefix] {
			return errors.Errorf("autoload entry %q: duplicate prefix", entry.Prefix)
		}
		seen[entry.Prefix] = true
	}

	for i, pub := range m.Publishes {
		if pub.Source == "" {
			return errors.Errorf("publish entry %d: source is required", i)
		}
		if pub.Destination == "" {
			return errors.Errorf("publish entry %d: destination is required", i)
		}
	}

	return nil
}
