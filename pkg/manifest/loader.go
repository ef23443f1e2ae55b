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

package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Load loads a manifest from the given path. The format is determined by the
// file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// - .publishrc will try both YAML and HCL formats
func Load(ctx context.Context, path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading manifest file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var m *Manifest

	// For .publishrc files, try both YAML and HCL
	if ext == ".publishrc" || filepath.Base(path) == ".publishrc" {
		m, err = loadYAML(data)
		if err != nil {
			m, err = loadHCL(data, path)
			if err != nil {
				return nil, errors.Errorf("failed to parse .publishrc as YAML or HCL: %w", err)
			}
		}
	} else {
		switch ext {
		case ".json":
			m, err = loadJSON(data)
		case ".yaml", ".yml":
			m, err = loadYAML(data)
		case ".hcl":
			m, err = loadHCL(data, path)
		default:
			return nil, errors.Errorf("unsupported manifest extension %q", ext)
		}
		if err != nil {
			return nil, err
		}
	}

	m.location = path
	if err := Validate(ctx, m); err != nil {
		return nil, errors.Errorf("validating manifest: %w", err)
	}

	return m, nil
}

// 📝 loadJSON loads a manifest from JSON data
func loadJSON(data []byte) (*Manifest, error) {
	type jsonManifest struct {
		Autoload json.RawMessage `json:"autoload,omitempty"`
		Publish  []*PublishEntry `json:"publish,omitempty"`
		Flags    *Flags          `json:"flags,omitempty"`
	}

	var raw jsonManifest
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raw); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}

	mapping, err := mappingFromJSON(raw.Autoload)
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		Autoload:  mapping,
		Publishes: raw.Publish,
	}
	if raw.Flags != nil {
		m.Flags = *raw.Flags
	}
	return m, nil
}

// 🗺️ mappingFromJSON reads the autoload object token by token.
// encoding/json decodes objects into unordered maps, and the table's order
// is the resolver's tie-break, so a plain struct decode would lose it.
func mappingFromJSON(raw json.RawMessage) (Mapping, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	tok, err := decoder.Token()
	if err != nil {
		return nil, errors.Errorf("parsing autoload: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.Errorf("autoload must be an object of prefix to path")
	}

	var mapping Mapping
	for decoder.More() {
		keyTok, err := decoder.Token()
		if err != nil {
			return nil, errors.Errorf("parsing autoload: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.Errorf("autoload key must be a string, got %v", keyTok)
		}

		var value string
		if err := decoder.Decode(&value); err != nil {
			return nil, errors.Errorf("autoload entry %q: %w", key, err)
		}

		mapping = append(mapping, MappingEntry{Prefix: key, Path: value})
	}

	return mapping, nil
}

// 📝 loadYAML loads a manifest from YAML data
func loadYAML(data []byte) (*Manifest, error) {
	type yamlManifest struct {
		Autoload yaml.Node       `yaml:"autoload,omitempty"`
		Publish  []*PublishEntry `yaml:"publish,omitempty"`
		Flags    *Flags          `yaml:"flags,omitempty"`
	}

	var raw yamlManifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	mapping, err := mappingFromYAML(&raw.Autoload)
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		Autoload:  mapping,
		Publishes: raw.Publish,
	}
	if raw.Flags != nil {
		m.Flags = *raw.Flags
	}
	return m, nil
}

// 🗺️ mappingFromYAML walks the mapping node pairwise so the table keeps its
// document order.
func mappingFromYAML(node *yaml.Node) (Mapping, error) {
	if node.IsZero() {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, errors.Errorf("autoload must be a mapping of prefix to path")
	}

	mapping := make(Mapping, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		value := node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, errors.Errorf("autoload entry %q: path must be a string", key.Value)
		}
		mapping = append(mapping, MappingEntry{Prefix: key.Value, Path: value.Value})
	}

	return mapping, nil
}

// 📝 loadHCL loads a manifest from HCL data. Block order in the source file
// is the order gohcl returns, so the table's order survives for free.
func loadHCL(data []byte, filename string) (*Manifest, error) {
	type hclManifest struct {
		Autoload []MappingEntry  `hcl:"autoload,block"`
		Publish  []*PublishEntry `hcl:"publish,block"`
		Flags    *Flags          `hcl:"flags,block"`
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var raw hclManifest
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	m := &Manifest{
		Autoload:  Mapping(raw.Autoload),
		Publishes: raw.Publish,
	}
	if raw.Flags != nil {
		m.Flags = *raw.Flags
	}
	return m, nil
}
