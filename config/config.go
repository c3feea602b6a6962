// Copyright 2026 The protoCore-sub001 Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package config loads a heap.Config from a host-supplied YAML
// document, filling any field the document leaves zero-valued from
// heap.DefaultConfig.
package config

import (
	"fmt"
	"io"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/numaes/protoCore-sub001/heap"
)

// Load decodes a YAML document from r into a heap.Config, layering it
// over heap.DefaultConfig: a field left unset (its JSON tag absent or
// its value the type's zero) keeps the default rather than being
// reset to zero.
func Load(r io.Reader) (heap.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return heap.Config{}, fmt.Errorf("config: read: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document already held in memory.
func Parse(data []byte) (heap.Config, error) {
	cfg := heap.DefaultConfig()
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return heap.Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return applyDefaults(cfg), nil
}

// LoadFile opens path and decodes it as Load would. A missing path
// returns heap.DefaultConfig unchanged, matching a host that only
// sometimes supplies a config file.
func LoadFile(path string) (heap.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return heap.DefaultConfig(), nil
		}
		return heap.Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// applyDefaults backfills any field the document left at its Go zero
// value with the corresponding default, so a YAML document that only
// overrides gcSleepMilliseconds does not also silently zero out every
// other tunable.
func applyDefaults(cfg heap.Config) heap.Config {
	def := heap.DefaultConfig()
	if cfg.MaxAllocatedCellsPerContext == 0 {
		cfg.MaxAllocatedCellsPerContext = def.MaxAllocatedCellsPerContext
	}
	if cfg.BlocksPerAllocation == 0 {
		cfg.BlocksPerAllocation = def.BlocksPerAllocation
	}
	if cfg.MaxHeapSize == 0 {
		cfg.MaxHeapSize = def.MaxHeapSize
	}
	if cfg.GCSleepMilliseconds == 0 {
		cfg.GCSleepMilliseconds = def.GCSleepMilliseconds
	}
	return cfg
}
