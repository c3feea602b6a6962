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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/numaes/protoCore-sub001/heap"
)

func TestParseEmptyDocumentReturnsDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error: %v", err)
	}
	if cfg != heap.DefaultConfig() {
		t.Fatalf("Parse(nil) = %+v, want defaults %+v", cfg, heap.DefaultConfig())
	}
}

func TestParsePartialDocumentKeepsOtherDefaults(t *testing.T) {
	doc := `gcSleepMilliseconds: 250`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.GCSleepMilliseconds != 250 {
		t.Fatalf("GCSleepMilliseconds = %d, want 250", cfg.GCSleepMilliseconds)
	}
	def := heap.DefaultConfig()
	if cfg.MaxAllocatedCellsPerContext != def.MaxAllocatedCellsPerContext {
		t.Fatal("an overridden field must not reset the other fields to zero")
	}
	if cfg.MaxHeapSize != def.MaxHeapSize {
		t.Fatal("MaxHeapSize should keep its default")
	}
}

func TestParseFullDocumentOverridesEverything(t *testing.T) {
	doc := `
maxAllocatedCellsPerContext: 2048
blocksPerAllocation: 512
maxHeapSize: 1048576
blockOnNoMemory: true
gcSleepMilliseconds: 500
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := heap.Config{
		MaxAllocatedCellsPerContext: 2048,
		BlocksPerAllocation:         512,
		MaxHeapSize:                 1048576,
		BlockOnNoMemory:             true,
		GCSleepMilliseconds:         500,
	}
	if cfg != want {
		t.Fatalf("Parse = %+v, want %+v", cfg, want)
	}
}

func TestParseInvalidYAMLReturnsError(t *testing.T) {
	if _, err := Parse([]byte("not: [valid: yaml")); err == nil {
		t.Fatal("Parse should reject malformed YAML")
	}
}

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadFile on a missing path should not error: %v", err)
	}
	if cfg != heap.DefaultConfig() {
		t.Fatal("a missing config file should yield defaults")
	}
}

func TestLoadFileReadsDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "proto.yaml")
	if err := os.WriteFile(path, []byte("gcSleepMilliseconds: 42\n"), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.GCSleepMilliseconds != 42 {
		t.Fatalf("GCSleepMilliseconds = %d, want 42", cfg.GCSleepMilliseconds)
	}
}
