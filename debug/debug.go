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

// Package debug walks a heap.Space and reports live cell counts by
// tag, purely for diagnostics: it never participates in collection
// and never holds a reference the collector would need to trace.
package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"

	"github.com/numaes/protoCore-sub001/heap"
	"github.com/numaes/protoCore-sub001/value"
)

// TagCount is one row of Report.TagCounts: how many live cells carry a
// given value.Tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// Report is a point-in-time tally of a Space's cell population.
type Report struct {
	TotalSlots    int64            `json:"totalSlots"`
	LiveCells     int64            `json:"liveCells"`
	FreeCells     int64            `json:"freeCells"`
	ResidentBytes int64            `json:"residentBytes"`
	PeakCells     int64            `json:"peakCells"`
	ByTag         map[string]int64 `json:"byTag"`

	// TagCounts is ByTag flattened into a slice ordered by count
	// (largest population first, tag name breaking ties), the shape a
	// human reading a dump actually wants. Built with heap.PushSlice/
	// PopSlice rather than sort.Slice to exercise the same generic
	// ordering helpers the reference runtime's own heap/heap.go carried
	// for exactly this "give me the biggest N" shape of query.
	TagCounts []TagCount `json:"tagCounts"`
}

// Snapshot walks every slot the Space has ever minted and tallies the
// live ones by their value.Tag. A free slot (Body == nil, per Slot's
// own "freed cells are zeroed" contract) counts toward FreeCells only;
// it carries no tag worth reporting.
func Snapshot(space *heap.Space) Report {
	rep := Report{
		ResidentBytes: space.ResidentBytes(),
		PeakCells:     space.PeakCells(),
		ByTag:         make(map[string]int64, int(value.TagThread)+1),
	}
	space.ForEachSlot(func(s *heap.Slot) {
		rep.TotalSlots++
		if s.Body == nil {
			rep.FreeCells++
			return
		}
		rep.LiveCells++
		rep.ByTag[s.Tag.String()]++
	})
	rep.TagCounts = sortedTagCounts(rep.ByTag)
	return rep
}

func tagCountLess(a, b TagCount) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Tag < b.Tag
}

func sortedTagCounts(byTag map[string]int64) []TagCount {
	working := make([]TagCount, 0, len(byTag))
	for tag, n := range byTag {
		heap.PushSlice(&working, TagCount{Tag: tag, Count: n}, tagCountLess)
	}
	sorted := make([]TagCount, 0, len(working))
	for len(working) > 0 {
		sorted = append(sorted, heap.PopSlice(&working, tagCountLess))
	}
	return sorted
}

// WriteSnapshot serializes rep as zstd-compressed JSON followed by a
// blake2b-256 checksum of the compressed payload, so a dump can be
// verified for corruption without decompressing it first.
func WriteSnapshot(w io.Writer, rep Report) error {
	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("debug: marshal report: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return fmt.Errorf("debug: new zstd encoder: %w", err)
	}
	compressed := enc.EncodeAll(payload, nil)
	if err := enc.Close(); err != nil {
		return fmt.Errorf("debug: close zstd encoder: %w", err)
	}

	if _, err := w.Write(compressed); err != nil {
		return fmt.Errorf("debug: write snapshot: %w", err)
	}
	sum := blake2b.Sum256(compressed)
	if _, err := w.Write(sum[:]); err != nil {
		return fmt.Errorf("debug: write checksum: %w", err)
	}
	return nil
}

// ReadSnapshot reverses WriteSnapshot: it validates the trailing
// blake2b-256 checksum, decompresses the remainder, and decodes it
// back into a Report.
func ReadSnapshot(r io.Reader) (Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Report{}, fmt.Errorf("debug: read snapshot: %w", err)
	}
	if len(data) < blake2b.Size256 {
		return Report{}, fmt.Errorf("debug: snapshot too short to hold a checksum")
	}
	split := len(data) - blake2b.Size256
	compressed, wantSum := data[:split], data[split:]
	gotSum := blake2b.Sum256(compressed)
	if !bytes.Equal(gotSum[:], wantSum) {
		return Report{}, fmt.Errorf("debug: checksum mismatch, snapshot is corrupt")
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return Report{}, fmt.Errorf("debug: new zstd decoder: %w", err)
	}
	defer dec.Close()
	payload, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return Report{}, fmt.Errorf("debug: decompress snapshot: %w", err)
	}

	var rep Report
	if err := json.Unmarshal(payload, &rep); err != nil {
		return Report{}, fmt.Errorf("debug: unmarshal report: %w", err)
	}
	return rep, nil
}
