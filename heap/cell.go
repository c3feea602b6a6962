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

package heap

import "github.com/numaes/protoCore-sub001/value"

// Referencer is what every concrete cell kind (list node, sparse-map
// node, tuple, string, object, method, thread, byte buffer, external
// pointer) implements so the collector can traverse and reclaim it
// without the heap package knowing anything about those concrete
// types. This is the Go analogue of the reference runtime's virtual
// "process_references" hook: a tagged-variant dispatch table would
// work just as well, but an interface is the idiomatic Go shape for
// "one operation, many payload types."
type Referencer interface {
	// ProcessReferences invokes visit once for every Word the cell
	// directly holds that might itself be a cell reference. Embedded
	// scalar fields must be skipped; forwarding an embedded Word to
	// visit is harmless (it carries no cell) but wasteful.
	ProcessReferences(visit func(value.Word))

	// Finalize runs once, synchronously, during the sweep phase, the
	// moment the collector has determined a cell is unreachable and
	// immediately before the slot holding it is zeroed and returned to
	// the free list. Most cells have nothing to finalize.
	Finalize()
}

// Slot is the common 64-byte-cell analogue: the header every
// heap entity shares. next threads the slot onto whichever singly
// linked list currently owns it — a Context's allocation chain, a
// thread's private pool, a dirty segment, or the space-wide free
// list — exactly as the reference runtime's next_cell field does
// double duty between allocation chaining and free-list threading.
//
// id is assigned once, when acquireBlock mints the Slot, and never changes for the
// lifetime of the Slot value; it is what Hash and cell equality are
// defined in terms of (see CellID), so it must survive the slot being
// freed and reused with a new Body — which is why Reset does not
// touch it.
type Slot struct {
	id   uint64
	Body Referencer
	Tag  value.Tag
	next *Slot

	// Marked is the collector's mark bit. Only package gc's Collector
	// touches it, and only while the world is stopped; it is exported
	// because Referencer traversal and the mark bit necessarily live
	// in different packages (see RootProvider's doc comment).
	Marked bool
}

// CellID implements value.Cell.
func (s *Slot) CellID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Reset clears everything but the slot's identity, mimicking the
// "zeroed cell" state a freed block is returned to the free list in.
func (s *Slot) Reset() {
	s.Body = nil
	s.Tag = 0
	s.next = nil
	s.Marked = false
}

// Word wraps s in a value.Word tagged t.
func (s *Slot) Word(t value.Tag) value.Word {
	return value.FromCell(t, s)
}

// AsWord wraps s in a value.Word using the tag it was allocated with.
func (s *Slot) AsWord() value.Word {
	return value.FromCell(s.Tag, s)
}
