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

package value

import "testing"

type fakeCell struct{ id uint64 }

func (f fakeCell) CellID() uint64 { return f.id }

func TestHashInvariant(t *testing.T) {
	words := []Word{
		FromSmallInt(42),
		FromSmallInt(-7),
		FromFloat(3.5),
		FromChar('λ'),
		FromBool(true),
		FromBool(false),
		FromByte(0xAB),
		FromDate(2024, 3, 14),
		FromTimestamp(1700000000),
		FromTimedelta(-123456),
		FromCell(TagList, fakeCell{id: 99}),
		FromCell(TagObject, fakeCell{id: 1}),
		None,
	}
	for _, w := range words {
		if got, want := Hash(w), w.Raw()>>4; got != want {
			t.Errorf("Hash(%v) = %d, want %d", w, got, want)
		}
		if got, want := w.IsCell(), w.Tag() != TagEmbedded; got != want {
			t.Errorf("IsCell(%v) = %v, want %v", w, got, want)
		}
	}
}

func TestSmallIntRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 42, -42, 1 << 40, -(1 << 40)}
	for _, c := range cases {
		w := FromSmallInt(c)
		got, ok := SmallInt(w)
		if !ok || got != c {
			t.Errorf("SmallInt(FromSmallInt(%d)) = (%d, %v), want (%d, true)", c, got, ok, c)
		}
	}
}

func TestMiscoercionReturnsSentinel(t *testing.T) {
	w := FromSmallInt(5)
	if _, ok := Float(w); ok {
		t.Errorf("Float() on a SMALLINT word should report ok=false")
	}
	if b := Bool(w); b != false {
		t.Errorf("Bool() on a SMALLINT word should read back false, got %v", b)
	}
	if _, ok := Char(w); ok {
		t.Errorf("Char() on a SMALLINT word should report ok=false")
	}
}

func TestFloatTruncation(t *testing.T) {
	w := FromFloat(1.5)
	got, ok := Float(w)
	if !ok || got != 1.5 {
		t.Errorf("Float(FromFloat(1.5)) = (%v, %v), want (1.5, true)", got, ok)
	}
}

func TestCellIdentity(t *testing.T) {
	c1 := fakeCell{id: 7}
	c2 := fakeCell{id: 7}
	w1 := FromCell(TagList, c1)
	w2 := FromCell(TagList, c2)
	if Hash(w1) != Hash(w2) {
		t.Errorf("two cells with the same id must hash the same")
	}
	if !w1.IsCell() || CellOf(w1) == nil {
		t.Errorf("FromCell result should report IsCell and a non-nil CellOf")
	}
}

func TestFromCellPanicsOnEmbedded(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("FromCell(TagEmbedded, ...) should panic")
		}
	}()
	FromCell(TagEmbedded, fakeCell{id: 1})
}

func TestNoneSentinel(t *testing.T) {
	if !None.IsNone() {
		t.Errorf("None.IsNone() = false, want true")
	}
	if FromBool(false).IsNone() {
		t.Errorf("FromBool(false).IsNone() = true, want false")
	}
}
