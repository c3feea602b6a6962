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

func TestDateRoundTrip(t *testing.T) {
	cases := []struct{ y, m, d int }{
		{2024, 3, 14},
		{0, 1, 1},
		{16383, 12, 31},
	}
	for _, c := range cases {
		w := FromDate(c.y, c.m, c.d)
		y, m, d, ok := Date(w)
		if !ok || y != c.y || m != c.m || d != c.d {
			t.Errorf("Date(FromDate(%d,%d,%d)) = (%d,%d,%d,%v)", c.y, c.m, c.d, y, m, d, ok)
		}
	}
}

func TestDateClamps(t *testing.T) {
	w := FromDate(-1, 500, -5)
	y, m, d, ok := Date(w)
	if !ok {
		t.Fatal("Date() on a DATE word should succeed")
	}
	if y != 0 {
		t.Errorf("negative year should clamp to 0, got %d", y)
	}
	if m != 0xff {
		t.Errorf("month 500 should clamp to the 8-bit max, got %d", m)
	}
	if d != 0 {
		t.Errorf("negative day should clamp to 0, got %d", d)
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	w := FromTimestamp(1700000000)
	got, ok := Timestamp(w)
	if !ok || got != 1700000000 {
		t.Errorf("Timestamp(FromTimestamp(...)) = (%d, %v)", got, ok)
	}
}

func TestTimedeltaSign(t *testing.T) {
	for _, c := range []int64{0, 1, -1, 1 << 40, -(1 << 40)} {
		w := FromTimedelta(c)
		got, ok := Timedelta(w)
		if !ok || got != c {
			t.Errorf("Timedelta(FromTimedelta(%d)) = (%d, %v)", c, got, ok)
		}
	}
}
