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

// DATE packs year/month/day into the 56-bit embedded payload as
// year:16 | month:8 | day:8 in the low 32 bits of the payload (day at
// bit 0, month at bit 8, year at bit 16).
const (
	dateYearBits  = 16
	dateMonthBits = 8
	dateDayBits   = 8

	dateDayShift   = 0
	dateMonthShift = dateDayBits
	dateYearShift  = dateDayBits + dateMonthBits

	dateMonthMask = uint64(1)<<dateMonthBits - 1
	dateDayMask   = uint64(1)<<dateDayBits - 1
	dateYearMask  = uint64(1)<<dateYearBits - 1
)

// FromDate returns an EMBEDDED/DATE word. year is clamped to
// [0, 65535]; month and day are clamped to [0, 255] (the runtime does
// not validate calendar correctness at this layer, matching its
// "typed miscoercion never aborts" error regime).
func FromDate(year, month, day int) Word {
	y := clampU(year, dateYearMask)
	m := clampU(month, dateMonthMask)
	d := clampU(day, dateDayMask)
	payload := (y << dateYearShift) | (m << dateMonthShift) | (d << dateDayShift)
	return embedded(EmbDate, payload)
}

// Date decomposes the payload of v into year, month, day. ok is false
// if v is not an EMBEDDED/DATE word.
func Date(v Word) (year, month, day int, ok bool) {
	t, isEmb := v.EmbeddedType()
	if !isEmb || t != EmbDate {
		return 0, 0, 0, false
	}
	p := v.payload()
	year = int((p >> dateYearShift) & dateYearMask)
	month = int((p >> dateMonthShift) & dateMonthMask)
	day = int((p >> dateDayShift) & dateDayMask)
	return year, month, day, true
}

func clampU(v int, mask uint64) uint64 {
	if v < 0 {
		return 0
	}
	u := uint64(v)
	if u > mask {
		return mask
	}
	return u
}

// FromTimestamp returns an EMBEDDED/TIMESTAMP word holding the low 56
// bits of a Unix-epoch value (seconds, or whatever unit the host
// front-end has agreed upon; the runtime core treats it as an opaque
// 56-bit counter).
func FromTimestamp(u int64) Word {
	return embedded(EmbTimestamp, uint64(u)&payloadMask)
}

// Timestamp returns the unsigned 56-bit payload of v, or (0, false)
// if v is not an EMBEDDED/TIMESTAMP word.
func Timestamp(v Word) (uint64, bool) {
	if t, ok := v.EmbeddedType(); !ok || t != EmbTimestamp {
		return 0, false
	}
	return v.payload(), true
}

// FromTimedelta returns an EMBEDDED/TIMEDELTA word holding the signed
// 56-bit payload i.
func FromTimedelta(i int64) Word {
	return embedded(EmbTimedelta, uint64(i)&payloadMask)
}

// Timedelta returns the signed 56-bit payload of v, or (0, false) if v
// is not an EMBEDDED/TIMEDELTA word.
func Timedelta(v Word) (int64, bool) {
	if t, ok := v.EmbeddedType(); !ok || t != EmbTimedelta {
		return 0, false
	}
	return sign56(v.payload()), true
}
