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

// Package attrhash computes the 64-bit hash used to key an object's
// own-attributes sparse map from an attribute name. Every caller in
// this module that needs hash(name) — object.SetAttribute,
// object.GetAttribute, the method cache probe — goes through Hash so
// that the same name always lands on the same sparse-map key.
package attrhash

import "github.com/dchest/siphash"

// Fixed key pair for the attribute-name hash. It does not need to be
// secret (attribute names are not adversarial input in the way a hash
// flood attack would require); it only needs to be stable for the
// lifetime of a Space, since hash(name) is baked into every sparse
// map key computed from a name.
const (
	k0 = 0x70726f746f636f72 // "protocor"
	k1 = 0x652d6861736821ff // "e-hash!" + 0xff
)

// Hash returns the 64-bit hash of name.
func Hash(name string) uint64 {
	return siphash.Hash(k0, k1, []byte(name))
}
