// Copyright 2024 The celo-light-client Authors
// This file is part of the celo-light-client library.
//
// The celo-light-client library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The celo-light-client library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the celo-light-client library. If not, see <http://www.gnu.org/licenses/>.

package client

// Height is the host-boundary height pair (spec §6/§4.7): revision_number
// is the outer key, revision_height the inner one.
type Height struct {
	RevisionNumber uint64
	RevisionHeight uint64
}

// Compare returns -1, 0 or 1, ordering lexicographically by revision
// number first, matching spec §6 ("revision_number is the outer key").
func (h Height) Compare(o Height) int {
	switch {
	case h.RevisionNumber != o.RevisionNumber:
		if h.RevisionNumber < o.RevisionNumber {
			return -1
		}
		return 1
	case h.RevisionHeight < o.RevisionHeight:
		return -1
	case h.RevisionHeight > o.RevisionHeight:
		return 1
	default:
		return 0
	}
}

// LT reports whether h is strictly less than o.
func (h Height) LT(o Height) bool { return h.Compare(o) < 0 }

// LTE reports whether h is less than or equal to o.
func (h Height) LTE(o Height) bool { return h.Compare(o) <= 0 }

// Equal reports whether h and o name the same height.
func (h Height) Equal(o Height) bool { return h.Compare(o) == 0 }
