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

package bls

import (
	"fmt"
	"math/big"

	"github.com/bits-and-blooms/bitset"

	"github.com/celo-org/celo-light-client/errs"
)

// bitIndices decodes bitmap (an unbounded non-negative integer, bit i =
// validator i signed) into the sorted list of its set indices within
// [0, n). A set bit at index >= n is rejected (spec §4.4 step 2), matching
// §9's recommendation to hold such bitmaps in a byte-indexed bit vector
// rather than a fixed-width word.
func bitIndices(bitmap *big.Int, n int) ([]int, error) {
	bs := bitset.New(uint(n))
	for i := 0; i < bitmap.BitLen(); i++ {
		if bitmap.Bit(i) == 0 {
			continue
		}
		if i >= n {
			return nil, fmt.Errorf("%w: bit %d set but only %d validators", errs.ErrInvalidBitmap, i, n)
		}
		bs.Set(uint(i))
	}

	indices := make([]int, 0, bs.Count())
	for i, ok := bs.NextSet(0); ok; i, ok = bs.NextSet(i + 1) {
		indices = append(indices, int(i))
	}
	return indices, nil
}

// roundBigEndian encodes round as minimal big-endian bytes, matching
// big.Int.Bytes() semantics used for every other unbounded integer in this
// codec (spec §4.4 step 3): zero encodes as the empty byte string.
func roundBigEndian(round *big.Int) []byte {
	if round == nil {
		return nil
	}
	return round.Bytes()
}
