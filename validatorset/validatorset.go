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

// Package validatorset implements the pure add/remove algebra over a
// validator list (spec §4.5). Both operations are pure functions: they copy
// rather than mutate, so a failed epoch-header update never corrupts the
// caller's current set.
package validatorset

import (
	"fmt"
	"math/big"

	"github.com/bits-and-blooms/bitset"

	"github.com/celo-org/celo-light-client/errs"
	"github.com/celo-org/celo-light-client/types"
)

// Add appends newValidators to the tail of current, in order. It fails if
// any address in newValidators already appears in current, or if an
// address repeats within newValidators itself (spec §4.5: "the core treats
// [duplicates within new] as immediate conflict on the second insertion").
func Add(current []types.Validator, newValidators []types.Validator) ([]types.Validator, error) {
	seen := make(map[[20]byte]struct{}, len(current)+len(newValidators))
	for _, v := range current {
		seen[v.Address] = struct{}{}
	}

	out := make([]types.Validator, len(current), len(current)+len(newValidators))
	copy(out, current)

	for _, v := range newValidators {
		if _, conflict := seen[v.Address]; conflict {
			return nil, fmt.Errorf("%w: validator %s already present", errs.ErrInvalidValidatorSetDiff, v.Address.Hex())
		}
		seen[v.Address] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// Remove drops validators at positions where the corresponding bit in
// bitmap is set, preserving the relative order of survivors (spec §4.5).
// A zero bitmap is a no-op success; a bit at or beyond len(current) fails.
func Remove(current []types.Validator, bitmap *big.Int) ([]types.Validator, error) {
	if bitmap == nil || bitmap.Sign() == 0 {
		out := make([]types.Validator, len(current))
		copy(out, current)
		return out, nil
	}

	n := len(current)
	bs := bitset.New(uint(n))
	for i := 0; i < bitmap.BitLen(); i++ {
		if bitmap.Bit(i) == 0 {
			continue
		}
		if i >= n {
			return nil, fmt.Errorf("%w: remove bit %d out of range for %d validators", errs.ErrInvalidValidatorSetDiff, i, n)
		}
		bs.Set(uint(i))
	}

	out := make([]types.Validator, 0, n)
	for i, v := range current {
		if !bs.Test(uint(i)) {
			out = append(out, v)
		}
	}
	return out, nil
}
