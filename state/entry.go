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

package state

import (
	"github.com/celo-org/celo-light-client/bls"
	"github.com/celo-org/celo-light-client/types"
)

// VerifyEntry self-verifies a StateEntry against its own validator list and
// aggregate seal (spec §4.7 Init: "verifies the entry's own aggregate seal
// against its own validator list; genesis entries with number == 0 may
// skip"). It is what Init calls before accepting a caller-supplied initial
// state.
func VerifyEntry(backend bls.Backend, entry types.StateEntry) error {
	if entry.Number == 0 {
		return nil
	}
	if backend == nil {
		backend = bls.DefaultBackend
	}
	return bls.VerifyAggregatedSeal(backend, entry.Hash, entry.Validators, entry.AggregatedSeal)
}
