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

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/celo-org/celo-light-client/types"
)

// stateKey is the single host-chosen key the driver persists its record
// under (spec §6: canonical name "client_state").
const stateKey = "client_state"

// record is the single persisted blob backing (StateEntry, StateConfig)
// plus the frozen-state tracking spec §4.6 requires of the state machine
// but that the distilled StateEntry/StateConfig pair has no field for.
type record struct {
	Entry        types.StateEntry
	Config       types.StateConfig
	Frozen       bool
	FrozenHeight Height
}

func encodeRecord(r record) ([]byte, error) {
	return rlp.EncodeToBytes(&r)
}

func decodeRecord(data []byte) (record, error) {
	var r record
	err := rlp.DecodeBytes(data, &r)
	return r, err
}
