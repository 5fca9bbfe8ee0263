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

package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// StateEntry is the persisted consensus state: a compact summary of the
// last header the client ingested (spec §3).
type StateEntry struct {
	Number         uint64
	Timestamp      uint64
	Validators     []Validator
	Hash           common.Hash
	AggregatedSeal IstanbulAggregatedSeal
}

// NewStateEntry returns the zero-value entry used before Init.
func NewStateEntry() StateEntry {
	return StateEntry{AggregatedSeal: NewIstanbulAggregatedSeal()}
}

// EncodeStateEntry RLP-encodes a StateEntry.
func EncodeStateEntry(e StateEntry) ([]byte, error) {
	return rlp.EncodeToBytes(&e)
}

// DecodeStateEntry RLP-decodes a StateEntry.
func DecodeStateEntry(data []byte) (StateEntry, error) {
	var e StateEntry
	err := rlp.DecodeBytes(data, &e)
	return e, err
}

// StateConfig holds the client's policy parameters (spec §3). No field is
// validated; TrustingPeriod, UpgradePath and the allow-after flags are only
// round-tripped. Only EpochSize, AllowedClockSkew and the three Verify*
// flags are exercised by the minimal core (spec §9).
type StateConfig struct {
	EpochSize         uint64
	AllowedClockSkew  uint64
	TrustingPeriod    uint64
	UpgradePath       []string

	VerifyEpochHeaders    bool
	VerifyNonEpochHeaders bool
	VerifyHeaderTimestamp bool

	AllowUpdateAfterMisbehavior bool
	AllowUpdateAfterExpiry      bool
}

// EncodeStateConfig RLP-encodes a StateConfig.
func EncodeStateConfig(c StateConfig) ([]byte, error) {
	return rlp.EncodeToBytes(&c)
}

// DecodeStateConfig RLP-decodes a StateConfig.
func DecodeStateConfig(data []byte) (StateConfig, error) {
	var c StateConfig
	err := rlp.DecodeBytes(data, &c)
	return c, err
}

// EncodeValidators RLP-encodes a validator set, used to populate
// LatestHeightResponse.ValidatorSetRLP (spec §4.7 Open Question c).
func EncodeValidators(validators []Validator) ([]byte, error) {
	if validators == nil {
		validators = []Validator{}
	}
	return rlp.EncodeToBytes(validators)
}
