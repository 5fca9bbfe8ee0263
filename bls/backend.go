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

// Package bls verifies the IBFT commit-round BLS aggregate seal (spec §4.4).
// The curve arithmetic itself lives behind a Backend interface so the
// default BLS12-377 implementation (backed by consensys/gnark-crypto) can be
// swapped for a host-supplied one without touching the state machine.
package bls

import (
	"fmt"
	"math/big"

	"github.com/celo-org/celo-light-client/errs"
	"github.com/celo-org/celo-light-client/types"
)

// commitMsgCode is the Istanbul "commit" message tag mixed into the signed
// payload (spec §4.4 step 3).
const commitMsgCode byte = 2

// PublicKey is an opaque, backend-owned representation of a deserialized
// validator BLS public key.
type PublicKey interface {
	// Bytes returns the compressed 96-byte encoding of the key.
	Bytes() []byte
}

// Backend is the set of BLS12-377 operations the seal verifier depends on.
// gnarkBackend is the production implementation; tests and alternative
// hosts may substitute another (e.g. one backed by supranational/blst).
type Backend interface {
	DeserializePublicKey(raw types.SerializedPublicKey) (PublicKey, error)
	AggregatePublicKeys(keys []PublicKey) (PublicKey, error)
	VerifyAggregatedSignature(agg PublicKey, message, signature []byte) error
}

// DefaultBackend is the gnark-crypto-backed BLS12-377 implementation used
// unless a caller supplies its own.
var DefaultBackend Backend = NewGnarkBackend()

// SignedMessage builds the exact byte string validators sign over a commit:
// header_hash(32) || commit_msg_code(1, value 2) || round_big_endian.
func SignedMessage(headerHash [32]byte, round *big.Int) []byte {
	msg := make([]byte, 0, 32+1+8)
	msg = append(msg, headerHash[:]...)
	msg = append(msg, commitMsgCode)
	msg = append(msg, roundBigEndian(round)...)
	return msg
}

// QuorumThreshold returns the minimum number of signers required out of N
// validators: floor(2*N/3) + 1 (spec §4.4 step 1 / §8 "Quorum" property).
func QuorumThreshold(n int) int {
	return (2*n)/3 + 1
}

// VerifyAggregatedSeal implements the C4 contract: given a header hash, the
// current validator list (trust anchor) and an aggregate seal, verify that
// a quorum of validators signed the commit message the seal claims to cover.
func VerifyAggregatedSeal(backend Backend, headerHash [32]byte, validators []types.Validator, seal types.IstanbulAggregatedSeal) error {
	n := len(validators)
	if n == 0 {
		return errs.ErrEmptyValidators
	}

	bitmap := seal.Bitmap
	if bitmap == nil {
		bitmap = new(big.Int)
	}

	signerIdx, err := bitIndices(bitmap, n)
	if err != nil {
		return err
	}

	threshold := QuorumThreshold(n)
	if len(signerIdx) < threshold {
		return fmt.Errorf("%w: got %d signers, need %d of %d validators", errs.ErrInsufficientSeals, len(signerIdx), threshold, n)
	}

	keys := make([]PublicKey, 0, len(signerIdx))
	for _, i := range signerIdx {
		pk, err := backend.DeserializePublicKey(validators[i].PublicKey)
		if err != nil {
			return fmt.Errorf("%w: validator %d public key: %v", errs.ErrInvalidSignature, i, err)
		}
		keys = append(keys, pk)
	}

	agg, err := backend.AggregatePublicKeys(keys)
	if err != nil {
		return fmt.Errorf("%w: aggregating public keys: %v", errs.ErrInvalidSignature, err)
	}

	message := SignedMessage(headerHash, seal.Round)
	if err := backend.VerifyAggregatedSignature(agg, message, seal.Signature); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrInvalidSignature, err)
	}
	return nil
}
