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

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"

	"github.com/celo-org/celo-light-client/types"
)

// domainSeparationTag is the chain-specific constant mixed into hash-to-curve
// so this scheme's signatures cannot be replayed against another protocol
// using the same curve (spec §4.4: "backend's domain-separation tag must
// match the producer").
var domainSeparationTag = []byte("CELO_LIGHT_CLIENT_BLS12377_COMMIT")

// gnarkPublicKey wraps a deserialized BLS12-377 G2 point.
type gnarkPublicKey struct {
	point bls12377.G2Affine
}

func (k gnarkPublicKey) Bytes() []byte {
	b := k.point.Bytes()
	return b[:]
}

// gnarkBackend implements Backend using consensys/gnark-crypto's BLS12-377
// pairing group, the curve Celo/Istanbul's BLS scheme specifies. Validator
// public keys live in G2 (96-byte compressed, matching
// types.PublicKeyLength); signatures live in G1.
type gnarkBackend struct{}

// NewGnarkBackend returns the default BLS12-377 backend.
func NewGnarkBackend() Backend {
	return gnarkBackend{}
}

func (gnarkBackend) DeserializePublicKey(raw types.SerializedPublicKey) (PublicKey, error) {
	var point bls12377.G2Affine
	if _, err := point.SetBytes(raw.Bytes()); err != nil {
		return nil, fmt.Errorf("deserialize g2 public key: %w", err)
	}
	return gnarkPublicKey{point: point}, nil
}

func (gnarkBackend) AggregatePublicKeys(keys []PublicKey) (PublicKey, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("aggregate public keys: empty key set")
	}

	var acc bls12377.G2Jac
	for i, k := range keys {
		gk, ok := k.(gnarkPublicKey)
		if !ok {
			return nil, fmt.Errorf("aggregate public keys: key %d is not a gnark public key", i)
		}
		var next bls12377.G2Jac
		next.FromAffine(&gk.point)
		if i == 0 {
			acc = next
			continue
		}
		acc.AddAssign(&next)
	}

	var aggAffine bls12377.G2Affine
	aggAffine.FromJacobian(&acc)
	return gnarkPublicKey{point: aggAffine}, nil
}

func (gnarkBackend) VerifyAggregatedSignature(agg PublicKey, message, signature []byte) error {
	gk, ok := agg.(gnarkPublicKey)
	if !ok {
		return fmt.Errorf("verify aggregated signature: aggregate key is not a gnark public key")
	}

	var sig bls12377.G1Affine
	if _, err := sig.SetBytes(signature); err != nil {
		return fmt.Errorf("deserialize g1 signature: %w", err)
	}

	hm, err := bls12377.HashToG1(message, domainSeparationTag)
	if err != nil {
		return fmt.Errorf("hash message to g1: %w", err)
	}

	_, _, _, g2Gen := bls12377.Generators()

	var sigNeg bls12377.G1Affine
	sigNeg.Neg(&sig)

	ok, err = bls12377.PairingCheck(
		[]bls12377.G1Affine{sigNeg, hm},
		[]bls12377.G2Affine{g2Gen, gk.point},
	)
	if err != nil {
		return fmt.Errorf("pairing check: %w", err)
	}
	if !ok {
		return fmt.Errorf("pairing check failed")
	}
	return nil
}
