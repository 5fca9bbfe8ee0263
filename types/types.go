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

// Package types defines the wire types the light-client core operates on:
// block headers, the Istanbul extra-data sidecar, validators and the
// persisted consensus state.
package types

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/celo-org/celo-light-client/errs"
)

// PublicKeyLength is the size in bytes of a compressed BLS12-377 G2 point,
// as produced by the chain's BLS scheme (SOURCE: crypto/bls/bls.go,
// celo-org/bls-zexe).
const PublicKeyLength = 96

// ExtraVanityLength is the size of the caller-chosen prefix at the start
// of header.Extra, before the RLP-encoded IstanbulExtra payload.
const ExtraVanityLength = 32

// SerializedPublicKey is a compressed BLS12-377 G2 point.
type SerializedPublicKey [PublicKeyLength]byte

// EncodeRLP implements rlp.Encoder.
func (pk SerializedPublicKey) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, pk[:])
}

// DecodeRLP implements rlp.Decoder. It rejects any payload whose length
// does not exactly match PublicKeyLength.
func (pk *SerializedPublicKey) DecodeRLP(s *rlp.Stream) error {
	var raw []byte
	if err := s.Decode(&raw); err != nil {
		return err
	}
	if len(raw) != PublicKeyLength {
		return fmt.Errorf("%w: public key must be %d bytes, got %d", errs.ErrRlpDecode, PublicKeyLength, len(raw))
	}
	copy(pk[:], raw)
	return nil
}

// Bytes returns the raw key bytes.
func (pk SerializedPublicKey) Bytes() []byte { return pk[:] }

// BytesToPublicKey converts a byte slice to a SerializedPublicKey,
// enforcing its exact length.
func BytesToPublicKey(b []byte) (SerializedPublicKey, error) {
	var pk SerializedPublicKey
	if len(b) != PublicKeyLength {
		return pk, fmt.Errorf("%w: public key must be %d bytes, got %d", errs.ErrRlpDecode, PublicKeyLength, len(b))
	}
	copy(pk[:], b)
	return pk, nil
}

// ExtraVanity is the 32-byte caller-chosen prefix of header.Extra.
type ExtraVanity [ExtraVanityLength]byte

// BytesToExtraVanity converts a byte slice to an ExtraVanity, enforcing
// its exact length.
func BytesToExtraVanity(b []byte) (ExtraVanity, error) {
	var v ExtraVanity
	if len(b) != ExtraVanityLength {
		return v, fmt.Errorf("%w: vanity must be %d bytes, got %d", errs.ErrRlpDecode, ExtraVanityLength, len(b))
	}
	copy(v[:], b)
	return v, nil
}

// Validator is a single member of a validator set, identified by its
// address; the public key is required to verify BLS aggregate seals.
type Validator struct {
	Address   common.Address
	PublicKey SerializedPublicKey
}

// Equal reports whether two validators have the same address and key.
func (v Validator) Equal(o Validator) bool {
	return v.Address == o.Address && v.PublicKey == o.PublicKey
}
