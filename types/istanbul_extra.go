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
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/celo-org/celo-light-client/errs"
)

// IstanbulAggregatedSeal is the three-field RLP list carrying an IBFT
// commit-round BLS aggregate (spec §3).
type IstanbulAggregatedSeal struct {
	// Bitmap has an active bit for each validator that signed.
	Bitmap *big.Int
	// Signature is the aggregated BLS signature.
	Signature []byte
	// Round is the round the signature was created in.
	Round *big.Int
}

// NewIstanbulAggregatedSeal returns the zero-value aggregate seal, the
// RLP encoding of which round-trips through IstanbulAggregatedSeal{}.
func NewIstanbulAggregatedSeal() IstanbulAggregatedSeal {
	return IstanbulAggregatedSeal{
		Bitmap:    new(big.Int),
		Signature: []byte{},
		Round:     new(big.Int),
	}
}

// istanbulAggregatedSealRLP mirrors IstanbulAggregatedSeal but is only
// used as the rlp struct: it exists so nil *big.Int fields on a
// zero-value IstanbulAggregatedSeal still encode as an empty digit
// string (RLP's representation of zero) instead of panicking.
type istanbulAggregatedSealRLP struct {
	Bitmap    *big.Int
	Signature []byte
	Round     *big.Int
}

// EncodeRLP implements rlp.Encoder.
func (s IstanbulAggregatedSeal) EncodeRLP(w io.Writer) error {
	out := istanbulAggregatedSealRLP{Bitmap: nonNilBigInt(s.Bitmap), Signature: s.Signature, Round: nonNilBigInt(s.Round)}
	if out.Signature == nil {
		out.Signature = []byte{}
	}
	return rlp.Encode(w, &out)
}

// DecodeRLP implements rlp.Decoder.
func (s *IstanbulAggregatedSeal) DecodeRLP(stream *rlp.Stream) error {
	var dec istanbulAggregatedSealRLP
	if err := stream.Decode(&dec); err != nil {
		return fmt.Errorf("%w: aggregated seal: %v", errs.ErrRlpDecode, err)
	}
	s.Bitmap = nonNilBigInt(dec.Bitmap)
	s.Signature = dec.Signature
	s.Round = nonNilBigInt(dec.Round)
	return nil
}

func nonNilBigInt(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

// IstanbulExtra is the six-field RLP list stored after the vanity prefix
// in header.Extra (spec §3/§4.3).
type IstanbulExtra struct {
	AddedValidators           []common.Address
	AddedValidatorsPublicKeys []SerializedPublicKey
	RemovedValidators         *big.Int
	Seal                      []byte
	AggregatedSeal            IstanbulAggregatedSeal
	ParentAggregatedSeal      IstanbulAggregatedSeal
}

// istanbulExtraRLP is the on-the-wire shape; RemovedValidators is passed
// through nonNilBigInt on read so the decoded value is never nil.
type istanbulExtraRLP struct {
	AddedValidators           []common.Address
	AddedValidatorsPublicKeys []SerializedPublicKey
	RemovedValidators         *big.Int
	Seal                      []byte
	AggregatedSeal            IstanbulAggregatedSeal
	ParentAggregatedSeal      IstanbulAggregatedSeal
}

// EncodeRLP implements rlp.Encoder.
func (e IstanbulExtra) EncodeRLP(w io.Writer) error {
	addedValidators := e.AddedValidators
	if addedValidators == nil {
		addedValidators = []common.Address{}
	}
	addedKeys := e.AddedValidatorsPublicKeys
	if addedKeys == nil {
		addedKeys = []SerializedPublicKey{}
	}
	seal := e.Seal
	if seal == nil {
		seal = []byte{}
	}

	out := istanbulExtraRLP{
		AddedValidators:           addedValidators,
		AddedValidatorsPublicKeys: addedKeys,
		RemovedValidators:         nonNilBigInt(e.RemovedValidators),
		Seal:                      seal,
		AggregatedSeal:            e.AggregatedSeal,
		ParentAggregatedSeal:      e.ParentAggregatedSeal,
	}
	return rlp.Encode(w, &out)
}

// DecodeRLP implements rlp.Decoder. Mismatched added-validator /
// added-public-key list lengths are accepted at the wire level (the
// check belongs to the caller per spec §4.3, since a decoder that errors
// on length mismatch can't report which list was short).
func (e *IstanbulExtra) DecodeRLP(stream *rlp.Stream) error {
	var dec istanbulExtraRLP
	if err := stream.Decode(&dec); err != nil {
		return fmt.Errorf("%w: istanbul extra: %v", errs.ErrRlpDecode, err)
	}
	e.AddedValidators = dec.AddedValidators
	e.AddedValidatorsPublicKeys = dec.AddedValidatorsPublicKeys
	e.RemovedValidators = nonNilBigInt(dec.RemovedValidators)
	e.Seal = dec.Seal
	e.AggregatedSeal = dec.AggregatedSeal
	e.ParentAggregatedSeal = dec.ParentAggregatedSeal
	return nil
}

// Validate enforces the parallel-list invariant spec §4.3 and §8 require:
// added validators and their public keys must be index-aligned and of
// equal length.
func (e IstanbulExtra) Validate() error {
	if len(e.AddedValidators) != len(e.AddedValidatorsPublicKeys) {
		return fmt.Errorf("%w: added validators (%d) and public keys (%d) length mismatch",
			errs.ErrInvalidValidatorSetDiff, len(e.AddedValidators), len(e.AddedValidatorsPublicKeys))
	}
	return nil
}

// AddedValidatorSet zips AddedValidators and AddedValidatorsPublicKeys
// into Validator structs, in order. Callers must call Validate first.
func (e IstanbulExtra) AddedValidatorSet() []Validator {
	out := make([]Validator, len(e.AddedValidators))
	for i := range e.AddedValidators {
		out[i] = Validator{Address: e.AddedValidators[i], PublicKey: e.AddedValidatorsPublicKeys[i]}
	}
	return out
}

// ExtractIstanbulExtra splits header.Extra into its vanity prefix and
// RLP-decodes the remainder into an IstanbulExtra (spec §4.3). Extra
// shorter than ExtraVanityLength is rejected.
func ExtractIstanbulExtra(h *Header) (ExtraVanity, IstanbulExtra, error) {
	var vanity ExtraVanity
	var extra IstanbulExtra

	if len(h.Extra) < ExtraVanityLength {
		return vanity, extra, fmt.Errorf("%w: invalid istanbul header extra-data", errs.ErrRlpDecode)
	}

	copy(vanity[:], h.Extra[:ExtraVanityLength])
	if err := rlp.DecodeBytes(h.Extra[ExtraVanityLength:], &extra); err != nil {
		return vanity, extra, err
	}
	return vanity, extra, nil
}

// PrepareIstanbulExtra is the inverse of ExtractIstanbulExtra: it
// produces the vanity||RLP(extra) byte string suitable for Header.Extra.
func PrepareIstanbulExtra(vanity ExtraVanity, extra IstanbulExtra) ([]byte, error) {
	payload, err := rlp.EncodeToBytes(&extra)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(vanity)+len(payload))
	out = append(out, vanity[:]...)
	out = append(out, payload...)
	return out, nil
}
