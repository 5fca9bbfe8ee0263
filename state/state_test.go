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
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/celo-org/celo-light-client/bls"
	"github.com/celo-org/celo-light-client/errs"
	"github.com/celo-org/celo-light-client/types"
)

// acceptBackend always succeeds, letting tests exercise the state-machine
// wiring (epoch classification, clock-skew gate, validator-set updates)
// independent of real curve arithmetic, which lives in package bls.
type acceptBackend struct{}

func (acceptBackend) DeserializePublicKey(raw types.SerializedPublicKey) (bls.PublicKey, error) {
	return nil, nil
}
func (acceptBackend) AggregatePublicKeys(keys []bls.PublicKey) (bls.PublicKey, error) {
	return nil, nil
}
func (acceptBackend) VerifyAggregatedSignature(agg bls.PublicKey, message, signature []byte) error {
	return nil
}

func headerWithExtra(number uint64, time uint64, extra types.IstanbulExtra) *types.Header {
	payload, err := types.PrepareIstanbulExtra(types.ExtraVanity{}, extra)
	if err != nil {
		panic(err)
	}
	return &types.Header{Number: new(big.Int).SetUint64(number), Time: time, Extra: payload}
}

func TestIsLastBlockOfEpoch(t *testing.T) {
	require.False(t, IsLastBlockOfEpoch(0, 10))
	require.False(t, IsLastBlockOfEpoch(5, 10))
	require.True(t, IsLastBlockOfEpoch(10, 10))
	require.True(t, IsLastBlockOfEpoch(20, 10))
}

func TestInsertHeaderNonEpochCopiesValidators(t *testing.T) {
	validators := []types.Validator{{Address: common.BytesToAddress([]byte{1})}}
	s := &State{
		Entry:   types.StateEntry{Number: 5, Validators: validators},
		Config:  types.StateConfig{EpochSize: 10, VerifyNonEpochHeaders: false, VerifyEpochHeaders: false},
		Backend: acceptBackend{},
	}

	header := headerWithExtra(6, 100, types.IstanbulExtra{AggregatedSeal: types.NewIstanbulAggregatedSeal(), ParentAggregatedSeal: types.NewIstanbulAggregatedSeal()})

	next, err := s.InsertHeader(header)
	require.NoError(t, err)
	require.Equal(t, uint64(6), next.Number)
	require.Equal(t, validators, next.Validators)
}

func TestInsertHeaderEpochAppliesDiff(t *testing.T) {
	existing := types.Validator{Address: common.BytesToAddress([]byte{1})}
	added := common.BytesToAddress([]byte{2})

	s := &State{
		Entry:   types.StateEntry{Number: 0, Validators: []types.Validator{existing}},
		Config:  types.StateConfig{EpochSize: 10, VerifyEpochHeaders: false},
		Backend: acceptBackend{},
	}

	extra := types.IstanbulExtra{
		AddedValidators:           []common.Address{added},
		AddedValidatorsPublicKeys: []types.SerializedPublicKey{{}},
		RemovedValidators:         new(big.Int),
		AggregatedSeal:            types.NewIstanbulAggregatedSeal(),
		ParentAggregatedSeal:      types.NewIstanbulAggregatedSeal(),
	}
	header := headerWithExtra(10, 100, extra)

	next, err := s.InsertHeader(header)
	require.NoError(t, err)
	require.Len(t, next.Validators, 2)
	require.Equal(t, added, next.Validators[1].Address)
}

func TestInsertHeaderGenesisSkipsVerification(t *testing.T) {
	s := &State{
		Config:  types.StateConfig{EpochSize: 10, VerifyNonEpochHeaders: true},
		Backend: acceptBackend{},
	}
	// The entry has no validators, so a BLS check would fail: genesis
	// (number==0) must skip it. The extra is still decoded for its aggregated
	// seal, so give it a minimally valid payload.
	header := headerWithExtra(0, 0, types.IstanbulExtra{AggregatedSeal: types.NewIstanbulAggregatedSeal(), ParentAggregatedSeal: types.NewIstanbulAggregatedSeal()})

	_, err := s.InsertHeader(header)
	require.NoError(t, err)
}

func TestVerifyHeaderRejectsFutureBlock(t *testing.T) {
	s := &State{
		Config: types.StateConfig{VerifyHeaderTimestamp: true, AllowedClockSkew: 5},
		Now:    func() uint64 { return 100 },
	}
	header := headerWithExtra(1, 200, types.IstanbulExtra{AggregatedSeal: types.NewIstanbulAggregatedSeal(), ParentAggregatedSeal: types.NewIstanbulAggregatedSeal()})

	err := s.VerifyHeader(header)
	require.ErrorIs(t, err, errs.ErrFutureBlock)
}

func TestVerifyHeaderAcceptsWithinSkew(t *testing.T) {
	s := &State{
		Entry:   types.StateEntry{Validators: []types.Validator{{Address: common.BytesToAddress([]byte{1})}}},
		Config:  types.StateConfig{VerifyHeaderTimestamp: true, AllowedClockSkew: 5},
		Now:     func() uint64 { return 100 },
		Backend: acceptBackend{},
	}
	// One validator means QuorumThreshold(1) == 1, so the seal must carry at
	// least one signer (bit 0 set) or VerifyAggregatedSeal rejects it before
	// the backend is ever consulted.
	quorumSeal := types.IstanbulAggregatedSeal{Bitmap: big.NewInt(1), Signature: []byte{}, Round: big.NewInt(0)}
	header := headerWithExtra(1, 103, types.IstanbulExtra{AggregatedSeal: quorumSeal, ParentAggregatedSeal: types.NewIstanbulAggregatedSeal()})

	require.NoError(t, s.VerifyHeader(header))
}
