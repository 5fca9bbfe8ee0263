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
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/celo-org/celo-light-client/bls"
	"github.com/celo-org/celo-light-client/errs"
	"github.com/celo-org/celo-light-client/store"
	"github.com/celo-org/celo-light-client/types"
)

// acceptBackend accepts every signature, exercising driver wiring
// (persistence, freeze tracking, height comparisons) independent of real
// curve arithmetic, which is covered in package bls.
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

func newTestClient() *Client {
	c := New(store.NewMemStore())
	c.Backend = acceptBackend{}
	return c
}

func genesisEntry() types.StateEntry {
	return types.StateEntry{
		Number:         0,
		Validators:     []types.Validator{{Address: common.BytesToAddress([]byte{1})}},
		AggregatedSeal: types.NewIstanbulAggregatedSeal(),
	}
}

func headerWithExtra(t *testing.T, number uint64, extra types.IstanbulExtra) *types.Header {
	t.Helper()
	payload, err := types.PrepareIstanbulExtra(types.ExtraVanity{}, extra)
	require.NoError(t, err)
	return &types.Header{Number: new(big.Int).SetUint64(number), Extra: payload}
}

// quorumSeal is a seal that satisfies QuorumThreshold(1) == 1 against the
// single-validator genesisEntry set: bit 0 set, so the quorum gate in
// bls.VerifyAggregatedSeal lets the call reach the stub backend.
func quorumSeal() types.IstanbulAggregatedSeal {
	return types.IstanbulAggregatedSeal{Bitmap: big.NewInt(1), Signature: []byte{}, Round: big.NewInt(0)}
}

func TestInitThenLatestHeight(t *testing.T) {
	c := newTestClient()
	require.NoError(t, c.Init(genesisEntry(), types.StateConfig{EpochSize: 10}))

	resp, err := c.LatestHeight()
	require.NoError(t, err)
	require.Equal(t, uint64(0), resp.LastHeaderHeight)
	require.Equal(t, uint64(0), resp.LastEpoch)
}

func TestUpdateHeaderBeforeInitFails(t *testing.T) {
	c := newTestClient()
	_, err := c.UpdateHeader(headerWithExtra(t, 1, types.IstanbulExtra{AggregatedSeal: types.NewIstanbulAggregatedSeal(), ParentAggregatedSeal: types.NewIstanbulAggregatedSeal()}))
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, KindStorageError, cerr.Kind)
}

func TestUpdateHeaderMonotonicity(t *testing.T) {
	c := newTestClient()
	require.NoError(t, c.Init(genesisEntry(), types.StateConfig{EpochSize: 10}))

	h1 := headerWithExtra(t, 1, types.IstanbulExtra{AggregatedSeal: types.NewIstanbulAggregatedSeal(), ParentAggregatedSeal: types.NewIstanbulAggregatedSeal()})
	entry1, err := c.UpdateHeader(h1)
	require.NoError(t, err)
	require.Equal(t, uint64(1), entry1.Number)

	h2 := headerWithExtra(t, 2, types.IstanbulExtra{AggregatedSeal: types.NewIstanbulAggregatedSeal(), ParentAggregatedSeal: types.NewIstanbulAggregatedSeal()})
	entry2, err := c.UpdateHeader(h2)
	require.NoError(t, err)
	require.Greater(t, entry2.Number, entry1.Number)
}

func TestUpdateHeaderDoesNotMutateOnFailure(t *testing.T) {
	c := newTestClient()
	require.NoError(t, c.Init(genesisEntry(), types.StateConfig{EpochSize: 10}))

	before, err := c.LatestHeight()
	require.NoError(t, err)

	// Epoch header with mismatched added-validator lists fails validation.
	bad := headerWithExtra(t, 10, types.IstanbulExtra{
		AddedValidators:           []common.Address{{0x1}},
		AddedValidatorsPublicKeys: nil,
		RemovedValidators:         new(big.Int),
		AggregatedSeal:            types.NewIstanbulAggregatedSeal(),
		ParentAggregatedSeal:      types.NewIstanbulAggregatedSeal(),
	})
	_, err = c.UpdateHeader(bad)
	require.Error(t, err)

	after, err := c.LatestHeight()
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestUpdateHeaderRejectedWhileFrozen(t *testing.T) {
	c := newTestClient()
	require.NoError(t, c.Init(genesisEntry(), types.StateConfig{EpochSize: 10}))

	height := Height{RevisionNumber: 0, RevisionHeight: 5}
	h1 := headerWithExtra(t, 5, types.IstanbulExtra{AggregatedSeal: quorumSeal(), ParentAggregatedSeal: types.NewIstanbulAggregatedSeal()})
	h2 := headerWithExtra(t, 5, types.IstanbulExtra{AggregatedSeal: quorumSeal(), ParentAggregatedSeal: types.NewIstanbulAggregatedSeal()})

	require.NoError(t, c.CheckMisbehaviour(height, h1, genesisEntry(), height, h2, genesisEntry()))

	_, err := c.UpdateHeader(headerWithExtra(t, 6, types.IstanbulExtra{AggregatedSeal: types.NewIstanbulAggregatedSeal(), ParentAggregatedSeal: types.NewIstanbulAggregatedSeal()}))
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, KindFrozen, cerr.Kind)
}

func TestCheckMisbehaviourHeightMismatch(t *testing.T) {
	c := newTestClient()
	require.NoError(t, c.Init(genesisEntry(), types.StateConfig{EpochSize: 10}))

	h1 := headerWithExtra(t, 5, types.IstanbulExtra{AggregatedSeal: types.NewIstanbulAggregatedSeal(), ParentAggregatedSeal: types.NewIstanbulAggregatedSeal()})
	h2 := headerWithExtra(t, 6, types.IstanbulExtra{AggregatedSeal: types.NewIstanbulAggregatedSeal(), ParentAggregatedSeal: types.NewIstanbulAggregatedSeal()})

	err := c.CheckMisbehaviour(
		Height{RevisionHeight: 5}, h1, genesisEntry(),
		Height{RevisionHeight: 6}, h2, genesisEntry(),
	)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, KindHeightMismatch, cerr.Kind)
}

func TestCheckMisbehaviourAlreadyFrozen(t *testing.T) {
	c := newTestClient()
	require.NoError(t, c.Init(genesisEntry(), types.StateConfig{EpochSize: 10}))

	height := Height{RevisionHeight: 5}
	h1 := headerWithExtra(t, 5, types.IstanbulExtra{AggregatedSeal: quorumSeal(), ParentAggregatedSeal: types.NewIstanbulAggregatedSeal()})
	h2 := headerWithExtra(t, 5, types.IstanbulExtra{AggregatedSeal: quorumSeal(), ParentAggregatedSeal: types.NewIstanbulAggregatedSeal()})
	require.NoError(t, c.CheckMisbehaviour(height, h1, genesisEntry(), height, h2, genesisEntry()))

	err := c.CheckMisbehaviour(height, h1, genesisEntry(), height, h2, genesisEntry())
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, KindAlreadyFrozen, cerr.Kind)
}

func TestInitRejectsInvalidInitialState(t *testing.T) {
	c := newTestClient()
	c.Backend = rejectBackend{}

	entry := genesisEntry()
	entry.Number = 5 // non-genesis, so self-verification runs; its zero-bitmap seal fails the quorum check.
	err := c.Init(entry, types.StateConfig{})
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, KindInitialStateInvalid, cerr.Kind)
}

func TestCheckMisbehaviourInvalidSignature(t *testing.T) {
	c := newTestClient()
	c.Backend = acceptBackend{}
	require.NoError(t, c.Init(genesisEntry(), types.StateConfig{EpochSize: 10}))
	c.Backend = rejectBackend{}

	height := Height{RevisionHeight: 5}
	h1 := headerWithExtra(t, 5, types.IstanbulExtra{AggregatedSeal: quorumSeal(), ParentAggregatedSeal: types.NewIstanbulAggregatedSeal()})
	h2 := headerWithExtra(t, 5, types.IstanbulExtra{AggregatedSeal: quorumSeal(), ParentAggregatedSeal: types.NewIstanbulAggregatedSeal()})

	err := c.CheckMisbehaviour(height, h1, genesisEntry(), height, h2, genesisEntry())
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, KindMisbehaviourInvalid, cerr.Kind)
	require.ErrorIs(t, err, errs.ErrMisbehaviourInvalid)
}

type rejectBackend struct{}

func (rejectBackend) DeserializePublicKey(raw types.SerializedPublicKey) (bls.PublicKey, error) {
	return nil, nil
}
func (rejectBackend) AggregatePublicKeys(keys []bls.PublicKey) (bls.PublicKey, error) {
	return nil, nil
}
func (rejectBackend) VerifyAggregatedSignature(agg bls.PublicKey, message, signature []byte) error {
	return errs.ErrInvalidSignature
}
