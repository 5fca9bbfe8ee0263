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

// Package client implements the driver (spec §4.7): the Init,
// UpdateHeader, CheckMisbehaviour and LatestHeight operations a host
// envelope calls, each reading the single persisted (StateEntry,
// StateConfig) record, delegating to package state for the actual
// verification/update logic, and writing the result back atomically.
package client

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/celo-org/celo-light-client/bls"
	"github.com/celo-org/celo-light-client/errs"
	"github.com/celo-org/celo-light-client/state"
	"github.com/celo-org/celo-light-client/store"
	"github.com/celo-org/celo-light-client/types"
)

// Client is the light-client driver. Its methods take no internal locks;
// the host is responsible for serializing calls against one instance
// (spec §5).
type Client struct {
	Store   store.KVStore
	Backend bls.Backend
	Now     state.Clock
}

// New constructs a Client over the given store, using the default BLS
// backend and no clock (timestamp policy effectively disabled unless the
// caller sets Now).
func New(kv store.KVStore) *Client {
	return &Client{Store: kv, Backend: bls.DefaultBackend}
}

func (c *Client) backend() bls.Backend {
	if c.Backend != nil {
		return c.Backend
	}
	return bls.DefaultBackend
}

func (c *Client) load() (record, error) {
	raw, err := c.Store.Get([]byte(stateKey))
	if err != nil {
		return record{}, &Error{Kind: KindStorageError, Cause: fmt.Errorf("%w: %v", errs.ErrStorage, err)}
	}
	if raw == nil {
		return record{}, &Error{Kind: KindStorageError, Cause: fmt.Errorf("%w: client not initialized", errs.ErrStorage)}
	}
	r, err := decodeRecord(raw)
	if err != nil {
		return record{}, &Error{Kind: KindRlpDecodeError, Cause: fmt.Errorf("%w: %v", errs.ErrRlpDecode, err)}
	}
	return r, nil
}

func (c *Client) save(r record) error {
	raw, err := encodeRecord(r)
	if err != nil {
		return &Error{Kind: KindRlpDecodeError, Cause: fmt.Errorf("%w: %v", errs.ErrRlpDecode, err)}
	}
	if err := c.Store.Put([]byte(stateKey), raw); err != nil {
		return &Error{Kind: KindStorageError, Cause: fmt.Errorf("%w: %v", errs.ErrStorage, err)}
	}
	return nil
}

// Init stores the caller-supplied initial StateEntry and StateConfig after
// self-verification succeeds (spec §4.7 "Init").
func (c *Client) Init(entry types.StateEntry, config types.StateConfig) error {
	if err := state.VerifyEntry(c.backend(), entry); err != nil {
		return newError("initial_state_entry", fmt.Errorf("%w: %v", errs.ErrInitialStateInvalid, err))
	}
	return c.save(record{Entry: entry, Config: config})
}

// UpdateHeader loads the current record, verifies and inserts header, and
// persists the resulting StateEntry. It fails without mutating stored
// state if the client is frozen or the header is rejected (spec §4.7
// "UpdateHeader").
func (c *Client) UpdateHeader(header *types.Header) (types.StateEntry, error) {
	r, err := c.load()
	if err != nil {
		return types.StateEntry{}, err
	}
	if r.Frozen {
		return types.StateEntry{}, newError("header", errs.ErrFrozen)
	}

	s := &state.State{Entry: r.Entry, Config: r.Config, Backend: c.backend(), Now: c.Now}
	next, err := s.InsertHeader(header)
	if err != nil {
		return types.StateEntry{}, newError("header", err)
	}

	r.Entry = next
	if err := c.save(r); err != nil {
		return types.StateEntry{}, err
	}
	log.Debug("updated light client state", "number", next.Number, "hash", next.Hash)
	return next, nil
}

// CheckMisbehaviour validates two conflicting headers against their
// respective (claimed-trusted) consensus states and, on success, freezes
// the client at height1 (spec §4.7 "CheckMisbehaviour").
func (c *Client) CheckMisbehaviour(
	height1 Height, header1 *types.Header, consensusState1 types.StateEntry,
	height2 Height, header2 *types.Header, consensusState2 types.StateEntry,
) error {
	r, err := c.load()
	if err != nil {
		return err
	}

	if !height1.Equal(height2) {
		return newError("height", errs.ErrHeightMismatch)
	}
	if r.Frozen && r.FrozenHeight.LTE(height1) {
		return newError("height", errs.ErrAlreadyFrozen)
	}

	s1 := &state.State{Entry: consensusState1, Config: r.Config, Backend: c.backend(), Now: c.Now}
	if err := s1.VerifyHeader(header1); err != nil {
		return newError("header_1", fmt.Errorf("%w: %v", errs.ErrMisbehaviourInvalid, err))
	}
	s2 := &state.State{Entry: consensusState2, Config: r.Config, Backend: c.backend(), Now: c.Now}
	if err := s2.VerifyHeader(header2); err != nil {
		return newError("header_2", fmt.Errorf("%w: %v", errs.ErrMisbehaviourInvalid, err))
	}

	r.Frozen = true
	r.FrozenHeight = height1
	if err := c.save(r); err != nil {
		return err
	}
	log.Warn("light client frozen on misbehaviour", "height", height1)
	return nil
}

// LatestHeightResponse is the read-only query response (spec §4.7 "Open
// Question (c)": the richer shape, not placeholder bytes).
type LatestHeightResponse struct {
	LastHeaderHeight uint64
	LastHeaderHash   common.Hash
	LastEpoch        uint64
	ValidatorSetRLP  []byte
}

// LatestHeight returns a snapshot of the persisted state (spec §4.7
// "LatestHeight").
func (c *Client) LatestHeight() (LatestHeightResponse, error) {
	r, err := c.load()
	if err != nil {
		return LatestHeightResponse{}, err
	}

	validatorSetRLP, err := types.EncodeValidators(r.Entry.Validators)
	if err != nil {
		return LatestHeightResponse{}, newError("validator_set", fmt.Errorf("%w: %v", errs.ErrRlpDecode, err))
	}

	lastEpoch := uint64(0)
	if r.Config.EpochSize > 0 {
		lastEpoch = r.Entry.Number / r.Config.EpochSize
	}

	return LatestHeightResponse{
		LastHeaderHeight: r.Entry.Number,
		LastHeaderHash:   r.Entry.Hash,
		LastEpoch:        lastEpoch,
		ValidatorSetRLP:  validatorSetRLP,
	}, nil
}
