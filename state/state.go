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

// Package state implements the validator-set state machine (spec §4.6):
// header verification against the current trust anchor, and the epoch vs.
// non-epoch update rules that advance a StateEntry.
package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"

	"github.com/celo-org/celo-light-client/bls"
	"github.com/celo-org/celo-light-client/errs"
	"github.com/celo-org/celo-light-client/types"
	"github.com/celo-org/celo-light-client/validatorset"
)

// Clock is the wall-clock seam described in spec §4.6/§9: callers inject a
// real or a fixed clock. A nil Clock means no clock is available, and the
// timestamp check is skipped.
type Clock func() uint64

// State wraps the persisted (StateEntry, StateConfig) pair and the
// dependencies VerifyHeader/InsertHeader need: a BLS backend and a clock.
type State struct {
	Entry  types.StateEntry
	Config types.StateConfig

	Backend bls.Backend
	Now     Clock
}

// New constructs a State with the default BLS backend; Now defaults to nil,
// which VerifyHeader treats as "clock unavailable": the timestamp check is
// skipped even when the timestamp policy is enabled.
func New(entry types.StateEntry, config types.StateConfig) *State {
	return &State{Entry: entry, Config: config, Backend: bls.DefaultBackend}
}

// IsLastBlockOfEpoch reports whether number is an epoch boundary: number >
// 0 and number is a multiple of epochSize (spec §4.6).
func IsLastBlockOfEpoch(number, epochSize uint64) bool {
	return number > 0 && epochSize > 0 && number%epochSize == 0
}

// VerifyHeader checks header against the current trust anchor: optional
// clock-skew policy, IstanbulExtra decode, and the C4 aggregate-seal check
// (spec §4.6 "verify_header").
func (s *State) VerifyHeader(header *types.Header) error {
	if s.Config.VerifyHeaderTimestamp && s.Now != nil {
		now := s.Now()
		if header.Time > now+s.Config.AllowedClockSkew {
			return fmt.Errorf("%w: header time %d exceeds now(%d)+skew(%d)", errs.ErrFutureBlock, header.Time, now, s.Config.AllowedClockSkew)
		}
	}

	_, extra, err := types.ExtractIstanbulExtra(header)
	if err != nil {
		return err
	}

	hash, err := header.Hash()
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrRlpDecode, err)
	}

	backend := s.Backend
	if backend == nil {
		backend = bls.DefaultBackend
	}
	return bls.VerifyAggregatedSeal(backend, hash, s.Entry.Validators, extra.AggregatedSeal)
}

// InsertHeader advances the state to header, applying the epoch vs.
// non-epoch update rule (spec §4.6 "insert_header"). It returns the new
// StateEntry without mutating s; callers (the client driver) persist it
// only once every check has succeeded.
func (s *State) InsertHeader(header *types.Header) (types.StateEntry, error) {
	number := header.Number64()
	epoch := IsLastBlockOfEpoch(number, s.Config.EpochSize)

	verify := (epoch && s.Config.VerifyEpochHeaders) || (!epoch && s.Config.VerifyNonEpochHeaders)
	if number != 0 && verify {
		if err := s.VerifyHeader(header); err != nil {
			return types.StateEntry{}, err
		}
	}

	hash, err := header.Hash()
	if err != nil {
		return types.StateEntry{}, fmt.Errorf("%w: %v", errs.ErrRlpDecode, err)
	}

	_, extra, err := types.ExtractIstanbulExtra(header)
	if err != nil {
		return types.StateEntry{}, err
	}

	next := types.StateEntry{
		Number:         number,
		Timestamp:      header.Time,
		Hash:           hash,
		AggregatedSeal: extra.AggregatedSeal,
		Validators:     s.Entry.Validators,
	}

	if !epoch {
		log.Debug("inserting non-epoch header", "number", number, "hash", hash)
		return next, nil
	}

	if err := extra.Validate(); err != nil {
		return types.StateEntry{}, err
	}

	afterRemove, err := validatorset.Remove(s.Entry.Validators, extra.RemovedValidators)
	if err != nil {
		return types.StateEntry{}, err
	}
	afterAdd, err := validatorset.Add(afterRemove, extra.AddedValidatorSet())
	if err != nil {
		return types.StateEntry{}, err
	}

	next.Validators = afterAdd
	log.Debug("inserting epoch header", "number", number, "hash", hash, "validators", len(afterAdd))
	return next, nil
}
