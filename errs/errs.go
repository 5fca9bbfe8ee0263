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

// Package errs declares the sentinel errors shared across the light-client
// core. Errors raised by the core's own checks wrap exactly one of these
// via fmt.Errorf("%w: ...", ...), so callers can branch with errors.Is
// instead of matching strings, and the driver can map a wrapped sentinel
// back onto the envelope-level error Kind. The plain RLP helpers (such as
// types.DecodeHeader and the codec package) return the rlp library's
// errors without a sentinel.
package errs

import "errors"

// Sentinel errors, one per taxonomy entry.
var (
	ErrRlpDecode               = errors.New("rlp decode error")
	ErrInvalidValidatorSetDiff = errors.New("invalid validator set diff")
	ErrFutureBlock             = errors.New("future block")
	ErrEmptyValidators         = errors.New("empty validator set")
	ErrInvalidBitmap           = errors.New("invalid bitmap")
	ErrInsufficientSeals       = errors.New("insufficient seals")
	ErrInvalidSignature        = errors.New("invalid signature")
	ErrHeightMismatch          = errors.New("height mismatch")
	ErrAlreadyFrozen           = errors.New("already frozen")
	ErrFrozen                  = errors.New("client is frozen")
	ErrInitialStateInvalid     = errors.New("initial state invalid")
	ErrStorage                 = errors.New("storage error")
	ErrGeneric                 = errors.New("generic error")
	ErrMisbehaviourInvalid     = errors.New("misbehaviour invalid")
)
