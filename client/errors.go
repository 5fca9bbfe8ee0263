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
	"errors"
	"fmt"

	"github.com/celo-org/celo-light-client/errs"
)

// Kind names one taxonomy entry from spec §7. Only the driver translates a
// wrapped sentinel into a Kind; State/validatorset/bls return plain
// stdlib-wrapped errors.
type Kind string

const (
	KindRlpDecodeError          Kind = "RlpDecodeError"
	KindInvalidValidatorSetDiff Kind = "InvalidValidatorSetDiff"
	KindFutureBlock             Kind = "FutureBlock"
	KindEmptyValidators         Kind = "EmptyValidators"
	KindInvalidBitmap           Kind = "InvalidBitmap"
	KindInsufficientSeals       Kind = "InsufficientSeals"
	KindInvalidSignature        Kind = "InvalidSignature"
	KindHeightMismatch          Kind = "HeightMismatch"
	KindAlreadyFrozen           Kind = "AlreadyFrozen"
	KindFrozen                  Kind = "Frozen"
	KindInitialStateInvalid     Kind = "InitialStateInvalid"
	KindStorageError            Kind = "StorageError"
	KindMisbehaviourInvalid     Kind = "MisbehaviourInvalid"
	KindGenericError            Kind = "GenericError"
)

// Error is the envelope-level error the driver returns: a Kind, the
// request field that was bad (TargetType, may be empty), and the
// underlying cause (spec §7 "Propagation").
type Error struct {
	Kind       Kind
	TargetType string
	Cause      error
}

func (e *Error) Error() string {
	if e.TargetType != "" {
		return fmt.Sprintf("%s (%s): %v", e.Kind, e.TargetType, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// newError wraps cause under the matching Kind, inferring the kind from
// the sentinel it wraps (errs.Err*) so callers don't have to duplicate the
// mapping at every call site.
func newError(targetType string, cause error) *Error {
	return &Error{Kind: classify(cause), TargetType: targetType, Cause: cause}
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, errs.ErrRlpDecode):
		return KindRlpDecodeError
	case errors.Is(err, errs.ErrInvalidValidatorSetDiff):
		return KindInvalidValidatorSetDiff
	case errors.Is(err, errs.ErrFutureBlock):
		return KindFutureBlock
	case errors.Is(err, errs.ErrEmptyValidators):
		return KindEmptyValidators
	case errors.Is(err, errs.ErrInvalidBitmap):
		return KindInvalidBitmap
	case errors.Is(err, errs.ErrInsufficientSeals):
		return KindInsufficientSeals
	case errors.Is(err, errs.ErrInvalidSignature):
		return KindInvalidSignature
	case errors.Is(err, errs.ErrHeightMismatch):
		return KindHeightMismatch
	case errors.Is(err, errs.ErrAlreadyFrozen):
		return KindAlreadyFrozen
	case errors.Is(err, errs.ErrFrozen):
		return KindFrozen
	case errors.Is(err, errs.ErrInitialStateInvalid):
		return KindInitialStateInvalid
	case errors.Is(err, errs.ErrStorage):
		return KindStorageError
	case errors.Is(err, errs.ErrMisbehaviourInvalid):
		return KindMisbehaviourInvalid
	default:
		return KindGenericError
	}
}
