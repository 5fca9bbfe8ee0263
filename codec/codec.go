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

// Package codec supplies the two envelope wire formats spec §6 names: the
// IBC-style envelope, where every payload travels as base64(RLP(T)) inside
// a JSON field, and the older envelope, which uses hex instead.
package codec

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
)

// DecodeBase64RLP decodes a base64 string into T via RLP.
func DecodeBase64RLP[T any](s string) (T, error) {
	var zero T
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return zero, fmt.Errorf("base64 decode: %w", err)
	}
	var out T
	if err := rlp.DecodeBytes(raw, &out); err != nil {
		return zero, fmt.Errorf("rlp decode: %w", err)
	}
	return out, nil
}

// EncodeBase64RLP RLP-encodes v and base64-encodes the result.
func EncodeBase64RLP[T any](v T) (string, error) {
	raw, err := rlp.EncodeToBytes(v)
	if err != nil {
		return "", fmt.Errorf("rlp encode: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeHexRLP decodes a hex string (with or without a 0x prefix) into T
// via RLP, for the older hex-based envelope.
func DecodeHexRLP[T any](s string) (T, error) {
	var zero T
	raw, err := hex.DecodeString(trim0x(s))
	if err != nil {
		return zero, fmt.Errorf("hex decode: %w", err)
	}
	var out T
	if err := rlp.DecodeBytes(raw, &out); err != nil {
		return zero, fmt.Errorf("rlp decode: %w", err)
	}
	return out, nil
}

// EncodeHexRLP RLP-encodes v and hex-encodes the result with a 0x prefix.
func EncodeHexRLP[T any](v T) (string, error) {
	raw, err := rlp.EncodeToBytes(v)
	if err != nil {
		return "", fmt.Errorf("rlp encode: %w", err)
	}
	return "0x" + hex.EncodeToString(raw), nil
}

func trim0x(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
