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

package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/celo-org/celo-light-client/types"
)

func TestBase64RLPRoundTrip(t *testing.T) {
	entry := types.NewStateEntry()
	entry.Number = 7

	encoded, err := EncodeBase64RLP(entry)
	require.NoError(t, err)

	decoded, err := DecodeBase64RLP[types.StateEntry](encoded)
	require.NoError(t, err)
	require.Equal(t, entry.Number, decoded.Number)
}

func TestHexRLPRoundTrip(t *testing.T) {
	entry := types.NewStateEntry()
	entry.Number = 9

	encoded, err := EncodeHexRLP(entry)
	require.NoError(t, err)
	require.Equal(t, "0x", encoded[:2])

	decoded, err := DecodeHexRLP[types.StateEntry](encoded)
	require.NoError(t, err)
	require.Equal(t, entry.Number, decoded.Number)
}

func TestDecodeHexRLPAcceptsNoPrefix(t *testing.T) {
	encoded, err := EncodeHexRLP(types.NewStateEntry())
	require.NoError(t, err)

	_, err = DecodeHexRLP[types.StateEntry](encoded[2:])
	require.NoError(t, err)
}
