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
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// Bloom is a 256-byte log bloom filter, carried in the header for
// round-trip fidelity; the light client never inspects it.
type Bloom [256]byte

// Header is the decoded block header. Field order is the canonical RLP
// order producers use; reordering it would make Hash() diverge from the
// producer's hash and fail every BLS verification (spec §4.2).
type Header struct {
	ParentHash  common.Hash    `json:"parentHash"       gencodec:"required"`
	Coinbase    common.Address `json:"miner"            gencodec:"required"`
	Root        common.Hash    `json:"stateRoot"        gencodec:"required"`
	TxHash      common.Hash    `json:"transactionsRoot" gencodec:"required"`
	ReceiptHash common.Hash    `json:"receiptsRoot"     gencodec:"required"`
	Bloom       Bloom          `json:"logsBloom"        gencodec:"required"`
	Number      *big.Int       `json:"number"           gencodec:"required"`
	GasUsed     uint64         `json:"gasUsed"          gencodec:"required"`
	Time        uint64         `json:"timestamp"        gencodec:"required"`
	Extra       []byte         `json:"extraData"        gencodec:"required"`

	// BaseFee and WithdrawalsRoot are later Celo/L2 header extensions.
	// rlp:"optional" makes them trailing-omittable, so legacy headers
	// without them still decode and re-encode byte-identically, the same
	// way go-ethereum's core/types.Header handles its own post-London and
	// post-Shanghai fields.
	BaseFee         *big.Int     `json:"baseFeePerGas,omitempty"   rlp:"optional"`
	WithdrawalsRoot *common.Hash `json:"withdrawalsRoot,omitempty" rlp:"optional"`

	// hash caches the result of Hash(), as go-ethereum's own
	// core/types.Header does for its own Hash() accessor.
	hash atomic.Value
}

// Hash returns the Keccak-256 hash of the RLP encoding of the header
// (spec §4.2). The result is cached: headers are immutable once
// constructed.
func (h *Header) Hash() (common.Hash, error) {
	if cached := h.hash.Load(); cached != nil {
		return cached.(common.Hash), nil
	}

	encoded, err := rlp.EncodeToBytes(h)
	if err != nil {
		return common.Hash{}, err
	}

	hash := crypto.Keccak256Hash(encoded)
	h.hash.Store(hash)
	return hash, nil
}

// Number64 returns the block number as a uint64. The spec treats Number
// as an unbounded integer that practically always fits in 64 bits.
func (h *Header) Number64() uint64 {
	if h.Number == nil {
		return 0
	}
	return h.Number.Uint64()
}

// DecodeHeader RLP-decodes a full block header.
func DecodeHeader(data []byte) (*Header, error) {
	var h Header
	if err := rlp.DecodeBytes(data, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// EncodeHeader RLP-encodes a full block header.
func EncodeHeader(h *Header) ([]byte, error) {
	return rlp.EncodeToBytes(h)
}
