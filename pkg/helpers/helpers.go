// VulcanizeDB
// Copyright © 2024 Vulcanize

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package helpers wraps the JSON-RPC calls tests against a development node
// make over and over: sending a transaction, mining, reading base fees and
// checking which transactions landed where.
package helpers

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/cerc-io/eth-devnet-helpers/pkg/log"
	"github.com/cerc-io/eth-devnet-helpers/pkg/provider"
	"github.com/cerc-io/eth-devnet-helpers/pkg/quantity"
	"github.com/cerc-io/eth-devnet-helpers/pkg/shared"
)

const (
	DefaultGas      = 21000
	DefaultGasPrice = 1

	latestBlock = "latest"
)

// Helpers issues node calls through a Provider.
type Helpers struct {
	provider provider.Provider
	accounts []common.Address
	cache    *blockCache
}

// Option configures Helpers.
type Option func(*Helpers)

// WithAccounts replaces the accounts used for the from/to defaults of SendTx.
func WithAccounts(accounts []common.Address) Option {
	return func(h *Helpers) {
		h.accounts = accounts
	}
}

// New binds helpers to p.
func New(p provider.Provider, opts ...Option) *Helpers {
	h := &Helpers{
		provider: p,
		accounts: shared.DefaultAccounts,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Close releases the block cache, if any.
func (h *Helpers) Close() {
	if h.cache != nil {
		h.cache.close()
	}
}

// SendTxOptions overrides the defaults of SendTx. Numeric fields take any
// quantity.NumberLike.
type SendTxOptions struct {
	From     *common.Address
	To       *common.Address
	Gas      quantity.NumberLike
	GasPrice quantity.NumberLike
	Data     hexutil.Bytes
	// Nonce and Value are only sent when set.
	Nonce quantity.NumberLike
	Value quantity.NumberLike
}

type txRequest struct {
	From     common.Address `json:"from"`
	To       common.Address `json:"to"`
	Gas      string         `json:"gas"`
	GasPrice string         `json:"gasPrice"`
	Data     *hexutil.Bytes `json:"data,omitempty"`
	Nonce    string         `json:"nonce,omitempty"`
	Value    string         `json:"value,omitempty"`
}

func (h *Helpers) account(i int) (common.Address, error) {
	if i >= len(h.accounts) {
		return common.Address{}, fmt.Errorf("no default account %d, %d configured", i, len(h.accounts))
	}
	return h.accounts[i], nil
}

func (h *Helpers) txRequest(opts SendTxOptions) (*txRequest, error) {
	req := new(txRequest)
	var err error

	if opts.From != nil {
		req.From = *opts.From
	} else if req.From, err = h.account(1); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if opts.To != nil {
		req.To = *opts.To
	} else if req.To, err = h.account(2); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}

	if opts.Gas == nil {
		opts.Gas = uint64(DefaultGas)
	}
	if req.Gas, err = quantity.ToRPCQuantity(opts.Gas); err != nil {
		return nil, fmt.Errorf("gas: %w", err)
	}
	if opts.GasPrice == nil {
		opts.GasPrice = uint64(DefaultGasPrice)
	}
	if req.GasPrice, err = quantity.ToRPCQuantity(opts.GasPrice); err != nil {
		return nil, fmt.Errorf("gasPrice: %w", err)
	}
	if opts.Data != nil {
		req.Data = &opts.Data
	}
	if opts.Nonce != nil {
		if req.Nonce, err = quantity.ToRPCQuantity(opts.Nonce); err != nil {
			return nil, fmt.Errorf("nonce: %w", err)
		}
	}
	if opts.Value != nil {
		if req.Value, err = quantity.ToRPCQuantity(opts.Value); err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}
	}
	return req, nil
}

// SendTx sends a transaction with eth_sendTransaction and returns its hash.
// Unset fields default to a 21000 gas, gas price 1 transfer from the second
// default account to the third.
func (h *Helpers) SendTx(ctx context.Context, opts SendTxOptions) (common.Hash, error) {
	req, err := h.txRequest(opts)
	if err != nil {
		return common.Hash{}, err
	}

	var hash common.Hash
	if err := h.provider.Request(ctx, &hash, "eth_sendTransaction", req); err != nil {
		return common.Hash{}, err
	}
	log.Debugx(log.WithValue(ctx, log.CtxKeyTxHash, hash.Hex()), "transaction sent")
	return hash, nil
}

type blockTxs struct {
	Transactions []common.Hash `json:"transactions"`
}

// AssertLatestBlockTxs checks that the latest block holds exactly txs, in
// any order.
func (h *Helpers) AssertLatestBlockTxs(ctx context.Context, txs []common.Hash) error {
	var block *blockTxs
	if err := h.provider.Request(ctx, &block, "eth_getBlockByNumber", latestBlock, false); err != nil {
		return err
	}
	if block == nil {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, latestBlock)
	}
	return sameMembers("latest block transactions", txs, block.Transactions)
}

type pendingTx struct {
	Hash common.Hash `json:"hash"`
}

// PendingTxHashes returns the hashes of the node's pending transactions.
func (h *Helpers) PendingTxHashes(ctx context.Context) ([]common.Hash, error) {
	var pending []pendingTx
	if err := h.provider.Request(ctx, &pending, "eth_pendingTransactions"); err != nil {
		return nil, err
	}
	hashes := make([]common.Hash, len(pending))
	for i, tx := range pending {
		hashes[i] = tx.Hash
	}
	return hashes, nil
}

// AssertPendingTxs checks that the pending transactions are exactly txs, in
// any order.
func (h *Helpers) AssertPendingTxs(ctx context.Context, txs []common.Hash) error {
	hashes, err := h.PendingTxHashes(ctx)
	if err != nil {
		return err
	}
	return sameMembers("pending transactions", txs, hashes)
}

// Mine seals a single block with evm_mine.
func (h *Helpers) Mine(ctx context.Context) error {
	return h.provider.Request(ctx, nil, "evm_mine")
}

// GetBaseFeePerGas returns the base fee of block blockNumber.
func (h *Helpers) GetBaseFeePerGas(ctx context.Context, blockNumber uint64) (*big.Int, error) {
	tag := quantity.NumberToRPCQuantity(blockNumber)
	ctx = log.WithValue(ctx, log.CtxKeyBlockNumber, blockNumber)
	if h.cache != nil {
		return h.cache.baseFee(ctx, tag)
	}
	return h.fetchBaseFee(ctx, tag)
}

// GetLatestBaseFeePerGas returns the base fee of the latest block.
func (h *Helpers) GetLatestBaseFeePerGas(ctx context.Context) (*big.Int, error) {
	return h.fetchBaseFee(ctx, latestBlock)
}

type blockBaseFee struct {
	BaseFeePerGas *hexutil.Big `json:"baseFeePerGas"`
}

func (h *Helpers) fetchBaseFee(ctx context.Context, tag string) (*big.Int, error) {
	var block *blockBaseFee
	if err := h.provider.Request(ctx, &block, "eth_getBlockByNumber", tag, false); err != nil {
		return nil, err
	}
	if block == nil {
		return nil, fmt.Errorf("%w: %s", ErrBlockNotFound, tag)
	}
	if block.BaseFeePerGas == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoBaseFee, tag)
	}
	return block.BaseFeePerGas.ToInt(), nil
}
