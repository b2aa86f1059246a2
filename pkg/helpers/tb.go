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

package helpers

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/cerc-io/eth-devnet-helpers/pkg/provider"
)

// TB runs helpers inside a plain go test, failing the test on any error.
type TB struct {
	tb testing.TB
	h  *Helpers
}

// ForTB binds helpers to p for the lifetime of tb.
func ForTB(tb testing.TB, p provider.Provider, opts ...Option) *TB {
	tb.Helper()
	h := New(p, opts...)
	tb.Cleanup(h.Close)
	return &TB{tb: tb, h: h}
}

func (t *TB) ctx() context.Context {
	return context.Background()
}

// Helpers returns the underlying helpers.
func (t *TB) Helpers() *Helpers {
	return t.h
}

func (t *TB) SendTx(opts SendTxOptions) common.Hash {
	t.tb.Helper()
	hash, err := t.h.SendTx(t.ctx(), opts)
	require.NoError(t.tb, err, "eth_sendTransaction")
	return hash
}

func (t *TB) AssertLatestBlockTxs(txs ...common.Hash) {
	t.tb.Helper()
	require.NoError(t.tb, t.h.AssertLatestBlockTxs(t.ctx(), txs))
}

func (t *TB) AssertPendingTxs(txs ...common.Hash) {
	t.tb.Helper()
	require.NoError(t.tb, t.h.AssertPendingTxs(t.ctx(), txs))
}

func (t *TB) Mine() {
	t.tb.Helper()
	require.NoError(t.tb, t.h.Mine(t.ctx()), "evm_mine")
}

func (t *TB) GetBaseFeePerGas(blockNumber uint64) *big.Int {
	t.tb.Helper()
	fee, err := t.h.GetBaseFeePerGas(t.ctx(), blockNumber)
	require.NoErrorf(t.tb, err, "base fee of block %d", blockNumber)
	return fee
}

func (t *TB) GetLatestBaseFeePerGas() *big.Int {
	t.tb.Helper()
	fee, err := t.h.GetLatestBaseFeePerGas(t.ctx())
	require.NoError(t.tb, err, "latest base fee")
	return fee
}
