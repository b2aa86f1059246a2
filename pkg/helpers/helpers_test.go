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

package helpers_test

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cerc-io/eth-devnet-helpers/pkg/helpers"
	"github.com/cerc-io/eth-devnet-helpers/pkg/quantity"
	"github.com/cerc-io/eth-devnet-helpers/pkg/shared"
)

var (
	hashA = common.HexToHash("0xaa")
	hashB = common.HexToHash("0xbb")
	hashC = common.HexToHash("0xcc")
)

var _ = Describe("Helpers", func() {
	var (
		ctx = context.Background()
		p   *fakeProvider
		h   *helpers.Helpers
	)

	BeforeEach(func() {
		p = &fakeProvider{responses: map[string]string{}}
		h = helpers.New(p)
	})

	Describe("SendTx", func() {
		BeforeEach(func() {
			p.responses["eth_sendTransaction"] = `"0x00000000000000000000000000000000000000000000000000000000000000aa"`
		})

		It("fills in the default accounts, gas and gas price", func() {
			hash, err := h.SendTx(ctx, helpers.SendTxOptions{})
			Expect(err).ToNot(HaveOccurred())
			Expect(hash).To(Equal(hashA))

			Expect(p.calls).To(HaveLen(1))
			Expect(p.calls[0].method).To(Equal("eth_sendTransaction"))
			Expect(p.calls[0].params).To(MatchJSON(`[{
				"from": "0x70997970c51812dc3a010c7d01b50e0d17dc79c8",
				"to": "0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc",
				"gas": "0x5208",
				"gasPrice": "0x1"
			}]`))
		})

		It("encodes overrides and includes nonce, value and data only when set", func() {
			from, to := shared.DefaultAccounts[3], shared.DefaultAccounts[4]
			_, err := h.SendTx(ctx, helpers.SendTxOptions{
				From:     &from,
				To:       &to,
				Gas:      50000,
				GasPrice: "0x3b9aca00",
				Nonce:    0,
				Value:    uint64(1000),
				Data:     hexutil.Bytes{0xde, 0xad},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(p.calls[0].params).To(MatchJSON(`[{
				"from": "0x90f79bf6eb2c4f870365e785982e1f101e93b906",
				"to": "0x15d34aaf54267db7d7c367839aaf71a00a2c6a65",
				"gas": "0xc350",
				"gasPrice": "0x3b9aca00",
				"nonce": "0x0",
				"value": "0x3e8",
				"data": "0xdead"
			}]`))
		})

		It("rejects unencodable values before sending", func() {
			_, err := h.SendTx(ctx, helpers.SendTxOptions{Value: -1})
			Expect(errors.Is(err, quantity.ErrNegative)).To(BeTrue())
			Expect(p.calls).To(BeEmpty())
		})

		It("needs enough default accounts", func() {
			h = helpers.New(p, helpers.WithAccounts(shared.DefaultAccounts[:1]))
			_, err := h.SendTx(ctx, helpers.SendTxOptions{})
			Expect(err).To(MatchError(ContainSubstring("from")))
			Expect(p.calls).To(BeEmpty())
		})

		It("propagates provider errors", func() {
			p.err = errors.New("boom")
			_, err := h.SendTx(ctx, helpers.SendTxOptions{})
			Expect(err).To(MatchError("boom"))
		})
	})

	Describe("AssertLatestBlockTxs", func() {
		BeforeEach(func() {
			p.responses["eth_getBlockByNumber"] = `{"number": "0x1", "transactions": ["0x00000000000000000000000000000000000000000000000000000000000000aa", "0x00000000000000000000000000000000000000000000000000000000000000bb"]}`
		})

		It("requests the latest block without full transactions", func() {
			Expect(h.AssertLatestBlockTxs(ctx, []common.Hash{hashA, hashB})).To(Succeed())
			Expect(p.calls[0].method).To(Equal("eth_getBlockByNumber"))
			Expect(p.calls[0].params).To(MatchJSON(`["latest", false]`))
		})

		It("ignores order", func() {
			Expect(h.AssertLatestBlockTxs(ctx, []common.Hash{hashB, hashA})).To(Succeed())
		})

		It("reports missing and extra members", func() {
			err := h.AssertLatestBlockTxs(ctx, []common.Hash{hashA, hashC})
			var mismatch *helpers.MismatchError
			Expect(errors.As(err, &mismatch)).To(BeTrue())
			Expect(mismatch.Expected).To(Equal([]common.Hash{hashA, hashC}))
			Expect(mismatch.Actual).To(Equal([]common.Hash{hashA, hashB}))
			Expect(mismatch.Diff).ToNot(BeEmpty())
		})

		It("treats duplicates as distinct members", func() {
			Expect(h.AssertLatestBlockTxs(ctx, []common.Hash{hashA, hashA, hashB})).ToNot(Succeed())
		})

		It("fails when there is no latest block", func() {
			p.responses["eth_getBlockByNumber"] = "null"
			err := h.AssertLatestBlockTxs(ctx, nil)
			Expect(errors.Is(err, helpers.ErrBlockNotFound)).To(BeTrue())
		})
	})

	Describe("AssertPendingTxs", func() {
		BeforeEach(func() {
			p.responses["eth_pendingTransactions"] = `[
				{"hash": "0x00000000000000000000000000000000000000000000000000000000000000cc", "nonce": "0x1"},
				{"hash": "0x00000000000000000000000000000000000000000000000000000000000000aa", "nonce": "0x0"}
			]`
		})

		It("compares the hashes of the pending transactions", func() {
			Expect(h.AssertPendingTxs(ctx, []common.Hash{hashA, hashC})).To(Succeed())
			Expect(p.calls[0].method).To(Equal("eth_pendingTransactions"))
			Expect(p.calls[0].params).To(MatchJSON(`[]`))
		})

		It("fails on a different set", func() {
			err := h.AssertPendingTxs(ctx, []common.Hash{hashA})
			Expect(err).To(BeAssignableToTypeOf(&helpers.MismatchError{}))
		})

		It("accepts an empty pool", func() {
			p.responses["eth_pendingTransactions"] = "[]"
			Expect(h.AssertPendingTxs(ctx, nil)).To(Succeed())
		})
	})

	Describe("Mine", func() {
		It("calls evm_mine without params", func() {
			p.responses["evm_mine"] = `"0x0"`
			Expect(h.Mine(ctx)).To(Succeed())
			Expect(p.calls).To(Equal([]call{{method: "evm_mine", params: "[]"}}))
		})
	})

	Describe("base fee", func() {
		BeforeEach(func() {
			p.responses["eth_getBlockByNumber"] = `{"number": "0xa", "baseFeePerGas": "0x3b9aca00"}`
		})

		It("reads the base fee of a numbered block", func() {
			fee, err := h.GetBaseFeePerGas(ctx, 10)
			Expect(err).ToNot(HaveOccurred())
			Expect(fee.Int64()).To(Equal(int64(1_000_000_000)))
			Expect(p.calls[0].params).To(MatchJSON(`["0xa", false]`))
		})

		It("reads the base fee of the latest block", func() {
			fee, err := h.GetLatestBaseFeePerGas(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(fee.Int64()).To(Equal(int64(1_000_000_000)))
			Expect(p.calls[0].params).To(MatchJSON(`["latest", false]`))
		})

		It("fails for pre-London blocks", func() {
			p.responses["eth_getBlockByNumber"] = `{"number": "0xa"}`
			_, err := h.GetBaseFeePerGas(ctx, 10)
			Expect(errors.Is(err, helpers.ErrNoBaseFee)).To(BeTrue())
		})

		It("fails for unknown blocks", func() {
			p.responses["eth_getBlockByNumber"] = "null"
			_, err := h.GetLatestBaseFeePerGas(ctx)
			Expect(errors.Is(err, helpers.ErrBlockNotFound)).To(BeTrue())
		})

		Context("with a block cache", func() {
			BeforeEach(func() {
				h = helpers.New(p, helpers.WithBlockCache(1<<20))
				DeferCleanup(h.Close)
			})

			It("asks the node once per numbered block", func() {
				for i := 0; i < 3; i++ {
					fee, err := h.GetBaseFeePerGas(ctx, 10)
					Expect(err).ToNot(HaveOccurred())
					Expect(fee.Int64()).To(Equal(int64(1_000_000_000)))
				}
				Expect(p.calls).To(HaveLen(1))
			})

			It("always asks the node for the latest block", func() {
				for i := 0; i < 2; i++ {
					_, err := h.GetLatestBaseFeePerGas(ctx)
					Expect(err).ToNot(HaveOccurred())
				}
				Expect(p.calls).To(HaveLen(2))
			})

			It("does not cache failures", func() {
				p.responses["eth_getBlockByNumber"] = "null"
				_, err := h.GetBaseFeePerGas(ctx, 10)
				Expect(err).To(HaveOccurred())

				p.responses["eth_getBlockByNumber"] = `{"baseFeePerGas": "0x7"}`
				fee, err := h.GetBaseFeePerGas(ctx, 10)
				Expect(err).ToNot(HaveOccurred())
				Expect(fee.Int64()).To(Equal(int64(7)))
			})
		})
	})
})
