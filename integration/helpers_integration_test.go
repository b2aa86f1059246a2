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

package integration_test

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cerc-io/eth-devnet-helpers/pkg/helpers"
	"github.com/cerc-io/eth-devnet-helpers/pkg/mine"
	"github.com/cerc-io/eth-devnet-helpers/pkg/provider"
)

var _ = Describe("helpers against a Hardhat node", func() {
	env := new(helpers.Env)

	helpers.UseProvider(env, func(ctx context.Context) (provider.Provider, error) {
		return provider.Dial(ctx, providerConfig)
	})
	helpers.UseHelpers(env)

	BeforeEach(func(ctx SpecContext) {
		// Keep transactions pending until a spec mines them.
		Expect(env.Provider.Request(ctx, nil, "evm_setAutomine", false)).To(Succeed())
		DeferCleanup(func(ctx SpecContext) {
			Expect(env.Provider.Request(ctx, nil, "evm_setAutomine", true)).To(Succeed())
		})
		Expect(env.Mine(ctx)).To(Succeed())
	})

	It("moves sent transactions from the pool into the next block", func(ctx SpecContext) {
		first, err := env.SendTx(ctx, helpers.SendTxOptions{})
		Expect(err).ToNot(HaveOccurred())
		second, err := env.SendTx(ctx, helpers.SendTxOptions{Value: 1})
		Expect(err).ToNot(HaveOccurred())

		Expect(env.AssertPendingTxs(ctx, []common.Hash{first, second})).To(Succeed())
		Expect(env.Mine(ctx)).To(Succeed())
		Expect(env.AssertLatestBlockTxs(ctx, []common.Hash{second, first})).To(Succeed())
		Expect(env.AssertPendingTxs(ctx, nil)).To(Succeed())
	})

	It("reads the same base fee as ethclient", func(ctx SpecContext) {
		client := ethclient.NewClient(env.Provider.(*provider.Client).RPC())
		header, err := client.HeaderByNumber(ctx, nil)
		Expect(err).ToNot(HaveOccurred())

		latest, err := env.GetLatestBaseFeePerGas(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(latest.Cmp(header.BaseFee)).To(BeZero())

		numbered, err := env.GetBaseFeePerGas(ctx, header.Number.Uint64())
		Expect(err).ToNot(HaveOccurred())
		Expect(numbered.Cmp(header.BaseFee)).To(BeZero())
	})

	It("mines several blocks with hardhat_mine", func(ctx SpecContext) {
		client := ethclient.NewClient(env.Provider.(*provider.Client).RPC())
		before, err := client.BlockNumber(ctx)
		Expect(err).ToNot(HaveOccurred())

		Expect(mine.Mine(ctx, env.Provider, 10, mine.WithInterval(60))).To(Succeed())

		after, err := client.HeaderByNumber(ctx, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(after.Number.Uint64()).To(Equal(before + 10))

		prev, err := client.HeaderByNumber(ctx, new(big.Int).SetUint64(before+9))
		Expect(err).ToNot(HaveOccurred())
		Expect(after.Time - prev.Time).To(Equal(uint64(60)))
	})
})
