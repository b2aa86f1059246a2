// VulcanizeDB
// Copyright © 2020 Vulcanize

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

package graphql_test

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/holiman/uint256"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cerc-io/eth-devnet-helpers/pkg/devnode"
	"github.com/cerc-io/eth-devnet-helpers/pkg/graphql"
	"github.com/cerc-io/eth-devnet-helpers/pkg/shared"
)

var _ = Describe("GraphQL", func() {
	var (
		ctx      = context.Background()
		node     *devnode.Node
		service  *graphql.Service
		client   *graphql.Client
		sealed   common.Hash
		queued   common.Hash
		receiver = shared.DefaultAccounts[2]
	)

	BeforeEach(func() {
		node = devnode.New(&devnode.Config{
			InitialBaseFee: uint256.NewInt(1000),
			Clock:          func() time.Time { return time.Unix(1_700_000_000, 0) },
		})

		var err error
		sealed, err = node.SendTransaction(devnode.SendArgs{
			From:  shared.DefaultAccounts[1],
			To:    &receiver,
			Value: uint256.NewInt(7),
		})
		Expect(err).ToNot(HaveOccurred())
		node.Mine(nil)
		queued, err = node.SendTransaction(devnode.SendArgs{From: shared.DefaultAccounts[1]})
		Expect(err).ToNot(HaveOccurred())

		service, err = graphql.New(node, "127.0.0.1:0", nil, nil, rpc.DefaultHTTPTimeouts)
		Expect(err).ToNot(HaveOccurred())
		Expect(service.Start()).To(Succeed())
		DeferCleanup(service.Stop)

		client = graphql.NewClient(service.URL())
	})

	Describe("block", func() {
		It("returns the block at a number", func() {
			block, err := client.Block(ctx, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(block).ToNot(BeNil())
			Expect(block.Number).To(Equal(uint64(1)))
			Expect(block.Hash).To(Equal(node.BlockByNumber(1).Hash))
			Expect(block.ParentHash).To(Equal(node.BlockByNumber(0).Hash))
			Expect(block.BaseFeePerGas.ToInt().Int64()).To(Equal(int64(875)))
			Expect(block.GasUsed).To(Equal(uint64(21000)))

			Expect(block.Transactions).To(HaveLen(1))
			tx := block.Transactions[0]
			Expect(tx.Hash).To(Equal(sealed))
			Expect(tx.From).To(Equal(shared.DefaultAccounts[1]))
			Expect(*tx.To).To(Equal(receiver))
			Expect(tx.Value.ToInt().Int64()).To(Equal(int64(7)))
			Expect(*tx.BlockNumber).To(Equal(uint64(1)))
		})

		It("returns null past the head", func() {
			block, err := client.Block(ctx, 5)
			Expect(err).ToNot(HaveOccurred())
			Expect(block).To(BeNil())
		})
	})

	Describe("latestBlock", func() {
		It("returns the head", func() {
			block, err := client.LatestBlock(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(block.Number).To(Equal(uint64(1)))
			Expect(block.Timestamp).To(Equal(uint64(1_700_000_001)))
		})
	})

	Describe("pendingTransactions", func() {
		It("lists queued transactions without a block", func() {
			pending, err := client.PendingTransactions(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(pending).To(HaveLen(1))
			Expect(pending[0].Hash).To(Equal(queued))
			Expect(pending[0].Nonce).To(Equal(uint64(1)))
			Expect(pending[0].To).To(BeNil())
			Expect(pending[0].BlockNumber).To(BeNil())
		})
	})
})
