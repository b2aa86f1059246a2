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
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/holiman/uint256"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cerc-io/eth-devnet-helpers/pkg/devnode"
	"github.com/cerc-io/eth-devnet-helpers/pkg/helpers"
	"github.com/cerc-io/eth-devnet-helpers/pkg/mine"
	"github.com/cerc-io/eth-devnet-helpers/pkg/provider"
)

func newNode() *devnode.Node {
	return devnode.New(&devnode.Config{
		InitialBaseFee: uint256.NewInt(1000),
		Clock:          func() time.Time { return time.Unix(1_700_000_000, 0) },
	})
}

func dialNode(node *devnode.Node) func(context.Context) (provider.Provider, error) {
	return func(context.Context) (provider.Provider, error) {
		srv, err := node.Server()
		if err != nil {
			return nil, err
		}
		return provider.NewClient(rpc.DialInProc(srv), time.Second), nil
	}
}

var _ = Describe("Env", func() {
	It("refuses to install helpers without a provider", func() {
		env := new(helpers.Env)
		Expect(env.Install()).To(MatchError("UseHelpers has to be called after UseProvider"))
		Expect(env.Helpers).To(BeNil())
	})

	It("installs and removes helpers", func() {
		env := &helpers.Env{Provider: &fakeProvider{}}
		Expect(env.Install()).To(Succeed())
		Expect(env.Helpers).ToNot(BeNil())
		env.Uninstall()
		Expect(env.Helpers).To(BeNil())
	})
})

var _ = Describe("UseHelpers against the stub node", func() {
	var (
		node *devnode.Node
		env  = new(helpers.Env)
	)

	BeforeEach(func() {
		node = newNode()
	})

	helpers.UseProvider(env, func(ctx context.Context) (provider.Provider, error) {
		return dialNode(node)(ctx)
	})
	helpers.UseHelpers(env)

	It("exposes the helpers during a spec", func(ctx SpecContext) {
		Expect(env.Helpers).ToNot(BeNil())

		first, err := env.SendTx(ctx, helpers.SendTxOptions{})
		Expect(err).ToNot(HaveOccurred())
		second, err := env.SendTx(ctx, helpers.SendTxOptions{Value: 5})
		Expect(err).ToNot(HaveOccurred())

		Expect(env.AssertPendingTxs(ctx, []common.Hash{second, first})).To(Succeed())
		Expect(env.AssertLatestBlockTxs(ctx, nil)).To(Succeed())

		Expect(env.Mine(ctx)).To(Succeed())
		Expect(env.AssertLatestBlockTxs(ctx, []common.Hash{first, second})).To(Succeed())
		Expect(env.AssertPendingTxs(ctx, nil)).To(Succeed())
	})

	It("reads base fees", func(ctx SpecContext) {
		Expect(env.Mine(ctx)).To(Succeed())

		fee, err := env.GetBaseFeePerGas(ctx, 1)
		Expect(err).ToNot(HaveOccurred())
		Expect(fee.Uint64()).To(Equal(uint64(875)))

		latest, err := env.GetLatestBaseFeePerGas(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(latest.Cmp(fee)).To(BeZero())

		_, err = env.GetBaseFeePerGas(ctx, 99)
		Expect(err).To(MatchError(helpers.ErrBlockNotFound))
	})

	It("works alongside hardhat_mine", func(ctx SpecContext) {
		Expect(mine.Mine(ctx, env.Provider, 4, mine.WithInterval(12))).To(Succeed())
		Expect(node.LatestBlock().Number).To(Equal(uint64(4)))
		Expect(node.BlockByNumber(4).Timestamp - node.BlockByNumber(1).Timestamp).To(Equal(uint64(36)))
	})
})

var _ = Describe("UseHelpers without UseProvider", func() {
	It("fails the spec from its BeforeEach", func() {
		env := &helpers.Env{}
		failure := InterceptGomegaFailure(func() {
			helpers.InstallOrFail(env)
		})
		Expect(failure).To(MatchError(ContainSubstring("UseHelpers has to be called after UseProvider")))
		Expect(env.Helpers).To(BeNil())
	})

	It("installs from its BeforeEach once a provider is attached", func() {
		env := &helpers.Env{Provider: provider.Func(func(context.Context, interface{}, string, ...interface{}) error {
			return nil
		})}
		Expect(InterceptGomegaFailure(func() {
			helpers.InstallOrFail(env)
		})).To(Succeed())
		Expect(env.Helpers).ToNot(BeNil())
		env.Uninstall()
	})

	It("has no provider to bind to", func() {
		env := new(helpers.Env)
		Expect(errors.Is(env.Install(), helpers.ErrNoProvider)).To(BeTrue())
	})
})
