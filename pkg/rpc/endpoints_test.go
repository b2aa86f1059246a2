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

package rpc_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cerc-io/eth-devnet-helpers/pkg/devnode"
	"github.com/cerc-io/eth-devnet-helpers/pkg/rpc"
)

func blockNumber(ctx context.Context, url string) uint64 {
	client, err := gethrpc.DialContext(ctx, url)
	Expect(err).ToNot(HaveOccurred())
	defer client.Close()

	var n hexutil.Uint64
	Expect(client.CallContext(ctx, &n, "eth_blockNumber")).To(Succeed())
	return uint64(n)
}

var _ = Describe("endpoints", func() {
	var node *devnode.Node

	BeforeEach(func() {
		node = devnode.New(nil)
		_, err := node.MineBlocks(2, 1)
		Expect(err).ToNot(HaveOccurred())
	})

	Describe("HTTP", func() {
		It("serves json-rpc and extra routes", func(ctx SpecContext) {
			extra := rpc.Route{
				Path: "/ping",
				Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					fmt.Fprint(w, "pong")
				}),
			}
			listener, _, err := rpc.StartHTTPEndpoint("127.0.0.1:0", node.APIs(), nil, nil, []string{"*"}, gethrpc.DefaultHTTPTimeouts, extra)
			Expect(err).ToNot(HaveOccurred())
			DeferCleanup(listener.Close)

			url := "http://" + listener.Addr().String()
			Expect(blockNumber(ctx, url)).To(Equal(uint64(2)))

			resp, err := http.Get(url + "/ping")
			Expect(err).ToNot(HaveOccurred())
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(body)).To(Equal("pong"))
		})

		It("only registers whitelisted modules", func(ctx SpecContext) {
			listener, _, err := rpc.StartHTTPEndpoint("127.0.0.1:0", node.APIs(), []string{"net"}, nil, []string{"*"}, gethrpc.DefaultHTTPTimeouts)
			Expect(err).ToNot(HaveOccurred())
			DeferCleanup(listener.Close)

			client, err := gethrpc.DialContext(ctx, "http://"+listener.Addr().String())
			Expect(err).ToNot(HaveOccurred())
			defer client.Close()

			var version string
			Expect(client.CallContext(ctx, &version, "net_version")).To(Succeed())
			var n hexutil.Uint64
			Expect(client.CallContext(ctx, &n, "eth_blockNumber")).ToNot(Succeed())
		})
	})

	Describe("WS", func() {
		It("serves json-rpc over websockets", func(ctx SpecContext) {
			listener, _, err := rpc.StartWSEndpoint("127.0.0.1:0", node.APIs(), nil, []string{"*"})
			Expect(err).ToNot(HaveOccurred())
			DeferCleanup(listener.Close)

			Expect(blockNumber(ctx, "ws://"+listener.Addr().String())).To(Equal(uint64(2)))
		})
	})

	Describe("IPC", func() {
		It("serves json-rpc over a unix socket", func(ctx SpecContext) {
			path := filepath.Join(GinkgoT().TempDir(), "devnode.ipc")
			listener, _, err := rpc.StartIPCEndpoint(path, node.APIs())
			Expect(err).ToNot(HaveOccurred())
			DeferCleanup(listener.Close)

			Expect(blockNumber(ctx, path)).To(Equal(uint64(2)))
		})
	})
})
