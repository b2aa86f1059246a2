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

package provider_test

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"

	"github.com/cerc-io/eth-devnet-helpers/pkg/provider"
)

type slowAPI struct{}

func (slowAPI) Sleep(ctx context.Context, d hexutil.Uint64) (bool, error) {
	select {
	case <-time.After(time.Duration(d) * time.Millisecond):
		return true, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (slowAPI) Echo(s string) string { return s }

func (slowAPI) Fail() error { return errors.New("always fails") }

var _ = Describe("Client", func() {
	var (
		ctx    = context.Background()
		client *provider.Client
	)

	BeforeEach(func() {
		srv := rpc.NewServer()
		Expect(srv.RegisterName("test", slowAPI{})).To(Succeed())
		client = provider.NewClient(rpc.DialInProc(srv), 50*time.Millisecond)
		DeferCleanup(client.Close)
	})

	It("decodes results", func() {
		var out string
		Expect(client.Request(ctx, &out, "test_echo", "hello")).To(Succeed())
		Expect(out).To(Equal("hello"))
	})

	It("accepts a nil result", func() {
		Expect(client.Request(ctx, nil, "test_echo", "ignored")).To(Succeed())
	})

	It("wraps errors with the method name", func() {
		err := client.Request(ctx, nil, "test_fail")
		var methodErr *provider.MethodError
		Expect(errors.As(err, &methodErr)).To(BeTrue())
		Expect(methodErr.Method).To(Equal("test_fail"))
		Expect(err.Error()).To(ContainSubstring("always fails"))
	})

	It("applies its timeout when the context has no deadline", func() {
		err := client.Request(ctx, nil, "test_sleep", hexutil.Uint64(1000))
		Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
	})

	It("keeps the caller's deadline", func() {
		longCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		var ok bool
		Expect(client.Request(longCtx, &ok, "test_sleep", hexutil.Uint64(100))).To(Succeed())
		Expect(ok).To(BeTrue())
	})
})

var _ = Describe("Func", func() {
	It("adapts a function", func() {
		var seen string
		p := provider.Func(func(_ context.Context, _ interface{}, method string, _ ...interface{}) error {
			seen = method
			return nil
		})
		Expect(p.Request(context.Background(), nil, "evm_mine")).To(Succeed())
		Expect(seen).To(Equal("evm_mine"))
	})
})

var _ = Describe("NewConfig", func() {
	AfterEach(func() {
		viper.Reset()
		os.Unsetenv(provider.PROVIDER_URL)
		os.Unsetenv(provider.PROVIDER_TIMEOUT)
	})

	It("falls back to the defaults", func() {
		cfg := provider.NewConfig()
		Expect(cfg.URL).To(Equal(provider.DefaultURL))
		Expect(cfg.Timeout).To(Equal(provider.DefaultTimeout))
	})

	It("reads the environment", func() {
		os.Setenv(provider.PROVIDER_URL, "ws://127.0.0.1:9545")
		os.Setenv(provider.PROVIDER_TIMEOUT, "30s")
		cfg := provider.NewConfig()
		Expect(cfg.URL).To(Equal("ws://127.0.0.1:9545"))
		Expect(cfg.Timeout).To(Equal(30 * time.Second))
	})
})

var _ = Describe("Dial", func() {
	It("rejects unsupported schemes", func() {
		_, err := provider.Dial(context.Background(), &provider.Config{URL: "ftp://example.com"})
		Expect(err).To(HaveOccurred())
	})
})
