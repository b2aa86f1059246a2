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

// Package provider is the JSON-RPC client abstraction the helpers delegate to.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/cerc-io/eth-devnet-helpers/pkg/log"
	"github.com/cerc-io/eth-devnet-helpers/pkg/prom"
)

// Provider sends a single JSON-RPC request and decodes the result into
// result, which may be nil when the response is not needed.
type Provider interface {
	Request(ctx context.Context, result interface{}, method string, params ...interface{}) error
}

// Func adapts a plain function to Provider.
type Func func(ctx context.Context, result interface{}, method string, params ...interface{}) error

func (f Func) Request(ctx context.Context, result interface{}, method string, params ...interface{}) error {
	return f(ctx, result, method, params...)
}

// MethodError is returned by Client when a request fails.
type MethodError struct {
	Method string
	Err    error
}

func (e *MethodError) Error() string {
	return fmt.Sprintf("%s: %v", e.Method, e.Err)
}

func (e *MethodError) Unwrap() error {
	return e.Err
}

// Client is a Provider backed by a go-ethereum rpc.Client.
type Client struct {
	rpc     *rpc.Client
	timeout time.Duration
}

var _ Provider = (*Client)(nil)

// NewClient wraps an existing rpc client. A zero timeout disables the
// per-request deadline.
func NewClient(client *rpc.Client, timeout time.Duration) *Client {
	return &Client{
		rpc:     client,
		timeout: timeout,
	}
}

// Dial connects to the endpoint in cfg. http(s)://, ws(s):// and IPC paths
// are all accepted.
func Dial(ctx context.Context, cfg *Config) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.URL, err)
	}
	return NewClient(rpcClient, cfg.Timeout), nil
}

// Request forwards method and params to the node.
func (c *Client) Request(ctx context.Context, result interface{}, method string, params ...interface{}) error {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ctx = log.WithValue(ctx, log.CtxKeyRPCMethod, method)
	start := time.Now()
	err := c.rpc.CallContext(ctx, result, method, params...)
	duration := time.Since(start)
	prom.ObserveProviderCall(method, duration, err)

	ctx = log.WithValue(ctx, log.CtxKeyDuration, duration.Milliseconds())
	if err != nil {
		log.Debugx(log.WithValue(ctx, log.CtxKeyError, err.Error()), "request failed")
		return &MethodError{Method: method, Err: err}
	}
	log.Tracex(ctx, "request done")
	return nil
}

// RPC exposes the underlying client for callers that need subscriptions or
// batching.
func (c *Client) RPC() *rpc.Client {
	return c.rpc
}

// Close tears down the connection.
func (c *Client) Close() {
	c.rpc.Close()
}
