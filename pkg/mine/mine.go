// Package mine drives on-demand block production on development nodes.
package mine

import (
	"context"
	"fmt"

	"github.com/cerc-io/eth-devnet-helpers/pkg/log"
	"github.com/cerc-io/eth-devnet-helpers/pkg/provider"
	"github.com/cerc-io/eth-devnet-helpers/pkg/quantity"
)

// Method is the node method issued by Mine.
const Method = "hardhat_mine"

const (
	defaultBlocks   = 1
	defaultInterval = 1
)

type config struct {
	interval quantity.NumberLike
}

// Option configures Mine.
type Option func(*config)

// WithInterval sets the number of seconds between the timestamps of
// consecutive mined blocks. Defaults to 1.
func WithInterval(interval quantity.NumberLike) Option {
	return func(c *config) {
		c.interval = interval
	}
}

// Mine mines the given number of blocks (1 when blocks is nil) in a single
// hardhat_mine request.
func Mine(ctx context.Context, p provider.Provider, blocks quantity.NumberLike, opts ...Option) error {
	cfg := config{interval: defaultInterval}
	for _, opt := range opts {
		opt(&cfg)
	}
	if blocks == nil {
		blocks = defaultBlocks
	}
	if cfg.interval == nil {
		cfg.interval = defaultInterval
	}

	blocksHex, err := quantity.ToRPCQuantity(blocks)
	if err != nil {
		return fmt.Errorf("blocks: %w", err)
	}
	intervalHex, err := quantity.ToRPCQuantity(cfg.interval)
	if err != nil {
		return fmt.Errorf("interval: %w", err)
	}

	log.WithField("blocks", blocksHex).WithField("interval", intervalHex).Debug("mining")
	return p.Request(ctx, nil, Method, blocksHex, intervalHex)
}
