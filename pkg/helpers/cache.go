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
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/mailgun/groupcache/v2"

	"github.com/cerc-io/eth-devnet-helpers/pkg/log"
)

// blockCache memoizes base fees of sealed blocks, which never change.
type blockCache struct {
	name  string
	group *groupcache.Group
}

// WithBlockCache caches GetBaseFeePerGas results for numbered blocks in a
// groupcache group of at most cacheBytes. Latest-block lookups always go to
// the node. Call Close to drop the group.
func WithBlockCache(cacheBytes int64) Option {
	return func(h *Helpers) {
		name := "helpers-basefee-" + uuid.NewString()
		h.cache = &blockCache{
			name: name,
			group: groupcache.NewGroup(name, cacheBytes, groupcache.GetterFunc(
				func(ctx context.Context, tag string, dest groupcache.Sink) error {
					fee, err := h.fetchBaseFee(ctx, tag)
					if err != nil {
						return err
					}
					log.Debugx(ctx, "base fee cache miss")
					// Sealed blocks are immutable, no expiry.
					return dest.SetBytes(fee.Bytes(), time.Time{})
				},
			)),
		}
	}
}

func (c *blockCache) baseFee(ctx context.Context, tag string) (*big.Int, error) {
	var buf []byte
	if err := c.group.Get(ctx, tag, groupcache.AllocatingByteSliceSink(&buf)); err != nil {
		return nil, fmt.Errorf("base fee %s: %w", tag, err)
	}
	return new(big.Int).SetBytes(buf), nil
}

func (c *blockCache) close() {
	groupcache.DeregisterGroup(c.name)
}
