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

package cmd

import (
	"context"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cerc-io/eth-devnet-helpers/pkg/helpers"
	"github.com/cerc-io/eth-devnet-helpers/pkg/provider"
	"github.com/cerc-io/eth-devnet-helpers/pkg/quantity"
)

func addProviderFlags(command *cobra.Command) {
	// provider flags
	command.PersistentFlags().String("provider-url", provider.DefaultURL, "json-rpc endpoint of the development node (http, ws or ipc path)")
	command.PersistentFlags().Duration("provider-timeout", provider.DefaultTimeout, "timeout of a single json-rpc request")

	// provider flag bindings
	viper.BindPFlag("provider.url", command.PersistentFlags().Lookup("provider-url"))
	viper.BindPFlag("provider.timeout", command.PersistentFlags().Lookup("provider-timeout"))
}

// parseNumber reads a numeric flag given in decimal or 0x-prefixed hex.
func parseNumber(name, s string) (*big.Int, error) {
	if quantity.Has0xPrefix(s) {
		n, err := quantity.ToBigInt(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return n, nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", name, quantity.ErrInvalid, s)
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("%s: %w: %s", name, quantity.ErrNegative, n)
	}
	return n, nil
}

func dialProvider(ctx context.Context) (*provider.Client, error) {
	cfg := provider.NewConfig()
	logWithCommand.Debugf("provider config: %+v", cfg)
	return provider.Dial(ctx, cfg)
}

// withHelpers dials the configured node and runs fn against it. The
// connection is closed before the error is handed back to cobra.
func withHelpers(ctx context.Context, fn func(h *helpers.Helpers) error) error {
	client, err := dialProvider(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	h := helpers.New(client)
	defer h.Close()
	return fn(h)
}
