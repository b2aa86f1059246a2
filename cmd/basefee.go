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
)

// baseFeeCmd represents the base-fee command
var baseFeeCmd = &cobra.Command{
	Use:   "base-fee",
	Short: "print the base fee per gas of the latest or a given block",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withHelpers(ctx, func(h *helpers.Helpers) error {
			return baseFee(ctx, h, cmd.Flags().Changed("block"))
		})
	},
}

func baseFee(ctx context.Context, h *helpers.Helpers, numbered bool) error {
	var (
		fee *big.Int
		err error
	)
	if numbered {
		fee, err = h.GetBaseFeePerGas(ctx, viper.GetUint64("baseFee.block"))
	} else {
		fee, err = h.GetLatestBaseFeePerGas(ctx)
	}
	if err != nil {
		return err
	}
	fmt.Println(fee)
	return nil
}

func init() {
	rootCmd.AddCommand(baseFeeCmd)

	baseFeeCmd.Flags().Uint64("block", 0, "block number, latest when unset")
	viper.BindPFlag("baseFee.block", baseFeeCmd.Flags().Lookup("block"))
}
