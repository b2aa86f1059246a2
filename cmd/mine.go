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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cerc-io/eth-devnet-helpers/pkg/mine"
)

// mineCmd represents the mine command
var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "mine blocks with hardhat_mine",
	Long: `Mines --blocks blocks spaced --interval seconds apart with a single
hardhat_mine call. Both values accept decimal or 0x-prefixed hex.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mineBlocks(cmd.Context())
	},
}

func mineBlocks(ctx context.Context) error {
	blocks, err := parseNumber("blocks", viper.GetString("mine.blocks"))
	if err != nil {
		return err
	}
	interval, err := parseNumber("interval", viper.GetString("mine.interval"))
	if err != nil {
		return err
	}

	client, err := dialProvider(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := mine.Mine(ctx, client, blocks, mine.WithInterval(interval)); err != nil {
		return err
	}
	logWithCommand.WithField("blocks", blocks).WithField("interval", interval).Info("mined")
	return nil
}

func init() {
	rootCmd.AddCommand(mineCmd)

	mineCmd.PersistentFlags().String("blocks", "1", "number of blocks to mine")
	mineCmd.PersistentFlags().String("interval", "1", "seconds between consecutive block timestamps")

	viper.BindPFlag("mine.blocks", mineCmd.PersistentFlags().Lookup("blocks"))
	viper.BindPFlag("mine.interval", mineCmd.PersistentFlags().Lookup("interval"))
}
