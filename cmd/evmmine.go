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

	"github.com/cerc-io/eth-devnet-helpers/pkg/helpers"
)

// evmMineCmd represents the evm-mine command
var evmMineCmd = &cobra.Command{
	Use:   "evm-mine",
	Short: "seal one block with evm_mine",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withHelpers(ctx, func(h *helpers.Helpers) error {
			return evmMine(ctx, h)
		})
	},
}

func evmMine(ctx context.Context, h *helpers.Helpers) error {
	if err := h.Mine(ctx); err != nil {
		return err
	}
	logWithCommand.Info("mined one block")
	return nil
}

func init() {
	rootCmd.AddCommand(evmMineCmd)
}
