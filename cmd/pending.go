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

	"github.com/spf13/cobra"

	"github.com/cerc-io/eth-devnet-helpers/pkg/helpers"
)

// pendingCmd represents the pending command
var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "print the hashes of pending transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withHelpers(ctx, func(h *helpers.Helpers) error {
			return printPending(ctx, h)
		})
	},
}

func printPending(ctx context.Context, h *helpers.Helpers) error {
	hashes, err := h.PendingTxHashes(ctx)
	if err != nil {
		return err
	}
	for _, hash := range hashes {
		fmt.Println(hash.Hex())
	}
	return nil
}

func init() {
	rootCmd.AddCommand(pendingCmd)
}
