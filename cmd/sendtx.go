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

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cerc-io/eth-devnet-helpers/pkg/helpers"
	"github.com/cerc-io/eth-devnet-helpers/pkg/quantity"
)

// sendTxCmd represents the send-tx command
var sendTxCmd = &cobra.Command{
	Use:   "send-tx",
	Short: "send a transaction from an unlocked account",
	Long: `Sends a transaction with eth_sendTransaction and prints its hash.
Unset fields fall back to a 21000 gas, gas price 1 transfer from the second
development account to the third; nonce and value are omitted unless set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withHelpers(ctx, func(h *helpers.Helpers) error {
			return sendTx(ctx, h)
		})
	},
}

func sendTxOptions() (helpers.SendTxOptions, error) {
	var opts helpers.SendTxOptions
	for _, field := range []struct {
		key  string
		addr **common.Address
	}{
		{"sendTx.from", &opts.From},
		{"sendTx.to", &opts.To},
	} {
		if s := viper.GetString(field.key); s != "" {
			if !common.IsHexAddress(s) {
				return opts, fmt.Errorf("%s: invalid address %q", field.key, s)
			}
			addr := common.HexToAddress(s)
			*field.addr = &addr
		}
	}

	for _, field := range []struct {
		key, name string
		dst       *quantity.NumberLike
	}{
		{"sendTx.gas", "gas", &opts.Gas},
		{"sendTx.gasPrice", "gas-price", &opts.GasPrice},
		{"sendTx.nonce", "nonce", &opts.Nonce},
		{"sendTx.value", "value", &opts.Value},
	} {
		if s := viper.GetString(field.key); s != "" {
			n, err := parseNumber(field.name, s)
			if err != nil {
				return opts, err
			}
			*field.dst = n
		}
	}
	if s := viper.GetString("sendTx.data"); s != "" {
		data, err := hexutil.Decode(s)
		if err != nil {
			return opts, fmt.Errorf("data: %w", err)
		}
		opts.Data = data
	}
	return opts, nil
}

func sendTx(ctx context.Context, h *helpers.Helpers) error {
	opts, err := sendTxOptions()
	if err != nil {
		return err
	}
	hash, err := h.SendTx(ctx, opts)
	if err != nil {
		return err
	}
	fmt.Println(hash.Hex())
	return nil
}

func init() {
	rootCmd.AddCommand(sendTxCmd)

	sendTxCmd.PersistentFlags().String("from", "", "sender, defaults to the second development account")
	sendTxCmd.PersistentFlags().String("to", "", "recipient, defaults to the third development account")
	sendTxCmd.PersistentFlags().String("gas", "", "gas limit (default 21000)")
	sendTxCmd.PersistentFlags().String("gas-price", "", "gas price (default 1)")
	sendTxCmd.PersistentFlags().String("nonce", "", "nonce, omitted when empty")
	sendTxCmd.PersistentFlags().String("value", "", "value in wei, omitted when empty")
	sendTxCmd.PersistentFlags().String("data", "", "0x-prefixed call data")

	viper.BindPFlag("sendTx.from", sendTxCmd.PersistentFlags().Lookup("from"))
	viper.BindPFlag("sendTx.to", sendTxCmd.PersistentFlags().Lookup("to"))
	viper.BindPFlag("sendTx.gas", sendTxCmd.PersistentFlags().Lookup("gas"))
	viper.BindPFlag("sendTx.gasPrice", sendTxCmd.PersistentFlags().Lookup("gas-price"))
	viper.BindPFlag("sendTx.nonce", sendTxCmd.PersistentFlags().Lookup("nonce"))
	viper.BindPFlag("sendTx.value", sendTxCmd.PersistentFlags().Lookup("value"))
	viper.BindPFlag("sendTx.data", sendTxCmd.PersistentFlags().Lookup("data"))
}
