package devnode

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/holiman/uint256"

	"github.com/cerc-io/eth-devnet-helpers/pkg/net"
)

var errQuantityOverflow = errors.New("quantity overflows")

// TransactionArgs are the arguments of eth_sendTransaction.
type TransactionArgs struct {
	From     *common.Address `json:"from"`
	To       *common.Address `json:"to"`
	Gas      *hexutil.Uint64 `json:"gas"`
	GasPrice *hexutil.Big    `json:"gasPrice"`
	Value    *hexutil.Big    `json:"value"`
	Nonce    *hexutil.Uint64 `json:"nonce"`
	Data     *hexutil.Bytes  `json:"data"`
	Input    *hexutil.Bytes  `json:"input"`
}

func (args *TransactionArgs) toSendArgs() (SendArgs, error) {
	var out SendArgs
	if args.From != nil {
		out.From = *args.From
	}
	out.To = args.To
	if args.Gas != nil {
		gas := uint64(*args.Gas)
		out.Gas = &gas
	}
	if args.Nonce != nil {
		nonce := uint64(*args.Nonce)
		out.Nonce = &nonce
	}
	var err error
	if out.GasPrice, err = toUint256(args.GasPrice); err != nil {
		return out, fmt.Errorf("gasPrice: %w", err)
	}
	if out.Value, err = toUint256(args.Value); err != nil {
		return out, fmt.Errorf("value: %w", err)
	}
	switch {
	case args.Input != nil:
		out.Input = *args.Input
	case args.Data != nil:
		out.Input = *args.Data
	}
	return out, nil
}

func toUint256(b *hexutil.Big) (*uint256.Int, error) {
	if b == nil {
		return nil, nil
	}
	v, overflow := uint256.FromBig(b.ToInt())
	if overflow {
		return nil, errQuantityOverflow
	}
	return v, nil
}

// EthAPI serves the eth namespace.
type EthAPI struct {
	n *Node
}

// SendTransaction accepts a transaction from an unlocked account.
func (api *EthAPI) SendTransaction(args TransactionArgs) (common.Hash, error) {
	api.n.record("eth_sendTransaction", args)
	sendArgs, err := args.toSendArgs()
	if err != nil {
		return common.Hash{}, err
	}
	return api.n.SendTransaction(sendArgs)
}

// PendingTransactions returns the transactions not yet sealed.
func (api *EthAPI) PendingTransactions() []*RPCTransaction {
	api.n.record("eth_pendingTransactions")
	pending := api.n.PendingTransactions()
	out := make([]*RPCTransaction, len(pending))
	for i, tx := range pending {
		out[i] = tx.rpc(api.n.ChainID())
	}
	return out
}

// GetBlockByNumber returns the block at number; a missing block yields null.
func (api *EthAPI) GetBlockByNumber(number rpc.BlockNumber, fullTx bool) (map[string]interface{}, error) {
	api.n.record("eth_getBlockByNumber", number, fullTx)
	switch number {
	case rpc.PendingBlockNumber:
		return api.n.PendingBlock().marshal(fullTx, true, api.n.ChainID()), nil
	case rpc.LatestBlockNumber, rpc.SafeBlockNumber, rpc.FinalizedBlockNumber:
		return api.n.LatestBlock().marshal(fullTx, false, api.n.ChainID()), nil
	}
	if number < 0 {
		return nil, fmt.Errorf("unsupported block tag %d", number)
	}
	b := api.n.BlockByNumber(uint64(number))
	if b == nil {
		return nil, nil
	}
	return b.marshal(fullTx, false, api.n.ChainID()), nil
}

// BlockNumber returns the height of the chain head.
func (api *EthAPI) BlockNumber() hexutil.Uint64 {
	api.n.record("eth_blockNumber")
	return hexutil.Uint64(api.n.LatestBlock().Number)
}

// ChainId returns the configured chain id.
func (api *EthAPI) ChainId() *hexutil.Big {
	api.n.record("eth_chainId")
	return (*hexutil.Big)(new(big.Int).SetUint64(api.n.ChainID()))
}

// Accounts lists the unlocked accounts.
func (api *EthAPI) Accounts() []common.Address {
	api.n.record("eth_accounts")
	return append([]common.Address(nil), api.n.cfg.Accounts...)
}

// EvmAPI serves the evm namespace.
type EvmAPI struct {
	n *Node
}

// Mine seals a single block, optionally at the given timestamp.
func (api *EvmAPI) Mine(timestamp *hexutil.Uint64) string {
	api.n.record("evm_mine", timestamp)
	var ts *uint64
	if timestamp != nil {
		t := uint64(*timestamp)
		ts = &t
	}
	api.n.Mine(ts)
	return "0x0"
}

// SetAutomine toggles sealing on every accepted transaction.
func (api *EvmAPI) SetAutomine(on bool) bool {
	api.n.record("evm_setAutomine", on)
	api.n.SetAutomine(on)
	return true
}

// HardhatAPI serves the hardhat namespace.
type HardhatAPI struct {
	n *Node
}

// Mine seals blocks (default 1) spaced interval seconds apart (default 1).
func (api *HardhatAPI) Mine(blocks *hexutil.Big, interval *hexutil.Big) (bool, error) {
	api.n.record("hardhat_mine", blocks, interval)
	count, err := toUint64(blocks, 1)
	if err != nil {
		return false, fmt.Errorf("blocks: %w", err)
	}
	step, err := toUint64(interval, 1)
	if err != nil {
		return false, fmt.Errorf("interval: %w", err)
	}
	if _, err := api.n.MineBlocks(count, step); err != nil {
		return false, err
	}
	return true, nil
}

func toUint64(b *hexutil.Big, def uint64) (uint64, error) {
	if b == nil {
		return def, nil
	}
	if !b.ToInt().IsUint64() {
		return 0, errQuantityOverflow
	}
	return b.ToInt().Uint64(), nil
}

// NetAPI serves the net namespace, recording each call before handing it to
// the shared net API.
type NetAPI struct {
	n   *Node
	net *net.PublicNetAPI
}

// Listening reports whether the node accepts peers.
func (api *NetAPI) Listening() bool {
	api.n.record("net_listening")
	return api.net.Listening()
}

// PeerCount returns the number of connected peers.
func (api *NetAPI) PeerCount(ctx context.Context) hexutil.Uint {
	api.n.record("net_peerCount")
	return api.net.PeerCount(ctx)
}

// Version returns the network id.
func (api *NetAPI) Version(ctx context.Context) string {
	api.n.record("net_version")
	return api.net.Version(ctx)
}

// Web3API serves the web3 namespace.
type Web3API struct {
	n *Node
}

// ClientVersion identifies the stub.
func (api *Web3API) ClientVersion() string {
	api.n.record("web3_clientVersion")
	return ClientVersion
}
