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

// Package devnode is an in-memory stand-in for a development node. It answers
// the handful of JSON-RPC methods the helpers use so they can be exercised
// without a real node; it does not execute transactions.
package devnode

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/holiman/uint256"
	"golang.org/x/exp/slices"

	"github.com/cerc-io/eth-devnet-helpers/pkg/log"
	"github.com/cerc-io/eth-devnet-helpers/pkg/net"
	"github.com/cerc-io/eth-devnet-helpers/pkg/prom"
)

const (
	defaultTxGas = 21000

	elasticityMultiplier     = 2
	baseFeeChangeDenominator = 8
)

var (
	ErrUnknownAccount = errors.New("unknown account")
	ErrNonceTooLow    = errors.New("nonce too low")
	ErrMissingSender  = errors.New("missing from address")
	ErrGasLimit       = errors.New("exceeds block gas limit")
	ErrTooManyBlocks  = errors.New("too many blocks requested")
)

// Request is one call received by the node.
type Request struct {
	Method string
	Params []interface{}
}

// Node holds the stub chain.
type Node struct {
	mu sync.Mutex

	cfg       Config
	networkID uint64
	accounts map[common.Address]bool
	nonces   map[common.Address]uint64
	blocks   []*Block
	pending  []*Transaction
	automine bool
	requests []Request
}

// New creates a node holding only a genesis block.
func New(cfg *Config) *Node {
	if cfg == nil {
		cfg = new(Config)
	}
	c := cfg.withDefaults()

	n := &Node{
		cfg:       c,
		networkID: c.ChainID,
		accounts:  make(map[common.Address]bool, len(c.Accounts)),
		nonces:    make(map[common.Address]uint64),
		automine:  c.AutoMine,
	}
	// Without an explicit chain id, net_version is left to the upstream node.
	if cfg.ChainID == 0 && cfg.Upstream != nil {
		n.networkID = 0
	}
	for _, a := range c.Accounts {
		n.accounts[a] = true
	}

	genesis := &Block{
		Number:        0,
		Timestamp:     uint64(c.Clock().Unix()),
		GasLimit:      c.GasLimit,
		BaseFeePerGas: new(uint256.Int).Set(c.InitialBaseFee),
	}
	genesis.Hash = hashBlock(genesis)
	n.blocks = []*Block{genesis}
	return n
}

// APIs returns the RPC services exposed by the node.
func (n *Node) APIs() []rpc.API {
	return []rpc.API{
		{Namespace: "eth", Service: &EthAPI{n: n}},
		{Namespace: "evm", Service: &EvmAPI{n: n}},
		{Namespace: "hardhat", Service: &HardhatAPI{n: n}},
		{Namespace: net.APIName, Service: &NetAPI{n: n, net: net.NewPublicNetAPI(n.networkID, n.cfg.Upstream)}},
		{Namespace: "web3", Service: &Web3API{n: n}},
	}
}

// Server returns an rpc.Server with every API registered.
func (n *Node) Server() (*rpc.Server, error) {
	srv := rpc.NewServer()
	for _, api := range n.APIs() {
		if err := srv.RegisterName(api.Namespace, api.Service); err != nil {
			return nil, err
		}
	}
	return srv, nil
}

func (n *Node) record(method string, params ...interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests = append(n.requests, Request{Method: method, Params: params})
}

// Requests returns every call received so far.
func (n *Node) Requests() []Request {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.requests)
}

// ResetRequests forgets recorded calls.
func (n *Node) ResetRequests() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests = nil
}

// ChainID returns the configured chain id.
func (n *Node) ChainID() uint64 {
	return n.cfg.ChainID
}

// SetAutomine toggles sealing a block for every accepted transaction.
func (n *Node) SetAutomine(on bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.automine = on
}

// LatestBlock returns the head of the chain.
func (n *Node) LatestBlock() *Block {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.blocks[len(n.blocks)-1]
}

// BlockByNumber returns the sealed block at number, or nil.
func (n *Node) BlockByNumber(number uint64) *Block {
	n.mu.Lock()
	defer n.mu.Unlock()
	if number >= uint64(len(n.blocks)) {
		return nil
	}
	return n.blocks[number]
}

// PendingBlock returns a preview of the next block built from the pending
// transactions.
func (n *Node) PendingBlock() *Block {
	n.mu.Lock()
	defer n.mu.Unlock()
	parent := n.blocks[len(n.blocks)-1]
	return &Block{
		Number:        parent.Number + 1,
		ParentHash:    parent.Hash,
		Timestamp:     n.nextTimestamp(parent, nil),
		GasLimit:      n.cfg.GasLimit,
		GasUsed:       sumGas(n.pending),
		BaseFeePerGas: nextBaseFee(parent),
		Transactions:  slices.Clone(n.pending),
	}
}

// PendingTransactions returns the transactions waiting to be sealed.
func (n *Node) PendingTransactions() []*Transaction {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.pending)
}

// SendArgs are the inputs of SendTransaction.
type SendArgs struct {
	From     common.Address
	To       *common.Address
	Gas      *uint64
	GasPrice *uint256.Int
	Value    *uint256.Int
	Nonce    *uint64
	Input    []byte
}

// SendTransaction queues a transaction from one of the node's accounts and
// returns its hash. With automine on, the transaction is sealed immediately.
func (n *Node) SendTransaction(args SendArgs) (common.Hash, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if (args.From == common.Address{}) {
		return common.Hash{}, ErrMissingSender
	}
	if !n.accounts[args.From] {
		return common.Hash{}, fmt.Errorf("%w: %s", ErrUnknownAccount, args.From)
	}

	tx := &Transaction{
		From:     args.From,
		To:       args.To,
		Gas:      defaultTxGas,
		GasPrice: new(uint256.Int),
		Value:    new(uint256.Int),
		Nonce:    n.nonces[args.From],
		Input:    args.Input,
	}
	if args.Gas != nil {
		tx.Gas = *args.Gas
	}
	if tx.Gas > n.cfg.GasLimit {
		return common.Hash{}, fmt.Errorf("%w: %d > %d", ErrGasLimit, tx.Gas, n.cfg.GasLimit)
	}
	if args.GasPrice != nil {
		tx.GasPrice.Set(args.GasPrice)
	}
	if args.Value != nil {
		tx.Value.Set(args.Value)
	}
	if args.Nonce != nil {
		if *args.Nonce < tx.Nonce {
			return common.Hash{}, fmt.Errorf("%w: got %d, expected at least %d", ErrNonceTooLow, *args.Nonce, tx.Nonce)
		}
		tx.Nonce = *args.Nonce
	}
	tx.Hash = hashTx(tx)
	n.nonces[args.From] = tx.Nonce + 1
	n.pending = append(n.pending, tx)
	prom.SetPendingTxs(len(n.pending))

	log.WithField("hash", tx.Hash.Hex()).WithField("from", tx.From.Hex()).Debug("transaction accepted")

	if n.automine {
		n.seal(nil)
	}
	return tx.Hash, nil
}

// Mine seals one block carrying every pending transaction. timestamp, when
// set, overrides the block time.
func (n *Node) Mine(timestamp *uint64) *Block {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.seal(timestamp)
}

// MineBlocks seals count blocks; the first carries the pending transactions
// and each following block is interval seconds after the previous one.
// Counts above the configured MaxMineBlocks are rejected without sealing.
func (n *Node) MineBlocks(count, interval uint64) ([]*Block, error) {
	if count > n.cfg.MaxMineBlocks {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyBlocks, count, n.cfg.MaxMineBlocks)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	var sealed []*Block
	for i := uint64(0); i < count; i++ {
		var ts *uint64
		if i > 0 {
			t := sealed[i-1].Timestamp + interval
			ts = &t
		}
		sealed = append(sealed, n.seal(ts))
	}
	return sealed, nil
}

// seal must be called with mu held.
func (n *Node) seal(timestamp *uint64) *Block {
	parent := n.blocks[len(n.blocks)-1]
	b := &Block{
		Number:        parent.Number + 1,
		ParentHash:    parent.Hash,
		Timestamp:     n.nextTimestamp(parent, timestamp),
		GasLimit:      n.cfg.GasLimit,
		BaseFeePerGas: nextBaseFee(parent),
	}

	// Fill up to the gas limit; the rest stays pending.
	var rest []*Transaction
	for _, tx := range n.pending {
		if b.GasUsed+tx.Gas > b.GasLimit {
			rest = append(rest, tx)
			continue
		}
		b.GasUsed += tx.Gas
		b.Transactions = append(b.Transactions, tx)
	}
	b.Hash = hashBlock(b)

	// Pending transactions may still be read outside mu, so the block gets
	// its own copies.
	for i, tx := range b.Transactions {
		sealed := *tx
		number, index, hash := b.Number, uint64(i), b.Hash
		sealed.BlockNumber, sealed.Index, sealed.BlockHash = &number, &index, &hash
		b.Transactions[i] = &sealed
	}

	n.pending = rest
	n.blocks = append(n.blocks, b)
	prom.BlocksMined(1)
	prom.SetPendingTxs(len(n.pending))

	log.WithField(string(log.CtxKeyBlockNumber), b.Number).
		WithField("txs", len(b.Transactions)).
		Debug("block sealed")
	return b
}

func (n *Node) nextTimestamp(parent *Block, override *uint64) uint64 {
	if override != nil {
		return *override
	}
	now := uint64(n.cfg.Clock().Unix())
	if now <= parent.Timestamp {
		return parent.Timestamp + 1
	}
	return now
}

// nextBaseFee applies the EIP-1559 adjustment to the parent block.
func nextBaseFee(parent *Block) *uint256.Int {
	target := parent.GasLimit / elasticityMultiplier
	base := new(uint256.Int).Set(parent.BaseFeePerGas)
	if target == 0 || parent.GasUsed == target {
		return base
	}

	var delta uint256.Int
	if parent.GasUsed > target {
		delta.Mul(base, uint256.NewInt(parent.GasUsed-target))
		delta.Div(&delta, uint256.NewInt(target))
		delta.Div(&delta, uint256.NewInt(baseFeeChangeDenominator))
		if delta.IsZero() {
			delta.SetOne()
		}
		return base.Add(base, &delta)
	}

	delta.Mul(base, uint256.NewInt(target-parent.GasUsed))
	delta.Div(&delta, uint256.NewInt(target))
	delta.Div(&delta, uint256.NewInt(baseFeeChangeDenominator))
	if delta.Gt(base) {
		return base.Clear()
	}
	return base.Sub(base, &delta)
}

func sumGas(txs []*Transaction) uint64 {
	var total uint64
	for _, tx := range txs {
		total += tx.Gas
	}
	return total
}

type txPreimage struct {
	From     common.Address
	To       []byte
	Nonce    uint64
	Gas      uint64
	GasPrice *big.Int
	Value    *big.Int
	Input    []byte
}

func hashTx(tx *Transaction) common.Hash {
	var to []byte
	if tx.To != nil {
		to = tx.To.Bytes()
	}
	enc, _ := rlp.EncodeToBytes(&txPreimage{
		From:     tx.From,
		To:       to,
		Nonce:    tx.Nonce,
		Gas:      tx.Gas,
		GasPrice: tx.GasPrice.ToBig(),
		Value:    tx.Value.ToBig(),
		Input:    tx.Input,
	})
	return crypto.Keccak256Hash(enc)
}

type blockPreimage struct {
	Number     uint64
	ParentHash common.Hash
	Timestamp  uint64
	BaseFee    *big.Int
	TxHashes   []common.Hash
}

func hashBlock(b *Block) common.Hash {
	enc, _ := rlp.EncodeToBytes(&blockPreimage{
		Number:     b.Number,
		ParentHash: b.ParentHash,
		Timestamp:  b.Timestamp,
		BaseFee:    b.BaseFeePerGas.ToBig(),
		TxHashes:   b.TxHashes(),
	})
	return crypto.Keccak256Hash(enc)
}
