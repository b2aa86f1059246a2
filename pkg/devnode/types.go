package devnode

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// Transaction is a transaction accepted by the stub node.
type Transaction struct {
	Hash     common.Hash
	From     common.Address
	To       *common.Address
	Gas      uint64
	GasPrice *uint256.Int
	Value    *uint256.Int
	Nonce    uint64
	Input    []byte

	// Only set on the copies held by sealed blocks; a Transaction is never
	// modified once it is queued.
	BlockHash   *common.Hash
	BlockNumber *uint64
	Index       *uint64
}

// RPCTransaction is the JSON-RPC shape of a Transaction.
type RPCTransaction struct {
	BlockHash        *common.Hash    `json:"blockHash"`
	BlockNumber      *hexutil.Big    `json:"blockNumber"`
	From             common.Address  `json:"from"`
	Gas              hexutil.Uint64  `json:"gas"`
	GasPrice         *hexutil.Big    `json:"gasPrice"`
	Hash             common.Hash     `json:"hash"`
	Input            hexutil.Bytes   `json:"input"`
	Nonce            hexutil.Uint64  `json:"nonce"`
	To               *common.Address `json:"to"`
	TransactionIndex *hexutil.Uint64 `json:"transactionIndex"`
	Value            *hexutil.Big    `json:"value"`
	Type             hexutil.Uint64  `json:"type"`
	ChainID          *hexutil.Big    `json:"chainId,omitempty"`
}

func (tx *Transaction) rpc(chainID uint64) *RPCTransaction {
	out := &RPCTransaction{
		BlockHash: tx.BlockHash,
		From:      tx.From,
		Gas:       hexutil.Uint64(tx.Gas),
		GasPrice:  (*hexutil.Big)(tx.GasPrice.ToBig()),
		Hash:      tx.Hash,
		Input:     hexutil.Bytes(tx.Input),
		Nonce:     hexutil.Uint64(tx.Nonce),
		To:        tx.To,
		Value:     (*hexutil.Big)(tx.Value.ToBig()),
		ChainID:   (*hexutil.Big)(new(uint256.Int).SetUint64(chainID).ToBig()),
	}
	if tx.BlockNumber != nil {
		out.BlockNumber = (*hexutil.Big)(new(uint256.Int).SetUint64(*tx.BlockNumber).ToBig())
	}
	if tx.Index != nil {
		idx := hexutil.Uint64(*tx.Index)
		out.TransactionIndex = &idx
	}
	return out
}

// Block is a sealed stub block.
type Block struct {
	Number        uint64
	Hash          common.Hash
	ParentHash    common.Hash
	Timestamp     uint64
	GasLimit      uint64
	GasUsed       uint64
	BaseFeePerGas *uint256.Int
	Transactions  []*Transaction
}

// TxHashes returns the hashes of the block's transactions in order.
func (b *Block) TxHashes() []common.Hash {
	hashes := make([]common.Hash, len(b.Transactions))
	for i, tx := range b.Transactions {
		hashes[i] = tx.Hash
	}
	return hashes
}

// marshal renders the block the way eth_getBlockByNumber does. A pending
// block has no hash.
func (b *Block) marshal(fullTx, pending bool, chainID uint64) map[string]interface{} {
	fields := map[string]interface{}{
		"number":        hexutil.Uint64(b.Number),
		"parentHash":    b.ParentHash,
		"timestamp":     hexutil.Uint64(b.Timestamp),
		"gasLimit":      hexutil.Uint64(b.GasLimit),
		"gasUsed":       hexutil.Uint64(b.GasUsed),
		"baseFeePerGas": (*hexutil.Big)(b.BaseFeePerGas.ToBig()),
		"miner":         common.Address{},
		"difficulty":    (*hexutil.Big)(common.Big0),
		"extraData":     hexutil.Bytes{},
		"uncles":        []common.Hash{},
	}
	if pending {
		fields["hash"] = nil
	} else {
		fields["hash"] = b.Hash
	}

	if fullTx {
		txs := make([]*RPCTransaction, len(b.Transactions))
		for i, tx := range b.Transactions {
			txs[i] = tx.rpc(chainID)
		}
		fields["transactions"] = txs
	} else {
		fields["transactions"] = b.TxHashes()
	}
	return fields
}
