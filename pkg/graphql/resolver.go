// VulcanizeDB
// Copyright © 2022 Vulcanize

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

package graphql

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/cerc-io/eth-devnet-helpers/pkg/devnode"
)

// Backend is the chain view the resolvers read from.
type Backend interface {
	LatestBlock() *devnode.Block
	BlockByNumber(number uint64) *devnode.Block
	PendingTransactions() []*devnode.Transaction
}

// Resolver is the top-level object in the GraphQL hierarchy.
type Resolver struct {
	backend Backend
}

func (r *Resolver) Block(args struct{ Number *Long }) *Block {
	var b *devnode.Block
	if args.Number == nil {
		b = r.backend.LatestBlock()
	} else {
		b = r.backend.BlockByNumber(uint64(*args.Number))
	}
	if b == nil {
		return nil
	}
	return &Block{b}
}

func (r *Resolver) LatestBlock() *Block {
	return &Block{r.backend.LatestBlock()}
}

func (r *Resolver) PendingTransactions() []*Transaction {
	pending := r.backend.PendingTransactions()
	out := make([]*Transaction, len(pending))
	for i, tx := range pending {
		out[i] = &Transaction{tx}
	}
	return out
}

// Block resolves a sealed block.
type Block struct {
	b *devnode.Block
}

func (b *Block) Number() Long            { return Long(b.b.Number) }
func (b *Block) Hash() common.Hash       { return b.b.Hash }
func (b *Block) ParentHash() common.Hash { return b.b.ParentHash }
func (b *Block) Timestamp() Long         { return Long(b.b.Timestamp) }
func (b *Block) GasLimit() Long          { return Long(b.b.GasLimit) }
func (b *Block) GasUsed() Long           { return Long(b.b.GasUsed) }

func (b *Block) BaseFeePerGas() *BigInt {
	if b.b.BaseFeePerGas == nil {
		return nil
	}
	return (*BigInt)(b.b.BaseFeePerGas.ToBig())
}

func (b *Block) Transactions() []*Transaction {
	out := make([]*Transaction, len(b.b.Transactions))
	for i, tx := range b.b.Transactions {
		out[i] = &Transaction{tx}
	}
	return out
}

// Transaction resolves a pending or sealed transaction.
type Transaction struct {
	tx *devnode.Transaction
}

func (t *Transaction) Hash() common.Hash    { return t.tx.Hash }
func (t *Transaction) Nonce() Long          { return Long(t.tx.Nonce) }
func (t *Transaction) From() common.Address { return t.tx.From }
func (t *Transaction) To() *common.Address  { return t.tx.To }
func (t *Transaction) Value() BigInt        { return BigInt(*t.tx.Value.ToBig()) }
func (t *Transaction) Gas() Long            { return Long(t.tx.Gas) }
func (t *Transaction) GasPrice() BigInt     { return BigInt(*t.tx.GasPrice.ToBig()) }

func (t *Transaction) BlockNumber() *Long {
	if t.tx.BlockNumber == nil {
		return nil
	}
	n := Long(*t.tx.BlockNumber)
	return &n
}
