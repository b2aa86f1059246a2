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

const schema string = `
    # Bytes32 is a 32 byte binary string, represented as 0x-prefixed hexadecimal.
    scalar Bytes32
    # Address is a 20 byte Ethereum address, represented as 0x-prefixed hexadecimal.
    scalar Address
    # BigInt is a large integer, represented as a decimal string.
    scalar BigInt
    # Long is a 64 bit unsigned integer.
    scalar Long

    schema {
        query: Query
    }

    type Transaction {
        hash: Bytes32!
        nonce: Long!
        from: Address!
        # To is null for contract creations.
        to: Address
        value: BigInt!
        gas: Long!
        gasPrice: BigInt!
        # BlockNumber is null while the transaction is pending.
        blockNumber: Long
    }

    type Block {
        number: Long!
        hash: Bytes32!
        parentHash: Bytes32!
        timestamp: Long!
        gasLimit: Long!
        gasUsed: Long!
        baseFeePerGas: BigInt
        transactions: [Transaction!]!
    }

    type Query {
        # Block fetches a block by number, or the latest block when number is omitted.
        block(number: Long): Block
        latestBlock: Block!
        pendingTransactions: [Transaction!]!
    }
`
