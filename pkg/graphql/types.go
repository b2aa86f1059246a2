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
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/cerc-io/eth-devnet-helpers/pkg/quantity"
)

type BigInt big.Int

// ToInt converts b to a big.Int.
func (b *BigInt) ToInt() *big.Int {
	return (*big.Int)(b)
}

// String returns value of b as a decimal string.
func (b *BigInt) String() string {
	return b.ToInt().String()
}

// MarshalText implements encoding.TextMarshaler
func (b BigInt) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (b *BigInt) UnmarshalText(input []byte) error {
	raw, err := checkNumberText(input)
	if err != nil {
		return err
	}
	if len(raw) > 78 {
		return hexutil.ErrBig256Range
	}

	var val big.Int
	if _, ok := val.SetString(string(raw), 10); !ok && len(raw) > 0 {
		return fmt.Errorf("invalid BigInt %q", raw)
	}
	*b = (BigInt)(val)
	return nil
}

// ImplementsGraphQLType returns true if BigInt implements the provided GraphQL type.
func (b BigInt) ImplementsGraphQLType(name string) bool { return name == "BigInt" }

// UnmarshalGraphQL unmarshals the provided GraphQL query data.
func (b *BigInt) UnmarshalGraphQL(input interface{}) error {
	var err error
	switch input := input.(type) {
	case string:
		return b.UnmarshalText([]byte(input))
	case int32:
		var num big.Int
		num.SetInt64(int64(input))
		*b = BigInt(num)
	default:
		err = fmt.Errorf("unexpected type %T for BigInt", input)
	}
	return err
}

func checkNumberText(input []byte) (raw []byte, err error) {
	if len(input) == 0 {
		return nil, nil // empty strings are allowed
	}
	if len(input) > 1 && input[0] == '0' {
		return nil, hexutil.ErrLeadingZero
	}
	return input, nil
}

// Long is a block number, timestamp or gas amount. It is written as a JSON
// number and read from an int, a decimal string or an RPC quantity.
type Long uint64

// ImplementsGraphQLType returns true if Long implements the provided GraphQL type.
func (l Long) ImplementsGraphQLType(name string) bool { return name == "Long" }

// UnmarshalGraphQL unmarshals the provided GraphQL query data.
func (l *Long) UnmarshalGraphQL(input interface{}) error {
	var v quantity.NumberLike
	switch input := input.(type) {
	case int32:
		v = int64(input)
	case int64:
		v = input
	case float64:
		if input != math.Trunc(input) {
			return fmt.Errorf("non-integer Long %v", input)
		}
		v = int64(input)
	case string:
		if quantity.Has0xPrefix(input) {
			v = input
			break
		}
		n, err := strconv.ParseUint(input, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid Long %q: %w", input, err)
		}
		v = n
	default:
		return fmt.Errorf("unexpected type %T for Long", input)
	}

	n, err := quantity.ToBigInt(v)
	if err != nil {
		return err
	}
	if !n.IsUint64() {
		return fmt.Errorf("Long %s out of range", n)
	}
	*l = Long(n.Uint64())
	return nil
}

// MarshalJSON implements json.Marshaler
func (l Long) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint64(l))
}
