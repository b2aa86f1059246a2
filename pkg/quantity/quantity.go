// Package quantity converts numeric values to and from the hexadecimal
// quantity encoding used in Ethereum JSON-RPC payloads.
package quantity

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

var (
	ErrNegative        = errors.New("quantity cannot be negative")
	ErrInvalid         = errors.New("invalid quantity")
	ErrUnsupportedType = errors.New("unsupported quantity type")
)

// NumberLike is anything ToRPCQuantity knows how to encode: the signed and
// unsigned integer kinds, *big.Int, *uint256.Int, hexutil.Big,
// hexutil.Uint64, and 0x-prefixed hex strings.
type NumberLike interface{}

// NumberToRPCQuantity encodes n as an RPC quantity.
func NumberToRPCQuantity(n uint64) string {
	return hexutil.EncodeUint64(n)
}

// ToRPCQuantity encodes v as an RPC quantity, e.g. 0x0, 0x1a.
func ToRPCQuantity(v NumberLike) (string, error) {
	n, err := ToBigInt(v)
	if err != nil {
		return "", err
	}
	return hexutil.EncodeBig(n), nil
}

// ToBigInt converts v to a non-negative *big.Int.
func ToBigInt(v NumberLike) (*big.Int, error) {
	var n *big.Int
	switch x := v.(type) {
	case int:
		n = big.NewInt(int64(x))
	case int32:
		n = big.NewInt(int64(x))
	case int64:
		n = big.NewInt(x)
	case uint:
		n = new(big.Int).SetUint64(uint64(x))
	case uint32:
		n = new(big.Int).SetUint64(uint64(x))
	case uint64:
		n = new(big.Int).SetUint64(x)
	case hexutil.Uint64:
		n = new(big.Int).SetUint64(uint64(x))
	case hexutil.Big:
		n = new(big.Int).Set((*big.Int)(&x))
	case *hexutil.Big:
		if x == nil {
			return nil, fmt.Errorf("%w: nil %T", ErrInvalid, x)
		}
		n = new(big.Int).Set(x.ToInt())
	case *big.Int:
		if x == nil {
			return nil, fmt.Errorf("%w: nil %T", ErrInvalid, x)
		}
		n = new(big.Int).Set(x)
	case *uint256.Int:
		if x == nil {
			return nil, fmt.Errorf("%w: nil %T", ErrInvalid, x)
		}
		n = x.ToBig()
	case string:
		var err error
		if n, err = parseString(x); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}

	if n.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegative, n)
	}
	return n, nil
}

// Has0xPrefix reports whether s starts with 0x or 0X.
func Has0xPrefix(s string) bool {
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

// parseString takes 0x-prefixed hex only.
func parseString(s string) (*big.Int, error) {
	if !Has0xPrefix(s) {
		return nil, fmt.Errorf("%w: %q is not 0x-prefixed", ErrInvalid, s)
	}
	digits := s[2:]
	if digits == "" || digits[0] == '-' || digits[0] == '+' {
		return nil, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	n, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return n, nil
}

// RPCQuantityToBigInt decodes a strict RPC quantity: 0x-prefixed, no leading
// zeros except for 0x0.
func RPCQuantityToBigInt(s string) (*big.Int, error) {
	n, err := hexutil.DecodeBig(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalid, s, err)
	}
	return n, nil
}
