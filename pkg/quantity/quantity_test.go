package quantity_test

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cerc-io/eth-devnet-helpers/pkg/quantity"
)

var _ = Describe("RPC quantities", func() {
	DescribeTable("ToRPCQuantity encodes",
		func(in quantity.NumberLike, expected string) {
			out, err := quantity.ToRPCQuantity(in)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal(expected))
		},
		Entry("zero", 0, "0x0"),
		Entry("int", 1, "0x1"),
		Entry("int64", int64(21000), "0x5208"),
		Entry("uint64", uint64(1)<<63, "0x8000000000000000"),
		Entry("big.Int", new(big.Int).Lsh(big.NewInt(1), 100), "0x10000000000000000000000000"),
		Entry("uint256", uint256.NewInt(255), "0xff"),
		Entry("hexutil.Uint64", hexutil.Uint64(16), "0x10"),
		Entry("hexutil.Big", hexutil.Big(*big.NewInt(10)), "0xa"),
		Entry("hex string", "0x3e8", "0x3e8"),
		Entry("hex string with leading zeros", "0x0003e8", "0x3e8"),
		Entry("upper-case hex prefix", "0XFF", "0xff"),
	)

	DescribeTable("ToRPCQuantity rejects",
		func(in quantity.NumberLike, expected error) {
			_, err := quantity.ToRPCQuantity(in)
			Expect(err).To(MatchError(expected))
		},
		Entry("negative int", -1, quantity.ErrNegative),
		Entry("negative big.Int", big.NewInt(-5), quantity.ErrNegative),
		Entry("decimal string", "1000", quantity.ErrInvalid),
		Entry("signed hex string", "0x-3", quantity.ErrInvalid),
		Entry("nil big.Int", (*big.Int)(nil), quantity.ErrInvalid),
		Entry("nil uint256", (*uint256.Int)(nil), quantity.ErrInvalid),
		Entry("empty hex", "0x", quantity.ErrInvalid),
		Entry("garbage", "twelve", quantity.ErrInvalid),
		Entry("float", 1.5, quantity.ErrUnsupportedType),
		Entry("nil", nil, quantity.ErrUnsupportedType),
	)

	It("recognises the hex prefix", func() {
		Expect(quantity.Has0xPrefix("0x1")).To(BeTrue())
		Expect(quantity.Has0xPrefix("0X1")).To(BeTrue())
		Expect(quantity.Has0xPrefix("1")).To(BeFalse())
	})

	It("encodes uint64 without allocation of a big.Int", func() {
		Expect(quantity.NumberToRPCQuantity(0)).To(Equal("0x0"))
		Expect(quantity.NumberToRPCQuantity(1337)).To(Equal("0x539"))
	})

	Describe("RPCQuantityToBigInt", func() {
		It("decodes strict quantities", func() {
			n, err := quantity.RPCQuantityToBigInt("0x3b9aca00")
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Int64()).To(Equal(int64(1000000000)))
		})

		It("rejects leading zeros and missing prefixes", func() {
			_, err := quantity.RPCQuantityToBigInt("0x01")
			Expect(err).To(MatchError(quantity.ErrInvalid))
			_, err = quantity.RPCQuantityToBigInt("10")
			Expect(err).To(MatchError(quantity.ErrInvalid))
		})
	})
})
