package devnode

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/spf13/viper"

	"github.com/cerc-io/eth-devnet-helpers/pkg/provider"
	"github.com/cerc-io/eth-devnet-helpers/pkg/shared"
)

// Env variables
const (
	DEVNODE_CHAIN_ID         = "DEVNODE_CHAIN_ID"
	DEVNODE_AUTOMINE         = "DEVNODE_AUTOMINE"
	DEVNODE_INITIAL_BASE_FEE = "DEVNODE_INITIAL_BASE_FEE"
	DEVNODE_GAS_LIMIT        = "DEVNODE_GAS_LIMIT"
	DEVNODE_MAX_MINE_BLOCKS  = "DEVNODE_MAX_MINE_BLOCKS"
)

const (
	DefaultChainID        = 31337
	DefaultGasLimit       = 30_000_000
	DefaultInitialBaseFee = 1_000_000_000
	DefaultMaxMineBlocks  = 100_000
	ClientVersion         = "eth-devnet-helpers/stub"
)

// Config struct
type Config struct {
	ChainID        uint64
	Accounts       []common.Address
	AutoMine       bool
	GasLimit       uint64
	InitialBaseFee *uint256.Int
	// MaxMineBlocks bounds a single hardhat_mine call.
	MaxMineBlocks uint64
	// Clock supplies block timestamps; defaults to time.Now.
	Clock func() time.Time
	// Upstream, when set, answers net queries the stub has no data for.
	Upstream provider.Provider
}

// NewConfig is used to initialize a stub node config from a .toml file, env
// variables or flags.
func NewConfig() *Config {
	viper.BindEnv("devnode.chainID", DEVNODE_CHAIN_ID)
	viper.BindEnv("devnode.automine", DEVNODE_AUTOMINE)
	viper.BindEnv("devnode.initialBaseFee", DEVNODE_INITIAL_BASE_FEE)
	viper.BindEnv("devnode.gasLimit", DEVNODE_GAS_LIMIT)
	viper.BindEnv("devnode.maxMineBlocks", DEVNODE_MAX_MINE_BLOCKS)

	c := &Config{
		ChainID:       viper.GetUint64("devnode.chainID"),
		AutoMine:      viper.GetBool("devnode.automine"),
		GasLimit:      viper.GetUint64("devnode.gasLimit"),
		MaxMineBlocks: viper.GetUint64("devnode.maxMineBlocks"),
	}
	if fee := viper.GetUint64("devnode.initialBaseFee"); fee != 0 {
		c.InitialBaseFee = uint256.NewInt(fee)
	}
	return c
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.ChainID == 0 {
		out.ChainID = DefaultChainID
	}
	if len(out.Accounts) == 0 {
		out.Accounts = shared.DefaultAccounts
	}
	if out.GasLimit == 0 {
		out.GasLimit = DefaultGasLimit
	}
	if out.MaxMineBlocks == 0 {
		out.MaxMineBlocks = DefaultMaxMineBlocks
	}
	if out.InitialBaseFee == nil {
		out.InitialBaseFee = uint256.NewInt(DefaultInitialBaseFee)
	}
	if out.Clock == nil {
		out.Clock = time.Now
	}
	return out
}
