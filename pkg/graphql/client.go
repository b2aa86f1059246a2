package graphql

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	gqlclient "github.com/machinebox/graphql"

	"github.com/cerc-io/eth-devnet-helpers/pkg/quantity"
)

const transactionFields = `
	hash
	nonce
	from
	to
	value
	gas
	gasPrice
	blockNumber
`

const blockFields = `
	number
	hash
	parentHash
	timestamp
	gasLimit
	gasUsed
	baseFeePerGas
	transactions {` + transactionFields + `}
`

type TransactionResponse struct {
	Hash        common.Hash     `json:"hash"`
	Nonce       uint64          `json:"nonce"`
	From        common.Address  `json:"from"`
	To          *common.Address `json:"to"`
	Value       BigInt          `json:"value"`
	Gas         uint64          `json:"gas"`
	GasPrice    BigInt          `json:"gasPrice"`
	BlockNumber *uint64         `json:"blockNumber"`
}

type BlockResponse struct {
	Number        uint64                `json:"number"`
	Hash          common.Hash           `json:"hash"`
	ParentHash    common.Hash           `json:"parentHash"`
	Timestamp     uint64                `json:"timestamp"`
	GasLimit      uint64                `json:"gasLimit"`
	GasUsed       uint64                `json:"gasUsed"`
	BaseFeePerGas *BigInt               `json:"baseFeePerGas"`
	Transactions  []TransactionResponse `json:"transactions"`
}

type GetBlock struct {
	Response *BlockResponse `json:"block"`
}

type GetLatestBlock struct {
	Response BlockResponse `json:"latestBlock"`
}

type GetPendingTransactions struct {
	Responses []TransactionResponse `json:"pendingTransactions"`
}

type Client struct {
	client *gqlclient.Client
}

func NewClient(endpoint string) *Client {
	client := gqlclient.NewClient(endpoint)
	return &Client{client: client}
}

func (c *Client) run(ctx context.Context, req *gqlclient.Request, out interface{}) error {
	req.Header.Set("Cache-Control", "no-cache")

	var respData map[string]interface{}
	if err := c.client.Run(ctx, req, &respData); err != nil {
		return err
	}

	jsonStr, err := json.Marshal(respData)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonStr, out)
}

// Block returns the block at number, or nil when there is none.
func (c *Client) Block(ctx context.Context, number uint64) (*BlockResponse, error) {
	req := gqlclient.NewRequest(`query($number: Long) { block(number: $number) {` + blockFields + `} }`)
	req.Var("number", quantity.NumberToRPCQuantity(number))

	var block GetBlock
	if err := c.run(ctx, req, &block); err != nil {
		return nil, err
	}
	return block.Response, nil
}

func (c *Client) LatestBlock(ctx context.Context) (*BlockResponse, error) {
	req := gqlclient.NewRequest(`query { latestBlock {` + blockFields + `} }`)

	var block GetLatestBlock
	if err := c.run(ctx, req, &block); err != nil {
		return nil, err
	}
	return &block.Response, nil
}

func (c *Client) PendingTransactions(ctx context.Context) ([]TransactionResponse, error) {
	req := gqlclient.NewRequest(`query { pendingTransactions {` + transactionFields + `} }`)

	var pending GetPendingTransactions
	if err := c.run(ctx, req, &pending); err != nil {
		return nil, err
	}
	return pending.Responses, nil
}
