package ethproofs

import "net/url"

// GetBlockDetailsRequest fetches one block by number or hash.
type GetBlockDetailsRequest struct {
	getRequest
	BlockNumber BlockNumber `json:"block"`
}

// Endpoint implements Request
func (r GetBlockDetailsRequest) Endpoint() string {
	return "/blocks/" + url.PathEscape(r.BlockNumber.String())
}

func (GetBlockDetailsRequest) expects(GetBlockDetailsResponse) {}

// GetBlockDetailsResponse is the block as the service records it.
type GetBlockDetailsResponse struct {
	BlockNumber      uint64  `json:"block_number"`
	Timestamp        string  `json:"timestamp"`
	GasUsed          uint64  `json:"gas_used"`
	TransactionCount uint32  `json:"transaction_count"`
	Hash             string  `json:"hash"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        *string `json:"updated_at,omitempty"`
}
