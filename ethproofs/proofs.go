package ethproofs

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// Pagination defaults of the proofs listing.
const (
	DefaultListLimit  = 100
	DefaultListOffset = 0
	MaxListLimit      = 1000
)

// DownloadProofRequest downloads one proved proof.
type DownloadProofRequest struct {
	getRequest
	// ProofID is the proof UUID
	ProofID string `json:"id"`
}

// Endpoint implements Request
func (r DownloadProofRequest) Endpoint() string {
	return "/proofs/download/" + url.PathEscape(r.ProofID)
}

func (DownloadProofRequest) expects(DownloadProofResponse) {}

// DownloadProofResponse holds the proof binary.
type DownloadProofResponse struct {
	ProofBinaryFile string `json:"proof_binary_file"`
}

// DownloadProofsRequest downloads every proved proof of a block as a ZIP.
type DownloadProofsRequest struct {
	getRequest
	// BlockHash is 0x-prefixed, 64 hex characters
	BlockHash string `json:"block"`
}

// Endpoint implements Request
func (r DownloadProofsRequest) Endpoint() string {
	return "/proofs/download/block/" + url.PathEscape(r.BlockHash)
}

func (DownloadProofsRequest) expects(DownloadProofsResponse) {}

// DownloadProofsResponse holds the ZIP archive.
type DownloadProofsResponse struct {
	ProofsZipFile string `json:"proofs_zip_file"`
}

// ListProofsRequest lists proofs, optionally filtered by block and clusters.
// A zero Limit means DefaultListLimit.
type ListProofsRequest struct {
	getRequest
	// Block filters by block number or hash
	Block *NumberOrString `json:"block,omitempty"`
	// Clusters filters by cluster UUIDs, sent comma-separated
	Clusters []string `json:"clusters,omitempty"`
	Limit    uint64   `json:"limit"`
	Offset   uint64   `json:"offset"`
}

// EffectiveLimit returns the limit sent to the service
func (r ListProofsRequest) EffectiveLimit() uint64 {
	if r.Limit == 0 {
		return DefaultListLimit
	}
	return r.Limit
}

// Endpoint implements Request. Filters come first and only when set;
// limit and offset are always last.
func (r ListProofsRequest) Endpoint() string {
	endpoint := "/proofs"
	if r.Block != nil {
		endpoint = appendQuery(endpoint, "block", r.Block.String())
	}
	if len(r.Clusters) > 0 {
		ids := make([]string, len(r.Clusters))
		for i, id := range r.Clusters {
			ids[i] = url.QueryEscape(id)
		}
		endpoint = appendRawQuery(endpoint, "clusters", strings.Join(ids, ","))
	}
	endpoint = appendQuery(endpoint, "limit", strconv.FormatUint(r.EffectiveLimit(), 10))
	return appendQuery(endpoint, "offset", strconv.FormatUint(r.Offset, 10))
}

func (ListProofsRequest) expects(ListProofsResponse) {}

// ListProofsResponse is one page of proofs.
type ListProofsResponse struct {
	Proofs     []ProofRecord `json:"proofs"`
	TotalCount uint64        `json:"total_count"`
	Limit      uint64        `json:"limit"`
	Offset     uint64        `json:"offset"`
}

// HasMorePages checks if proofs remain after this page
func (r *ListProofsResponse) HasMorePages() bool {
	return r.Offset+uint64(len(r.Proofs)) < r.TotalCount && len(r.Proofs) > 0
}

// ProofRecord is one listed proof.
type ProofRecord struct {
	BlockNumber uint64 `json:"block_number"`
	// ClusterID is documented as a number but served as a UUID string
	ClusterID        string          `json:"cluster_id"`
	ProofID          uint64          `json:"proof_id"`
	ProofStatus      ProofStatus     `json:"proof_status"`
	ProvingCycles    *uint64         `json:"proving_cycles,omitempty"`
	TeamID           string          `json:"team_id"`
	CreatedAt        string          `json:"created_at"`
	ProvedTimestamp  *string         `json:"proved_timestamp,omitempty"`
	ProvingTimestamp *string         `json:"proving_timestamp,omitempty"`
	QueuedTimestamp  *string         `json:"queued_timestamp,omitempty"`
	ProvingTime      *uint64         `json:"proving_time,omitempty"`
	ProgramID        *int64          `json:"program_id,omitempty"`
	SizeBytes        *uint64         `json:"size_bytes,omitempty"`
	Team             *Team           `json:"team,omitempty"`
	Block            *Block          `json:"block,omitempty"`
	ClusterVersion   *ClusterVersion `json:"cluster_version,omitempty"`
	ClusterVersionID uint64          `json:"cluster_version_id"`
	UpdatedAt        string          `json:"updated_at"`
}

// Team is the team owning a proof.
type Team struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Slug              string  `json:"slug"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         *string `json:"updated_at,omitempty"`
	GithubOrg         string  `json:"github_org"`
	LogoURL           *string `json:"logo_url"`
	StorageQuotaBytes *uint64 `json:"storage_quota_bytes"`
	TwitterHandle     *string `json:"twitter_handle"`
	WebsiteURL        *string `json:"website_url"`
}

// Block is the block a proof belongs to.
type Block struct {
	Number           uint64  `json:"block_number"`
	Hash             string  `json:"hash"`
	Timestamp        string  `json:"timestamp"`
	GasUsed          uint64  `json:"gas_used"`
	TransactionCount uint64  `json:"transaction_count"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        *string `json:"updated_at,omitempty"`
}

// ClusterVersion is the cluster revision that produced a proof.
type ClusterVersion struct {
	ID              uint64           `json:"id"`
	ClusterID       string           `json:"cluster_id"`
	CreatedAt       string           `json:"created_at"`
	UpdatedAt       *string          `json:"updated_at,omitempty"`
	Cluster         ClusterRecord    `json:"cluster"`
	ZkvmVersion     ZkvmVersion      `json:"zkvm_version"`
	ClusterMachines []ClusterMachine `json:"cluster_machines"`
	IsActive        bool             `json:"is_active"`
	VKPath          *string          `json:"vk_path"`
	Index           uint64           `json:"index"`
}

// ClusterRecord is the cluster embedded in a cluster version.
type ClusterRecord struct {
	ID             string  `json:"id"`
	Nickname       *string `json:"nickname,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      *string `json:"updated_at,omitempty"`
	CycleType      string  `json:"cycle_type"`
	Description    string  `json:"description"`
	Hardware       string  `json:"hardware"`
	Index          uint64  `json:"index"`
	IsActive       bool    `json:"is_active"`
	IsMultiMachine bool    `json:"is_multi_machine"`
	IsOpenSource   bool    `json:"is_open_source"`
	ProofType      string  `json:"proof_type"`
	SoftwareLink   *string `json:"software_link"`
	TeamID         string  `json:"team_id"`
}

// ZkvmVersion is a released version of a zkVM.
type ZkvmVersion struct {
	ID          uint64     `json:"id"`
	Version     string     `json:"version"`
	ZkvmID      uint64     `json:"zkvm_id"`
	ReleaseDate *string    `json:"release_date"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   *string    `json:"updated_at,omitempty"`
	Zkvm        ZkvmRecord `json:"zkvm"`
}

// ZkvmRecord describes a zkVM.
type ZkvmRecord struct {
	ID                    uint64 `json:"id"`
	Name                  string `json:"name"`
	Slug                  string `json:"slug"`
	ISA                   string `json:"isa"`
	TeamID                string `json:"team_id"`
	CreatedAt             string `json:"created_at"`
	Continuations         bool   `json:"continuations"`
	DualLicenses          bool   `json:"dual_licenses"`
	Frontend              string `json:"frontend"`
	IsOpenSource          bool   `json:"is_open_source"`
	IsProvingMainnet      bool   `json:"is_proving_mainnet"`
	ParallelizableProving bool   `json:"parallelizable_proving"`
	Precompiles           bool   `json:"precompiles"`
	RepoURL               string `json:"repo_url"`
}

// QueuedProofRequest announces that a cluster will prove a block.
type QueuedProofRequest struct {
	postRequest
	BlockNumber uint64 `json:"block_number"`
	ClusterID   uint64 `json:"cluster_id"`
}

// Endpoint implements Request
func (QueuedProofRequest) Endpoint() string { return "/proofs/queue" }

// Body implements Request
func (r QueuedProofRequest) Body() (json.RawMessage, error) {
	return encodeBody(r)
}

func (QueuedProofRequest) expects(QueuedProofResponse) {}

// QueuedProofResponse carries the ID of the queued proof.
type QueuedProofResponse struct {
	ProofID uint64 `json:"proof_id"`
}

// ProvingProofRequest announces that a cluster started proving a block.
type ProvingProofRequest struct {
	postRequest
	BlockNumber uint64 `json:"block_number"`
	ClusterID   uint64 `json:"cluster_id"`
}

// Endpoint implements Request
func (ProvingProofRequest) Endpoint() string { return "/proofs/proving" }

// Body implements Request
func (r ProvingProofRequest) Body() (json.RawMessage, error) {
	return encodeBody(r)
}

func (ProvingProofRequest) expects(ProvingProofResponse) {}

// ProvingProofResponse carries the ID of the proof being proved.
type ProvingProofResponse struct {
	ProofID uint64 `json:"proof_id"`
}

// ProvedProofRequest submits a finished proof.
type ProvedProofRequest struct {
	postRequest
	BlockNumber uint64 `json:"block_number"`
	ClusterID   uint64 `json:"cluster_id"`
	// ProvingTime is in milliseconds, witness generation included
	ProvingTime   uint64  `json:"proving_time"`
	ProvingCycles *uint64 `json:"proving_cycles"`
	// Proof is base64 encoded
	Proof string `json:"proof"`
	// VerifierID is the vkey or image ID
	VerifierID *string `json:"verifier_id"`
}

// Endpoint implements Request
func (ProvedProofRequest) Endpoint() string { return "/proofs/proved" }

// Body implements Request
func (r ProvedProofRequest) Body() (json.RawMessage, error) {
	return encodeBody(r)
}

func (ProvedProofRequest) expects(ProvedProofResponse) {}

// ProvedProofResponse carries the ID of the proved proof.
type ProvedProofResponse struct {
	ProofID uint64 `json:"proof_id"`
}
