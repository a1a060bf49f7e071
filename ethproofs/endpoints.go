package ethproofs

import "context"

// API defines the ethproofs operations. *Client implements it; code that
// talks to the service can depend on API to swap in a fake.
type API interface {
	// Block operations
	GetBlockDetails(ctx context.Context, block BlockNumber) (GetBlockDetailsResponse, error)

	// Cluster operations
	CreateCluster(ctx context.Context, req CreateClusterRequest) (CreateClusterResponse, error)
	ListClusters(ctx context.Context) (ListClustersResponse, error)
	ListActiveClustersForTeam(ctx context.Context, teamID string) (ListActiveClustersForATeamResponse, error)
	CreateSingleMachine(ctx context.Context, req CreateSingleMachineRequest) (CreateSingleMachineResponse, error)

	// Proof operations
	DownloadProof(ctx context.Context, proofID string) (DownloadProofResponse, error)
	DownloadProofs(ctx context.Context, blockHash string) (DownloadProofsResponse, error)
	ListProofs(ctx context.Context, req ListProofsRequest) (ListProofsResponse, error)
	QueueProof(ctx context.Context, blockNumber, clusterID uint64) (QueuedProofResponse, error)
	ProvingProof(ctx context.Context, blockNumber, clusterID uint64) (ProvingProofResponse, error)
	ProvedProof(ctx context.Context, req ProvedProofRequest) (ProvedProofResponse, error)

	// Cloud instance operations
	ListCloudInstances(ctx context.Context, provider string) (ListCloudInstancesResponse, error)
}

var _ API = (*Client)(nil)

// GetBlockDetails retrieves a block by number or hash
func (c *Client) GetBlockDetails(ctx context.Context, block BlockNumber) (GetBlockDetailsResponse, error) {
	return Do[GetBlockDetailsResponse](ctx, c, GetBlockDetailsRequest{BlockNumber: block})
}

// CreateCluster registers a multi-machine cluster
func (c *Client) CreateCluster(ctx context.Context, req CreateClusterRequest) (CreateClusterResponse, error) {
	return Do[CreateClusterResponse](ctx, c, req)
}

// ListClusters retrieves the clusters of the authenticated team
func (c *Client) ListClusters(ctx context.Context) (ListClustersResponse, error) {
	return Do[ListClustersResponse](ctx, c, ListClustersRequest{})
}

// ListActiveClustersForTeam retrieves the IDs of a team's active clusters
func (c *Client) ListActiveClustersForTeam(ctx context.Context, teamID string) (ListActiveClustersForATeamResponse, error) {
	return Do[ListActiveClustersForATeamResponse](ctx, c, ListActiveClustersForATeamRequest{TeamID: teamID})
}

// CreateSingleMachine registers a single-machine prover
func (c *Client) CreateSingleMachine(ctx context.Context, req CreateSingleMachineRequest) (CreateSingleMachineResponse, error) {
	return Do[CreateSingleMachineResponse](ctx, c, req)
}

// DownloadProof retrieves one proof binary
func (c *Client) DownloadProof(ctx context.Context, proofID string) (DownloadProofResponse, error) {
	return Do[DownloadProofResponse](ctx, c, DownloadProofRequest{ProofID: proofID})
}

// DownloadProofs retrieves every proof of a block as a ZIP archive
func (c *Client) DownloadProofs(ctx context.Context, blockHash string) (DownloadProofsResponse, error) {
	return Do[DownloadProofsResponse](ctx, c, DownloadProofsRequest{BlockHash: blockHash})
}

// ListProofs retrieves one page of proofs
func (c *Client) ListProofs(ctx context.Context, req ListProofsRequest) (ListProofsResponse, error) {
	return Do[ListProofsResponse](ctx, c, req)
}

// QueueProof marks a block as queued for proving by a cluster
func (c *Client) QueueProof(ctx context.Context, blockNumber, clusterID uint64) (QueuedProofResponse, error) {
	return Do[QueuedProofResponse](ctx, c, QueuedProofRequest{BlockNumber: blockNumber, ClusterID: clusterID})
}

// ProvingProof marks a block as being proved by a cluster
func (c *Client) ProvingProof(ctx context.Context, blockNumber, clusterID uint64) (ProvingProofResponse, error) {
	return Do[ProvingProofResponse](ctx, c, ProvingProofRequest{BlockNumber: blockNumber, ClusterID: clusterID})
}

// ProvedProof submits a finished proof
func (c *Client) ProvedProof(ctx context.Context, req ProvedProofRequest) (ProvedProofResponse, error) {
	return Do[ProvedProofResponse](ctx, c, req)
}

// ListCloudInstances retrieves the known cloud instances. An empty provider
// lists all of them.
func (c *Client) ListCloudInstances(ctx context.Context, provider string) (ListCloudInstancesResponse, error) {
	return Do[ListCloudInstancesResponse](ctx, c, ListCloudInstancesRequest{Provider: provider})
}
