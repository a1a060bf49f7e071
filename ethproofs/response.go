package ethproofs

import "fmt"

// Response is the decoded payload of one endpoint. Every response type in
// this package implements it, and no type outside it can.
type Response interface {
	responseName() string
}

func (GetBlockDetailsResponse) responseName() string { return "GetBlockDetailsResponse" }
func (CreateClusterResponse) responseName() string   { return "CreateClusterResponse" }
func (ListClustersResponse) responseName() string    { return "ListClustersResponse" }
func (ListActiveClustersForATeamResponse) responseName() string {
	return "ListActiveClustersForATeamResponse"
}
func (CreateSingleMachineResponse) responseName() string { return "CreateSingleMachineResponse" }
func (DownloadProofResponse) responseName() string       { return "DownloadProofResponse" }
func (DownloadProofsResponse) responseName() string      { return "DownloadProofsResponse" }
func (ListProofsResponse) responseName() string          { return "ListProofsResponse" }
func (QueuedProofResponse) responseName() string         { return "QueuedProofResponse" }
func (ProvingProofResponse) responseName() string        { return "ProvingProofResponse" }
func (ProvedProofResponse) responseName() string         { return "ProvedProofResponse" }
func (ListCloudInstancesResponse) responseName() string  { return "ListCloudInstancesResponse" }

// Narrow recovers the concrete payload T from r. It fails with a
// *ParseError naming T when r holds a different response.
//
//	resp, err := client.Call(ctx, ethproofs.ListClustersRequest{})
//	clusters, err := ethproofs.Narrow[ethproofs.ListClustersResponse](resp)
func Narrow[T Response](r Response) (T, error) {
	if v, ok := r.(T); ok {
		return v, nil
	}
	var zero T
	got := "nil"
	if r != nil {
		got = r.responseName()
	}
	return zero, &ParseError{Expected: zero.responseName(), Err: fmt.Errorf("response is %s", got)}
}
