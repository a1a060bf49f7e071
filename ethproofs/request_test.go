package ethproofs

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestDerivation(t *testing.T) {
	tests := []struct {
		name     string
		req      Request
		method   string
		endpoint string
		hasBody  bool
	}{
		{
			name:     "block by number",
			req:      GetBlockDetailsRequest{BlockNumber: FromInt(23982100)},
			method:   http.MethodGet,
			endpoint: "/blocks/23982100",
		},
		{
			name:     "block by hash",
			req:      GetBlockDetailsRequest{BlockNumber: FromString("0xabc")},
			method:   http.MethodGet,
			endpoint: "/blocks/0xabc",
		},
		{
			name:     "list clusters",
			req:      ListClustersRequest{},
			method:   http.MethodGet,
			endpoint: "/clusters",
		},
		{
			name:     "active clusters",
			req:      ListActiveClustersForATeamRequest{TeamID: "550e8400-e29b-41d4-a716-446655440000"},
			method:   http.MethodGet,
			endpoint: "/clusters/active?team_id=550e8400-e29b-41d4-a716-446655440000",
		},
		{
			name:     "download proof",
			req:      DownloadProofRequest{ProofID: "proof-1"},
			method:   http.MethodGet,
			endpoint: "/proofs/download/proof-1",
		},
		{
			name:     "download block proofs",
			req:      DownloadProofsRequest{BlockHash: "0xdeadbeef"},
			method:   http.MethodGet,
			endpoint: "/proofs/download/block/0xdeadbeef",
		},
		{
			name:     "list proofs defaults",
			req:      ListProofsRequest{},
			method:   http.MethodGet,
			endpoint: "/proofs?limit=100&offset=0",
		},
		{
			name:     "list proofs by block",
			req:      ListProofsRequest{Block: Ptr(FromInt(42)), Limit: 10, Offset: 20},
			method:   http.MethodGet,
			endpoint: "/proofs?block=42&limit=10&offset=20",
		},
		{
			name:     "list proofs by clusters",
			req:      ListProofsRequest{Clusters: []string{"a", "b"}},
			method:   http.MethodGet,
			endpoint: "/proofs?clusters=a,b&limit=100&offset=0",
		},
		{
			name:     "list proofs by block and clusters",
			req:      ListProofsRequest{Block: Ptr(FromString("0xabc")), Clusters: []string{"a"}, Offset: 5},
			method:   http.MethodGet,
			endpoint: "/proofs?block=0xabc&clusters=a&limit=100&offset=5",
		},
		{
			name:     "queue proof",
			req:      QueuedProofRequest{BlockNumber: 1, ClusterID: 2},
			method:   http.MethodPost,
			endpoint: "/proofs/queue",
			hasBody:  true,
		},
		{
			name:     "proving proof",
			req:      ProvingProofRequest{BlockNumber: 1, ClusterID: 2},
			method:   http.MethodPost,
			endpoint: "/proofs/proving",
			hasBody:  true,
		},
		{
			name:     "proved proof",
			req:      ProvedProofRequest{BlockNumber: 1, ClusterID: 2, ProvingTime: 3, Proof: "cHJvb2Y="},
			method:   http.MethodPost,
			endpoint: "/proofs/proved",
			hasBody:  true,
		},
		{
			name:     "all cloud instances",
			req:      ListCloudInstancesRequest{},
			method:   http.MethodGet,
			endpoint: "/cloud-instances",
		},
		{
			name:     "cloud instances by provider",
			req:      ListCloudInstancesRequest{Provider: "aws"},
			method:   http.MethodGet,
			endpoint: "/cloud-instances?provider=aws",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.method, tt.req.Method())
			assert.Equal(t, tt.endpoint, tt.req.Endpoint())

			body, err := tt.req.Body()
			require.NoError(t, err)
			if tt.hasBody {
				assert.NotEmpty(t, body)
			} else {
				assert.Nil(t, body)
			}
		})
	}
}

func TestRequestDerivation_Escaping(t *testing.T) {
	assert.Equal(t, "/clusters/active?team_id=a+b%26c", ListActiveClustersForATeamRequest{TeamID: "a b&c"}.Endpoint())
	assert.Equal(t, "/proofs/download/a%2Fb", DownloadProofRequest{ProofID: "a/b"}.Endpoint())
	assert.Equal(t, "/proofs?clusters=a%26x,b&limit=100&offset=0", ListProofsRequest{Clusters: []string{"a&x", "b"}}.Endpoint())
}

func TestTransitionBodies(t *testing.T) {
	body, err := QueuedProofRequest{BlockNumber: 23982100, ClusterID: 7}.Body()
	require.NoError(t, err)
	assert.JSONEq(t, `{"block_number": 23982100, "cluster_id": 7}`, string(body))

	body, err = ProvingProofRequest{BlockNumber: 23982100, ClusterID: 7}.Body()
	require.NoError(t, err)
	assert.JSONEq(t, `{"block_number": 23982100, "cluster_id": 7}`, string(body))

	t.Run("proved without optionals sends nulls", func(t *testing.T) {
		body, err := ProvedProofRequest{BlockNumber: 1, ClusterID: 2, ProvingTime: 1500, Proof: "cHJvb2Y="}.Body()
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"block_number": 1,
			"cluster_id": 2,
			"proving_time": 1500,
			"proving_cycles": null,
			"proof": "cHJvb2Y=",
			"verifier_id": null
		}`, string(body))
	})

	t.Run("proved with optionals", func(t *testing.T) {
		req := ProvedProofRequest{
			BlockNumber:   1,
			ClusterID:     2,
			ProvingTime:   1500,
			ProvingCycles: Ptr(uint64(1_000_000)),
			Proof:         "cHJvb2Y=",
			VerifierID:    Ptr("0x00ab"),
		}
		body, err := req.Body()
		require.NoError(t, err)

		expected, err := json.Marshal(req)
		require.NoError(t, err)
		assert.JSONEq(t, string(expected), string(body))
		assert.Contains(t, string(body), `"verifier_id":"0x00ab"`)
	})
}

func TestListProofsRequest_EffectiveLimit(t *testing.T) {
	assert.Equal(t, uint64(DefaultListLimit), ListProofsRequest{}.EffectiveLimit())
	assert.Equal(t, uint64(5), ListProofsRequest{Limit: 5}.EffectiveLimit())
}
