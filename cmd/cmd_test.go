package cmd

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/ethproofs/config"
	"github.com/s0up4200/ethproofs/ethproofs"
)

const testConfig = `
api:
  key: test-key
  environment: custom
  url: %s/api/v0
logging:
  level: error
filter:
  presets:
    done: "isProved()"
clusters:
  main:
    nickname: main-cluster
    zkvm_version_id: 1
    configuration:
      - machine:
          cpu_model: AMD EPYC
          cpu_cores: 64
          memory_size_gb: [256]
          memory_count: [8]
          memory_type: [DDR5]
        machine_count: 1
        cloud_instance_name: g6.48xlarge
        cloud_instance_count: 1
`

func resetFlags() {
	cfgFile = ""
	staging = false
	outputMode = outputTable
	filterExpr = ""
	preset = ""
	dryRun = false
	fromName = ""
	listBlock = ""
	listClusters = nil
	listLimit = ethproofs.DefaultListLimit
	listOffset = 0
	listAll = false
	outDir = ""
	outFile = ""
	provingTime = 0
	provingCycles = 0
	proofFile = ""
	verifierID = ""
	provider = ""
	checkOnly = false
}

// executeCommand runs the CLI against server with a generated config file
func executeCommand(t *testing.T, server *httptest.Server, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(testConfig, server.URL)), 0o600))

	resetFlags()
	logOutput = io.Discard

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--config", path}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func proofJSON(id, block uint64, status string) map[string]any {
	return map[string]any{
		"block_number":       block,
		"cluster_id":         "c0ffee00-0000-0000-0000-000000000001",
		"proof_id":           id,
		"proof_status":       status,
		"team_id":            "team-1",
		"created_at":         "2025-01-01T00:00:00Z",
		"updated_at":         "2025-01-01T00:10:00Z",
		"cluster_version_id": 3,
		"proving_time":       42000,
	}
}

func TestBlocksGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/blocks/21000000", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		writeJSON(t, w, map[string]any{
			"block_number":      21000000,
			"timestamp":         "2024-10-16T00:00:00Z",
			"gas_used":          1500000,
			"transaction_count": 120,
			"hash":              "0xabc",
			"created_at":        "2024-10-16T00:00:05Z",
		})
	}))
	defer server.Close()

	out, err := executeCommand(t, server, "blocks", "get", "21000000", "--output", "json")
	require.NoError(t, err)

	var got ethproofs.GetBlockDetailsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, uint64(21000000), got.BlockNumber)
	assert.Equal(t, "0xabc", got.Hash)
	assert.Nil(t, got.UpdatedAt)
}

func TestProofsList(t *testing.T) {
	var query atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/proofs", r.URL.Path)
		query.Store(r.URL.RawQuery)
		writeJSON(t, w, map[string]any{
			"proofs": []any{
				proofJSON(1, 100, "proved"),
				proofJSON(2, 101, "queued"),
			},
			"total_count": 2,
			"limit":       100,
			"offset":      0,
		})
	}))
	defer server.Close()

	t.Run("Filter expression", func(t *testing.T) {
		out, err := executeCommand(t, server, "proofs", "list", "--block", "100", "--clusters", "a,b", "--filter", "isProved()", "-o", "json")
		require.NoError(t, err)
		assert.Equal(t, "block=100&clusters=a,b&limit=100&offset=0", query.Load())

		var got []ethproofs.ProofRecord
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got, 1)
		assert.Equal(t, uint64(1), got[0].ProofID)
	})

	t.Run("Preset", func(t *testing.T) {
		out, err := executeCommand(t, server, "proofs", "list", "--preset", "done", "-o", "json")
		require.NoError(t, err)

		var got []ethproofs.ProofRecord
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got, 1)
		assert.Equal(t, ethproofs.ProofStatusProved, got[0].ProofStatus)
	})

	t.Run("Table", func(t *testing.T) {
		out, err := executeCommand(t, server, "proofs", "list", "--limit", "10", "--offset", "5")
		require.NoError(t, err)
		assert.Equal(t, "limit=10&offset=5", query.Load())
		assert.Contains(t, out, "PROOF ID")
		assert.Contains(t, out, "42.00s")
		assert.Contains(t, out, "Showing 2 of 2 proofs")
	})

	t.Run("Environment helper", func(t *testing.T) {
		t.Setenv("PROVER_TEAM_ID", "team-1")

		out, err := executeCommand(t, server, "proofs", "list", "--filter", `TeamID == getenv("PROVER_TEAM_ID") && !isProved()`, "-o", "json")
		require.NoError(t, err)

		var got []ethproofs.ProofRecord
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got, 1)
		assert.Equal(t, uint64(2), got[0].ProofID)
	})

	t.Run("Unknown preset", func(t *testing.T) {
		_, err := executeCommand(t, server, "proofs", "list", "--preset", "missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "filter preset 'missing' not found")
	})

	t.Run("Limit above maximum", func(t *testing.T) {
		_, err := executeCommand(t, server, "proofs", "list", "--limit", "5000")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--limit must be at most 1000")
	})
}

func TestProofsQueue(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v0/proofs/queue", r.URL.Path)
		calls.Add(1)

		var body struct {
			BlockNumber uint64 `json:"block_number"`
			ClusterID   uint64 `json:"cluster_id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, uint64(7), body.ClusterID)

		if body.BlockNumber == 102 {
			http.Error(w, "block not found", http.StatusNotFound)
			return
		}
		writeJSON(t, w, map[string]any{"proof_id": body.BlockNumber * 10})
	}))
	defer server.Close()

	out, err := executeCommand(t, server, "proofs", "queue", "7", "100", "101", "101", "102")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 status updates failed")
	assert.Equal(t, int32(3), calls.Load())
	assert.Contains(t, out, "1000")
	assert.Contains(t, out, "1010")
	assert.NotContains(t, out, "1020")

	_, err = executeCommand(t, server, "proofs", "queue", "seven", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid cluster ID "seven"`)
}

func TestProofsProved(t *testing.T) {
	proof := []byte{0xde, 0xad, 0xbe, 0xef}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/proofs/proved", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(12), body["block_number"])
		assert.Equal(t, float64(3), body["cluster_id"])
		assert.Equal(t, float64(1500), body["proving_time"])
		assert.Equal(t, float64(99), body["proving_cycles"])
		assert.Equal(t, base64.StdEncoding.EncodeToString(proof), body["proof"])
		assert.Contains(t, body, "verifier_id")
		assert.Nil(t, body["verifier_id"])

		writeJSON(t, w, map[string]any{"proof_id": 55})
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "proof.bin")
	require.NoError(t, os.WriteFile(path, proof, 0o600))

	out, err := executeCommand(t, server, "proofs", "proved", "3", "12",
		"--time", "1500", "--cycles", "99", "--proof-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Proof submitted")
	assert.Contains(t, out, "(ID: 55)")
}

func TestProofsDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/v0/proofs/download/")
		if id == "missing" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		writeJSON(t, w, map[string]any{"proof_binary_file": "proof-" + id})
	}))
	defer server.Close()

	dir := t.TempDir()
	out, err := executeCommand(t, server, "proofs", "download", "a", "b", "--out-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "a.proof"))

	data, err := os.ReadFile(filepath.Join(dir, "b.proof"))
	require.NoError(t, err)
	assert.Equal(t, "proof-b", string(data))

	_, err = executeCommand(t, server, "proofs", "download", "a", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 downloads failed")
}

func TestClustersCreateDryRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}))
	defer server.Close()

	out, err := executeCommand(t, server, "clusters", "create", "--from", "main", "--dry-run")
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "main-cluster", body["nickname"])
	assert.Equal(t, float64(1), body["zkvm_version_id"])
	assert.Len(t, body["configuration"], 1)

	_, err = executeCommand(t, server, "clusters", "create", "--from", "unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cluster "unknown" is not defined`)
}

func TestClustersCreate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v0/clusters", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		writeJSON(t, w, map[string]any{"id": 9})
	}))
	defer server.Close()

	out, err := executeCommand(t, server, "clusters", "create", "--from", "main")
	require.NoError(t, err)
	assert.Contains(t, out, "(ID: 9)")
}

func TestInstancesList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/cloud-instances", r.URL.Path)
		assert.Equal(t, "aws", r.URL.Query().Get("provider"))
		writeJSON(t, w, []any{
			map[string]any{
				"id": 1, "provider": "aws", "instance_name": "g6.48xlarge", "region": "us-east-1",
				"hourly_price": 13.35, "cpu_arch": nil, "cpu_cores": 192, "memory": 768,
				"gpu_count": 8, "gpu_arch": "ada", "gpu_name": "L4", "created_at": "2025-01-01",
			},
			map[string]any{
				"id": 2, "provider": "aws", "instance_name": "c7i.large", "region": "us-east-1",
				"hourly_price": 0.09, "cpu_arch": "x86_64", "cpu_cores": 2, "memory": 4,
				"gpu_arch": nil, "created_at": "2025-01-01",
			},
		})
	}))
	defer server.Close()

	out, err := executeCommand(t, server, "instances", "list", "--provider", "aws", "--filter", "GPUCount >= 4")
	require.NoError(t, err)
	assert.Contains(t, out, "g6.48xlarge")
	assert.Contains(t, out, "8x L4")
	assert.NotContains(t, out, "c7i.large")
}

func TestStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v0/clusters":
			writeJSON(t, w, map[string]any{"clusters": []any{}})
		case "/api/v0/cloud-instances":
			writeJSON(t, w, []any{})
		case "/api/v0/proofs":
			assert.Equal(t, "100", r.URL.Query().Get("limit"))
			writeJSON(t, w, map[string]any{
				"proofs": []any{
					proofJSON(1, 100, "proved"),
					proofJSON(2, 101, "queued"),
					proofJSON(3, 102, "proving"),
				},
				"total_count": 1234,
				"limit":       100,
				"offset":      0,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	t.Run("JSON", func(t *testing.T) {
		out, err := executeCommand(t, server, "status", "-o", "json")
		require.NoError(t, err)

		var report statusReport
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, config.EnvironmentCustom, report.Environment)
		assert.Equal(t, uint64(1234), report.Proofs)
		assert.Equal(t, []string{"done"}, report.Presets)
		assert.Equal(t, map[string]int{"done": 1}, report.PresetMatches)
	})

	t.Run("Table", func(t *testing.T) {
		out, err := executeCommand(t, server, "status")
		require.NoError(t, err)
		assert.Contains(t, out, "Connection successful")
		assert.Contains(t, out, "1 of latest proofs")
	})
}

func TestAPIErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := executeCommand(t, server, "clusters", "list")
	require.Error(t, err)

	var apiErr *ethproofs.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsUnauthorized())
}

func TestInvalidOutputFormat(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := executeCommand(t, server, "clusters", "list", "--output", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format: yaml")
}

func TestNeedsUpdate(t *testing.T) {
	tests := []struct {
		current string
		latest  string
		want    bool
		wantErr bool
	}{
		{current: "v1.0.0", latest: "1.0.1", want: true},
		{current: "1.2.0", latest: "v1.2.0", want: false},
		{current: "2.0.0", latest: "1.9.9", want: false},
		{current: "1.0.0-beta.1", latest: "1.0.0", want: true},
		{current: "dev", latest: "1.0.0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.current+"->"+tt.latest, func(t *testing.T) {
			got, err := needsUpdate(tt.current, tt.latest)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	log := setupLogger(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "-", orDash(nil))
	assert.Equal(t, "-", orDash(ethproofs.Ptr("")))
	assert.Equal(t, "x", orDash(ethproofs.Ptr("x")))
	assert.Equal(t, "-", uintOrDash(nil))
	assert.Equal(t, "7", uintOrDash(ethproofs.Ptr(uint64(7))))
	assert.Equal(t, "1.50s", formatMillis(ethproofs.Ptr(uint64(1500))))
	assert.Equal(t, "abcdefg", truncate("abcdefg", 7))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))

	n, err := parseUint("block number", " 42 ")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), n)

	_, err = parseUint("block number", "-1")
	assert.ErrorContains(t, err, strconv.Quote("-1"))
}
