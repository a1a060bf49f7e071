package ethproofs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberOrString(t *testing.T) {
	tests := []struct {
		name     string
		value    NumberOrString
		str      string
		json     string
		isString bool
	}{
		{
			name:  "integer",
			value: FromInt(23982100),
			str:   "23982100",
			json:  `23982100`,
		},
		{
			name:     "string",
			value:    FromString("0xabc"),
			str:      "0xabc",
			json:     `"0xabc"`,
			isString: true,
		},
		{
			name:  "zero",
			value: FromInt(0),
			str:   "0",
			json:  `0`,
		},
		{
			name:     "numeric looking string stays a string",
			value:    FromString("42"),
			str:      "42",
			json:     `"42"`,
			isString: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.value.String())
			assert.Equal(t, tt.isString, tt.value.IsString())

			data, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.json, string(data))

			var decoded NumberOrString
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tt.value, decoded)
		})
	}
}

func TestNumberOrString_InStruct(t *testing.T) {
	data, err := json.Marshal(struct {
		Block BlockNumber `json:"block"`
	}{FromInt(7)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"block": 7}`, string(data))
}

func TestNumberOrString_Invalid(t *testing.T) {
	var v NumberOrString
	assert.Error(t, json.Unmarshal([]byte(`-1`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"int": 1}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`1.5`), &v))
}

func TestParseNumberOrString(t *testing.T) {
	n, ok := ParseNumberOrString("123").Int()
	assert.True(t, ok)
	assert.Equal(t, uint64(123), n)

	assert.True(t, ParseNumberOrString("0x1f").IsString())
	assert.True(t, ParseNumberOrString("-1").IsString())
}

func TestProofStatus(t *testing.T) {
	tests := []struct {
		status   ProofStatus
		next     ProofStatus
		hasNext  bool
		terminal bool
	}{
		{ProofStatusQueued, ProofStatusProving, true, false},
		{ProofStatusProving, ProofStatusProved, true, false},
		{ProofStatusProved, "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.True(t, tt.status.Valid())
			next, ok := tt.status.Next()
			assert.Equal(t, tt.hasNext, ok)
			assert.Equal(t, tt.next, next)
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
		})
	}

	assert.False(t, ProofStatus("failed").Valid())
}

func TestProofStatus_JSON(t *testing.T) {
	var s ProofStatus
	require.NoError(t, json.Unmarshal([]byte(`"proving"`), &s))
	assert.Equal(t, ProofStatusProving, s)

	data, err := json.Marshal(ProofStatusProved)
	require.NoError(t, err)
	assert.Equal(t, `"proved"`, string(data))

	assert.Error(t, json.Unmarshal([]byte(`"Proved"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`"unknown"`), &s))
}

func TestMachineConfiguration_Clone(t *testing.T) {
	m := validMachine()
	m.StorageSizeGB = Ptr(uint64(1000))

	clone := m.Clone()
	clone.GPUModels[0] = "changed"
	*clone.StorageSizeGB = 1

	assert.Equal(t, "RTX 4090", m.GPUModels[0])
	assert.Equal(t, uint64(1000), *m.StorageSizeGB)
}

func TestCloudInstance_NullableArchitectures(t *testing.T) {
	data, err := json.Marshal(CloudInstance{ID: 1, Provider: "aws", InstanceName: "c5.large"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "cpu_arch")
	assert.Nil(t, decoded["cpu_arch"])
	assert.Contains(t, decoded, "gpu_arch")
	assert.NotContains(t, decoded, "gpu_name")
}
