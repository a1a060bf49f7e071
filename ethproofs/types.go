package ethproofs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// MachineConfiguration describes the physical hardware of one machine.
// The GPU arrays are parallel and optional; the memory arrays are parallel
// and required.
type MachineConfiguration struct {
	CPUModel               string   `json:"cpu_model"`
	CPUCores               uint64   `json:"cpu_cores"`
	GPUModels              []string `json:"gpu_models,omitempty"`
	GPUCount               []uint64 `json:"gpu_count,omitempty"`
	GPUMemoryGB            []uint64 `json:"gpu_memory_gb,omitempty"`
	MemorySizeGB           []uint64 `json:"memory_size_gb"`
	MemoryCount            []uint64 `json:"memory_count"`
	MemoryType             []string `json:"memory_type"`
	StorageSizeGB          *uint64  `json:"storage_size_gb,omitempty"`
	TotalTeraFlops         *uint64  `json:"total_tera_flops,omitempty"`
	NetworkBetweenMachines *string  `json:"network_between_machines,omitempty"`
}

// Clone returns a deep copy so a built request never shares backing arrays
// with the caller.
func (m MachineConfiguration) Clone() MachineConfiguration {
	out := m
	out.GPUModels = slices.Clone(m.GPUModels)
	out.GPUCount = slices.Clone(m.GPUCount)
	out.GPUMemoryGB = slices.Clone(m.GPUMemoryGB)
	out.MemorySizeGB = slices.Clone(m.MemorySizeGB)
	out.MemoryCount = slices.Clone(m.MemoryCount)
	out.MemoryType = slices.Clone(m.MemoryType)
	out.StorageSizeGB = clonePtr(m.StorageSizeGB)
	out.TotalTeraFlops = clonePtr(m.TotalTeraFlops)
	out.NetworkBetweenMachines = clonePtr(m.NetworkBetweenMachines)
	return out
}

// ClusterConfiguration pairs a machine with how many of it the cluster runs
// and the equivalent cloud instance.
type ClusterConfiguration struct {
	Machine MachineConfiguration `json:"machine"`
	// MachineCount must be greater than 0
	MachineCount uint64 `json:"machine_count"`
	// CloudInstanceName is the instance_name of a listed cloud instance
	CloudInstanceName string `json:"cloud_instance_name"`
	// CloudInstanceCount must be greater than 0
	CloudInstanceCount uint64 `json:"cloud_instance_count"`
}

// Clone returns a deep copy of the configuration entry
func (c ClusterConfiguration) Clone() ClusterConfiguration {
	out := c
	out.Machine = c.Machine.Clone()
	return out
}

func cloneConfigurations(in []ClusterConfiguration) []ClusterConfiguration {
	if in == nil {
		return nil
	}
	out := make([]ClusterConfiguration, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to v. Handy for the optional fields.
func Ptr[T any](v T) *T {
	return &v
}

// NumberOrString is either an unsigned integer or an opaque string such as a
// block hash. It encodes untagged: a bare JSON number or a bare JSON string.
type NumberOrString struct {
	num      uint64
	str      string
	isString bool
}

// BlockNumber identifies a block by number or by hash.
type BlockNumber = NumberOrString

// FromInt returns the integer form
func FromInt(n uint64) NumberOrString {
	return NumberOrString{num: n}
}

// FromString returns the string form
func FromString(s string) NumberOrString {
	return NumberOrString{str: s, isString: true}
}

// ParseNumberOrString returns the integer form when s is a base-10 unsigned
// integer and the string form otherwise.
func ParseNumberOrString(s string) NumberOrString {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return FromInt(n)
	}
	return FromString(s)
}

// IsString reports whether the value holds the string form
func (v NumberOrString) IsString() bool {
	return v.isString
}

// Int returns the integer form, if that is what the value holds
func (v NumberOrString) Int() (uint64, bool) {
	return v.num, !v.isString
}

// String renders the value the way it appears in a URL
func (v NumberOrString) String() string {
	if v.isString {
		return v.str
	}
	return strconv.FormatUint(v.num, 10)
}

// MarshalJSON implements json.Marshaler
func (v NumberOrString) MarshalJSON() ([]byte, error) {
	if v.isString {
		return json.Marshal(v.str)
	}
	return json.Marshal(v.num)
}

// UnmarshalJSON implements json.Unmarshaler
func (v *NumberOrString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FromString(s)
		return nil
	}
	var n uint64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected unsigned integer or string, got %s", data)
	}
	*v = FromInt(n)
	return nil
}

// ProofStatus is the lifecycle state of a proof: queued, proving, proved.
type ProofStatus string

const (
	// ProofStatusQueued means a prover announced it will prove the block
	ProofStatusQueued ProofStatus = "queued"
	// ProofStatusProving means proving has started
	ProofStatusProving ProofStatus = "proving"
	// ProofStatusProved means the proof was submitted
	ProofStatusProved ProofStatus = "proved"
)

// String returns the string representation of a ProofStatus
func (s ProofStatus) String() string {
	return string(s)
}

// Valid reports whether s is one of the three known states
func (s ProofStatus) Valid() bool {
	switch s {
	case ProofStatusQueued, ProofStatusProving, ProofStatusProved:
		return true
	}
	return false
}

// Next returns the following lifecycle state. Proved has none.
func (s ProofStatus) Next() (ProofStatus, bool) {
	switch s {
	case ProofStatusQueued:
		return ProofStatusProving, true
	case ProofStatusProving:
		return ProofStatusProved, true
	}
	return "", false
}

// IsTerminal reports whether no further transition exists
func (s ProofStatus) IsTerminal() bool {
	return s == ProofStatusProved
}

// UnmarshalJSON rejects states outside the lifecycle
func (s *ProofStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	status := ProofStatus(raw)
	if !status.Valid() {
		return fmt.Errorf("unknown proof status %q", raw)
	}
	*s = status
	return nil
}

// CloudInstance is a priced cloud machine type the service knows about.
type CloudInstance struct {
	ID                uint64  `json:"id"`
	Provider          string  `json:"provider"`
	InstanceName      string  `json:"instance_name"`
	Region            string  `json:"region"`
	HourlyPrice       float64 `json:"hourly_price"`
	CPUArchitecture   *string `json:"cpu_arch"`
	CPUCores          uint64  `json:"cpu_cores"`
	CPUEffectiveCores *uint64 `json:"cpu_effective_cores,omitempty"`
	CPUName           *string `json:"cpu_name,omitempty"`
	Memory            uint64  `json:"memory"`
	GPUCount          *uint64 `json:"gpu_count,omitempty"`
	GPUArchitecture   *string `json:"gpu_arch"`
	GPUName           *string `json:"gpu_name,omitempty"`
	GPUMemory         *uint64 `json:"gpu_memory,omitempty"`
	MoboName          *string `json:"mobo_name,omitempty"`
	DiskName          *string `json:"disk_name,omitempty"`
	DiskSpace         *uint64 `json:"disk_space,omitempty"`
	CreatedAt         string  `json:"created_at"`
	SnapshotDate      *string `json:"snapshot_date,omitempty"`
}

// ClusterMachine links a cluster version to one of its machines.
type ClusterMachine struct {
	ID                 uint64                `json:"id"`
	ClusterVersionID   *uint64               `json:"cluster_version_id,omitempty"`
	MachineID          *uint64               `json:"machine_id,omitempty"`
	MachineCount       uint64                `json:"machine_count"`
	CloudInstanceID    *uint64               `json:"cloud_instance_id,omitempty"`
	CloudInstanceCount uint64                `json:"cloud_instance_count"`
	Machine            *MachineConfiguration `json:"machine,omitempty"`
	CloudInstance      *CloudInstance        `json:"cloud_instance,omitempty"`
}
