package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API      API                      `mapstructure:"api"`
	Logging  LoggingConfig            `mapstructure:"logging"`
	Filter   FilterConfig             `mapstructure:"filter"`
	Batch    BatchConfig              `mapstructure:"batch"`
	Clusters map[string]ClusterConfig `mapstructure:"clusters"`
	Machines map[string]MachineConfig `mapstructure:"machines"`
}

// API holds the ethproofs connection details
type API struct {
	Key string `mapstructure:"key"`
	// Environment is production, staging or custom
	Environment string        `mapstructure:"environment"`
	URL         string        `mapstructure:"url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
}

// Environments
const (
	EnvironmentProduction = "production"
	EnvironmentStaging    = "staging"
	EnvironmentCustom     = "custom"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// FilterConfig contains named filter expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// BatchConfig controls the concurrent batch commands
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// ProverConfig holds the fields shared by clusters and single machines
type ProverConfig struct {
	Nickname      string `mapstructure:"nickname"`
	Description   string `mapstructure:"description"`
	ZkvmVersionID uint64 `mapstructure:"zkvm_version_id"`
	Hardware      string `mapstructure:"hardware"`
	CycleType     string `mapstructure:"cycle_type"`
	ProofType     string `mapstructure:"proof_type"`
}

// ClusterConfig describes a cluster that can be registered with
// `clusters create --from <name>`
type ClusterConfig struct {
	ProverConfig  `mapstructure:",squash"`
	Configuration []ClusterEntry `mapstructure:"configuration"`
}

// ClusterEntry is one machine type of a cluster
type ClusterEntry struct {
	Machine            MachineDefinition `mapstructure:"machine"`
	MachineCount       uint64            `mapstructure:"machine_count"`
	CloudInstanceName  string            `mapstructure:"cloud_instance_name"`
	CloudInstanceCount uint64            `mapstructure:"cloud_instance_count"`
}

// MachineConfig describes a single machine that can be registered with
// `machines create --from <name>`
type MachineConfig struct {
	ProverConfig      `mapstructure:",squash"`
	Machine           MachineDefinition `mapstructure:"machine"`
	CloudInstanceName string            `mapstructure:"cloud_instance_name"`
}

// MachineDefinition is the hardware of one machine
type MachineDefinition struct {
	CPUModel               string   `mapstructure:"cpu_model"`
	CPUCores               uint64   `mapstructure:"cpu_cores"`
	GPUModels              []string `mapstructure:"gpu_models"`
	GPUCount               []uint64 `mapstructure:"gpu_count"`
	GPUMemoryGB            []uint64 `mapstructure:"gpu_memory_gb"`
	MemorySizeGB           []uint64 `mapstructure:"memory_size_gb"`
	MemoryCount            []uint64 `mapstructure:"memory_count"`
	MemoryType             []string `mapstructure:"memory_type"`
	StorageSizeGB          *uint64  `mapstructure:"storage_size_gb"`
	TotalTeraFlops         *uint64  `mapstructure:"total_tera_flops"`
	NetworkBetweenMachines *string  `mapstructure:"network_between_machines"`
}
