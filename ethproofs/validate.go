package ethproofs

import (
	"fmt"
	"unicode/utf8"
)

// Wire contract limits.
const (
	MaxNicknameLength    = 50
	MaxDescriptionLength = 200
	MaxHardwareLength    = 200
	MaxModelNameLength   = 200
	MaxNetworkLength     = 500
)

func checkMaxLength(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return invalidField(field, fmt.Sprintf("must be at most %d characters", limit))
	}
	return nil
}

func checkOptionalMaxLength(field string, value *string, limit int) error {
	if value == nil {
		return nil
	}
	return checkMaxLength(field, *value, limit)
}

func checkOptionalNonEmpty(field string, value *string) error {
	if value != nil && *value == "" {
		return invalidField(field, "must not be empty")
	}
	return nil
}

func checkPositive(field string, value uint64) error {
	if value == 0 {
		return invalidField(field, "must be greater than 0")
	}
	return nil
}

func checkOptionalPositive(field string, value *uint64) error {
	if value == nil {
		return nil
	}
	return checkPositive(field, *value)
}

func indexed(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}

// validateMachine checks a single machine description: CPU, the parallel GPU
// and memory arrays, and the optional descriptors.
func validateMachine(m MachineConfiguration) error {
	if err := checkMaxLength("cpu_model", m.CPUModel, MaxModelNameLength); err != nil {
		return err
	}
	if err := checkPositive("cpu_cores", m.CPUCores); err != nil {
		return err
	}

	gpuLen := len(m.GPUModels)
	if len(m.GPUCount) != gpuLen || len(m.GPUMemoryGB) != gpuLen {
		return malformedRequest("gpu_models, gpu_count, and gpu_memory_gb must have the same length")
	}
	for i := range gpuLen {
		if err := checkMaxLength(indexed("gpu_models", i), m.GPUModels[i], MaxModelNameLength); err != nil {
			return err
		}
		if err := checkPositive(indexed("gpu_count", i), m.GPUCount[i]); err != nil {
			return err
		}
		if err := checkPositive(indexed("gpu_memory_gb", i), m.GPUMemoryGB[i]); err != nil {
			return err
		}
	}

	memLen := len(m.MemorySizeGB)
	if len(m.MemoryCount) != memLen || len(m.MemoryType) != memLen {
		return malformedRequest("memory_size_gb, memory_count, and memory_type must have the same length")
	}
	if memLen == 0 {
		return malformedRequest("memory_size_gb, memory_count, and memory_type must not be empty")
	}
	for i := range memLen {
		if err := checkPositive(indexed("memory_size_gb", i), m.MemorySizeGB[i]); err != nil {
			return err
		}
		if err := checkPositive(indexed("memory_count", i), m.MemoryCount[i]); err != nil {
			return err
		}
		if err := checkMaxLength(indexed("memory_type", i), m.MemoryType[i], MaxModelNameLength); err != nil {
			return err
		}
	}

	if err := checkOptionalPositive("storage_size_gb", m.StorageSizeGB); err != nil {
		return err
	}
	if err := checkOptionalPositive("total_tera_flops", m.TotalTeraFlops); err != nil {
		return err
	}
	return checkOptionalMaxLength("network_between_machines", m.NetworkBetweenMachines, MaxNetworkLength)
}

// validateClusterConfiguration checks the counts of one configuration entry
// and then its machine.
func validateClusterConfiguration(c ClusterConfiguration) error {
	if err := checkPositive("machine_count", c.MachineCount); err != nil {
		return err
	}
	if err := checkPositive("cloud_instance_count", c.CloudInstanceCount); err != nil {
		return err
	}
	return validateMachine(c.Machine)
}

// prover holds the fields shared by clusters and single machines.
type prover struct {
	nickname      *string
	description   *string
	zkvmVersionID *uint64
	hardware      *string
	cycleType     *string
	proofType     *string
}

// validateRequired reports the first missing required field among the
// shared prover fields.
func (p *prover) validateRequired() error {
	if p.nickname == nil {
		return missingField("nickname")
	}
	if p.zkvmVersionID == nil {
		return missingField("zkvm_version_id")
	}
	return nil
}

// validateFields checks the constraints of the shared prover fields. The
// required fields must already be known to be present.
func (p *prover) validateFields() error {
	if err := checkMaxLength("nickname", *p.nickname, MaxNicknameLength); err != nil {
		return err
	}
	if err := checkOptionalMaxLength("description", p.description, MaxDescriptionLength); err != nil {
		return err
	}
	if err := checkOptionalMaxLength("hardware", p.hardware, MaxHardwareLength); err != nil {
		return err
	}
	if err := checkOptionalNonEmpty("cycle_type", p.cycleType); err != nil {
		return err
	}
	if err := checkOptionalNonEmpty("proof_type", p.proofType); err != nil {
		return err
	}
	return checkPositive("zkvm_version_id", *p.zkvmVersionID)
}
