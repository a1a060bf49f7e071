package config

import (
	"fmt"

	"github.com/s0up4200/ethproofs/ethproofs"
)

// Cluster returns the named cluster definition
func (c *Config) Cluster(name string) (ClusterConfig, error) {
	cluster, ok := c.Clusters[name]
	if !ok {
		return ClusterConfig{}, fmt.Errorf("cluster %q is not defined in the config", name)
	}
	return cluster, nil
}

// Machine returns the named single-machine definition
func (c *Config) Machine(name string) (MachineConfig, error) {
	machine, ok := c.Machines[name]
	if !ok {
		return MachineConfig{}, fmt.Errorf("machine %q is not defined in the config", name)
	}
	return machine, nil
}

// Request builds and validates the create request for the cluster. Empty
// optional strings are left unset.
func (c ClusterConfig) Request() (ethproofs.CreateClusterRequest, error) {
	b := ethproofs.NewCreateClusterRequestBuilder()
	if c.Nickname != "" {
		b.Nickname(c.Nickname)
	}
	if c.ZkvmVersionID != 0 {
		b.ZkvmVersionID(c.ZkvmVersionID)
	}
	if c.Description != "" {
		b.Description(c.Description)
	}
	if c.Hardware != "" {
		b.Hardware(c.Hardware)
	}
	if c.CycleType != "" {
		b.CycleType(c.CycleType)
	}
	if c.ProofType != "" {
		b.ProofType(c.ProofType)
	}
	if c.Configuration != nil {
		entries := make([]ethproofs.ClusterConfiguration, len(c.Configuration))
		for i, e := range c.Configuration {
			entries[i] = ethproofs.ClusterConfiguration{
				Machine:            e.Machine.Configuration(),
				MachineCount:       e.MachineCount,
				CloudInstanceName:  e.CloudInstanceName,
				CloudInstanceCount: e.CloudInstanceCount,
			}
		}
		b.Configuration(entries)
	}
	return b.Build()
}

// Request builds and validates the create request for the machine
func (m MachineConfig) Request() (ethproofs.CreateSingleMachineRequest, error) {
	b := ethproofs.NewCreateSingleMachineRequestBuilder().
		Machine(m.Machine.Configuration())
	if m.Nickname != "" {
		b.Nickname(m.Nickname)
	}
	if m.ZkvmVersionID != 0 {
		b.ZkvmVersionID(m.ZkvmVersionID)
	}
	if m.Description != "" {
		b.Description(m.Description)
	}
	if m.Hardware != "" {
		b.Hardware(m.Hardware)
	}
	if m.CycleType != "" {
		b.CycleType(m.CycleType)
	}
	if m.ProofType != "" {
		b.ProofType(m.ProofType)
	}
	if m.CloudInstanceName != "" {
		b.CloudInstanceName(m.CloudInstanceName)
	}
	return b.Build()
}

// Configuration converts the machine into its request form
func (s MachineDefinition) Configuration() ethproofs.MachineConfiguration {
	return ethproofs.MachineConfiguration{
		CPUModel:               s.CPUModel,
		CPUCores:               s.CPUCores,
		GPUModels:              s.GPUModels,
		GPUCount:               s.GPUCount,
		GPUMemoryGB:            s.GPUMemoryGB,
		MemorySizeGB:           s.MemorySizeGB,
		MemoryCount:            s.MemoryCount,
		MemoryType:             s.MemoryType,
		StorageSizeGB:          s.StorageSizeGB,
		TotalTeraFlops:         s.TotalTeraFlops,
		NetworkBetweenMachines: s.NetworkBetweenMachines,
	}
}
