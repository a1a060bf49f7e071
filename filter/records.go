package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/s0up4200/ethproofs/ethproofs"
)

// Proof exposes an ethproofs.ProofRecord to filter expressions
type Proof ethproofs.ProofRecord

// Cluster exposes an ethproofs.ClusterData to filter expressions
type Cluster ethproofs.ClusterData

// Instance exposes an ethproofs.CloudInstance to filter expressions
type Instance ethproofs.CloudInstance

// Proofs converts listed proofs into filter records
func Proofs(proofs []ethproofs.ProofRecord) []Proof {
	out := make([]Proof, len(proofs))
	for i, p := range proofs {
		out[i] = Proof(p)
	}
	return out
}

// Clusters converts listed clusters into filter records
func Clusters(clusters []ethproofs.ClusterData) []Cluster {
	out := make([]Cluster, len(clusters))
	for i, c := range clusters {
		out[i] = Cluster(c)
	}
	return out
}

// Instances converts listed cloud instances into filter records
func Instances(instances []ethproofs.CloudInstance) []Instance {
	out := make([]Instance, len(instances))
	for i, inst := range instances {
		out[i] = Instance(inst)
	}
	return out
}

// Fields implements Record
func (p Proof) Fields() map[string]any {
	status := string(p.ProofStatus)
	fields := map[string]any{
		"BlockNumber":      p.BlockNumber,
		"ClusterID":        p.ClusterID,
		"ProofID":          p.ProofID,
		"Status":           status,
		"ProvingCycles":    value(p.ProvingCycles),
		"ProvingTime":      value(p.ProvingTime),
		"SizeBytes":        value(p.SizeBytes),
		"TeamID":           p.TeamID,
		"ClusterVersionID": p.ClusterVersionID,
		"CreatedAt":        parseTime(p.CreatedAt),
		"UpdatedAt":        parseTime(p.UpdatedAt),
		"QueuedAt":         parseTime(value(p.QueuedTimestamp)),
		"ProvingAt":        parseTime(value(p.ProvingTimestamp)),
		"ProvedAt":         parseTime(value(p.ProvedTimestamp)),
		"Team":             "",
		"Cluster":          "",
		"Zkvm":             "",
		"hasStatus": func(s string) bool {
			return strings.EqualFold(status, s)
		},
		"isProved": func() bool {
			return p.ProofStatus == ethproofs.ProofStatusProved
		},
	}
	if p.Team != nil {
		fields["Team"] = p.Team.Name
	}
	if p.ClusterVersion != nil {
		fields["Cluster"] = value(p.ClusterVersion.Cluster.Nickname)
		fields["Zkvm"] = p.ClusterVersion.ZkvmVersion.Zkvm.Name
	}
	return fields
}

func (p Proof) String() string {
	return fmt.Sprintf("proof %d (block %d)", p.ProofID, p.BlockNumber)
}

// Fields implements Record
func (c Cluster) Fields() map[string]any {
	var machines, instances, gpus, cpuCores uint64
	var hourlyCost float64
	var gpuModels []string

	for _, m := range c.Machines {
		machines += m.MachineCount
		instances += m.CloudInstanceCount
		cpuCores += m.Machine.CPUCores * m.MachineCount
		for i, model := range m.Machine.GPUModels {
			if i < len(m.Machine.GPUCount) {
				gpus += m.Machine.GPUCount[i] * m.MachineCount
			}
			gpuModels = append(gpuModels, model)
		}
		hourlyCost += m.CloudInstance.HourlyPrice * float64(m.CloudInstanceCount)
	}

	return map[string]any{
		"ID":             value(c.ID),
		"Nickname":       c.Nickname,
		"Description":    value(c.Description),
		"Hardware":       value(c.Hardware),
		"CycleType":      value(c.CycleType),
		"ProofType":      value(c.ProofType),
		"Machines":       machines,
		"CloudInstances": instances,
		"GPUs":           gpus,
		"CPUCores":       cpuCores,
		"HourlyCost":     hourlyCost,
		"hasGPU": func(model string) bool {
			for _, m := range gpuModels {
				if strings.Contains(strings.ToLower(m), strings.ToLower(model)) {
					return true
				}
			}
			return false
		},
	}
}

func (c Cluster) String() string {
	return fmt.Sprintf("cluster %q", c.Nickname)
}

// Fields implements Record
func (i Instance) Fields() map[string]any {
	return map[string]any{
		"ID":           i.ID,
		"Provider":     i.Provider,
		"InstanceName": i.InstanceName,
		"Region":       i.Region,
		"HourlyPrice":  i.HourlyPrice,
		"CPUArch":      value(i.CPUArchitecture),
		"CPUCores":     i.CPUCores,
		"CPUName":      value(i.CPUName),
		"Memory":       i.Memory,
		"GPUCount":     value(i.GPUCount),
		"GPUArch":      value(i.GPUArchitecture),
		"GPUName":      value(i.GPUName),
		"GPUMemory":    value(i.GPUMemory),
		"DiskSpace":    value(i.DiskSpace),
		"CreatedAt":    parseTime(i.CreatedAt),
	}
}

func (i Instance) String() string {
	return fmt.Sprintf("instance %s/%s", i.Provider, i.InstanceName)
}

func value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// parseTime accepts the timestamp layouts the service emits. Unparseable or
// empty values yield the zero time.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
