package ethproofs

import "encoding/json"

// CreateClusterRequest registers a multi-machine proving cluster. Obtain it
// from CreateClusterRequestBuilder.Build; a value that did not come from
// Build is rejected before anything is sent.
type CreateClusterRequest struct {
	postRequest
	proverInfo
	configuration []ClusterConfiguration
	built         bool
}

// Configuration returns a copy of the cluster configuration
func (r CreateClusterRequest) Configuration() []ClusterConfiguration {
	return cloneConfigurations(r.configuration)
}

// Endpoint implements Request
func (CreateClusterRequest) Endpoint() string { return "/clusters" }

// Body implements Request
func (r CreateClusterRequest) Body() (json.RawMessage, error) {
	if !r.built {
		return nil, malformedRequest("request was not built")
	}
	return encodeBody(r)
}

func (CreateClusterRequest) expects(CreateClusterResponse) {}

// MarshalJSON implements json.Marshaler
func (r CreateClusterRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		proverWire
		Configuration []ClusterConfiguration `json:"configuration"`
	}{r.wire(), r.configuration})
}

// CreateClusterRequestBuilder stages the fields of a CreateClusterRequest and
// validates them all in Build.
//
//	req, err := ethproofs.NewCreateClusterRequestBuilder().
//		Nickname("my-cluster").
//		ZkvmVersionID(1).
//		ProofType("Groth16").
//		AddConfiguration(ethproofs.ClusterConfiguration{...}).
//		Build()
type CreateClusterRequestBuilder struct {
	prover
	configuration    []ClusterConfiguration
	configurationSet bool
}

// NewCreateClusterRequestBuilder creates an empty builder
func NewCreateClusterRequestBuilder() *CreateClusterRequestBuilder {
	return &CreateClusterRequestBuilder{}
}

// Nickname sets the display name (required, at most 50 characters)
func (b *CreateClusterRequestBuilder) Nickname(nickname string) *CreateClusterRequestBuilder {
	b.nickname = &nickname
	return b
}

// Description sets the description (at most 200 characters)
func (b *CreateClusterRequestBuilder) Description(description string) *CreateClusterRequestBuilder {
	b.description = &description
	return b
}

// ZkvmVersionID sets the zkVM version (required, greater than 0)
func (b *CreateClusterRequestBuilder) ZkvmVersionID(id uint64) *CreateClusterRequestBuilder {
	b.zkvmVersionID = &id
	return b
}

// Hardware sets the free-form hardware description (at most 200 characters).
//
// Deprecated: describe machines through Configuration instead.
func (b *CreateClusterRequestBuilder) Hardware(hardware string) *CreateClusterRequestBuilder {
	b.hardware = &hardware
	return b
}

// CycleType sets the cycle type (non-empty)
func (b *CreateClusterRequestBuilder) CycleType(cycleType string) *CreateClusterRequestBuilder {
	b.cycleType = &cycleType
	return b
}

// ProofType sets the proof system, e.g. Groth16 or PlonK (non-empty)
func (b *CreateClusterRequestBuilder) ProofType(proofType string) *CreateClusterRequestBuilder {
	b.proofType = &proofType
	return b
}

// Configuration replaces the cluster configuration (required, non-empty)
func (b *CreateClusterRequestBuilder) Configuration(config []ClusterConfiguration) *CreateClusterRequestBuilder {
	b.configuration = config
	b.configurationSet = true
	return b
}

// AddConfiguration appends one configuration entry
func (b *CreateClusterRequestBuilder) AddConfiguration(config ClusterConfiguration) *CreateClusterRequestBuilder {
	b.configuration = append(b.configuration, config)
	b.configurationSet = true
	return b
}

// Build validates the staged fields and returns the frozen request. The
// first failing rule is reported as a *ValidationError.
func (b *CreateClusterRequestBuilder) Build() (CreateClusterRequest, error) {
	if err := b.validateRequired(); err != nil {
		return CreateClusterRequest{}, err
	}
	if !b.configurationSet {
		return CreateClusterRequest{}, missingField("configuration")
	}
	if err := b.validateFields(); err != nil {
		return CreateClusterRequest{}, err
	}
	if len(b.configuration) == 0 {
		return CreateClusterRequest{}, invalidField("configuration", "must not be empty")
	}
	for _, config := range b.configuration {
		if err := validateClusterConfiguration(config); err != nil {
			return CreateClusterRequest{}, err
		}
	}

	return CreateClusterRequest{
		proverInfo:    b.freeze(),
		configuration: cloneConfigurations(b.configuration),
		built:         true,
	}, nil
}

// CreateClusterResponse carries the index of the new cluster.
type CreateClusterResponse struct {
	ID uint64 `json:"id"`
}

// ListClustersRequest lists the clusters of the authenticated team.
type ListClustersRequest struct {
	getRequest
}

// Endpoint implements Request
func (ListClustersRequest) Endpoint() string { return "/clusters" }

func (ListClustersRequest) expects(ListClustersResponse) {}

// ListClustersResponse wraps the listed clusters.
type ListClustersResponse struct {
	Clusters []ClusterData `json:"clusters"`
}

// ClusterData is one listed cluster. The nullable text fields are sent as
// null rather than omitted.
type ClusterData struct {
	ID          *uint64       `json:"id"`
	Nickname    string        `json:"nickname"`
	Description *string       `json:"description"`
	Hardware    *string       `json:"hardware"`
	CycleType   *string       `json:"cycle_type"`
	ProofType   *string       `json:"proof_type"`
	Machines    []MachineData `json:"machines"`
}

// MachineData is one machine entry of a listed cluster.
type MachineData struct {
	Machine            MachineConfiguration `json:"machine"`
	MachineCount       uint64               `json:"machine_count"`
	CloudInstance      CloudInstance        `json:"cloud_instance"`
	CloudInstanceCount uint64               `json:"cloud_instance_count"`
}

// ListActiveClustersForATeamRequest lists the active clusters of a team.
type ListActiveClustersForATeamRequest struct {
	getRequest
	// TeamID is the team UUID
	TeamID string `json:"team_id"`
}

// Endpoint implements Request
func (r ListActiveClustersForATeamRequest) Endpoint() string {
	return appendQuery("/clusters/active", "team_id", r.TeamID)
}

func (ListActiveClustersForATeamRequest) expects(ListActiveClustersForATeamResponse) {}

// ListActiveClustersForATeamResponse is a bare JSON array of cluster IDs.
type ListActiveClustersForATeamResponse []ClusterID

// ClusterID is the index of a cluster.
type ClusterID struct {
	ID uint64 `json:"id"`
}
