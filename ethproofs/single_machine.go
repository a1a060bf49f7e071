package ethproofs

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// CreateSingleMachineRequest registers a prover that runs on one machine.
// Obtain it from CreateSingleMachineRequestBuilder.Build; a value that did
// not come from Build is rejected before anything is sent.
type CreateSingleMachineRequest struct {
	postRequest
	proverInfo
	machine           MachineConfiguration
	cloudInstanceName string
	built             bool
}

// Machine returns a copy of the machine configuration
func (r CreateSingleMachineRequest) Machine() MachineConfiguration {
	return r.machine.Clone()
}

// CloudInstanceName is the instance_name of the equivalent cloud instance
func (r CreateSingleMachineRequest) CloudInstanceName() string {
	return r.cloudInstanceName
}

// Endpoint implements Request
func (CreateSingleMachineRequest) Endpoint() string { return "/single-machine" }

// Body implements Request
func (r CreateSingleMachineRequest) Body() (json.RawMessage, error) {
	if !r.built {
		return nil, malformedRequest("request was not built")
	}
	return encodeBody(r)
}

func (CreateSingleMachineRequest) expects(CreateSingleMachineResponse) {}

// MarshalJSON implements json.Marshaler
func (r CreateSingleMachineRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		proverWire
		Machine           MachineConfiguration `json:"machine"`
		CloudInstanceName string               `json:"cloud_instance_name"`
	}{r.wire(), r.machine, r.cloudInstanceName})
}

// CreateSingleMachineRequestBuilder stages and validates a
// CreateSingleMachineRequest with the same field rules as clusters.
type CreateSingleMachineRequestBuilder struct {
	prover
	machine           *MachineConfiguration
	cloudInstanceName *string
}

// NewCreateSingleMachineRequestBuilder creates an empty builder
func NewCreateSingleMachineRequestBuilder() *CreateSingleMachineRequestBuilder {
	return &CreateSingleMachineRequestBuilder{}
}

// Nickname sets the display name (required, at most 50 characters)
func (b *CreateSingleMachineRequestBuilder) Nickname(nickname string) *CreateSingleMachineRequestBuilder {
	b.nickname = &nickname
	return b
}

// Description sets the description (at most 200 characters)
func (b *CreateSingleMachineRequestBuilder) Description(description string) *CreateSingleMachineRequestBuilder {
	b.description = &description
	return b
}

// ZkvmVersionID sets the zkVM version (required, greater than 0)
func (b *CreateSingleMachineRequestBuilder) ZkvmVersionID(id uint64) *CreateSingleMachineRequestBuilder {
	b.zkvmVersionID = &id
	return b
}

// Hardware sets the free-form hardware description (at most 200 characters).
//
// Deprecated: describe the machine through Machine instead.
func (b *CreateSingleMachineRequestBuilder) Hardware(hardware string) *CreateSingleMachineRequestBuilder {
	b.hardware = &hardware
	return b
}

// CycleType sets the cycle type (non-empty)
func (b *CreateSingleMachineRequestBuilder) CycleType(cycleType string) *CreateSingleMachineRequestBuilder {
	b.cycleType = &cycleType
	return b
}

// ProofType sets the proof system (non-empty)
func (b *CreateSingleMachineRequestBuilder) ProofType(proofType string) *CreateSingleMachineRequestBuilder {
	b.proofType = &proofType
	return b
}

// Machine sets the machine configuration (required)
func (b *CreateSingleMachineRequestBuilder) Machine(machine MachineConfiguration) *CreateSingleMachineRequestBuilder {
	b.machine = &machine
	return b
}

// CloudInstanceName sets the equivalent cloud instance (required, non-empty)
func (b *CreateSingleMachineRequestBuilder) CloudInstanceName(name string) *CreateSingleMachineRequestBuilder {
	b.cloudInstanceName = &name
	return b
}

// Build validates the staged fields and returns the frozen request.
func (b *CreateSingleMachineRequestBuilder) Build() (CreateSingleMachineRequest, error) {
	if err := b.validateRequired(); err != nil {
		return CreateSingleMachineRequest{}, err
	}
	if b.machine == nil {
		return CreateSingleMachineRequest{}, missingField("machine")
	}
	if b.cloudInstanceName == nil {
		return CreateSingleMachineRequest{}, missingField("cloud_instance_name")
	}
	if err := b.validateFields(); err != nil {
		return CreateSingleMachineRequest{}, err
	}
	if *b.cloudInstanceName == "" {
		return CreateSingleMachineRequest{}, invalidField("cloud_instance_name", "must not be empty")
	}
	if err := validateMachine(*b.machine); err != nil {
		return CreateSingleMachineRequest{}, err
	}

	return CreateSingleMachineRequest{
		proverInfo:        b.freeze(),
		machine:           b.machine.Clone(),
		cloudInstanceName: *b.cloudInstanceName,
		built:             true,
	}, nil
}

// CreateSingleMachineResponse carries the ID of the new machine. On the
// wire it is a bare JSON number.
type CreateSingleMachineResponse struct {
	MachineID uint64
}

// MarshalJSON implements json.Marshaler
func (r CreateSingleMachineResponse) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatUint(r.MachineID, 10)), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (r *CreateSingleMachineResponse) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return &json.UnmarshalTypeError{Value: "null", Type: typeOfUint64}
	}
	return json.Unmarshal(data, &r.MachineID)
}
