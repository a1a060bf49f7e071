package ethproofs

// ListCloudInstancesRequest lists the priced cloud instances, optionally
// for one provider. An empty Provider lists every provider.
type ListCloudInstancesRequest struct {
	getRequest
	Provider string `json:"provider,omitempty"`
}

// Endpoint implements Request
func (r ListCloudInstancesRequest) Endpoint() string {
	if r.Provider == "" {
		return "/cloud-instances"
	}
	return appendQuery("/cloud-instances", "provider", r.Provider)
}

func (ListCloudInstancesRequest) expects(ListCloudInstancesResponse) {}

// ListCloudInstancesResponse is a bare JSON array of instances.
type ListCloudInstancesResponse []CloudInstance

// ByName returns the instance with the given instance_name
func (r ListCloudInstancesResponse) ByName(name string) (CloudInstance, bool) {
	for _, instance := range r {
		if instance.InstanceName == name {
			return instance, true
		}
	}
	return CloudInstance{}, false
}
