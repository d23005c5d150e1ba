package domain

// ProvisionRequest is the body of a PUT /v2/service_instances/{instance_id}
// call.
type ProvisionRequest struct {
	PlanID           string `json:"plan_id"`
	OrganizationGUID string `json:"organization_guid"`
	SpaceGUID        string `json:"space_guid"`
}

// BindRequest is the body of a PUT /v2/service_bindings/{binding_id} call.
type BindRequest struct {
	ServiceInstanceID string `json:"service_instance_id"`
}

// ProvisioningResponse is the shape brokers are expected to answer a
// provision call with. The client does not enforce it; it is provided for
// callers decoding the returned document.
type ProvisioningResponse struct {
	DashboardURL string `json:"dashboard_url,omitempty"`
}

// BindingResponse is the shape brokers are expected to answer a bind call
// with.
type BindingResponse struct {
	Credentials map[string]interface{} `json:"credentials"`
}
