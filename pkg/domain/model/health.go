package model

import "github.com/m-mizutani/scout/pkg/domain/types"

// HealthyStatus is the only status the service reports while it can answer at all
const HealthyStatus = "healthy"

// HealthStatus is the body of GET /health
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// NewHealthStatus describes the running build
func NewHealthStatus() *HealthStatus {
	return &HealthStatus{
		Status:  HealthyStatus,
		Service: types.ServiceName,
		Version: types.Version,
	}
}
