package api

import (
	"context"

	"findex/internal/deps"
)

// Health states.
const (
	HealthOK       = "ok"
	HealthDegraded = "degraded"
)

// HealthService reports dependency readiness.
type HealthService struct {
	requirements   []deps.Requirement
	version        string
	journalEnabled bool
}

// NewHealthService constructs a HealthService.
func NewHealthService(requirements []deps.Requirement, version string, journalEnabled bool) *HealthService {
	return &HealthService{requirements: requirements, version: version, journalEnabled: journalEnabled}
}

// Health checks required binaries. Missing required binaries degrade the status.
func (s *HealthService) Health(_ context.Context) HealthResponse {
	statuses := deps.CheckBinaries(s.requirements)
	status := HealthOK
	if len(deps.MissingRequired(statuses)) > 0 {
		status = HealthDegraded
	}
	return HealthResponse{
		Status:       status,
		Version:      s.version,
		Dependencies: statuses,
		Journal:      s.journalEnabled,
	}
}
