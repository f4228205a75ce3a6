package ports

import (
	"context"
	"time"

	"github.com/mdip/intelligence-platform/internal/core/domain"
)

// IncidentRepository persists security incident records.
type IncidentRepository interface {
	Insert(ctx context.Context, incident *domain.Incident) error
	FindByID(ctx context.Context, id int64) (*domain.Incident, error)
	List(ctx context.Context, filter IncidentFilter) ([]domain.Incident, error)
	Update(ctx context.Context, incident *domain.Incident) error
	Delete(ctx context.Context, id int64) error
	NextID(ctx context.Context) (int64, error)
}

// IncidentFilter narrows List results.
type IncidentFilter struct {
	Severities []domain.Severity
	Limit      int64
}

// CreateIncidentInput carries the fields accepted when reporting an incident.
type CreateIncidentInput struct {
	Title       string
	Description string
	Severity    string
	ReportedBy  int64
}

// UpdateIncidentInput carries the mutable incident fields.
type UpdateIncidentInput struct {
	ID          int64
	Title       string
	Description string
	Severity    string
}

// IncidentStats summarises incidents for the dashboard charts.
type IncidentStats struct {
	Total      int64                     `json:"total"`
	BySeverity map[domain.Severity]int64 `json:"by_severity"`
	Last7Days  int64                     `json:"last_7_days"`
}

// IncidentService defines use-case operations for incidents.
type IncidentService interface {
	Create(ctx context.Context, input CreateIncidentInput) (*domain.Incident, error)
	Get(ctx context.Context, id int64) (*domain.Incident, error)
	List(ctx context.Context, filter IncidentFilter) ([]domain.Incident, error)
	Update(ctx context.Context, input UpdateIncidentInput) (*domain.Incident, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, now time.Time) (*IncidentStats, error)
}
