package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mdip/intelligence-platform/internal/core/domain"
	"github.com/mdip/intelligence-platform/internal/core/ports"
)

type IncidentService struct {
	repo   ports.IncidentRepository
	logger zerolog.Logger
}

func NewIncidentService(repo ports.IncidentRepository, logger zerolog.Logger) *IncidentService {
	return &IncidentService{repo: repo, logger: logger}
}

// Create reports a new incident. A missing severity defaults to Medium,
// matching the legacy import behaviour; an unknown one is rejected.
func (s *IncidentService) Create(ctx context.Context, input ports.CreateIncidentInput) (*domain.Incident, error) {
	severity := domain.Severity(input.Severity)
	if input.Severity == "" {
		severity = domain.SeverityMedium
	}
	if !severity.Valid() {
		return nil, domain.ErrInvalidSeverity
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	incident := &domain.Incident{
		ID:           id,
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Severity:     severity,
		DateReported: time.Now().UTC(),
		ReportedBy:   input.ReportedBy,
	}

	if err := s.repo.Insert(ctx, incident); err != nil {
		s.logger.Error().Err(err).Msg("failed to insert incident")
		return nil, err
	}

	s.logger.Info().Int64("incident_id", incident.ID).Str("severity", string(severity)).Msg("incident reported")
	return incident, nil
}

func (s *IncidentService) Get(ctx context.Context, id int64) (*domain.Incident, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *IncidentService) List(ctx context.Context, filter ports.IncidentFilter) ([]domain.Incident, error) {
	for _, sev := range filter.Severities {
		if !sev.Valid() {
			return nil, domain.ErrInvalidSeverity
		}
	}
	return s.repo.List(ctx, filter)
}

// Update replaces the mutable fields of an existing incident.
func (s *IncidentService) Update(ctx context.Context, input ports.UpdateIncidentInput) (*domain.Incident, error) {
	severity := domain.Severity(input.Severity)
	if !severity.Valid() {
		return nil, domain.ErrInvalidSeverity
	}

	incident, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	incident.Title = strings.TrimSpace(input.Title)
	incident.Description = input.Description
	incident.Severity = severity

	if err := s.repo.Update(ctx, incident); err != nil {
		return nil, err
	}
	return incident, nil
}

func (s *IncidentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("incident_id", id).Msg("incident deleted")
	return nil
}

// Stats aggregates severity counts and the recent reporting rate for the
// dashboard charts.
func (s *IncidentService) Stats(ctx context.Context, now time.Time) (*ports.IncidentStats, error) {
	incidents, err := s.repo.List(ctx, ports.IncidentFilter{})
	if err != nil {
		return nil, err
	}

	stats := &ports.IncidentStats{
		BySeverity: make(map[domain.Severity]int64, len(domain.Severities)),
	}
	for _, sev := range domain.Severities {
		stats.BySeverity[sev] = 0
	}

	cutoff := now.AddDate(0, 0, -7)
	for i := range incidents {
		stats.Total++
		stats.BySeverity[incidents[i].Severity]++
		if incidents[i].DateReported.After(cutoff) {
			stats.Last7Days++
		}
	}
	return stats, nil
}
