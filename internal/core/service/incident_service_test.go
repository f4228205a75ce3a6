package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mdip/intelligence-platform/internal/core/domain"
	"github.com/mdip/intelligence-platform/internal/core/ports"
)

type stubIncidentRepo struct {
	incidents map[int64]*domain.Incident
	nextID    int64
}

func newStubIncidentRepo() *stubIncidentRepo {
	return &stubIncidentRepo{incidents: make(map[int64]*domain.Incident)}
}

func (r *stubIncidentRepo) NextID(_ context.Context) (int64, error) {
	r.nextID++
	return r.nextID, nil
}

func (r *stubIncidentRepo) Insert(_ context.Context, incident *domain.Incident) error {
	clone := *incident
	r.incidents[incident.ID] = &clone
	return nil
}

func (r *stubIncidentRepo) FindByID(_ context.Context, id int64) (*domain.Incident, error) {
	if inc, ok := r.incidents[id]; ok {
		clone := *inc
		return &clone, nil
	}
	return nil, domain.ErrIncidentNotFound
}

func (r *stubIncidentRepo) List(_ context.Context, filter ports.IncidentFilter) ([]domain.Incident, error) {
	out := make([]domain.Incident, 0, len(r.incidents))
	for _, inc := range r.incidents {
		out = append(out, *inc)
	}
	return out, nil
}

func (r *stubIncidentRepo) Update(_ context.Context, incident *domain.Incident) error {
	if _, ok := r.incidents[incident.ID]; !ok {
		return domain.ErrIncidentNotFound
	}
	clone := *incident
	r.incidents[incident.ID] = &clone
	return nil
}

func (r *stubIncidentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.incidents[id]; !ok {
		return domain.ErrIncidentNotFound
	}
	delete(r.incidents, id)
	return nil
}

func TestIncidentService_Create(t *testing.T) {
	repo := newStubIncidentRepo()
	svc := NewIncidentService(repo, zerolog.Nop())

	incident, err := svc.Create(context.Background(), ports.CreateIncidentInput{
		Title:       "  Phishing campaign  ",
		Description: "Mass phishing emails targeting finance",
		Severity:    "High",
		ReportedBy:  2,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if incident.ID != 1 {
		t.Fatalf("expected id 1, got %d", incident.ID)
	}
	if incident.Title != "Phishing campaign" {
		t.Fatalf("expected trimmed title, got %q", incident.Title)
	}
	if incident.Severity != domain.SeverityHigh {
		t.Fatalf("unexpected severity: %s", incident.Severity)
	}
	if incident.DateReported.IsZero() {
		t.Fatalf("expected date_reported to be set")
	}
}

func TestIncidentService_Create_SeverityHandling(t *testing.T) {
	repo := newStubIncidentRepo()
	svc := NewIncidentService(repo, zerolog.Nop())

	incident, err := svc.Create(context.Background(), ports.CreateIncidentInput{Title: "x", Description: "y"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if incident.Severity != domain.SeverityMedium {
		t.Fatalf("expected Medium default, got %s", incident.Severity)
	}

	if _, err := svc.Create(context.Background(), ports.CreateIncidentInput{Title: "x", Severity: "Severe"}); !errors.Is(err, domain.ErrInvalidSeverity) {
		t.Fatalf("expected ErrInvalidSeverity, got %v", err)
	}
}

func TestIncidentService_Update(t *testing.T) {
	repo := newStubIncidentRepo()
	svc := NewIncidentService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateIncidentInput{Title: "old", Description: "old", Severity: "Low"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), ports.UpdateIncidentInput{
		ID:          created.ID,
		Title:       "new title",
		Description: "new description",
		Severity:    "Critical",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "new title" || updated.Severity != domain.SeverityCritical {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if _, err := svc.Update(context.Background(), ports.UpdateIncidentInput{ID: 404, Title: "x", Severity: "Low"}); !errors.Is(err, domain.ErrIncidentNotFound) {
		t.Fatalf("expected ErrIncidentNotFound, got %v", err)
	}
	if _, err := svc.Update(context.Background(), ports.UpdateIncidentInput{ID: created.ID, Title: "x", Severity: "Bogus"}); !errors.Is(err, domain.ErrInvalidSeverity) {
		t.Fatalf("expected ErrInvalidSeverity, got %v", err)
	}
}

func TestIncidentService_Delete(t *testing.T) {
	repo := newStubIncidentRepo()
	svc := NewIncidentService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateIncidentInput{Title: "x", Description: "y"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrIncidentNotFound) {
		t.Fatalf("expected ErrIncidentNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrIncidentNotFound) {
		t.Fatalf("expected ErrIncidentNotFound on double delete, got %v", err)
	}
}

func TestIncidentService_List_InvalidSeverity(t *testing.T) {
	svc := NewIncidentService(newStubIncidentRepo(), zerolog.Nop())

	if _, err := svc.List(context.Background(), ports.IncidentFilter{Severities: []domain.Severity{"Bogus"}}); !errors.Is(err, domain.ErrInvalidSeverity) {
		t.Fatalf("expected ErrInvalidSeverity, got %v", err)
	}
}

func TestIncidentService_Stats(t *testing.T) {
	repo := newStubIncidentRepo()
	svc := NewIncidentService(repo, zerolog.Nop())
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	seed := []*domain.Incident{
		{ID: 1, Title: "a", Severity: domain.SeverityHigh, DateReported: now.AddDate(0, 0, -1)},
		{ID: 2, Title: "b", Severity: domain.SeverityHigh, DateReported: now.AddDate(0, 0, -3)},
		{ID: 3, Title: "c", Severity: domain.SeverityLow, DateReported: now.AddDate(0, 0, -30)},
	}
	for _, inc := range seed {
		if err := repo.Insert(context.Background(), inc); err != nil {
			t.Fatalf("seed insert: %v", err)
		}
	}

	stats, err := svc.Stats(context.Background(), now)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 3 {
		t.Fatalf("expected total 3, got %d", stats.Total)
	}
	if stats.BySeverity[domain.SeverityHigh] != 2 {
		t.Fatalf("expected 2 high, got %d", stats.BySeverity[domain.SeverityHigh])
	}
	if stats.BySeverity[domain.SeverityCritical] != 0 {
		t.Fatalf("expected zero-filled critical bucket")
	}
	if stats.Last7Days != 2 {
		t.Fatalf("expected 2 in last 7 days, got %d", stats.Last7Days)
	}
}
