package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mdip/intelligence-platform/internal/core/domain"
	"github.com/mdip/intelligence-platform/internal/core/ports"
)

type TicketService struct {
	repo   ports.TicketRepository
	logger zerolog.Logger
}

func NewTicketService(repo ports.TicketRepository, logger zerolog.Logger) *TicketService {
	return &TicketService{repo: repo, logger: logger}
}

// Create opens a new ticket. A missing priority defaults to Medium; an
// unknown one is rejected. New tickets always start in the Open status.
func (s *TicketService) Create(ctx context.Context, input ports.CreateTicketInput) (*domain.Ticket, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domain.ErrEmptyDescription
	}

	priority := domain.TicketPriority(input.Priority)
	if input.Priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, domain.ErrInvalidPriority
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		ID:          id,
		Description: description,
		Priority:    priority,
		Status:      domain.TicketOpen,
		OpenedBy:    input.OpenedBy,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, ticket); err != nil {
		s.logger.Error().Err(err).Msg("failed to insert ticket")
		return nil, err
	}

	s.logger.Info().Int64("ticket_id", ticket.ID).Str("priority", string(priority)).Msg("ticket opened")
	return ticket, nil
}

func (s *TicketService) Get(ctx context.Context, id int64) (*domain.Ticket, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TicketService) List(ctx context.Context, filter ports.TicketFilter) ([]domain.Ticket, error) {
	for _, st := range filter.Statuses {
		if !st.Valid() {
			return nil, domain.ErrInvalidStatus
		}
	}
	for _, p := range filter.Priorities {
		if !p.Valid() {
			return nil, domain.ErrInvalidPriority
		}
	}

	tickets, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if filter.SortByPriority {
		// Stable sort keeps the repository's created_at order within a priority.
		sort.SliceStable(tickets, func(i, j int) bool {
			return tickets[i].Priority.Weight() < tickets[j].Priority.Weight()
		})
	}
	return tickets, nil
}

// Assign hands the ticket to a support person. An Open ticket moves to
// In Progress; other statuses keep their state.
func (s *TicketService) Assign(ctx context.Context, id int64, assignee string) (*domain.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ticket.AssignedTo = strings.TrimSpace(assignee)
	if ticket.Status == domain.TicketOpen {
		ticket.Status = domain.TicketInProgress
	}

	if err := s.repo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("ticket_id", id).Str("assigned_to", ticket.AssignedTo).Msg("ticket assigned")
	return ticket, nil
}

// Resolve closes out a ticket with the time it took to fix.
func (s *TicketService) Resolve(ctx context.Context, id int64, resolutionHours float64) (*domain.Ticket, error) {
	if resolutionHours < 0 {
		return nil, domain.ErrNegativeDuration
	}

	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ticket.Status = domain.TicketResolved
	ticket.ResolutionTimeHours = &resolutionHours

	if err := s.repo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("ticket_id", id).Float64("resolution_hours", resolutionHours).Msg("ticket resolved")
	return ticket, nil
}

// Stats aggregates status/priority counts, SLA breaches, and the mean
// resolution time for the dashboard charts.
func (s *TicketService) Stats(ctx context.Context, now time.Time) (*ports.TicketStats, error) {
	tickets, err := s.repo.List(ctx, ports.TicketFilter{})
	if err != nil {
		return nil, err
	}

	stats := &ports.TicketStats{
		ByStatus:   make(map[domain.TicketStatus]int64, len(domain.TicketStatuses)),
		ByPriority: make(map[domain.TicketPriority]int64, len(domain.Priorities)),
	}
	for _, st := range domain.TicketStatuses {
		stats.ByStatus[st] = 0
	}
	for _, p := range domain.Priorities {
		stats.ByPriority[p] = 0
	}

	var totalResolution float64
	for i := range tickets {
		t := &tickets[i]
		stats.Total++
		stats.ByStatus[t.Status]++
		stats.ByPriority[t.Priority]++
		if t.IsOpen() {
			stats.Open++
		}
		if t.SLABreached(now) {
			stats.SLABreached++
		}
		if t.ResolutionTimeHours != nil {
			totalResolution += *t.ResolutionTimeHours
			stats.ResolvedWithDuration++
		}
	}
	if stats.ResolvedWithDuration > 0 {
		stats.AvgResolutionHours = totalResolution / float64(stats.ResolvedWithDuration)
	}
	return stats, nil
}
