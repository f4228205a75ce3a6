package ports

import (
	"context"
	"time"

	"github.com/mdip/intelligence-platform/internal/core/domain"
)

// TicketRepository persists IT support tickets.
type TicketRepository interface {
	Insert(ctx context.Context, ticket *domain.Ticket) error
	FindByID(ctx context.Context, id int64) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	NextID(ctx context.Context) (int64, error)
}

// TicketFilter narrows List results. SortByPriority reorders the page by
// priority weight (Critical first); otherwise results keep the repository's
// created_at order.
type TicketFilter struct {
	Statuses       []domain.TicketStatus
	Priorities     []domain.TicketPriority
	SortByPriority bool
	Limit          int64
}

// CreateTicketInput carries the fields accepted when opening a ticket.
type CreateTicketInput struct {
	Description string
	Priority    string
	OpenedBy    int64
}

// TicketStats summarises tickets for the dashboard charts.
type TicketStats struct {
	Total                int64                           `json:"total"`
	ByStatus             map[domain.TicketStatus]int64   `json:"by_status"`
	ByPriority           map[domain.TicketPriority]int64 `json:"by_priority"`
	Open                 int64                           `json:"open"`
	SLABreached          int64                           `json:"sla_breached"`
	AvgResolutionHours   float64                         `json:"avg_resolution_hours"`
	ResolvedWithDuration int64                           `json:"resolved_with_duration"`
}

// TicketService defines use-case operations for IT tickets.
type TicketService interface {
	Create(ctx context.Context, input CreateTicketInput) (*domain.Ticket, error)
	Get(ctx context.Context, id int64) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	Assign(ctx context.Context, id int64, assignee string) (*domain.Ticket, error)
	Resolve(ctx context.Context, id int64, resolutionHours float64) (*domain.Ticket, error)
	Stats(ctx context.Context, now time.Time) (*TicketStats, error)
}
