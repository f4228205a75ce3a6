package domain

import "time"

// TicketPriority classifies how urgent an IT ticket is.
type TicketPriority string

const (
	PriorityLow      TicketPriority = "Low"
	PriorityMedium   TicketPriority = "Medium"
	PriorityHigh     TicketPriority = "High"
	PriorityCritical TicketPriority = "Critical"
)

// TicketStatus is the lifecycle state of an IT ticket.
type TicketStatus string

const (
	TicketOpen           TicketStatus = "Open"
	TicketInProgress     TicketStatus = "In Progress"
	TicketWaitingForUser TicketStatus = "Waiting for User"
	TicketResolved       TicketStatus = "Resolved"
	TicketClosed         TicketStatus = "Closed"
)

// Priorities lists valid priorities in ascending order of urgency.
var Priorities = []TicketPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// TicketStatuses lists all valid ticket statuses.
var TicketStatuses = []TicketStatus{TicketOpen, TicketInProgress, TicketWaitingForUser, TicketResolved, TicketClosed}

// slaHours is the support deadline, in hours, for each priority.
var slaHours = map[TicketPriority]int{
	PriorityCritical: 4,
	PriorityHigh:     24,
	PriorityMedium:   48,
	PriorityLow:      72,
}

// priorityWeights orders priorities for sorting; lower sorts first.
var priorityWeights = map[TicketPriority]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityLow:      3,
}

// Valid reports whether p is one of the known priorities.
func (p TicketPriority) Valid() bool {
	_, ok := slaHours[p]
	return ok
}

// Valid reports whether s is one of the known ticket statuses.
func (s TicketStatus) Valid() bool {
	for _, known := range TicketStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Weight returns the sort weight for the priority; unknown values sort with Medium.
func (p TicketPriority) Weight() int {
	if w, ok := priorityWeights[p]; ok {
		return w
	}
	return priorityWeights[PriorityMedium]
}

// SLAHours returns the support deadline for the priority; unknown values get
// the Medium deadline.
func (p TicketPriority) SLAHours() int {
	if h, ok := slaHours[p]; ok {
		return h
	}
	return slaHours[PriorityMedium]
}

// Ticket is a single IT support ticket.
type Ticket struct {
	ID                  int64          `json:"id" bson:"_id"`
	Description         string         `json:"description" bson:"description"`
	Priority            TicketPriority `json:"priority" bson:"priority"`
	Status              TicketStatus   `json:"status" bson:"status"`
	AssignedTo          string         `json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
	OpenedBy            int64          `json:"opened_by,omitempty" bson:"opened_by,omitempty"`
	CreatedAt           time.Time      `json:"created_at" bson:"created_at"`
	ResolutionTimeHours *float64       `json:"resolution_time_hours,omitempty" bson:"resolution_time_hours,omitempty"`
}

// IsOpen reports whether the ticket still needs attention.
func (t *Ticket) IsOpen() bool {
	switch t.Status {
	case TicketOpen, TicketInProgress, TicketWaitingForUser:
		return true
	}
	return false
}

// AgeHours returns how long the ticket has existed relative to now.
func (t *Ticket) AgeHours(now time.Time) float64 {
	return now.Sub(t.CreatedAt).Hours()
}

// SLABreached reports whether the ticket is still open past its SLA deadline.
func (t *Ticket) SLABreached(now time.Time) bool {
	if !t.IsOpen() {
		return false
	}
	return t.AgeHours(now) > float64(t.Priority.SLAHours())
}
