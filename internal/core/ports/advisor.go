package ports

import (
	"context"

	"github.com/mdip/intelligence-platform/internal/core/domain"
)

// ChatCompleter is the outbound port to the chat-completion provider.
// The system prompt is chosen by the caller; history may be nil.
type ChatCompleter interface {
	Complete(ctx context.Context, system string, history []domain.ChatMessage, prompt string, maxTokens int) (string, error)
}

// AdviceCache memoizes canned advice responses for a bounded time.
// A miss is reported as (found=false, err=nil); cache failures must never
// fail the advice request itself.
type AdviceCache interface {
	Get(ctx context.Context, topic domain.AdviceTopic, prompt string) (answer string, found bool, err error)
	Put(ctx context.Context, topic domain.AdviceTopic, prompt, answer string) error
}

// AdvisorService produces AI-generated guidance for the three dashboards.
type AdvisorService interface {
	SecurityAdvice(ctx context.Context, incidentDescription string) (string, error)
	DatasetInsights(ctx context.Context, datasetSummary string) (string, error)
	TicketSolution(ctx context.Context, ticketDescription string) (string, error)
	Chat(ctx context.Context, topic domain.AdviceTopic, message string, history []domain.ChatMessage) (string, error)
}
