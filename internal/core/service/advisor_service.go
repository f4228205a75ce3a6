package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mdip/intelligence-platform/internal/core/domain"
	"github.com/mdip/intelligence-platform/internal/core/ports"
)

const (
	adviceMaxTokens = 400
	chatMaxTokens   = 500
)

// systemPrompts selects the assistant persona per advice topic.
var systemPrompts = map[domain.AdviceTopic]string{
	domain.TopicCybersecurity: "You are a cybersecurity expert assistant. Provide clear, " +
		"actionable advice on security incidents, threat analysis, and best practices. " +
		"Keep responses concise and practical.",
	domain.TopicDataScience: "You are a data science expert assistant. Help with dataset " +
		"analysis, statistical explanations, visualization suggestions, and data insights. " +
		"Explain concepts clearly for students and professionals.",
	domain.TopicITOperations: "You are an IT operations expert assistant. Provide guidance " +
		"on ticket management, troubleshooting, IT best practices, and resolution strategies. " +
		"Keep responses practical and solution-oriented.",
	domain.TopicGeneral: "You are a helpful AI assistant for a multi-domain intelligence " +
		"platform. Provide clear, accurate, and actionable information.",
}

type advisorService struct {
	completer ports.ChatCompleter
	cache     ports.AdviceCache
	log       zerolog.Logger
}

// NewAdvisorService returns an AdvisorService backed by a chat-completion
// provider, with canned-advice responses memoized through cache.
func NewAdvisorService(completer ports.ChatCompleter, cache ports.AdviceCache, log zerolog.Logger) ports.AdvisorService {
	return &advisorService{completer: completer, cache: cache, log: log}
}

// SecurityAdvice asks for a severity assessment and response plan for one incident.
func (s *advisorService) SecurityAdvice(ctx context.Context, incidentDescription string) (string, error) {
	prompt := fmt.Sprintf("Analyze this cybersecurity incident and provide:\n"+
		"1. Severity assessment\n"+
		"2. Immediate actions to take\n"+
		"3. Prevention measures for the future\n\n"+
		"Incident: %s", incidentDescription)
	return s.cannedAdvice(ctx, domain.TopicCybersecurity, prompt)
}

// DatasetInsights asks for analysis and visualization suggestions for a dataset.
func (s *advisorService) DatasetInsights(ctx context.Context, datasetSummary string) (string, error) {
	prompt := fmt.Sprintf("Provide insights and analysis suggestions for this dataset:\n\n%s\n\n"+
		"Include:\n"+
		"1. Potential analysis approaches\n"+
		"2. Visualization recommendations\n"+
		"3. Key metrics to explore", datasetSummary)
	return s.cannedAdvice(ctx, domain.TopicDataScience, prompt)
}

// TicketSolution asks for troubleshooting steps for an IT ticket.
func (s *advisorService) TicketSolution(ctx context.Context, ticketDescription string) (string, error) {
	prompt := fmt.Sprintf("Provide troubleshooting steps for this IT issue:\n\n"+
		"Issue: %s\n\n"+
		"Include:\n"+
		"1. Possible root causes\n"+
		"2. Step-by-step resolution\n"+
		"3. Prevention tips", ticketDescription)
	return s.cannedAdvice(ctx, domain.TopicITOperations, prompt)
}

// Chat forwards a free-form conversation to the provider. Chat turns are
// never cached; the history makes each exchange unique.
func (s *advisorService) Chat(ctx context.Context, topic domain.AdviceTopic, message string, history []domain.ChatMessage) (string, error) {
	if !topic.Valid() {
		return "", domain.ErrUnknownAdviceTopic
	}
	answer, err := s.completer.Complete(ctx, systemPrompts[topic], history, message, chatMaxTokens)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// cannedAdvice serves the templated advice prompts through the TTL memo:
// cache first, provider on miss, best-effort write-back. Cache failures are
// logged and the request proceeds without memoization.
func (s *advisorService) cannedAdvice(ctx context.Context, topic domain.AdviceTopic, prompt string) (string, error) {
	if answer, found, err := s.cache.Get(ctx, topic, prompt); err != nil {
		s.log.Warn().Err(err).Str("topic", string(topic)).Msg("advice cache lookup failed")
	} else if found {
		s.log.Debug().Str("topic", string(topic)).Msg("advice served from cache")
		return answer, nil
	}

	answer, err := s.completer.Complete(ctx, systemPrompts[topic], nil, prompt, adviceMaxTokens)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)

	if err := s.cache.Put(ctx, topic, prompt, answer); err != nil {
		s.log.Warn().Err(err).Str("topic", string(topic)).Msg("failed to cache advice")
	}
	return answer, nil
}
