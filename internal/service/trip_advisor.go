// README: Per-turn orchestration: analyze, prompt, complete, validate.
package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"wayfarer/internal/conversation"
	"wayfarer/internal/llm"
	"wayfarer/internal/prompt"
	"wayfarer/internal/recommend"
	"wayfarer/internal/usage"
)

// Generation tuning per phase. Gathering turns only ever produce a question,
// so they get a short budget; recommending turns carry 2-3 full plans.
const (
	gatherMaxTokens   = 300
	gatherTemperature = 0.7
	adviseMaxTokens   = 2000
	adviseTemperature = 0.4
)

// TurnResult is what one conversation turn produced. Exactly one of Message
// (gathering) or Summary+Plans (recommending) is populated.
type TurnResult struct {
	Phase   conversation.Phase
	Missing []conversation.Category

	// Gathering output: a freeform follow-up question.
	Message string

	// Recommending output.
	Summary string
	Plans   []recommend.TravelPlan

	Usage llm.TokenUsage
}

// TripAdvisor drives the two-state conversation machine. It holds no session
// state of its own: phase is recomputed from the caller-supplied log on every
// call, so two calls with the same log always behave the same way.
type TripAdvisor struct {
	analyzer conversation.Analyzer
	provider llm.Provider
	usage    *usage.Service
	model    string
}

// NewTripAdvisor wires the advisor with its collaborators. recorder may be
// nil to disable usage accounting.
func NewTripAdvisor(analyzer conversation.Analyzer, provider llm.Provider, recorder *usage.Service, model string) *TripAdvisor {
	return &TripAdvisor{
		analyzer: analyzer,
		provider: provider,
		usage:    recorder,
		model:    model,
	}
}

// Advise processes one conversation turn over the full message log.
func (a *TripAdvisor) Advise(ctx context.Context, msgs []conversation.Message) (*TurnResult, error) {
	if err := conversation.Validate(msgs); err != nil {
		return nil, err
	}

	verdict := a.analyzer.Analyze(msgs)
	if !verdict.Ready {
		return a.gather(ctx, msgs, verdict)
	}
	return a.recommendFromLog(ctx, msgs, verdict)
}

// AdviseForLocation produces recommendations for a clicked map coordinate.
// Map turns carry their own context, so they are always in the recommending
// phase.
func (a *TripAdvisor) AdviseForLocation(ctx context.Context, geo prompt.GeoContext) (*TurnResult, error) {
	system := prompt.RecommendationForLocation(geo)
	msgs := []conversation.Message{{
		Role:    conversation.RoleUser,
		Content: locationRequest(geo),
	}}
	return a.recommend(ctx, system, msgs, nil)
}

func (a *TripAdvisor) gather(ctx context.Context, msgs []conversation.Message, verdict conversation.Assessment) (*TurnResult, error) {
	res, err := llm.CompleteWithRetry(ctx, a.provider, prompt.Gathering(verdict.Missing), msgs, llm.Options{
		Model:       a.model,
		Temperature: gatherTemperature,
		MaxTokens:   gatherMaxTokens,
	})
	if err != nil {
		log.Printf("gathering completion failed: %v", err)
		return nil, fmt.Errorf("gathering turn: %w", err)
	}
	if strings.TrimSpace(res.Text) == "" {
		return nil, fmt.Errorf("gathering turn: %w", llm.ErrEmptyResponse)
	}

	a.track(ctx, conversation.PhaseGathering, res.Usage)

	return &TurnResult{
		Phase:   conversation.PhaseGathering,
		Missing: verdict.Missing,
		Message: res.Text,
		Usage:   res.Usage,
	}, nil
}

func (a *TripAdvisor) recommendFromLog(ctx context.Context, msgs []conversation.Message, verdict conversation.Assessment) (*TurnResult, error) {
	result, err := a.recommend(ctx, prompt.Recommendation(), msgs, verdict.Missing)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (a *TripAdvisor) recommend(ctx context.Context, system string, msgs []conversation.Message, missing []conversation.Category) (*TurnResult, error) {
	res, err := llm.CompleteWithRetry(ctx, a.provider, system, msgs, llm.Options{
		Model:       a.model,
		Temperature: adviseTemperature,
		MaxTokens:   adviseMaxTokens,
		WantJSON:    true,
	})
	if err != nil {
		log.Printf("recommendation completion failed: %v", err)
		return nil, fmt.Errorf("recommendation turn: %w", err)
	}

	// Validation is the last line of defence: a malformed completion becomes
	// a typed failure here, never a fabricated plan list and never a
	// freeform-text fallback.
	set, err := recommend.Validate(res.Text)
	if err != nil {
		log.Printf("recommendation validation failed: %v", err)
		return nil, err
	}

	set.Metadata.Model = a.model
	set.Metadata.PromptTokens = res.Usage.Prompt
	set.Metadata.CompletionTokens = res.Usage.Completion

	a.track(ctx, conversation.PhaseRecommending, res.Usage)

	return &TurnResult{
		Phase:   conversation.PhaseRecommending,
		Missing: missing,
		Summary: set.Summary,
		Plans:   set.Plans,
		Usage:   res.Usage,
	}, nil
}

func (a *TripAdvisor) track(ctx context.Context, phase conversation.Phase, u llm.TokenUsage) {
	a.usage.Track(ctx, usage.Record{
		Model:            a.model,
		Phase:            string(phase),
		PromptTokens:     u.Prompt,
		CompletionTokens: u.Completion,
	})
}

// locationRequest phrases the map tap as a user turn for the model.
func locationRequest(geo prompt.GeoContext) string {
	name := geo.LocationName
	if name == "" {
		name = fmt.Sprintf("the point at %.5f, %.5f", geo.Lat, geo.Lng)
	}
	return fmt.Sprintf("I tapped %s on the map. What should I see around there?", name)
}
