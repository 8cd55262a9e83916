// README: Gemini gateway via Google's official SDK.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"wayfarer/internal/conversation"
)

// GeminiProvider implements Provider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// Complete issues exactly one generation call. The system instruction rides
// on the model config; the message log becomes chat history with the final
// turn sent as the message. Timestamps are never serialized.
func (p *GeminiProvider) Complete(ctx context.Context, system string, msgs []conversation.Message, opts Options) (*Result, error) {
	if len(msgs) == 0 {
		return nil, fmt.Errorf("gemini: %w: no messages", ErrBadRequest)
	}

	model := p.client.GenerativeModel(opts.Model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	model.SetTemperature(opts.Temperature)
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}
	if opts.WantJSON {
		model.ResponseMIMEType = "application/json"
	}

	session := model.StartChat()
	for _, m := range msgs[:len(msgs)-1] {
		session.History = append(session.History, &genai.Content{
			Role:  geminiRole(m.Role),
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	last := msgs[len(msgs)-1]
	resp, err := session.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return nil, classifyGeminiError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return nil, fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}

	var usage TokenUsage
	if resp.UsageMetadata != nil {
		usage = TokenUsage{
			Prompt:     int(resp.UsageMetadata.PromptTokenCount),
			Completion: int(resp.UsageMetadata.CandidatesTokenCount),
			Total:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}

	return &Result{Text: text.String(), Usage: usage}, nil
}

// geminiRole maps our roles onto the two the Gemini chat API accepts.
func geminiRole(r conversation.Role) string {
	if r == conversation.RoleAssistant {
		return "model"
	}
	return "user"
}

// classifyGeminiError folds SDK errors into the gateway taxonomy.
func classifyGeminiError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("gemini: %w: %v", ErrNetwork, err)
	}
	switch {
	case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
		return fmt.Errorf("gemini: %w (status %d)", ErrAuth, apiErr.Code)
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("gemini: %w (status 429)", ErrRateLimited)
	case apiErr.Code >= 500:
		return fmt.Errorf("gemini: %w (status %d)", ErrUpstream, apiErr.Code)
	default:
		return fmt.Errorf("gemini: %w (status %d): %s", ErrBadRequest, apiErr.Code, apiErr.Message)
	}
}
