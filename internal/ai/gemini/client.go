package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pioneers-ai-hackaton/workly-ai/internal/ai"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel      = "gemini-2.0-flash"
	defaultMaxRetries = 2
	retryBaseDelay    = 2 * time.Second
)

// sleep is stubbed in tests to keep the retry path fast.
var sleep = time.Sleep

// chatSession is the slice of *genai.Chat this package uses.
type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// chatCreator is the slice of the genai Chats service this package uses.
type chatCreator interface {
	Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error)
}

type genaiChats struct {
	client *genai.Client
}

func (g *genaiChats) Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error) {
	return g.client.Chats.Create(ctx, model, config, history)
}

// Generator implements ai.Generator on top of the Gemini chat API.
type Generator struct {
	chats      chatCreator
	model      string
	maxRetries int
	logger     *zap.Logger
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, maxRetries int, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key is required", ai.ErrConfiguration)
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: create genai client: %v", ai.ErrConfiguration, err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		chats:      &genaiChats{client: client},
		model:      model,
		maxRetries: maxRetries,
		logger:     logger,
	}, nil
}

// GenerateReply sends the conversation history to Gemini with the composed
// instructions attached as the system instruction and returns the raw textual
// reply. The last history turn is delivered as the outgoing chat message.
func (g *Generator) GenerateReply(ctx context.Context, system string, history []ai.Turn) (string, error) {
	if g == nil || g.chats == nil {
		return "", fmt.Errorf("%w: gemini generator is not initialized", ai.ErrConfiguration)
	}

	if len(history) == 0 {
		return "", fmt.Errorf("%w: history must not be empty", ai.ErrTransport)
	}

	config := &genai.GenerateContentConfig{}
	if system = strings.TrimSpace(system); system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	prior, message := convertHistory(history)

	var lastErr error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		chat, err := g.chats.Create(ctx, g.model, config, prior)
		if err != nil {
			lastErr = err
		} else {
			resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
			if err == nil {
				return collapseResponse(resp)
			}
			lastErr = err
		}

		if !temporary(lastErr) || attempt == g.maxRetries {
			break
		}

		g.logger.Warn("transient gemini error, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", g.maxRetries),
			zap.Error(lastErr),
		)
		sleep(retryBaseDelay * time.Duration(attempt))
	}

	return "", classify(lastErr)
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

// convertHistory splits the transcript into prior chat history and the
// outgoing message, mapping assistant turns to the genai model role.
func convertHistory(history []ai.Turn) ([]*genai.Content, string) {
	message := history[len(history)-1].Content

	prior := make([]*genai.Content, 0, len(history)-1)
	for _, turn := range history[:len(history)-1] {
		role := genai.RoleUser
		if turn.Role == ai.RoleAssistant {
			role = genai.RoleModel
		}
		prior = append(prior, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Content}},
		})
	}

	return prior, message
}

func collapseResponse(resp *genai.GenerateContentResponse) (string, error) {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", fmt.Errorf("%w: gemini api returned empty response", ai.ErrTransport)
	}

	return output, nil
}

// temporary reports whether the error is a transient server-side failure
// worth retrying. Rate-limit and quota signals are never retried here; the
// caller decides how to surface them.
func temporary(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Code >= http.StatusInternalServerError
	}
	return false
}

// classify maps a raw genai error onto the ai error taxonomy, keeping the
// original error in the wrap chain for diagnostics.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if apiErr, ok := asAPIError(err); ok {
		switch apiErr.Code {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ai.ErrRateLimited, err)
		case http.StatusPaymentRequired:
			return fmt.Errorf("%w: %v", ai.ErrQuotaExceeded, err)
		}
	}

	for _, sentinel := range []error{ai.ErrConfiguration, ai.ErrRateLimited, ai.ErrQuotaExceeded, ai.ErrTransport} {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	return fmt.Errorf("%w: %v", ai.ErrTransport, err)
}

func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return genai.APIError{}, false
}
