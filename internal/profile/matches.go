package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	_ "embed"

	"github.com/pioneers-ai-hackaton/workly-ai/internal/ai"
	"github.com/pioneers-ai-hackaton/workly-ai/internal/logger"

	"go.uber.org/zap"
)

//go:embed matches_prompt.md
var matchesPrompt string

// Company is one job match pinned on the map. Coordinates are [lon, lat].
type Company struct {
	Name        string     `json:"name"`
	Position    string     `json:"position"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Coordinates [2]float64 `json:"coordinates"`
}

// MatchFinder turns the user's side of the conversation into a list of
// matching companies.
type MatchFinder struct {
	generator contentGenerator
	log       *zap.Logger
	maxLogLen int
}

func NewMatchFinder(generator contentGenerator, log *zap.Logger, maxLogLength int) *MatchFinder {
	if log == nil {
		log = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &MatchFinder{
		generator: generator,
		log:       log,
		maxLogLen: maxLogLength,
	}
}

// Generate asks the model for job matches. Backend errors propagate; a reply
// that fails to parse, or that contains no usable entries, degrades to the
// fixed fallback list.
func (m *MatchFinder) Generate(ctx context.Context, userContent string) ([]Company, error) {
	history := []ai.Turn{{
		Role:    ai.RoleUser,
		Content: "User profile: " + userContent,
	}}

	raw, err := m.generator.GenerateReply(ctx, matchesPrompt, history)
	if err != nil {
		return nil, err
	}

	companies, err := parseCompanies(raw)
	if err != nil {
		m.log.Warn("matches reply did not parse, using fallback list",
			zap.Error(err),
			zap.String("reply_preview", logger.TruncateForLog(raw, m.maxLogLen)),
		)
		return FallbackCompanies(), nil
	}

	return companies, nil
}

func parseCompanies(raw string) ([]Company, error) {
	cleaned := extractJSON(raw)

	var companies []Company
	if err := json.Unmarshal([]byte(cleaned), &companies); err != nil {
		return nil, fmt.Errorf("parse matches reply: %w", err)
	}

	// Entries without a company name are unusable on the map.
	usable := companies[:0]
	for _, company := range companies {
		if strings.TrimSpace(company.Name) == "" {
			continue
		}
		usable = append(usable, company)
	}

	if len(usable) == 0 {
		return nil, fmt.Errorf("matches reply contained no usable entries")
	}

	return usable, nil
}

// FallbackCompanies is the documented degradation for unparseable match
// replies: three plausible entries spanning tech, marketing and finance.
func FallbackCompanies() []Company {
	return []Company{
		{
			Name:        "Tech Solutions Inc",
			Position:    "Software Developer",
			Location:    "San Francisco, USA",
			Description: "Looking for talented developers to join our innovative team. Great benefits and growth opportunities.",
			Coordinates: [2]float64{-122.4194, 37.7749},
		},
		{
			Name:        "Digital Marketing Pro",
			Position:    "Marketing Specialist",
			Location:    "New York, USA",
			Description: "Join our creative marketing team. Work on exciting campaigns for leading brands.",
			Coordinates: [2]float64{-74.006, 40.7128},
		},
		{
			Name:        "Finance Corp",
			Position:    "Financial Analyst",
			Location:    "London, UK",
			Description: "Prestigious financial firm seeking analytical minds. Competitive compensation package.",
			Coordinates: [2]float64{-0.1276, 51.5074},
		},
	}
}
