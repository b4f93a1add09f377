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

//go:embed cv_prompt.md
var cvPrompt string

const defaultMaxLogLength = 200

// CV is the structured resume record generated from the onboarding
// conversation. Phone and location are optional; every other field has a
// defined fallback so the record is always renderable.
type CV struct {
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone,omitempty"`
	Location   string       `json:"location,omitempty"`
	Summary    string       `json:"summary"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Skills     []string     `json:"skills"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// CVBuilder turns the user's side of the conversation into a CV record.
type CVBuilder struct {
	generator contentGenerator
	log       *zap.Logger
	maxLogLen int
}

func NewCVBuilder(generator contentGenerator, log *zap.Logger, maxLogLength int) *CVBuilder {
	if log == nil {
		log = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &CVBuilder{
		generator: generator,
		log:       log,
		maxLogLen: maxLogLength,
	}
}

// Generate asks the model for a CV built from the concatenated user turns.
// Backend errors propagate; a reply that fails to parse degrades to the
// fallback record instead, so the user flow is never blocked on a sloppy
// model reply.
func (b *CVBuilder) Generate(ctx context.Context, userContent string) (*CV, error) {
	history := []ai.Turn{{
		Role:    ai.RoleUser,
		Content: "Generate CV from: " + userContent,
	}}

	raw, err := b.generator.GenerateReply(ctx, cvPrompt, history)
	if err != nil {
		return nil, err
	}

	cv, err := parseCV(raw)
	if err != nil {
		b.log.Warn("cv reply did not parse, using fallback record",
			zap.Error(err),
			zap.String("reply_preview", logger.TruncateForLog(raw, b.maxLogLen)),
		)
		return FallbackCV(), nil
	}

	return cv, nil
}

func parseCV(raw string) (*CV, error) {
	cleaned := extractJSON(raw)

	var cv CV
	if err := json.Unmarshal([]byte(cleaned), &cv); err != nil {
		return nil, fmt.Errorf("parse cv reply: %w", err)
	}

	cv.fillDefaults()
	return &cv, nil
}

// fillDefaults substitutes the fallback value for every required field the
// model left blank, so partial replies still yield a complete record.
func (cv *CV) fillDefaults() {
	fallback := FallbackCV()

	if strings.TrimSpace(cv.Name) == "" {
		cv.Name = fallback.Name
	}
	if strings.TrimSpace(cv.Email) == "" {
		cv.Email = fallback.Email
	}
	if strings.TrimSpace(cv.Summary) == "" {
		cv.Summary = fallback.Summary
	}
	if len(cv.Education) == 0 {
		cv.Education = fallback.Education
	}
	if len(cv.Experience) == 0 {
		cv.Experience = fallback.Experience
	}
	if len(cv.Skills) == 0 {
		cv.Skills = fallback.Skills
	}
}

// FallbackCV is the documented degradation for unparseable CV replies.
func FallbackCV() *CV {
	return &CV{
		Name:     "Professional Candidate",
		Email:    "candidate@example.com",
		Phone:    "+1234567890",
		Location: "Global",
		Summary:  "Experienced professional seeking new opportunities",
		Education: []Education{{
			Degree:      "Bachelor's Degree",
			Institution: "University",
			Year:        "2020",
		}},
		Experience: []Experience{{
			Title:       "Professional",
			Company:     "Previous Company",
			Period:      "2020-Present",
			Description: "Demonstrated expertise in various professional capacities",
		}},
		Skills: []string{"Communication", "Problem Solving", "Team Collaboration"},
	}
}
