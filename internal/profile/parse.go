package profile

import (
	"context"
	"strings"

	"github.com/pioneers-ai-hackaton/workly-ai/internal/ai"
)

// contentGenerator is the slice of ai.Generator this package needs.
type contentGenerator interface {
	GenerateReply(ctx context.Context, system string, history []ai.Turn) (string, error)
}

// extractJSON peels markdown code fences off a model reply. Models wrap JSON
// in ```json blocks often enough that this runs on every response.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
