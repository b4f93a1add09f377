package conversation

import (
	"strings"

	"github.com/pioneers-ai-hackaton/workly-ai/internal/ai"
)

// Transcript is the ordered record of user and assistant turns in a session.
// It is append-only: the session adds completed exchanges and nothing else
// mutates it. Components outside the session receive clones.
type Transcript []ai.Turn

func (t Transcript) Len() int {
	return len(t)
}

// Clone returns an independent copy of the transcript.
func (t Transcript) Clone() Transcript {
	if t == nil {
		return nil
	}
	out := make(Transcript, len(t))
	copy(out, t)
	return out
}

// UserContent concatenates the content of all user turns. This is the input
// for downstream CV and match generation.
func (t Transcript) UserContent() string {
	parts := make([]string, 0, len(t))
	for _, turn := range t {
		if turn.Role != ai.RoleUser {
			continue
		}
		if content := strings.TrimSpace(turn.Content); content != "" {
			parts = append(parts, content)
		}
	}
	return strings.Join(parts, " ")
}

// joinedLower concatenates all turns, lowercased, for keyword extraction.
func (t Transcript) joinedLower() string {
	parts := make([]string, 0, len(t))
	for _, turn := range t {
		parts = append(parts, turn.Content)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
