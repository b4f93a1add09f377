package conversation

import (
	"regexp"
	"strconv"
	"strings"
)

// Out-of-band control tokens embedded in model replies. The composer
// instructs the model to emit them and the interpreter parses them back out,
// so both sides of the contract live in this package.
const (
	// StepMarkerPrefix introduces the phase marker, e.g. "STEP:3".
	StepMarkerPrefix = "STEP:"
	// CompletionToken signals that all five phases have been answered.
	CompletionToken = "CONVERSATION_COMPLETE"
)

var stepMarkerPattern = regexp.MustCompile(`STEP:(\d)`)

// Reply is the interpreted form of a raw model reply.
type Reply struct {
	// Message is the user-visible text with all control tokens stripped.
	Message string
	// Phase is the marker value, clamped to 1..5. Defaults to 1 when the
	// reply carries no marker.
	Phase Phase
	// Complete is true when the completion token appears anywhere in the
	// raw reply.
	Complete bool
}

// Interpreter parses the out-of-band control channel from raw model output.
type Interpreter struct{}

// Interpret splits a raw reply into the user-visible message and the control
// signals. It is total and side-effect free: a reply without a marker maps to
// phase 1 rather than an error, and parsing the same text twice yields
// identical results. The first marker wins but every occurrence is stripped,
// since the model occasionally repeats itself.
func (Interpreter) Interpret(raw string) Reply {
	complete := strings.Contains(raw, CompletionToken)

	phase := MinPhase
	if m := stepMarkerPattern.FindStringSubmatch(raw); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			phase = Phase(n).Clamp()
		}
	}

	message := strings.ReplaceAll(raw, CompletionToken, "")
	message = stepMarkerPattern.ReplaceAllString(message, "")
	message = strings.TrimSpace(message)

	return Reply{
		Message:  message,
		Phase:    phase,
		Complete: complete,
	}
}
