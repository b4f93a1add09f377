package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/pioneers-ai-hackaton/workly-ai/internal/ai"
	"github.com/pioneers-ai-hackaton/workly-ai/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Greeting is the canned assistant opener every session starts with.
const Greeting = "Hi! I'm here to help you find your perfect job. Tell me about yourself - what's your background, education, and what kind of work are you looking for?"

var (
	// ErrBusy is returned when an exchange is submitted while a previous
	// one is still waiting on the model.
	ErrBusy = errors.New("conversation: exchange already in flight")
	// ErrEmptyMessage is returned for blank user input.
	ErrEmptyMessage = errors.New("conversation: message must not be empty")
)

// Session drives one onboarding conversation. It owns the transcript, the
// current phase and the completion flag, and serializes exchanges so a single
// model call is outstanding at any time.
type Session struct {
	id        string
	generator ai.Generator
	log       *zap.Logger

	tracker     Tracker
	composer    Composer
	interpreter Interpreter

	mu         sync.Mutex
	busy       bool
	transcript Transcript
	phase      Phase
	complete   bool
}

// ExchangeResult is the state surfaced to the caller after a completed
// exchange.
type ExchangeResult struct {
	Message  string
	Phase    Phase
	Complete bool
}

// NewSession creates a session starting at phase 1 with the canned greeting
// already on the transcript.
func NewSession(generator ai.Generator, log *zap.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:        id,
		generator: generator,
		log:       logger.WithFields(log, zap.String(logger.FieldSession, id)),
		phase:     MinPhase,
		transcript: Transcript{
			{Role: ai.RoleAssistant, Content: Greeting},
		},
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complete
}

// Transcript returns a read-only snapshot of the conversation so far.
func (s *Session) Transcript() Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Clone()
}

// UserContent returns the concatenated user turns for downstream CV and
// match generation.
func (s *Session) UserContent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.UserContent()
}

// Exchange runs one full user/assistant exchange: phase resolution, context
// extraction, prompt composition, model invocation and reply interpretation,
// then updates transcript, phase and completion atomically. On failure
// nothing is appended and phase/completion keep their previous values, so the
// caller can retry with the same or a new message.
func (s *Session) Exchange(ctx context.Context, message string) (*ExchangeResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.busy = true
	snapshot := s.transcript.Clone()
	phase := s.tracker.Next(s.phase)
	complete := s.complete
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	attempt := append(snapshot, ai.Turn{Role: ai.RoleUser, Content: message})
	extracted := ExtractContext(attempt)
	instructions := s.composer.Compose(phase, extracted, complete)

	s.log.Debug("dispatching exchange",
		zap.Int(logger.FieldPhase, int(phase)),
		zap.Int("transcript_len", attempt.Len()),
		zap.String(logger.FieldModel, s.generator.Model()),
	)

	raw, err := s.generator.GenerateReply(ctx, instructions, attempt)
	if err != nil {
		s.log.Warn("model invocation failed", zap.Error(err))
		return nil, err
	}

	reply := s.interpreter.Interpret(raw)

	s.mu.Lock()
	s.transcript = append(s.transcript,
		ai.Turn{Role: ai.RoleUser, Content: message},
		ai.Turn{Role: ai.RoleAssistant, Content: reply.Message},
	)
	s.phase = s.tracker.Advance(s.phase, reply.Phase)
	if reply.Complete {
		s.complete = true
	}
	result := &ExchangeResult{
		Message:  reply.Message,
		Phase:    s.phase,
		Complete: s.complete,
	}
	s.mu.Unlock()

	s.log.Info("exchange completed",
		zap.Int(logger.FieldPhase, int(result.Phase)),
		zap.Bool("complete", result.Complete),
	)

	return result, nil
}
