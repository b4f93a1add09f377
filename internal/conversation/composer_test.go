package conversation

import (
	"strings"
	"testing"

	"github.com/pioneers-ai-hackaton/workly-ai/internal/ai"
)

func TestComposeIncludesPhaseAndMarkerContract(t *testing.T) {
	var composer Composer

	prompt := composer.Compose(PhaseExperience, ExtractContext(nil), false)

	if !strings.Contains(prompt, "CURRENT STEP: 2 of 5") {
		t.Fatalf("expected current step header, got:\n%s", prompt)
	}

	if !strings.Contains(prompt, "WORK EXPERIENCE") {
		t.Fatalf("expected experience focus block, got:\n%s", prompt)
	}

	if !strings.Contains(prompt, "STAY ON THIS STEP'S TOPICS ONLY") {
		t.Fatalf("expected topic restriction, got:\n%s", prompt)
	}

	if !strings.Contains(prompt, "END WITH: STEP:2 (or STEP:3") {
		t.Fatalf("expected marker instruction, got:\n%s", prompt)
	}
}

func TestComposeGenericExamplesWhenNoContext(t *testing.T) {
	var composer Composer

	prompt := composer.Compose(PhaseExperience, ExtractContext(nil), false)

	if !strings.Contains(prompt, "What specific skills and tools do you excel at?") {
		t.Fatalf("expected generic example questions, got:\n%s", prompt)
	}

	if strings.Contains(prompt, "{{") {
		t.Fatalf("unreplaced placeholder left in prompt:\n%s", prompt)
	}
}

func TestComposePersonalizesExamples(t *testing.T) {
	var composer Composer

	transcript := Transcript{
		{Role: ai.RoleUser, Content: "I'm a software developer using Python."},
	}
	extracted := ExtractContext(transcript)

	prompt := composer.Compose(PhaseExperience, extracted, false)

	if !strings.Contains(prompt, "What frameworks or languages have you worked with?") {
		t.Fatalf("expected software development examples, got:\n%s", prompt)
	}

	if !strings.Contains(prompt, "Field: software development") {
		t.Fatalf("expected field context line, got:\n%s", prompt)
	}
}

func TestComposeFinalPhaseRequestsCompletionToken(t *testing.T) {
	var composer Composer

	prompt := composer.Compose(PhaseConfirmation, ExtractContext(nil), false)

	if !strings.Contains(prompt, CompletionToken) {
		t.Fatalf("expected completion token instruction, got:\n%s", prompt)
	}

	if !strings.Contains(prompt, "END WITH: STEP:5") {
		t.Fatalf("expected terminal marker instruction, got:\n%s", prompt)
	}
}

func TestComposeWrapupBranch(t *testing.T) {
	var composer Composer

	prompt := composer.Compose(PhaseConfirmation, ExtractContext(nil), true)

	if !strings.Contains(prompt, "generating personalized job matches") {
		t.Fatalf("expected wrap-up instructions, got:\n%s", prompt)
	}

	if strings.Contains(prompt, StepMarkerPrefix) {
		t.Fatalf("wrap-up prompt must not demand a marker, got:\n%s", prompt)
	}
}

func TestComposeClampsPhase(t *testing.T) {
	var composer Composer

	prompt := composer.Compose(Phase(42), ExtractContext(nil), false)

	if !strings.Contains(prompt, "CURRENT STEP: 5 of 5") {
		t.Fatalf("expected clamped phase, got:\n%s", prompt)
	}
}
