package conversation

import (
	"strings"
	"testing"
)

func TestInterpretStripsMarker(t *testing.T) {
	var interp Interpreter

	reply := interp.Interpret("Great, what languages do you know? STEP:1")

	if reply.Message != "Great, what languages do you know?" {
		t.Fatalf("unexpected message: %q", reply.Message)
	}

	if reply.Phase != 1 {
		t.Fatalf("expected phase 1, got %d", reply.Phase)
	}

	if reply.Complete {
		t.Fatal("expected completion flag to be false")
	}
}

func TestInterpretCompletionToken(t *testing.T) {
	var interp Interpreter

	reply := interp.Interpret("Thanks! Generating your matches now. CONVERSATION_COMPLETE STEP:5")

	if !reply.Complete {
		t.Fatal("expected completion flag to be true")
	}

	if reply.Phase != 5 {
		t.Fatalf("expected phase 5, got %d", reply.Phase)
	}

	if strings.Contains(reply.Message, CompletionToken) || strings.Contains(reply.Message, StepMarkerPrefix) {
		t.Fatalf("control tokens leaked into message: %q", reply.Message)
	}

	if reply.Message != "Thanks! Generating your matches now." {
		t.Fatalf("unexpected message: %q", reply.Message)
	}
}

func TestInterpretMissingMarkerDefaultsToPhaseOne(t *testing.T) {
	var interp Interpreter

	reply := interp.Interpret("Tell me more about your studies.")

	if reply.Phase != MinPhase {
		t.Fatalf("expected default phase %d, got %d", MinPhase, reply.Phase)
	}

	if reply.Message != "Tell me more about your studies." {
		t.Fatalf("unexpected message: %q", reply.Message)
	}
}

func TestInterpretTakesFirstMarkerStripsAll(t *testing.T) {
	var interp Interpreter

	reply := interp.Interpret("STEP:2 Let's move on. STEP:3 STEP:2")

	if reply.Phase != 2 {
		t.Fatalf("expected first marker to win, got %d", reply.Phase)
	}

	if strings.Contains(reply.Message, StepMarkerPrefix) {
		t.Fatalf("expected all markers stripped, got %q", reply.Message)
	}
}

func TestInterpretClampsMarkerDigit(t *testing.T) {
	var interp Interpreter

	if reply := interp.Interpret("Done! STEP:9"); reply.Phase != MaxPhase {
		t.Fatalf("expected clamp to %d, got %d", MaxPhase, reply.Phase)
	}

	if reply := interp.Interpret("Hmm. STEP:0"); reply.Phase != MinPhase {
		t.Fatalf("expected clamp to %d, got %d", MinPhase, reply.Phase)
	}
}

func TestInterpretIsIdempotent(t *testing.T) {
	var interp Interpreter

	raw := "  Almost there! CONVERSATION_COMPLETE STEP:5  "

	first := interp.Interpret(raw)
	second := interp.Interpret(raw)

	if first != second {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}

	// Re-interpreting an already-cleaned message must not change it.
	again := interp.Interpret(first.Message)
	if again.Message != first.Message {
		t.Fatalf("cleaned message changed on reinterpretation: %q vs %q", again.Message, first.Message)
	}
}

func TestInterpretEmptyInput(t *testing.T) {
	var interp Interpreter

	reply := interp.Interpret("")

	if reply.Message != "" || reply.Phase != MinPhase || reply.Complete {
		t.Fatalf("unexpected reply for empty input: %+v", reply)
	}
}
