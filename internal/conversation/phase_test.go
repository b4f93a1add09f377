package conversation

import "testing"

func TestPhaseClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  Phase
		expect Phase
	}{
		{name: "below range", input: -3, expect: MinPhase},
		{name: "zero", input: 0, expect: MinPhase},
		{name: "in range", input: 3, expect: 3},
		{name: "upper bound", input: 5, expect: MaxPhase},
		{name: "above range", input: 9, expect: MaxPhase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.input.Clamp(); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

func TestPhaseLabels(t *testing.T) {
	for p := MinPhase; p <= MaxPhase; p++ {
		if p.Label() == "" {
			t.Fatalf("expected label for phase %d", p)
		}
	}

	if Phase(0).Label() != PhaseEducation.Label() {
		t.Fatal("out-of-range phase should report the clamped label")
	}
}

func TestTrackerNextClampsCallerPhase(t *testing.T) {
	var tracker Tracker

	if got := tracker.Next(0); got != MinPhase {
		t.Fatalf("expected phase clamped to %d, got %d", MinPhase, got)
	}

	if got := tracker.Next(7); got != MaxPhase {
		t.Fatalf("expected phase clamped to %d, got %d", MaxPhase, got)
	}
}

func TestTrackerAdvance(t *testing.T) {
	t.Parallel()

	var tracker Tracker

	tests := []struct {
		name     string
		current  Phase
		reported Phase
		expect   Phase
	}{
		{name: "model reports same phase", current: 2, reported: 2, expect: 2},
		{name: "model reports next phase", current: 2, reported: 3, expect: 3},
		{name: "model tries to skip ahead", current: 1, reported: 4, expect: 2},
		{name: "model reports earlier phase", current: 4, reported: 1, expect: 4},
		{name: "missing marker defaults to one", current: 3, reported: MinPhase, expect: 3},
		{name: "at terminal phase", current: 5, reported: 5, expect: 5},
		{name: "garbage reported value", current: 5, reported: 9, expect: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tracker.Advance(tt.current, tt.reported); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

// Phase never decreases across any sequence of reported markers.
func TestTrackerAdvanceIsMonotonic(t *testing.T) {
	var tracker Tracker

	current := MinPhase
	for _, reported := range []Phase{3, 1, 2, 0, 5, 2, 9, 4, 5} {
		next := tracker.Advance(current, reported)
		if next < current {
			t.Fatalf("phase regressed from %d to %d on reported %d", current, next, reported)
		}
		if next > current+1 {
			t.Fatalf("phase skipped from %d to %d on reported %d", current, next, reported)
		}
		current = next
	}
}
