package profile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestMatchFinderGenerate(t *testing.T) {
	stub := &stubGenerator{response: `[
		{"name": "Acme Robotics", "position": "Go Developer", "location": "Berlin, Germany", "description": "Backend role.", "coordinates": [13.405, 52.52]},
		{"name": "", "position": "Ghost", "location": "Nowhere", "description": "Missing name.", "coordinates": [0, 0]},
		{"name": "DataWorks", "position": "ML Engineer", "location": "Paris, France", "description": "Model training.", "coordinates": [2.3522, 48.8566]}
	]`}
	finder := NewMatchFinder(stub, zap.NewNop(), 0)

	companies, err := finder.Generate(context.Background(), "Go developer open to Europe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(companies) != 2 {
		t.Fatalf("expected nameless entry dropped, got %d entries", len(companies))
	}

	if companies[0].Name != "Acme Robotics" || companies[0].Coordinates[0] != 13.405 {
		t.Fatalf("unexpected first match: %+v", companies[0])
	}

	if !strings.Contains(stub.lastSystem, "6 realistic job matches") {
		t.Fatalf("expected matches prompt as system instruction, got:\n%s", stub.lastSystem)
	}
}

func TestMatchFinderFallsBackOnUnparseableReply(t *testing.T) {
	stub := &stubGenerator{response: "no json here"}
	finder := NewMatchFinder(stub, zap.NewNop(), 0)

	companies, err := finder.Generate(context.Background(), "anything")
	if err != nil {
		t.Fatalf("fallback must not surface an error, got %v", err)
	}

	if len(companies) != 3 {
		t.Fatalf("expected 3 fallback entries, got %d", len(companies))
	}

	if companies[0].Name != "Tech Solutions Inc" {
		t.Fatalf("unexpected fallback list: %+v", companies)
	}
}

func TestMatchFinderFallsBackOnEmptyList(t *testing.T) {
	stub := &stubGenerator{response: `[]`}
	finder := NewMatchFinder(stub, zap.NewNop(), 0)

	companies, err := finder.Generate(context.Background(), "anything")
	if err != nil {
		t.Fatalf("fallback must not surface an error, got %v", err)
	}

	if len(companies) != 3 {
		t.Fatalf("expected fallback list, got %d entries", len(companies))
	}
}

func TestMatchFinderHandlesCodeFences(t *testing.T) {
	stub := &stubGenerator{response: "```json\n[{\"name\": \"Fenced Co\", \"position\": \"Engineer\", \"location\": \"Austin, USA\", \"description\": \"Great team.\", \"coordinates\": [-97.7431, 30.2672]}]\n```"}
	finder := NewMatchFinder(stub, zap.NewNop(), 0)

	companies, err := finder.Generate(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(companies) != 1 || companies[0].Name != "Fenced Co" {
		t.Fatalf("unexpected matches: %+v", companies)
	}
}

func TestMatchFinderPropagatesBackendError(t *testing.T) {
	backendErr := errors.New("backend down")
	stub := &stubGenerator{err: backendErr}
	finder := NewMatchFinder(stub, zap.NewNop(), 0)

	if _, err := finder.Generate(context.Background(), "anything"); !errors.Is(err, backendErr) {
		t.Fatalf("expected backend error to propagate, got %v", err)
	}
}
