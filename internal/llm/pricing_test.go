package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	if LookupCost("gpt-4o-mini") == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	if LookupCost("google/gemini-2.0-flash-exp") != nil {
		t.Fatal("OpenRouter routes have no pricing entry")
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 1, OutputPerMTok: 5}
	got := c.Cost(2_000_000, 400_000)
	if math.Abs(got-4) > 1e-9 {
		t.Fatalf("expected $4.00, got %v", got)
	}
}
