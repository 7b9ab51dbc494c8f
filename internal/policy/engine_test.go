package policy

import (
	"strings"
	"testing"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
)

func cleanDesigns() []api.Design {
	return []api.Design{
		{ID: api.DesignEcoEfficient, EstimatedEmbodiedCarbon: 21.25, Metrics: &api.Metrics{EstimatedCost: 198000}},
		{ID: api.DesignCarbonOptimized, EstimatedEmbodiedCarbon: 22.0, Metrics: &api.Metrics{EstimatedCost: 205000}},
		{ID: api.DesignRegenerative, EstimatedEmbodiedCarbon: 21.63, Metrics: &api.Metrics{EstimatedCost: 310000}},
	}
}

func TestEvaluatePassesCleanDesignSet(t *testing.T) {
	engine := NewEngine()
	result := engine.Evaluate(EvaluationRequest{
		Designs:          cleanDesigns(),
		FeasibilityScore: 100,
		Confidence:       0.8,
	})

	if result.Decision != DecisionPass {
		t.Fatalf("decision = %q, want pass (violations: %v, warnings: %v)",
			result.Decision, result.Violations, result.Warnings)
	}
	if result.PoliciesRan != 3 {
		t.Errorf("policies ran = %d, want 3 defaults", result.PoliciesRan)
	}
	if len(result.Violations) != 0 || len(result.Warnings) != 0 {
		t.Errorf("clean set should produce no findings")
	}
}

func TestEvaluateWarnsOnLowFeasibility(t *testing.T) {
	engine := NewEngine()
	result := engine.Evaluate(EvaluationRequest{
		Designs:          cleanDesigns(),
		FeasibilityScore: 55,
		Confidence:       0.8,
	})

	if result.Decision != DecisionWarn {
		t.Fatalf("decision = %q, want warn", result.Decision)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(result.Warnings))
	}
	if !strings.Contains(result.Warnings[0].Message, "Feasibility") {
		t.Errorf("unexpected warning: %q", result.Warnings[0].Message)
	}
}

func TestEvaluateDeniesOnCarbonBudget(t *testing.T) {
	designs := cleanDesigns()
	designs[1].EstimatedEmbodiedCarbon = 32.5

	engine := NewEngine()
	result := engine.Evaluate(EvaluationRequest{
		Designs:          designs,
		FeasibilityScore: 100,
		Confidence:       0.8,
	})

	if result.Decision != DecisionDeny {
		t.Fatalf("decision = %q, want deny", result.Decision)
	}
	if len(result.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(result.Violations))
	}
	v := result.Violations[0]
	if v.DesignID != api.DesignCarbonOptimized {
		t.Errorf("violation design = %q, want %q", v.DesignID, api.DesignCarbonOptimized)
	}
	if v.Severity != string(SeverityError) {
		t.Errorf("violation severity = %q, want error", v.Severity)
	}
}

func TestEvaluateDenyOutranksWarn(t *testing.T) {
	designs := cleanDesigns()
	designs[0].EstimatedEmbodiedCarbon = 40

	engine := NewEngine()
	result := engine.Evaluate(EvaluationRequest{
		Designs:          designs,
		FeasibilityScore: 50, // also fires the feasibility warning
		Confidence:       0.8,
	})

	if result.Decision != DecisionDeny {
		t.Fatalf("decision = %q, want deny even with warnings present", result.Decision)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("warning should still be recorded, got %d", len(result.Warnings))
	}
}

func TestEvaluateConfidenceThreshold(t *testing.T) {
	engine := NewEngine()
	result := engine.Evaluate(EvaluationRequest{
		Designs:          cleanDesigns(),
		FeasibilityScore: 100,
		Confidence:       0.2,
	})

	if result.Decision != DecisionWarn {
		t.Fatalf("decision = %q, want warn for low confidence", result.Decision)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0].Message, "confidence") {
		t.Fatalf("expected a confidence warning, got %v", result.Warnings)
	}
}

func TestEvaluateCustomCostLimit(t *testing.T) {
	engine := NewEngine()
	result := engine.Evaluate(EvaluationRequest{
		Designs:          cleanDesigns(),
		FeasibilityScore: 100,
		Confidence:       0.8,
		CustomPolicies: []Policy{{
			ID:        "team-cost-cap",
			Name:      "Team Cost Cap",
			Type:      PolicyTypeCostLimit,
			Severity:  SeverityError,
			Threshold: 250000,
			Enabled:   true,
		}},
	})

	if result.Decision != DecisionDeny {
		t.Fatalf("decision = %q, want deny", result.Decision)
	}
	if len(result.Violations) != 1 || result.Violations[0].DesignID != api.DesignRegenerative {
		t.Fatalf("expected a single violation for the regenerative design, got %v", result.Violations)
	}
	if result.PoliciesRan != 4 {
		t.Errorf("policies ran = %d, want 3 defaults + 1 custom", result.PoliciesRan)
	}
}

func TestDisabledPolicyDoesNotRun(t *testing.T) {
	engine := NewEngine()
	engine.AddPolicy(Policy{
		ID: "disabled", Type: PolicyTypeCostLimit, Severity: SeverityError,
		Threshold: 1, Enabled: false,
	})

	result := engine.Evaluate(EvaluationRequest{
		Designs:          cleanDesigns(),
		FeasibilityScore: 100,
		Confidence:       0.8,
	})
	if result.Decision != DecisionPass {
		t.Fatalf("disabled policy must not fire, got %q", result.Decision)
	}
	if result.PoliciesRan != 3 {
		t.Errorf("policies ran = %d, want 3", result.PoliciesRan)
	}
}
