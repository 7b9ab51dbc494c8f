// Package policy provides the design governance engine.
// Evaluates project-level rules against a generated design set before it
// is handed to a client: budget feasibility, embodied carbon ceilings,
// recommendation confidence and cost limits.
package policy

import (
	"fmt"
	"time"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
)

// PolicyType defines the type of policy
type PolicyType string

const (
	PolicyTypeCostLimit           PolicyType = "cost_limit"
	PolicyTypeCarbonBudget        PolicyType = "carbon_budget"
	PolicyTypeFeasibilityMinimum  PolicyType = "feasibility_minimum"
	PolicyTypeConfidenceThreshold PolicyType = "confidence_threshold"
)

// Severity defines policy violation severity
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Decision is the policy evaluation outcome
type Decision string

const (
	DecisionPass Decision = "pass"
	DecisionWarn Decision = "warn"
	DecisionDeny Decision = "deny"
)

// Policy defines a governance rule
type Policy struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        PolicyType `json:"type"`
	Severity    Severity   `json:"severity"`
	Threshold   float64    `json:"threshold"`
	Enabled     bool       `json:"enabled"`
}

// Violation represents a policy violation
type Violation struct {
	PolicyID   string `json:"policy_id"`
	PolicyName string `json:"policy_name"`
	DesignID   string `json:"design_id,omitempty"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
}

// Warning represents a policy warning
type Warning struct {
	PolicyID string `json:"policy_id"`
	Message  string `json:"message"`
}

// EvaluationRequest contains the input for policy evaluation
type EvaluationRequest struct {
	Designs          []api.Design
	FeasibilityScore int
	Confidence       float64
	CustomPolicies   []Policy
}

// EvaluationResult contains the policy evaluation outcome
type EvaluationResult struct {
	Decision    Decision    `json:"decision"`
	Violations  []Violation `json:"violations"`
	Warnings    []Warning   `json:"warnings"`
	PoliciesRan int         `json:"policies_ran"`
	EvaluatedAt time.Time   `json:"evaluated_at"`
}

// Engine evaluates governance policies against design sets
type Engine struct {
	policies []Policy
}

// NewEngine creates a policy engine with the default rule set
func NewEngine() *Engine {
	return &Engine{policies: defaultPolicies()}
}

// AddPolicy adds a custom policy
func (e *Engine) AddPolicy(p Policy) {
	e.policies = append(e.policies, p)
}

// Evaluate runs all enabled policies against the design set. An error
// severity violation denies; anything else that fires downgrades the
// decision to warn.
func (e *Engine) Evaluate(req EvaluationRequest) *EvaluationResult {
	result := &EvaluationResult{
		Decision:    DecisionPass,
		Violations:  make([]Violation, 0),
		Warnings:    make([]Warning, 0),
		EvaluatedAt: time.Now(),
	}

	allPolicies := append(append([]Policy(nil), e.policies...), req.CustomPolicies...)

	for _, policy := range allPolicies {
		if !policy.Enabled {
			continue
		}

		result.PoliciesRan++
		violations, warning := e.evaluatePolicy(policy, req)

		if len(violations) > 0 {
			result.Violations = append(result.Violations, violations...)
			if policy.Severity == SeverityError {
				result.Decision = DecisionDeny
			} else if result.Decision != DecisionDeny {
				result.Decision = DecisionWarn
			}
		}

		if warning != nil {
			result.Warnings = append(result.Warnings, *warning)
			if result.Decision == DecisionPass {
				result.Decision = DecisionWarn
			}
		}
	}

	return result
}

func (e *Engine) evaluatePolicy(p Policy, req EvaluationRequest) ([]Violation, *Warning) {
	switch p.Type {
	case PolicyTypeCostLimit:
		var violations []Violation
		for _, d := range req.Designs {
			if d.Metrics == nil {
				continue
			}
			if cost := float64(d.Metrics.EstimatedCost); cost > p.Threshold {
				violations = append(violations, Violation{
					PolicyID:   p.ID,
					PolicyName: p.Name,
					DesignID:   d.ID,
					Message:    fmt.Sprintf("Estimated cost ($%.2f) exceeds limit ($%.2f)", cost, p.Threshold),
					Severity:   string(p.Severity),
				})
			}
		}
		return violations, nil

	case PolicyTypeCarbonBudget:
		var violations []Violation
		for _, d := range req.Designs {
			if d.EstimatedEmbodiedCarbon > p.Threshold {
				violations = append(violations, Violation{
					PolicyID:   p.ID,
					PolicyName: p.Name,
					DesignID:   d.ID,
					Message:    fmt.Sprintf("Embodied carbon (%.2f kg CO2/sqft) exceeds budget (%.2f kg)", d.EstimatedEmbodiedCarbon, p.Threshold),
					Severity:   string(p.Severity),
				})
			}
		}
		return violations, nil

	case PolicyTypeFeasibilityMinimum:
		if float64(req.FeasibilityScore) < p.Threshold {
			if p.Severity == SeverityError {
				return []Violation{{
					PolicyID:   p.ID,
					PolicyName: p.Name,
					Message:    fmt.Sprintf("Feasibility score (%d) below minimum (%.0f)", req.FeasibilityScore, p.Threshold),
					Severity:   string(p.Severity),
				}}, nil
			}
			return nil, &Warning{
				PolicyID: p.ID,
				Message:  fmt.Sprintf("Feasibility score (%d) below recommended (%.0f)", req.FeasibilityScore, p.Threshold),
			}
		}

	case PolicyTypeConfidenceThreshold:
		if req.Confidence < p.Threshold/100 {
			if p.Severity == SeverityError {
				return []Violation{{
					PolicyID:   p.ID,
					PolicyName: p.Name,
					Message:    fmt.Sprintf("Recommendation confidence (%.0f%%) below threshold (%.0f%%)", req.Confidence*100, p.Threshold),
					Severity:   string(p.Severity),
				}}, nil
			}
			return nil, &Warning{
				PolicyID: p.ID,
				Message:  fmt.Sprintf("Recommendation confidence (%.0f%%) below recommended (%.0f%%)", req.Confidence*100, p.Threshold),
			}
		}
	}

	return nil, nil
}

func defaultPolicies() []Policy {
	return []Policy{
		{
			ID:          "default-feasibility",
			Name:        "Minimum Feasibility",
			Description: "Warn when the brief's feasibility score is below 60",
			Type:        PolicyTypeFeasibilityMinimum,
			Severity:    SeverityWarning,
			Threshold:   60,
			Enabled:     true,
		},
		{
			ID:          "default-carbon",
			Name:        "Embodied Carbon Ceiling",
			Description: "Block designs whose embodied carbon exceeds 30 kg CO2/sqft",
			Type:        PolicyTypeCarbonBudget,
			Severity:    SeverityError,
			Threshold:   30,
			Enabled:     true,
		},
		{
			ID:          "default-confidence",
			Name:        "Minimum Recommendation Confidence",
			Description: "Warn when recommendation confidence is below 40%",
			Type:        PolicyTypeConfidenceThreshold,
			Severity:    SeverityWarning,
			Threshold:   40,
			Enabled:     true,
		},
	}
}
