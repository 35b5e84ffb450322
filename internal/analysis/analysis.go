// Package analysis derives scores and classifications from raw case text:
// deployment success, support-case frustration, and cross-layer journey
// evaluation. Each layer has two stages with the same result shape: a
// deterministic Basic* heuristic and an LLM-backed Analyzer. Neither stage
// falls back to the other; the caller decides what to do when the analyzer
// fails.
package analysis

import (
	"github.com/sells-group/success-cli/internal/model"
)

// Model names recorded on results.
const (
	ModelBasic = "Basic Scoring (No AI)"
)

// DeploymentAnalysis is the outcome assessment of a single deployment case.
type DeploymentAnalysis struct {
	Score           int    `json:"score"`
	Status          string `json:"status"` // Successful, Partial, Problematic, Failed, In Progress
	IsServiceDeploy bool   `json:"is_service_deploy"`

	InstallationIssues []string `json:"installation_issues,omitempty"`
	Blockers           []string `json:"blockers,omitempty"`
	TimeToDeployDays   int      `json:"time_to_deploy_days"`

	// Only populated when an opportunity was linked.
	ExpectationMatch string   `json:"expectation_match,omitempty"` // Met, Partially Met, Not Met, Unknown
	ExpectationGaps  []string `json:"expectation_gaps,omitempty"`

	ServiceQuality       string `json:"service_quality,omitempty"` // Professional, Adequate, Needs Improvement
	CustomerSatisfaction string `json:"customer_satisfaction,omitempty"`

	Model string `json:"model"`
}

// Apply writes the analysis results onto the deployment record. A service
// deploy detected at load time is never un-detected.
func (r *DeploymentAnalysis) Apply(d *model.Deployment) {
	d.DeploymentScore = r.Score
	d.IsServiceDeploy = d.IsServiceDeploy || r.IsServiceDeploy
}

// SupportAnalysis is the field-performance assessment of a support case.
type SupportAnalysis struct {
	FrustrationScore float64 `json:"frustration_score"` // 0-10

	IssueClass        string `json:"issue_class"` // Systemic, Environmental, Component, Procedural
	IssueCategory     string `json:"issue_category,omitempty"`
	ResolutionOutlook string `json:"resolution_outlook"` // Challenging, Manageable, Straightforward

	IsHardwareFailure    bool  `json:"is_hardware_failure"`
	IsPerformanceIssue   bool  `json:"is_performance_issue"`
	IsConfigurationIssue bool  `json:"is_configuration_issue"`
	DeploymentRelated    *bool `json:"deployment_related,omitempty"`
	EscalationDetected   bool  `json:"escalation_detected"`

	KeyPhrase         string   `json:"key_phrase,omitempty"`
	PainPoints        []string `json:"pain_points,omitempty"`
	RecommendedAction string   `json:"recommended_action,omitempty"`

	Model string `json:"model"`
}

// Apply writes the analysis results onto the support case record. Repeat
// flags are owned by the detector and left untouched.
func (r *SupportAnalysis) Apply(c *model.SupportCase) {
	c.FrustrationScore = r.FrustrationScore
	c.IssueClass = r.IssueClass
	c.IsHardwareFailure = r.IsHardwareFailure
	c.IsPerformanceIssue = r.IsPerformanceIssue
	c.IsConfigurationIssue = r.IsConfigurationIssue
	c.EscalationDetected = r.EscalationDetected
	c.DeploymentRelated = r.DeploymentRelated
}

// JourneyEvaluation is the cross-layer assessment of a linked order: how the
// delivered experience compares to what was sold.
type JourneyEvaluation struct {
	HealthScore int             `json:"health_score"` // 0-100
	ChurnRisk   model.ChurnRisk `json:"churn_risk"`

	ExpectationVsReality string   `json:"expectation_vs_reality,omitempty"`
	ExpectationsMet      []string `json:"expectations_met,omitempty"`
	ExpectationsNotMet   []string `json:"expectations_not_met,omitempty"`

	DeploymentImpact string `json:"deployment_impact,omitempty"`
	RootCausePattern string `json:"root_cause_pattern,omitempty"`

	CriticalFindings []string `json:"critical_findings,omitempty"`
	PositiveSignals  []string `json:"positive_signals,omitempty"`

	ImmediateActions     []string `json:"immediate_actions,omitempty"`
	RelationshipRecovery string   `json:"relationship_recovery,omitempty"`

	Model string `json:"model"`
}

// Apply writes the evaluation results onto the linked order.
func (r *JourneyEvaluation) Apply(o *model.LinkedOrder) {
	o.JourneyHealthScore = r.HealthScore
	o.ChurnRisk = r.ChurnRisk
	o.ExpectationMatch = r.ExpectationVsReality
	o.CriticalFindings = r.CriticalFindings
	o.PositiveSignals = r.PositiveSignals
	o.ImmediateActions = r.ImmediateActions
}
