// Package model defines the records shared across the linking and metrics
// engine: sales opportunities, deployment cases, support cases, and the
// order-linked bundles produced by the linker.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Opportunity is a Salesforce opportunity record: a closed deal with the
// customer expectations captured at sale time. Immutable after load.
type Opportunity struct {
	OrderNumber     string `json:"order_number"`
	OpportunityName string `json:"opportunity_name"`
	AccountName     string `json:"account_name"`

	OpportunityOwner string `json:"opportunity_owner,omitempty"`
	OwnerRole        string `json:"owner_role,omitempty"`
	FiscalPeriod     string `json:"fiscal_period,omitempty"`
	LeadSource       string `json:"lead_source,omitempty"`
	DealType         string `json:"deal_type,omitempty"`

	Amount float64 `json:"amount"`

	CloseDate   *time.Time `json:"close_date,omitempty"`
	CreatedDate *time.Time `json:"created_date,omitempty"`

	ProductsQuoted string        `json:"products_quoted,omitempty"`
	PrimaryProduct string        `json:"primary_product,omitempty"`
	SystemModel    string        `json:"system_model,omitempty"`
	ProductSeries  ProductSeries `json:"product_series"`

	// Customer context captured by sales.
	BusinessNeed   string `json:"business_need,omitempty"`
	PrimaryUseCase string `json:"primary_use_case,omitempty"`
	PainPoints     string `json:"pain_points,omitempty"`
	NextStep       string `json:"next_step,omitempty"`
}

// Deployment is a Professional Services deployment case: the installation of
// a sold system. DeploymentScore and IsServiceDeploy are written by the
// analysis layer; everything else is immutable after load.
type Deployment struct {
	CaseNumber   string `json:"case_number"`
	OrderNumber  string `json:"order_number"`
	AccountName  string `json:"account_name"`
	SerialNumber string `json:"serial_number,omitempty"`
	CaseOwner    string `json:"case_owner,omitempty"`

	CaseAgeDays int        `json:"case_age_days"`
	MessageDate *time.Time `json:"message_date,omitempty"`

	Severity   Severity `json:"severity"`
	CaseReason string   `json:"case_reason,omitempty"`
	Status     string   `json:"status,omitempty"`

	ProductSeries ProductSeries `json:"product_series"`
	ProductModel  string        `json:"product_model,omitempty"`
	SupportLevel  SupportLevel  `json:"support_level"`

	Messages      []string `json:"messages,omitempty"`
	FromAddresses []string `json:"from_addresses,omitempty"`

	// Derived during analysis.
	IsServiceDeploy bool `json:"is_service_deploy"`
	DeploymentScore int  `json:"deployment_score"`
}

// SupportCase is a customer support case with its aggregated message history.
// IsRepeatIssue/RepeatOfCase are owned by the repeat-issue detector; the
// frustration and classification fields are written by the analysis layer and
// consumed read-only by the metrics aggregators.
type SupportCase struct {
	CaseNumber   string `json:"case_number"`
	OrderNumber  string `json:"order_number"`
	AccountName  string `json:"account_name"`
	SerialNumber string `json:"serial_number,omitempty"`
	CaseOwner    string `json:"case_owner,omitempty"`

	CaseAgeDays int        `json:"case_age_days"`
	MessageDate *time.Time `json:"message_date,omitempty"`
	CreatedDate *time.Time `json:"created_date,omitempty"`

	Severity   Severity `json:"severity"`
	CaseReason string   `json:"case_reason,omitempty"`
	Status     string   `json:"status,omitempty"`

	ProductSeries ProductSeries `json:"product_series"`
	ProductModel  string        `json:"product_model,omitempty"`
	SupportLevel  SupportLevel  `json:"support_level"`

	Messages      []string `json:"messages,omitempty"`
	FromAddresses []string `json:"from_addresses,omitempty"`

	// Repeat detection (set by linker.DetectRepeats).
	IsRepeatIssue bool   `json:"is_repeat_issue"`
	RepeatOfCase  string `json:"repeat_of_case,omitempty"`

	// Analysis results (set by the analysis layer).
	CriticalityScore int     `json:"criticality_score"`
	FrustrationScore float64 `json:"frustration_score"`

	IsHardwareFailure    bool   `json:"is_hardware_failure"`
	IsPerformanceIssue   bool   `json:"is_performance_issue"`
	IsConfigurationIssue bool   `json:"is_configuration_issue"`
	EscalationDetected   bool   `json:"escalation_detected"`
	DeploymentRelated    *bool  `json:"deployment_related,omitempty"`
	IssueClass           string `json:"issue_class,omitempty"`
}

// LinkedOrder bundles everything known about a single order: at most one
// opportunity plus any number of deployments and support cases, all sharing
// the same normalized order key. Constructed once by the linker; only the
// cross-layer evaluation fields are written afterwards.
type LinkedOrder struct {
	OrderNumber string `json:"order_number"`
	AccountName string `json:"account_name"`

	Opportunity  *Opportunity   `json:"opportunity,omitempty"`
	Deployments  []*Deployment  `json:"deployments,omitempty"`
	SupportCases []*SupportCase `json:"support_cases,omitempty"`

	// Cross-layer evaluation results (set by the analysis layer).
	JourneyHealthScore int       `json:"journey_health_score"`
	ExpectationMatch   string    `json:"expectation_match,omitempty"`
	ChurnRisk          ChurnRisk `json:"churn_risk"`

	CriticalFindings []string `json:"critical_findings,omitempty"`
	PositiveSignals  []string `json:"positive_signals,omitempty"`
	ImmediateActions []string `json:"immediate_actions,omitempty"`
}

// HasOpportunity reports whether an opportunity was linked.
func (o *LinkedOrder) HasOpportunity() bool { return o.Opportunity != nil }

// HasDeployments reports whether at least one deployment was linked.
func (o *LinkedOrder) HasDeployments() bool { return len(o.Deployments) > 0 }

// HasSupportCases reports whether at least one support case was linked.
func (o *LinkedOrder) HasSupportCases() bool { return len(o.SupportCases) > 0 }

// IsFullyLinked reports whether the order has data from all three sources.
func (o *LinkedOrder) IsFullyLinked() bool {
	return o.HasOpportunity() && o.HasDeployments() && o.HasSupportCases()
}

// LinkSummary holds the derived counters from a linking run.
type LinkSummary struct {
	TotalOrders           int `json:"total_orders"`
	OrdersWithOpportunity int `json:"orders_with_opportunity"`
	OrdersWithDeployment  int `json:"orders_with_deployment"`
	OrdersWithSupport     int `json:"orders_with_support"`
	FullyLinkedOrders     int `json:"fully_linked_orders"`

	OrphanOpportunities int `json:"orphan_opportunities"`
	OrphanDeployments   int `json:"orphan_deployments"`
	OrphanCases         int `json:"orphan_cases"`

	TotalOpportunities int `json:"total_opportunities"`
	TotalDeployments   int `json:"total_deployments"`
	TotalCases         int `json:"total_cases"`
}

// String renders a human-readable linking report.
func (s LinkSummary) String() string {
	var b strings.Builder
	rule := strings.Repeat("=", 50)

	fmt.Fprintf(&b, "%s\nDATA LINKING SUMMARY\n%s\n\n", rule, rule)
	fmt.Fprintf(&b, "Orders:\n")
	fmt.Fprintf(&b, "  Total Orders: %d\n", s.TotalOrders)
	fmt.Fprintf(&b, "  With Opportunity: %d (%s)\n", s.OrdersWithOpportunity, pct(s.OrdersWithOpportunity, s.TotalOrders))
	fmt.Fprintf(&b, "  With Deployment: %d (%s)\n", s.OrdersWithDeployment, pct(s.OrdersWithDeployment, s.TotalOrders))
	fmt.Fprintf(&b, "  With Support Cases: %d (%s)\n", s.OrdersWithSupport, pct(s.OrdersWithSupport, s.TotalOrders))
	fmt.Fprintf(&b, "  Fully Linked (all 3): %d (%s)\n\n", s.FullyLinkedOrders, pct(s.FullyLinkedOrders, s.TotalOrders))
	fmt.Fprintf(&b, "Source Records:\n")
	fmt.Fprintf(&b, "  Opportunities: %d (orphans: %d)\n", s.TotalOpportunities, s.OrphanOpportunities)
	fmt.Fprintf(&b, "  Deployments: %d (orphans: %d)\n", s.TotalDeployments, s.OrphanDeployments)
	fmt.Fprintf(&b, "  Support Cases: %d (orphans: %d)\n", s.TotalCases, s.OrphanCases)
	b.WriteString(rule)

	return b.String()
}

func pct(num, denom int) string {
	if denom == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", float64(num)/float64(denom)*100)
}
