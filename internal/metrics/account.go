package metrics

import (
	"sort"
	"time"

	"github.com/sells-group/success-cli/internal/linker"
	"github.com/sells-group/success-cli/internal/model"
)

// AccountMetrics aggregates every order, deployment, and support case for a
// single customer account.
type AccountMetrics struct {
	AccountName string `json:"account_name"`

	// Purchase metrics.
	TotalOrders        int        `json:"total_orders"`
	TotalSpend         float64    `json:"total_spend"`
	AvgOrderSize       float64    `json:"avg_order_size"`
	ProductsPurchased  []string   `json:"products_purchased,omitempty"`
	FirstPurchaseDate  *time.Time `json:"first_purchase_date,omitempty"`
	LastPurchaseDate   *time.Time `json:"last_purchase_date,omitempty"`
	CustomerTenureDays int        `json:"customer_tenure_days"`

	// Deployment metrics.
	TotalDeployments      int     `json:"total_deployments"`
	SuccessfulDeployments int     `json:"successful_deployments"`
	DeploymentSuccessRate float64 `json:"deployment_success_rate"`
	AvgDeploymentScore    float64 `json:"avg_deployment_score"`
	ServiceDeploys        int     `json:"service_deploys"`
	SelfDeploys           int     `json:"self_deploys"`
	AvgDeploymentDays     float64 `json:"avg_deployment_days"`

	// Support metrics.
	TotalSupportCases   int     `json:"total_support_cases"`
	OpenCases           int     `json:"open_cases"`
	S1Cases             int     `json:"s1_cases"`
	S2Cases             int     `json:"s2_cases"`
	AvgCaseAgeDays      float64 `json:"avg_case_age_days"`
	AvgFrustrationScore float64 `json:"avg_frustration_score"`
	MaxFrustrationScore float64 `json:"max_frustration_score"`
	EscalationCount     int     `json:"escalation_count"`
	RepeatIssues        int     `json:"repeat_issues"`

	// Issue breakdown.
	HardwareFailures    int            `json:"hardware_failures"`
	PerformanceIssues   int            `json:"performance_issues"`
	ConfigurationIssues int            `json:"configuration_issues"`
	IssueCategories     map[string]int `json:"issue_categories,omitempty"`

	// Health.
	AccountHealthScore float64         `json:"account_health_score"`
	JourneyHealthAvg   float64         `json:"journey_health_avg"`
	ChurnRisk          model.ChurnRisk `json:"churn_risk"`
	HighRiskOrderCount int             `json:"high_risk_order_count"`

	// Cross-layer.
	FullyLinkedOrders       int `json:"fully_linked_orders"`
	DeploymentRelatedIssues int `json:"deployment_related_issues"`

	CriticalFindings   []string `json:"critical_findings,omitempty"`
	PositiveSignals    []string `json:"positive_signals,omitempty"`
	RecommendedActions []string `json:"recommended_actions,omitempty"`
}

// CalculateAccount aggregates metrics for one account. An account with no
// orders yields a zero-valued result.
func CalculateAccount(store *linker.Store, accountName string) AccountMetrics {
	m := AccountMetrics{AccountName: accountName, ChurnRisk: model.RiskUnknown}

	orders := store.OrdersByAccount(accountName)
	if len(orders) == 0 {
		return m
	}

	m.IssueCategories = make(map[string]int)

	var (
		deploymentScores  []float64
		deploymentDays    []float64
		caseAges          []float64
		frustrationScores []float64
		journeyScores     []float64
		purchaseDates     []time.Time
		productsSeen      []string
		findings          []string
		positives         []string
		actions           []string
	)

	for _, order := range orders {
		m.TotalOrders++

		if opp := order.Opportunity; opp != nil {
			m.TotalSpend += opp.Amount
			if opp.PrimaryProduct != "" {
				productsSeen = append(productsSeen, opp.PrimaryProduct)
			}
			if opp.CloseDate != nil {
				purchaseDates = append(purchaseDates, *opp.CloseDate)
			}
		}

		for _, dep := range order.Deployments {
			m.TotalDeployments++
			deploymentDays = append(deploymentDays, float64(dep.CaseAgeDays))

			if dep.IsServiceDeploy {
				m.ServiceDeploys++
			} else {
				m.SelfDeploys++
			}

			deploymentScores = append(deploymentScores, float64(dep.DeploymentScore))
			if dep.DeploymentScore > successScoreThreshold {
				m.SuccessfulDeployments++
			}
		}

		for _, c := range order.SupportCases {
			m.TotalSupportCases++
			caseAges = append(caseAges, float64(c.CaseAgeDays))
			frustrationScores = append(frustrationScores, c.FrustrationScore)

			if containsFold(c.Status, "open") {
				m.OpenCases++
			}
			switch c.Severity {
			case model.SeverityS1:
				m.S1Cases++
			case model.SeverityS2:
				m.S2Cases++
			}

			if c.EscalationDetected {
				m.EscalationCount++
			}
			if c.IsRepeatIssue {
				m.RepeatIssues++
			}
			if c.IsHardwareFailure {
				m.HardwareFailures++
			}
			if c.IsPerformanceIssue {
				m.PerformanceIssues++
			}
			if c.IsConfigurationIssue {
				m.ConfigurationIssues++
			}
			if c.DeploymentRelated != nil && *c.DeploymentRelated {
				m.DeploymentRelatedIssues++
			}

			reason := c.CaseReason
			if reason == "" {
				reason = "Unknown"
			}
			m.IssueCategories[reason]++
		}

		if order.IsFullyLinked() {
			m.FullyLinkedOrders++
			journeyScores = append(journeyScores, float64(order.JourneyHealthScore))
			if order.ChurnRisk.IsElevated() {
				m.HighRiskOrderCount++
			}

			findings = append(findings, takeFirst(order.CriticalFindings, 2)...)
			positives = append(positives, takeFirst(order.PositiveSignals, 2)...)
			actions = append(actions, takeFirst(order.ImmediateActions, 2)...)
		}
	}

	if m.TotalOrders > 0 {
		m.AvgOrderSize = m.TotalSpend / float64(m.TotalOrders)
	}
	if len(deploymentScores) > 0 {
		m.AvgDeploymentScore = mean(deploymentScores)
		m.DeploymentSuccessRate = rate(m.SuccessfulDeployments, len(deploymentScores))
	}
	m.AvgDeploymentDays = mean(deploymentDays)
	m.AvgCaseAgeDays = mean(caseAges)
	if len(frustrationScores) > 0 {
		m.AvgFrustrationScore = mean(frustrationScores)
		m.MaxFrustrationScore = maxOf(frustrationScores)
	}
	m.JourneyHealthAvg = mean(journeyScores)

	m.ProductsPurchased = dedupeTrim(productsSeen, 20)

	if len(purchaseDates) > 0 {
		sort.Slice(purchaseDates, func(i, j int) bool { return purchaseDates[i].Before(purchaseDates[j]) })
		first, last := purchaseDates[0], purchaseDates[len(purchaseDates)-1]
		m.FirstPurchaseDate = &first
		m.LastPurchaseDate = &last
		m.CustomerTenureDays = int(time.Since(first).Hours() / 24)
	}

	m.AccountHealthScore = healthScore(&m, len(journeyScores) > 0)
	m.ChurnRisk = churnRisk(&m)

	m.CriticalFindings = dedupeTrim(findings, 5)
	m.PositiveSignals = dedupeTrim(positives, 5)
	m.RecommendedActions = dedupeTrim(actions, 5)

	return m
}

// CalculateAllAccounts aggregates metrics for every account in the store,
// keyed by account name.
func CalculateAllAccounts(store *linker.Store) map[string]AccountMetrics {
	results := make(map[string]AccountMetrics)
	for _, account := range store.Accounts() {
		results[account] = CalculateAccount(store, account)
	}
	return results
}

// healthScore computes the 0-100 account health score from four 25-point
// components: deployment success, support intensity (inverted), frustration
// (inverted), and issue severity (inverted), with escalation and journey
// adjustments.
func healthScore(m *AccountMetrics, hasJourneyData bool) float64 {
	var score float64

	// Deployment success (25 pts; neutral 15 when no deployments).
	if m.TotalDeployments > 0 {
		score += (m.DeploymentSuccessRate / 100) * 25
	} else {
		score += 15
	}

	// Support intensity (25 pts, fewer cases per deployment is better).
	if m.TotalDeployments > 0 {
		intensity := float64(m.TotalSupportCases) / float64(m.TotalDeployments)
		switch {
		case intensity <= 0.5:
			score += 25
		case intensity <= 1.0:
			score += 20
		case intensity <= 2.0:
			score += 15
		case intensity <= 3.0:
			score += 10
		default:
			score += 5
		}
	} else {
		score += 15
	}

	// Frustration level (25 pts, inverted).
	switch {
	case m.AvgFrustrationScore <= 3:
		score += 25
	case m.AvgFrustrationScore <= 5:
		score += 20
	case m.AvgFrustrationScore <= 6:
		score += 15
	case m.AvgFrustrationScore <= 7:
		score += 10
	case m.AvgFrustrationScore <= 8:
		score += 5
	}

	// Issue severity (25 pts, inverted).
	severeRatio := float64(m.S1Cases+m.S2Cases) / float64(max(1, m.TotalSupportCases))
	switch {
	case severeRatio <= 0.1:
		score += 25
	case severeRatio <= 0.2:
		score += 20
	case severeRatio <= 0.3:
		score += 15
	case severeRatio <= 0.5:
		score += 10
	default:
		score += 5
	}

	// Escalation penalty.
	if m.EscalationCount > 3 {
		score -= 10
	} else if m.EscalationCount > 1 {
		score -= 5
	}

	// Journey health adjustment, only when any journey score was supplied.
	if hasJourneyData {
		if m.JourneyHealthAvg > 70 {
			score += 5
		} else if m.JourneyHealthAvg < 40 {
			score -= 5
		}
	}

	return clampScore(score)
}

// churnRisk accumulates an integer risk score from independent thresholds and
// maps it onto the ordinal ChurnRisk scale. Requires AccountHealthScore to be
// set.
func churnRisk(m *AccountMetrics) model.ChurnRisk {
	return model.RiskFromScore(churnRiskScore(m))
}

func churnRiskScore(m *AccountMetrics) int {
	score := 0

	switch {
	case m.AvgFrustrationScore >= 8:
		score += 3
	case m.AvgFrustrationScore >= 6:
		score += 2
	case m.AvgFrustrationScore >= 5:
		score++
	}

	switch {
	case m.S1Cases >= 3:
		score += 3
	case m.S1Cases >= 1:
		score++
	}

	switch {
	case m.EscalationCount >= 3:
		score += 2
	case m.EscalationCount >= 1:
		score++
	}

	if m.TotalDeployments > 0 && m.DeploymentSuccessRate < 50 {
		score += 2
	}

	if m.TotalDeployments > 0 {
		intensity := float64(m.TotalSupportCases) / float64(m.TotalDeployments)
		if intensity > 3 {
			score += 2
		} else if intensity > 2 {
			score++
		}
	}

	switch {
	case m.AccountHealthScore < 30:
		score += 2
	case m.AccountHealthScore < 50:
		score++
	}

	switch {
	case m.HighRiskOrderCount >= 2:
		score += 2
	case m.HighRiskOrderCount >= 1:
		score++
	}

	return score
}

// AtRiskAccounts filters a metrics map to accounts at or above minRisk.
func AtRiskAccounts(all map[string]AccountMetrics, minRisk model.ChurnRisk) []AccountMetrics {
	var out []AccountMetrics
	for _, m := range all {
		if m.ChurnRisk.Rank() >= minRisk.Rank() {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ChurnRisk.Rank() != out[j].ChurnRisk.Rank() {
			return out[i].ChurnRisk.Rank() > out[j].ChurnRisk.Rank()
		}
		return out[i].AccountName < out[j].AccountName
	})
	return out
}

func maxOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
