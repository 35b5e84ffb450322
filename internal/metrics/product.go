package metrics

import (
	"github.com/sells-group/success-cli/internal/linker"
	"github.com/sells-group/success-cli/internal/model"
)

// ProductMetrics aggregates sales, deployment, and field performance across
// all accounts for a single product series.
type ProductMetrics struct {
	ProductSeries string `json:"product_series"`

	// Sales metrics.
	UnitsSold    int     `json:"units_sold"`
	TotalRevenue float64 `json:"total_revenue"`
	AvgDealSize  float64 `json:"avg_deal_size"`

	// Deployment metrics.
	UnitsDeployed         int     `json:"units_deployed"`
	DeploymentSuccessRate float64 `json:"deployment_success_rate"`
	AvgDeploymentScore    float64 `json:"avg_deployment_score"`
	AvgDeploymentDays     float64 `json:"avg_deployment_days"`
	ServiceDeployCount    int     `json:"service_deploy_count"`
	SelfDeployCount       int     `json:"self_deploy_count"`

	// Support metrics.
	TotalSupportCases   int     `json:"total_support_cases"`
	SupportIntensity    float64 `json:"support_intensity"`
	AvgCaseAgeDays      float64 `json:"avg_case_age_days"`
	AvgFrustrationScore float64 `json:"avg_frustration_score"`
	S1CaseCount         int     `json:"s1_case_count"`
	S2CaseCount         int     `json:"s2_case_count"`
	EscalationCount     int     `json:"escalation_count"`
	RepeatIssueRate     float64 `json:"repeat_issue_rate"`

	// Field performance.
	HardwareFailureCount    int     `json:"hardware_failure_count"`
	HardwareFailureRate     float64 `json:"hardware_failure_rate"`
	PerformanceIssueCount   int     `json:"performance_issue_count"`
	ConfigurationIssueCount int     `json:"configuration_issue_count"`

	// Issue distribution.
	IssueCategories map[string]int `json:"issue_categories,omitempty"`
	TopIssues       []string       `json:"top_issues,omitempty"`

	// Journey health across fully linked orders.
	FullyLinkedOrders  int     `json:"fully_linked_orders"`
	AvgJourneyHealth   float64 `json:"avg_journey_health"`
	HighChurnRiskCount int     `json:"high_churn_risk_count"`

	// Account distribution.
	UniqueAccounts int      `json:"unique_accounts"`
	Accounts       []string `json:"accounts,omitempty"`
}

// CalculateProduct aggregates metrics for a product series. An order matches
// if its opportunity's primary product mentions the series letter, or any of
// its deployments or cases carry the series; within a matching order only the
// deployments and cases of that series are counted, while opportunity revenue
// counts once per matching order.
func CalculateProduct(store *linker.Store, series model.ProductSeries) ProductMetrics {
	m := ProductMetrics{
		ProductSeries:   string(series) + "-Series",
		IssueCategories: make(map[string]int),
	}

	accountsSeen := make(map[string]struct{})

	var (
		deploymentScores []float64
		deploymentDays   []float64
		caseAges         []float64
		frustration      []float64
		journeyScores    []float64
		repeatCount      int
	)

	for _, order := range store.Orders {
		if !orderMatchesSeries(order, series) {
			continue
		}
		accountsSeen[order.AccountName] = struct{}{}

		if opp := order.Opportunity; opp != nil {
			m.UnitsSold++
			m.TotalRevenue += opp.Amount
		}

		for _, dep := range order.Deployments {
			if dep.ProductSeries != series {
				continue
			}
			m.UnitsDeployed++
			deploymentDays = append(deploymentDays, float64(dep.CaseAgeDays))

			if dep.IsServiceDeploy {
				m.ServiceDeployCount++
			} else {
				m.SelfDeployCount++
			}
			deploymentScores = append(deploymentScores, float64(dep.DeploymentScore))
		}

		for _, c := range order.SupportCases {
			if c.ProductSeries != series {
				continue
			}
			m.TotalSupportCases++
			caseAges = append(caseAges, float64(c.CaseAgeDays))
			frustration = append(frustration, c.FrustrationScore)

			switch c.Severity {
			case model.SeverityS1:
				m.S1CaseCount++
			case model.SeverityS2:
				m.S2CaseCount++
			}

			if c.IsHardwareFailure {
				m.HardwareFailureCount++
			}
			if c.IsPerformanceIssue {
				m.PerformanceIssueCount++
			}
			if c.IsConfigurationIssue {
				m.ConfigurationIssueCount++
			}
			if c.IsRepeatIssue {
				repeatCount++
			}
			if c.EscalationDetected {
				m.EscalationCount++
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
				m.HighChurnRiskCount++
			}
		}
	}

	if m.UnitsSold > 0 {
		m.AvgDealSize = m.TotalRevenue / float64(m.UnitsSold)
	}
	if len(deploymentScores) > 0 {
		m.AvgDeploymentScore = mean(deploymentScores)
		m.DeploymentSuccessRate = successRate(deploymentScores)
	}
	m.AvgDeploymentDays = mean(deploymentDays)
	m.AvgCaseAgeDays = mean(caseAges)
	m.AvgFrustrationScore = mean(frustration)
	m.AvgJourneyHealth = mean(journeyScores)

	if m.UnitsDeployed > 0 {
		m.SupportIntensity = ratio(float64(m.TotalSupportCases), float64(m.UnitsDeployed))
		m.HardwareFailureRate = ratio(float64(m.HardwareFailureCount), float64(m.UnitsDeployed))
	}
	m.RepeatIssueRate = rate(repeatCount, m.TotalSupportCases)

	m.TopIssues = topKeys(m.IssueCategories, 5)

	m.UniqueAccounts = len(accountsSeen)
	accounts := make([]string, 0, len(accountsSeen))
	for name := range accountsSeen {
		accounts = append(accounts, name)
	}
	m.Accounts = dedupeTrim(accounts, 20)

	return m
}

// CalculateAllProducts aggregates metrics for every product series with
// activity, keyed by series name (e.g. "F-Series").
func CalculateAllProducts(store *linker.Store) map[string]ProductMetrics {
	results := make(map[string]ProductMetrics)
	for _, series := range []model.ProductSeries{model.SeriesF, model.SeriesM, model.SeriesH, model.SeriesR} {
		m := CalculateProduct(store, series)
		if m.UnitsSold > 0 || m.UnitsDeployed > 0 || m.TotalSupportCases > 0 {
			results[m.ProductSeries] = m
		}
	}
	return results
}

// orderMatchesSeries reports whether any component of the order belongs to
// the series. The opportunity matches on the series letter appearing in the
// primary product name; deployments and cases match on their parsed series.
func orderMatchesSeries(order *model.LinkedOrder, series model.ProductSeries) bool {
	if opp := order.Opportunity; opp != nil {
		if opp.PrimaryProduct != "" && containsFold(opp.PrimaryProduct, string(series)) {
			return true
		}
	}
	for _, dep := range order.Deployments {
		if dep.ProductSeries == series {
			return true
		}
	}
	for _, c := range order.SupportCases {
		if c.ProductSeries == series {
			return true
		}
	}
	return false
}
