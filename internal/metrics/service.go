package metrics

import (
	"github.com/sells-group/success-cli/internal/linker"
	"github.com/sells-group/success-cli/internal/model"
)

// Deployment channel labels.
const (
	CategoryServiceDeploy = "Service Deploy"
	CategorySelfDeploy    = "Self Deploy"
)

// ServiceMetrics aggregates outcomes for one deployment channel, Professional
// Services or customer self-deploy.
type ServiceMetrics struct {
	Category string `json:"category"`

	// Volume.
	TotalDeployments int     `json:"total_deployments"`
	UniqueAccounts   int     `json:"unique_accounts"`
	TotalRevenue     float64 `json:"total_revenue"`

	// Deployment quality.
	AvgDeploymentScore    float64 `json:"avg_deployment_score"`
	DeploymentSuccessRate float64 `json:"deployment_success_rate"`
	AvgDeploymentDays     float64 `json:"avg_deployment_days"`

	// Post-deployment support.
	TotalSupportCases         int     `json:"total_support_cases"`
	SupportCasesPerDeployment float64 `json:"support_cases_per_deployment"`
	AvgTimeToFirstCaseDays    float64 `json:"avg_time_to_first_case_days"`
	S1Cases                   int     `json:"s1_cases"`
	S2Cases                   int     `json:"s2_cases"`

	// Customer experience.
	AvgFrustrationScore     float64 `json:"avg_frustration_score"`
	EscalationCount         int     `json:"escalation_count"`
	DeploymentRelatedIssues int     `json:"deployment_related_issues"`

	// Journey outcomes.
	AvgJourneyHealth   float64 `json:"avg_journey_health"`
	HighChurnRiskCount int     `json:"high_churn_risk_count"`

	// Product distribution, keyed by product series.
	ProductsDeployed map[string]int `json:"products_deployed,omitempty"`
}

// ServiceComparison holds both channels plus the deltas between them. All
// deltas are oriented so positive means the service channel did better.
type ServiceComparison struct {
	ServiceMetrics ServiceMetrics `json:"service_metrics"`
	SelfMetrics    ServiceMetrics `json:"self_metrics"`

	DeploymentScoreDelta  float64 `json:"deployment_score_delta"`
	SuccessRateDelta      float64 `json:"success_rate_delta"`
	SupportIntensityDelta float64 `json:"support_intensity_delta"`
	FrustrationDelta      float64 `json:"frustration_delta"`
	JourneyHealthDelta    float64 `json:"journey_health_delta"`

	ServiceValueAddScore float64 `json:"service_value_add_score"`
	Recommendation       string  `json:"recommendation"`
}

// CalculateService aggregates metrics for one deployment channel. An order
// contributes when it has at least one deployment in the channel; its support
// cases and journey outcome are attributed to every channel it deployed
// through.
func CalculateService(store *linker.Store, isServiceDeploy bool) ServiceMetrics {
	m := ServiceMetrics{Category: CategorySelfDeploy}
	if isServiceDeploy {
		m.Category = CategoryServiceDeploy
	}

	accountsSeen := make(map[string]struct{})
	productCounts := make(map[string]int)

	var (
		deploymentScores []float64
		deploymentDays   []float64
		frustration      []float64
		journeyScores    []float64
		firstCaseGaps    []float64
	)

	for _, order := range store.Orders {
		var matching []*model.Deployment
		for _, dep := range order.Deployments {
			if dep.IsServiceDeploy == isServiceDeploy {
				matching = append(matching, dep)
			}
		}
		if len(matching) == 0 {
			continue
		}

		accountsSeen[order.AccountName] = struct{}{}
		if opp := order.Opportunity; opp != nil {
			m.TotalRevenue += opp.Amount
		}

		for _, dep := range matching {
			m.TotalDeployments++
			deploymentDays = append(deploymentDays, float64(dep.CaseAgeDays))
			deploymentScores = append(deploymentScores, float64(dep.DeploymentScore))
			productCounts[string(dep.ProductSeries)]++
		}

		for _, c := range order.SupportCases {
			m.TotalSupportCases++
			frustration = append(frustration, c.FrustrationScore)

			switch c.Severity {
			case model.SeverityS1:
				m.S1Cases++
			case model.SeverityS2:
				m.S2Cases++
			}
			if c.EscalationDetected {
				m.EscalationCount++
			}
			if c.DeploymentRelated != nil && *c.DeploymentRelated {
				m.DeploymentRelatedIssues++
			}
		}

		if gap, ok := timeToFirstCase(matching, order.SupportCases); ok {
			firstCaseGaps = append(firstCaseGaps, gap)
		}

		if order.IsFullyLinked() {
			journeyScores = append(journeyScores, float64(order.JourneyHealthScore))
			if order.ChurnRisk.IsElevated() {
				m.HighChurnRiskCount++
			}
		}
	}

	m.UniqueAccounts = len(accountsSeen)
	if len(productCounts) > 0 {
		m.ProductsDeployed = productCounts
	}

	if len(deploymentScores) > 0 {
		m.AvgDeploymentScore = mean(deploymentScores)
		m.DeploymentSuccessRate = successRate(deploymentScores)
	}
	m.AvgDeploymentDays = mean(deploymentDays)
	if m.TotalDeployments > 0 {
		m.SupportCasesPerDeployment = ratio(float64(m.TotalSupportCases), float64(m.TotalDeployments))
	}
	m.AvgFrustrationScore = mean(frustration)
	m.AvgJourneyHealth = mean(journeyScores)
	m.AvgTimeToFirstCaseDays = mean(firstCaseGaps)

	return m
}

// timeToFirstCase returns the days between the earliest deployment message
// and the earliest support case creation, when both dates are known and the
// case follows the deployment.
func timeToFirstCase(deployments []*model.Deployment, cases []*model.SupportCase) (float64, bool) {
	var deployedAt, caseAt *int64
	for _, dep := range deployments {
		if dep.MessageDate == nil {
			continue
		}
		t := dep.MessageDate.Unix()
		if deployedAt == nil || t < *deployedAt {
			deployedAt = &t
		}
	}
	for _, c := range cases {
		if c.CreatedDate == nil {
			continue
		}
		t := c.CreatedDate.Unix()
		if caseAt == nil || t < *caseAt {
			caseAt = &t
		}
	}
	if deployedAt == nil || caseAt == nil || *caseAt < *deployedAt {
		return 0, false
	}
	return float64(*caseAt-*deployedAt) / 86400, true
}

// CompareServiceVsSelf computes both channels and the service value-add
// score: a 0-100 composite starting at a neutral 50 and adjusted by the
// success-rate, support-intensity, frustration, and journey-health deltas.
func CompareServiceVsSelf(store *linker.Store) ServiceComparison {
	cmp := ServiceComparison{
		ServiceMetrics: CalculateService(store, true),
		SelfMetrics:    CalculateService(store, false),
	}

	service, self := cmp.ServiceMetrics, cmp.SelfMetrics

	cmp.DeploymentScoreDelta = service.AvgDeploymentScore - self.AvgDeploymentScore
	cmp.SuccessRateDelta = service.DeploymentSuccessRate - self.DeploymentSuccessRate

	// Support intensity and frustration: lower is better, so the sign flips.
	cmp.SupportIntensityDelta = self.SupportCasesPerDeployment - service.SupportCasesPerDeployment
	cmp.FrustrationDelta = self.AvgFrustrationScore - service.AvgFrustrationScore

	cmp.JourneyHealthDelta = service.AvgJourneyHealth - self.AvgJourneyHealth

	cmp.ServiceValueAddScore = serviceValueAdd(&cmp)
	cmp.Recommendation = serviceRecommendation(cmp.ServiceValueAddScore)

	return cmp
}

func serviceValueAdd(cmp *ServiceComparison) float64 {
	score := 50.0

	switch {
	case cmp.SuccessRateDelta > 20:
		score += 15
	case cmp.SuccessRateDelta > 10:
		score += 10
	case cmp.SuccessRateDelta > 0:
		score += 5
	case cmp.SuccessRateDelta < -10:
		score -= 10
	case cmp.SuccessRateDelta < 0:
		score -= 5
	}

	switch {
	case cmp.SupportIntensityDelta > 1.0:
		score += 12
	case cmp.SupportIntensityDelta > 0.5:
		score += 8
	case cmp.SupportIntensityDelta > 0:
		score += 4
	case cmp.SupportIntensityDelta < -0.5:
		score -= 8
	case cmp.SupportIntensityDelta < 0:
		score -= 4
	}

	switch {
	case cmp.FrustrationDelta > 2:
		score += 10
	case cmp.FrustrationDelta > 1:
		score += 6
	case cmp.FrustrationDelta > 0:
		score += 3
	case cmp.FrustrationDelta < -1:
		score -= 6
	case cmp.FrustrationDelta < 0:
		score -= 3
	}

	switch {
	case cmp.JourneyHealthDelta > 15:
		score += 12
	case cmp.JourneyHealthDelta > 5:
		score += 8
	case cmp.JourneyHealthDelta > 0:
		score += 4
	case cmp.JourneyHealthDelta < -5:
		score -= 8
	case cmp.JourneyHealthDelta < 0:
		score -= 4
	}

	return clampScore(score)
}

func serviceRecommendation(valueAdd float64) string {
	switch {
	case valueAdd >= 70:
		return "Strong recommendation for Professional Services deployment. " +
			"Service deploys show significantly better outcomes across metrics."
	case valueAdd >= 55:
		return "Moderate preference for Professional Services. " +
			"Service deploys show measurably better results, especially for complex deployments."
	case valueAdd >= 45:
		return "Mixed results between Service and Self deploy. " +
			"Consider customer technical capability when recommending."
	case valueAdd >= 30:
		return "Self-deploy showing comparable or better results. " +
			"May indicate strong customer base or opportunity for service improvement."
	default:
		return "Self-deploy significantly outperforming service deploys. " +
			"Review service delivery processes for improvement opportunities."
	}
}
