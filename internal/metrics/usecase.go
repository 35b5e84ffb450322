package metrics

import (
	"github.com/sells-group/success-cli/internal/linker"
	"github.com/sells-group/success-cli/internal/model"
)

// ProductPerformance summarizes deployment outcomes for one product within a
// use case.
type ProductPerformance struct {
	AvgDeploymentScore float64 `json:"avg_deployment_score"`
	SuccessRate        float64 `json:"success_rate"`
	DeploymentCount    int     `json:"deployment_count"`
}

// UseCaseMetrics aggregates metrics for one workload category across all
// accounts and products.
type UseCaseMetrics struct {
	UseCase model.UseCaseCategory `json:"use_case"`

	// Volume.
	TotalOrders    int     `json:"total_orders"`
	TotalRevenue   float64 `json:"total_revenue"`
	UniqueAccounts int     `json:"unique_accounts"`

	// Product distribution.
	ProductsDeployed       map[string]int `json:"products_deployed,omitempty"`
	BestPerformingProduct  string         `json:"best_performing_product,omitempty"`
	WorstPerformingProduct string         `json:"worst_performing_product,omitempty"`

	// Deployment metrics.
	TotalDeployments      int     `json:"total_deployments"`
	AvgDeploymentScore    float64 `json:"avg_deployment_score"`
	DeploymentSuccessRate float64 `json:"deployment_success_rate"`
	ServiceDeployRate     float64 `json:"service_deploy_rate"`

	// Support metrics.
	TotalSupportCases   int     `json:"total_support_cases"`
	SupportIntensity    float64 `json:"support_intensity"`
	AvgFrustrationScore float64 `json:"avg_frustration_score"`
	S1CaseCount         int     `json:"s1_case_count"`
	EscalationRate      float64 `json:"escalation_rate"`

	// Common issues for this workload.
	TopIssues         []string       `json:"top_issues,omitempty"`
	IssueDistribution map[string]int `json:"issue_distribution,omitempty"`

	// Per-product deployment performance, keyed by product series.
	ProductPerformance map[string]ProductPerformance `json:"product_performance,omitempty"`

	// Journey health.
	AvgJourneyHealth   float64 `json:"avg_journey_health"`
	HighChurnRiskCount int     `json:"high_churn_risk_count"`

	// Recommendations.
	RecommendedProducts []string `json:"recommended_products,omitempty"`
	CommonPainPoints    []string `json:"common_pain_points,omitempty"`
}

// UseCaseForOrder classifies an order's workload from its opportunity: the
// primary use case text first, falling back to the business need when the
// primary text doesn't categorize. Orders without an opportunity are Unknown.
func UseCaseForOrder(order *model.LinkedOrder) model.UseCaseCategory {
	opp := order.Opportunity
	if opp == nil {
		return model.UseCaseUnknown
	}
	category := model.CategorizeUseCase(opp.PrimaryUseCase)
	if category == model.UseCaseUnknown && opp.BusinessNeed != "" {
		category = model.CategorizeUseCase(opp.BusinessNeed)
	}
	return category
}

// CalculateUseCase aggregates metrics for one workload category.
func CalculateUseCase(store *linker.Store, useCase model.UseCaseCategory) UseCaseMetrics {
	m := UseCaseMetrics{UseCase: useCase}

	accountsSeen := make(map[string]struct{})
	scoresByProduct := make(map[string][]float64)
	issueCounts := make(map[string]int)
	productCounts := make(map[string]int)

	var (
		deploymentScores []float64
		frustration      []float64
		journeyScores    []float64
		painPoints       []string
		serviceDeploys   int
		escalations      int
	)

	for _, order := range store.Orders {
		if UseCaseForOrder(order) != useCase {
			continue
		}

		m.TotalOrders++
		accountsSeen[order.AccountName] = struct{}{}

		if opp := order.Opportunity; opp != nil {
			m.TotalRevenue += opp.Amount
			if opp.PrimaryProduct != "" {
				productCounts[opp.PrimaryProduct]++
			}
			if opp.PainPoints != "" {
				painPoints = append(painPoints, opp.PainPoints)
			}
		}

		for _, dep := range order.Deployments {
			m.TotalDeployments++
			if dep.IsServiceDeploy {
				serviceDeploys++
			}
			score := float64(dep.DeploymentScore)
			deploymentScores = append(deploymentScores, score)
			scoresByProduct[string(dep.ProductSeries)] = append(scoresByProduct[string(dep.ProductSeries)], score)
		}

		for _, c := range order.SupportCases {
			m.TotalSupportCases++
			frustration = append(frustration, c.FrustrationScore)

			if c.Severity == model.SeverityS1 {
				m.S1CaseCount++
			}
			if c.EscalationDetected {
				escalations++
			}
			if c.CaseReason != "" {
				issueCounts[c.CaseReason]++
			}
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
	if m.TotalDeployments > 0 {
		m.ServiceDeployRate = rate(serviceDeploys, m.TotalDeployments)
		m.SupportIntensity = ratio(float64(m.TotalSupportCases), float64(m.TotalDeployments))
	}
	m.AvgFrustrationScore = mean(frustration)
	m.AvgJourneyHealth = mean(journeyScores)
	m.EscalationRate = rate(escalations, m.TotalSupportCases)

	if len(scoresByProduct) > 0 {
		m.ProductPerformance = make(map[string]ProductPerformance, len(scoresByProduct))
		for product, scores := range scoresByProduct {
			m.ProductPerformance[product] = ProductPerformance{
				AvgDeploymentScore: mean(scores),
				SuccessRate:        successRate(scores),
				DeploymentCount:    len(scores),
			}
		}
		m.BestPerformingProduct, m.WorstPerformingProduct = rankProducts(m.ProductPerformance)
		m.RecommendedProducts = recommendProducts(m.ProductPerformance)
	}

	m.TopIssues = topKeys(issueCounts, 5)
	if len(issueCounts) > 0 {
		m.IssueDistribution = make(map[string]int)
		for _, issue := range topKeys(issueCounts, 10) {
			m.IssueDistribution[issue] = issueCounts[issue]
		}
	}

	m.CommonPainPoints = dedupeTrim(painPoints, 5)

	return m
}

// CalculateAllUseCases aggregates metrics for every category with at least
// one order, keyed by category name.
func CalculateAllUseCases(store *linker.Store) map[model.UseCaseCategory]UseCaseMetrics {
	results := make(map[model.UseCaseCategory]UseCaseMetrics)
	for _, useCase := range model.UseCaseCategories {
		m := CalculateUseCase(store, useCase)
		if m.TotalOrders > 0 {
			results[useCase] = m
		}
	}
	return results
}

// ProductUseCaseMatrix returns per-product performance for every active use
// case: use case -> product series -> performance.
func ProductUseCaseMatrix(store *linker.Store) map[model.UseCaseCategory]map[string]ProductPerformance {
	matrix := make(map[model.UseCaseCategory]map[string]ProductPerformance)
	for useCase, m := range CalculateAllUseCases(store) {
		if len(m.ProductPerformance) > 0 {
			matrix[useCase] = m.ProductPerformance
		}
	}
	return matrix
}

// rankProducts returns the products with the highest and lowest average
// deployment score. Worst is empty when only one product has data.
func rankProducts(perf map[string]ProductPerformance) (best, worst string) {
	scores := make(map[string]int, len(perf))
	for product, p := range perf {
		scores[product] = int(p.AvgDeploymentScore * 1000)
	}
	ranked := topKeys(scores, len(scores))
	if len(ranked) == 0 {
		return "", ""
	}
	best = ranked[0]
	if len(ranked) > 1 {
		worst = ranked[len(ranked)-1]
	}
	return best, worst
}

// recommendProducts returns up to three products by success rate, requiring
// at least two deployments each.
func recommendProducts(perf map[string]ProductPerformance) []string {
	qualified := make(map[string]int)
	for product, p := range perf {
		if p.DeploymentCount >= 2 {
			qualified[product] = int(p.SuccessRate * 1000)
		}
	}
	return topKeys(qualified, 3)
}
