package analysis

import (
	"strings"

	"github.com/sells-group/success-cli/internal/model"
)

// BasicDeployment scores a deployment from status, duration, and severity
// alone. Deterministic; used when no analyzer is configured or as the
// caller's fallback when an analyzer call fails.
func BasicDeployment(d *model.Deployment) *DeploymentAnalysis {
	result := &DeploymentAnalysis{
		IsServiceDeploy:  d.IsServiceDeploy,
		TimeToDeployDays: d.CaseAgeDays,
		Model:            ModelBasic,
	}

	status := strings.ToLower(d.Status)
	score := 60
	switch {
	case strings.Contains(status, "closed") || strings.Contains(status, "resolved"):
		score = 70
	case strings.Contains(status, "open") || strings.Contains(status, "progress"):
		score = 50
		result.Status = "In Progress"
	}

	switch {
	case d.CaseAgeDays <= 7:
		score += 15
	case d.CaseAgeDays <= 14:
		score += 10
	case d.CaseAgeDays <= 30:
		score += 5
	case d.CaseAgeDays > 60:
		score -= 10
	}

	switch d.Severity {
	case model.SeverityS1:
		score -= 15
	case model.SeverityS2:
		score -= 10
	}

	result.Score = clamp(score, 0, 100)

	if result.Status == "" {
		switch {
		case result.Score >= 70:
			result.Status = "Successful"
		case result.Score >= 50:
			result.Status = "Partial"
		default:
			result.Status = "Problematic"
		}
	}

	return result
}

var reasonClasses = []struct {
	keywords []string
	class    string
	flag     func(*SupportAnalysis)
}{
	{[]string{"hardware", "disk", "drive", "controller"}, "Component",
		func(r *SupportAnalysis) { r.IsHardwareFailure = true }},
	{[]string{"performance", "slow", "latency", "iops"}, "Systemic",
		func(r *SupportAnalysis) { r.IsPerformanceIssue = true }},
	{[]string{"config", "setup", "install"}, "Procedural",
		func(r *SupportAnalysis) { r.IsConfigurationIssue = true }},
}

// BasicSupportCase estimates frustration from severity and case age and
// classifies the issue from case-reason keywords.
func BasicSupportCase(c *model.SupportCase) *SupportAnalysis {
	result := &SupportAnalysis{
		IssueClass:        "Environmental",
		ResolutionOutlook: "Manageable",
		Model:             ModelBasic,
	}

	frustration := 3.0
	switch c.Severity {
	case model.SeverityS1:
		frustration = 7.0
	case model.SeverityS2:
		frustration = 5.0
	case model.SeverityS3:
		frustration = 4.0
	}

	switch {
	case c.CaseAgeDays > 30:
		frustration += 1.5
	case c.CaseAgeDays > 14:
		frustration += 0.5
	}
	result.FrustrationScore = min(10.0, frustration)

	reason := strings.ToLower(c.CaseReason)
	for _, rc := range reasonClasses {
		if containsAny(reason, rc.keywords) {
			result.IssueClass = rc.class
			rc.flag(result)
			break
		}
	}

	result.IssueCategory = c.CaseReason
	if result.IssueCategory == "" {
		result.IssueCategory = "General Support"
	}

	return result
}

// BasicJourney scores the customer journey from the linked data shape: what
// sources are present, how the first deployment went, and how much support
// load followed.
func BasicJourney(o *model.LinkedOrder) *JourneyEvaluation {
	result := &JourneyEvaluation{
		ExpectationVsReality: "Basic evaluation - AI analysis required for detailed assessment.",
		Model:                ModelBasic,
	}

	score := 70

	if o.HasOpportunity() {
		score += 5
	}

	if o.HasDeployments() {
		dep := o.Deployments[0]
		if dep.CaseAgeDays > 30 {
			score -= 10
		}
		if dep.Severity == model.SeverityS1 || dep.Severity == model.SeverityS2 {
			score -= 10
		}
	}

	if o.HasSupportCases() {
		switch n := len(o.SupportCases); {
		case n > 5:
			score -= 15
		case n > 2:
			score -= 5
		}

		for _, c := range o.SupportCases {
			if c.Severity == model.SeverityS1 {
				score -= 10
			}
		}
	}

	result.HealthScore = clamp(score, 0, 100)

	switch {
	case result.HealthScore < 30:
		result.ChurnRisk = model.RiskCritical
	case result.HealthScore < 50:
		result.ChurnRisk = model.RiskHigh
	case result.HealthScore < 70:
		result.ChurnRisk = model.RiskMedium
	default:
		result.ChurnRisk = model.RiskLow
	}

	return result
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
