package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/success-cli/internal/model"
)

// Valid-value sets for enum fields. Matching is case-insensitive containment
// in list order, so multi-word values precede their substrings.
var (
	validDeployStatus = []string{"Successful", "Partial", "Problematic", "Failed", "In Progress"}
	validQuality      = []string{"Professional", "Adequate", "Needs Improvement"}
	validExpectation  = []string{"Partially Met", "Not Met", "Met", "Unknown"}
	validIssueClass   = []string{"Systemic", "Environmental", "Component", "Procedural"}
	validOutlook      = []string{"Challenging", "Manageable", "Straightforward"}
)

var (
	intPattern   = regexp.MustCompile(`\d+`)
	floatPattern = regexp.MustCompile(`[\d.]+`)
)

// parseDeploymentResponse decodes the line-oriented analyzer output into a
// fresh DeploymentAnalysis. Unparseable fields keep neutral defaults.
func parseDeploymentResponse(text string) *DeploymentAnalysis {
	result := &DeploymentAnalysis{
		Score:  50,
		Status: "Unknown",
	}

	var issues, blockers, gaps []string
	section := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "DEPLOYMENT_STATUS:"):
			if v := matchValid(fieldValue(line), validDeployStatus); v != "" {
				result.Status = v
			}
			section = ""
		case strings.HasPrefix(line, "DEPLOYMENT_SCORE:"):
			if n, ok := firstInt(line); ok {
				result.Score = clamp(n, 0, 100)
			}
			section = ""
		case strings.HasPrefix(line, "IS_SERVICE_DEPLOY:"):
			result.IsServiceDeploy = isYes(line)
			section = ""
		case strings.HasPrefix(line, "INSTALLATION_ISSUES:"):
			section = "issues"
		case strings.HasPrefix(line, "BLOCKERS:"):
			section = "blockers"
		case strings.HasPrefix(line, "SERVICE_QUALITY:"):
			result.ServiceQuality = matchValid(fieldValue(line), validQuality)
			section = ""
		case strings.HasPrefix(line, "CUSTOMER_SATISFACTION:"):
			result.CustomerSatisfaction = fieldValue(line)
			section = ""
		case strings.HasPrefix(line, "EXPECTATION_MATCH:"):
			result.ExpectationMatch = matchValid(fieldValue(line), validExpectation)
			section = ""
		case strings.HasPrefix(line, "EXPECTATION_GAPS:"):
			section = "gaps"
		case strings.HasPrefix(line, "-"):
			item := listItem(line)
			switch section {
			case "issues":
				issues = append(issues, item)
			case "blockers":
				blockers = append(blockers, item)
			case "gaps":
				gaps = append(gaps, item)
			}
		}
	}

	result.InstallationIssues = takeStrings(issues, 5)
	result.Blockers = takeStrings(blockers, 3)
	result.ExpectationGaps = takeStrings(gaps, 3)

	return result
}

// parseSupportResponse decodes the line-oriented analyzer output into a fresh
// SupportAnalysis.
func parseSupportResponse(text string) *SupportAnalysis {
	result := &SupportAnalysis{
		IssueClass:        "Unknown",
		ResolutionOutlook: "Unknown",
	}

	var painPoints []string
	section := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "FRUSTRATION_SCORE:"):
			if f, ok := firstFloat(line); ok {
				result.FrustrationScore = clampFloat(f, 0, 10)
			}
			section = ""
		case strings.HasPrefix(line, "ISSUE_CLASS:"):
			if v := matchValid(fieldValue(line), validIssueClass); v != "" {
				result.IssueClass = v
			}
			section = ""
		case strings.HasPrefix(line, "ISSUE_CATEGORY:"):
			result.IssueCategory = fieldValue(line)
			section = ""
		case strings.HasPrefix(line, "RESOLUTION_OUTLOOK:"):
			if v := matchValid(fieldValue(line), validOutlook); v != "" {
				result.ResolutionOutlook = v
			}
			section = ""
		case strings.HasPrefix(line, "IS_HARDWARE_FAILURE:"):
			result.IsHardwareFailure = isYes(line)
			section = ""
		case strings.HasPrefix(line, "IS_PERFORMANCE_ISSUE:"):
			result.IsPerformanceIssue = isYes(line)
			section = ""
		case strings.HasPrefix(line, "IS_CONFIGURATION_ISSUE:"):
			result.IsConfigurationIssue = isYes(line)
			section = ""
		case strings.HasPrefix(line, "DEPLOYMENT_RELATED:"):
			result.DeploymentRelated = parseTristate(fieldValue(line))
			section = ""
		case strings.HasPrefix(line, "ESCALATION_DETECTED:"):
			result.EscalationDetected = isYes(line)
			section = ""
		case strings.HasPrefix(line, "KEY_PHRASE:"):
			result.KeyPhrase = strings.Trim(fieldValue(line), `"'`)
			section = ""
		case strings.HasPrefix(line, "PAIN_POINTS:"):
			section = "pain_points"
		case strings.HasPrefix(line, "RECOMMENDED_ACTION:"):
			result.RecommendedAction = fieldValue(line)
			section = ""
		case strings.HasPrefix(line, "-") && section == "pain_points":
			painPoints = append(painPoints, listItem(line))
		}
	}

	result.PainPoints = takeStrings(painPoints, 3)

	return result
}

// parseEvaluationResponse decodes the cross-layer evaluation output into a
// fresh JourneyEvaluation.
func parseEvaluationResponse(text string) *JourneyEvaluation {
	result := &JourneyEvaluation{
		HealthScore: 50,
		ChurnRisk:   model.RiskUnknown,
	}

	var met, notMet, critical, positive, actions []string
	section := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "JOURNEY_HEALTH_SCORE:"):
			if n, ok := firstInt(line); ok {
				result.HealthScore = clamp(n, 0, 100)
			}
			section = ""
		case strings.HasPrefix(line, "CHURN_RISK:"):
			result.ChurnRisk = model.ParseChurnRisk(fieldValue(line))
			section = ""
		case strings.HasPrefix(line, "EXPECTATION_VS_REALITY:"):
			result.ExpectationVsReality = fieldValue(line)
			section = ""
		case strings.HasPrefix(line, "EXPECTATIONS_MET:"):
			section = "met"
		case strings.HasPrefix(line, "EXPECTATIONS_NOT_MET:"):
			section = "not_met"
		case strings.HasPrefix(line, "DEPLOYMENT_IMPACT:"):
			result.DeploymentImpact = fieldValue(line)
			section = ""
		case strings.HasPrefix(line, "ROOT_CAUSE_PATTERN:"):
			result.RootCausePattern = fieldValue(line)
			section = ""
		case strings.HasPrefix(line, "CRITICAL_FINDINGS:"):
			section = "critical"
		case strings.HasPrefix(line, "POSITIVE_SIGNALS:"):
			section = "positive"
		case strings.HasPrefix(line, "IMMEDIATE_ACTIONS:"):
			section = "actions"
		case strings.HasPrefix(line, "RELATIONSHIP_RECOVERY:"):
			result.RelationshipRecovery = fieldValue(line)
			section = ""
		case strings.HasPrefix(line, "-"):
			item := listItem(line)
			switch section {
			case "met":
				met = append(met, item)
			case "not_met":
				notMet = append(notMet, item)
			case "critical":
				critical = append(critical, item)
			case "positive":
				positive = append(positive, item)
			case "actions":
				actions = append(actions, item)
			}
		}
	}

	result.ExpectationsMet = takeStrings(met, 3)
	result.ExpectationsNotMet = takeStrings(notMet, 3)
	result.CriticalFindings = takeStrings(critical, 3)
	result.PositiveSignals = takeStrings(positive, 3)
	result.ImmediateActions = takeStrings(actions, 3)

	return result
}

func fieldValue(line string) string {
	_, after, _ := strings.Cut(line, ":")
	return strings.TrimSpace(after)
}

func listItem(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "-"))
}

func matchValid(raw string, valid []string) string {
	lower := strings.ToLower(raw)
	for _, v := range valid {
		if strings.Contains(lower, strings.ToLower(v)) {
			return v
		}
	}
	return ""
}

func isYes(line string) bool {
	return strings.Contains(strings.ToLower(line), "yes")
}

// parseTristate returns nil when the answer is unknown. "Unknown" is checked
// before "no" since it contains it.
func parseTristate(raw string) *bool {
	v := strings.ToLower(raw)
	switch {
	case strings.Contains(v, "yes"):
		return boolPtr(true)
	case strings.Contains(v, "unknown"):
		return nil
	case strings.Contains(v, "no"):
		return boolPtr(false)
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }

func firstInt(line string) (int, bool) {
	m := intPattern.FindString(line)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

func firstFloat(line string) (float64, bool) {
	for _, m := range floatPattern.FindAllString(line, -1) {
		f, err := strconv.ParseFloat(strings.Trim(m, "."), 64)
		if err == nil {
			return f, true
		}
	}
	return 0, false
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
