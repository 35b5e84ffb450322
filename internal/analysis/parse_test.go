package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/success-cli/internal/model"
)

func TestParseDeploymentResponse(t *testing.T) {
	text := `DEPLOYMENT_STATUS: Partial
DEPLOYMENT_SCORE: 62
IS_SERVICE_DEPLOY: Yes
INSTALLATION_ISSUES:
- Cabling mismatch on controller B
- Firmware downgrade required
BLOCKERS:
- Switch incompatibility
SERVICE_QUALITY: Adequate
CUSTOMER_SATISFACTION: Mixed but recoverable
EXPECTATION_MATCH: Partially Met
EXPECTATION_GAPS:
- Throughput below quoted numbers`

	result := parseDeploymentResponse(text)

	assert.Equal(t, "Partial", result.Status)
	assert.Equal(t, 62, result.Score)
	assert.True(t, result.IsServiceDeploy)
	assert.Len(t, result.InstallationIssues, 2)
	assert.Equal(t, []string{"Switch incompatibility"}, result.Blockers)
	assert.Equal(t, "Adequate", result.ServiceQuality)
	assert.Equal(t, "Mixed but recoverable", result.CustomerSatisfaction)
	assert.Equal(t, "Partially Met", result.ExpectationMatch)
	assert.Len(t, result.ExpectationGaps, 1)
}

func TestParseDeploymentResponseDefaults(t *testing.T) {
	result := parseDeploymentResponse("no structured content here")

	assert.Equal(t, 50, result.Score)
	assert.Equal(t, "Unknown", result.Status)
	assert.False(t, result.IsServiceDeploy)
	assert.Empty(t, result.InstallationIssues)
}

func TestParseDeploymentResponseClampsAndCaps(t *testing.T) {
	text := `DEPLOYMENT_SCORE: 150
INSTALLATION_ISSUES:
- one
- two
- three
- four
- five
- six
- seven`

	result := parseDeploymentResponse(text)

	assert.Equal(t, 100, result.Score)
	assert.Len(t, result.InstallationIssues, 5)
}

func TestParseSupportResponse(t *testing.T) {
	text := `FRUSTRATION_SCORE: 7.5
ISSUE_CLASS: Component
ISSUE_CATEGORY: Hardware Failure
RESOLUTION_OUTLOOK: Manageable
IS_HARDWARE_FAILURE: Yes
IS_PERFORMANCE_ISSUE: No
IS_CONFIGURATION_ISSUE: No
DEPLOYMENT_RELATED: No
ESCALATION_DETECTED: Yes
KEY_PHRASE: "this is the third drive this quarter"
PAIN_POINTS:
- Repeated drive failures
- Slow RMA turnaround
RECOMMENDED_ACTION: Proactive drive firmware audit`

	result := parseSupportResponse(text)

	assert.InDelta(t, 7.5, result.FrustrationScore, 0.001)
	assert.Equal(t, "Component", result.IssueClass)
	assert.Equal(t, "Hardware Failure", result.IssueCategory)
	assert.Equal(t, "Manageable", result.ResolutionOutlook)
	assert.True(t, result.IsHardwareFailure)
	assert.False(t, result.IsPerformanceIssue)
	assert.True(t, result.EscalationDetected)
	require.NotNil(t, result.DeploymentRelated)
	assert.False(t, *result.DeploymentRelated)
	assert.Equal(t, "this is the third drive this quarter", result.KeyPhrase)
	assert.Len(t, result.PainPoints, 2)
	assert.Equal(t, "Proactive drive firmware audit", result.RecommendedAction)
}

func TestParseSupportResponseTristate(t *testing.T) {
	unknown := parseSupportResponse("DEPLOYMENT_RELATED: Unknown")
	assert.Nil(t, unknown.DeploymentRelated)

	yes := parseSupportResponse("DEPLOYMENT_RELATED: Yes, the zoning was wrong from day one")
	require.NotNil(t, yes.DeploymentRelated)
	assert.True(t, *yes.DeploymentRelated)

	missing := parseSupportResponse("FRUSTRATION_SCORE: 2")
	assert.Nil(t, missing.DeploymentRelated)
}

func TestParseSupportResponseFrustrationClamp(t *testing.T) {
	result := parseSupportResponse("FRUSTRATION_SCORE: 14")
	assert.InDelta(t, 10.0, result.FrustrationScore, 0.001)
}

func TestParseEvaluationResponse(t *testing.T) {
	text := `JOURNEY_HEALTH_SCORE: 42
CHURN_RISK: High
EXPECTATION_VS_REALITY: Sold for media, used for backup, and underperforming.
EXPECTATIONS_MET:
- Capacity as quoted
EXPECTATIONS_NOT_MET:
- Throughput targets
- Service deployment timeline
DEPLOYMENT_IMPACT: Self-deploy left zoning errors that drove early cases.
ROOT_CAUSE_PATTERN: Workload mismatch against the sold configuration.
CRITICAL_FINDINGS:
- one
- two
- three
- four
POSITIVE_SIGNALS:
- Responsive admin team
IMMEDIATE_ACTIONS:
- Schedule workload review
RELATIONSHIP_RECOVERY: Executive sponsor call plus on-site health check.`

	result := parseEvaluationResponse(text)

	assert.Equal(t, 42, result.HealthScore)
	assert.Equal(t, model.RiskHigh, result.ChurnRisk)
	assert.Equal(t, "Sold for media, used for backup, and underperforming.", result.ExpectationVsReality)
	assert.Equal(t, []string{"Capacity as quoted"}, result.ExpectationsMet)
	assert.Len(t, result.ExpectationsNotMet, 2)
	assert.Len(t, result.CriticalFindings, 3, "lists are capped at three items")
	assert.Equal(t, "Workload mismatch against the sold configuration.", result.RootCausePattern)
	assert.Equal(t, []string{"Schedule workload review"}, result.ImmediateActions)
	assert.Equal(t, "Executive sponsor call plus on-site health check.", result.RelationshipRecovery)
}

func TestParseEvaluationResponseDefaults(t *testing.T) {
	result := parseEvaluationResponse("")

	assert.Equal(t, 50, result.HealthScore)
	assert.Equal(t, model.RiskUnknown, result.ChurnRisk)
	assert.Empty(t, result.CriticalFindings)
}

func TestMatchValidOrdering(t *testing.T) {
	// "Partially Met" must not resolve to "Met" on containment.
	assert.Equal(t, "Partially Met", matchValid("partially met", validExpectation))
	assert.Equal(t, "Met", matchValid("Met", validExpectation))
	assert.Equal(t, "Not Met", matchValid("definitely not met", validExpectation))
	assert.Equal(t, "", matchValid("nonsense", validExpectation))
}
