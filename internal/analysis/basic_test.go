package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/success-cli/internal/model"
)

func TestBasicDeployment(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		ageDays    int
		severity   model.Severity
		wantScore  int
		wantStatus string
	}{
		{"fast clean close", "Closed", 5, model.SeverityS3, 85, "Successful"},
		{"still open", "Open", 20, model.SeverityS4, 55, "In Progress"},
		{"stalled critical", "Escalated", 90, model.SeverityS1, 35, "Problematic"},
		{"closed with friction", "Resolved", 10, model.SeverityS2, 70, "Successful"},
		{"unknown status midrange", "Pending Review", 20, model.SeverityS4, 65, "Partial"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &model.Deployment{
				Status:      tt.status,
				CaseAgeDays: tt.ageDays,
				Severity:    tt.severity,
			}

			result := BasicDeployment(d)

			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.ageDays, result.TimeToDeployDays)
			assert.Equal(t, ModelBasic, result.Model)
		})
	}
}

func TestBasicDeploymentKeepsServiceFlag(t *testing.T) {
	d := &model.Deployment{Status: "Closed", IsServiceDeploy: true}

	result := BasicDeployment(d)

	assert.True(t, result.IsServiceDeploy)
}

func TestBasicSupportCase(t *testing.T) {
	tests := []struct {
		name            string
		severity        model.Severity
		ageDays         int
		reason          string
		wantFrustration float64
		wantClass       string
		wantHardware    bool
		wantPerformance bool
		wantConfig      bool
	}{
		{"s1 aged hardware", model.SeverityS1, 40, "Disk failure", 8.5, "Component", true, false, false},
		{"s2 performance", model.SeverityS2, 20, "Slow performance on reads", 5.5, "Systemic", false, true, false},
		{"s3 setup", model.SeverityS3, 3, "Initial setup help", 4.0, "Procedural", false, false, true},
		{"s4 general", model.SeverityS4, 10, "", 3.0, "Environmental", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &model.SupportCase{
				Severity:    tt.severity,
				CaseAgeDays: tt.ageDays,
				CaseReason:  tt.reason,
			}

			result := BasicSupportCase(c)

			assert.InDelta(t, tt.wantFrustration, result.FrustrationScore, 0.001)
			assert.Equal(t, tt.wantClass, result.IssueClass)
			assert.Equal(t, tt.wantHardware, result.IsHardwareFailure)
			assert.Equal(t, tt.wantPerformance, result.IsPerformanceIssue)
			assert.Equal(t, tt.wantConfig, result.IsConfigurationIssue)
			assert.Equal(t, "Manageable", result.ResolutionOutlook)
		})
	}
}

func TestBasicSupportCaseCategoryFallback(t *testing.T) {
	withReason := BasicSupportCase(&model.SupportCase{CaseReason: "Replication lag"})
	assert.Equal(t, "Replication lag", withReason.IssueCategory)

	blank := BasicSupportCase(&model.SupportCase{})
	assert.Equal(t, "General Support", blank.IssueCategory)
}

func TestBasicJourney(t *testing.T) {
	t.Run("opportunity only", func(t *testing.T) {
		o := &model.LinkedOrder{Opportunity: &model.Opportunity{}}

		result := BasicJourney(o)

		assert.Equal(t, 75, result.HealthScore)
		assert.Equal(t, model.RiskLow, result.ChurnRisk)
	})

	t.Run("no linked data", func(t *testing.T) {
		result := BasicJourney(&model.LinkedOrder{})

		assert.Equal(t, 70, result.HealthScore)
		assert.Equal(t, model.RiskLow, result.ChurnRisk)
	})

	t.Run("troubled journey", func(t *testing.T) {
		o := &model.LinkedOrder{
			Opportunity: &model.Opportunity{},
			Deployments: []*model.Deployment{
				{CaseAgeDays: 40, Severity: model.SeverityS2},
			},
			SupportCases: []*model.SupportCase{
				{Severity: model.SeverityS1},
				{Severity: model.SeverityS1},
				{Severity: model.SeverityS3},
				{Severity: model.SeverityS3},
				{Severity: model.SeverityS4},
				{Severity: model.SeverityS4},
			},
		}

		result := BasicJourney(o)

		// 70 +5 -10 -10 -15 -20
		assert.Equal(t, 20, result.HealthScore)
		assert.Equal(t, model.RiskCritical, result.ChurnRisk)
	})

	t.Run("moderate load", func(t *testing.T) {
		o := &model.LinkedOrder{
			Deployments: []*model.Deployment{
				{CaseAgeDays: 10, Severity: model.SeverityS3},
			},
			SupportCases: []*model.SupportCase{
				{Severity: model.SeverityS3},
				{Severity: model.SeverityS4},
				{Severity: model.SeverityS4},
			},
		}

		result := BasicJourney(o)

		assert.Equal(t, 65, result.HealthScore)
		assert.Equal(t, model.RiskMedium, result.ChurnRisk)
	})
}

func TestApplyResults(t *testing.T) {
	dep := &model.Deployment{IsServiceDeploy: true}
	(&DeploymentAnalysis{Score: 82, IsServiceDeploy: false}).Apply(dep)
	assert.Equal(t, 82, dep.DeploymentScore)
	assert.True(t, dep.IsServiceDeploy, "detected service flag must survive")

	c := &model.SupportCase{IsRepeatIssue: true, RepeatOfCase: "70001"}
	related := true
	(&SupportAnalysis{
		FrustrationScore:   6.5,
		IssueClass:         "Component",
		IsHardwareFailure:  true,
		EscalationDetected: true,
		DeploymentRelated:  &related,
	}).Apply(c)
	assert.InDelta(t, 6.5, c.FrustrationScore, 0.001)
	assert.Equal(t, "Component", c.IssueClass)
	assert.True(t, c.IsHardwareFailure)
	assert.True(t, c.EscalationDetected)
	require.NotNil(t, c.DeploymentRelated)
	assert.True(t, *c.DeploymentRelated)
	assert.True(t, c.IsRepeatIssue, "repeat flags are owned by the detector")
	assert.Equal(t, "70001", c.RepeatOfCase)

	o := &model.LinkedOrder{}
	(&JourneyEvaluation{
		HealthScore:      42,
		ChurnRisk:        model.RiskHigh,
		CriticalFindings: []string{"replication backlog"},
	}).Apply(o)
	assert.Equal(t, 42, o.JourneyHealthScore)
	assert.Equal(t, model.RiskHigh, o.ChurnRisk)
	assert.Equal(t, []string{"replication backlog"}, o.CriticalFindings)
}
