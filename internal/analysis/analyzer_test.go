package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/success-cli/internal/model"
	"github.com/sells-group/success-cli/pkg/anthropic"
)

type stubClient struct {
	response string
	err      error
	lastReq  anthropic.MessageRequest
	calls    int
}

func (s *stubClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	s.lastReq = req
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: s.response}},
	}, nil
}

func TestAnalyzeDeployment(t *testing.T) {
	stub := &stubClient{response: "DEPLOYMENT_STATUS: Successful\nDEPLOYMENT_SCORE: 88\nIS_SERVICE_DEPLOY: No"}
	analyzer := NewAnalyzer(stub, WithRateLimit(1000))

	dep := &model.Deployment{
		CaseNumber:      "D-100",
		AccountName:     "Acme",
		CaseAgeDays:     9,
		IsServiceDeploy: true,
		Messages:        []string{"Install went smoothly."},
	}

	result, err := analyzer.AnalyzeDeployment(context.Background(), dep, nil)
	require.NoError(t, err)

	assert.Equal(t, 88, result.Score)
	assert.Equal(t, "Successful", result.Status)
	assert.True(t, result.IsServiceDeploy, "load-time detection wins over the model's No")
	assert.Equal(t, 9, result.TimeToDeployDays)
	assert.Equal(t, DefaultFastModel, result.Model)

	require.Len(t, stub.lastReq.Messages, 1)
	assert.Contains(t, stub.lastReq.Messages[0].Content, "Case Number: D-100")
	assert.NotContains(t, stub.lastReq.Messages[0].Content, "EXPECTATION_MATCH",
		"expectation tasks only appear with opportunity context")
}

func TestAnalyzeDeploymentWithOpportunityContext(t *testing.T) {
	stub := &stubClient{response: "DEPLOYMENT_SCORE: 70\nEXPECTATION_MATCH: Met"}
	analyzer := NewAnalyzer(stub, WithRateLimit(1000))

	dep := &model.Deployment{CaseNumber: "D-101"}
	opp := &model.Opportunity{PrimaryUseCase: "media production", ProductsQuoted: "F60-HA"}

	result, err := analyzer.AnalyzeDeployment(context.Background(), dep, opp)
	require.NoError(t, err)

	assert.Equal(t, "Met", result.ExpectationMatch)
	assert.Contains(t, stub.lastReq.Messages[0].Content, "CUSTOMER EXPECTATIONS (from Sales)")
	assert.Contains(t, stub.lastReq.Messages[0].Content, "media production")
}

func TestAnalyzeSupportCase(t *testing.T) {
	stub := &stubClient{response: "FRUSTRATION_SCORE: 6\nISSUE_CLASS: Systemic\nESCALATION_DETECTED: Yes"}
	analyzer := NewAnalyzer(stub, WithRateLimit(1000))

	c := &model.SupportCase{CaseNumber: "70001", CaseReason: "Performance"}
	deps := []*model.Deployment{{CaseNumber: "D-100", IsServiceDeploy: true}}

	result, err := analyzer.AnalyzeSupportCase(context.Background(), c, deps)
	require.NoError(t, err)

	assert.InDelta(t, 6.0, result.FrustrationScore, 0.001)
	assert.Equal(t, "Systemic", result.IssueClass)
	assert.True(t, result.EscalationDetected)
	assert.Contains(t, stub.lastReq.Messages[0].Content, "DEPLOYMENT HISTORY")
	assert.Contains(t, stub.lastReq.Messages[0].Content, "DEPLOYMENT_RELATED")
}

func TestEvaluateJourneyUsesDeepModel(t *testing.T) {
	stub := &stubClient{response: "JOURNEY_HEALTH_SCORE: 77\nCHURN_RISK: Low"}
	analyzer := NewAnalyzer(stub, WithRateLimit(1000))

	o := &model.LinkedOrder{OrderNumber: "1", AccountName: "Acme"}

	result, err := analyzer.EvaluateJourney(context.Background(), o)
	require.NoError(t, err)

	assert.Equal(t, 77, result.HealthScore)
	assert.Equal(t, model.RiskLow, result.ChurnRisk)
	assert.Equal(t, DefaultDeepModel, result.Model)
	assert.Equal(t, DefaultDeepModel, stub.lastReq.Model)
	assert.Contains(t, stub.lastReq.Messages[0].Content, "NO OPPORTUNITY DATA LINKED")
}

func TestAnalyzerErrorsDoNotFallBack(t *testing.T) {
	stub := &stubClient{err: errors.New("overloaded")}
	analyzer := NewAnalyzer(stub, WithRateLimit(1000))

	_, err := analyzer.AnalyzeDeployment(context.Background(), &model.Deployment{CaseNumber: "D-1"}, nil)
	assert.Error(t, err)
	assert.Equal(t, 1, stub.calls, "a failed call must not retry or degrade on its own")

	_, err = analyzer.EvaluateJourney(context.Background(), &model.LinkedOrder{OrderNumber: "1"})
	assert.Error(t, err)
}

func TestAnalyzerOptions(t *testing.T) {
	stub := &stubClient{response: "DEPLOYMENT_SCORE: 50"}
	analyzer := NewAnalyzer(stub,
		WithModels("fast-model", "deep-model"),
		WithMaxTokens(512),
		WithRateLimit(1000),
	)

	_, err := analyzer.AnalyzeDeployment(context.Background(), &model.Deployment{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "fast-model", stub.lastReq.Model)
	assert.Equal(t, int64(512), stub.lastReq.MaxTokens)
}

func TestAnalyzerRespectsCanceledContext(t *testing.T) {
	stub := &stubClient{response: "DEPLOYMENT_SCORE: 50"}
	analyzer := NewAnalyzer(stub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := analyzer.AnalyzeDeployment(ctx, &model.Deployment{}, nil)
	assert.Error(t, err)
	assert.Zero(t, stub.calls)
}
