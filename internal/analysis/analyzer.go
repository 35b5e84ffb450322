package analysis

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/success-cli/internal/model"
	"github.com/sells-group/success-cli/pkg/anthropic"
)

// Default models per layer. Deployment and support analysis run on the fast
// model; cross-layer evaluation needs the deeper one.
const (
	DefaultFastModel = "claude-haiku-4-5-20251001"
	DefaultDeepModel = "claude-sonnet-4-5-20250929"

	defaultMaxTokens = 2048
)

const (
	deploymentSystemPrompt = "You are analyzing deployment case data to assess installation success. " +
		"Focus on identifying issues, assessing service quality, and evaluating " +
		"whether customer expectations were met. Be concise and factual."
	supportSystemPrompt = "You are analyzing customer support cases for field performance issues. " +
		"Focus on identifying root causes, frustration levels, and actionable insights. " +
		"Be concise and factual."
	evaluationSystemPrompt = "You are performing cross-layer analysis of customer journeys from sale to support. " +
		"Focus on correlating expectations with reality, identifying patterns, and providing " +
		"actionable insights for relationship management. Be concise but thorough."
)

// Analyzer runs LLM-backed analysis. Calls share a rate limiter; each call is
// independent and returns an error on failure rather than degrading to the
// basic stage itself.
type Analyzer struct {
	client    anthropic.Client
	limiter   *rate.Limiter
	fastModel string
	deepModel string
	maxTokens int64
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithModels overrides the fast (deployment/support) and deep (evaluation)
// models.
func WithModels(fast, deep string) Option {
	return func(a *Analyzer) {
		a.fastModel = fast
		a.deepModel = deep
	}
}

// WithRateLimit sets the request rate in requests per second.
func WithRateLimit(rps float64) Option {
	return func(a *Analyzer) {
		a.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithMaxTokens caps the response size per call.
func WithMaxTokens(n int64) Option {
	return func(a *Analyzer) {
		a.maxTokens = n
	}
}

// NewAnalyzer builds an Analyzer over an Anthropic client.
func NewAnalyzer(client anthropic.Client, opts ...Option) *Analyzer {
	a := &Analyzer{
		client:    client,
		limiter:   rate.NewLimiter(rate.Limit(2), 1),
		fastModel: DefaultFastModel,
		deepModel: DefaultDeepModel,
		maxTokens: defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeDeployment assesses a deployment case, matching against sales
// expectations when an opportunity is linked.
func (a *Analyzer) AnalyzeDeployment(ctx context.Context, d *model.Deployment, opp *model.Opportunity) (*DeploymentAnalysis, error) {
	text, err := a.complete(ctx, a.fastModel, deploymentSystemPrompt, deploymentPrompt(d, opp), "deployment")
	if err != nil {
		return nil, eris.Wrapf(err, "analysis: deployment %s", d.CaseNumber)
	}

	result := parseDeploymentResponse(text)
	result.Model = a.fastModel
	result.IsServiceDeploy = d.IsServiceDeploy || result.IsServiceDeploy
	result.TimeToDeployDays = d.CaseAgeDays

	return result, nil
}

// AnalyzeSupportCase assesses a support case, with deployment history as
// context when available.
func (a *Analyzer) AnalyzeSupportCase(ctx context.Context, c *model.SupportCase, deployments []*model.Deployment) (*SupportAnalysis, error) {
	text, err := a.complete(ctx, a.fastModel, supportSystemPrompt, supportPrompt(c, deployments), "support")
	if err != nil {
		return nil, eris.Wrapf(err, "analysis: support case %s", c.CaseNumber)
	}

	result := parseSupportResponse(text)
	result.Model = a.fastModel

	return result, nil
}

// EvaluateJourney correlates the three layers of a linked order.
func (a *Analyzer) EvaluateJourney(ctx context.Context, o *model.LinkedOrder) (*JourneyEvaluation, error) {
	text, err := a.complete(ctx, a.deepModel, evaluationSystemPrompt, evaluationPrompt(o), "evaluation")
	if err != nil {
		return nil, eris.Wrapf(err, "analysis: evaluate order %s", o.OrderNumber)
	}

	result := parseEvaluationResponse(text)
	result.Model = a.deepModel

	return result, nil
}

func (a *Analyzer) complete(ctx context.Context, llmModel, system, prompt, phase string) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "analysis: rate limiter")
	}

	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     llmModel,
		MaxTokens: a.maxTokens,
		System:    []anthropic.SystemBlock{{Text: system}},
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	resp.Usage.LogCost(llmModel, phase)

	text := resp.Text()
	if text == "" {
		zap.L().Warn("analysis: empty response", zap.String("model", llmModel), zap.String("phase", phase))
	}

	return text, nil
}
