package anthropic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateCost(t *testing.T) {
	usage := TokenUsage{
		InputTokens:  1_000_000,
		OutputTokens: 500_000,
	}

	// 1M input at $0.80 + 0.5M output at $4.00.
	assert.InDelta(t, 2.80, usage.EstimateCost("claude-haiku-4-5-20251001"), 0.001)
	assert.Zero(t, usage.EstimateCost("unknown-model"))
}

func TestEstimateCostCacheTokens(t *testing.T) {
	usage := TokenUsage{
		CacheCreationInputTokens: 1_000_000,
		CacheReadInputTokens:     1_000_000,
	}

	// Cache writes bill at 1.25x input, reads at 0.1x.
	assert.InDelta(t, 0.80*1.25+0.80*0.1, usage.EstimateCost("claude-haiku-4-5-20251001"), 0.001)
}

func TestMessageResponseText(t *testing.T) {
	resp := &MessageResponse{
		Content: []ContentBlock{
			{Type: "text", Text: "first"},
			{Type: "text", Text: " second"},
		},
	}

	assert.Equal(t, "first second", resp.Text())
}
