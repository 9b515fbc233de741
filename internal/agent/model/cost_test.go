package model

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
)

func TestResolvePricing(t *testing.T) {
	p := ResolvePricing("gpt-4o-mini")
	assert.Equal(t, 0.15, p.InputPerM)
	assert.Equal(t, 0.60, p.OutputPerM)

	// unknown models price at zero rather than guessing
	unknown := ResolvePricing("gpt-9-experimental")
	assert.Zero(t, unknown.InputPerM)
	assert.Zero(t, unknown.OutputPerM)
}

func TestComputeCost(t *testing.T) {
	usage := &schema.TokenUsage{PromptTokens: 1_000_000, CompletionTokens: 500_000}

	in, out, total := ComputeCost(usage, ResolvePricing("gpt-4o-mini"))
	assert.InDelta(t, 0.15, in, 1e-9)
	assert.InDelta(t, 0.30, out, 1e-9)
	assert.InDelta(t, 0.45, total, 1e-9)

	in, out, total = ComputeCost(nil, ResolvePricing("gpt-4o-mini"))
	assert.Zero(t, in)
	assert.Zero(t, out)
	assert.Zero(t, total)

	_, _, total = ComputeCost(usage, ResolvePricing("unknown"))
	assert.Zero(t, total)
}
