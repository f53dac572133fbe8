package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeParamsCallerWins(t *testing.T) {
	defaults := map[string]any{"temperature": 0.7, "top_p": 0.9}
	overrides := map[string]any{"temperature": 0.2, "max_tokens": 1024}

	merged := MergeParams(defaults, overrides)

	assert.Equal(t, 0.2, merged["temperature"])
	assert.Equal(t, 0.9, merged["top_p"])
	assert.Equal(t, 1024, merged["max_tokens"])
}

func TestMergeParamsStripsStreaming(t *testing.T) {
	merged := MergeParams(
		map[string]any{"streaming": true, "temperature": 0.7},
		map[string]any{"streaming": false},
	)

	_, ok := merged["streaming"]
	assert.False(t, ok)
	assert.Equal(t, 0.7, merged["temperature"])
}

func TestMergeParamsDoesNotMutateInputs(t *testing.T) {
	defaults := map[string]any{"temperature": 0.7}
	overrides := map[string]any{"temperature": 0.2}

	merged := MergeParams(defaults, overrides)
	merged["temperature"] = 1.0

	assert.Equal(t, 0.7, defaults["temperature"])
	assert.Equal(t, 0.2, overrides["temperature"])
}

func TestMergeParamsNilInputs(t *testing.T) {
	assert.Empty(t, MergeParams(nil, nil))
	assert.Equal(t, map[string]any{"k": "v"}, MergeParams(nil, map[string]any{"k": "v"}))
}
