package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileFor(t *testing.T) {
	tests := []struct {
		model    string
		encoding string
	}{
		{"gpt-4o", "o200k_base"},
		{"claude-sonnet-4-20250514", "o200k_base"},
		{"qwen-max", "cl100k_base"},
		{"deepseek-chat", "cl100k_base"},
		{"Gemini-1.5-Pro", "cl100k_base"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.encoding, ProfileFor(tt.model).Encoding, tt.model)
	}

	// 未识别家族回退中性画像
	p := ProfileFor("totally-unknown-model")
	assert.Equal(t, neutralProfile, p)
}

func TestEstimateBounds(t *testing.T) {
	e := NewEstimator()

	assert.Equal(t, 0, e.Estimate("", "gpt-4o"))
	assert.GreaterOrEqual(t, e.Estimate("a", "gpt-4o"), 1)
	assert.GreaterOrEqual(t, e.Estimate(".", "totally-unknown-model"), 1)
}

func TestEstimateCJKFactor(t *testing.T) {
	e := NewEstimator()
	cjk := strings.Repeat("实现多租户路由引擎", 20)

	// qwen 与中性画像共用参照编码，纯中日韩文本按 0.5 系数应明显更少
	qwen := e.Estimate(cjk, "qwen-max")
	neutral := e.Estimate(cjk, "totally-unknown-model")
	assert.Less(t, qwen, neutral)

	// 纯英文文本两者系数相同，估算一致
	en := strings.Repeat("the quick brown fox ", 20)
	assert.Equal(t, e.Estimate(en, "totally-unknown-model"), e.Estimate(en, "qwen-max"))
}

func TestEstimateInterpolation(t *testing.T) {
	e := NewEstimator()
	cjk := strings.Repeat("多语言混排文本", 30)
	mixed := strings.Repeat("mixed 混排 text ", 30)

	// 混排文本的修正系数介于英文与中日韩系数之间
	pure := e.Estimate(cjk, "qwen-max")
	neutralPure := e.Estimate(cjk, "totally-unknown-model")
	assert.Less(t, pure, neutralPure)

	mixedQwen := e.Estimate(mixed, "qwen-max")
	mixedNeutral := e.Estimate(mixed, "totally-unknown-model")
	assert.LessOrEqual(t, mixedQwen, mixedNeutral)
}

func TestEstimateCode(t *testing.T) {
	e := NewEstimator()
	code := strings.Repeat("func main() { fmt.Println(\"hello\") }\n", 10)

	// mistral 代码系数 0.77，低于中性画像
	assert.Less(t, e.EstimateCode(code, "mistral-large"), e.EstimateCode(code, "totally-unknown-model"))
}

func TestEstimateMessages(t *testing.T) {
	e := NewEstimator()

	assert.Equal(t, 0, e.EstimateMessages(nil, "gpt-4o"))

	msgs := []Message{
		{Role: "system", Content: "you are a helpful assistant"},
		{Role: "user", Content: "hello"},
	}
	total := e.EstimateMessages(msgs, "gpt-4o")
	content := e.Estimate(msgs[0].Content, "gpt-4o") + e.Estimate(msgs[1].Content, "gpt-4o")
	assert.Equal(t, content+2*perMessageOverhead, total)

	// 空内容消息仍计元数据开销
	assert.Equal(t, perMessageOverhead, e.EstimateMessages([]Message{{Role: "user"}}, "gpt-4o"))
}
