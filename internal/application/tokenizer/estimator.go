// Package tokenizer 提供按模型家族修正的 token 估算
package tokenizer

import (
	"math"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Profile 模型家族的估算画像
type Profile struct {
	// VocabSize 词表规模，仅作参考信息
	VocabSize int
	// Encoding 参照分词器编码名
	Encoding string
	// EnFactor 英文文本修正系数
	EnFactor float64
	// CJKFactor 中日韩文本修正系数
	CJKFactor float64
	// CodeFactor 代码文本修正系数
	CodeFactor float64
}

// familyProfile 按模型名子串匹配的家族画像表，匹配按声明顺序进行
type familyProfile struct {
	keywords []string
	profile  Profile
}

var familyProfiles = []familyProfile{
	{[]string{"gpt", "openai"}, Profile{200000, "o200k_base", 1.00, 1.00, 1.00}},
	{[]string{"claude", "anthropic"}, Profile{200000, "o200k_base", 1.11, 1.25, 1.00}},
	{[]string{"grok"}, Profile{200000, "o200k_base", 1.00, 1.00, 1.00}},
	{[]string{"qwen"}, Profile{152064, "cl100k_base", 1.00, 0.50, 0.91}},
	{[]string{"kimi", "moonshot"}, Profile{160000, "cl100k_base", 1.00, 0.50, 1.00}},
	{[]string{"glm", "chatglm"}, Profile{151552, "cl100k_base", 1.00, 0.56, 1.00}},
	{[]string{"deepseek"}, Profile{129280, "cl100k_base", 1.11, 0.56, 0.91}},
	{[]string{"mistral"}, Profile{131072, "cl100k_base", 0.91, 0.77, 0.77}},
	{[]string{"gemini", "gemma"}, Profile{256000, "cl100k_base", 1.00, 0.67, 0.83}},
}

// neutralProfile 未识别家族时的中性画像
var neutralProfile = Profile{100000, "cl100k_base", 1.00, 1.00, 1.00}

// ProfileFor 根据模型名匹配家族画像
func ProfileFor(model string) Profile {
	lower := strings.ToLower(model)
	for _, fp := range familyProfiles {
		for _, kw := range fp.keywords {
			if strings.Contains(lower, kw) {
				return fp.profile
			}
		}
	}
	return neutralProfile
}

// Estimator 基于参照分词器与家族修正系数的估算器
type Estimator struct {
	encodings sync.Map // encoding name -> *tiktoken.Tiktoken
}

// NewEstimator 创建估算器
func NewEstimator() *Estimator {
	return &Estimator{}
}

// getEncoding 获取并缓存参照分词器，初始化失败时返回 nil
func (e *Estimator) getEncoding(name string) *tiktoken.Tiktoken {
	if v, ok := e.encodings.Load(name); ok {
		enc, _ := v.(*tiktoken.Tiktoken)
		return enc
	}

	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		// 缓存失败结果，避免反复初始化
		e.encodings.Store(name, (*tiktoken.Tiktoken)(nil))
		return nil
	}
	e.encodings.Store(name, enc)
	return enc
}

// baseCount 参照分词器的基准 token 数，不可用时退化为字节数/4
func (e *Estimator) baseCount(text, encoding string) int {
	if enc := e.getEncoding(encoding); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	return (len(text) + 3) / 4
}

// cjkRatio 统计中日韩字符占比
func cjkRatio(text string) float64 {
	if text == "" {
		return 0
	}
	total, cjk := 0, 0
	for _, r := range text {
		total++
		if isCJK(r) {
			cjk++
		}
	}
	return float64(cjk) / float64(total)
}

// isCJK 判断字符是否属于中日韩区段（含全角标点与韩文音节）
func isCJK(r rune) bool {
	switch {
	case r >= 0x3000 && r <= 0x9FFF:
		return true
	case r >= 0xAC00 && r <= 0xD7AF:
		return true
	case r >= 0xFF00 && r <= 0xFFEF:
		return true
	}
	return false
}

// Estimate 估算文本的 token 数
// 基准数按家族系数修正：系数在英文与中日韩系数间按中日韩占比线性插值
// 向上取整，非空文本至少为 1，空文本为 0
func (e *Estimator) Estimate(text, model string) int {
	return e.estimate(text, model, false)
}

// EstimateCode 按代码文本估算 token 数
func (e *Estimator) EstimateCode(text, model string) int {
	return e.estimate(text, model, true)
}

func (e *Estimator) estimate(text, model string, isCode bool) int {
	if text == "" {
		return 0
	}

	profile := ProfileFor(model)
	base := e.baseCount(text, profile.Encoding)

	var factor float64
	if isCode {
		factor = profile.CodeFactor
	} else {
		ratio := cjkRatio(text)
		factor = profile.EnFactor + (profile.CJKFactor-profile.EnFactor)*ratio
	}

	n := int(math.Ceil(float64(base) * factor))
	if n < 1 {
		n = 1
	}
	return n
}

// Message 估算输入的单条消息
type Message struct {
	Role    string
	Content string
}

// 每条消息的元数据开销（role 标记、分隔符）
const perMessageOverhead = 4

// EstimateMessages 估算一组对话消息的 token 总数
func (e *Estimator) EstimateMessages(messages []Message, model string) int {
	total := 0
	for _, m := range messages {
		total += e.Estimate(m.Content, model)
		total += perMessageOverhead
	}
	if total == 0 && len(messages) > 0 {
		total = 1
	}
	return total
}
