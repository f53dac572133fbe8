// Package secret 提供凭证加密存储能力
package secret

import (
	"os"
	"regexp"
)

// 形如 {OPENAI_API_KEY} 的环境变量占位符
var placeholderRe = regexp.MustCompile(`^\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// IsPlaceholder 检查值是否为环境变量占位符
func IsPlaceholder(s string) bool {
	return placeholderRe.MatchString(s)
}

// ResolvePlaceholder 解析环境变量占位符
// 非占位符原样返回；占位符指向的变量未定义时返回空串
func ResolvePlaceholder(s string) string {
	m := placeholderRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	return os.Getenv(m[1])
}
