// Package routing 提供租户请求意图到具体平台/模型/凭证的解析
package routing

// streamingKey 流式开关由调用层自行控制，参数包中一律剔除
const streamingKey = "streaming"

// MergeParams 合并模型默认参数与调用方参数，调用方优先
// 返回新 map，不修改入参；streaming 键被剔除
func MergeParams(defaults, overrides map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	delete(merged, streamingKey)
	return merged
}
