package scripttools

import "context"

// RankedLabel 外部分类器返回的带分标签
type RankedLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassifierProvider 外部情感分类能力接口
// 由调用方注入具体实现（如 eino ChatModel 封装），引擎本身不依赖任何 SDK
type ClassifierProvider interface {
	// Classify 对文本做情感分类
	//
	// Args:
	//   - ctx: 上下文（带超时）
	//   - text: 待分类文本（已浓缩，<=512字符）
	//   - model: 模型标识（由编排器按语言档位选择）
	//
	// Returns:
	//   - []RankedLabel: 按得分降序的候选标签
	//   - error: 调用失败或返回内容不可解析
	Classify(ctx context.Context, text, model string) ([]RankedLabel, error)
}

// Pacer 协作式延迟接口，用于外部调用间的节流
// 仅在真正发起外部调用前等待，本地启发式路径不受影响
type Pacer interface {
	Wait(ctx context.Context)
}
