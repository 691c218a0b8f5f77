package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"mango/internal/pkg/scripttools"
)

// EinoProvider 基于 eino ChatModel 的情感分类能力实现
// 按模型标识路由到预构建的 ChatModel，提示词要求严格 JSON 输出
type EinoProvider struct {
	models map[string]model.ChatModel
}

// NewEinoProvider 创建 provider
// models 以模型标识为键（与 ModelTier 中配置的标识一致）
func NewEinoProvider(models map[string]model.ChatModel) *EinoProvider {
	return &EinoProvider{models: models}
}

// Classify 调用指定 ChatModel 做情感分类，解析其 JSON 数组输出
func (p *EinoProvider) Classify(ctx context.Context, text, modelID string) ([]scripttools.RankedLabel, error) {
	chatModel, ok := p.models[modelID]
	if !ok {
		return nil, fmt.Errorf("chat model %q is not configured", modelID)
	}

	messages := []*schema.Message{
		schema.UserMessage(buildClassifyPrompt(text)),
	}
	resp, err := chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("chat model generate: %w", err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return nil, fmt.Errorf("chat model returned empty content")
	}
	return parseRankedLabels(resp.Content)
}

func buildClassifyPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("You are an emotion classifier for screenplay scenes.\n")
	sb.WriteString("Respond with a single JSON array and nothing else. Each element is an object\n")
	sb.WriteString(`{"label": string, "score": number} where score is in [0,1].` + "\n")
	sb.WriteString("Return the top 3 emotions sorted by score descending.\n")
	sb.WriteString("Use lowercase single-word labels such as: joy, fear, anger, sadness, love, surprise, disgust, suspense, neutral.\n\n")
	sb.WriteString("Scene text:\n")
	sb.WriteString(text)
	return sb.String()
}

// parseRankedLabels 解析模型输出，容忍 markdown 代码块包裹
func parseRankedLabels(content string) ([]scripttools.RankedLabel, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var labels []scripttools.RankedLabel
	if err := json.Unmarshal([]byte(content), &labels); err != nil {
		return nil, fmt.Errorf("parse classification response: %w", err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("classification response contained no labels")
	}
	for i := range labels {
		if labels[i].Score < 0 {
			labels[i].Score = 0
		}
		if labels[i].Score > 1 {
			labels[i].Score = 1
		}
	}
	return labels, nil
}
