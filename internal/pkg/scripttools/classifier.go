package scripttools

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

// ModelTier 模型档位：主模型失败后单次降级到备用模型
type ModelTier struct {
	Primary  string
	Fallback string
}

// ClassifyResult 编排器输出
type ClassifyResult struct {
	Emotion    Emotion        // 规范情感标签
	Confidence float64        // 置信度 [0,1]
	Alternates []EmotionScore // 0-2个备选标签
}

// EmotionClassifier 情感分类编排器
// 按语言选择模型档位，调用外部分类能力，对候选做语境加权重排后产出规范标签
type EmotionClassifier struct {
	provider    ClassifierProvider
	tiers       map[string]ModelTier
	defaultTier ModelTier
	callTimeout time.Duration
}

// NewEmotionClassifier 创建编排器实例
func NewEmotionClassifier(provider ClassifierProvider, defaultTier ModelTier) *EmotionClassifier {
	return &EmotionClassifier{
		provider:    provider,
		tiers:       map[string]ModelTier{},
		defaultTier: defaultTier,
		callTimeout: 30 * time.Second,
	}
}

// SetLanguageTier 为指定语言设置专用模型档位
func (ec *EmotionClassifier) SetLanguageTier(lang string, tier ModelTier) {
	ec.tiers[lang] = tier
}

// SetCallTimeout 设置单次外部调用超时（<=0 时保持默认值）
func (ec *EmotionClassifier) SetCallTimeout(d time.Duration) {
	if d > 0 {
		ec.callTimeout = d
	}
}

// boostRule 语境加权规则：原文命中模式时对目标标签得分乘以相应倍数
type boostRule struct {
	pattern *regexp.Regexp
	targets map[string]float64
}

var boostRules = []boostRule{
	{
		pattern: regexp.MustCompile(`(?i)\b(night|dark|darkness|storm|shadow|thunder)\b`),
		targets: map[string]float64{"fear": 1.3, "terror": 1.3, "suspense": 1.3, "tension": 1.3},
	},
	{
		pattern: regexp.MustCompile(`(?i)\b(sunny|sunshine|garden|party|celebration|wedding)\b`),
		targets: map[string]float64{"joy": 1.25, "happiness": 1.25, "love": 1.15},
	},
	{
		pattern: regexp.MustCompile(`(?i)\b(blood|knife|gun|corpse|dead body)\b`),
		targets: map[string]float64{"fear": 1.25, "horror": 1.3, "disgust": 1.2},
	},
	{
		pattern: regexp.MustCompile(`!{2,}`),
		targets: map[string]float64{"anger": 1.2, "rage": 1.2, "excitement": 1.2},
	},
	{
		pattern: regexp.MustCompile(`\?{2,}`),
		targets: map[string]float64{"confusion": 1.2, "surprise": 1.2},
	},
}

// Classify 对一个场景做情感分类
//
// 流程：按语言取模型档位（无则默认档位）→ 调主模型，失败后单次降级到备用模型 →
// 取前3候选 → 按原文语境加权重排（得分×倍数，严格大于才换胜者，平局保持先见者）→
// 胜者映射为规范标签，其余候选成为至多2个备选
//
// Args:
//   - ctx: 上下文
//   - input: 浓缩后的分类输入
//   - original: 场景原文（语境加权在原文上匹配）
//   - lang: 文档语言
func (ec *EmotionClassifier) Classify(ctx context.Context, input, original, lang string) (ClassifyResult, error) {
	if ec.provider == nil {
		return ClassifyResult{}, fmt.Errorf("no classifier provider configured")
	}

	tier, ok := ec.tiers[lang]
	if !ok {
		tier = ec.defaultTier
	}

	labels, err := ec.classifyTier(ctx, input, tier.Primary)
	if err != nil {
		var fbErr error
		labels, fbErr = ec.classifyTier(ctx, input, tier.Fallback)
		if fbErr != nil {
			return ClassifyResult{}, fmt.Errorf("both classification tiers failed: primary: %w; fallback: %v", err, fbErr)
		}
	}
	if len(labels) > 3 {
		labels = labels[:3]
	}

	boosts := contextBoosts(original)
	winner := 0
	best := labels[0].Score * boostFor(boosts, labels[0].Label)
	for i := 1; i < len(labels); i++ {
		boosted := labels[i].Score * boostFor(boosts, labels[i].Label)
		if boosted > best {
			best = boosted
			winner = i
		}
	}

	result := ClassifyResult{
		Emotion:    CanonicalEmotion(labels[winner].Label),
		Confidence: clamp01(best),
	}
	for i, rl := range labels {
		if i == winner || len(result.Alternates) >= 2 {
			continue
		}
		result.Alternates = append(result.Alternates, EmotionScore{
			Emotion: CanonicalEmotion(rl.Label),
			Score:   clamp01(rl.Score),
		})
	}
	return result, nil
}

// classifyTier 调用单个模型档位；空候选视为本档位失败（与调用出错同等处理）
func (ec *EmotionClassifier) classifyTier(ctx context.Context, input, model string) ([]RankedLabel, error) {
	if model == "" {
		return nil, fmt.Errorf("no model configured for tier")
	}
	callCtx, cancel := context.WithTimeout(ctx, ec.callTimeout)
	defer cancel()

	labels, err := ec.provider.Classify(callCtx, input, model)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("classifier returned no labels")
	}
	return labels, nil
}

// contextBoosts 在原文上匹配加权规则，同一标签取最大倍数
func contextBoosts(original string) map[string]float64 {
	boosts := map[string]float64{}
	for _, rule := range boostRules {
		if !rule.pattern.MatchString(original) {
			continue
		}
		for label, mult := range rule.targets {
			if mult > boosts[label] {
				boosts[label] = mult
			}
		}
	}
	return boosts
}

func boostFor(boosts map[string]float64, label string) float64 {
	if m, ok := boosts[normalizeLabel(label)]; ok {
		return m
	}
	return 1.0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
