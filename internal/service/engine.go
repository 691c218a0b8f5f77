package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"mango/internal/ai/component"
	"mango/internal/config"
	"mango/internal/pkg/cache"
	"mango/internal/pkg/scripttools"
	"mango/internal/pkg/scripttools/providers"
)

// BuildAnalyzer 按配置组装分析流水线
// 未配置 API Key 或模型构建失败时退化为纯本地启发式路径（不报错，记 Warn）
func BuildAnalyzer(ctx context.Context, cfg *config.Config, rc *cache.RedisCache) *scripttools.Analyzer {
	classifier := buildClassifier(ctx, cfg, rc)

	analyzer := scripttools.NewAnalyzer(classifier)
	analyzer.SetMaxScenes(cfg.Engine.MaxScenes)
	if cfg.Engine.PacingInterval > 0 {
		analyzer.SetPacer(scripttools.NewIntervalPacer(cfg.Engine.PacingInterval))
	}
	return analyzer
}

func buildClassifier(ctx context.Context, cfg *config.Config, rc *cache.RedisCache) *scripttools.EmotionClassifier {
	if cfg.AI.APIKey == "" {
		log.Warn().Msg("AI API key not configured, using local heuristic classification only")
		return nil
	}

	models, err := component.BuildModels(ctx, &cfg.AI)
	if err != nil {
		log.Warn().Err(err).Msg("failed to build chat models, using local heuristic classification only")
		return nil
	}
	if len(models) == 0 {
		log.Warn().Msg("no classification models configured, using local heuristic classification only")
		return nil
	}

	var provider scripttools.ClassifierProvider = providers.NewEinoProvider(models)
	if rc != nil {
		provider = NewCachedProvider(provider, rc, cfg.Engine.CacheTTL)
	}

	classifier := scripttools.NewEmotionClassifier(provider, scripttools.ModelTier{
		Primary:  cfg.AI.Models.Primary,
		Fallback: cfg.AI.Models.Fallback,
	})
	classifier.SetCallTimeout(cfg.Engine.ClassifyTimeout)
	for lang, tier := range cfg.AI.Models.Language {
		classifier.SetLanguageTier(lang, scripttools.ModelTier{
			Primary:  tier.Primary,
			Fallback: tier.Fallback,
		})
	}
	return classifier
}
