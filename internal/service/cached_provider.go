package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"mango/internal/pkg/cache"
	"mango/internal/pkg/scripttools"
)

// CachedProvider 分类能力的缓存装饰器
// 命中缓存时跳过外部模型调用；缓存读写失败只记日志，不影响分类
type CachedProvider struct {
	inner scripttools.ClassifierProvider
	cache *cache.RedisCache
	ttl   time.Duration
}

// NewCachedProvider 创建缓存装饰器
func NewCachedProvider(inner scripttools.ClassifierProvider, rc *cache.RedisCache, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = cache.ClassifyCacheTTL
	}
	return &CachedProvider{inner: inner, cache: rc, ttl: ttl}
}

// Classify 先查缓存，未命中时调用内层能力并回填
func (p *CachedProvider) Classify(ctx context.Context, text, model string) ([]scripttools.RankedLabel, error) {
	key := cache.ClassifyCacheKey(model, text)

	var cached []scripttools.RankedLabel
	if err := p.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	labels, err := p.inner.Classify(ctx, text, model)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, key, labels, p.ttl); err != nil {
		log.Warn().Err(err).Str("model", model).Msg("failed to cache classification result")
	}
	return labels, nil
}
