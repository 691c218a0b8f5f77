package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"mango/internal/model/analysis"
	"mango/internal/pkg/id"
	"mango/internal/pkg/scripttools"
	analysisRepo "mango/internal/repository/analysis"
)

// AnalysisService 文档分析服务
// 封装场景切分与情感分类流水线，并负责分析结果的持久化（可选）
type AnalysisService struct {
	analyzer *scripttools.Analyzer
	repo     analysisRepo.AnalysisRepository // 可为 nil（未配置 MongoDB 时只计算不落库）
}

// NewAnalysisService 创建分析服务
func NewAnalysisService(analyzer *scripttools.Analyzer, repo analysisRepo.AnalysisRepository) *AnalysisService {
	return &AnalysisService{analyzer: analyzer, repo: repo}
}

// Analyze 对一篇文档执行完整分析并返回结果
// 空白文档返回 scripttools.ErrEmptyDocument；持久化失败不阻断结果返回
func (s *AnalysisService) Analyze(ctx context.Context, documentText, languageHint string) (*analysis.Analysis, error) {
	scenes, err := s.analyzer.Run(ctx, documentText, languageHint)
	if err != nil {
		return nil, err
	}

	fallbackScenes := 0
	for _, sc := range scenes {
		if sc.FallbackUsed {
			fallbackScenes++
		}
	}

	status := analysis.StatusCompleted
	switch {
	case fallbackScenes == len(scenes) && len(scenes) > 0:
		status = analysis.StatusFallback
	case fallbackScenes > 0:
		status = analysis.StatusPartial
	}

	result := &analysis.Analysis{
		ID:             id.New(),
		DocumentText:   documentText,
		LanguageHint:   languageHint,
		Detection:      s.analyzer.Detect(documentText, languageHint),
		Scenes:         scenes,
		Status:         status,
		SceneCount:     len(scenes),
		FallbackScenes: fallbackScenes,
	}

	if s.repo != nil {
		if err := s.repo.Create(ctx, result); err != nil {
			log.Warn().Err(err).Str("analysis_id", result.ID).Msg("failed to persist analysis")
		}
	} else {
		now := time.Now()
		result.CreatedAt = now
		result.UpdatedAt = now
	}

	return result, nil
}

// GetAnalysis 根据ID查询分析结果
func (s *AnalysisService) GetAnalysis(ctx context.Context, analysisID string) (*analysis.Analysis, error) {
	if s.repo == nil {
		return nil, errors.New("persistence not configured")
	}
	a, err := s.repo.FindByID(ctx, analysisID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New("analysis not found")
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return a, nil
}

// ListAnalyses 分页查询分析结果
func (s *AnalysisService) ListAnalyses(ctx context.Context, limit, offset int64) ([]*analysis.Analysis, error) {
	if s.repo == nil {
		return nil, errors.New("persistence not configured")
	}
	return s.repo.List(ctx, limit, offset)
}
