package scripttools

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrEmptyDocument 文档为空或仅含空白，流水线的唯一快速失败场景
var ErrEmptyDocument = errors.New("document has no content")

// IntervalPacer 固定间隔节流器：相邻两次 Wait 返回至少间隔 interval
type IntervalPacer struct {
	interval time.Duration
	last     time.Time
}

// NewIntervalPacer 创建固定间隔节流器
func NewIntervalPacer(interval time.Duration) *IntervalPacer {
	return &IntervalPacer{interval: interval}
}

// Wait 等待到距上次调用至少 interval；ctx 取消时立即返回
func (p *IntervalPacer) Wait(ctx context.Context) {
	if p.interval <= 0 {
		return
	}
	if !p.last.IsZero() {
		if wait := p.interval - time.Since(p.last); wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
			}
		}
	}
	p.last = time.Now()
}

type noopPacer struct{}

func (noopPacer) Wait(context.Context) {}

// Analyzer 流水线协调器
// 串联切分→特征提取→分类，外部分类失败时逐场景隔离降级到本地启发式
type Analyzer struct {
	segmenter  *SceneSegmenter
	extractor  *FeatureExtractor
	detector   *LanguageDetector
	classifier *EmotionClassifier
	local      *LocalClassifier
	pacer      Pacer
}

// NewAnalyzer 创建流水线实例
// classifier 可为 nil：此时所有场景走本地启发式路径
func NewAnalyzer(classifier *EmotionClassifier) *Analyzer {
	return &Analyzer{
		segmenter:  NewSceneSegmenter(),
		extractor:  NewFeatureExtractor(),
		detector:   NewLanguageDetector(),
		classifier: classifier,
		local:      NewLocalClassifier(),
		pacer:      noopPacer{},
	}
}

// SetPacer 设置外部调用节流器
func (a *Analyzer) SetPacer(p Pacer) {
	if p != nil {
		a.pacer = p
	}
}

// SetMaxScenes 设置最大场景数
func (a *Analyzer) SetMaxScenes(n int) {
	a.segmenter.SetMaxScenes(n)
}

// Detect 对整篇文档做语言与格式检测（每篇文档只检测一次）
func (a *Analyzer) Detect(documentText, languageHint string) Detection {
	return a.detector.Detect(documentText, languageHint)
}

// Run 对整篇文档执行场景切分与情感分类
//
// 空白文档返回 ErrEmptyDocument。语言每篇文档只检测一次，所有场景共享。
// 场景按顺序处理，彼此隔离：单个场景的外部分类失败仅降级该场景，
// 不影响其余场景。ctx 取消时返回已完成的部分结果与 ctx.Err()
func (a *Analyzer) Run(ctx context.Context, documentText, languageHint string) ([]Scene, error) {
	if strings.TrimSpace(documentText) == "" {
		return nil, ErrEmptyDocument
	}

	detection := a.detector.Detect(documentText, languageHint)
	spans := a.segmenter.Segment(documentText)

	scenes := make([]Scene, 0, len(spans))
	for i, span := range spans {
		select {
		case <-ctx.Done():
			return scenes, ctx.Err()
		default:
		}

		features := a.extractor.Extract(span.Text)
		scene := Scene{
			SceneNumber:   i + 1,
			Header:        span.Header,
			Content:       span.Text,
			Characters:    features.Characters,
			DialogueLines: features.DialogueLines,
			ActionLines:   features.ActionLines,
			Language:      detection.Language,
		}

		result := a.classifyScene(ctx, features.Input, span.Text, detection.Language)
		scene.Emotion = result.Emotion
		scene.Confidence = result.Confidence
		scene.Alternates = result.Alternates
		scene.FallbackUsed = result.fallbackUsed
		scenes = append(scenes, scene)
	}
	return scenes, nil
}

type classifiedScene struct {
	Emotion      Emotion
	Confidence   float64
	Alternates   []EmotionScore
	fallbackUsed bool
}

// classifyScene 单场景分类：外部路径优先，失败时降级本地启发式
func (a *Analyzer) classifyScene(ctx context.Context, input, original, lang string) classifiedScene {
	if a.classifier != nil {
		a.pacer.Wait(ctx)
		result, err := a.classifier.Classify(ctx, input, original, lang)
		if err == nil {
			return classifiedScene{
				Emotion:    result.Emotion,
				Confidence: result.Confidence,
				Alternates: result.Alternates,
			}
		}
		log.Warn().Err(err).Str("language", lang).
			Msg("external classification failed, falling back to local heuristics")
	}

	emotion, confidence := a.local.Classify(original)
	return classifiedScene{
		Emotion:      emotion,
		Confidence:   confidence,
		fallbackUsed: true,
	}
}
