package scripttools

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// stubProvider 可编程的分类能力桩：按模型标识返回预设结果或错误并记录调用序列
type stubProvider struct {
	responses map[string][]RankedLabel
	errs      map[string]error
	calls     []string
}

func (s *stubProvider) Classify(_ context.Context, _ string, model string) ([]RankedLabel, error) {
	s.calls = append(s.calls, model)
	if err, ok := s.errs[model]; ok {
		return nil, err
	}
	if labels, ok := s.responses[model]; ok {
		return labels, nil
	}
	return nil, errors.New("unexpected model")
}

func TestEmotionClassifier(t *testing.T) {
	tier := ModelTier{Primary: "primary-model", Fallback: "fallback-model"}

	Convey("主模型成功时不应触发备用模型", t, func() {
		provider := &stubProvider{responses: map[string][]RankedLabel{
			"primary-model": {{Label: "joy", Score: 0.9}, {Label: "sadness", Score: 0.4}},
		}}
		ec := NewEmotionClassifier(provider, tier)
		result, err := ec.Classify(context.Background(), "some text", "some text", "en")
		So(err, ShouldBeNil)
		So(result.Emotion, ShouldEqual, EmotionHappy)
		So(result.Confidence, ShouldEqual, 0.9)
		So(provider.calls, ShouldResemble, []string{"primary-model"})
		So(len(result.Alternates), ShouldEqual, 1)
		So(result.Alternates[0].Emotion, ShouldEqual, EmotionSad)
	})

	Convey("主模型失败时应单次降级到备用模型", t, func() {
		provider := &stubProvider{
			errs: map[string]error{"primary-model": errors.New("rate limited")},
			responses: map[string][]RankedLabel{
				"fallback-model": {{Label: "anger", Score: 0.7}},
			},
		}
		ec := NewEmotionClassifier(provider, tier)
		result, err := ec.Classify(context.Background(), "some text", "some text", "en")
		So(err, ShouldBeNil)
		So(result.Emotion, ShouldEqual, EmotionAngry)
		So(provider.calls, ShouldResemble, []string{"primary-model", "fallback-model"})
	})

	Convey("主模型返回空候选时应视为失败并降级到备用模型", t, func() {
		provider := &stubProvider{responses: map[string][]RankedLabel{
			"primary-model":  {},
			"fallback-model": {{Label: "joy", Score: 0.8}},
		}}
		ec := NewEmotionClassifier(provider, tier)
		result, err := ec.Classify(context.Background(), "some text", "some text", "en")
		So(err, ShouldBeNil)
		So(result.Emotion, ShouldEqual, EmotionHappy)
		So(provider.calls, ShouldResemble, []string{"primary-model", "fallback-model"})
	})

	Convey("两档都返回空候选时应返回错误", t, func() {
		provider := &stubProvider{responses: map[string][]RankedLabel{
			"primary-model":  {},
			"fallback-model": {},
		}}
		ec := NewEmotionClassifier(provider, tier)
		_, err := ec.Classify(context.Background(), "some text", "some text", "en")
		So(err, ShouldNotBeNil)
	})

	Convey("两档都失败时应返回错误", t, func() {
		provider := &stubProvider{errs: map[string]error{
			"primary-model":  errors.New("down"),
			"fallback-model": errors.New("also down"),
		}}
		ec := NewEmotionClassifier(provider, tier)
		_, err := ec.Classify(context.Background(), "some text", "some text", "en")
		So(err, ShouldNotBeNil)
	})

	Convey("语境加权应能改变胜者", t, func() {
		provider := &stubProvider{responses: map[string][]RankedLabel{
			"primary-model": {{Label: "joy", Score: 0.6}, {Label: "fear", Score: 0.55}},
		}}
		ec := NewEmotionClassifier(provider, tier)
		original := "The night is dark and full of shadows."
		result, err := ec.Classify(context.Background(), "condensed", original, "en")
		So(err, ShouldBeNil)
		// fear: 0.55×1.3=0.715 > joy: 0.6
		So(result.Emotion, ShouldEqual, EmotionFearful)
		So(result.Alternates[0].Emotion, ShouldEqual, EmotionHappy)
	})

	Convey("加权后并列时先见者胜出", t, func() {
		provider := &stubProvider{responses: map[string][]RankedLabel{
			"primary-model": {{Label: "suspense", Score: 0.5}, {Label: "mystery", Score: 0.5}},
		}}
		ec := NewEmotionClassifier(provider, tier)
		result, err := ec.Classify(context.Background(), "text", "plain text", "en")
		So(err, ShouldBeNil)
		So(result.Emotion, ShouldEqual, EmotionTense)
	})

	Convey("未映射标签应按原样透传", t, func() {
		provider := &stubProvider{responses: map[string][]RankedLabel{
			"primary-model": {{Label: "melancholic", Score: 0.8}},
		}}
		ec := NewEmotionClassifier(provider, tier)
		result, err := ec.Classify(context.Background(), "text", "text", "en")
		So(err, ShouldBeNil)
		So(result.Emotion, ShouldEqual, Emotion("melancholic"))
	})

	Convey("备选标签不应超过两个", t, func() {
		provider := &stubProvider{responses: map[string][]RankedLabel{
			"primary-model": {
				{Label: "joy", Score: 0.9},
				{Label: "sadness", Score: 0.5},
				{Label: "fear", Score: 0.3},
				{Label: "anger", Score: 0.1},
			},
		}}
		ec := NewEmotionClassifier(provider, tier)
		result, err := ec.Classify(context.Background(), "text", "text", "en")
		So(err, ShouldBeNil)
		So(len(result.Alternates), ShouldEqual, 2)
		So(result.Alternates[0].Emotion, ShouldEqual, EmotionSad)
		So(result.Alternates[1].Emotion, ShouldEqual, EmotionFearful)
	})

	Convey("语言专用档位应优先于默认档位", t, func() {
		provider := &stubProvider{responses: map[string][]RankedLabel{
			"zh-model":      {{Label: "joy", Score: 0.8}},
			"primary-model": {{Label: "sadness", Score: 0.8}},
		}}
		ec := NewEmotionClassifier(provider, tier)
		ec.SetLanguageTier("zh", ModelTier{Primary: "zh-model", Fallback: "fallback-model"})

		result, err := ec.Classify(context.Background(), "文本", "文本", "zh")
		So(err, ShouldBeNil)
		So(result.Emotion, ShouldEqual, EmotionHappy)

		result, err = ec.Classify(context.Background(), "text", "text", "de")
		So(err, ShouldBeNil)
		So(result.Emotion, ShouldEqual, EmotionSad)
	})
}
