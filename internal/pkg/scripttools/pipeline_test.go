package scripttools

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// sceneAwareProvider 按调用次数定向失败的桩：第 failOn 次主模型调用（及其备用）失败
type sceneAwareProvider struct {
	failOn  int
	labels  []RankedLabel
	attempt int
}

func (p *sceneAwareProvider) Classify(_ context.Context, _ string, model string) ([]RankedLabel, error) {
	if model == "primary-model" {
		p.attempt++
	}
	if p.attempt == p.failOn {
		return nil, errors.New("injected failure")
	}
	return p.labels, nil
}

func multiSceneDoc(n int) string {
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		sb.WriteString("INT. ROOM ")
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(" - DAY\n")
		sb.WriteString(filler(7))
		sb.WriteString("\n")
	}
	return sb.String()
}

func TestAnalyzer(t *testing.T) {
	tier := ModelTier{Primary: "primary-model", Fallback: "fallback-model"}

	Convey("空白文档应返回ErrEmptyDocument", t, func() {
		a := NewAnalyzer(nil)
		_, err := a.Run(context.Background(), "   \n\t ", "")
		So(err, ShouldEqual, ErrEmptyDocument)
	})

	Convey("外部两档全失败时应降级到本地启发式", t, func() {
		provider := &stubProvider{errs: map[string]error{
			"primary-model":  errors.New("down"),
			"fallback-model": errors.New("also down"),
		}}
		a := NewAnalyzer(NewEmotionClassifier(provider, tier))
		doc := "INT. OFFICE - DAY\nAlice screams in terror.\nFADE OUT."
		scenes, err := a.Run(context.Background(), doc, "")
		So(err, ShouldBeNil)
		So(len(scenes), ShouldEqual, 1)
		So(scenes[0].FallbackUsed, ShouldBeTrue)
		So(scenes[0].Emotion, ShouldEqual, EmotionFearful)
		So(scenes[0].Confidence, ShouldBeGreaterThan, 0)
		So(scenes[0].Confidence, ShouldBeLessThanOrEqualTo, 0.9)
	})

	Convey("场景编号应连续且不超过上限", t, func() {
		provider := &stubProvider{responses: map[string][]RankedLabel{
			"primary-model": {{Label: "joy", Score: 0.8}},
		}}
		a := NewAnalyzer(NewEmotionClassifier(provider, tier))
		scenes, err := a.Run(context.Background(), multiSceneDoc(25), "")
		So(err, ShouldBeNil)
		So(len(scenes), ShouldEqual, 20)
		for i, sc := range scenes {
			So(sc.SceneNumber, ShouldEqual, i+1)
			So(sc.Emotion, ShouldEqual, EmotionHappy)
			So(sc.FallbackUsed, ShouldBeFalse)
			So(sc.Confidence, ShouldBeGreaterThanOrEqualTo, 0)
			So(sc.Confidence, ShouldBeLessThanOrEqualTo, 1)
		}
	})

	Convey("单场景失败应被隔离，不影响其余场景", t, func() {
		provider := &sceneAwareProvider{
			failOn: 2,
			labels: []RankedLabel{{Label: "joy", Score: 0.8}},
		}
		a := NewAnalyzer(NewEmotionClassifier(provider, tier))
		scenes, err := a.Run(context.Background(), multiSceneDoc(3), "")
		So(err, ShouldBeNil)
		So(len(scenes), ShouldEqual, 3)
		So(scenes[0].FallbackUsed, ShouldBeFalse)
		So(scenes[1].FallbackUsed, ShouldBeTrue)
		So(scenes[1].Confidence, ShouldBeLessThanOrEqualTo, 0.9)
		So(scenes[2].FallbackUsed, ShouldBeFalse)
	})

	Convey("未配置外部分类器时所有场景走本地路径", t, func() {
		a := NewAnalyzer(nil)
		doc := "INT. PARTY - NIGHT\n" +
			strings.Repeat("They laugh and smile and celebrate together all night long. ", 3)
		scenes, err := a.Run(context.Background(), doc, "")
		So(err, ShouldBeNil)
		So(len(scenes), ShouldBeGreaterThan, 0)
		for _, sc := range scenes {
			So(sc.FallbackUsed, ShouldBeTrue)
			So(sc.Confidence, ShouldBeLessThanOrEqualTo, 0.9)
		}
	})

	Convey("语言提示应传播到所有场景", t, func() {
		a := NewAnalyzer(nil)
		scenes, err := a.Run(context.Background(), multiSceneDoc(3), "es")
		So(err, ShouldBeNil)
		for _, sc := range scenes {
			So(sc.Language, ShouldEqual, "es")
		}
	})

	Convey("同一输入两次运行应产生完全相同的结果", t, func() {
		provider := &stubProvider{responses: map[string][]RankedLabel{
			"primary-model": {{Label: "joy", Score: 0.6}, {Label: "fear", Score: 0.55}},
		}}
		a := NewAnalyzer(NewEmotionClassifier(provider, tier))
		doc := "INT. CELLAR - NIGHT\nThe night is dark.\n" + filler(7)
		first, err1 := a.Run(context.Background(), doc, "")
		second, err2 := a.Run(context.Background(), doc, "")
		So(err1, ShouldBeNil)
		So(err2, ShouldBeNil)
		So(reflect.DeepEqual(first, second), ShouldBeTrue)
	})

	Convey("节流器应拉开外部调用间隔", t, func() {
		provider := &stubProvider{responses: map[string][]RankedLabel{
			"primary-model": {{Label: "joy", Score: 0.8}},
		}}
		a := NewAnalyzer(NewEmotionClassifier(provider, tier))
		a.SetPacer(NewIntervalPacer(30 * time.Millisecond))

		start := time.Now()
		scenes, err := a.Run(context.Background(), multiSceneDoc(3), "")
		So(err, ShouldBeNil)
		So(len(scenes), ShouldEqual, 3)
		So(time.Since(start), ShouldBeGreaterThanOrEqualTo, 60*time.Millisecond)
	})
}
