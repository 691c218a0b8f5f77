package scripttools

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLocalClassifier(t *testing.T) {
	lc := NewLocalClassifier()

	Convey("恐惧关键词应判定为fearful", t, func() {
		emotion, confidence := lc.Classify("Alice screams in terror as the panic spreads.")
		So(emotion, ShouldEqual, EmotionFearful)
		So(confidence, ShouldBeGreaterThan, 0)
		So(confidence, ShouldBeLessThanOrEqualTo, 0.9)
	})

	Convey("欢快关键词应判定为happy", t, func() {
		emotion, _ := lc.Classify("They laugh and smile and celebrate, so happy together.")
		So(emotion, ShouldEqual, EmotionHappy)
	})

	Convey("连续问号应判定为surprised", t, func() {
		emotion, _ := lc.Classify("What?? Nobody expected this at all??")
		So(emotion, ShouldEqual, EmotionSurprised)
	})

	Convey("中文关键词同样生效", t, func() {
		emotion, _ := lc.Classify("他在黑暗中害怕得发抖，忍不住尖叫起来。")
		So(emotion, ShouldEqual, EmotionFearful)
	})

	Convey("无任何命中时应返回neutral且置信度为零", t, func() {
		emotion, confidence := lc.Classify("A table. Two chairs. Nothing else in the empty room.")
		So(emotion, ShouldEqual, EmotionNeutral)
		So(confidence, ShouldEqual, 0)
	})

	Convey("长文本应按长度归一化且置信度不超过上限", t, func() {
		text := strings.Repeat("He is so angry, full of rage, he shouts and slams his fist. ", 50)
		_, confidence := lc.Classify(text)
		So(confidence, ShouldBeLessThanOrEqualTo, 0.9)
	})

	Convey("同一输入应产生完全相同的结果", t, func() {
		text := "The secret vanished into the fog, a mystery no one knows."
		e1, c1 := lc.Classify(text)
		e2, c2 := lc.Classify(text)
		So(e1, ShouldEqual, e2)
		So(c1, ShouldEqual, c2)
	})
}
