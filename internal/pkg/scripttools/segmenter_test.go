package scripttools

import (
	"strconv"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// filler 生成指定段数的英文正文（每段约50字符）
func filler(n int) string {
	return strings.TrimSpace(strings.Repeat("the quick brown fox jumps over a lazy dog again. ", n))
}

func TestSceneSegmenter(t *testing.T) {
	ss := NewSceneSegmenter()

	Convey("空内容应返回nil", t, func() {
		So(ss.Segment(""), ShouldBeNil)
		So(ss.Segment("   \n\t  \n"), ShouldBeNil)
	})

	Convey("行业场景头应切分出对应场景", t, func() {
		doc := "INT. KITCHEN - DAY\n" + filler(7) +
			"\nEXT. GARDEN - NIGHT\n" + filler(7) +
			"\nINT. BEDROOM - NIGHT\n" + filler(7)
		spans := ss.Segment(doc)
		So(len(spans), ShouldEqual, 3)
		So(spans[0].Header, ShouldEqual, "INT. KITCHEN - DAY")
		So(spans[1].Header, ShouldEqual, "EXT. GARDEN - NIGHT")
		So(spans[2].Header, ShouldEqual, "INT. BEDROOM - NIGHT")
	})

	Convey("中文章节标记应切分出对应场景", t, func() {
		body := strings.Repeat("赵硕握紧拳头，眼中闪过一道寒光，缓缓站起身来。", 20)
		doc := "第一章 夜色\n" + body + "\n第二章 黎明\n" + body
		spans := ss.Segment(doc)
		So(len(spans), ShouldEqual, 2)
		So(spans[0].Header, ShouldEqual, "第一章 夜色")
		So(spans[1].Header, ShouldEqual, "第二章 黎明")
	})

	Convey("无标记文档应按空行切分", t, func() {
		paragraphs := make([]string, 6)
		for i := range paragraphs {
			paragraphs[i] = filler(7)
		}
		doc := strings.Join(paragraphs, "\n\n")
		spans := ss.Segment(doc)
		So(len(spans), ShouldBeGreaterThan, 1)
	})

	Convey("无空行时应按角色提示行切分", t, func() {
		doc := "JOHN\n" + filler(8) + "\nMARY\n" + filler(8)
		spans := ss.Segment(doc)
		So(len(spans), ShouldEqual, 2)
		So(spans[0].Text, ShouldContainSubstring, "JOHN")
		So(spans[1].Text, ShouldContainSubstring, "MARY")
	})

	Convey("无任何结构时应按词窗口切分", t, func() {
		doc := strings.Repeat("the quick brown fox jumps over a lazy dog again. ", 70)
		spans := ss.Segment(doc)
		So(len(spans), ShouldBeGreaterThan, 1)
	})

	Convey("所有策略都无法多段切分时整篇作为单场景", t, func() {
		doc := filler(2)
		spans := ss.Segment(doc)
		So(len(spans), ShouldEqual, 1)
		So(spans[0].Text, ShouldEqual, doc)
	})

	Convey("过短场景应并入前一个保留场景", t, func() {
		short := "He nods. She leaves the room without a word at all."
		doc := "INT. HALL - DAY\n" + filler(7) + "\nEXT. STREET - DAY\n" + short
		spans := ss.Segment(doc)
		So(len(spans), ShouldEqual, 1)
		So(spans[0].Text, ShouldContainSubstring, "without a word")
	})

	Convey("文档开头的过短场景应并入第一个保留场景", t, func() {
		head := "A short cold open that is just over the noise floor limit."
		doc := "FADE IN\n" + head + "\nINT. OFFICE - DAY\n" + filler(7)
		spans := ss.Segment(doc)
		So(len(spans), ShouldEqual, 1)
		So(spans[0].Text, ShouldStartWith, "A short cold open")
	})

	Convey("偏短场景应前向并入紧邻后继", t, func() {
		doc := "INT. A - DAY\n" + filler(3) +
			"\nINT. B - DAY\n" + filler(7) +
			"\nINT. C - DAY\n" + filler(7)
		spans := ss.Segment(doc)
		So(len(spans), ShouldEqual, 2)
		So(spans[0].Header, ShouldEqual, "INT. A - DAY")
	})

	Convey("场景数应截断到上限并保留最早的场景", t, func() {
		var sb strings.Builder
		for i := 1; i <= 25; i++ {
			sb.WriteString("INT. ROOM ")
			sb.WriteString(strconv.Itoa(i))
			sb.WriteString(" - DAY\n")
			sb.WriteString(filler(7))
			sb.WriteString("\n")
		}
		spans := ss.Segment(sb.String())
		So(len(spans), ShouldEqual, 20)
		So(spans[0].Header, ShouldContainSubstring, "ROOM 1 ")
		So(spans[19].Header, ShouldContainSubstring, "ROOM 20 ")
	})

	Convey("合并后每个场景都不低于最小长度", t, func() {
		short := "Just over the fifty character noise threshold line."
		doc := "INT. A - DAY\n" + filler(7) +
			"\nINT. B - DAY\n" + short +
			"\nINT. C - DAY\n" + filler(7) +
			"\nINT. D - DAY\n" + short
		spans := ss.Segment(doc)
		for _, sp := range spans {
			So(len([]rune(sp.Text)), ShouldBeGreaterThanOrEqualTo, 100)
		}
	})
}
