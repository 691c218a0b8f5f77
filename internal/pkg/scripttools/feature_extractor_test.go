package scripttools

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFeatureExtractor(t *testing.T) {
	fe := NewFeatureExtractor()

	Convey("角色名行应被剔除并记录", t, func() {
		scene := "JOHN\nHello there, how have you been all these years my old friend?\nMARY\nI have been waiting for this moment for a very long time now."
		f := fe.Extract(scene)
		So(f.Characters, ShouldResemble, []string{"JOHN", "MARY"})
		So(len(f.DialogueLines), ShouldEqual, 2)
		So(f.Input, ShouldNotContainSubstring, "JOHN")
		So(f.Input, ShouldContainSubstring, "Hello there")
	})

	Convey("括注提示词应移入上下文且不出现在输入中", t, func() {
		scene := "JOHN\n(angrily) Get out of my house right now and never come back here again, all of you!"
		f := fe.Extract(scene)
		So(f.ContextCues, ShouldContain, "angrily")
		So(f.Input, ShouldNotContainSubstring, "angrily")
		So(f.Input, ShouldContainSubstring, "Get out")
	})

	Convey("正文不足50字符时才追加上下文提示词", t, func() {
		scene := "MARY\n(sobbing and crying) No. Please no."
		f := fe.Extract(scene)
		So(f.ContextCues, ShouldContain, "crying")
		So(f.Input, ShouldContainSubstring, "crying")
	})

	Convey("动作行与对白行应正确分流", t, func() {
		scene := "The door creaks open slowly in the dark hallway.\nCLOSE UP on her trembling hands.\nWhy are you here so late tonight?"
		f := fe.Extract(scene)
		So(len(f.ActionLines), ShouldEqual, 2)
		So(len(f.DialogueLines), ShouldEqual, 1)
	})

	Convey("对白充足时输入不应包含动作行", t, func() {
		dialogue := "I cannot believe you would do something like this to me after all."
		scene := strings.Repeat(dialogue+"\n", 3) + "The train departs from the station."
		f := fe.Extract(scene)
		So(f.Input, ShouldNotContainSubstring, "train departs")
		So(f.Input, ShouldContainSubstring, "cannot believe")
	})

	Convey("对白不足100字符时应补充动作行", t, func() {
		scene := "Run!\nThe building collapses behind them in a cloud of dust."
		f := fe.Extract(scene)
		So(f.Input, ShouldContainSubstring, "Run")
		So(f.Input, ShouldContainSubstring, "building collapses")
	})

	Convey("输入应截断到512字符", t, func() {
		scene := strings.Repeat("She keeps talking about everything and nothing at once here. ", 30)
		f := fe.Extract(scene)
		So(len([]rune(f.Input)), ShouldBeLessThanOrEqualTo, 512)
	})

	Convey("提取结果为空时应回退为原文截断", t, func() {
		f := fe.Extract("JOHN")
		So(f.Input, ShouldEqual, "JOHN")
	})

	Convey("同一输入应产生完全相同的结果", t, func() {
		scene := "JOHN\n(sadly) It is over now.\nThe rain keeps falling outside the window all night."
		f1 := fe.Extract(scene)
		f2 := fe.Extract(scene)
		So(f1, ShouldResemble, f2)
	})
}
