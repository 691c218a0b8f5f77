package scripttools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTokenizer(t *testing.T) {
	Convey("构造分词器不应panic且可直接使用", t, func() {
		tok := NewTokenizer()
		So(tok, ShouldNotBeNil)
		So(tok.WordCount("the quick brown fox"), ShouldEqual, 4)
	})

	Convey("空格分隔语言应按空白切词", t, func() {
		tok := NewTokenizer()
		words := tok.Tokenize("A dark night full of fear.")
		So(words, ShouldResemble, []string{"A", "dark", "night", "full", "of", "fear."})
	})

	Convey("CJK文本应切出非空词序列", t, func() {
		tok := NewTokenizer()
		words := tok.Tokenize("夜晚的黑暗中他感到恐惧")
		So(len(words), ShouldBeGreaterThan, 1)
		for _, w := range words {
			So(w, ShouldNotBeBlank)
		}
	})

	Convey("无词典的分词器对CJK降级为逐字切分", t, func() {
		tok := &Tokenizer{}
		words := tok.Tokenize("他很 害怕")
		So(words, ShouldResemble, []string{"他", "很", "害", "怕"})
	})

	Convey("空文本词数为零", t, func() {
		tok := NewTokenizer()
		So(tok.WordCount(""), ShouldEqual, 0)
		So(tok.WordCount("   \n\t"), ShouldEqual, 0)
	})
}
