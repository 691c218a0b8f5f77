package scripttools

import (
	"strings"
	"sync"
	"unicode"

	"github.com/go-ego/gse"
)

// Tokenizer 分词器，对空格分隔语言按空白切词，对CJK文本用 gse 分词
// gse 初始化失败时降级为逐字切分
type Tokenizer struct {
	segmenter *gse.Segmenter
}

var (
	defaultTokenizer     *Tokenizer
	defaultTokenizerOnce sync.Once
)

// NewTokenizer 创建分词器实例
// gse 词典加载失败时 segmenter 留空，CJK 路径降级为逐字切分
func NewTokenizer() *Tokenizer {
	segmenter, err := gse.New()
	if err != nil {
		return &Tokenizer{}
	}
	return &Tokenizer{segmenter: &segmenter}
}

// defaultTok 返回进程级共享分词器（gse 词典只加载一次）
func defaultTok() *Tokenizer {
	defaultTokenizerOnce.Do(func() {
		defaultTokenizer = NewTokenizer()
	})
	return defaultTokenizer
}

// Tokenize 将文本切分为词序列
func (t *Tokenizer) Tokenize(text string) []string {
	if containsCJK(text) {
		return t.tokenizeCJK(text)
	}
	return strings.Fields(text)
}

// WordCount 统计词数（CJK按分词结果计数）
func (t *Tokenizer) WordCount(text string) int {
	return len(t.Tokenize(text))
}

func (t *Tokenizer) tokenizeCJK(text string) []string {
	var words []string
	if t.segmenter != nil {
		for _, w := range t.segmenter.Cut(text, false) {
			w = strings.TrimSpace(w)
			if w != "" {
				words = append(words, w)
			}
		}
		return words
	}
	// 降级：逐字切分
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		words = append(words, string(r))
	}
	return words
}

// containsCJK 判断文本是否包含CJK字符（汉字/假名/谚文）
func containsCJK(text string) bool {
	for _, r := range text {
		if isCJKRune(r) {
			return true
		}
	}
	return false
}

func isCJKRune(r rune) bool {
	return (r >= 0x4e00 && r <= 0x9fff) || // 汉字
		(r >= 0x3040 && r <= 0x30ff) || // 日文假名
		(r >= 0xac00 && r <= 0xd7af) // 韩文谚文
}
