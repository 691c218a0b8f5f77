package scripttools

import (
	"regexp"
	"strings"
)

// LocalClassifier 本地启发式分类器
// 外部分类能力不可用或失败时的兜底路径：关键词+模式计分，无任何外部依赖
type LocalClassifier struct{}

// NewLocalClassifier 创建本地分类器实例
func NewLocalClassifier() *LocalClassifier {
	return &LocalClassifier{}
}

type emotionProfile struct {
	emotion  Emotion
	keywords []string
	patterns []*regexp.Regexp
}

// emotionProfiles 按规范标签声明顺序排列（平局时先声明者胜出）
// neutral 不设词表：全部得分为零时回落为 neutral
var emotionProfiles = []emotionProfile{
	{
		emotion:  EmotionHappy,
		keywords: []string{"happy", "joy", "laugh", "smile", "celebrate", "delight", "cheer", "grin", "快乐", "开心", "笑"},
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(ha[- ]?ha|hooray|yay)\b`)},
	},
	{
		emotion:  EmotionSad,
		keywords: []string{"sad", "cry", "cries", "tears", "weep", "grief", "mourn", "sorrow", "lonely", "悲伤", "哭", "泪"},
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(sob(s|bing)?|heartbroken)\b`)},
	},
	{
		emotion:  EmotionAngry,
		keywords: []string{"angry", "anger", "furious", "rage", "shout", "yell", "slam", "fist", "愤怒", "怒", "吼"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`!{2,}`),
			regexp.MustCompile(`(?i)\b(damn|curse[sd]?)\b`),
		},
	},
	{
		emotion:  EmotionFearful,
		keywords: []string{"fear", "afraid", "scream", "terror", "terrified", "panic", "horror", "dread", "tremble", "恐惧", "害怕", "尖叫"},
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(run(s|ning)? (away|for)|hide[sd]?)\b`)},
	},
	{
		emotion:  EmotionRomantic,
		keywords: []string{"love", "kiss", "embrace", "tender", "darling", "heart", "passion", "爱", "吻", "拥抱"},
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\bi love you\b`)},
	},
	{
		emotion:  EmotionSurprised,
		keywords: []string{"surprise", "surprised", "shock", "shocked", "stunned", "gasp", "astonish", "惊讶", "震惊"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\?{2,}`),
			regexp.MustCompile(`(?i)\bwhat\s*[!?]`),
		},
	},
	{
		emotion:  EmotionDisgusted,
		keywords: []string{"disgust", "disgusting", "revolting", "sick", "vomit", "rot", "filth", "stench", "恶心", "厌恶"},
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(ugh|eww+)\b`)},
	},
	{
		emotion:  EmotionTense,
		keywords: []string{"tense", "tension", "suspense", "danger", "threat", "urgent", "hurry", "deadline", "紧张", "危险"},
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(time('s| is) running out|any second now)\b`)},
	},
	{
		emotion:  EmotionMysterious,
		keywords: []string{"mystery", "mysterious", "strange", "secret", "unknown", "vanish", "whisper", "fog", "神秘", "秘密"},
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(no one knows|out of nowhere)\b`)},
	},
	{
		emotion:  EmotionDramatic,
		keywords: []string{"dramatic", "betray", "confront", "reveal", "confess", "destiny", "sacrifice", "戏剧", "背叛"},
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(the truth (is|was)|all along)\b`)},
	},
	{
		emotion:  EmotionPeaceful,
		keywords: []string{"peaceful", "calm", "quiet", "serene", "gentle", "rest", "breeze", "sunset", "平静", "安宁"},
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(at (last|peace)|settle[sd]? down)\b`)},
	},
}

const (
	keywordWeight      = 1.0
	patternWeight      = 1.5
	localConfidenceCap = 0.9
)

// Classify 本地启发式情感分类
//
// 每个情感档案得分 = Σ关键词命中×1.0 + Σ模式命中×1.5，按 max(字符数/100, 1) 归一化。
// 全部为零时返回 (neutral, 0)；置信度 = min(最高分/3, 0.9)，永不给出高置信假象
func (lc *LocalClassifier) Classify(sceneText string) (Emotion, float64) {
	lower := strings.ToLower(sceneText)
	norm := float64(len([]rune(sceneText))) / 100.0
	if norm < 1 {
		norm = 1
	}

	best := EmotionNeutral
	bestScore := 0.0
	for _, p := range emotionProfiles {
		score := 0.0
		for _, kw := range p.keywords {
			score += keywordWeight * float64(strings.Count(lower, kw))
		}
		for _, re := range p.patterns {
			score += patternWeight * float64(len(re.FindAllStringIndex(sceneText, -1)))
		}
		score /= norm
		if score > bestScore {
			bestScore = score
			best = p.emotion
		}
	}

	if bestScore == 0 {
		return EmotionNeutral, 0
	}
	confidence := bestScore / 3.0
	if confidence > localConfidenceCap {
		confidence = localConfidenceCap
	}
	return best, confidence
}
