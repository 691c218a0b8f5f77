package scripttools

import (
	"regexp"
	"strings"
)

// ScriptFormat 剧本方言格式
type ScriptFormat string

const (
	FormatHollywood ScriptFormat = "hollywood" // 行业标准：INT./EXT. 场景头、转场提示
	FormatEuropean  ScriptFormat = "european"  // 破折号对白引导
	FormatAsian     ScriptFormat = "asian"     // CJK 章节/场次标记
	FormatFountain  ScriptFormat = "fountain"  // Fountain 纯文本标记
)

// Detection 语言与格式检测结果
type Detection struct {
	Language   string       `json:"language"`   // ISO 639-1 语言码
	Confidence float64      `json:"confidence"` // 检测置信度 [0,1]
	Format     ScriptFormat `json:"format"`     // 推断的剧本方言
}

// LanguageDetector 语言与格式检测器
// 永不失败：证据不足时回落到 en/hollywood 并给出低置信度
type LanguageDetector struct {
	tok *Tokenizer
}

// NewLanguageDetector 创建检测器实例
func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{tok: defaultTok()}
}

const (
	baselineLanguage = "en"
	// 某一文字系统的字符占比达到该阈值即判定为对应语言
	scriptDensityRatio = 0.15
)

var supportedLanguages = map[string]bool{
	"en": true, "es": true, "fr": true, "de": true, "it": true, "pt": true,
	"zh": true, "ja": true, "ko": true, "ar": true, "ru": true, "hi": true,
	"th": true,
}

type scriptRange struct {
	lo, hi rune
	lang   string
}

// 文字系统区间表（有序：日文假名先于汉字判定，含假名的日文文本汉字占比也很高）
var scriptRanges = []scriptRange{
	{0x3040, 0x30ff, "ja"},
	{0xac00, 0xd7af, "ko"},
	{0x4e00, 0x9fff, "zh"},
	{0x0600, 0x06ff, "ar"},
	{0x0400, 0x04ff, "ru"},
	{0x0900, 0x097f, "hi"},
	{0x0e00, 0x0e7f, "th"},
}

// 各语言的情感高频词表（置信度的关键词重合因子使用）
var languageKeywords = map[string][]string{
	"en": {"love", "fear", "happy", "sad", "angry", "death", "night", "heart", "cry", "smile", "scream", "dark"},
	"es": {"amor", "miedo", "feliz", "triste", "noche", "muerte", "corazón", "llorar", "gritar", "oscuro"},
	"fr": {"amour", "peur", "heureux", "triste", "nuit", "mort", "coeur", "pleurer", "crier", "sombre"},
	"de": {"liebe", "angst", "glücklich", "traurig", "nacht", "tod", "herz", "weinen", "schreien", "dunkel"},
	"it": {"amore", "paura", "felice", "triste", "notte", "morte", "cuore", "piangere", "urlare", "buio"},
	"pt": {"amor", "medo", "feliz", "triste", "noite", "morte", "coração", "chorar", "gritar", "escuro"},
	"zh": {"爱", "恐惧", "快乐", "悲伤", "愤怒", "死亡", "夜晚", "心", "哭", "笑", "黑暗", "害怕"},
	"ja": {"愛", "恐怖", "幸せ", "悲しい", "怒り", "死", "夜", "心", "泣く", "笑う", "暗い"},
	"ko": {"사랑", "공포", "행복", "슬픔", "분노", "죽음", "밤", "마음", "울다", "웃다", "어둠"},
	"ar": {"حب", "خوف", "سعيد", "حزين", "غضب", "موت", "ليل", "قلب", "بكاء", "ظلام"},
	"ru": {"любовь", "страх", "счастье", "грусть", "гнев", "смерть", "ночь", "сердце", "плакать", "тьма"},
	"hi": {"प्यार", "डर", "खुश", "उदास", "गुस्सा", "मौत", "रात", "दिल", "रोना", "अंधेरा"},
	"th": {"รัก", "กลัว", "สุข", "เศร้า", "โกรธ", "ตาย", "คืน", "ใจ", "ร้องไห้", "มืด"},
}

var (
	europeanLanguages = map[string]bool{"es": true, "fr": true, "de": true, "it": true, "pt": true, "ru": true}
	asianLanguages    = map[string]bool{"zh": true, "ja": true, "ko": true, "th": true, "hi": true}
)

var (
	fountainMarkerPattern   = regexp.MustCompile(`(?m)^(>|\.[^.\s])`)
	transitionMarkerPattern = regexp.MustCompile(`(?im)^\s*(FADE\s+(IN|OUT|TO)|CUT\s+TO|DISSOLVE\s+TO)`)
	europeanDialoguePattern = regexp.MustCompile(`(?m)^\s*[—–-]\s+\S`)
)

// Detect 检测文档语言与剧本方言
//
// 调用方的语言提示若在支持集合内则直接采信（置信度仍按文本证据计算）；
// 否则按文字系统区间占比判定，无果时回落到基线语言
func (ld *LanguageDetector) Detect(text, hint string) Detection {
	lang := ""
	if h := strings.ToLower(strings.TrimSpace(hint)); h != "" && supportedLanguages[h] {
		lang = h
	}
	if lang == "" {
		lang = ld.detectByScriptRanges(text)
	}
	if lang == "" {
		lang = baselineLanguage
	}

	format := ld.inferFormat(text, lang)
	return Detection{
		Language:   lang,
		Confidence: ld.confidence(text, lang, format),
		Format:     format,
	}
}

// detectByScriptRanges 按文字系统字符占比判定语言
func (ld *LanguageDetector) detectByScriptRanges(text string) string {
	counts := map[string]int{}
	letters := 0
	for _, r := range text {
		if !isLetterLike(r) {
			continue
		}
		letters++
		for _, sr := range scriptRanges {
			if r >= sr.lo && r <= sr.hi {
				counts[sr.lang]++
				break
			}
		}
	}
	if letters == 0 {
		return ""
	}
	for _, sr := range scriptRanges {
		if float64(counts[sr.lang])/float64(letters) >= scriptDensityRatio {
			return sr.lang
		}
	}
	return ""
}

func isLetterLike(r rune) bool {
	return r > ' ' && !strings.ContainsRune(`.,!?;:'"-()（）…—`, r)
}

// confidence 置信度 = 0.4×关键词重合 + 0.2×长度因子 + 0.4×结构因子，封顶1.0
func (ld *LanguageDetector) confidence(text, lang string, format ScriptFormat) float64 {
	score := 0.4*ld.keywordOverlap(text, lang) +
		0.2*ld.lengthScore(text) +
		0.4*ld.structuralScore(text, format)
	if score > 1 {
		score = 1
	}
	return score
}

// keywordOverlap 关键词表命中比例（去重命中数/表长）
func (ld *LanguageDetector) keywordOverlap(text, lang string) float64 {
	keywords, ok := languageKeywords[lang]
	if !ok || len(keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return float64(hits) / float64(len(keywords))
}

// lengthScore 长度因子按词数计（CJK 经 gse 分词），400词封顶
func (ld *LanguageDetector) lengthScore(text string) float64 {
	score := float64(ld.tok.WordCount(text)) / 400.0
	if score > 1 {
		score = 1
	}
	return score
}

// structuralScore 结构因子：边界行/角色提示行/方言特征行的出现密度
func (ld *LanguageDetector) structuralScore(text string, format ScriptFormat) float64 {
	lines := strings.Split(text, "\n")
	hits := 0
	nonEmpty := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		switch {
		case isBoundaryLine(trimmed):
			hits++
		case isCharacterCueLine(trimmed):
			hits++
		case format == FormatEuropean && europeanDialoguePattern.MatchString(line):
			hits++
		case format == FormatFountain && (strings.HasPrefix(trimmed, ">") || strings.HasPrefix(trimmed, ".")):
			hits++
		}
	}
	expected := nonEmpty / 10
	if expected < 1 {
		expected = 1
	}
	score := float64(hits) / float64(expected)
	if score > 1 {
		score = 1
	}
	return score
}

// inferFormat 推断剧本方言
// Fountain 标记优先（无行业转场提示时），其次行业转场提示，
// 再按语言族归入 asian/european，默认 hollywood
func (ld *LanguageDetector) inferFormat(text, lang string) ScriptFormat {
	hasFountain := fountainMarkerPattern.MatchString(text)
	hasTransition := transitionMarkerPattern.MatchString(text)
	switch {
	case hasFountain && !hasTransition:
		return FormatFountain
	case hasTransition:
		return FormatHollywood
	case asianLanguages[lang]:
		return FormatAsian
	case europeanLanguages[lang]:
		return FormatEuropean
	default:
		return FormatHollywood
	}
}
