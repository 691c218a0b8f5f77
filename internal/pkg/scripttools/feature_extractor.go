package scripttools

import (
	"regexp"
	"sort"
	"strings"
)

// Features 特征提取结果
type Features struct {
	Input         string   // 面向分类器的浓缩输入（<=512字符）
	Characters    []string // 出场角色名（字典序）
	DialogueLines []string // 对白行
	ActionLines   []string // 动作描述行
	ContextCues   []string // 括注中的情感提示词
}

// FeatureExtractor 特征提取器
// 对白优先组装分类输入：角色名行剔除、括注提示词单独收集、动作行与对白行分流
type FeatureExtractor struct {
	maxInputLength int
}

// NewFeatureExtractor 创建特征提取器实例
func NewFeatureExtractor() *FeatureExtractor {
	return &FeatureExtractor{maxInputLength: 512}
}

// 括注里值得保留的情感提示词
var parentheticalCues = []string{
	"angrily", "furiously", "sadly", "tearfully", "tears", "crying", "sobbing",
	"whispering", "whispers", "screaming", "screams", "shouting", "laughing",
	"smiling", "nervously", "anxiously", "fearfully", "terrified", "trembling",
	"lovingly", "tenderly", "softly", "coldly", "bitterly", "excitedly",
	"surprised", "shocked", "disgusted", "calmly", "quietly", "desperately",
}

var parentheticalPattern = regexp.MustCompile(`\(([^)]*)\)|（([^）]*)）`)

// 动作描述行特征模式
var actionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(The|A|An)\s+\S`),
	regexp.MustCompile(`^[A-Z][a-z]+\s+[a-z]+(s|es|ed|ing)\b`),
	regexp.MustCompile(`(?i)^(suddenly|meanwhile|later|moments later|elsewhere|outside|inside)\b`),
	regexp.MustCompile(`(?i)\b(camera|angle|close[- ]?up|pov|pan|zoom|tracking|wide shot|we see)\b`),
}

var (
	inputSanitizer      = regexp.MustCompile(`[^\p{L}\p{N}\s.,!?;:'"-]`)
	whitespaceCollapser = regexp.MustCompile(`\s+`)
)

// Extract 从场景文本中提取分类特征
//
// 组装顺序：对白优先；对白合并结果不足100字符时补动作行，
// 仍不足50字符时补括注提示词。输出经字符清洗、空白折叠并截断到512字符。
// 全部为空时回退为原文前512字符。纯函数，结果确定。
func (fe *FeatureExtractor) Extract(sceneText string) Features {
	var f Features
	charSet := map[string]bool{}

	for _, line := range strings.Split(sceneText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isCharacterNameLine(line) {
			charSet[strings.Trim(line, ":：")] = true
			continue
		}
		// 括注提示词移入上下文缓冲，正文中抹除
		line = parentheticalPattern.ReplaceAllStringFunc(line, func(m string) string {
			inner := strings.ToLower(strings.Trim(m, "()（）"))
			for _, cue := range parentheticalCues {
				if strings.Contains(inner, cue) {
					f.ContextCues = append(f.ContextCues, cue)
				}
			}
			return " "
		})
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isActionLine(line) {
			f.ActionLines = append(f.ActionLines, line)
		} else {
			f.DialogueLines = append(f.DialogueLines, line)
		}
	}

	for name := range charSet {
		f.Characters = append(f.Characters, name)
	}
	sort.Strings(f.Characters)

	combined := strings.Join(f.DialogueLines, " ")
	if len([]rune(combined)) < 100 {
		combined = strings.TrimSpace(combined + " " + strings.Join(f.ActionLines, " "))
	}
	if len([]rune(combined)) < 50 {
		combined = strings.TrimSpace(combined + " " + strings.Join(f.ContextCues, " "))
	}

	combined = inputSanitizer.ReplaceAllString(combined, " ")
	combined = whitespaceCollapser.ReplaceAllString(combined, " ")
	combined = strings.TrimSpace(combined)
	combined = truncateRunes(combined, fe.maxInputLength)
	if combined == "" {
		// 退路：原文截断
		combined = truncateRunes(strings.TrimSpace(sceneText), fe.maxInputLength)
	}
	f.Input = combined
	return f
}

// isActionLine 判断一行是否为动作描述行
func isActionLine(line string) bool {
	for _, re := range actionPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// isCharacterNameLine 判断一行是否为角色名行
// 特征：全大写、无内部空白、不超过20个字符（允许尾随冒号）
func isCharacterNameLine(line string) bool {
	trimmed := strings.Trim(line, ":：")
	if trimmed == "" {
		return false
	}
	if strings.ContainsAny(trimmed, " \t") {
		return false
	}
	return isAllCapsLine(trimmed) && len([]rune(trimmed)) <= 20
}

// truncateRunes 按字符数截断（保证不切断多字节字符）
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
