package scripttools

import (
	"regexp"
	"strings"
	"unicode"
)

// CandidateSpan 按边界切分出的候选场景片段
// 仅在一次流水线运行内部存在，由合并/过滤与特征提取消费
type CandidateSpan struct {
	Header string // 边界行（场景头），可能为空
	Text   string // 片段正文（trim后）
	Offset int    // 在原文档中的起始字节偏移
}

// SceneSegmenter 场景切分器，将整篇剧本类文档切分为候选场景
// 永不失败：最坏情况下整篇文档作为单个场景返回
type SceneSegmenter struct {
	// 边界标记之间累积内容低于此长度（字符数）视为噪声丢弃
	noiseLength int
	// 低于此长度的场景并入前一个保留场景
	minSceneLength int
	// 低于此长度的场景尝试前向并入后继场景，避免过度碎片化
	shortSceneLength int
	// 最大场景数，超出部分截断尾部（保留最早的场景）
	maxScenes int
	// 无结构标记时按词窗口切分使用的分词器
	tok *Tokenizer
}

// NewSceneSegmenter 创建场景切分器实例
func NewSceneSegmenter() *SceneSegmenter {
	return &SceneSegmenter{
		noiseLength:      50,
		minSceneLength:   100,
		shortSceneLength: 300,
		maxScenes:        20,
		tok:              defaultTok(),
	}
}

// SetMaxScenes 设置最大场景数（<=0 时保持默认值）
func (ss *SceneSegmenter) SetMaxScenes(n int) {
	if n > 0 {
		ss.maxScenes = n
	}
}

// Segment 将文档切分为有序候选场景序列
//
// 逻辑：
//  1. 逐行扫描结构边界标记（INT./EXT.、SCENE n、转场、全大写位置行、分隔线、
//     Markdown 标题、CHAPTER/ACT、第N章 等），按标记切分
//  2. 标记切分结果 <=1 时依次尝试三种降级策略，第一个产出多于一段的胜出：
//     (a) 按连续空行切分  (b) 按角色名提示行切分  (c) 按固定词数窗口切分
//  3. 合并/过滤：过短场景并入邻居，重新编号后截断到最大场景数
//
// Args:
//   - documentText: 文档全文
//
// Returns:
//   - []CandidateSpan: 切分后的候选场景列表（空白文档返回 nil）
func (ss *SceneSegmenter) Segment(documentText string) []CandidateSpan {
	if strings.TrimSpace(documentText) == "" {
		return nil
	}

	spans := ss.splitByMarkers(documentText)
	if len(spans) <= 1 {
		for _, fallback := range []func(string) []CandidateSpan{
			ss.splitByBlankRuns,
			ss.splitByCharacterCues,
			ss.splitByWordWindows,
		} {
			if chunks := fallback(documentText); len(chunks) > 1 {
				spans = chunks
				break
			}
		}
	}
	if len(spans) == 0 {
		// 最坏情况：整篇文档作为单个场景
		spans = []CandidateSpan{{Text: strings.TrimSpace(documentText)}}
	}

	return ss.mergeAndFilter(spans)
}

// 结构边界标记模式表
var boundaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*(INT|EXT|EST|INT\.?/EXT|I/E)[.\s]`),                                   // 行业场景头
	regexp.MustCompile(`(?i)^\s*SCENE\s+(\d+|[IVXLC]+)\b`),                                            // 显式场景计数
	regexp.MustCompile(`(?i)^\s*(FADE\s+(IN|OUT|TO)|CUT\s+TO|DISSOLVE\s+TO|SMASH\s+CUT|MATCH\s+CUT)`), // 转场提示
	regexp.MustCompile(`^\s*[-=*_#]{3,}\s*$`),                                                         // 分隔线
	regexp.MustCompile(`^#{1,6}\s+\S`),                                                                // Markdown 标题
	regexp.MustCompile(`(?i)^\s*(CHAPTER|ACT)\s+(\d+|[IVXLC]+)\b`),                                    // 章/幕标记
	regexp.MustCompile(`^第[一二三四五六七八九十百千万0-9]+[章幕场节]`),                               // 中文章节/场次标记
}

// isBoundaryLine 判断一行是否为场景边界标记
func isBoundaryLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, re := range boundaryPatterns {
		if re.MatchString(trimmed) {
			return true
		}
	}
	// 较长的全大写行大概率是位置引导行
	return isAllCapsLine(trimmed) && len([]rune(trimmed)) >= 15
}

// isAllCapsLine 判断一行是否全大写
// 必须含至少一个大写字母且不含小写字母；无大小写之分的文字（CJK等）不算
func isAllCapsLine(s string) bool {
	hasUpper := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}

// splitByMarkers 按结构边界标记切分
func (ss *SceneSegmenter) splitByMarkers(documentText string) []CandidateSpan {
	lines := strings.Split(documentText, "\n")

	var spans []CandidateSpan
	var buf []string
	header := ""
	bufStart := 0
	offset := 0

	flush := func() {
		chunk := strings.TrimSpace(strings.Join(buf, "\n"))
		// 标记之间过短的累积视为噪声
		if len([]rune(chunk)) > ss.noiseLength {
			spans = append(spans, CandidateSpan{Header: header, Text: chunk, Offset: bufStart})
		}
		buf = buf[:0]
	}

	for _, line := range lines {
		if isBoundaryLine(line) {
			flush()
			header = strings.TrimSpace(line)
			bufStart = offset
		} else {
			if len(buf) == 0 && header == "" {
				bufStart = offset
			}
			buf = append(buf, line)
		}
		offset += len(line) + 1
	}
	flush()

	return spans
}

var blankRunPattern = regexp.MustCompile(`\n[ \t]*\n(\s*\n)*`)

// splitByBlankRuns 降级策略(a)：按连续空行切分，保留超过100字符的段落
func (ss *SceneSegmenter) splitByBlankRuns(documentText string) []CandidateSpan {
	bounds := blankRunPattern.FindAllStringIndex(documentText, -1)
	if len(bounds) == 0 {
		return nil
	}

	var spans []CandidateSpan
	start := 0
	appendChunk := func(start, end int) {
		chunk := strings.TrimSpace(documentText[start:end])
		if len([]rune(chunk)) > 100 {
			spans = append(spans, CandidateSpan{Text: chunk, Offset: start})
		}
	}
	for _, b := range bounds {
		appendChunk(start, b[0])
		start = b[1]
	}
	appendChunk(start, len(documentText))
	return spans
}

// splitByCharacterCues 降级策略(b)：在疑似角色名提示行（短小、全大写、独立成行）
// 之前切分，每个角色提示与其后的文本配成一段
func (ss *SceneSegmenter) splitByCharacterCues(documentText string) []CandidateSpan {
	lines := strings.Split(documentText, "\n")

	var spans []CandidateSpan
	var buf []string
	bufStart := 0
	offset := 0

	flush := func() {
		chunk := strings.TrimSpace(strings.Join(buf, "\n"))
		if chunk != "" {
			spans = append(spans, CandidateSpan{Text: chunk, Offset: bufStart})
		}
		buf = buf[:0]
	}

	for _, line := range lines {
		if isCharacterCueLine(line) && len(buf) > 0 {
			flush()
			bufStart = offset
		}
		buf = append(buf, line)
		offset += len(line) + 1
	}
	flush()

	if len(spans) <= 1 {
		return nil
	}
	return spans
}

// isCharacterCueLine 判断一行是否为角色名提示行
// 特征：独立成行、全大写、不超过25个字符且不超过3个词
func isCharacterCueLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || !isAllCapsLine(trimmed) {
		return false
	}
	return len([]rune(trimmed)) <= 25 && len(strings.Fields(trimmed)) <= 3
}

// splitByWordWindows 降级策略(c)：按总长推算的固定词数窗口切分
// 窗口字符数 = max(500, 总长/5)，再按平均词长折算为词数
func (ss *SceneSegmenter) splitByWordWindows(documentText string) []CandidateSpan {
	text := strings.TrimSpace(documentText)
	total := len([]rune(text))
	if total == 0 {
		return nil
	}

	chunkChars := total / 5
	if chunkChars < 500 {
		chunkChars = 500
	}

	words := ss.tok.Tokenize(text)
	if len(words) == 0 {
		return nil
	}
	avgWordLen := total / len(words)
	if avgWordLen < 1 {
		avgWordLen = 1
	}
	wordsPerChunk := chunkChars / avgWordLen
	if wordsPerChunk < 1 {
		wordsPerChunk = 1
	}

	sep := " "
	if containsCJK(text) {
		sep = ""
	}

	var spans []CandidateSpan
	offset := 0
	for i := 0; i < len(words); i += wordsPerChunk {
		end := i + wordsPerChunk
		if end > len(words) {
			end = len(words)
		}
		chunk := strings.TrimSpace(strings.Join(words[i:end], sep))
		if chunk != "" {
			spans = append(spans, CandidateSpan{Text: chunk, Offset: offset})
			offset += len(chunk) + len(sep)
		}
	}
	if len(spans) <= 1 {
		return nil
	}
	return spans
}

// mergeAndFilter 合并/过滤：
//   - 低于 minSceneLength 的场景并入前一个保留场景（文档开头的短场景并入后继），
//     永不静默丢弃
//   - 低于 shortSceneLength 的场景前向并入紧邻后继（固定的确定性规则，无额外回看）
//   - 截断到 maxScenes，保留最早的场景（剧本前置铺垫，截断策略偏向叙事开端的完整性）
func (ss *SceneSegmenter) mergeAndFilter(spans []CandidateSpan) []CandidateSpan {
	if len(spans) == 0 {
		return spans
	}
	if len(spans) == 1 {
		return spans
	}

	// 第一遍：过短场景并入前一个保留场景
	var kept []CandidateSpan
	var pendingHead *CandidateSpan // 文档开头暂无前驱的短场景，并入第一个保留场景
	for _, sp := range spans {
		if len([]rune(sp.Text)) < ss.minSceneLength {
			if len(kept) > 0 {
				kept[len(kept)-1].Text += "\n\n" + sp.Text
			} else if pendingHead == nil {
				cp := sp
				pendingHead = &cp
			} else {
				pendingHead.Text += "\n\n" + sp.Text
			}
			continue
		}
		if pendingHead != nil {
			sp.Text = pendingHead.Text + "\n\n" + sp.Text
			sp.Offset = pendingHead.Offset
			if sp.Header == "" {
				sp.Header = pendingHead.Header
			}
			pendingHead = nil
		}
		kept = append(kept, sp)
	}
	if len(kept) == 0 && pendingHead != nil {
		// 所有场景都过短时退化为单场景
		kept = append(kept, *pendingHead)
	}

	// 第二遍：偏短场景前向并入紧邻后继
	var merged []CandidateSpan
	for i := 0; i < len(kept); i++ {
		sp := kept[i]
		for len([]rune(sp.Text)) < ss.shortSceneLength && i+1 < len(kept) {
			next := kept[i+1]
			sp.Text += "\n\n" + next.Text
			if sp.Header == "" {
				sp.Header = next.Header
			}
			i++
		}
		merged = append(merged, sp)
	}

	if len(merged) > ss.maxScenes {
		merged = merged[:ss.maxScenes]
	}
	return merged
}
