package scripttools

import "strings"

// Emotion 情感标签
// 规范标签集是固定枚举，但类型保留为 string：
// 外部模型返回的未映射标签按原样透传为自身的规范值
type Emotion string

// 规范情感标签（声明顺序即平局裁决顺序，见 LocalClassifier）
const (
	EmotionHappy      Emotion = "happy"
	EmotionSad        Emotion = "sad"
	EmotionAngry      Emotion = "angry"
	EmotionFearful    Emotion = "fearful"
	EmotionRomantic   Emotion = "romantic"
	EmotionSurprised  Emotion = "surprised"
	EmotionDisgusted  Emotion = "disgusted"
	EmotionTense      Emotion = "tense"
	EmotionMysterious Emotion = "mysterious"
	EmotionDramatic   Emotion = "dramatic"
	EmotionPeaceful   Emotion = "peaceful"
	EmotionNeutral    Emotion = "neutral"
)

// CanonicalEmotions 规范标签集（固定顺序，决定所有平局裁决）
var CanonicalEmotions = []Emotion{
	EmotionHappy,
	EmotionSad,
	EmotionAngry,
	EmotionFearful,
	EmotionRomantic,
	EmotionSurprised,
	EmotionDisgusted,
	EmotionTense,
	EmotionMysterious,
	EmotionDramatic,
	EmotionPeaceful,
	EmotionNeutral,
}

// rawToCanonical 外部模型原始标签 → 规范标签映射表
// 未出现在表中的原始标签按原样透传
var rawToCanonical = map[string]Emotion{
	"joy":          EmotionHappy,
	"happiness":    EmotionHappy,
	"happy":        EmotionHappy,
	"amusement":    EmotionHappy,
	"excitement":   EmotionHappy,
	"sadness":      EmotionSad,
	"sad":          EmotionSad,
	"grief":        EmotionSad,
	"sorrow":       EmotionSad,
	"anger":        EmotionAngry,
	"angry":        EmotionAngry,
	"rage":         EmotionAngry,
	"fury":         EmotionAngry,
	"fear":         EmotionFearful,
	"fearful":      EmotionFearful,
	"terror":       EmotionFearful,
	"horror":       EmotionFearful,
	"anxiety":      EmotionFearful,
	"love":         EmotionRomantic,
	"romance":      EmotionRomantic,
	"romantic":     EmotionRomantic,
	"desire":       EmotionRomantic,
	"surprise":     EmotionSurprised,
	"surprised":    EmotionSurprised,
	"confusion":    EmotionSurprised,
	"disgust":      EmotionDisgusted,
	"disgusted":    EmotionDisgusted,
	"contempt":     EmotionDisgusted,
	"suspense":     EmotionTense,
	"tension":      EmotionTense,
	"tense":        EmotionTense,
	"anticipation": EmotionTense,
	"mystery":      EmotionMysterious,
	"mysterious":   EmotionMysterious,
	"drama":        EmotionDramatic,
	"dramatic":     EmotionDramatic,
	"calm":         EmotionPeaceful,
	"calmness":     EmotionPeaceful,
	"serenity":     EmotionPeaceful,
	"peaceful":     EmotionPeaceful,
	"neutral":      EmotionNeutral,
}

// CanonicalEmotion 将原始标签映射为规范标签
func CanonicalEmotion(raw string) Emotion {
	if e, ok := rawToCanonical[normalizeLabel(raw)]; ok {
		return e
	}
	return Emotion(normalizeLabel(raw))
}

// normalizeLabel 标签归一化（小写、去首尾空白）
func normalizeLabel(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// EmotionScore 标签与得分对（alternates 使用）
type EmotionScore struct {
	Emotion Emotion `json:"emotion"`
	Score   float64 `json:"score"`
}

// Scene 流水线的输出单元
// 由 Analyzer 组装，加入结果序列后不再修改
type Scene struct {
	SceneNumber   int            `json:"scene_number"`             // 场景编号（1开始，连续无空洞）
	Header        string         `json:"header,omitempty"`         // 尽力提取的场景头/位置行，不保证准确
	Content       string         `json:"content"`                  // 场景正文（trim后非空）
	Characters    []string       `json:"characters,omitempty"`     // 出场角色名（仅供参考）
	DialogueLines []string       `json:"dialogue_lines,omitempty"` // 对白行（仅用于特征加权）
	ActionLines   []string       `json:"action_lines,omitempty"`   // 动作描述行（仅用于特征加权）
	Emotion       Emotion        `json:"emotion"`                  // 规范情感标签
	Confidence    float64        `json:"confidence"`               // 置信度 [0,1]
	Alternates    []EmotionScore `json:"alternates,omitempty"`     // 0-2个备选标签（仅供展示）
	Language      string         `json:"language"`                 // 文档语言
	FallbackUsed  bool           `json:"fallback_used"`            // true 表示情感来自本地启发式路径
}
