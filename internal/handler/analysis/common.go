package analysis

import (
	"time"

	"mango/internal/model/analysis"
	httputil "mango/internal/pkg/http"
	"mango/internal/pkg/scripttools"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// AnalysisInfo 分析结果 DTO
type AnalysisInfo struct {
	ID             string                `json:"id"`                      // 分析ID
	LanguageHint   string                `json:"language_hint,omitempty"` // 调用方语言提示
	Detection      scripttools.Detection `json:"detection"`               // 语言/格式检测结果
	Scenes         []scripttools.Scene   `json:"scenes"`                  // 场景列表
	Status         string                `json:"status"`                  // 分析状态
	SceneCount     int                   `json:"scene_count"`             // 场景总数
	FallbackScenes int                   `json:"fallback_scenes"`         // 走本地启发式路径的场景数
	CreatedAt      string                `json:"created_at"`              // 创建时间
}

// toAnalysisInfo 将 Analysis 实体转换为 AnalysisInfo DTO
func toAnalysisInfo(a *analysis.Analysis) AnalysisInfo {
	return AnalysisInfo{
		ID:             a.ID,
		LanguageHint:   a.LanguageHint,
		Detection:      a.Detection,
		Scenes:         a.Scenes,
		Status:         string(a.Status),
		SceneCount:     a.SceneCount,
		FallbackScenes: a.FallbackScenes,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
	}
}

// toAnalysisInfoList 将 Analysis 实体列表转换为 AnalysisInfo DTO 列表
func toAnalysisInfoList(analyses []*analysis.Analysis) []AnalysisInfo {
	list := make([]AnalysisInfo, len(analyses))
	for i, a := range analyses {
		list[i] = toAnalysisInfo(a)
	}
	return list
}
