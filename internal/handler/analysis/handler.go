package analysis

import (
	"mango/internal/service"
)

// Handler 分析接口处理器
type Handler struct {
	analysisService *service.AnalysisService
}

// NewHandler 创建分析接口处理器
func NewHandler(analysisService *service.AnalysisService) *Handler {
	return &Handler{analysisService: analysisService}
}
