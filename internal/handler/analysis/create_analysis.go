package analysis

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mango/internal/pkg/scripttools"
)

// CreateAnalysisRequest 创建分析请求
type CreateAnalysisRequest struct {
	DocumentText string `json:"document_text" binding:"required"` // 文档全文（必填）
	LanguageHint string `json:"language_hint"`                    // 语言提示（可选，ISO 639-1）
}

// CreateAnalysisResponseData 创建分析响应数据
type CreateAnalysisResponseData struct {
	Analysis AnalysisInfo `json:"analysis"` // 分析结果
}

// CreateAnalysis 分析一篇文档
// @Summary      分析文档
// @Description  对文档执行场景切分与逐场景情感分类，返回完整分析结果。配置了 MongoDB 时结果同时落库。
// @Tags         文档分析
// @Accept       json
// @Produce      json
// @Param        request  body      CreateAnalysisRequest  true  "创建分析请求"
// @Success      201      {object}  map[string]interface{}  "成功响应"
// @Failure      400      {object}  ErrorResponse  "请求参数错误或文档为空"
// @Failure      500      {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/analyses [post]
func (h *Handler) CreateAnalysis(c *gin.Context) {
	var req CreateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	// 调用Service层
	result, err := h.analysisService.Analyze(ctx, req.DocumentText, req.LanguageHint)
	if err != nil {
		code := http.StatusInternalServerError
		errorCode := 50001

		if errors.Is(err, scripttools.ErrEmptyDocument) {
			code = http.StatusBadRequest
			errorCode = 40002
		}

		c.JSON(code, ErrorResponse{
			Code:    errorCode,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "分析完成",
		"data": CreateAnalysisResponseData{
			Analysis: toAnalysisInfo(result),
		},
	})
}
