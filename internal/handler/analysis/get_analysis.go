package analysis

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAnalysisRequest 获取分析请求
type GetAnalysisRequest struct {
	AnalysisID string `uri:"analysis_id" binding:"required"` // 分析ID（必填）
}

// GetAnalysisResponseData 获取分析响应数据
type GetAnalysisResponseData struct {
	Analysis AnalysisInfo `json:"analysis"` // 分析结果
}

// GetAnalysis 获取分析结果
// @Summary      获取分析结果
// @Description  根据分析ID获取已保存的分析结果
// @Tags         文档分析
// @Accept       json
// @Produce      json
// @Param        analysis_id  path      string  true  "分析ID"
// @Success      200          {object}  map[string]interface{}  "成功响应"
// @Failure      400          {object}  ErrorResponse  "请求参数错误"
// @Failure      404          {object}  ErrorResponse  "分析不存在"
// @Failure      500          {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/analyses/{analysis_id} [get]
func (h *Handler) GetAnalysis(c *gin.Context) {
	var req GetAnalysisRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid analysis_id",
			Detail:  err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	// 调用Service层
	result, err := h.analysisService.GetAnalysis(ctx, req.AnalysisID)
	if err != nil {
		code := http.StatusInternalServerError
		errorCode := 50001

		switch err.Error() {
		case "analysis not found":
			code = http.StatusNotFound
			errorCode = 40401
		case "persistence not configured":
			code = http.StatusServiceUnavailable
			errorCode = 50301
		}

		c.JSON(code, ErrorResponse{
			Code:    errorCode,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": GetAnalysisResponseData{
			Analysis: toAnalysisInfo(result),
		},
	})
}
