package analysis

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListAnalysesResponseData 分析列表响应数据
type ListAnalysesResponseData struct {
	Analyses []AnalysisInfo `json:"analyses"` // 分析列表
	Count    int            `json:"count"`    // 本页数量
}

// ListAnalyses 分页查询分析结果
// @Summary      分析列表
// @Description  按创建时间倒序分页查询分析结果
// @Tags         文档分析
// @Accept       json
// @Produce      json
// @Param        limit   query     int  false  "每页数量（默认20）"
// @Param        offset  query     int  false  "偏移量（默认0）"
// @Success      200     {object}  map[string]interface{}  "成功响应"
// @Failure      500     {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/analyses [get]
func (h *Handler) ListAnalyses(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)
	if err != nil || offset < 0 {
		offset = 0
	}

	ctx := c.Request.Context()

	// 调用Service层
	analyses, err := h.analysisService.ListAnalyses(ctx, limit, offset)
	if err != nil {
		code := http.StatusInternalServerError
		errorCode := 50001

		if err.Error() == "persistence not configured" {
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
		"data": ListAnalysesResponseData{
			Analyses: toAnalysisInfoList(analyses),
			Count:    len(analyses),
		},
	})
}
