package analysis

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"mango/internal/pkg/scripttools"
	"mango/internal/service"
)

// newTestRouter 构造纯本地路径（无外部模型、无持久化）的测试路由
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := service.NewAnalysisService(scripttools.NewAnalyzer(nil), nil)
	hdl := NewHandler(svc)

	engine := gin.New()
	v1 := engine.Group("/api/v1")
	v1.POST("/analyses", hdl.CreateAnalysis)
	v1.GET("/analyses", hdl.ListAnalyses)
	v1.GET("/analyses/:analysis_id", hdl.GetAnalysis)
	return engine
}

func TestAnalysisHandler(t *testing.T) {
	router := newTestRouter()

	Convey("合法文档应返回201与完整分析结果", t, func() {
		body := `{"document_text": "INT. KITCHEN - DAY\nAlice screams in terror as the panic spreads through the room tonight."}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		So(w.Code, ShouldEqual, http.StatusCreated)

		var resp struct {
			Code int `json:"code"`
			Data struct {
				Analysis AnalysisInfo `json:"analysis"`
			} `json:"data"`
		}
		So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
		So(resp.Code, ShouldEqual, 0)
		So(resp.Data.Analysis.SceneCount, ShouldBeGreaterThan, 0)
		So(resp.Data.Analysis.Scenes[0].SceneNumber, ShouldEqual, 1)
		So(resp.Data.Analysis.Scenes[0].FallbackUsed, ShouldBeTrue)
	})

	Convey("缺少document_text应返回400", t, func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		So(w.Code, ShouldEqual, http.StatusBadRequest)

		var resp ErrorResponse
		So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
		So(resp.Code, ShouldEqual, 40001)
	})

	Convey("纯空白文档应返回400", t, func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(`{"document_text": "   \n\t  "}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		So(w.Code, ShouldEqual, http.StatusBadRequest)

		var resp ErrorResponse
		So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
		So(resp.Code, ShouldEqual, 40002)
	})

	Convey("未配置持久化时查询接口应返回503", t, func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
	})
}
