package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"click-tracker/internal/report"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportBuilder 生成看板数据
type ReportBuilder interface {
	Build(ctx context.Context, r report.Range) (*report.Report, error)
}

// AdminHandler 后台看板
type AdminHandler struct {
	reports ReportBuilder
	logger  *zap.SugaredLogger
	now     func() time.Time
}

func NewAdminHandler(reports ReportBuilder, logger *zap.SugaredLogger) *AdminHandler {
	return &AdminHandler{reports: reports, logger: logger.Named("admin"), now: time.Now}
}

// Dashboard 渲染看板页面
func (h *AdminHandler) Dashboard(c *gin.Context) {
	rng, err := report.ParseRange(c.Query("from"), c.Query("to"), h.now())
	if err != nil {
		c.HTML(http.StatusBadRequest, "admin.html", gin.H{
			"From":  c.Query("from"),
			"To":    c.Query("to"),
			"Error": "Invalid date range. Use YYYY-MM-DD.",
		})
		return
	}

	data := gin.H{"From": rng.FromLabel(), "To": rng.ToLabel()}
	rep, err := h.reports.Build(c.Request.Context(), rng)
	if err != nil {
		h.logger.Errorw("加载看板数据失败", "from", rng.FromLabel(), "to", rng.ToLabel(), "error", err)
		data["Error"] = "Failed to load statistics. Check your database connection."
		c.HTML(http.StatusOK, "admin.html", data)
		return
	}

	data["Report"] = rep
	c.HTML(http.StatusOK, "admin.html", data)
}

// ReportJSON godoc
// @Summary 点击报表
// @Description 日期范围内最新 100 条点击, 以及这一页内的客户/渠道 Top 10
// @Tags Admin
// @Security BasicAuth
// @Produce  json
// @Param from query string false "起始日期 YYYY-MM-DD, 默认 30 天前"
// @Param to   query string false "结束日期 YYYY-MM-DD, 默认今天"
// @Success 200 {object} report.Report
// @Failure 400 {object} gin.H "日期格式错误"
// @Failure 401 {string} string "未认证"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /admin/api/report [get]
func (h *AdminHandler) ReportJSON(c *gin.Context) {
	rng, err := report.ParseRange(c.Query("from"), c.Query("to"), h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rep, err := h.reports.Build(c.Request.Context(), rng)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		h.logger.Errorw("生成报表失败", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, rep)
}
