package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"click-tracker/internal/identity"
	"click-tracker/internal/model"
	"click-tracker/internal/params"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExampleLink 错误页和首页展示的示例链接
const ExampleLink = "/redirect?client=superboats&service=boat-trip-lisbon&industry=boats&channel=tiktok&dest=https%3A%2F%2Fexample.com"

// ClickRecorder 后台写入点击记录, 调用方不等待结果
type ClickRecorder interface {
	RecordAsync(rec *model.ClickRecord)
}

// ClickHandler 处理跳转、回传和健康检查
type ClickHandler struct {
	recorder  ClickRecorder
	salt      string
	affiliate string
	logger    *zap.SugaredLogger
}

// NewClickHandler 创建处理器实例
func NewClickHandler(recorder ClickRecorder, ipHashSalt, affiliate string, logger *zap.SugaredLogger) *ClickHandler {
	return &ClickHandler{
		recorder:  recorder,
		salt:      ipHashSalt,
		affiliate: affiliate,
		logger:    logger.Named("click"),
	}
}

// IndexPage 首页
func (h *ClickHandler) IndexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"Example": ExampleLink})
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	OK   bool   `json:"ok" example:"true"`
	Time string `json:"time" example:"2024-01-01T00:00:00.000Z"`
}

// HealthCheck godoc
// @Summary 健康检查
// @Description 返回服务状态和当前时间
// @Tags System
// @Produce  json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *ClickHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{OK: true, Time: time.Now().UTC().Format("2006-01-02T15:04:05.000Z")})
}

// Redirect godoc
// @Summary 点击跳转
// @Description 校验参数, 后台记录点击, 302 跳转到 dest 并附加 click_id
// @Tags Click
// @Produce  html
// @Param client   query string true  "客户"
// @Param service  query string true  "服务"
// @Param industry query string true  "行业"
// @Param channel  query string true  "渠道"
// @Param campaign query string false "活动"
// @Param dest     query string true  "目标地址 (http/https)"
// @Success 302 "跳转到目标地址"
// @Failure 400 {string} string "参数错误页面"
// @Router /redirect [get]
func (h *ClickHandler) Redirect(c *gin.Context) {
	query := c.Request.URL.Query()

	p, err := params.Parse(query)
	if err != nil {
		h.logger.Infow("跳转参数无效", "error", err, "query", c.Request.URL.RawQuery)
		h.renderParamError(c, err)
		return
	}

	// 跳转前再次确认目标地址
	if err := params.ValidateDestination(p.Dest); err != nil {
		h.renderError(c, "Invalid destination URL", "The destination must be a valid http:// or https:// URL", []string{params.FieldDest})
		return
	}

	clickID := identity.NewClickID()
	rec := &model.ClickRecord{
		ClickID:   clickID,
		Client:    p.Client,
		Service:   p.Service,
		Industry:  p.Industry,
		Channel:   p.Channel,
		Campaign:  optional(p.Campaign),
		Aff:       h.affiliate,
		DestURL:   p.Dest,
		Referer:   optional(c.GetHeader("Referer")),
		UserAgent: optional(c.GetHeader("User-Agent")),
	}
	if ip := identity.ExtractIP(c.Request.Header); ip != "" {
		hash, err := identity.HashIP(h.salt, ip)
		if err != nil {
			h.logger.Warnw("IP 哈希失败, 忽略该字段", "click_id", clickID, "error", err)
		} else {
			rec.IPHash = &hash
		}
	}

	target, err := buildRedirectURL(p, clickID, query)
	if err != nil {
		h.renderError(c, "Invalid destination URL", "The destination must be a valid http:// or https:// URL", []string{params.FieldDest})
		return
	}

	h.recorder.RecordAsync(rec)

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Redirect(http.StatusFound, target)
}

// buildRedirectURL 在目标地址上附加除 dest 外的原始参数和 click_id, 分类字段使用规范化后的值
func buildRedirectURL(p params.Params, clickID string, original url.Values) (string, error) {
	u, err := url.Parse(p.Dest)
	if err != nil {
		return "", err
	}
	if u.Path == "" {
		u.Path = "/"
	}

	q := u.Query()
	for key, vals := range original {
		if key == params.FieldDest || len(vals) == 0 {
			continue
		}
		q.Set(key, vals[len(vals)-1])
	}

	normalized := map[string]string{
		params.FieldClient:   p.Client,
		params.FieldService:  p.Service,
		params.FieldIndustry: p.Industry,
		params.FieldChannel:  p.Channel,
		params.FieldCampaign: p.Campaign,
	}
	for key, val := range normalized {
		if val == "" {
			q.Del(key)
			continue
		}
		q.Set(key, val)
	}
	q.Set("click_id", clickID)

	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (h *ClickHandler) renderParamError(c *gin.Context, err error) {
	var verr *params.ValidationError
	if !errors.As(err, &verr) {
		h.renderError(c, "Invalid Link Format", "This tracking link is malformed. Please check the URL and try again.", nil)
		return
	}
	if len(verr.Missing) > 0 {
		h.renderError(c, "Missing Required Parameters", "Please provide: "+strings.Join(verr.Missing, ", "), verr.Fields())
		return
	}
	h.renderError(c, "Invalid destination URL", "The destination must be a valid http:// or https:// URL", verr.Fields())
}

func (h *ClickHandler) renderError(c *gin.Context, title, message string, fields []string) {
	c.HTML(http.StatusBadRequest, "error.html", gin.H{
		"Title":   title,
		"Message": message,
		"Fields":  fields,
		"Example": ExampleLink,
	})
}

// PostbackResponse 回传响应
type PostbackResponse struct {
	Success bool   `json:"success"`
	ClickID string `json:"click_id,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Postback godoc
// @Summary 转化回传
// @Description 校验 click_id 并确认收到, 目前不修改任何数据
// @Tags Click
// @Produce  json
// @Param click_id query string true "点击 ID (UUID)"
// @Success 200 {object} PostbackResponse
// @Failure 400 {object} PostbackResponse
// @Router /postback [get]
// @Router /postback [post]
func (h *ClickHandler) Postback(c *gin.Context) {
	clickID := c.Query("click_id")
	if clickID == "" && c.Request.Method == http.MethodPost {
		clickID = c.PostForm("click_id")
	}

	if !identity.IsClickID(clickID) {
		h.logger.Infow("回传 click_id 无效", "click_id", clickID)
		c.JSON(http.StatusBadRequest, PostbackResponse{Success: false, Error: "Invalid click_id parameter"})
		return
	}

	h.logger.Infow("收到回传", "click_id", clickID, "method", c.Request.Method)
	c.JSON(http.StatusOK, PostbackResponse{
		Success: true,
		ClickID: clickID,
		Message: "Conversion tracking placeholder - not implemented yet",
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
