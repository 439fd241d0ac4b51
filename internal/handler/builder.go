package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"click-tracker/internal/params"

	"github.com/gin-gonic/gin"
)

var (
	builderIndustries = []string{
		"boats", "automotive", "travel", "hospitality", "entertainment", "fitness",
		"education", "technology", "fashion", "food", "real-estate", "other",
	}
	builderChannels = []string{
		"tiktok", "instagram", "facebook", "youtube", "twitter", "linkedin", "pinterest",
		"snapchat", "email", "sms", "whatsapp", "telegram", "blog", "podcast", "newsletter",
		"affiliate", "influencer", "direct", "other",
	}
	builderFields = []string{
		params.FieldClient, params.FieldService, params.FieldIndustry,
		params.FieldChannel, params.FieldCampaign, params.FieldDest,
	}
)

// BuilderPage 生成跟踪链接的表单, 带参数提交时在页面上给出完整链接
func (h *ClickHandler) BuilderPage(c *gin.Context) {
	form := make(map[string]string, len(builderFields))
	submitted := false
	for _, f := range builderFields {
		form[f] = strings.TrimSpace(c.Query(f))
		if form[f] != "" {
			submitted = true
		}
	}

	data := gin.H{
		"Form":       form,
		"Industries": builderIndustries,
		"Channels":   builderChannels,
	}
	if !submitted {
		c.HTML(http.StatusOK, "builder.html", data)
		return
	}

	values := url.Values{}
	for _, f := range builderFields {
		if form[f] != "" {
			values.Set(f, form[f])
		}
	}

	if _, err := params.Parse(values); err != nil {
		var verr *params.ValidationError
		if errors.As(err, &verr) {
			data["Error"] = "Please fix: " + strings.Join(verr.Fields(), ", ")
		} else {
			data["Error"] = "Please fill in all required fields"
		}
		c.HTML(http.StatusOK, "builder.html", data)
		return
	}

	data["Link"] = baseURL(c) + "/redirect?" + values.Encode()
	c.HTML(http.StatusOK, "builder.html", data)
}

func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}
