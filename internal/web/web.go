// Package web 内嵌页面模板。
package web

import (
	"embed"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	// 点击 ID 只展示第一段
	"shortID": func(id string) string {
		head, _, _ := strings.Cut(id, "-")
		return head
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"datetime": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04:05")
	},
	"odd": func(i int) bool { return i%2 == 1 },
}

// Templates 解析所有内嵌模板, 供 gin.Engine.SetHTMLTemplate 使用
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
