// Package params 负责跳转链接参数的绑定、规范化和校验。
package params

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// 字段名, 与查询参数一致
const (
	FieldClient   = "client"
	FieldService  = "service"
	FieldIndustry = "industry"
	FieldChannel  = "channel"
	FieldCampaign = "campaign"
	FieldDest     = "dest"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Params 跳转请求的规范化参数
type Params struct {
	Client   string `form:"client" binding:"required"`
	Service  string `form:"service" binding:"required"`
	Industry string `form:"industry" binding:"required"`
	Channel  string `form:"channel" binding:"required"`
	Campaign string `form:"campaign"`
	Dest     string `form:"dest" binding:"required"`
}

// ValidationError 记录缺失或非法的字段
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid: "+strings.Join(e.Invalid, ", "))
	}
	return "validation failed (" + strings.Join(parts, "; ") + ")"
}

// Fields 返回所有出错的字段
func (e *ValidationError) Fields() []string {
	return append(append([]string{}, e.Missing...), e.Invalid...)
}

// ErrInvalidDestination 目标地址不是 http/https 绝对地址
var ErrInvalidDestination = errors.New("destination must be an absolute http or https URL")

// Normalize 转成小写连字符形式: 去空白, 小写, 非字母数字串合并为一个 "-", 去掉首尾 "-"
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ValidateDestination 校验目标地址, 绑定和跳转前都会调用
func ValidateDestination(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDestination, err)
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidDestination
	}
	return nil
}

// Parse 绑定并校验查询参数, 失败时返回 *ValidationError
func Parse(values url.Values) (Params, error) {
	var p Params
	if err := binding.MapFormWithTag(&p, values, "form"); err != nil {
		return Params{}, err
	}

	verr := &ValidationError{}
	if err := binding.Validator.ValidateStruct(&p); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return Params{}, err
		}
		for _, fe := range fieldErrs {
			verr.Missing = append(verr.Missing, strings.ToLower(fe.Field()))
		}
	}

	p.Dest = strings.TrimSpace(p.Dest)
	normalized := []struct {
		name string
		val  *string
	}{
		{FieldClient, &p.Client},
		{FieldService, &p.Service},
		{FieldIndustry, &p.Industry},
		{FieldChannel, &p.Channel},
	}
	for _, f := range normalized {
		raw := *f.val
		*f.val = Normalize(raw)
		// 只有符号的值规范化后为空, 视同缺失
		if raw != "" && *f.val == "" {
			verr.Missing = insertOrdered(verr.Missing, f.name)
		}
	}
	p.Campaign = Normalize(p.Campaign)

	if p.Dest != "" {
		if err := ValidateDestination(p.Dest); err != nil {
			verr.Invalid = append(verr.Invalid, FieldDest)
		}
	}

	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return Params{}, verr
	}
	return p, nil
}

var fieldOrder = []string{FieldClient, FieldService, FieldIndustry, FieldChannel, FieldDest}

// insertOrdered 按固定字段顺序插入
func insertOrdered(fields []string, name string) []string {
	set := make(map[string]bool, len(fields)+1)
	for _, f := range fields {
		set[f] = true
	}
	set[name] = true

	out := make([]string, 0, len(set))
	for _, f := range fieldOrder {
		if set[f] {
			out = append(out, f)
		}
	}
	return out
}
