// Package report 汇总后台看板所需的点击数据。
//
// 聚合只基于取回的最近 100 条记录, 不是整个日期范围的统计。
package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"click-tracker/internal/model"

	"github.com/samber/lo"
)

const (
	// PageLimit 单次最多取回的记录数
	PageLimit = 100
	// TopN 每个维度保留的条目数
	TopN = 10
	// DefaultDays 未指定 from 时回溯的天数
	DefaultDays = 30

	DateLayout = "2006-01-02"
)

var ErrInvalidDate = errors.New("report: date must be YYYY-MM-DD")

// Store 按时间范围查询点击记录
type Store interface {
	ListRange(ctx context.Context, from, to time.Time, limit int) ([]model.ClickRecord, error)
}

// Range 闭区间日期范围 (UTC 日)
type Range struct {
	From time.Time
	To   time.Time
}

// Start 起始日 00:00:00
func (r Range) Start() time.Time {
	return r.From
}

// End 结束日最后一纳秒
func (r Range) End() time.Time {
	return r.To.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// FromLabel / ToLabel 用于页面回填
func (r Range) FromLabel() string { return r.From.Format(DateLayout) }
func (r Range) ToLabel() string   { return r.To.Format(DateLayout) }

// ParseRange 解析 from/to, 为空时 to 取今天, from 取 30 天前
func ParseRange(from, to string, now time.Time) (Range, error) {
	today := truncateDay(now.UTC())

	r := Range{From: today.AddDate(0, 0, -DefaultDays), To: today}
	if from != "" {
		t, err := time.ParseInLocation(DateLayout, from, time.UTC)
		if err != nil {
			return Range{}, fmt.Errorf("%w: from=%q", ErrInvalidDate, from)
		}
		r.From = t
	}
	if to != "" {
		t, err := time.ParseInLocation(DateLayout, to, time.UTC)
		if err != nil {
			return Range{}, fmt.Errorf("%w: to=%q", ErrInvalidDate, to)
		}
		r.To = t
	}
	return r, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Count 某个维度值及其点击数
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Report 看板数据
type Report struct {
	From        string              `json:"from"`
	To          string              `json:"to"`
	TotalClicks int                 `json:"total_clicks"`
	TopClients  []Count             `json:"top_clients"`
	TopChannels []Count             `json:"top_channels"`
	Clicks      []model.ClickRecord `json:"clicks"`
}

// Service 报表服务
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Build 取回范围内最新的 PageLimit 条记录并计算客户/渠道 Top N
func (s *Service) Build(ctx context.Context, r Range) (*Report, error) {
	clicks, err := s.store.ListRange(ctx, r.Start(), r.End(), PageLimit)
	if err != nil {
		return nil, err
	}
	if clicks == nil {
		clicks = []model.ClickRecord{}
	}

	return &Report{
		From:        r.FromLabel(),
		To:          r.ToLabel(),
		TotalClicks: len(clicks),
		TopClients:  topBy(clicks, func(c model.ClickRecord) string { return c.Client }),
		TopChannels: topBy(clicks, func(c model.ClickRecord) string { return c.Channel }),
		Clicks:      clicks,
	}, nil
}

// topBy 按 key 计数, 数量倒序, 数量相同时按 key 升序
func topBy(clicks []model.ClickRecord, key func(model.ClickRecord) string) []Count {
	counts := lo.CountValuesBy(clicks, key)
	out := lo.MapToSlice(counts, func(k string, n int) Count {
		return Count{Key: k, Count: n}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > TopN {
		out = out[:TopN]
	}
	return out
}
