package repository

import (
	"context"
	"fmt"
	"time"

	"click-tracker/internal/model"

	"gorm.io/gorm"
)

// ClickRepository 点击记录的存取, 只提供插入和按时间范围查询
type ClickRepository struct {
	db *gorm.DB
}

func NewClickRepository(db *gorm.DB) *ClickRepository {
	return &ClickRepository{db: db}
}

// Insert 插入一条点击记录, CreatedAt 由 gorm 在写入时赋值
func (r *ClickRepository) Insert(ctx context.Context, rec *model.ClickRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("插入点击记录失败: %w", err)
	}
	return nil
}

// ListRange 查询 [from, to] 内的记录, 按创建时间倒序, 最多 limit 条
func (r *ClickRepository) ListRange(ctx context.Context, from, to time.Time, limit int) ([]model.ClickRecord, error) {
	var clicks []model.ClickRecord
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&clicks).Error
	if err != nil {
		return nil, fmt.Errorf("查询点击记录失败: %w", err)
	}
	return clicks, nil
}
