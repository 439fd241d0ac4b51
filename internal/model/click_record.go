package model

import (
	"time"
)

// ClickRecord 一次跳转对应的点击记录, 只插入不更新
type ClickRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ClickID   string    `gorm:"size:36;uniqueIndex;not null" json:"click_id"`
	Client    string    `gorm:"size:191;not null;index" json:"client"`
	Service   string    `gorm:"size:191;not null" json:"service"`
	Industry  string    `gorm:"size:191;not null" json:"industry"`
	Channel   string    `gorm:"size:191;not null;index" json:"channel"`
	Campaign  *string   `gorm:"size:191" json:"campaign,omitempty"`
	Aff       string    `gorm:"size:64" json:"aff"`
	DestURL   string    `gorm:"type:text;not null" json:"dest_url"`
	Referer   *string   `gorm:"type:text" json:"referer,omitempty"`
	UserAgent *string   `gorm:"type:text" json:"user_agent,omitempty"`
	IPHash    *string   `gorm:"size:64" json:"ip_hash,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ClickRecord) TableName() string {
	return "clicks"
}
