package models

import (
	"time"
)

// News represents a news post on the public site
type News struct {
	ID        uint64     `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"type:varchar(255)" json:"title" validate:"required"`
	Body      string     `gorm:"type:text" json:"body" validate:"required"`
	Images    StringList `gorm:"type:json" json:"images"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the News model
func (News) TableName() string {
	return "news"
}
