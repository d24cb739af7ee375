package models

import (
	"time"
)

// Product represents a product listing. Optional text fields are
// pointers so a blank form value persists as NULL, not "".
type Product struct {
	ID             uint64       `gorm:"primaryKey" json:"id"`
	Name           string       `gorm:"type:varchar(255)" json:"name" validate:"required"`
	Slug           string       `gorm:"uniqueIndex;type:varchar(255)" json:"slug"`
	Summary        *string      `gorm:"type:text" json:"summary"`
	Description    string       `gorm:"type:text" json:"description" validate:"required"`
	Category       *string      `gorm:"type:varchar(255)" json:"category"`
	HeroImage      *string      `gorm:"type:varchar(512)" json:"hero_image"`
	Gallery        StringList   `gorm:"type:json" json:"gallery"`
	Documents      DocumentList `gorm:"type:json" json:"documents"`
	SeoTitle       *string      `gorm:"type:varchar(255)" json:"seo_title"`
	SeoDescription *string      `gorm:"type:text" json:"seo_description"`
	IsActive       bool         `gorm:"type:tinyint(1);default:1" json:"is_active"`
	SortOrder      int          `gorm:"default:0" json:"sort_order"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
