package repository

import (
	"github.com/MilanKovacevic/FeroCast/app/models"
	"gorm.io/gorm"
)

// newsRepository implements the NewsRepository interface
type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a new news repository instance
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

// Create inserts a new news post
func (r *newsRepository) Create(news *models.News) error {
	return r.db.Create(news).Error
}

// GetByID retrieves a news post by its ID
func (r *newsRepository) GetByID(id uint64) (*models.News, error) {
	var news models.News
	err := r.db.First(&news, id).Error
	if err != nil {
		return nil, err
	}
	return &news, nil
}

// List retrieves all news posts, newest first
func (r *newsRepository) List() ([]models.News, error) {
	var news []models.News
	err := r.db.Order("created_at DESC").Find(&news).Error
	return news, err
}

// Update persists changes to an existing news post
func (r *newsRepository) Update(news *models.News) error {
	return r.db.Save(news).Error
}

// Delete removes a news post by its ID
func (r *newsRepository) Delete(id uint64) error {
	return r.db.Delete(&models.News{}, id).Error
}
