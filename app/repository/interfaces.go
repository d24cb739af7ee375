package repository

import (
	"github.com/MilanKovacevic/FeroCast/app/models"
)

// NewsRepository defines the interface for news-related database operations
type NewsRepository interface {
	Create(news *models.News) error
	GetByID(id uint64) (*models.News, error)
	List() ([]models.News, error)
	Update(news *models.News) error
	Delete(id uint64) error
}

// ProductRepository defines the interface for product-related database operations
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint64) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	List(includeInactive bool) ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id uint64) error
	// SlugsLike returns all existing slugs starting with prefix,
	// excluding the row with excludeID (0 on the create path).
	SlugsLike(prefix string, excludeID uint64) ([]string, error)
}
