package repository

import (
	"github.com/MilanKovacevic/FeroCast/app/models"
	"gorm.io/gorm"
)

// productRepository implements the ProductRepository interface
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository instance
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product. The slug must already be resolved; the
// unique index on the column is the last line of defense against a
// concurrent create picking the same one.
func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// GetByID retrieves a product by its numeric ID
func (r *productRepository) GetByID(id uint64) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetBySlug retrieves a product by its slug
func (r *productRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("slug = ?", slug).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List retrieves products ordered for display. Inactive products are
// excluded unless includeInactive is set (administrative listing).
func (r *productRepository) List(includeInactive bool) ([]models.Product, error) {
	var products []models.Product
	query := r.db.Order("sort_order ASC, created_at DESC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&products).Error
	return products, err
}

// Update persists changes to an existing product
func (r *productRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete removes a product by its ID. Uploaded files referenced by the
// row are not cleaned up.
func (r *productRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// SlugsLike returns existing slugs sharing a prefix, excluding the row
// being updated so re-resolving its own slug is a no-op.
func (r *productRepository) SlugsLike(prefix string, excludeID uint64) ([]string, error) {
	var slugs []string
	query := r.db.Model(&models.Product{}).Where("slug LIKE ?", prefix+"%")
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Pluck("slug", &slugs).Error
	return slugs, err
}
