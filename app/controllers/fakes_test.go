package controllers

import (
	"os"
	"sort"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/MilanKovacevic/FeroCast/app/models"
)

// Keep handler tests off any local redis so list reads always fall
// through to the repository.
func TestMain(m *testing.M) {
	os.Setenv("CACHE_PORT", "0")
	os.Exit(m.Run())
}

// fakeNewsRepo is an in-memory NewsRepository for handler tests.
type fakeNewsRepo struct {
	nextID  uint64
	items   map[uint64]*models.News
	created int
	updated int
	deleted int
	failAll bool
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{nextID: 1, items: map[uint64]*models.News{}}
}

func (r *fakeNewsRepo) Create(news *models.News) error {
	if r.failAll {
		return gorm.ErrInvalidDB
	}
	news.ID = r.nextID
	r.nextID++
	copied := *news
	r.items[news.ID] = &copied
	r.created++
	return nil
}

func (r *fakeNewsRepo) GetByID(id uint64) (*models.News, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeNewsRepo) List() ([]models.News, error) {
	if r.failAll {
		return nil, gorm.ErrInvalidDB
	}
	out := make([]models.News, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	// newest first, like the repository query
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeNewsRepo) Update(news *models.News) error {
	if r.failAll {
		return gorm.ErrInvalidDB
	}
	copied := *news
	r.items[news.ID] = &copied
	r.updated++
	return nil
}

func (r *fakeNewsRepo) Delete(id uint64) error {
	delete(r.items, id)
	r.deleted++
	return nil
}

// fakeProductRepo is an in-memory ProductRepository for handler tests.
type fakeProductRepo struct {
	nextID  uint64
	items   map[uint64]*models.Product
	created int
	updated int
	deleted int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{nextID: 1, items: map[uint64]*models.Product{}}
}

func (r *fakeProductRepo) Create(product *models.Product) error {
	product.ID = r.nextID
	r.nextID++
	copied := *product
	r.items[product.ID] = &copied
	r.created++
	return nil
}

func (r *fakeProductRepo) GetByID(id uint64) (*models.Product, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeProductRepo) GetBySlug(slug string) (*models.Product, error) {
	for _, item := range r.items {
		if item.Slug == slug {
			copied := *item
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) List(includeInactive bool) ([]models.Product, error) {
	out := make([]models.Product, 0, len(r.items))
	for _, item := range r.items {
		if !includeInactive && !item.IsActive {
			continue
		}
		out = append(out, *item)
	}
	// sort_order ASC, newest first within the same rank
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *fakeProductRepo) Update(product *models.Product) error {
	copied := *product
	r.items[product.ID] = &copied
	r.updated++
	return nil
}

func (r *fakeProductRepo) Delete(id uint64) error {
	delete(r.items, id)
	r.deleted++
	return nil
}

func (r *fakeProductRepo) SlugsLike(prefix string, excludeID uint64) ([]string, error) {
	var slugs []string
	for id, item := range r.items {
		if id == excludeID {
			continue
		}
		if strings.HasPrefix(item.Slug, prefix) {
			slugs = append(slugs, item.Slug)
		}
	}
	return slugs, nil
}
