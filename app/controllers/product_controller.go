package controllers

import (
	"encoding/json"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"golang.org/x/sync/errgroup"

	"github.com/MilanKovacevic/FeroCast/app/models"
	"github.com/MilanKovacevic/FeroCast/app/repository"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/apperr"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/cache"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/mediastore"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/slug"
)

// ProductController handles the product API
type ProductController struct {
	productRepo repository.ProductRepository
	media       *mediastore.Store
}

func NewProductController(productRepo repository.ProductRepository, media *mediastore.Store) *ProductController {
	return &ProductController{
		productRepo: productRepo,
		media:       media,
	}
}

type productForm struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
}

// productMedia is the outcome of the three per-field ingestion calls
// that run concurrently within one mutation.
type productMedia struct {
	hero      []mediastore.Saved
	gallery   []mediastore.Saved
	documents []mediastore.Saved
}

// HandleList returns products for display. Inactive rows are included
// only when includeInactive is set (administrative listing).
func (pc *ProductController) HandleList(c *fiber.Ctx) error {
	includeInactive := c.Query("includeInactive") == "true" || c.Query("includeInactive") == "1"

	key := cache.KeyProductsList
	if includeInactive {
		key = cache.KeyProductsListAll
	}
	if cached, err := cache.Get(key); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	products, err := pc.productRepo.List(includeInactive)
	if err != nil {
		return respondRepoError(c, err)
	}

	if body, err := json.Marshal(products); err == nil {
		if err := cache.Set(key, string(body), cache.DefaultListExpiration); err != nil {
			fiberlog.Debugf("[cache] store product list failed: %v", err)
		}
	}
	return c.JSON(products)
}

// HandleGet returns a single product, addressed by numeric id or slug
func (pc *ProductController) HandleGet(c *fiber.Ctx) error {
	raw := c.Params("idOrSlug")

	var product *models.Product
	var err error
	if id, parseErr := strconv.ParseUint(raw, 10, 64); parseErr == nil && id > 0 {
		product, err = pc.productRepo.GetByID(id)
	} else {
		product, err = pc.productRepo.GetBySlug(raw)
	}
	if err != nil {
		return respondRepoError(c, err)
	}
	return c.JSON(product)
}

// HandleCreate creates a product from one multipart submission: scalar
// fields plus up to one hero image, ten gallery images and eight
// documents, ingested in parallel.
func (pc *ProductController) HandleCreate(c *fiber.Ctx) error {
	if err := checkAdminPassword(c); err != nil {
		return respondError(c, err)
	}

	form := productForm{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Description: strings.TrimSpace(c.FormValue("description")),
	}
	if err := validate.Struct(form); err != nil {
		return respondError(c, productRequiredErr())
	}

	media, err := pc.ingestMedia(c)
	if err != nil {
		return respondError(c, err)
	}

	resolvedSlug, err := pc.resolveSlug(c.FormValue("slug"), form.Name, 0)
	if err != nil {
		return respondRepoError(c, err)
	}

	product := &models.Product{
		Name:           form.Name,
		Slug:           resolvedSlug,
		Summary:        optionalField(c, "summary"),
		Description:    form.Description,
		Category:       optionalField(c, "category"),
		HeroImage:      heroURL(media.hero),
		Gallery:        savedURLs(media.gallery),
		Documents:      savedDocuments(media.documents),
		SeoTitle:       optionalField(c, "seoTitle"),
		SeoDescription: optionalField(c, "seoDescription"),
		IsActive:       activeField(c, true),
		SortOrder:      sortOrderField(c),
	}
	if err := pc.productRepo.Create(product); err != nil {
		return respondRepoError(c, err)
	}

	invalidateCache(cache.KeyProductsList, cache.KeyProductsListAll)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":         product.ID,
		"slug":       product.Slug,
		"hero_image": product.HeroImage,
		"gallery":    product.Gallery,
		"documents":  product.Documents,
	})
}

// HandleUpdate updates a product. Hero, gallery and documents follow
// the clear/replace flag contract; everything else is replaced from the
// submitted fields.
func (pc *ProductController) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := checkAdminPassword(c); err != nil {
		return respondError(c, err)
	}

	product, err := pc.productRepo.GetByID(id)
	if err != nil {
		return respondRepoError(c, err)
	}

	form := productForm{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Description: strings.TrimSpace(c.FormValue("description")),
	}
	if err := validate.Struct(form); err != nil {
		return respondError(c, productRequiredErr())
	}

	media, err := pc.ingestMedia(c)
	if err != nil {
		return respondError(c, err)
	}

	// Slug is recomputed against all other rows on every update, so an
	// unchanged name keeps its slug.
	resolvedSlug, err := pc.resolveSlug(c.FormValue("slug"), form.Name, id)
	if err != nil {
		return respondRepoError(c, err)
	}

	heroDirective := directiveFor(boolField(c, "removeHero"), false, len(media.hero) > 0)
	galleryDirective := directiveFor(boolField(c, "clearGallery"), boolField(c, "replaceGallery"), len(media.gallery) > 0)
	docsDirective := directiveFor(boolField(c, "clearDocuments"), boolField(c, "replaceDocuments"), len(media.documents) > 0)

	product.Name = form.Name
	product.Slug = resolvedSlug
	product.Summary = optionalField(c, "summary")
	product.Description = form.Description
	product.Category = optionalField(c, "category")
	product.SeoTitle = optionalField(c, "seoTitle")
	product.SeoDescription = optionalField(c, "seoDescription")
	product.IsActive = activeField(c, product.IsActive)
	product.SortOrder = sortOrderField(c)

	switch heroDirective {
	case directiveClear:
		product.HeroImage = nil
	case directiveReplace, directiveAppend:
		product.HeroImage = heroURL(media.hero)
	}
	product.Gallery = capLen(applyDirective(product.Gallery, savedURLs(media.gallery), galleryDirective), mediastore.ProductGallery.MaxCount)
	product.Documents = capLen(applyDocDirective(product.Documents, savedDocuments(media.documents), docsDirective), mediastore.ProductDocuments.MaxCount)

	if err := pc.productRepo.Update(product); err != nil {
		return respondRepoError(c, err)
	}

	invalidateCache(cache.KeyProductsList, cache.KeyProductsListAll)
	return c.JSON(fiber.Map{
		"id":         product.ID,
		"slug":       product.Slug,
		"hero_image": product.HeroImage,
		"gallery":    product.Gallery,
		"documents":  product.Documents,
	})
}

// HandleDelete removes a product row. Uploaded files are left behind.
func (pc *ProductController) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := checkAdminPassword(c); err != nil {
		return respondError(c, err)
	}

	if _, err := pc.productRepo.GetByID(id); err != nil {
		return respondRepoError(c, err)
	}
	if err := pc.productRepo.Delete(id); err != nil {
		return respondRepoError(c, err)
	}

	invalidateCache(cache.KeyProductsList, cache.KeyProductsListAll)
	return c.JSON(fiber.Map{"id": id})
}

// ingestMedia runs the three field ingestions concurrently and fails
// fast on the first rejection. Already-started uploads are not
// cancelled beyond the shared context.
func (pc *ProductController) ingestMedia(c *fiber.Ctx) (*productMedia, error) {
	var heroFiles, galleryFiles, docFiles []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		heroFiles = form.File["hero"]
		galleryFiles = form.File["gallery"]
		docFiles = form.File["documents"]
	}

	media := &productMedia{}
	g, ctx := errgroup.WithContext(c.Context())
	g.Go(func() error {
		var err error
		media.hero, err = pc.media.Save(ctx, mediastore.ProductHero, heroFiles)
		return err
	})
	g.Go(func() error {
		var err error
		media.gallery, err = pc.media.Save(ctx, mediastore.ProductGallery, galleryFiles)
		return err
	})
	g.Go(func() error {
		var err error
		media.documents, err = pc.media.Save(ctx, mediastore.ProductDocuments, docFiles)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return media, nil
}

// resolveSlug derives the final unique slug from the submitted slug or
// the product name, excluding the row itself on the update path.
func (pc *ProductController) resolveSlug(submitted, name string, excludeID uint64) (string, error) {
	source := strings.TrimSpace(submitted)
	if source == "" {
		source = name
	}
	base := slug.Slugify(source)

	taken, err := pc.productRepo.SlugsLike(base, excludeID)
	if err != nil {
		return "", err
	}
	return slug.PickUnique(base, taken), nil
}

func productRequiredErr() error {
	return apperr.Validation("Naziv i opis proizvoda su obavezni")
}

func heroURL(saved []mediastore.Saved) *string {
	if len(saved) == 0 {
		return nil
	}
	return &saved[0].URL
}

func savedDocuments(saved []mediastore.Saved) models.DocumentList {
	if len(saved) == 0 {
		return nil
	}
	docs := make(models.DocumentList, len(saved))
	for i, s := range saved {
		name := s.OriginalName
		if name == "" {
			name = models.NameFromURL(s.URL)
		}
		docs[i] = models.Document{Name: name, URL: s.URL}
	}
	return docs
}

func applyDocDirective(existing, incoming models.DocumentList, d mediaDirective) models.DocumentList {
	switch d {
	case directiveClear:
		return nil
	case directiveReplace:
		return incoming
	case directiveAppend:
		return append(append(models.DocumentList{}, existing...), incoming...)
	default:
		return existing
	}
}

// activeField parses a submitted isActive value. An absent or
// unrecognized value keeps prev, so an update that omits the field
// cannot flip activity; the create path passes true.
func activeField(c *fiber.Ctx, prev bool) bool {
	switch strings.ToLower(strings.TrimSpace(c.FormValue("isActive"))) {
	case "0", "false":
		return false
	case "1", "true", "on", "yes":
		return true
	}
	return prev
}

func sortOrderField(c *fiber.Ctx) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.FormValue("sortOrder")))
	if err != nil {
		return 0
	}
	return n
}
