package controllers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/MilanKovacevic/FeroCast/app/models"
	"github.com/MilanKovacevic/FeroCast/app/repository"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/apperr"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/cache"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/mediastore"
)

// NewsController handles the public news API
type NewsController struct {
	newsRepo repository.NewsRepository
	media    *mediastore.Store
}

func NewNewsController(newsRepo repository.NewsRepository, media *mediastore.Store) *NewsController {
	return &NewsController{
		newsRepo: newsRepo,
		media:    media,
	}
}

type newsForm struct {
	Title string `validate:"required"`
	Body  string `validate:"required"`
}

// HandleList returns all news posts, newest first
func (nc *NewsController) HandleList(c *fiber.Ctx) error {
	if cached, err := cache.Get(cache.KeyNewsList); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	newsList, err := nc.newsRepo.List()
	if err != nil {
		return respondRepoError(c, err)
	}

	if body, err := json.Marshal(newsList); err == nil {
		if err := cache.Set(cache.KeyNewsList, string(body), cache.DefaultListExpiration); err != nil {
			fiberlog.Debugf("[cache] store news list failed: %v", err)
		}
	}
	return c.JSON(newsList)
}

// HandleGet returns a single news post by id
func (nc *NewsController) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	news, err := nc.newsRepo.GetByID(id)
	if err != nil {
		return respondRepoError(c, err)
	}
	return c.JSON(news)
}

// HandleCreate creates a news post from a multipart submission with up
// to six attached images.
func (nc *NewsController) HandleCreate(c *fiber.Ctx) error {
	if err := checkAdminPassword(c); err != nil {
		return respondError(c, err)
	}

	form := newsForm{
		Title: strings.TrimSpace(c.FormValue("title")),
		Body:  strings.TrimSpace(c.FormValue("body")),
	}
	if err := validate.Struct(form); err != nil {
		return respondError(c, newsRequiredErr())
	}

	saved, err := nc.media.Save(c.Context(), mediastore.NewsImages, formFiles(c, "images"))
	if err != nil {
		return respondError(c, err)
	}

	news := &models.News{
		Title:  form.Title,
		Body:   form.Body,
		Images: savedURLs(saved),
	}
	if err := nc.newsRepo.Create(news); err != nil {
		return respondRepoError(c, err)
	}

	invalidateCache(cache.KeyNewsList)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":     news.ID,
		"images": news.Images,
	})
}

// HandleUpdate updates title/body and optionally the image set. New
// uploads append unless clearImages drops the existing ones first.
func (nc *NewsController) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := checkAdminPassword(c); err != nil {
		return respondError(c, err)
	}

	news, err := nc.newsRepo.GetByID(id)
	if err != nil {
		return respondRepoError(c, err)
	}

	form := newsForm{
		Title: strings.TrimSpace(c.FormValue("title")),
		Body:  strings.TrimSpace(c.FormValue("body")),
	}
	if err := validate.Struct(form); err != nil {
		return respondError(c, newsRequiredErr())
	}

	incoming := formFiles(c, "images")
	saved, err := nc.media.Save(c.Context(), mediastore.NewsImages, incoming)
	if err != nil {
		return respondError(c, err)
	}

	directive := directiveFor(boolField(c, "clearImages"), false, len(saved) > 0)
	news.Title = form.Title
	news.Body = form.Body
	news.Images = capLen(applyDirective(news.Images, savedURLs(saved), directive), mediastore.NewsImages.MaxCount)

	if err := nc.newsRepo.Update(news); err != nil {
		return respondRepoError(c, err)
	}

	invalidateCache(cache.KeyNewsList)
	return c.JSON(fiber.Map{
		"id":     news.ID,
		"images": news.Images,
	})
}

// HandleDelete removes a news post. Uploaded files are left behind.
func (nc *NewsController) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := checkAdminPassword(c); err != nil {
		return respondError(c, err)
	}

	if _, err := nc.newsRepo.GetByID(id); err != nil {
		return respondRepoError(c, err)
	}
	if err := nc.newsRepo.Delete(id); err != nil {
		return respondRepoError(c, err)
	}

	invalidateCache(cache.KeyNewsList)
	return c.JSON(fiber.Map{"id": id})
}

func newsRequiredErr() error {
	return apperr.Validation("Naslov i tekst vesti su obavezni")
}

func savedURLs(saved []mediastore.Saved) models.StringList {
	if len(saved) == 0 {
		return nil
	}
	urls := make(models.StringList, len(saved))
	for i, s := range saved {
		urls[i] = s.URL
	}
	return urls
}

func respondRepoError(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Nije pronađeno"})
	}
	return respondError(c, apperr.Storage(err))
}
