package controllers

import (
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/MilanKovacevic/FeroCast/internal/pkg/apperr"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/cache"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/env"
)

var validate = validator.New()

// checkAdminPassword is the shared mutation gate. With no password
// configured every request passes; otherwise the submitted form value
// must match exactly.
func checkAdminPassword(c *fiber.Ctx) error {
	configured := env.GetEnv("ADMIN_PASSWORD", "")
	if configured == "" {
		return nil
	}
	if c.FormValue("adminPassword") != configured {
		return apperr.Authorization("Pogrešna lozinka")
	}
	return nil
}

// parseID validates a numeric path segment. Malformed ids are rejected
// before the password gate runs.
func parseID(c *fiber.Ctx, name string) (uint64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("Neispravan ID")
	}
	return id, nil
}

// respondError maps the error taxonomy onto HTTP statuses. Storage and
// configuration details are logged for operators, never returned.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = fiber.StatusBadRequest
	case apperr.KindAuthorization:
		status = fiber.StatusUnauthorized
	case apperr.KindStorage, apperr.KindConfiguration:
		fiberlog.Errorf("[api] %v", err)
	case apperr.KindIngestion:
		fiberlog.Errorf("[api] ingestion: %v", err)
	}
	return c.Status(status).JSON(fiber.Map{"message": apperr.MessageOf(err)})
}

// optionalField returns nil for a blank form value so the column is
// stored as NULL, never as an empty string.
func optionalField(c *fiber.Ctx, name string) *string {
	v := strings.TrimSpace(c.FormValue(name))
	if v == "" {
		return nil
	}
	return &v
}

func boolField(c *fiber.Ctx, name string) bool {
	switch strings.ToLower(strings.TrimSpace(c.FormValue(name))) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// formFiles returns the uploads for one multipart field; a missing
// form or field is simply an empty set.
func formFiles(c *fiber.Ctx, field string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[field]
}

func invalidateCache(keys ...string) {
	if err := cache.Delete(keys...); err != nil {
		fiberlog.Debugf("[cache] invalidate failed: %v", err)
	}
}

// mediaDirective is the internal model of the caller-facing clear /
// replace booleans, so impossible flag combinations cannot reach the
// repository.
type mediaDirective int

const (
	directiveKeep mediaDirective = iota
	directiveAppend
	directiveReplace
	directiveClear
)

// directiveFor collapses the boolean contract: clear wins (new uploads
// after a clear become the full new set), replace needs new uploads to
// differ from append, and no flags with no uploads keeps the row as-is.
func directiveFor(clear, replace, hasNew bool) mediaDirective {
	switch {
	case clear && hasNew:
		return directiveReplace
	case clear:
		return directiveClear
	case replace && hasNew:
		return directiveReplace
	case hasNew:
		return directiveAppend
	default:
		return directiveKeep
	}
}

// capLen truncates a stored list to the category maximum. Ingestion
// bounds each submission; this bounds what repeated appends accumulate.
func capLen[T any](list []T, limit int) []T {
	if len(list) > limit {
		return list[:limit]
	}
	return list
}

func applyDirective(existing, incoming []string, d mediaDirective) []string {
	switch d {
	case directiveClear:
		return nil
	case directiveReplace:
		return incoming
	case directiveAppend:
		return append(append([]string{}, existing...), incoming...)
	default:
		return existing
	}
}
