package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MilanKovacevic/FeroCast/app/repository"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/mediastore"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

func InstallRouter(app *fiber.App, factory *repository.Factory, media *mediastore.Store) {
	setup(app, NewApiRouter(factory, media))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
