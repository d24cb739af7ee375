package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/MilanKovacevic/FeroCast/app/controllers"
	"github.com/MilanKovacevic/FeroCast/app/repository"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/mediastore"
)

type ApiRouter struct {
	factory *repository.Factory
	media   *mediastore.Store
}

func NewApiRouter(factory *repository.Factory, media *mediastore.Store) *ApiRouter {
	return &ApiRouter{
		factory: factory,
		media:   media,
	}
}

func (h *ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	newsController := controllers.NewNewsController(h.factory.GetNewsRepository(), h.media)
	api.Get("/news", newsController.HandleList)
	api.Get("/news/:id", newsController.HandleGet)
	api.Post("/news", newsController.HandleCreate)
	api.Patch("/news/:id", newsController.HandleUpdate)
	api.Delete("/news/:id", newsController.HandleDelete)

	productController := controllers.NewProductController(h.factory.GetProductRepository(), h.media)
	api.Get("/products", productController.HandleList)
	api.Get("/products/:idOrSlug", productController.HandleGet)
	api.Post("/products", productController.HandleCreate)
	api.Patch("/products/:id", productController.HandleUpdate)
	api.Delete("/products/:id", productController.HandleDelete)
}
