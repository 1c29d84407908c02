package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pllus/articles-server/internal/middleware"
)

func ArticleRoutes(app *fiber.App, h Handlers) {
	a := h.Articles

	// GET /articles?category=&tag=
	// newest first
	app.Get("/articles", a.List)
	app.Post("/articles", a.Create)

	// PATCH /articles/like/:id  body {userId}
	// second call with the same userId removes the like
	app.Patch("/articles/like/:id", a.ToggleLike)

	app.Get("/articles/:id", a.Get)
	app.Patch("/articles/:id", a.Update)
	app.Delete("/articles/:id", a.Delete)

	// GET /my-articles?email=
	// token email must equal ?email=
	app.Get("/my-articles", middleware.VerifyToken(h.Verifier), middleware.VerifyEmail(), a.Mine)
}
