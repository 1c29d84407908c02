package routes

import "github.com/gofiber/fiber/v2"

func CommentRoutes(app *fiber.App, h Handlers) {
	com := app.Group("/comments")

	// POST /comments  body {articleId, content, user_name, user_email, user_photo}
	// increments the article's commentCount in the same transaction
	com.Post("/", h.Comments.Create)

	// GET /comments?articleId=
	com.Get("/", h.Comments.List)

	com.Get("/:id", h.Comments.Get)
	com.Patch("/:id", h.Comments.Update)
	com.Delete("/:id", h.Comments.Delete)
}
