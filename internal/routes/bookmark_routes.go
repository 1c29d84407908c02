package routes

import "github.com/gofiber/fiber/v2"

func BookmarkRoutes(app *fiber.App, h Handlers) {
	b := h.Bookmarks

	// POST /bookmarks  body {articleId, user_email}
	// toggles; response {bookmarked}
	app.Post("/bookmarks", b.Toggle)

	// GET /bookmarks/check?articleId=&user_email=
	app.Get("/bookmarks/check", b.Check)

	// GET /my-bookmarks?user_email=
	app.Get("/my-bookmarks", b.Mine)

	// DELETE /my-bookmarks/:articleId?user_email=
	app.Delete("/my-bookmarks/:articleId", b.Delete)
}
