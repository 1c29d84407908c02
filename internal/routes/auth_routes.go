package routes

import "github.com/gofiber/fiber/v2"

func AuthRoutes(app *fiber.App, h Handlers) {
	// POST /jwt  body {email}
	// sets the http-only "token" cookie
	app.Post("/jwt", h.Auth.IssueToken)
	app.Post("/logout", h.Auth.Logout)
}
