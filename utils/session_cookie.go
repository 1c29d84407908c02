package utils

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const SessionCookieName = "token"

func SetSessionCookie(c *fiber.Ctx, token string, expires time.Time, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Expires:  expires,
		Path:     "/",
	})
}

func ClearSessionCookie(c *fiber.Ctx, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
	})
}

func ReadSessionCookie(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Cookies(SessionCookieName, ""))
}
