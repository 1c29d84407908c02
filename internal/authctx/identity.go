package authctx

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pllus/articles-server/internal/auth"
)

const identityKey = "identity"

func SetIdentity(c *fiber.Ctx, id auth.Identity) {
	c.Locals(identityKey, id)
}

func IdentityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	if v, ok := c.Locals(identityKey).(auth.Identity); ok && v.Email != "" {
		return v, true
	}
	return auth.Identity{}, false
}
