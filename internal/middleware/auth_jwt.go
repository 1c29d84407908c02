package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pllus/articles-server/internal/auth"
	"github.com/pllus/articles-server/internal/authctx"
	"github.com/pllus/articles-server/utils"
)

// BearerToken returns the credential of the request and whether the client
// presented one. Without an Authorization header the session cookie is used.
// A header with another scheme counts as presented but yields no token.
func BearerToken(c *fiber.Ctx) (string, bool) {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if h == "" {
		tok := utils.ReadSessionCookie(c)
		return tok, tok != ""
	}
	scheme, tok, _ := strings.Cut(h, " ")
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return "", false
	}
	if !strings.EqualFold(scheme, "bearer") {
		return "", true
	}
	return tok, true
}

// VerifyToken rejects requests without a credential (401) or with one that
// does not verify (403), and stores the verified identity for later handlers.
func VerifyToken(v auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr, presented := BearerToken(c)
		if !presented {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		if tokenStr == "" {
			return fiber.NewError(fiber.StatusForbidden, "Forbidden")
		}

		id, err := v.Verify(c.UserContext(), tokenStr)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Forbidden")
		}

		authctx.SetIdentity(c, id)
		return c.Next()
	}
}

// VerifyEmail lets the request through only when the verified email equals
// the ?email= query parameter. It must run after VerifyToken.
func VerifyEmail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := authctx.IdentityFrom(c)
		if !ok || id.Email != c.Query("email") {
			return fiber.NewError(fiber.StatusUnauthorized, "forbidden access")
		}
		return c.Next()
	}
}
