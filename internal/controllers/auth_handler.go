package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pllus/articles-server/dto"
	"github.com/pllus/articles-server/internal/auth"
	"github.com/pllus/articles-server/utils"
)

type TokenIssuer interface {
	Issue(email string) (string, time.Time, error)
}

type AuthHandler struct {
	Issuer       TokenIssuer
	CookieSecure bool
}

// @Summary      Issue a session token
// @Description  Signs a short lived token for email and sets it as the http-only "token" cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.IssueTokenReq  true  "Email"
// @Success      200   {object}  dto.IssueTokenResp
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /jwt [post]
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var body dto.IssueTokenReq
	if err := parseBody(c, &body); err != nil {
		return err
	}

	token, exp, err := h.Issuer.Issue(body.Email)
	if errors.Is(err, auth.ErrMissingEmail) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return err
	}

	utils.SetSessionCookie(c, token, exp, h.CookieSecure)
	return c.JSON(dto.IssueTokenResp{Success: true})
}

// @Summary      Clear the session cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.IssueTokenResp
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	utils.ClearSessionCookie(c, h.CookieSecure)
	return c.JSON(dto.IssueTokenResp{Success: true})
}
