package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pllus/articles-server/dto"
	"github.com/pllus/articles-server/internal/models"
)

type BookmarkStore interface {
	Exists(ctx context.Context, articleID bson.ObjectID, email string) (bool, error)
	Remove(ctx context.Context, articleID bson.ObjectID, email string) (bool, error)
	ListArticles(ctx context.Context, email string) ([]models.Article, error)
}

type BookmarkToggler interface {
	ToggleBookmark(ctx context.Context, articleID bson.ObjectID, email string) (bool, error)
}

type BookmarkHandler struct {
	Repo      BookmarkStore
	Bookmarks BookmarkToggler
	Timeout   time.Duration
}

// requireEmail checks the user_email query parameter.
func requireEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "user_email is required")
	}
	return email, nil
}

// @Summary      Toggle bookmark
// @Description  Removes the bookmark if present, otherwise creates it
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Param        body  body      dto.BookmarkReq  true  "Article and user"
// @Success      200   {object}  dto.BookmarkStatusResp
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /bookmarks [post]
func (h *BookmarkHandler) Toggle(c *fiber.Ctx) error {
	var body dto.BookmarkReq
	if err := parseBody(c, &body); err != nil {
		return err
	}
	articleID, err := parseID(body.ArticleID, "articleId")
	if err != nil {
		return err
	}
	email := strings.TrimSpace(body.UserEmail)

	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	on, err := h.Bookmarks.ToggleBookmark(ctx, articleID, email)
	if err != nil {
		return storeError(err, articleNotFound)
	}
	return c.JSON(dto.BookmarkStatusResp{Bookmarked: on})
}

// @Summary      List my bookmarks
// @Description  Bookmarked articles, most recently bookmarked first
// @Tags         bookmarks
// @Produce      json
// @Param        user_email  query     string  true  "User email"
// @Success      200         {array}   models.Article
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /my-bookmarks [get]
func (h *BookmarkHandler) Mine(c *fiber.Ctx) error {
	email, err := requireEmail(c.Query("user_email"))
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	items, err := h.Repo.ListArticles(ctx, email)
	if err != nil {
		return storeError(err, articleNotFound)
	}
	return c.JSON(items)
}

// @Summary      Check bookmark
// @Tags         bookmarks
// @Produce      json
// @Param        articleId   query     string  true  "Article ID (hex ObjectID)"
// @Param        user_email  query     string  true  "User email"
// @Success      200         {object}  dto.BookmarkStatusResp
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /bookmarks/check [get]
func (h *BookmarkHandler) Check(c *fiber.Ctx) error {
	articleID, err := parseID(c.Query("articleId"), "articleId")
	if err != nil {
		return err
	}
	email, err := requireEmail(c.Query("user_email"))
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	on, err := h.Repo.Exists(ctx, articleID, email)
	if err != nil {
		return storeError(err, articleNotFound)
	}
	return c.JSON(dto.BookmarkStatusResp{Bookmarked: on})
}

// @Summary      Remove a bookmark
// @Tags         bookmarks
// @Produce      json
// @Param        articleId   path      string  true  "Article ID (hex ObjectID)"
// @Param        user_email  query     string  true  "User email"
// @Success      200         {object}  dto.DeleteBookmarkResp
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Router       /my-bookmarks/{articleId} [delete]
func (h *BookmarkHandler) Delete(c *fiber.Ctx) error {
	email, err := requireEmail(c.Query("user_email"))
	if err != nil {
		return err
	}
	articleID, err := parseID(c.Params("articleId"), "articleId")
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	removed, err := h.Repo.Remove(ctx, articleID, email)
	if err != nil {
		return storeError(err, "Bookmark not found")
	}
	if !removed {
		return fiber.NewError(fiber.StatusNotFound, "Bookmark not found")
	}
	return c.JSON(dto.DeleteBookmarkResp{Success: true, Message: "Bookmark deleted successfully"})
}
