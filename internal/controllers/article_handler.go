package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pllus/articles-server/dto"
	"github.com/pllus/articles-server/internal/authctx"
	"github.com/pllus/articles-server/internal/models"
	"github.com/pllus/articles-server/internal/repository"
	"github.com/pllus/articles-server/internal/services"
)

type ArticleStore interface {
	List(ctx context.Context, f repository.ArticleFilter) ([]models.Article, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Article, error)
	Create(ctx context.Context, a *models.Article) error
	Update(ctx context.Context, id bson.ObjectID, fields bson.M) (repository.WriteResult, error)
	Delete(ctx context.Context, id bson.ObjectID) (int64, error)
}

type LikeToggler interface {
	ToggleLike(ctx context.Context, articleID bson.ObjectID, actor string) (services.LikeResult, error)
}

type ArticleHandler struct {
	Repo    ArticleStore
	Likes   LikeToggler
	Timeout time.Duration
}

const articleNotFound = "Article not found"

// @Summary      List articles
// @Description  All articles, newest first, optionally filtered by category or tag
// @Tags         articles
// @Produce      json
// @Param        category  query  string  false  "Category"
// @Param        tag       query  string  false  "Tag"
// @Success      200  {array}   models.Article
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /articles [get]
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	items, err := h.Repo.List(ctx, repository.ArticleFilter{
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
	})
	if err != nil {
		return storeError(err, articleNotFound)
	}
	return c.JSON(items)
}

// @Summary      Get an article
// @Tags         articles
// @Produce      json
// @Param        id   path      string  true  "Article ID (hex ObjectID)"
// @Success      200  {object}  models.Article
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /articles/{id} [get]
func (h *ArticleHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "article id")
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	a, err := h.Repo.FindByID(ctx, id)
	if err != nil {
		return storeError(err, articleNotFound)
	}
	return c.JSON(a)
}

// @Summary      List my articles
// @Description  Articles owned by the verified caller
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  true  "Owner email, must match the token"
// @Success      200    {array}   models.Article
// @Failure      401    {object}  dto.ErrorResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Router       /my-articles [get]
func (h *ArticleHandler) Mine(c *fiber.Ctx) error {
	id, ok := authctx.IdentityFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "forbidden access")
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	items, err := h.Repo.List(ctx, repository.ArticleFilter{OwnerEmail: id.Email})
	if err != nil {
		return storeError(err, articleNotFound)
	}
	return c.JSON(items)
}

// @Summary      Create an article
// @Description  Server sets likes, counters and createdAt. Keys beyond the typed fields are stored as sent.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateArticleReq  true  "Article"
// @Success      200   {object}  models.Article
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /articles [post]
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var body dto.CreateArticleReq
	if err := parseBody(c, &body); err != nil {
		return err
	}

	a := &models.Article{
		Title:       strings.TrimSpace(body.Title),
		Content:     body.Content,
		Category:    body.Category,
		Tags:        body.Tags,
		Thumbnail:   body.Thumbnail,
		AuthorName:  body.AuthorName,
		AuthorPhoto: body.AuthorPhoto,
		UserEmail:   strings.TrimSpace(body.UserEmail),
		Extra:       body.Extra,
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	if err := h.Repo.Create(ctx, a); err != nil {
		return storeError(err, articleNotFound)
	}
	return c.JSON(a)
}

// @Summary      Update an article
// @Description  Partial update of content fields and free-form keys. Likes, counters, owner and createdAt are ignored.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Article ID (hex ObjectID)"
// @Param        body  body      dto.UpdateArticleReq  true  "Fields to change"
// @Success      200   {object}  dto.UpdateResp
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /articles/{id} [patch]
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "article id")
	if err != nil {
		return err
	}
	var body dto.UpdateArticleReq
	if err := parseBody(c, &body); err != nil {
		return err
	}
	fields := body.Fields()
	if len(fields) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no updatable fields")
	}
	if t, ok := fields["title"]; ok && t == "" {
		return fiber.NewError(fiber.StatusBadRequest, "title cannot be empty")
	}

	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	res, err := h.Repo.Update(ctx, id, fields)
	if err != nil {
		return storeError(err, articleNotFound)
	}
	return c.JSON(dto.UpdateResp{Acknowledged: true, MatchedCount: res.Matched, ModifiedCount: res.Modified})
}

// @Summary      Delete an article
// @Description  Also removes its comments and bookmarks
// @Tags         articles
// @Produce      json
// @Param        id   path      string  true  "Article ID (hex ObjectID)"
// @Success      200  {object}  dto.DeleteResp
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /articles/{id} [delete]
func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "article id")
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	n, err := h.Repo.Delete(ctx, id)
	if err != nil {
		return storeError(err, articleNotFound)
	}
	return c.JSON(dto.DeleteResp{Acknowledged: true, DeletedCount: n})
}

// @Summary      Toggle like
// @Description  Likes the article for userId, or removes the like if already present
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Article ID (hex ObjectID)"
// @Param        body  body      dto.LikeReq  true  "Actor"
// @Success      200   {object}  dto.LikeResp
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /articles/like/{id} [patch]
func (h *ArticleHandler) ToggleLike(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "article id")
	if err != nil {
		return err
	}
	var body dto.LikeReq
	if err := parseBody(c, &body); err != nil {
		return err
	}
	actor := strings.TrimSpace(body.UserID)

	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	res, err := h.Likes.ToggleLike(ctx, id, actor)
	if err != nil {
		return storeError(err, articleNotFound)
	}
	return c.JSON(dto.LikeResp{
		UpdateResp: dto.UpdateResp{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1},
		Liked:      res.Liked,
		LikesCount: res.LikesCount,
	})
}
