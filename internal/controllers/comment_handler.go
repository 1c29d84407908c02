package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pllus/articles-server/dto"
	"github.com/pllus/articles-server/internal/models"
	"github.com/pllus/articles-server/internal/repository"
	"github.com/pllus/articles-server/internal/services"
)

type CommentStore interface {
	List(ctx context.Context, articleID *bson.ObjectID) ([]models.Comment, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Comment, error)
	Update(ctx context.Context, id bson.ObjectID, fields bson.M) (repository.WriteResult, error)
	Delete(ctx context.Context, id bson.ObjectID) (int64, error)
}

type CommentCreator interface {
	Create(ctx context.Context, articleID bson.ObjectID, in services.NewComment) (*models.Comment, error)
}

type CommentHandler struct {
	Repo     CommentStore
	Comments CommentCreator
	Timeout  time.Duration
}

const commentNotFound = "Comment not found"

// @Summary      Create a comment
// @Description  Inserts the comment and increments the article's commentCount in one transaction
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateCommentReq  true  "Comment"
// @Success      200   {object}  dto.CreateCommentResp
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var body dto.CreateCommentReq
	if err := parseBody(c, &body); err != nil {
		return err
	}
	articleID, err := parseID(body.ArticleID, "articleId")
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	com, err := h.Comments.Create(ctx, articleID, services.NewComment{
		Content:   body.Content,
		UserName:  body.UserName,
		UserEmail: body.UserEmail,
		UserPhoto: body.UserPhoto,
		Extra:     body.Extra,
	})
	if errors.Is(err, services.ErrEmptyComment) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return storeError(err, articleNotFound)
	}
	return c.JSON(dto.CreateCommentResp{Success: true, InsertedID: com.ID})
}

// @Summary      List comments
// @Description  Newest first; articleId narrows to one article
// @Tags         comments
// @Produce      json
// @Param        articleId  query     string  false  "Article ID (hex ObjectID)"
// @Success      200        {array}   models.Comment
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /comments [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	var filter *bson.ObjectID
	if raw := c.Query("articleId"); raw != "" {
		id, err := parseID(raw, "articleId")
		if err != nil {
			return err
		}
		filter = &id
	}

	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	items, err := h.Repo.List(ctx, filter)
	if err != nil {
		return storeError(err, commentNotFound)
	}
	return c.JSON(items)
}

// @Summary      Get a comment
// @Tags         comments
// @Produce      json
// @Param        id   path      string  true  "Comment ID (hex ObjectID)"
// @Success      200  {object}  models.Comment
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /comments/{id} [get]
func (h *CommentHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "comment id")
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	com, err := h.Repo.FindByID(ctx, id)
	if err != nil {
		return storeError(err, commentNotFound)
	}
	return c.JSON(com)
}

// @Summary      Update a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Comment ID (hex ObjectID)"
// @Param        body  body      dto.UpdateCommentReq  true  "Fields to change"
// @Success      200   {object}  dto.UpdateResp
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /comments/{id} [patch]
func (h *CommentHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "comment id")
	if err != nil {
		return err
	}
	var body dto.UpdateCommentReq
	if err := parseBody(c, &body); err != nil {
		return err
	}
	fields := body.Fields()
	if len(fields) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no updatable fields")
	}
	if v, ok := fields["content"]; ok && v == "" {
		return fiber.NewError(fiber.StatusBadRequest, services.ErrEmptyComment.Error())
	}

	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	res, err := h.Repo.Update(ctx, id, fields)
	if err != nil {
		return storeError(err, commentNotFound)
	}
	return c.JSON(dto.UpdateResp{Acknowledged: true, MatchedCount: res.Matched, ModifiedCount: res.Modified})
}

// @Summary      Delete a comment
// @Description  Also decrements the article's commentCount
// @Tags         comments
// @Produce      json
// @Param        id   path      string  true  "Comment ID (hex ObjectID)"
// @Success      200  {object}  dto.DeleteResp
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /comments/{id} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "comment id")
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	n, err := h.Repo.Delete(ctx, id)
	if err != nil {
		return storeError(err, commentNotFound)
	}
	return c.JSON(dto.DeleteResp{Acknowledged: true, DeletedCount: n})
}
