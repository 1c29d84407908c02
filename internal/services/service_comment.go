package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pllus/articles-server/internal/models"
)

var ErrEmptyComment = errors.New("content is required")

type CommentStore interface {
	// Create must increment the parent's commentCount atomically with the insert.
	Create(ctx context.Context, c *models.Comment) error
}

type NewComment struct {
	Content   string
	UserName  string
	UserEmail string
	UserPhoto string
	Extra     bson.M
}

type CommentService struct {
	Store CommentStore
	Now   func() time.Time
}

func (s *CommentService) Create(ctx context.Context, articleID bson.ObjectID, in NewComment) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, ErrEmptyComment
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	c := &models.Comment{
		ID:        bson.NewObjectID(),
		ArticleID: articleID,
		Content:   content,
		UserName:  strings.TrimSpace(in.UserName),
		UserEmail: strings.TrimSpace(in.UserEmail),
		UserPhoto: in.UserPhoto,
		CreatedAt: now().UTC(),
		Extra:     in.Extra,
	}
	if err := s.Store.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}
