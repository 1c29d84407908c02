package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pllus/articles-server/internal/models"
	"github.com/pllus/articles-server/internal/repository"
)

type LikeStore interface {
	// ApplyMembership returns nil, nil when filter matched no document.
	ApplyMembership(ctx context.Context, filter, update bson.M) (*models.Article, error)
	Exists(ctx context.Context, id bson.ObjectID) (bool, error)
}

// ToggleRecorder observes toggle outcomes; kind is "like" or "bookmark".
type ToggleRecorder interface {
	ToggleRecorded(ctx context.Context, kind string, added bool)
}

type LikeResult struct {
	Liked      bool
	LikesCount int
}

type LikeService struct {
	Store    LikeStore
	Recorder ToggleRecorder
}

// ToggleLike removes actor from the article's likes if present, otherwise adds
// it. Each step is a single conditional update, so likes and likesCount move
// together. When neither step matches, the article is either gone or another
// request flipped the state in between; the latter is retried.
func (s *LikeService) ToggleLike(ctx context.Context, articleID bson.ObjectID, actor string) (LikeResult, error) {
	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		filter, update := ArticleLikes.RemoveOp(articleID, actor)
		a, err := s.Store.ApplyMembership(ctx, filter, update)
		if err != nil {
			return LikeResult{}, fmt.Errorf("unlike: %w", err)
		}
		if a != nil {
			s.record(ctx, false)
			return LikeResult{Liked: false, LikesCount: a.LikesCount}, nil
		}

		filter, update = ArticleLikes.AddOp(articleID, actor)
		a, err = s.Store.ApplyMembership(ctx, filter, update)
		if err != nil {
			return LikeResult{}, fmt.Errorf("like: %w", err)
		}
		if a != nil {
			s.record(ctx, true)
			return LikeResult{Liked: true, LikesCount: a.LikesCount}, nil
		}

		ok, err := s.Store.Exists(ctx, articleID)
		if err != nil {
			return LikeResult{}, err
		}
		if !ok {
			return LikeResult{}, repository.ErrNotFound
		}
	}
	return LikeResult{}, ErrToggleConflict
}

func (s *LikeService) record(ctx context.Context, added bool) {
	if s.Recorder != nil {
		s.Recorder.ToggleRecorded(ctx, "like", added)
	}
}
