package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pllus/articles-server/internal/repository"
)

type BookmarkStore interface {
	Remove(ctx context.Context, articleID bson.ObjectID, email string) (bool, error)
	// Insert returns repository.ErrDuplicate when the row already exists.
	Insert(ctx context.Context, articleID bson.ObjectID, email string) error
	ArticleExists(ctx context.Context, articleID bson.ObjectID) (bool, error)
}

type BookmarkService struct {
	Store    BookmarkStore
	Recorder ToggleRecorder
}

// ToggleBookmark deletes the (article, email) bookmark if it exists and
// creates it otherwise. It reports the state after the call.
func (s *BookmarkService) ToggleBookmark(ctx context.Context, articleID bson.ObjectID, email string) (bool, error) {
	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		removed, err := s.Store.Remove(ctx, articleID, email)
		if err != nil {
			return false, err
		}
		if removed {
			s.record(ctx, false)
			return false, nil
		}

		ok, err := s.Store.ArticleExists(ctx, articleID)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, repository.ErrNotFound
		}

		err = s.Store.Insert(ctx, articleID, email)
		if err == nil {
			s.record(ctx, true)
			return true, nil
		}
		// a concurrent toggle inserted first; go back to the delete
		if !errors.Is(err, repository.ErrDuplicate) {
			return false, err
		}
	}
	return false, ErrToggleConflict
}

func (s *BookmarkService) record(ctx context.Context, added bool) {
	if s.Recorder != nil {
		s.Recorder.ToggleRecorded(ctx, "bookmark", added)
	}
}
