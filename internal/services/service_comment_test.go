package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pllus/articles-server/internal/models"
	"github.com/pllus/articles-server/internal/repository"
)

type fakeCommentStore struct {
	articles map[bson.ObjectID]int
	created  []*models.Comment
}

func (f *fakeCommentStore) Create(_ context.Context, c *models.Comment) error {
	if _, ok := f.articles[c.ArticleID]; !ok {
		return repository.ErrNotFound
	}
	f.articles[c.ArticleID]++
	f.created = append(f.created, c)
	return nil
}

func TestCommentCreateIncrementsCount(t *testing.T) {
	id := bson.NewObjectID()
	store := &fakeCommentStore{articles: map[bson.ObjectID]int{id: 2}}
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.FixedZone("ICT", 7*3600))
	svc := &CommentService{Store: store, Now: func() time.Time { return fixed }}

	c, err := svc.Create(context.Background(), id, NewComment{Content: "  nice read ", UserName: "Ann"})
	require.NoError(t, err)

	assert.Equal(t, 3, store.articles[id])
	assert.Equal(t, "nice read", c.Content)
	assert.Equal(t, id, c.ArticleID)
	assert.False(t, c.ID.IsZero())
	assert.Equal(t, time.UTC, c.CreatedAt.Location())
	assert.True(t, fixed.Equal(c.CreatedAt))
}

func TestCommentCreateRejectsBlank(t *testing.T) {
	store := &fakeCommentStore{articles: map[bson.ObjectID]int{}}
	svc := &CommentService{Store: store}

	_, err := svc.Create(context.Background(), bson.NewObjectID(), NewComment{Content: "   "})
	assert.ErrorIs(t, err, ErrEmptyComment)
	assert.Empty(t, store.created)
}

func TestCommentCreateMissingArticle(t *testing.T) {
	store := &fakeCommentStore{articles: map[bson.ObjectID]int{}}
	svc := &CommentService{Store: store}

	_, err := svc.Create(context.Background(), bson.NewObjectID(), NewComment{Content: "hi"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, store.created)
}
