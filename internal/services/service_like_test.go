package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pllus/articles-server/internal/models"
	"github.com/pllus/articles-server/internal/repository"
)

func TestToggleLikeTwiceRestoresState(t *testing.T) {
	ctx := context.Background()
	id := bson.NewObjectID()
	store := newFakeArticles(id)
	store.docs[id].Likes = []string{"other"}
	store.docs[id].LikesCount = 1
	rec := &fakeRecorder{}
	svc := &LikeService{Store: store, Recorder: rec}

	res, err := svc.ToggleLike(ctx, id, "u1")
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, 2, res.LikesCount)

	res, err = svc.ToggleLike(ctx, id, "u1")
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, 1, res.LikesCount)

	a := store.get(id)
	assert.Equal(t, []string{"other"}, a.Likes)
	assert.Equal(t, 1, a.LikesCount)
	assert.Equal(t, []recorded{{"like", true}, {"like", false}}, rec.events)
}

func TestToggleLikeUnknownArticle(t *testing.T) {
	store := newFakeArticles()
	svc := &LikeService{Store: store}

	_, err := svc.ToggleLike(context.Background(), bson.NewObjectID(), "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 2, store.calls)
}

func TestToggleLikeRetriesLostRace(t *testing.T) {
	id := bson.NewObjectID()
	store := newFakeArticles(id)
	// another request likes between our remove and add attempts
	store.before = func(call int, a *models.Article) {
		if call == 2 {
			a.Likes = append(a.Likes, "u1")
			a.LikesCount++
		}
	}
	svc := &LikeService{Store: store}

	res, err := svc.ToggleLike(context.Background(), id, "u1")
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, 0, res.LikesCount)

	a := store.get(id)
	assert.Empty(t, a.Likes)
	assert.Equal(t, 0, a.LikesCount)
}

func TestToggleLikeGivesUpAfterBoundedAttempts(t *testing.T) {
	id := bson.NewObjectID()
	store := newFakeArticles(id)
	// odd calls are removes, even calls are adds; flip state so neither matches
	store.before = func(call int, a *models.Article) {
		if call%2 == 1 {
			a.Likes = []string{}
			a.LikesCount = 0
		} else {
			a.Likes = []string{"u1"}
			a.LikesCount = 1
		}
	}
	svc := &LikeService{Store: store}

	_, err := svc.ToggleLike(context.Background(), id, "u1")
	assert.ErrorIs(t, err, ErrToggleConflict)
	assert.Equal(t, 2*maxToggleAttempts, store.calls)
}

func TestLikesCountMatchesSetAfterRandomToggles(t *testing.T) {
	ctx := context.Background()
	id := bson.NewObjectID()
	store := newFakeArticles(id)
	svc := &LikeService{Store: store}

	actors := []string{"a", "b", "c", "d", "e"}
	var model []string
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		actor := actors[rng.Intn(len(actors))]
		var wantAdded bool
		model, wantAdded = Toggle(model, actor)

		res, err := svc.ToggleLike(ctx, id, actor)
		require.NoError(t, err)
		require.Equal(t, wantAdded, res.Liked, "step %d", i)

		a := store.get(id)
		require.Equal(t, len(a.Likes), a.LikesCount, "step %d", i)
		require.ElementsMatch(t, model, a.Likes, "step %d", i)
	}
}

func TestConcurrentLikesKeepCounterInSync(t *testing.T) {
	ctx := context.Background()
	id := bson.NewObjectID()
	store := newFakeArticles(id)
	svc := &LikeService{Store: store}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// every actor toggles three times, ending liked
			for j := 0; j < 3; j++ {
				_, err := svc.ToggleLike(ctx, id, fmt.Sprintf("u%d", i))
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	a := store.get(id)
	assert.Len(t, a.Likes, 20)
	assert.Equal(t, 20, a.LikesCount)
}
