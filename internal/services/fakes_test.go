package services

import (
	"context"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pllus/articles-server/internal/models"
	"github.com/pllus/articles-server/internal/repository"
)

// fakeArticles evaluates the membership filters and updates the same way the
// server does for the shapes built by Membership.
type fakeArticles struct {
	mu    sync.Mutex
	docs  map[bson.ObjectID]*models.Article
	calls int
	// before runs ahead of every ApplyMembership call, under the lock.
	before func(call int, a *models.Article)
}

func newFakeArticles(ids ...bson.ObjectID) *fakeArticles {
	f := &fakeArticles{docs: map[bson.ObjectID]*models.Article{}}
	for _, id := range ids {
		f.docs[id] = &models.Article{ID: id, Likes: []string{}}
	}
	return f
}

func (f *fakeArticles) ApplyMembership(_ context.Context, filter, update bson.M) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	a, ok := f.docs[filter["_id"].(bson.ObjectID)]
	if f.before != nil && ok {
		f.before(f.calls, a)
	}
	if !ok {
		return nil, nil
	}

	switch cond := filter["likes"].(type) {
	case string:
		if !slices.Contains(a.Likes, cond) {
			return nil, nil
		}
	case bson.M:
		if slices.Contains(a.Likes, cond["$ne"].(string)) {
			return nil, nil
		}
	}

	if pull, ok := update["$pull"].(bson.M); ok {
		actor := pull["likes"].(string)
		a.Likes = slices.DeleteFunc(a.Likes, func(m string) bool { return m == actor })
	}
	if add, ok := update["$addToSet"].(bson.M); ok {
		actor := add["likes"].(string)
		if !slices.Contains(a.Likes, actor) {
			a.Likes = append(a.Likes, actor)
		}
	}
	a.LikesCount += update["$inc"].(bson.M)["likesCount"].(int)

	out := *a
	out.Likes = slices.Clone(a.Likes)
	return &out, nil
}

func (f *fakeArticles) Exists(_ context.Context, id bson.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.docs[id]
	return ok, nil
}

func (f *fakeArticles) get(id bson.ObjectID) models.Article {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := *f.docs[id]
	out.Likes = slices.Clone(out.Likes)
	return out
}

type bookmarkKey struct {
	article bson.ObjectID
	email   string
}

type fakeBookmarks struct {
	mu       sync.Mutex
	articles map[bson.ObjectID]bool
	rows     map[bookmarkKey]bool
	// beforeInsert runs ahead of every Insert, under the lock.
	beforeInsert func(call int, rows map[bookmarkKey]bool)
	inserts      int
}

func newFakeBookmarks(ids ...bson.ObjectID) *fakeBookmarks {
	f := &fakeBookmarks{articles: map[bson.ObjectID]bool{}, rows: map[bookmarkKey]bool{}}
	for _, id := range ids {
		f.articles[id] = true
	}
	return f
}

func (f *fakeBookmarks) Remove(_ context.Context, articleID bson.ObjectID, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := bookmarkKey{articleID, email}
	if !f.rows[k] {
		return false, nil
	}
	delete(f.rows, k)
	return true, nil
}

func (f *fakeBookmarks) Insert(_ context.Context, articleID bson.ObjectID, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	if f.beforeInsert != nil {
		f.beforeInsert(f.inserts, f.rows)
	}
	k := bookmarkKey{articleID, email}
	if f.rows[k] {
		return repository.ErrDuplicate
	}
	f.rows[k] = true
	return nil
}

func (f *fakeBookmarks) ArticleExists(_ context.Context, articleID bson.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.articles[articleID], nil
}

type recorded struct {
	kind  string
	added bool
}

type fakeRecorder struct {
	mu     sync.Mutex
	events []recorded
}

func (r *fakeRecorder) ToggleRecorded(_ context.Context, kind string, added bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recorded{kind, added})
}
