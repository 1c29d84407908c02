package routes

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pllus/articles-server/internal/models"
	"github.com/pllus/articles-server/internal/repository"
)

// memDB backs the in-memory stores used by the HTTP tests.
type memDB struct {
	mu        sync.Mutex
	articles  map[bson.ObjectID]*models.Article
	comments  map[bson.ObjectID]*models.Comment
	bookmarks map[string]time.Time
}

func newMemDB() *memDB {
	return &memDB{
		articles:  map[bson.ObjectID]*models.Article{},
		comments:  map[bson.ObjectID]*models.Comment{},
		bookmarks: map[string]time.Time{},
	}
}

func bmKey(id bson.ObjectID, email string) string { return id.Hex() + "|" + email }

type memArticles struct{ db *memDB }

func (m memArticles) List(_ context.Context, f repository.ArticleFilter) ([]models.Article, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []models.Article{}
	for _, a := range m.db.articles {
		if f.Category != "" && a.Category != f.Category {
			continue
		}
		if f.Tag != "" && !slices.Contains(a.Tags, f.Tag) {
			continue
		}
		if f.OwnerEmail != "" && a.UserEmail != f.OwnerEmail {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m memArticles) FindByID(_ context.Context, id bson.ObjectID) (*models.Article, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	a, ok := m.db.articles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *a
	return &out, nil
}

func (m memArticles) Create(_ context.Context, a *models.Article) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	a.ID = bson.NewObjectID()
	a.CreatedAt = time.Now().UTC()
	a.Likes = []string{}
	stored := *a
	m.db.articles[a.ID] = &stored
	return nil
}

func (m memArticles) Update(_ context.Context, id bson.ObjectID, fields bson.M) (repository.WriteResult, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	a, ok := m.db.articles[id]
	if !ok {
		return repository.WriteResult{}, repository.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "title":
			a.Title = v.(string)
		case "content":
			a.Content = v.(string)
		default:
			if models.ArticleKeys.Has(k) {
				continue
			}
			if a.Extra == nil {
				a.Extra = bson.M{}
			}
			a.Extra[k] = v
		}
	}
	return repository.WriteResult{Matched: 1, Modified: 1}, nil
}

func (m memArticles) Delete(_ context.Context, id bson.ObjectID) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.articles[id]; !ok {
		return 0, repository.ErrNotFound
	}
	delete(m.db.articles, id)
	return 1, nil
}

func (m memArticles) Exists(_ context.Context, id bson.ObjectID) (bool, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	_, ok := m.db.articles[id]
	return ok, nil
}

// ApplyMembership evaluates the conditional like updates built by
// services.Membership: {_id, likes: actor} or {_id, likes: {$ne: actor}}.
func (m memArticles) ApplyMembership(_ context.Context, filter, update bson.M) (*models.Article, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	id, _ := filter["_id"].(bson.ObjectID)
	a, ok := m.db.articles[id]
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
		a.Likes = slices.DeleteFunc(slices.Clone(a.Likes), func(s string) bool { return s == actor })
	}
	if add, ok := update["$addToSet"].(bson.M); ok {
		if actor := add["likes"].(string); !slices.Contains(a.Likes, actor) {
			a.Likes = append(slices.Clone(a.Likes), actor)
		}
	}
	if inc, ok := update["$inc"].(bson.M); ok {
		a.LikesCount += inc["likesCount"].(int)
	}
	out := *a
	return &out, nil
}

type memComments struct{ db *memDB }

func (m memComments) Create(_ context.Context, c *models.Comment) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	a, ok := m.db.articles[c.ArticleID]
	if !ok {
		return repository.ErrNotFound
	}
	a.CommentCount++
	stored := *c
	m.db.comments[c.ID] = &stored
	return nil
}

func (m memComments) List(_ context.Context, articleID *bson.ObjectID) ([]models.Comment, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []models.Comment{}
	for _, c := range m.db.comments {
		if articleID == nil || c.ArticleID == *articleID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m memComments) FindByID(_ context.Context, id bson.ObjectID) (*models.Comment, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	c, ok := m.db.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (m memComments) Update(_ context.Context, id bson.ObjectID, fields bson.M) (repository.WriteResult, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	c, ok := m.db.comments[id]
	if !ok {
		return repository.WriteResult{}, repository.ErrNotFound
	}
	for k, v := range fields {
		switch {
		case k == "content":
			c.Content = v.(string)
		case !models.CommentKeys.Has(k):
			if c.Extra == nil {
				c.Extra = bson.M{}
			}
			c.Extra[k] = v
		}
	}
	return repository.WriteResult{Matched: 1, Modified: 1}, nil
}

func (m memComments) Delete(_ context.Context, id bson.ObjectID) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	c, ok := m.db.comments[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	delete(m.db.comments, id)
	if a, ok := m.db.articles[c.ArticleID]; ok && a.CommentCount > 0 {
		a.CommentCount--
	}
	return 1, nil
}

type memBookmarks struct{ db *memDB }

func (m memBookmarks) Remove(_ context.Context, id bson.ObjectID, email string) (bool, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	k := bmKey(id, email)
	if _, ok := m.db.bookmarks[k]; !ok {
		return false, nil
	}
	delete(m.db.bookmarks, k)
	return true, nil
}

func (m memBookmarks) Insert(_ context.Context, id bson.ObjectID, email string) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	k := bmKey(id, email)
	if _, ok := m.db.bookmarks[k]; ok {
		return repository.ErrDuplicate
	}
	m.db.bookmarks[k] = time.Now()
	return nil
}

func (m memBookmarks) ArticleExists(_ context.Context, id bson.ObjectID) (bool, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	_, ok := m.db.articles[id]
	return ok, nil
}

func (m memBookmarks) Exists(_ context.Context, id bson.ObjectID, email string) (bool, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	_, ok := m.db.bookmarks[bmKey(id, email)]
	return ok, nil
}

func (m memBookmarks) ListArticles(_ context.Context, email string) ([]models.Article, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []models.Article{}
	for id, a := range m.db.articles {
		if _, ok := m.db.bookmarks[bmKey(id, email)]; ok {
			out = append(out, *a)
		}
	}
	return out, nil
}
