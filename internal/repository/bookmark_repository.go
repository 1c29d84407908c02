package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/pllus/articles-server/internal/models"
)

type BookmarkRepository struct {
	ColBookmarks *mongo.Collection
	ColArticles  *mongo.Collection
}

func bookmarkKey(articleID bson.ObjectID, email string) bson.M {
	return bson.M{"articleId": articleID, "user_email": email}
}

// Remove deletes the (article, user) row and reports whether one existed.
func (r *BookmarkRepository) Remove(ctx context.Context, articleID bson.ObjectID, email string) (bool, error) {
	res, err := r.ColBookmarks.DeleteOne(ctx, bookmarkKey(articleID, email))
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// Insert adds a bookmark row. ErrDuplicate means the row already exists.
func (r *BookmarkRepository) Insert(ctx context.Context, articleID bson.ObjectID, email string) error {
	doc := models.Bookmark{
		ID:        bson.NewObjectID(),
		ArticleID: articleID,
		UserEmail: email,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.ColBookmarks.InsertOne(ctx, doc); err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *BookmarkRepository) Exists(ctx context.Context, articleID bson.ObjectID, email string) (bool, error) {
	n, err := r.ColBookmarks.CountDocuments(ctx, bookmarkKey(articleID, email), options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *BookmarkRepository) ArticleExists(ctx context.Context, articleID bson.ObjectID) (bool, error) {
	n, err := r.ColArticles.CountDocuments(ctx, bson.M{"_id": articleID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListArticles returns the articles email has bookmarked, most recent bookmark first.
// Bookmarks whose article was removed are skipped.
func (r *BookmarkRepository) ListArticles(ctx context.Context, email string) ([]models.Article, error) {
	cur, err := r.ColBookmarks.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "user_email", Value: email}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: r.ColArticles.Name()},
			{Key: "localField", Value: "articleId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "article"},
		}}},
		bson.D{{Key: "$unwind", Value: "$article"}},
		bson.D{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$article"}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []models.Article{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Normalize()
	}
	return items, nil
}
