package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/pllus/articles-server/internal/models"
)

type ArticleRepository struct {
	Client       *mongo.Client
	ColArticles  *mongo.Collection
	ColComments  *mongo.Collection
	ColBookmarks *mongo.Collection
}

type ArticleFilter struct {
	Category   string
	Tag        string
	OwnerEmail string
}

func (f ArticleFilter) query() bson.M {
	q := bson.M{}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Tag != "" {
		q["tags"] = f.Tag
	}
	if f.OwnerEmail != "" {
		q["user_email"] = f.OwnerEmail
	}
	return q
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// List returns articles matching f, newest first.
func (r *ArticleRepository) List(ctx context.Context, f ArticleFilter) ([]models.Article, error) {
	cur, err := r.ColArticles.Find(ctx, f.query(), options.Find().SetSort(newestFirst))
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

func (r *ArticleRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Article, error) {
	var a models.Article
	if err := r.ColArticles.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	a.Normalize()
	return &a, nil
}

func (r *ArticleRepository) Exists(ctx context.Context, id bson.ObjectID) (bool, error) {
	n, err := r.ColArticles.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a with fresh counters and stamps its ID.
func (r *ArticleRepository) Create(ctx context.Context, a *models.Article) error {
	if a.ID.IsZero() {
		a.ID = bson.NewObjectID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	a.Likes = []string{}
	a.LikesCount = 0
	a.CommentCount = 0

	_, err := r.ColArticles.InsertOne(ctx, a)
	return err
}

func (r *ArticleRepository) Update(ctx context.Context, id bson.ObjectID, fields bson.M) (WriteResult, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	res, err := r.ColArticles.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return WriteResult{}, err
	}
	if res.MatchedCount == 0 {
		return WriteResult{}, ErrNotFound
	}
	return WriteResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

// Delete removes the article together with its comments and bookmarks.
func (r *ArticleRepository) Delete(ctx context.Context, id bson.ObjectID) (int64, error) {
	var deleted int64
	err := withTransaction(ctx, r.Client, func(sc context.Context) error {
		res, err := r.ColArticles.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return err
		}
		deleted = res.DeletedCount
		if deleted == 0 {
			return nil
		}
		if _, err := r.ColComments.DeleteMany(sc, bson.M{"articleId": id}); err != nil {
			return err
		}
		_, err = r.ColBookmarks.DeleteMany(sc, bson.M{"articleId": id})
		return err
	})
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, ErrNotFound
	}
	return deleted, nil
}

// ApplyMembership runs a conditional update and returns the article after it.
// A nil article with a nil error means the filter matched nothing.
func (r *ArticleRepository) ApplyMembership(ctx context.Context, filter, update bson.M) (*models.Article, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"likes": 1, "likesCount": 1})

	var a models.Article
	if err := r.ColArticles.FindOneAndUpdate(ctx, filter, update, opts).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	a.Normalize()
	return &a, nil
}

// RecountCounters recomputes likesCount and commentCount for every article and
// returns how many documents were corrected.
func (r *ArticleRepository) RecountCounters(ctx context.Context) (int64, error) {
	likes, err := r.ColArticles.UpdateMany(ctx,
		bson.M{"$expr": bson.M{"$ne": bson.A{
			"$likesCount",
			bson.M{"$size": bson.M{"$ifNull": bson.A{"$likes", bson.A{}}}},
		}}},
		mongo.Pipeline{
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "likes", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$likes", bson.A{}}}}},
				{Key: "likesCount", Value: bson.D{{Key: "$size", Value: bson.D{
					{Key: "$ifNull", Value: bson.A{"$likes", bson.A{}}},
				}}}},
			}}},
		},
	)
	if err != nil {
		return 0, fmt.Errorf("recount likes: %w", err)
	}
	fixed := likes.ModifiedCount

	cur, err := r.ColComments.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$articleId"},
			{Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return fixed, fmt.Errorf("count comments: %w", err)
	}
	var groups []struct {
		ArticleID bson.ObjectID `bson:"_id"`
		N         int           `bson:"n"`
	}
	if err := cur.All(ctx, &groups); err != nil {
		return fixed, err
	}

	counted := make([]bson.ObjectID, 0, len(groups))
	for _, g := range groups {
		counted = append(counted, g.ArticleID)
		res, err := r.ColArticles.UpdateOne(ctx,
			bson.M{"_id": g.ArticleID, "commentCount": bson.M{"$ne": g.N}},
			bson.M{"$set": bson.M{"commentCount": g.N}},
		)
		if err != nil {
			return fixed, fmt.Errorf("recount comments: %w", err)
		}
		fixed += res.ModifiedCount
	}

	res, err := r.ColArticles.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$nin": counted}, "commentCount": bson.M{"$ne": 0}},
		bson.M{"$set": bson.M{"commentCount": 0}},
	)
	if err != nil {
		return fixed, fmt.Errorf("reset comment counts: %w", err)
	}
	return fixed + res.ModifiedCount, nil
}
