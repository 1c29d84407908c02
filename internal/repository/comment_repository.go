package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/pllus/articles-server/internal/models"
)

type CommentRepository struct {
	Client      *mongo.Client
	ColComments *mongo.Collection
	ColArticles *mongo.Collection
}

// Create bumps the parent's commentCount and inserts c in one transaction.
// ErrNotFound means the article does not exist and nothing was written.
func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	if c.ID.IsZero() {
		c.ID = bson.NewObjectID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	missing := false
	err := withTransaction(ctx, r.Client, func(sc context.Context) error {
		res, err := r.ColArticles.UpdateOne(sc,
			bson.M{"_id": c.ArticleID},
			bson.M{"$inc": bson.M{"commentCount": 1}},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			missing = true
			return ErrNotFound
		}
		_, err = r.ColComments.InsertOne(sc, c)
		return err
	})
	if missing {
		return ErrNotFound
	}
	return err
}

// List returns comments newest first; a nil articleID lists everything.
func (r *CommentRepository) List(ctx context.Context, articleID *bson.ObjectID) ([]models.Comment, error) {
	filter := bson.M{}
	if articleID != nil {
		filter["articleId"] = *articleID
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := r.ColComments.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []models.Comment{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Comment, error) {
	var c models.Comment
	if err := r.ColComments.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) Update(ctx context.Context, id bson.ObjectID, fields bson.M) (WriteResult, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	res, err := r.ColComments.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return WriteResult{}, err
	}
	if res.MatchedCount == 0 {
		return WriteResult{}, ErrNotFound
	}
	return WriteResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

// Delete removes the comment and decrements the parent counter, never below zero.
func (r *CommentRepository) Delete(ctx context.Context, id bson.ObjectID) (int64, error) {
	deleted := false
	err := withTransaction(ctx, r.Client, func(sc context.Context) error {
		var c models.Comment
		if err := r.ColComments.FindOneAndDelete(sc, bson.M{"_id": id}).Decode(&c); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil
			}
			return err
		}
		deleted = true

		// commentCount = max(0, (commentCount || 0) - 1)
		update := mongo.Pipeline{
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "commentCount", Value: bson.D{
					{Key: "$max", Value: bson.A{
						0,
						bson.D{{Key: "$subtract", Value: bson.A{
							bson.D{{Key: "$ifNull", Value: bson.A{"$commentCount", 0}}},
							1,
						}}},
					}},
				}},
			}}},
		}
		_, err := r.ColArticles.UpdateOne(sc, bson.M{"_id": c.ArticleID}, update)
		return err
	})
	if err != nil {
		return 0, err
	}
	if !deleted {
		return 0, ErrNotFound
	}
	return 1, nil
}
