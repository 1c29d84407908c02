package bootstrap

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/pllus/articles-server/config"
)

// EnsureIndexes creates the indexes the handlers rely on. CreateMany is a
// no-op for indexes that already exist with the same spec.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	// one bookmark per (article, user); the toggle loop depends on it
	if _, err := db.Collection(config.CollBookmarks).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "articleId", Value: 1},
				{Key: "user_email", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_article_user"),
		},
		{
			Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("user_recent"),
		},
	}); err != nil {
		return fmt.Errorf("bookmark indexes: %w", err)
	}

	if _, err := db.Collection(config.CollComments).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "articleId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("article_recent"),
	}); err != nil {
		return fmt.Errorf("comment indexes: %w", err)
	}

	if _, err := db.Collection(config.CollArticles).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("recent"),
		},
		{
			Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("owner_recent"),
		},
	}); err != nil {
		return fmt.Errorf("article indexes: %w", err)
	}
	return nil
}
