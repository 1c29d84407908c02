package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Bookmark struct {
	ID        bson.ObjectID `json:"_id"        bson:"_id,omitempty"`
	ArticleID bson.ObjectID `json:"articleId"  bson:"articleId"`
	UserEmail string        `json:"user_email" bson:"user_email"`
	CreatedAt time.Time     `json:"createdAt"  bson:"createdAt"`
}
