package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Comment struct {
	ID        bson.ObjectID `json:"_id"                  bson:"_id,omitempty"`
	ArticleID bson.ObjectID `json:"articleId"            bson:"articleId"`
	Content   string        `json:"content"              bson:"content"`
	UserName  string        `json:"user_name,omitempty"  bson:"user_name,omitempty"`
	UserEmail string        `json:"user_email,omitempty" bson:"user_email,omitempty"`
	UserPhoto string        `json:"user_photo,omitempty" bson:"user_photo,omitempty"`
	CreatedAt time.Time     `json:"createdAt"            bson:"createdAt"`
	UpdatedAt *time.Time    `json:"updatedAt,omitempty"  bson:"updatedAt,omitempty"`

	Extra bson.M `json:"-" bson:",inline"`
}

var CommentKeys = keysOf(
	"_id", "articleId", "content", "user_name", "user_email", "user_photo", "createdAt", "updatedAt",
)

func (c Comment) MarshalJSON() ([]byte, error) {
	type plain Comment
	b, err := json.Marshal(plain(c))
	if err != nil {
		return nil, err
	}
	return mergeExtra(b, c.Extra)
}
