package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Article struct {
	ID           bson.ObjectID `json:"_id"                    bson:"_id,omitempty"`
	Title        string        `json:"title"                  bson:"title"`
	Content      string        `json:"content"                bson:"content"`
	Category     string        `json:"category,omitempty"     bson:"category,omitempty"`
	Tags         []string      `json:"tags,omitempty"         bson:"tags,omitempty"`
	Thumbnail    string        `json:"thumbnail,omitempty"    bson:"thumbnail,omitempty"`
	AuthorName   string        `json:"author_name,omitempty"  bson:"author_name,omitempty"`
	AuthorPhoto  string        `json:"author_photo,omitempty" bson:"author_photo,omitempty"`
	UserEmail    string        `json:"user_email"             bson:"user_email"`
	Likes        []string      `json:"likes"                  bson:"likes"`
	LikesCount   int           `json:"likesCount"             bson:"likesCount"`
	CommentCount int           `json:"commentCount"           bson:"commentCount"`
	CreatedAt    time.Time     `json:"createdAt"              bson:"createdAt"`
	UpdatedAt    *time.Time    `json:"updatedAt,omitempty"    bson:"updatedAt,omitempty"`

	// Extra carries the free-form keys clients attach to an article.
	Extra bson.M `json:"-" bson:",inline"`
}

var ArticleKeys = keysOf(
	"_id", "title", "content", "category", "tags", "thumbnail", "author_name", "author_photo",
	"user_email", "likes", "likesCount", "commentCount", "createdAt", "updatedAt",
)

func (a Article) MarshalJSON() ([]byte, error) {
	type plain Article
	b, err := json.Marshal(plain(a))
	if err != nil {
		return nil, err
	}
	return mergeExtra(b, a.Extra)
}

// Normalize keeps the wire shape stable for documents written before likes existed.
func (a *Article) Normalize() {
	if a.Likes == nil {
		a.Likes = []string{}
	}
}
