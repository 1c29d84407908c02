package dto

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pllus/articles-server/internal/models"
)

type CreateArticleReq struct {
	Title       string   `json:"title" validate:"required,notblank"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Thumbnail   string   `json:"thumbnail"`
	AuthorName  string   `json:"author_name"`
	AuthorPhoto string   `json:"author_photo"`
	UserEmail   string   `json:"user_email" validate:"required,notblank"`

	// Extra holds keys outside the typed fields. Server-owned keys are dropped.
	Extra bson.M `json:"-"`
}

func (r *CreateArticleReq) UnmarshalJSON(b []byte) error {
	type plain CreateArticleReq
	extra, err := decodeWithExtra(b, (*plain)(r), models.ArticleKeys)
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

// UpdateArticleReq carries content fields and free-form keys. Counters, likes,
// owner and createdAt cannot be reached through PATCH.
type UpdateArticleReq struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	Thumbnail   *string   `json:"thumbnail"`
	AuthorName  *string   `json:"author_name"`
	AuthorPhoto *string   `json:"author_photo"`

	Extra bson.M `json:"-"`
}

func (r *UpdateArticleReq) UnmarshalJSON(b []byte) error {
	type plain UpdateArticleReq
	extra, err := decodeWithExtra(b, (*plain)(r), models.ArticleKeys)
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

// Fields returns the $set document for the fields present in the request.
func (r UpdateArticleReq) Fields() bson.M {
	set := bson.M{}
	for k, v := range r.Extra {
		set[k] = v
	}
	if r.Title != nil {
		set["title"] = strings.TrimSpace(*r.Title)
	}
	if r.Content != nil {
		set["content"] = *r.Content
	}
	if r.Category != nil {
		set["category"] = *r.Category
	}
	if r.Tags != nil {
		set["tags"] = *r.Tags
	}
	if r.Thumbnail != nil {
		set["thumbnail"] = *r.Thumbnail
	}
	if r.AuthorName != nil {
		set["author_name"] = *r.AuthorName
	}
	if r.AuthorPhoto != nil {
		set["author_photo"] = *r.AuthorPhoto
	}
	return set
}

type LikeReq struct {
	UserID string `json:"userId" validate:"required,notblank"`
}

type LikeResp struct {
	UpdateResp
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}
