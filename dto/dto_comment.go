package dto

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pllus/articles-server/internal/models"
)

type CreateCommentReq struct {
	ArticleID string `json:"articleId" validate:"required,notblank"`
	Content   string `json:"content" validate:"required,notblank"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	UserPhoto string `json:"user_photo"`

	Extra bson.M `json:"-"`
}

func (r *CreateCommentReq) UnmarshalJSON(b []byte) error {
	type plain CreateCommentReq
	extra, err := decodeWithExtra(b, (*plain)(r), models.CommentKeys)
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

type CreateCommentResp struct {
	Success    bool          `json:"success"`
	InsertedID bson.ObjectID `json:"insertedId"`
}

type UpdateCommentReq struct {
	Content   *string `json:"content"`
	UserName  *string `json:"user_name"`
	UserPhoto *string `json:"user_photo"`

	Extra bson.M `json:"-"`
}

func (r *UpdateCommentReq) UnmarshalJSON(b []byte) error {
	type plain UpdateCommentReq
	extra, err := decodeWithExtra(b, (*plain)(r), models.CommentKeys)
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

// Fields returns the $set document. articleId, the author email and
// createdAt stay fixed.
func (r UpdateCommentReq) Fields() bson.M {
	set := bson.M{}
	for k, v := range r.Extra {
		set[k] = v
	}
	if r.Content != nil {
		set["content"] = strings.TrimSpace(*r.Content)
	}
	if r.UserName != nil {
		set["user_name"] = *r.UserName
	}
	if r.UserPhoto != nil {
		set["user_photo"] = *r.UserPhoto
	}
	return set
}
