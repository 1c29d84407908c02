package dto

type BookmarkReq struct {
	ArticleID string `json:"articleId" validate:"required,notblank"`
	UserEmail string `json:"user_email" validate:"required,notblank"`
}

type BookmarkStatusResp struct {
	Bookmarked bool `json:"bookmarked"`
}

type DeleteBookmarkResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
