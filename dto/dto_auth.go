package dto

type IssueTokenReq struct {
	Email string `json:"email" validate:"required,notblank"`
}

type IssueTokenResp struct {
	Success bool `json:"success"`
}
