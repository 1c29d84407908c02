package dto

type ErrorResponse struct {
	Message string `json:"message"`
}

// UpdateResp mirrors the driver's update result the frontend already reads.
type UpdateResp struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResp struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
