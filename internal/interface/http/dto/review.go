package dto

// CreateReviewRequest HTTP发表评价请求
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// EvaluateReviewRequest HTTP表态请求
// is_like必须显式传值（true点赞，false点踩），用指针区分缺省
type EvaluateReviewRequest struct {
	IsLike *bool `json:"is_like" binding:"required"`
}

// ListReviewsRequest HTTP评价列表请求（query参数）
type ListReviewsRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}
