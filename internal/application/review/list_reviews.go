package review

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/review"
)

// ListReviewsUseCase 图书评价列表用例
// 排序由SQL层完成：净赞数(赞-踩)降序、创建时间降序，
// 分页边界与排序口径一致，"最热评价"跨页成立
type ListReviewsUseCase struct {
	reviewRepo review.Repository
}

// NewListReviewsUseCase 创建评价列表用例
func NewListReviewsUseCase(reviewRepo review.Repository) *ListReviewsUseCase {
	return &ListReviewsUseCase{reviewRepo: reviewRepo}
}

// ListReviewsRequest 列表请求
type ListReviewsRequest struct {
	BookID   uint
	ViewerID uint // 当前登录用户，0表示未登录
	Page     int
	PageSize int
}

// ReviewInfo 评价DTO
type ReviewInfo struct {
	ReviewID     uint   `json:"review_id"`
	UserID       uint   `json:"user_id"`
	UserName     string `json:"user_name"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment,omitempty"`
	LikeCount    int64  `json:"like_count"`
	DislikeCount int64  `json:"dislike_count"`
	MyEvaluation *bool  `json:"my_evaluation"` // 当前用户表态，nil未表态
	CreatedAt    string `json:"created_at"`
}

// Execute 执行查询
func (uc *ListReviewsUseCase) Execute(ctx context.Context, req ListReviewsRequest) ([]ReviewInfo, int64, error) {
	reviews, total, err := uc.reviewRepo.ListByBook(ctx, review.ListParams{
		BookID:   req.BookID,
		ViewerID: req.ViewerID,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	infos := make([]ReviewInfo, 0, len(reviews))
	for _, r := range reviews {
		infos = append(infos, ReviewInfo{
			ReviewID:     r.ID,
			UserID:       r.UserID,
			UserName:     r.UserName,
			Rating:       r.Rating,
			Comment:      r.Comment,
			LikeCount:    r.LikeCount,
			DislikeCount: r.DislikeCount,
			MyEvaluation: r.MyEvaluation,
			CreatedAt:    r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return infos, total, nil
}
