package review

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/review"
)

// UpdateReviewUseCase 修改评价用例
// 仅评价本人可修改，评分与内容整体覆盖
type UpdateReviewUseCase struct {
	reviewRepo review.Repository
}

// NewUpdateReviewUseCase 创建修改评价用例
func NewUpdateReviewUseCase(reviewRepo review.Repository) *UpdateReviewUseCase {
	return &UpdateReviewUseCase{reviewRepo: reviewRepo}
}

// UpdateReviewRequest 修改评价请求
type UpdateReviewRequest struct {
	UserID   uint
	ReviewID uint
	Rating   int
	Comment  string
}

// Execute 执行修改
func (uc *UpdateReviewUseCase) Execute(ctx context.Context, req UpdateReviewRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return review.ErrInvalidRating
	}

	r, err := uc.reviewRepo.FindByID(ctx, req.ReviewID)
	if err != nil {
		return err
	}
	if !r.IsOwnedBy(req.UserID) {
		return review.ErrNotReviewOwner
	}

	r.Rating = req.Rating
	r.Comment = req.Comment
	return uc.reviewRepo.Update(ctx, r)
}
