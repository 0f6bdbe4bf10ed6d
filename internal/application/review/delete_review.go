package review

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/review"
)

// DeleteReviewUseCase 删除评价用例
// 评价本人或管理员可删除；级联清除其表态记录
type DeleteReviewUseCase struct {
	reviewRepo review.Repository
}

// NewDeleteReviewUseCase 创建删除评价用例
func NewDeleteReviewUseCase(reviewRepo review.Repository) *DeleteReviewUseCase {
	return &DeleteReviewUseCase{reviewRepo: reviewRepo}
}

// Execute 执行删除
// admin为true时跳过所有权校验（后台治理违规评价）
func (uc *DeleteReviewUseCase) Execute(ctx context.Context, userID, reviewID uint, admin bool) error {
	r, err := uc.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if !admin && !r.IsOwnedBy(userID) {
		return review.ErrNotReviewOwner
	}
	return uc.reviewRepo.Delete(ctx, reviewID)
}
