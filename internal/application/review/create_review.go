package review

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/review"
)

// CreateReviewUseCase 发表评价用例
// 业务规则：
// 1. 每个用户对每本书只能评价一次（应用层预检+数据库唯一索引兜底）
// 2. 评分1-5，评价内容可为空
type CreateReviewUseCase struct {
	reviewRepo review.Repository
	bookRepo   book.Repository
}

// NewCreateReviewUseCase 创建发表评价用例
func NewCreateReviewUseCase(reviewRepo review.Repository, bookRepo book.Repository) *CreateReviewUseCase {
	return &CreateReviewUseCase{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
	}
}

// CreateReviewRequest 发表评价请求
type CreateReviewRequest struct {
	UserID  uint
	BookID  uint
	Rating  int
	Comment string
}

// CreateReviewResponse 发表评价响应
type CreateReviewResponse struct {
	ReviewID uint `json:"review_id"`
}

// Execute 执行发表
func (uc *CreateReviewUseCase) Execute(ctx context.Context, req CreateReviewRequest) (*CreateReviewResponse, error) {
	// 1. 图书必须存在
	if _, err := uc.bookRepo.FindByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	// 2. 创建实体（评分校验在工厂方法内）
	r, err := review.NewReview(req.UserID, req.BookID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	// 3. 持久化，(user,book)重复由仓储转换为ErrReviewDuplicate
	if err := uc.reviewRepo.Create(ctx, r); err != nil {
		return nil, err
	}

	return &CreateReviewResponse{ReviewID: r.ID}, nil
}
