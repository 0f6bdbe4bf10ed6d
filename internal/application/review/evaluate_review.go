package review

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/review"
)

// EvaluateReviewUseCase 评价表态（赞/踩）用例
// 表态是开关语义，对单条(user,review)表态记录操作：
// - 无记录 → 新增
// - 已有同向记录 → 删除（再次点击撤销）
// - 已有反向记录 → 翻转方向
// 计数不走冗余列，每次表态后重新COUNT返回最新值
type EvaluateReviewUseCase struct {
	reviewRepo review.Repository
}

// NewEvaluateReviewUseCase 创建表态用例
func NewEvaluateReviewUseCase(reviewRepo review.Repository) *EvaluateReviewUseCase {
	return &EvaluateReviewUseCase{reviewRepo: reviewRepo}
}

// EvaluateReviewRequest 表态请求
type EvaluateReviewRequest struct {
	UserID   uint
	ReviewID uint
	IsLike   bool // true点赞，false点踩
}

// EvaluateReviewResponse 表态响应（刷新后的计数与当前状态）
type EvaluateReviewResponse struct {
	LikeCount    int64 `json:"like_count"`
	DislikeCount int64 `json:"dislike_count"`
	MyEvaluation *bool `json:"my_evaluation"` // nil表示已撤销表态
}

// Execute 执行表态
func (uc *EvaluateReviewUseCase) Execute(ctx context.Context, req EvaluateReviewRequest) (*EvaluateReviewResponse, error) {
	// 评价必须存在
	if _, err := uc.reviewRepo.FindByID(ctx, req.ReviewID); err != nil {
		return nil, err
	}

	existing, err := uc.reviewRepo.FindEvaluation(ctx, req.ReviewID, req.UserID)
	if err != nil {
		return nil, err
	}

	var current *bool
	switch {
	case existing == nil:
		// 首次表态
		e := &review.Evaluation{
			ReviewID: req.ReviewID,
			UserID:   req.UserID,
			IsLike:   req.IsLike,
		}
		if err := uc.reviewRepo.CreateEvaluation(ctx, e); err != nil {
			return nil, err
		}
		v := req.IsLike
		current = &v

	case existing.IsLike == req.IsLike:
		// 同向再次点击：撤销
		if err := uc.reviewRepo.DeleteEvaluation(ctx, existing.ID); err != nil {
			return nil, err
		}
		current = nil

	default:
		// 反向点击：翻转
		existing.IsLike = req.IsLike
		if err := uc.reviewRepo.UpdateEvaluation(ctx, existing); err != nil {
			return nil, err
		}
		v := req.IsLike
		current = &v
	}

	likes, dislikes, err := uc.reviewRepo.CountEvaluations(ctx, req.ReviewID)
	if err != nil {
		return nil, err
	}

	return &EvaluateReviewResponse{
		LikeCount:    likes,
		DislikeCount: dislikes,
		MyEvaluation: current,
	}, nil
}
