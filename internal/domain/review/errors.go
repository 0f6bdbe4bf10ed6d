package review

import "github.com/xiebiao/bookshop/pkg/errors"

// 评价领域错误定义
var (
	// ErrReviewNotFound 评价不存在
	ErrReviewNotFound = errors.New(errors.ErrCodeReviewNotFound, "评价不存在")

	// ErrReviewDuplicate 同一用户对同一本书只能评价一次
	ErrReviewDuplicate = errors.New(errors.ErrCodeReviewDuplicate, "您已评价过这本书")

	// ErrInvalidRating 评分超出1-5范围
	ErrInvalidRating = errors.New(errors.ErrCodeInvalidParams, "评分必须在1-5之间")

	// ErrNotReviewOwner 无权操作他人评价
	ErrNotReviewOwner = errors.New(errors.ErrCodeForbidden, "无权操作此评价")
)
