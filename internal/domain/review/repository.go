package review

import "context"

// ListParams 评价列表查询参数
// ViewerID为当前登录用户ID(0表示未登录),用于填充MyEvaluation
type ListParams struct {
	BookID   uint
	ViewerID uint
	Page     int
	PageSize int
}

// Repository 评价仓储接口
// 设计说明:
// 1. 排序在SQL层完成:按净赞数(赞-踩)降序、创建时间降序,
//    保证跨页排序与分页边界一致
// 2. 表态的切换逻辑在应用层编排,仓储只提供增删改查原语
// 3. CountEvaluations每次重算,不维护冗余计数列
type Repository interface {
	// Create 创建评价,(user,book)重复返回ErrReviewDuplicate
	Create(ctx context.Context, r *Review) error

	// FindByID 根据ID查询评价
	FindByID(ctx context.Context, id uint) (*Review, error)

	// FindByUserAndBook 查询用户对某本书的评价(不存在返回ErrReviewNotFound)
	FindByUserAndBook(ctx context.Context, userID, bookID uint) (*Review, error)

	// ListByBook 分页查询某本书的评价,按净赞数降序、创建时间降序,
	// 联表填充用户名、赞踩计数及当前用户表态
	ListByBook(ctx context.Context, params ListParams) ([]*Review, int64, error)

	// Update 更新评价的评分与内容
	Update(ctx context.Context, r *Review) error

	// Delete 删除评价(级联删除其表态记录)
	Delete(ctx context.Context, id uint) error

	// FindEvaluation 查询用户对某条评价的表态(不存在返回nil, nil)
	FindEvaluation(ctx context.Context, reviewID, userID uint) (*Evaluation, error)

	// CreateEvaluation 新增表态
	CreateEvaluation(ctx context.Context, e *Evaluation) error

	// UpdateEvaluation 翻转表态方向
	UpdateEvaluation(ctx context.Context, e *Evaluation) error

	// DeleteEvaluation 删除表态(同向再次点击时撤销)
	DeleteEvaluation(ctx context.Context, id uint) error

	// CountEvaluations 统计某条评价的赞数与踩数
	CountEvaluations(ctx context.Context, reviewID uint) (likes int64, dislikes int64, err error)
}
