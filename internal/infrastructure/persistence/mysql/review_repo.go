package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/review"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// reviewRepository 评价仓储实现(MySQL)
// 设计说明:
// 1. 列表排序在SQL层完成:LEFT JOIN表态表聚合赞踩计数,
//    ORDER BY净赞数降序、创建时间降序,分页边界与排序口径一致
// 2. 赞踩不做冗余计数列,每次COUNT重算
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// Create 创建评价
func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		UserID:  rv.UserID,
		BookID:  rv.BookID,
		Rating:  rv.Rating,
		Comment: rv.Comment,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return review.ErrReviewDuplicate
		}
		return apperrors.Wrap(err, "创建评价失败")
	}

	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt
	rv.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查询评价
func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	var model ReviewModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询评价失败")
	}
	return toReviewEntity(&model), nil
}

// FindByUserAndBook 查询用户对某本书的评价
func (r *reviewRepository) FindByUserAndBook(ctx context.Context, userID, bookID uint) (*review.Review, error) {
	var model ReviewModel
	err := getDB(ctx, r.db).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询评价失败")
	}
	return toReviewEntity(&model), nil
}

// reviewRow 列表联表查询投影
type reviewRow struct {
	ID           uint
	UserID       uint
	BookID       uint
	Rating       int
	Comment      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	UserName     string
	LikeCount    int64
	DislikeCount int64
	MyEvaluation *bool
}

// ListByBook 分页查询某本书的评价
// 排序键:净赞数(赞-踩)降序,同分按创建时间降序
func (r *reviewRepository) ListByBook(ctx context.Context, params review.ListParams) ([]*review.Review, int64, error) {
	db := getDB(ctx, r.db)

	var total int64
	if err := db.Model(&ReviewModel{}).Where("book_id = ?", params.BookID).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询评价总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	var rows []reviewRow
	err := db.Table("reviews").
		Select(`reviews.id, reviews.user_id, reviews.book_id, reviews.rating, reviews.comment,
			reviews.created_at, reviews.updated_at,
			users.nickname AS user_name,
			COALESCE(SUM(CASE WHEN re.is_like = 1 THEN 1 ELSE 0 END), 0) AS like_count,
			COALESCE(SUM(CASE WHEN re.is_like = 0 THEN 1 ELSE 0 END), 0) AS dislike_count,
			mine.is_like AS my_evaluation`).
		Joins("JOIN users ON users.id = reviews.user_id").
		Joins("LEFT JOIN review_evaluations re ON re.review_id = reviews.id").
		Joins("LEFT JOIN review_evaluations mine ON mine.review_id = reviews.id AND mine.user_id = ?", params.ViewerID).
		Where("reviews.book_id = ?", params.BookID).
		Group("reviews.id, users.nickname, mine.is_like").
		Order("(like_count - dislike_count) DESC, reviews.created_at DESC").
		Limit(params.PageSize).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询评价列表失败")
	}

	reviews := make([]*review.Review, len(rows))
	for i, row := range rows {
		reviews[i] = &review.Review{
			ID:           row.ID,
			UserID:       row.UserID,
			BookID:       row.BookID,
			Rating:       row.Rating,
			Comment:      row.Comment,
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
			UserName:     row.UserName,
			LikeCount:    row.LikeCount,
			DislikeCount: row.DislikeCount,
			MyEvaluation: row.MyEvaluation,
		}
	}
	return reviews, total, nil
}

// Update 更新评价的评分与内容
func (r *reviewRepository) Update(ctx context.Context, rv *review.Review) error {
	result := getDB(ctx, r.db).Model(&ReviewModel{}).
		Where("id = ?", rv.ID).
		Updates(map[string]interface{}{
			"rating":  rv.Rating,
			"comment": rv.Comment,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新评价失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

// Delete 删除评价及其表态记录
func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)

	if err := db.Where("review_id = ?", id).Delete(&ReviewEvaluationModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除评价表态失败")
	}

	result := db.Delete(&ReviewModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除评价失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

// FindEvaluation 查询用户对某条评价的表态,无记录返回(nil, nil)
func (r *reviewRepository) FindEvaluation(ctx context.Context, reviewID, userID uint) (*review.Evaluation, error) {
	var model ReviewEvaluationModel
	err := getDB(ctx, r.db).
		Where("review_id = ? AND user_id = ?", reviewID, userID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "查询表态失败")
	}

	return &review.Evaluation{
		ID:        model.ID,
		ReviewID:  model.ReviewID,
		UserID:    model.UserID,
		IsLike:    model.IsLike,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

// CreateEvaluation 新增表态
func (r *reviewRepository) CreateEvaluation(ctx context.Context, e *review.Evaluation) error {
	model := &ReviewEvaluationModel{
		ReviewID: e.ReviewID,
		UserID:   e.UserID,
		IsLike:   e.IsLike,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		// 并发双击撞唯一索引,按重复处理
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "请勿重复操作")
		}
		return apperrors.Wrap(err, "创建表态失败")
	}
	e.ID = model.ID
	return nil
}

// UpdateEvaluation 翻转表态方向
func (r *reviewRepository) UpdateEvaluation(ctx context.Context, e *review.Evaluation) error {
	result := getDB(ctx, r.db).Model(&ReviewEvaluationModel{}).
		Where("id = ?", e.ID).
		Update("is_like", e.IsLike)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新表态失败")
	}
	return nil
}

// DeleteEvaluation 删除表态
func (r *reviewRepository) DeleteEvaluation(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&ReviewEvaluationModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除表态失败")
	}
	return nil
}

// CountEvaluations 统计某条评价的赞数与踩数
func (r *reviewRepository) CountEvaluations(ctx context.Context, reviewID uint) (int64, int64, error) {
	db := getDB(ctx, r.db)

	var likes, dislikes int64
	err := db.Model(&ReviewEvaluationModel{}).
		Where("review_id = ? AND is_like = ?", reviewID, true).
		Count(&likes).Error
	if err != nil {
		return 0, 0, apperrors.Wrap(err, "统计赞数失败")
	}
	err = db.Model(&ReviewEvaluationModel{}).
		Where("review_id = ? AND is_like = ?", reviewID, false).
		Count(&dislikes).Error
	if err != nil {
		return 0, 0, apperrors.Wrap(err, "统计踩数失败")
	}
	return likes, dislikes, nil
}

// toReviewEntity GORM模型 → 领域实体
func toReviewEntity(model *ReviewModel) *review.Review {
	return &review.Review{
		ID:        model.ID,
		UserID:    model.UserID,
		BookID:    model.BookID,
		Rating:    model.Rating,
		Comment:   model.Comment,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
