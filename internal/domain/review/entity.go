package review

import (
	"time"
)

// Review 评价实体
// 业务规则:
// 1. (UserID, BookID)唯一,每个用户对每本书只能评价一次
// 2. Rating取值1-5
// 3. 点赞/点踩数不做冗余计数,由评价表关联统计(每次查询重算)
type Review struct {
	ID        uint
	UserID    uint
	BookID    uint
	Rating    int    // 评分1-5
	Comment   string // 评价内容(可为空)
	CreatedAt time.Time
	UpdatedAt time.Time

	// 以下为查询时联表填充的展示字段,不直接持久化
	UserName     string
	LikeCount    int64
	DislikeCount int64
	MyEvaluation *bool // 当前用户的表态:nil未表态,true赞,false踩
}

// Evaluation 评价表态记录
// (UserID, ReviewID)唯一,IsLike是开关记录而非计数器:
// 同向再次点击删除记录,反向点击翻转记录
type Evaluation struct {
	ID        uint
	ReviewID  uint
	UserID    uint
	IsLike    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewReview 创建评价(工厂方法)
func NewReview(userID, bookID uint, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	now := time.Now()
	return &Review{
		UserID:    userID,
		BookID:    bookID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NetLikes 净赞数(排序键)
func (r *Review) NetLikes() int64 {
	return r.LikeCount - r.DislikeCount
}

// IsOwnedBy 检查评价是否属于指定用户
func (r *Review) IsOwnedBy(userID uint) bool {
	return r.UserID == userID
}
