package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置)
// 设计说明:
// 1. domain层定义接口,infrastructure层实现
// 2. 扣减/回补库存使用条件原子UPDATE,不依赖先查后写
// 3. 参与事务的方法通过context传递事务句柄
type Repository interface {
	// Create 创建图书(含详情行与分类关联)
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书(含详情与分类)
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// FindByIDs 批量查找(结算时一次加载购物车涉及的图书)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Book, error)

	// Update 更新图书(乐观锁:version不匹配返回ErrVersionConflict)
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书
	// 存在订单明细或购物车项引用时返回ErrBookReferenced
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// DecrementStock 扣减库存(条件原子UPDATE)
	// 执行 UPDATE ... SET quantity = quantity - ? WHERE id = ? AND quantity >= ?
	// 库存不足返回ErrInsufficientStock,整个事务由调用方回滚
	DecrementStock(ctx context.Context, id uint, quantity int) error

	// IncrementStock 回补库存(订单取消)
	IncrementStock(ctx context.Context, id uint, quantity int) error
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(标题、作者、出版社)
	GenreID  uint   // 按分类过滤(0表示不过滤)
	SortBy   string // 排序字段(price_asc, price_desc, created_at_desc)
}
