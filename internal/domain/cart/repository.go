package cart

import (
	"context"
)

// Repository 购物车仓储接口
// 设计说明:
// 1. GetOrCreateByUserID实现惰性创建:不存在则插入空购物车
// 2. 查询方法联表带出图书标题/价格/库存,避免逐项回查(显式查询代替懒加载)
type Repository interface {
	// GetOrCreateByUserID 获取用户购物车,不存在则创建
	GetOrCreateByUserID(ctx context.Context, userID uint) (*Cart, error)

	// FindItemByID 根据ID查找购物车项(含所属购物车的UserID校验数据)
	FindItemByID(ctx context.Context, itemID uint) (*CartItem, uint, error)

	// AddItem 新增购物车项
	AddItem(ctx context.Context, item *CartItem) error

	// UpdateItemQuantity 更新购物车项数量
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error

	// RemoveItem 删除购物车项
	RemoveItem(ctx context.Context, itemID uint) error

	// ItemCount 用户购物车商品总件数(角标)
	ItemCount(ctx context.Context, userID uint) (int, error)
}
