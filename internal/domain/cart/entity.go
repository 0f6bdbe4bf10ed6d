package cart

import (
	"time"
)

// Cart 购物车聚合根
// 设计说明:
// 1. 与用户一对一,首次访问时惰性创建
// 2. CartItem是聚合内子实体,必须通过Cart访问
// 3. 结算后购物车项保留(方便复购),库存变化在下次访问时重新校验
type Cart struct {
	ID        uint
	UserID    uint
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem 购物车项
// BookID只保存引用,图书当前价格/库存由仓储查询时联表带出
type CartItem struct {
	ID        uint
	CartID    uint
	BookID    uint
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time

	// 联表带出的图书快照(展示与校验用,不持久化)
	BookTitle string
	BookPrice int64
	BookStock int
	CoverURL  string
}

// NewCart 创建空购物车
func NewCart(userID uint) *Cart {
	now := time.Now()
	return &Cart{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FindItemByBookID 查找指定图书的购物车项
func (c *Cart) FindItemByBookID(bookID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			return &c.Items[i]
		}
	}
	return nil
}

// FindItemByID 查找指定ID的购物车项
func (c *Cart) FindItemByID(itemID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// ItemCount 商品总件数(导航栏角标)
func (c *Cart) ItemCount() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal 按当前价格估算的小计(展示用,下单时以结算时价格为准)
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.BookPrice * int64(item.Quantity)
	}
	return total
}
