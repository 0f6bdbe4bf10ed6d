package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// GetCartUseCase 查看购物车用例
// 设计说明：
// 1. 购物车按(user)惰性创建，首次访问即建空车
// 2. 明细联表带出图书当前价格与库存，前端可提示缺货项
type GetCartUseCase struct {
	cartRepo cart.Repository
}

// NewGetCartUseCase 创建查看购物车用例
func NewGetCartUseCase(cartRepo cart.Repository) *GetCartUseCase {
	return &GetCartUseCase{cartRepo: cartRepo}
}

// Execute 执行查询
func (uc *GetCartUseCase) Execute(ctx context.Context, userID uint) (*GetCartResponse, error) {
	c, err := uc.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]CartItemInfo, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, CartItemInfo{
			ItemID:   item.ID,
			BookID:   item.BookID,
			Title:    item.BookTitle,
			Price:    item.BookPrice,
			Stock:    item.BookStock,
			CoverURL: item.CoverURL,
			Quantity: item.Quantity,
			Subtotal: item.BookPrice * int64(item.Quantity),
		})
	}

	return &GetCartResponse{
		CartID:    c.ID,
		Items:     items,
		ItemCount: c.ItemCount(),
		Total:     c.Subtotal(),
	}, nil
}

// =========================================
// 应用层DTO
// =========================================

// CartItemInfo 购物车明细项
type CartItemInfo struct {
	ItemID   uint   `json:"item_id"`
	BookID   uint   `json:"book_id"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	Stock    int    `json:"stock"` // 当前可售库存（提示缺货用）
	CoverURL string `json:"cover_url"`
	Quantity int    `json:"quantity"`
	Subtotal int64  `json:"subtotal"`
}

// GetCartResponse 购物车响应
type GetCartResponse struct {
	CartID    uint           `json:"cart_id"`
	Items     []CartItemInfo `json:"items"`
	ItemCount int            `json:"item_count"`
	Total     int64          `json:"total"`
}
