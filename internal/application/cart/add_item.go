package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// AddItemUseCase 加入购物车用例
// 业务规则：
// 1. 库存为0的图书不可加入（无货）
// 2. 车内已有数量+本次数量不得超过当前库存（软校验，不锁行）
// 3. 已有同书条目时累加数量，否则新建条目
type AddItemUseCase struct {
	cartRepo cart.Repository
	bookRepo book.Repository
}

// NewAddItemUseCase 创建加入购物车用例
func NewAddItemUseCase(cartRepo cart.Repository, bookRepo book.Repository) *AddItemUseCase {
	return &AddItemUseCase{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
	}
}

// AddItemRequest 加入购物车请求
type AddItemRequest struct {
	UserID   uint
	BookID   uint
	Quantity int
}

// AddItemResponse 加入购物车响应
type AddItemResponse struct {
	ItemID    uint `json:"item_id"`
	Quantity  int  `json:"quantity"`   // 加购后该条目的数量
	ItemCount int  `json:"item_count"` // 购物车总件数（角标）
}

// Execute 执行加购
func (uc *AddItemUseCase) Execute(ctx context.Context, req AddItemRequest) (*AddItemResponse, error) {
	if req.Quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}

	// 1. 加载图书，校验在售状态
	b, err := uc.bookRepo.FindByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if !b.InStock() {
		return nil, book.ErrOutOfStock
	}

	// 2. 获取购物车（惰性创建）
	c, err := uc.cartRepo.GetOrCreateByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// 3. 合并数量后校验库存
	existing := c.FindItemByBookID(req.BookID)
	requested := req.Quantity
	if existing != nil {
		requested += existing.Quantity
	}
	if requested > b.Stock {
		return nil, apperrors.Newf(apperrors.ErrCodeInsufficientStock,
			"《%s》库存不足，当前库存:%d，需要:%d", b.Title, b.Stock, requested)
	}

	// 4. 累加或新建条目
	var itemID uint
	if existing != nil {
		existing.Quantity = requested
		if err := uc.cartRepo.UpdateItemQuantity(ctx, existing.ID, requested); err != nil {
			return nil, err
		}
		itemID = existing.ID
	} else {
		item := &cart.CartItem{
			CartID:   c.ID,
			BookID:   req.BookID,
			Quantity: req.Quantity,
		}
		if err := uc.cartRepo.AddItem(ctx, item); err != nil {
			return nil, err
		}
		itemID = item.ID
	}

	count, err := uc.cartRepo.ItemCount(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	return &AddItemResponse{
		ItemID:    itemID,
		Quantity:  requested,
		ItemCount: count,
	}, nil
}
