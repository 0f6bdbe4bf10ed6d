package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// UpdateItemUseCase 修改购物车条目数量用例
// 业务规则：
// 1. 条目必须属于当前用户（越权返回403）
// 2. 新数量按当前库存重新校验
type UpdateItemUseCase struct {
	cartRepo cart.Repository
	bookRepo book.Repository
}

// NewUpdateItemUseCase 创建修改数量用例
func NewUpdateItemUseCase(cartRepo cart.Repository, bookRepo book.Repository) *UpdateItemUseCase {
	return &UpdateItemUseCase{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
	}
}

// UpdateItemRequest 修改数量请求
type UpdateItemRequest struct {
	UserID   uint
	ItemID   uint
	Quantity int
}

// Execute 执行修改
func (uc *UpdateItemUseCase) Execute(ctx context.Context, req UpdateItemRequest) error {
	if req.Quantity <= 0 {
		return cart.ErrInvalidQuantity
	}

	// 1. 所有权校验
	item, ownerID, err := uc.cartRepo.FindItemByID(ctx, req.ItemID)
	if err != nil {
		return err
	}
	if ownerID != req.UserID {
		return cart.ErrNotItemOwner
	}

	// 2. 按当前库存重新校验
	b, err := uc.bookRepo.FindByID(ctx, item.BookID)
	if err != nil {
		return err
	}
	if req.Quantity > b.Stock {
		return apperrors.Newf(apperrors.ErrCodeInsufficientStock,
			"《%s》库存不足，当前库存:%d，需要:%d", b.Title, b.Stock, req.Quantity)
	}

	return uc.cartRepo.UpdateItemQuantity(ctx, req.ItemID, req.Quantity)
}
