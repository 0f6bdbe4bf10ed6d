package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// RemoveItemUseCase 删除购物车条目用例
type RemoveItemUseCase struct {
	cartRepo cart.Repository
}

// NewRemoveItemUseCase 创建删除条目用例
func NewRemoveItemUseCase(cartRepo cart.Repository) *RemoveItemUseCase {
	return &RemoveItemUseCase{cartRepo: cartRepo}
}

// Execute 执行删除
// 所有权校验：条目必须属于当前用户
func (uc *RemoveItemUseCase) Execute(ctx context.Context, userID, itemID uint) error {
	_, ownerID, err := uc.cartRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return cart.ErrNotItemOwner
	}

	return uc.cartRepo.RemoveItem(ctx, itemID)
}

// ItemCountUseCase 购物车件数用例（页面角标）
type ItemCountUseCase struct {
	cartRepo cart.Repository
}

// NewItemCountUseCase 创建件数查询用例
func NewItemCountUseCase(cartRepo cart.Repository) *ItemCountUseCase {
	return &ItemCountUseCase{cartRepo: cartRepo}
}

// Execute 返回购物车内商品总件数（数量求和）
func (uc *ItemCountUseCase) Execute(ctx context.Context, userID uint) (int, error) {
	return uc.cartRepo.ItemCount(ctx, userID)
}
