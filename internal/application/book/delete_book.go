package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// DeleteBookUseCase 图书下架删除用例（后台管理）
// 被订单或购物车引用的图书不可删除（外键约束兜底），
// 仓储将约束冲突转换为ErrBookReferenced
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService}
}

// Execute 执行删除
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	return uc.bookService.DeleteBook(ctx, id)
}
