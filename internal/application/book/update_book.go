package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// UpdateBookUseCase 图书信息修改用例（后台管理）
// 并发编辑走乐观锁，冲突返回可重试错误码，前端提示刷新后重试
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建修改用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

// UpdateBookRequest 修改请求DTO
// 指针字段nil表示不修改
type UpdateBookRequest struct {
	Title       string
	Author      string
	ISBN        *string
	Publisher   string
	PublishDate string // YYYY-MM-DD，空串表示不修改
	Price       *int64
	Stock       *int
	CoverURL    string
	Description string
	GenreIDs    []uint // nil表示不修改分类
}

// Execute 执行修改
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, req UpdateBookRequest) (*BookInfo, error) {
	publishDate, err := parseDate(req.PublishDate)
	if err != nil {
		return nil, err
	}

	b, err := uc.bookService.UpdateBook(ctx, id, book.UpdateBookInput{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Publisher:   req.Publisher,
		PublishDate: publishDate,
		Price:       req.Price,
		Stock:       req.Stock,
		CoverURL:    req.CoverURL,
		Description: req.Description,
		GenreIDs:    req.GenreIDs,
	})
	if err != nil {
		return nil, err
	}

	info := toBookInfo(b)
	return &info, nil
}
