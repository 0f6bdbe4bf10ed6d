package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// ListBooksUseCase 图书列表用例
// 支持关键字搜索（书名/作者模糊匹配）、按分类过滤与排序
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建图书列表用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表请求
type ListBooksRequest struct {
	Page     int
	PageSize int
	Keyword  string
	GenreID  uint   // 0表示不过滤
	SortBy   string // newest | price_asc | price_desc，默认newest
}

// Execute 执行查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) ([]BookInfo, int64, error) {
	books, total, err := uc.bookService.ListBooks(ctx, book.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		GenreID:  req.GenreID,
		SortBy:   req.SortBy,
	})
	if err != nil {
		return nil, 0, err
	}

	infos := make([]BookInfo, 0, len(books))
	for _, b := range books {
		infos = append(infos, toBookInfo(b))
	}
	return infos, total, nil
}
