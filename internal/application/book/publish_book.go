package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// PublishBookUseCase 图书上架用例（后台管理）
type PublishBookUseCase struct {
	bookService book.Service
}

// NewPublishBookUseCase 创建上架用例
func NewPublishBookUseCase(bookService book.Service) *PublishBookUseCase {
	return &PublishBookUseCase{bookService: bookService}
}

// PublishBookRequest 上架请求DTO
type PublishBookRequest struct {
	Title       string
	Author      string
	ISBN        string
	Publisher   string
	PublishDate string // YYYY-MM-DD，可为空
	Price       int64
	Stock       int
	CoverURL    string
	Description string
	GenreIDs    []uint
}

// Execute 执行上架
func (uc *PublishBookUseCase) Execute(ctx context.Context, req PublishBookRequest) (*BookInfo, error) {
	publishDate, err := parseDate(req.PublishDate)
	if err != nil {
		return nil, err
	}

	b, err := uc.bookService.CreateBook(ctx, book.CreateBookInput{
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

// parseDate 解析YYYY-MM-DD日期，空串返回nil
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "出版日期格式应为YYYY-MM-DD")
	}
	return &t, nil
}
