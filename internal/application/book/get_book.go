package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建图书详情用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 执行查询
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookInfo, error) {
	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := toBookInfo(b)
	return &info, nil
}

// =========================================
// 应用层DTO（book包内共享）
// =========================================

// GenreInfo 分类信息
type GenreInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// BookInfo 图书信息
type BookInfo struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Author      string      `json:"author"`
	ISBN        string      `json:"isbn,omitempty"`
	Publisher   string      `json:"publisher,omitempty"`
	PublishDate string      `json:"publish_date,omitempty"`
	Price       int64       `json:"price"`
	Stock       int         `json:"stock"`
	InStock     bool        `json:"in_stock"`
	CoverURL    string      `json:"cover_url,omitempty"`
	Description string      `json:"description,omitempty"`
	Genres      []GenreInfo `json:"genres"`
}

// toBookInfo 领域实体 → 应用层DTO
func toBookInfo(b *book.Book) BookInfo {
	genres := make([]GenreInfo, 0, len(b.Genres))
	for _, g := range b.Genres {
		genres = append(genres, GenreInfo{ID: g.ID, Name: g.Name})
	}
	info := BookInfo{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Publisher:   b.Publisher,
		Price:       b.Price,
		Stock:       b.Stock,
		InStock:     b.InStock(),
		CoverURL:    b.CoverURL,
		Description: b.Description,
		Genres:      genres,
	}
	if b.PublishDate != nil {
		info.PublishDate = b.PublishDate.Format("2006-01-02")
	}
	return info
}
