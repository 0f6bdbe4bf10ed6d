package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/genre"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 封装跨实体的业务规则校验(ISBN重复、价格范围)
// 2. 后台管理的增删改由此进入,权限校验在接口层完成
type Service interface {
	// CreateBook 新建图书(后台上架)
	// 业务规则:
	// - ISBN非空时格式必须合法,且不能重复;空白ISBN视为未登记
	// - 价格必须>0
	// - 库存必须>=0
	CreateBook(ctx context.Context, input CreateBookInput) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 更新图书信息(乐观锁冲突向上传递)
	UpdateBook(ctx context.Context, id uint, input UpdateBookInput) (*Book, error)

	// DeleteBook 删除图书(被订单/购物车引用时拒绝)
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 分页查询图书列表(公开接口)
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

// CreateBookInput 新建图书输入
type CreateBookInput struct {
	Title       string
	Author      string
	ISBN        string
	Publisher   string
	PublishDate *time.Time
	Price       int64
	Stock       int
	CoverURL    string
	Description string
	GenreIDs    []uint
}

// UpdateBookInput 更新图书输入
// 字符串零值表示不修改;Price/Stock用指针区分"不改"与"改为0"
type UpdateBookInput struct {
	Title       string
	Author      string
	ISBN        *string
	Publisher   string
	PublishDate *time.Time
	Price       *int64
	Stock       *int
	CoverURL    string
	Description string
	GenreIDs    []uint // nil表示不修改分类
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 新建图书
func (s *service) CreateBook(ctx context.Context, input CreateBookInput) (*Book, error) {
	// 1. ISBN规范化与校验(空白ISBN跳过)
	isbn := NormalizeISBN(input.ISBN)
	if isbn != "" {
		if !IsValidISBN(isbn) {
			return nil, ErrInvalidISBN
		}
		// 重复检查(数据库唯一索引兜底)
		existing, err := s.repo.FindByISBN(ctx, isbn)
		if err == nil && existing != nil {
			return nil, ErrISBNDuplicate
		}
		if err != nil && err != ErrBookNotFound {
			return nil, err
		}
	}

	// 2. 价格与库存校验
	if input.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if input.Stock < 0 {
		return nil, ErrInvalidStock
	}

	// 3. 创建实体并持久化
	b := NewBook(input.Title, input.Author, isbn, input.Publisher, input.PublishDate,
		input.Price, input.Stock, input.CoverURL, input.Description)
	for _, gid := range input.GenreIDs {
		b.Genres = append(b.Genres, genreRef(gid))
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 更新图书信息
func (s *service) UpdateBook(ctx context.Context, id uint, input UpdateBookInput) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		b.Title = input.Title
	}
	if input.Author != "" {
		b.Author = input.Author
	}
	if input.Publisher != "" {
		b.Publisher = input.Publisher
	}
	if input.PublishDate != nil {
		b.PublishDate = input.PublishDate
	}
	if input.CoverURL != "" {
		b.CoverURL = input.CoverURL
	}
	if input.Description != "" {
		b.Description = input.Description
	}

	if input.ISBN != nil {
		isbn := NormalizeISBN(*input.ISBN)
		if isbn != "" && !IsValidISBN(isbn) {
			return nil, ErrInvalidISBN
		}
		b.ISBN = isbn
	}

	if input.Price != nil {
		if err := b.UpdatePrice(*input.Price); err != nil {
			return nil, err
		}
	}
	if input.Stock != nil {
		if err := b.UpdateStock(*input.Stock); err != nil {
			return nil, err
		}
	}

	if input.GenreIDs != nil {
		b.Genres = b.Genres[:0]
		for _, gid := range input.GenreIDs {
			b.Genres = append(b.Genres, genreRef(gid))
		}
	}

	b.UpdatedAt = time.Now()

	// 乐观锁:并发编辑时后提交方收到ErrVersionConflict
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params)
}

// genreRef 构造只含ID的分类引用(写关联表用,名称由仓储回填)
func genreRef(id uint) genre.Genre {
	return genre.Genre{ID: id}
}
