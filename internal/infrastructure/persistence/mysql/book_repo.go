package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/genre"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 图书主表与详情表(价格/库存)共享主键,读取时一并加载
// 3. 处理数据库特定错误(ISBN重复、外键引用),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书(主表+详情+分类关联)
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	// Create级联写入Detail与Genres关联表
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.Version = model.Version
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).
		Preload("Detail").
		Preload("Genres").
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).
		Preload("Detail").
		Preload("Genres").
		Where("isbn = ?", isbn).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindByIDs 批量查询图书,返回id→实体映射(结算前批量校验)
func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	if len(ids) == 0 {
		return map[uint]*book.Book{}, nil
	}

	var models []BookModel
	err := getDB(ctx, r.db).
		Preload("Detail").
		Where("id IN ?", ids).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "批量查询图书失败")
	}

	result := make(map[uint]*book.Book, len(models))
	for i := range models {
		result[models[i].ID] = toBookEntity(&models[i])
	}
	return result, nil
}

// Update 更新图书(乐观锁CAS)
// 主表按version条件更新,版本不匹配返回ErrVersionConflict;
// 详情表与分类关联随后覆盖写入
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	db := getDB(ctx, r.db)

	// 1. 主表CAS:WHERE id=? AND version=?
	result := db.Model(&BookModel{}).
		Where("id = ? AND version = ?", b.ID, b.Version).
		Updates(map[string]interface{}{
			"isbn":    isbnColumn(b.ISBN),
			"title":   b.Title,
			"author":  b.Author,
			"version": b.Version + 1,
		})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(result.Error, "更新图书失败")
	}
	if result.RowsAffected == 0 {
		// 版本不匹配或记录不存在,查一次区分
		var exists int64
		if err := db.Model(&BookModel{}).Where("id = ?", b.ID).Count(&exists).Error; err != nil {
			return apperrors.Wrap(err, "查询图书失败")
		}
		if exists == 0 {
			return book.ErrBookNotFound
		}
		return apperrors.ErrVersionConflict
	}
	b.Version++

	// 2. 详情表整行覆盖
	detail := toBookDetailModel(b)
	if err := db.Save(detail).Error; err != nil {
		return apperrors.Wrap(err, "更新图书详情失败")
	}

	// 3. 分类关联覆盖
	genres := make([]GenreModel, 0, len(b.Genres))
	for _, g := range b.Genres {
		genres = append(genres, GenreModel{ID: g.ID})
	}
	model := BookModel{ID: b.ID}
	if err := db.Model(&model).Association("Genres").Replace(genres); err != nil {
		return apperrors.Wrap(err, "更新图书分类失败")
	}

	return nil
}

// Delete 删除图书(软删除)
// 被订单明细或购物车引用的图书拒绝删除
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)

	var refs int64
	if err := db.Model(&OrderItemModel{}).Where("book_id = ?", id).Count(&refs).Error; err != nil {
		return apperrors.Wrap(err, "查询订单引用失败")
	}
	if refs > 0 {
		return book.ErrBookReferenced
	}
	if err := db.Model(&CartItemModel{}).Where("book_id = ?", id).Count(&refs).Error; err != nil {
		return apperrors.Wrap(err, "查询购物车引用失败")
	}
	if refs > 0 {
		return book.ErrBookReferenced
	}

	result := db.Delete(&BookModel{}, id)
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return book.ErrBookReferenced
		}
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// List 分页查询图书列表
// 价格排序需要联详情表;分类过滤联关联表
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	query := getDB(ctx, r.db).Model(&BookModel{}).
		Joins("JOIN book_details ON book_details.book_id = books.id")

	// 关键词搜索(书名、作者、出版社)
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("books.title LIKE ? OR books.author LIKE ? OR book_details.publisher LIKE ?",
			keyword, keyword, keyword)
	}

	// 分类过滤
	if params.GenreID != 0 {
		query = query.
			Joins("JOIN book_genres ON book_genres.book_id = books.id").
			Where("book_genres.genre_id = ?", params.GenreID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	// 排序
	switch params.SortBy {
	case "price_asc":
		query = query.Order("book_details.price ASC")
	case "price_desc":
		query = query.Order("book_details.price DESC")
	default:
		query = query.Order("books.created_at DESC") // 默认最新上架在前
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.
		Limit(params.PageSize).
		Offset(offset).
		Preload("Detail").
		Preload("Genres").
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

// DecrementStock 条件扣减库存(防超卖核心)
// UPDATE book_details SET stock = stock - ? WHERE book_id = ? AND stock - ? >= 0
// 并发下扣减行数为0说明库存不足,调用方所在事务应整体回滚
func (r *bookRepository) DecrementStock(ctx context.Context, id uint, quantity int) error {
	if quantity <= 0 {
		return book.ErrInvalidQuantity
	}

	db := getDB(ctx, r.db)
	result := db.Model(&BookDetailModel{}).
		Where("book_id = ?", id).
		Where("stock - ? >= 0", quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "扣减库存失败")
	}

	if result.RowsAffected == 0 {
		// 图书不存在或库存不足,查一次区分
		var exists int64
		if err := db.Model(&BookDetailModel{}).Where("book_id = ?", id).Count(&exists).Error; err != nil {
			return apperrors.Wrap(err, "查询图书详情失败")
		}
		if exists == 0 {
			return book.ErrBookNotFound
		}
		return book.ErrInsufficientStock
	}
	return nil
}

// IncrementStock 返还库存(取消订单)
func (r *bookRepository) IncrementStock(ctx context.Context, id uint, quantity int) error {
	if quantity <= 0 {
		return book.ErrInvalidQuantity
	}

	result := getDB(ctx, r.db).Model(&BookDetailModel{}).
		Where("book_id = ?", id).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "返还库存失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookModel 领域实体 → GORM模型(含详情与分类关联)
func toBookModel(b *book.Book) *BookModel {
	model := &BookModel{
		ID:      b.ID,
		ISBN:    isbnColumn(b.ISBN),
		Title:   b.Title,
		Author:  b.Author,
		Version: b.Version,
		Detail:  toBookDetailModel(b),
	}
	for _, g := range b.Genres {
		model.Genres = append(model.Genres, GenreModel{ID: g.ID})
	}
	return model
}

// toBookDetailModel 实体详情字段 → 详情表模型
func toBookDetailModel(b *book.Book) *BookDetailModel {
	return &BookDetailModel{
		BookID:      b.ID,
		Publisher:   b.Publisher,
		PublishDate: b.PublishDate,
		Price:       b.Price,
		Stock:       b.Stock,
		CoverURL:    b.CoverURL,
		Description: b.Description,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	b := &book.Book{
		ID:        model.ID,
		Title:     model.Title,
		Author:    model.Author,
		Version:   model.Version,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.ISBN != nil {
		b.ISBN = *model.ISBN
	}
	if model.Detail != nil {
		b.Publisher = model.Detail.Publisher
		b.PublishDate = model.Detail.PublishDate
		b.Price = model.Detail.Price
		b.Stock = model.Detail.Stock
		b.CoverURL = model.Detail.CoverURL
		b.Description = model.Detail.Description
	}
	for _, g := range model.Genres {
		b.Genres = append(b.Genres, genre.Genre{ID: g.ID, Name: g.Name})
	}
	return b
}

// isbnColumn 空白ISBN入库为NULL(唯一索引允许多个NULL)
func isbnColumn(isbn string) *string {
	if isbn == "" {
		return nil
	}
	return &isbn
}
