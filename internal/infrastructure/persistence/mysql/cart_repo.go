package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// cartRepository 购物车仓储实现(MySQL)
// 设计说明:
// 1. 购物车与用户1:1,首次访问惰性创建
// 2. 条目读取联表带出图书当前标题/价格/库存,
//    供前端展示与缺货提示(扁平投影,不做懒加载)
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// cartItemRow 条目联表查询投影
type cartItemRow struct {
	ID        uint
	CartID    uint
	BookID    uint
	Quantity  int
	BookTitle string
	BookPrice int64
	BookStock int
	CoverURL  string
}

// GetOrCreateByUserID 获取购物车,不存在则创建空车
func (r *cartRepository) GetOrCreateByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	db := getDB(ctx, r.db)

	var model CartModel
	err := db.Where("user_id = ?", userID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		model = CartModel{UserID: userID}
		if err := db.Create(&model).Error; err != nil {
			// 并发创建撞唯一索引时读回已有的车
			if isDuplicateError(err) {
				if err := db.Where("user_id = ?", userID).First(&model).Error; err != nil {
					return nil, apperrors.Wrap(err, "查询购物车失败")
				}
			} else {
				return nil, apperrors.Wrap(err, "创建购物车失败")
			}
		}
	} else if err != nil {
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	items, err := r.loadItems(ctx, model.ID)
	if err != nil {
		return nil, err
	}

	return &cart.Cart{
		ID:        model.ID,
		UserID:    model.UserID,
		Items:     items,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

// loadItems 联表加载条目(含图书当前价格与库存)
func (r *cartRepository) loadItems(ctx context.Context, cartID uint) ([]cart.CartItem, error) {
	var rows []cartItemRow
	err := getDB(ctx, r.db).Table("cart_items").
		Select(`cart_items.id, cart_items.cart_id, cart_items.book_id, cart_items.quantity,
			books.title AS book_title, book_details.price AS book_price,
			book_details.stock AS book_stock, book_details.cover_url`).
		Joins("JOIN books ON books.id = cart_items.book_id AND books.deleted_at IS NULL").
		Joins("JOIN book_details ON book_details.book_id = cart_items.book_id").
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询购物车条目失败")
	}

	items := make([]cart.CartItem, len(rows))
	for i, row := range rows {
		items[i] = cart.CartItem{
			ID:        row.ID,
			CartID:    row.CartID,
			BookID:    row.BookID,
			Quantity:  row.Quantity,
			BookTitle: row.BookTitle,
			BookPrice: row.BookPrice,
			BookStock: row.BookStock,
			CoverURL:  row.CoverURL,
		}
	}
	return items, nil
}

// FindItemByID 查询条目及其归属用户(所有权校验用)
func (r *cartRepository) FindItemByID(ctx context.Context, itemID uint) (*cart.CartItem, uint, error) {
	var row struct {
		cartItemRow
		OwnerID uint
	}
	err := getDB(ctx, r.db).Table("cart_items").
		Select("cart_items.id, cart_items.cart_id, cart_items.book_id, cart_items.quantity, carts.user_id AS owner_id").
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ?", itemID).
		Scan(&row).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询购物车条目失败")
	}
	if row.ID == 0 {
		return nil, 0, cart.ErrCartItemNotFound
	}

	item := &cart.CartItem{
		ID:       row.ID,
		CartID:   row.CartID,
		BookID:   row.BookID,
		Quantity: row.Quantity,
	}
	return item, row.OwnerID, nil
}

// AddItem 新增条目
func (r *cartRepository) AddItem(ctx context.Context, item *cart.CartItem) error {
	model := &CartItemModel{
		CartID:   item.CartID,
		BookID:   item.BookID,
		Quantity: item.Quantity,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "添加购物车条目失败")
	}
	item.ID = model.ID
	return nil
}

// UpdateItemQuantity 更新条目数量
func (r *cartRepository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	result := getDB(ctx, r.db).Model(&CartItemModel{}).
		Where("id = ?", itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

// RemoveItem 删除条目
func (r *cartRepository) RemoveItem(ctx context.Context, itemID uint) error {
	result := getDB(ctx, r.db).Delete(&CartItemModel{}, itemID)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

// ItemCount 购物车内商品总件数(数量求和)
func (r *cartRepository) ItemCount(ctx context.Context, userID uint) (int, error) {
	var count *int
	err := getDB(ctx, r.db).Table("cart_items").
		Select("SUM(cart_items.quantity)").
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.user_id = ?", userID).
		Scan(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计购物车件数失败")
	}
	if count == nil {
		return 0, nil
	}
	return *count, nil
}
