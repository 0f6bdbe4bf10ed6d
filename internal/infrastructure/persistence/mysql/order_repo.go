package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/order"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// 设计说明:
// 1. 订单是整体读写的聚合:Create级联写入明细与支付单,
//    FindByID总是预加载两者
// 2. 状态更新走乐观锁CAS,并发发货/取消只有一方成功
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单(级联明细与支付单)
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	// 回填自增ID与版本
	o.ID = model.ID
	o.Version = model.Version
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	for i := range model.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	if model.Payment != nil && o.Payment != nil {
		o.Payment.ID = model.Payment.ID
		o.Payment.OrderID = model.ID
	}
	return nil
}

// FindByID 根据ID查询订单(预加载明细与支付单)
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).
		Preload("Items").
		Preload("Payment").
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}

	return toOrderEntity(&model), nil
}

// List 分页查询订单,按创建时间倒序
func (r *orderRepository) List(ctx context.Context, params order.ListParams) ([]*order.Order, int64, error) {
	var models []OrderModel
	var total int64

	query := getDB(ctx, r.db).Model(&OrderModel{})
	if params.UserID != 0 {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", int(*params.Status))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.
		Order("created_at DESC").
		Limit(params.PageSize).
		Offset(offset).
		Preload("Items").
		Preload("Payment").
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

// UpdateStatus 更新订单状态(乐观锁CAS)
// UPDATE orders SET status=?, version=version+1 WHERE id=? AND version=?
func (r *orderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	db := getDB(ctx, r.db)

	result := db.Model(&OrderModel{}).
		Where("id = ? AND version = ?", o.ID, o.Version).
		Updates(map[string]interface{}{
			"status":  int(o.Status),
			"version": o.Version + 1,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单状态失败")
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := db.Model(&OrderModel{}).Where("id = ?", o.ID).Count(&exists).Error; err != nil {
			return apperrors.Wrap(err, "查询订单失败")
		}
		if exists == 0 {
			return order.ErrOrderNotFound
		}
		return apperrors.ErrVersionConflict
	}

	o.Version++
	return nil
}

// UpdatePayment 更新支付单状态
func (r *orderRepository) UpdatePayment(ctx context.Context, p *order.Payment) error {
	result := getDB(ctx, r.db).Model(&PaymentModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"status":  int(p.Status),
			"paid_at": p.PaidAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新支付单失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toOrderModel 领域实体 → GORM模型
func toOrderModel(o *order.Order) *OrderModel {
	model := &OrderModel{
		ID:              o.ID,
		UserID:          o.UserID,
		Total:           o.Total,
		Status:          int(o.Status),
		ShippingAddress: o.ShippingAddress,
		Version:         o.Version,
	}
	for _, item := range o.Items {
		model.Items = append(model.Items, OrderItemModel{
			BookID:          item.BookID,
			BookTitle:       item.BookTitle,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
		})
	}
	if o.Payment != nil {
		model.Payment = &PaymentModel{
			Method:          int(o.Payment.Method),
			Status:          int(o.Payment.Status),
			TransactionCode: o.Payment.TransactionCode,
			PaidAt:          o.Payment.PaidAt,
		}
	}
	return model
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	o := &order.Order{
		ID:              model.ID,
		UserID:          model.UserID,
		Total:           model.Total,
		Status:          order.OrderStatus(model.Status),
		ShippingAddress: model.ShippingAddress,
		Version:         model.Version,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
	for _, item := range model.Items {
		o.Items = append(o.Items, order.OrderItem{
			ID:              item.ID,
			OrderID:         item.OrderID,
			BookID:          item.BookID,
			BookTitle:       item.BookTitle,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
		})
	}
	if model.Payment != nil {
		o.Payment = &order.Payment{
			ID:              model.Payment.ID,
			OrderID:         model.Payment.OrderID,
			Method:          order.PaymentMethod(model.Payment.Method),
			Status:          order.PaymentStatus(model.Payment.Status),
			TransactionCode: model.Payment.TransactionCode,
			PaidAt:          model.Payment.PaidAt,
			CreatedAt:       model.Payment.CreatedAt,
			UpdatedAt:       model.Payment.UpdatedAt,
		}
	}
	return o
}
